package location

import (
	"context"
	"testing"
)

func TestPositionString(t *testing.T) {
	p := Position{Latitude: 47.37688, Longitude: 8.54169}

	if got, want := p.String(), "47.3769, 8.5417"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStatic(t *testing.T) {
	s := Static{Position: Position{Latitude: 1, Longitude: 2}}

	p, err := s.Locate(context.Background())

	if err != nil {
		t.Fatalf("locate: %v", err)
	}

	p.Latitude = 99

	q, _ := s.Locate(context.Background())

	if q.Latitude != 1 {
		t.Errorf("position not copied: %v", q)
	}
}
