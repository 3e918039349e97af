package translate

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/citystride/wayfarer/pkg/provider"
)

type mockCompleter struct {
	err error

	// reply maps the user text to a canned translation; by default the
	// completer echoes the input reversed through a marker.
	reply func(input string) string

	calls atomic.Int64

	lastSystem atomic.Pointer[string]
}

func (m *mockCompleter) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	m.calls.Add(1)

	var system, input string

	for _, msg := range messages {
		switch msg.Role {
		case provider.MessageRoleSystem:
			system = msg.Text()
		case provider.MessageRoleUser:
			input = msg.Text()
		}
	}

	m.lastSystem.Store(&system)

	if m.err != nil {
		return nil, m.err
	}

	text := "translated:" + input

	if m.reply != nil {
		text = m.reply(input)
	}

	return &provider.Completion{
		ID: "test",

		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,
			Content: []provider.Content{
				{Text: text},
			},
		},
	}, nil
}

func TestClientTranslate(t *testing.T) {
	completer := &mockCompleter{}

	client, err := NewClient(completer)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := client.Translate(context.Background(), Intent{
		SourceText: "good morning",

		SourceLang: "en",
		TargetLang: "ja",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Text != "translated:good morning" {
		t.Errorf("unexpected result: %q", result.Text)
	}

	system := *completer.lastSystem.Load()

	for _, wanted := range []string{"`en`", "`ja`", "Only return the translation"} {
		if !strings.Contains(system, wanted) {
			t.Errorf("missing %q in system prompt %q", wanted, system)
		}
	}
}

func TestClientTranslateWithContext(t *testing.T) {
	completer := &mockCompleter{}

	client, _ := NewClient(completer)

	if _, err := client.Translate(context.Background(), Intent{
		SourceText: "the bill, please",
		TargetLang: "it",

		Context: "ordering in a restaurant",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if system := *completer.lastSystem.Load(); !strings.Contains(system, "ordering in a restaurant") {
		t.Errorf("context hint missing from system prompt %q", system)
	}
}

func TestClientTranslateEmptyInput(t *testing.T) {
	completer := &mockCompleter{}

	client, _ := NewClient(completer)

	result, err := client.Translate(context.Background(), Intent{TargetLang: "fr"})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Text != "" {
		t.Errorf("expected empty result, got %q", result.Text)
	}

	if completer.calls.Load() != 0 {
		t.Error("empty input must not issue a request")
	}
}

func TestClientTranslateFault(t *testing.T) {
	completer := &mockCompleter{err: errors.New("service fault")}

	client, _ := NewClient(completer)

	if _, err := client.Translate(context.Background(), Intent{SourceText: "hi", TargetLang: "de"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewClientRequiresCompleter(t *testing.T) {
	if _, err := NewClient(nil); err == nil {
		t.Fatal("expected error")
	}
}
