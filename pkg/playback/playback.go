// Package playback schedules fire-and-forget audio playback on per-view
// output sessions. The output device itself is an injected boundary.
package playback

import (
	"sync"

	"github.com/citystride/wayfarer/pkg/audio"
)

// Output opens a device sink for a given sample rate. Implemented by the
// embedding application (or a fake in tests).
type Output interface {
	Open(sampleRate int) (Sink, error)
}

// Sink is a long-lived output node. It is only ever appended to: every play
// creates a fresh single-use source bound to it.
type Sink interface {
	NewSource(buffer *audio.Buffer) Source
}

// Source plays its buffer once. Start returns immediately; there is no
// pause, stop or seek.
type Source interface {
	Start()
}

// Scheduler owns one lazily-created session per logical name. The scheduler
// lives as long as the owning view; it is not a process-wide singleton.
type Scheduler struct {
	output Output

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewScheduler(output Output) *Scheduler {
	return &Scheduler{
		output: output,

		sessions: make(map[string]*Session),
	}
}

// Session returns the session for name, opening the output sink on first
// use. Later calls return the cached session regardless of sample rate.
func (s *Scheduler) Session(name string, sampleRate int) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[name]; ok {
		return session, nil
	}

	sink, err := s.output.Open(sampleRate)

	if err != nil {
		return nil, err
	}

	session := &Session{
		name: name,

		sink:       sink,
		sampleRate: sampleRate,
	}

	s.sessions[name] = session

	return session, nil
}

// PlayPayload decodes a base64 PCM16 payload and plays it on the named
// session. A decode failure produces no playback attempt.
func (s *Scheduler) PlayPayload(name, payload string, sampleRate, channels int) error {
	buffer, err := audio.DecodePayload(payload, sampleRate, channels)

	if err != nil {
		return err
	}

	session, err := s.Session(name, sampleRate)

	if err != nil {
		return err
	}

	session.Play(buffer)

	return nil
}

type Session struct {
	name string

	sink       Sink
	sampleRate int
}

func (s *Session) Name() string {
	return s.name
}

func (s *Session) SampleRate() int {
	return s.sampleRate
}

// Play builds a single-use source and starts it immediately. It does not
// block and returns no handle. Overlapping plays on the same session
// coexist; nothing serializes them.
func (s *Session) Play(buffer *audio.Buffer) {
	s.sink.NewSource(buffer).Start()
}
