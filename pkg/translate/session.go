package translate

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/citystride/wayfarer/pkg/debounce"
	"github.com/citystride/wayfarer/pkg/playback"
	"github.com/citystride/wayfarer/pkg/provider"
)

// TranslationSession is the playback session name for spoken translations.
const TranslationSession = "translation"

// Session is the translator-view flow: debounced auto translation, manual
// translation, and speak-aloud of the latest result. In-flight requests are
// never cancelled; a completion is applied only if its generation is still
// current.
type Session struct {
	client *Client

	synthesizer provider.Synthesizer
	scheduler   *playback.Scheduler

	debouncer *debounce.Debouncer

	voice string
	delay time.Duration

	mu         sync.Mutex
	sourceLang string
	targetLang string
	context    string

	result *Result
	err    error
}

type SessionOption func(*Session)

func NewSession(client *Client, options ...SessionOption) *Session {
	s := &Session{
		client: client,
	}

	for _, option := range options {
		option(s)
	}

	s.debouncer = debounce.New(s.delay, s.issue)

	return s
}

func WithSynthesizer(synthesizer provider.Synthesizer) SessionOption {
	return func(s *Session) {
		s.synthesizer = synthesizer
	}
}

func WithScheduler(scheduler *playback.Scheduler) SessionOption {
	return func(s *Session) {
		s.scheduler = scheduler
	}
}

func WithVoice(voice string) SessionOption {
	return func(s *Session) {
		s.voice = voice
	}
}

func WithDelay(delay time.Duration) SessionOption {
	return func(s *Session) {
		s.delay = delay
	}
}

func WithLanguages(source, target string) SessionOption {
	return func(s *Session) {
		s.sourceLang = source
		s.targetLang = target
	}
}

// SetAuto toggles auto-translate. Disabling cancels a pending request
// without issuing it.
func (s *Session) SetAuto(enabled bool) {
	s.debouncer.SetEnabled(enabled)
}

func (s *Session) Auto() bool {
	return s.debouncer.Enabled()
}

func (s *Session) SetLanguages(source, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sourceLang = source
	s.targetLang = target
}

func (s *Session) SetContext(context string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.context = context
}

// InputChanged feeds the debouncer. When auto mode is enabled, one request
// fires per quiescent window, carrying the text current at fire time.
func (s *Session) InputChanged(text string) {
	s.debouncer.Input(text)
}

// TranslateNow bypasses the debounce window. It supersedes any pending or
// in-flight auto request. The UI keeps manual and auto mutually exclusive.
func (s *Session) TranslateNow(text string) (*Result, error) {
	s.debouncer.Flush(text)

	return s.Result()
}

// issue runs on the debounce timer goroutine (auto) or the caller's
// goroutine (manual). Issued requests run to completion; staleness is
// handled at application time.
func (s *Session) issue(text string, generation uint64) {
	s.mu.Lock()

	intent := Intent{
		SourceText: text,

		SourceLang: s.sourceLang,
		TargetLang: s.targetLang,

		Context: s.context,
	}

	s.mu.Unlock()

	result, err := s.client.Translate(context.Background(), intent)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.debouncer.Current(generation) {
		slog.Debug("dropping superseded translation", "generation", generation)
		return
	}

	s.result = result
	s.err = err
}

// Result returns the latest applied translation, or the latest flow error.
func (s *Session) Result() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result, s.err
}

// Speak synthesizes the latest result and plays it once on the translation
// session.
func (s *Session) Speak(ctx context.Context) error {
	if s.synthesizer == nil || s.scheduler == nil {
		return errors.New("missing synthesizer or playback scheduler")
	}

	result, err := s.Result()

	if err != nil {
		return err
	}

	if result == nil || result.Text == "" {
		return errors.New("nothing to speak")
	}

	synthesis, err := s.synthesizer.Synthesize(ctx, result.Text, &provider.SynthesizeOptions{
		Voice: s.voice,
	})

	if err != nil {
		return err
	}

	return s.scheduler.PlayPayload(TranslationSession, synthesis.Payload, synthesis.SampleRate, synthesis.Channels)
}
