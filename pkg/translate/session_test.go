package translate

import (
	"context"
	"encoding/base64"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/citystride/wayfarer/pkg/audio"
	"github.com/citystride/wayfarer/pkg/playback"
	"github.com/citystride/wayfarer/pkg/provider"
)

type slowCompleter struct {
	mu     sync.Mutex
	delays []time.Duration

	calls atomic.Int64
}

func (m *slowCompleter) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	n := int(m.calls.Add(1)) - 1

	m.mu.Lock()
	var delay time.Duration

	if n < len(m.delays) {
		delay = m.delays[n]
	}

	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	var input string

	for _, msg := range messages {
		if msg.Role == provider.MessageRoleUser {
			input = msg.Text()
		}
	}

	return &provider.Completion{
		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,
			Content: []provider.Content{
				{Text: "translated:" + input},
			},
		},
	}, nil
}

type mockSynthesizer struct {
	calls atomic.Int64
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	m.calls.Add(1)

	return &provider.Synthesis{
		Payload: base64.StdEncoding.EncodeToString([]byte{0x00, 0x10, 0x00, 0x20}),

		SampleRate: audio.SpeechSampleRate,
		Channels:   audio.SpeechChannels,
	}, nil
}

type fakeOutput struct {
	sources atomic.Int64
}

func (o *fakeOutput) Open(sampleRate int) (playback.Sink, error) {
	return fakeSink{output: o}, nil
}

type fakeSink struct {
	output *fakeOutput
}

func (s fakeSink) NewSource(buffer *audio.Buffer) playback.Source {
	return fakeSource{output: s.output}
}

type fakeSource struct {
	output *fakeOutput
}

func (s fakeSource) Start() {
	s.output.sources.Add(1)
}

func waitResult(t *testing.T, session *Session, want string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)

	for time.Now().Before(deadline) {
		if result, err := session.Result(); err == nil && result != nil && result.Text == want {
			return
		}

		time.Sleep(5 * time.Millisecond)
	}

	result, err := session.Result()
	t.Fatalf("result never became %q (result=%v err=%v)", want, result, err)
}

func TestSessionAutoCoalesces(t *testing.T) {
	completer := &slowCompleter{}
	client, _ := NewClient(completer)

	session := NewSession(client, WithDelay(50*time.Millisecond), WithLanguages("en", "fr"))
	session.SetAuto(true)

	session.InputChanged("h")
	session.InputChanged("he")
	session.InputChanged("hello")

	waitResult(t, session, "translated:hello")

	if completer.calls.Load() != 1 {
		t.Errorf("expected one coalesced request, got %d", completer.calls.Load())
	}
}

func TestSessionDisableCancelsPending(t *testing.T) {
	completer := &slowCompleter{}
	client, _ := NewClient(completer)

	session := NewSession(client, WithDelay(50*time.Millisecond))
	session.SetAuto(true)

	session.InputChanged("hello")
	session.SetAuto(false)

	time.Sleep(150 * time.Millisecond)

	if completer.calls.Load() != 0 {
		t.Errorf("expected zero requests after disable, got %d", completer.calls.Load())
	}
}

func TestSessionManualTranslate(t *testing.T) {
	completer := &slowCompleter{}
	client, _ := NewClient(completer)

	session := NewSession(client, WithDelay(time.Hour))

	result, err := session.TranslateNow("good evening")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Text != "translated:good evening" {
		t.Errorf("unexpected result: %q", result.Text)
	}
}

func TestSessionStaleResponseDropped(t *testing.T) {
	// the first request is slow and completes after the second; its
	// response must not overwrite the newer result
	completer := &slowCompleter{delays: []time.Duration{200 * time.Millisecond, 0}}
	client, _ := NewClient(completer)

	session := NewSession(client, WithDelay(10*time.Millisecond))
	session.SetAuto(true)

	session.InputChanged("first")

	time.Sleep(50 * time.Millisecond)

	session.InputChanged("second")

	waitResult(t, session, "translated:second")

	time.Sleep(250 * time.Millisecond)

	result, _ := session.Result()

	if result.Text != "translated:second" {
		t.Errorf("stale response overwrote newer result: %q", result.Text)
	}

	if completer.calls.Load() != 2 {
		t.Errorf("expected both requests issued, got %d", completer.calls.Load())
	}
}

func TestSessionSpeak(t *testing.T) {
	completer := &slowCompleter{}
	client, _ := NewClient(completer)

	synthesizer := &mockSynthesizer{}
	output := &fakeOutput{}

	session := NewSession(client,
		WithDelay(time.Hour),
		WithSynthesizer(synthesizer),
		WithScheduler(playback.NewScheduler(output)),
	)

	if _, err := session.TranslateNow("hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := session.Speak(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if synthesizer.calls.Load() != 1 {
		t.Errorf("expected one synthesis, got %d", synthesizer.calls.Load())
	}

	if output.sources.Load() != 1 {
		t.Errorf("expected one playback source, got %d", output.sources.Load())
	}
}

func TestSessionSpeakWithoutResult(t *testing.T) {
	completer := &slowCompleter{}
	client, _ := NewClient(completer)

	synthesizer := &mockSynthesizer{}
	output := &fakeOutput{}

	session := NewSession(client,
		WithSynthesizer(synthesizer),
		WithScheduler(playback.NewScheduler(output)),
	)

	if err := session.Speak(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if synthesizer.calls.Load() != 0 {
		t.Error("must not synthesize without a result")
	}
}
