package guide

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/citystride/wayfarer/pkg/provider"
)

type mockCompleter struct {
	err      error
	response string

	calls atomic.Int64
}

func (m *mockCompleter) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	m.calls.Add(1)

	if m.err != nil {
		return nil, m.err
	}

	return &provider.Completion{
		ID: "test",

		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,
			Content: []provider.Content{
				{Text: m.response},
			},
		},

		Citations: []provider.Citation{
			{Title: "source", URI: "https://example.com"},
		},
	}, nil
}

type mockRenderer struct {
	err   error
	delay time.Duration

	calls atomic.Int64
}

func (m *mockRenderer) Render(ctx context.Context, input string, options *provider.RenderOptions) (*provider.Rendering, error) {
	m.calls.Add(1)

	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	if m.err != nil {
		return nil, m.err
	}

	return &provider.Rendering{
		ID: "image",

		Content:     []byte{0x89, 0x50, 0x4E, 0x47},
		ContentType: "image/png",
	}, nil
}

func collect(t *testing.T) (func(*Illustration), <-chan *Illustration) {
	t.Helper()

	ch := make(chan *Illustration, 1)

	return func(i *Illustration) { ch <- i }, ch
}

func TestRunPublishesBothStages(t *testing.T) {
	completer := &mockCompleter{response: "A famous clock tower."}
	renderer := &mockRenderer{}

	o, err := New(WithCompleter(completer), WithRenderer(renderer))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	publish, illustrations := collect(t)

	analysis, err := o.Run(context.Background(), nil, PromptConfig{}, publish)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Text != "A famous clock tower." {
		t.Errorf("unexpected analysis: %q", analysis.Text)
	}

	if len(analysis.Citations) != 1 {
		t.Errorf("expected citations, got %d", len(analysis.Citations))
	}

	select {
	case illustration := <-illustrations:
		if illustration == nil {
			t.Fatal("expected an illustration")
		}

		if illustration.ContentType != "image/png" {
			t.Errorf("unexpected content type: %q", illustration.ContentType)
		}

	case <-time.After(time.Second):
		t.Fatal("illustration never published")
	}
}

func TestStageOneFailureSkipsStageTwo(t *testing.T) {
	completer := &mockCompleter{err: errors.New("service fault")}
	renderer := &mockRenderer{}

	o, _ := New(WithCompleter(completer), WithRenderer(renderer))

	publish, illustrations := collect(t)

	if _, err := o.Run(context.Background(), nil, PromptConfig{}, publish); err == nil {
		t.Fatal("expected error")
	}

	time.Sleep(50 * time.Millisecond)

	if renderer.calls.Load() != 0 {
		t.Errorf("renderer must not be invoked after stage-one failure, got %d calls", renderer.calls.Load())
	}

	select {
	case <-illustrations:
		t.Fatal("nothing should be published after stage-one failure")
	default:
	}
}

func TestStageTwoFailureIsIsolated(t *testing.T) {
	completer := &mockCompleter{response: "A stone bridge."}
	renderer := &mockRenderer{err: errors.New("render fault")}

	o, _ := New(WithCompleter(completer), WithRenderer(renderer))

	publish, illustrations := collect(t)

	analysis, err := o.Run(context.Background(), nil, PromptConfig{}, publish)

	if err != nil {
		t.Fatalf("stage-two failure must not surface as an error: %v", err)
	}

	if analysis.Text != "A stone bridge." {
		t.Errorf("primary result changed: %q", analysis.Text)
	}

	select {
	case illustration := <-illustrations:
		if illustration != nil {
			t.Error("expected nil illustration on stage-two failure")
		}

	case <-time.After(time.Second):
		t.Fatal("absence was never published")
	}

	if renderer.calls.Load() != 1 {
		t.Errorf("expected exactly one stage-two attempt, got %d", renderer.calls.Load())
	}
}

func TestStaleIllustrationDropped(t *testing.T) {
	completer := &mockCompleter{response: "ok"}
	renderer := &mockRenderer{delay: 100 * time.Millisecond}

	o, _ := New(WithCompleter(completer), WithRenderer(renderer))

	publish, illustrations := collect(t)

	if _, err := o.Run(context.Background(), nil, PromptConfig{}, publish); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a second run supersedes the first continuation while it is in flight
	laterPublish, later := collect(t)

	if _, err := o.Run(context.Background(), nil, PromptConfig{}, laterPublish); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case <-later:
	case <-time.After(time.Second):
		t.Fatal("current run never published")
	}

	select {
	case <-illustrations:
		t.Fatal("superseded continuation must not publish")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestAnalyzeWithoutRenderer(t *testing.T) {
	completer := &mockCompleter{response: "ok"}

	o, err := New(WithCompleter(completer))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	analysis, err := o.Run(context.Background(), nil, PromptConfig{}, nil)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis == nil {
		t.Fatal("expected analysis")
	}
}

func TestNewRequiresCompleter(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error")
	}
}

func TestChatKeepsHistory(t *testing.T) {
	completer := &mockCompleter{response: "Gladly!"}

	chat, err := NewChat("You are a guide.", WithChatCompleter(completer))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reply, err := chat.Send(context.Background(), "Tell me about the old town.")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply != "Gladly!" {
		t.Errorf("unexpected reply: %q", reply)
	}

	history := chat.History()

	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}

	if history[0].Role != provider.MessageRoleUser || history[1].Role != provider.MessageRoleAssistant {
		t.Error("unexpected history roles")
	}
}
