package guide

import (
	"context"
	"errors"
	"sync"

	"github.com/citystride/wayfarer/pkg/playback"
	"github.com/citystride/wayfarer/pkg/provider"
)

// NarrationSession is the playback session name for spoken guide replies.
const NarrationSession = "narration"

// Chat is a guide-persona conversation with optional spoken replies.
// History lives only for the lifetime of the chat; nothing is persisted.
type Chat struct {
	completer   provider.Completer
	synthesizer provider.Synthesizer

	scheduler *playback.Scheduler

	voice string

	mu      sync.Mutex
	persona string
	history []provider.Message
}

type ChatOption func(*Chat)

func NewChat(persona string, options ...ChatOption) (*Chat, error) {
	c := &Chat{
		persona: persona,
	}

	for _, option := range options {
		option(c)
	}

	if c.completer == nil {
		return nil, errors.New("missing completer provider")
	}

	return c, nil
}

func WithChatCompleter(completer provider.Completer) ChatOption {
	return func(c *Chat) {
		c.completer = completer
	}
}

func WithChatSynthesizer(synthesizer provider.Synthesizer) ChatOption {
	return func(c *Chat) {
		c.synthesizer = synthesizer
	}
}

func WithChatScheduler(scheduler *playback.Scheduler) ChatOption {
	return func(c *Chat) {
		c.scheduler = scheduler
	}
}

func WithChatVoice(voice string) ChatOption {
	return func(c *Chat) {
		c.voice = voice
	}
}

// WithChatHistory seeds earlier turns, for callers that keep the
// transcript themselves.
func WithChatHistory(history []provider.Message) ChatOption {
	return func(c *Chat) {
		c.history = history
	}
}

// Send appends the user turn, completes, and appends the reply.
func (c *Chat) Send(ctx context.Context, text string) (string, error) {
	c.mu.Lock()

	messages := []provider.Message{
		provider.SystemMessage(c.persona),
	}

	messages = append(messages, c.history...)
	messages = append(messages, provider.UserMessage(text))

	c.mu.Unlock()

	completion, err := c.completer.Complete(ctx, messages, nil)

	if err != nil {
		return "", err
	}

	reply := completion.Message.Text()

	c.mu.Lock()

	c.history = append(c.history,
		provider.UserMessage(text),
		provider.AssistantMessage(reply),
	)

	c.mu.Unlock()

	return reply, nil
}

// Narrate synthesizes text and plays it once on the narration session.
// Overlapping narrations are allowed and will audibly overlap.
func (c *Chat) Narrate(ctx context.Context, text string) error {
	if c.synthesizer == nil || c.scheduler == nil {
		return errors.New("missing synthesizer or playback scheduler")
	}

	synthesis, err := c.synthesizer.Synthesize(ctx, text, &provider.SynthesizeOptions{
		Voice: c.voice,
	})

	if err != nil {
		return err
	}

	return c.scheduler.PlayPayload(NarrationSession, synthesis.Payload, synthesis.SampleRate, synthesis.Channels)
}

func (c *Chat) History() []provider.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	history := make([]provider.Message, len(c.history))
	copy(history, c.history)

	return history
}
