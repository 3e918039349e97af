// Package guide drives the landmark narration flow: a primary analysis
// request followed by a dependent, independently-failable illustration.
package guide

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/citystride/wayfarer/pkg/provider"
)

const system = "You are an enthusiastic and knowledgeable local tour guide. Keep narrations vivid but under two hundred words."

type Analysis struct {
	ID string

	Text string

	Citations []provider.Citation
}

type Illustration struct {
	Content     []byte
	ContentType string
}

type Orchestrator struct {
	completer provider.Completer
	renderer  provider.Renderer

	generation atomic.Uint64
}

type Option func(*Orchestrator)

func New(options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{}

	for _, option := range options {
		option(o)
	}

	if o.completer == nil {
		return nil, errors.New("missing completer provider")
	}

	return o, nil
}

func WithCompleter(completer provider.Completer) Option {
	return func(o *Orchestrator) {
		o.completer = completer
	}
}

func WithRenderer(renderer provider.Renderer) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// Analyze issues the primary request. Photo may be nil for a text-only
// question.
func (o *Orchestrator) Analyze(ctx context.Context, photo *provider.File, config PromptConfig) (*Analysis, error) {
	content := []provider.Content{
		provider.TextContent(BuildPrompt(config)),
	}

	if photo != nil {
		content = append(content, provider.FileContent(photo))
	}

	messages := []provider.Message{
		provider.SystemMessage(system),
		{
			Role:    provider.MessageRoleUser,
			Content: content,
		},
	}

	completion, err := o.completer.Complete(ctx, messages, &provider.CompleteOptions{
		Grounding: true,
	})

	if err != nil {
		return nil, err
	}

	return &Analysis{
		ID: completion.ID,

		Text: completion.Message.Text(),

		Citations: completion.Citations,
	}, nil
}

// Illustrate issues the dependent stage-two request, deriving its prompt
// from the analysis text.
func (o *Orchestrator) Illustrate(ctx context.Context, analysis *Analysis) (*Illustration, error) {
	if o.renderer == nil {
		return nil, errors.New("missing renderer provider")
	}

	rendering, err := o.renderer.Render(ctx, IllustrationPrompt(analysis.Text), nil)

	if err != nil {
		return nil, err
	}

	return &Illustration{
		Content:     rendering.Content,
		ContentType: rendering.ContentType,
	}, nil
}

// Run executes both stages. The analysis is returned as soon as stage one
// completes; the illustration continues in the background and is delivered
// through publish, with nil signalling "no illustration available". A
// stage-two failure never retracts the analysis. A newer Run supersedes the
// pending continuation: its result is dropped, not published.
//
// Stage two makes exactly one attempt per stage-one success; there is no
// retry, and an issued request is never cancelled mid-flight.
func (o *Orchestrator) Run(ctx context.Context, photo *provider.File, config PromptConfig, publish func(*Illustration)) (*Analysis, error) {
	generation := o.generation.Add(1)

	analysis, err := o.Analyze(ctx, photo, config)

	if err != nil {
		return nil, err
	}

	if o.renderer == nil || publish == nil {
		return analysis, nil
	}

	go func() {
		illustration, err := o.Illustrate(context.WithoutCancel(ctx), analysis)

		if o.generation.Load() != generation {
			return
		}

		if err != nil {
			slog.Warn("illustration unavailable", "analysis", analysis.ID, "error", err)

			publish(nil)
			return
		}

		publish(illustration)
	}()

	return analysis, nil
}
