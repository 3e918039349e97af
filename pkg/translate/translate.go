// Package translate converts text between two languages through the
// completion boundary and coalesces rapid input into debounced requests.
package translate

import (
	"context"
	"errors"

	"github.com/citystride/wayfarer/pkg/provider"
)

// Intent captures one translation request. Fields are immutable once
// captured; a superseded intent is discarded, never mutated.
type Intent struct {
	SourceText string

	SourceLang string
	TargetLang string

	// Context is an optional hint about register or situation, e.g.
	// "ordering in a restaurant".
	Context string
}

type Result struct {
	Text string
}

type Client struct {
	completer provider.Completer
}

func NewClient(completer provider.Completer) (*Client, error) {
	if completer == nil {
		return nil, errors.New("missing completer provider")
	}

	return &Client{
		completer: completer,
	}, nil
}

func (c *Client) Translate(ctx context.Context, intent Intent) (*Result, error) {
	if intent.SourceText == "" {
		return &Result{}, nil
	}

	target := intent.TargetLang

	if target == "" {
		target = "en"
	}

	system := "Act as a translator. Translate the following text"

	if intent.SourceLang != "" {
		system += " from `" + intent.SourceLang + "`"
	}

	system += " to `" + target + "`. Only return the translation, no other text."

	if intent.Context != "" {
		system += " Situation: " + intent.Context + "."
	}

	messages := []provider.Message{
		provider.SystemMessage(system),
		provider.UserMessage(intent.SourceText),
	}

	completion, err := c.completer.Complete(ctx, messages, nil)

	if err != nil {
		return nil, err
	}

	return &Result{
		Text: completion.Message.Text(),
	}, nil
}
