package anthropic

import (
	"context"
	"encoding/base64"

	"github.com/citystride/wayfarer/pkg/provider"

	"github.com/anthropics/anthropic-sdk-go"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config
	messages anthropic.MessageService
}

func NewCompleter(url, model string, options ...Option) (*Completer, error) {
	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Completer{
		Config:   cfg,
		messages: anthropic.NewMessageService(cfg.Options()...),
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	maxTokens := 4096

	if options.MaxTokens != nil {
		maxTokens = *options.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model: anthropic.Model(c.model),

		MaxTokens: int64(maxTokens),

		System:   convertSystem(messages),
		Messages: convertMessages(messages),
	}

	if len(options.Stop) > 0 {
		params.StopSequences = options.Stop
	}

	if options.Temperature != nil {
		params.Temperature = anthropic.Float(float64(*options.Temperature))
	}

	message, err := c.messages.New(ctx, params)

	if err != nil {
		return nil, err
	}

	return &provider.Completion{
		ID:    message.ID,
		Model: c.model,

		Message: &provider.Message{
			Role:    provider.MessageRoleAssistant,
			Content: toContent(message.Content),
		},

		Usage: &provider.Usage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
		},
	}, nil
}

func convertSystem(messages []provider.Message) []anthropic.TextBlockParam {
	var blocks []anthropic.TextBlockParam

	for _, m := range messages {
		if m.Role != provider.MessageRoleSystem {
			continue
		}

		for _, c := range m.Content {
			if c.Text != "" {
				blocks = append(blocks, anthropic.TextBlockParam{Text: c.Text})
			}
		}
	}

	return blocks
}

func convertMessages(messages []provider.Message) []anthropic.MessageParam {
	var result []anthropic.MessageParam

	for _, m := range messages {
		switch m.Role {
		case provider.MessageRoleUser:
			result = append(result, anthropic.NewUserMessage(convertBlocks(m)...))

		case provider.MessageRoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(convertBlocks(m)...))
		}
	}

	return result
}

func convertBlocks(message provider.Message) []anthropic.ContentBlockParamUnion {
	var blocks []anthropic.ContentBlockParamUnion

	for _, c := range message.Content {
		if c.Text != "" {
			blocks = append(blocks, anthropic.NewTextBlock(c.Text))
		}

		if c.File != nil {
			data := base64.StdEncoding.EncodeToString(c.File.Content)
			blocks = append(blocks, anthropic.NewImageBlockBase64(c.File.ContentType, data))
		}
	}

	return blocks
}

func toContent(blocks []anthropic.ContentBlockUnion) []provider.Content {
	var parts []provider.Content

	for _, b := range blocks {
		if block, ok := b.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, provider.TextContent(block.Text))
		}
	}

	return parts
}
