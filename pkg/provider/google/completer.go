package google

import (
	"context"
	"errors"

	"github.com/citystride/wayfarer/pkg/provider"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config
}

func NewCompleter(model string, options ...Option) (*Completer, error) {
	cfg := &Config{
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Completer{
		Config: cfg,
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	client, err := c.newClient(ctx)

	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: convertSystem(messages),
	}

	if len(options.Stop) > 0 {
		config.StopSequences = options.Stop
	}

	if options.MaxTokens != nil {
		config.MaxOutputTokens = int32(*options.MaxTokens)
	}

	if options.Temperature != nil {
		config.Temperature = options.Temperature
	}

	if options.Grounding {
		config.Tools = []*genai.Tool{
			{
				GoogleSearch: &genai.GoogleSearch{},
			},
		}
	}

	contents := convertMessages(messages)

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, config)

	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.New("no completion candidates")
	}

	candidate := resp.Candidates[0]

	return &provider.Completion{
		ID:    uuid.NewString(),
		Model: c.model,

		Message: &provider.Message{
			Role:    provider.MessageRoleAssistant,
			Content: toContent(candidate.Content),
		},

		Citations: toCitations(candidate.GroundingMetadata),

		Usage: toUsage(resp.UsageMetadata),
	}, nil
}

func convertSystem(messages []provider.Message) *genai.Content {
	var parts []*genai.Part

	for _, m := range messages {
		if m.Role != provider.MessageRoleSystem {
			continue
		}

		for _, c := range m.Content {
			if c.Text != "" {
				parts = append(parts, genai.NewPartFromText(c.Text))
			}
		}
	}

	if len(parts) == 0 {
		return nil
	}

	return &genai.Content{
		Parts: parts,
	}
}

func convertMessages(messages []provider.Message) []*genai.Content {
	var result []*genai.Content

	for _, m := range messages {
		switch m.Role {
		case provider.MessageRoleUser:
			result = append(result, genai.NewContentFromParts(convertParts(m), genai.RoleUser))

		case provider.MessageRoleAssistant:
			result = append(result, genai.NewContentFromParts(convertParts(m), genai.RoleModel))
		}
	}

	return result
}

func convertParts(message provider.Message) []*genai.Part {
	var parts []*genai.Part

	for _, c := range message.Content {
		if c.Text != "" {
			parts = append(parts, genai.NewPartFromText(c.Text))
		}

		if c.File != nil {
			parts = append(parts, &genai.Part{
				InlineData: &genai.Blob{
					MIMEType: c.File.ContentType,
					Data:     c.File.Content,
				},
			})
		}
	}

	return parts
}

func toContent(content *genai.Content) []provider.Content {
	var parts []provider.Content

	if content == nil {
		return parts
	}

	for _, p := range content.Parts {
		if p.Text != "" {
			parts = append(parts, provider.TextContent(p.Text))
		}
	}

	return parts
}

func toCitations(metadata *genai.GroundingMetadata) []provider.Citation {
	if metadata == nil {
		return nil
	}

	var citations []provider.Citation

	for _, c := range metadata.GroundingChunks {
		if c.Web == nil {
			continue
		}

		citations = append(citations, provider.Citation{
			Title: c.Web.Title,
			URI:   c.Web.URI,
		})
	}

	return citations
}

func toUsage(metadata *genai.GenerateContentResponseUsageMetadata) *provider.Usage {
	if metadata == nil {
		return nil
	}

	return &provider.Usage{
		InputTokens:  int(metadata.PromptTokenCount),
		OutputTokens: int(metadata.CandidatesTokenCount),
	}
}
