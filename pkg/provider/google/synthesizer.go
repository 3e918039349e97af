package google

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/citystride/wayfarer/pkg/provider"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

// Gemini speech generation always returns 24 kHz mono PCM16.
const (
	speechSampleRate = 24000
	speechChannels   = 1
)

type Synthesizer struct {
	*Config
}

func NewSynthesizer(model string, options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		model: model,
		voice: "Kore",
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	client, err := s.newClient(ctx)

	if err != nil {
		return nil, err
	}

	voice := s.voice

	if options.Voice != "" {
		voice = options.Voice
	}

	prompt := input

	if options.Instructions != "" {
		prompt = options.Instructions + "\n\n" + prompt
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},

		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: voice,
				},
			},
		},
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, config)

	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no audio data in response")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData == nil {
			continue
		}

		return &provider.Synthesis{
			ID:    uuid.NewString(),
			Model: s.model,

			Payload: base64.StdEncoding.EncodeToString(part.InlineData.Data),

			SampleRate: speechSampleRate,
			Channels:   speechChannels,
		}, nil
	}

	return nil, errors.New("no audio data in response")
}
