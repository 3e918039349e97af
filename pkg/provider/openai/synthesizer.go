package openai

import (
	"context"
	"encoding/base64"
	"io"

	"github.com/citystride/wayfarer/pkg/provider"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

// The pcm response format is 24 kHz mono signed 16-bit little-endian,
// matching the Gemini speech wire format.
const (
	speechSampleRate = 24000
	speechChannels   = 1
)

type Synthesizer struct {
	*Config
	speech openai.AudioSpeechService
}

func NewSynthesizer(url, model string, options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,
		speech: openai.NewAudioSpeechService(cfg.Options()...),
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	voice := string(openai.AudioSpeechNewParamsVoiceStringAlloy)

	if options.Voice != "" {
		voice = options.Voice
	}

	params := openai.AudioSpeechNewParams{
		Model: s.model,
		Input: content,

		Voice: openai.AudioSpeechNewParamsVoiceUnion{OfString: openai.String(voice)},

		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	}

	if options.Instructions != "" {
		params.Instructions = openai.String(options.Instructions)
	}

	result, err := s.speech.New(ctx, params)

	if err != nil {
		return nil, err
	}

	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)

	if err != nil {
		return nil, err
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.model,

		Payload: base64.StdEncoding.EncodeToString(data),

		SampleRate: speechSampleRate,
		Channels:   speechChannels,
	}, nil
}
