package provider

import (
	"context"
)

type Synthesizer interface {
	Synthesize(ctx context.Context, input string, options *SynthesizeOptions) (*Synthesis, error)
}

type SynthesizeOptions struct {
	Voice string
	Speed *float32

	Instructions string
}

// Synthesis carries speech audio as it arrives on the wire: a base64 payload
// of little-endian interleaved signed 16-bit PCM at the stated rate.
type Synthesis struct {
	ID    string
	Model string

	Payload string

	SampleRate int
	Channels   int
}
