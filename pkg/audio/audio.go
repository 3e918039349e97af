// Package audio decodes the speech wire format used by the generation
// service: base64 of little-endian interleaved signed 16-bit PCM.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

// Synthesized speech is always 24 kHz mono.
const (
	SpeechSampleRate = 24000
	SpeechChannels   = 1
)

var (
	ErrDecode        = errors.New("malformed base64 payload")
	ErrInvalidFormat = errors.New("invalid pcm frame alignment")
)

// Buffer holds planar float samples in [-1.0, 1.0), one slice per channel.
// Immutable after construction.
type Buffer struct {
	Data [][]float32

	SampleRate int
}

func (b *Buffer) Channels() int {
	return len(b.Data)
}

func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}

	return len(b.Data[0])
}

func DecodeBase64(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(payload)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return data, nil
}

// PCM16ToBuffer interprets data as little-endian interleaved signed 16-bit
// samples and converts each to float by dividing by 32768. The mapping is
// bit-exact and idempotent; no resampling or clipping correction.
func PCM16ToBuffer(data []byte, sampleRate, channels int) (*Buffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channel count %d", ErrInvalidFormat, channels)
	}

	if len(data)%(2*channels) != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalidFormat, len(data), 2*channels)
	}

	frames := len(data) / 2 / channels

	planar := make([][]float32, channels)

	for c := range planar {
		planar[c] = make([]float32, frames)
	}

	for i := 0; i < frames; i++ {
		for c := 0; c < channels; c++ {
			offset := (i*channels + c) * 2

			sample := int16(binary.LittleEndian.Uint16(data[offset:]))
			planar[c][i] = float32(sample) / 32768.0
		}
	}

	return &Buffer{
		Data: planar,

		SampleRate: sampleRate,
	}, nil
}

// DecodePayload chains DecodeBase64 and PCM16ToBuffer.
func DecodePayload(payload string, sampleRate, channels int) (*Buffer, error) {
	data, err := DecodeBase64(payload)

	if err != nil {
		return nil, err
	}

	return PCM16ToBuffer(data, sampleRate, channels)
}
