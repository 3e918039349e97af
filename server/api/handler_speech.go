package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/citystride/wayfarer/pkg/audio"
	"github.com/citystride/wayfarer/pkg/provider"
)

func (h *Handler) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req SpeechRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing text"))
		return
	}

	p, err := h.Synthesizer(req.Model)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	options := &provider.SynthesizeOptions{
		Voice: req.Voice,

		Instructions: req.Instructions,
	}

	result, err := p.Synthesize(r.Context(), req.Text, options)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	buffer, err := audio.DecodePayload(result.Payload, result.SampleRate, result.Channels)

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJson(w, SpeechResponse{
		Payload: result.Payload,

		SampleRate: result.SampleRate,
		Channels:   result.Channels,

		Frames: buffer.Frames(),
	})
}
