package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/citystride/wayfarer/pkg/guide"
	"github.com/citystride/wayfarer/pkg/location"
	"github.com/citystride/wayfarer/pkg/provider"
)

func (h *Handler) handleNarrate(w http.ResponseWriter, r *http.Request) {
	var req NarrateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	g, err := h.Guide(req.Guide)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	config := guide.PromptConfig{
		Landmark: req.Landmark,
		Context:  req.Context,
		Language: req.Language,
	}

	if req.Latitude != nil && req.Longitude != nil {
		config.Position = &location.Position{
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
		}
	}

	var photo *provider.File

	if req.Photo != "" {
		data, err := base64.StdEncoding.DecodeString(req.Photo)

		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		photo = &provider.File{
			Content:     data,
			ContentType: req.ContentType,
		}
	}

	analysis, err := g.Analyze(r.Context(), photo, config)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := NarrateResponse{
		ID: analysis.ID,

		Text: analysis.Text,
	}

	for _, c := range analysis.Citations {
		result.Citations = append(result.Citations, Citation{
			Title: c.Title,
			URI:   c.URI,
		})
	}

	// The illustration is best effort. A render failure leaves the
	// narration intact and the field empty.
	if req.Illustrate {
		if illustration, err := g.Illustrate(r.Context(), analysis); err == nil {
			result.Illustration = &Illustration{
				Content:     base64.StdEncoding.EncodeToString(illustration.Content),
				ContentType: illustration.ContentType,
			}
		}
	}

	writeJson(w, result)
}
