package api

import (
	"encoding/json"
	"net/http"

	"github.com/citystride/wayfarer/pkg/translate"
)

func (h *Handler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	t, err := h.Translator(req.Translator)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	intent := translate.Intent{
		SourceText: req.Text,

		SourceLang: req.From,
		TargetLang: req.To,

		Context: req.Context,
	}

	result, err := t.Translate(r.Context(), intent)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJson(w, TranslateResponse{
		Text: result.Text,
	})
}
