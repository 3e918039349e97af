package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/citystride/wayfarer/pkg/guide"
	"github.com/citystride/wayfarer/pkg/provider"
)

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("missing messages"))
		return
	}

	completer, err := h.Completer(req.Guide)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	history, err := convertMessages(req.Messages[:len(req.Messages)-1])

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	last := req.Messages[len(req.Messages)-1]

	if last.Role != "user" {
		writeError(w, http.StatusBadRequest, errors.New("last message must be a user message"))
		return
	}

	chat, err := guide.NewChat(h.Persona(req.Guide),
		guide.WithChatCompleter(completer),
		guide.WithChatHistory(history),
	)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reply, err := chat.Send(r.Context(), last.Content)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJson(w, ChatResponse{
		Text: reply,
	})
}

func convertMessages(messages []ChatMessage) ([]provider.Message, error) {
	var result []provider.Message

	for _, m := range messages {
		switch m.Role {
		case "user":
			result = append(result, provider.UserMessage(m.Content))

		case "assistant":
			result = append(result, provider.AssistantMessage(m.Content))

		default:
			return nil, errors.New("invalid message role: " + m.Role)
		}
	}

	return result, nil
}
