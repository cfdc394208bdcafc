package delivery

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/showrunner/internal/domain"
)

type ChatHandler struct {
	chat *domain.ChatService
	log  *logger.ZapLogger
}

func NewChatHandler(chat *domain.ChatService, log *logger.ZapLogger) *ChatHandler {
	return &ChatHandler{chat: chat, log: log}
}

func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		GroupIDs []int  `json:"group_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	user := UserFrom(r.Context())
	session, err := h.chat.CreateSession(r.Context(), user.ID, req.Name, req.GroupIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())
	sessions, err := h.chat.ListSessions(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	user := UserFrom(r.Context())
	session, err := h.chat.GetSession(r.Context(), user.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	user := UserFrom(r.Context())
	if err := h.chat.DeleteSession(r.Context(), user.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// Ask answers a query against the session's groups. A zero conversation_id
// starts a new conversation; its id comes back so the client can continue it.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID      int    `json:"session_id"`
		ConversationID int    `json:"conversation_id"`
		Query          string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	user := UserFrom(r.Context())
	answer, conversationID, err := h.chat.Ask(r.Context(), user.ID, req.SessionID, req.ConversationID, req.Query)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "chat ask failed", Error: err})
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"answer":          answer,
		"conversation_id": conversationID,
	})
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conversation id")
		return
	}

	user := UserFrom(r.Context())
	messages, err := h.chat.History(r.Context(), user.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *ChatHandler) CreateInstruction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Content  string `json:"content"`
		IsActive bool   `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	user := UserFrom(r.Context())
	instruction, err := h.chat.CreateInstruction(r.Context(), user.ID, req.Name, req.Content, req.IsActive)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, instruction)
}

func (h *ChatHandler) UpdateInstruction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid instruction id")
		return
	}
	var req struct {
		Name     string `json:"name"`
		Content  string `json:"content"`
		IsActive bool   `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	user := UserFrom(r.Context())
	if err := h.chat.UpdateInstruction(r.Context(), user.ID, id, req.Name, req.Content, req.IsActive); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

func (h *ChatHandler) DeleteInstruction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid instruction id")
		return
	}

	user := UserFrom(r.Context())
	if err := h.chat.DeleteInstruction(r.Context(), user.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *ChatHandler) ListInstructions(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())
	instructions, err := h.chat.ListInstructions(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"instructions": instructions})
}
