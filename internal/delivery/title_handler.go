package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/showrunner/internal/domain"
)

type TitleHandler struct {
	titles *domain.TitleService
	log    *logger.ZapLogger
}

func NewTitleHandler(titles *domain.TitleService, log *logger.ZapLogger) *TitleHandler {
	return &TitleHandler{titles: titles, log: log}
}

// Generate accepts either a topic or a YouTube URL as input.
func (h *TitleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input string `json:"input"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if req.Input == "" {
		writeError(w, http.StatusBadRequest, "input is required")
		return
	}

	user := UserFrom(r.Context())
	batch, err := h.titles.Generate(r.Context(), user.ID, req.Input)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "title generation failed", Error: err})
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, batch)
}

func (h *TitleHandler) List(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())
	batches, err := h.titles.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"titles": batches})
}
