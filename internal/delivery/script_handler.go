package delivery

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/showrunner/internal/domain"
)

type ScriptHandler struct {
	scripts *domain.ScriptService
	log     *logger.ZapLogger
}

func NewScriptHandler(scripts *domain.ScriptService, log *logger.ZapLogger) *ScriptHandler {
	return &ScriptHandler{scripts: scripts, log: log}
}

func (h *ScriptHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
		Mode  string `json:"mode"`
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
	script, err := h.scripts.Generate(r.Context(), user.ID, req.Query, req.Mode)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "script generation failed", Error: err})
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, script)
}

func (h *ScriptHandler) Remix(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VideoURL string `json:"video_url"`
		Mode     string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if req.VideoURL == "" {
		writeError(w, http.StatusBadRequest, "video_url is required")
		return
	}

	user := UserFrom(r.Context())
	script, err := h.scripts.Remix(r.Context(), user.ID, req.VideoURL, req.Mode)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "script remix failed", Error: err})
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, script)
}

func (h *ScriptHandler) List(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())
	scripts, err := h.scripts.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scripts": scripts})
}

func (h *ScriptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid script id")
		return
	}

	user := UserFrom(r.Context())
	script, err := h.scripts.Get(r.Context(), user.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, script)
}

func (h *ScriptHandler) SpeechToText(w http.ResponseWriter, r *http.Request) {
	data, _, err := readUpload(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	text, err := h.scripts.SpeechToText(r.Context(), data)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "speech to text failed", Error: err})
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (h *ScriptHandler) VoiceTone(w http.ResponseWriter, r *http.Request) {
	data, header, err := readUpload(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := UserFrom(r.Context())
	path, err := h.scripts.StoreVoiceTone(r.Context(), user.ID, header.Filename, data)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "voice tone upload failed", Error: err})
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}
