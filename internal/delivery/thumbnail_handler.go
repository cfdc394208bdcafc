package delivery

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/showrunner/internal/domain"
	"github.com/Vovarama1992/showrunner/internal/ports"
)

const maxUploadBytes = 20 << 20

type ThumbnailHandler struct {
	thumbs *domain.ThumbnailService
	log    *logger.ZapLogger
}

func NewThumbnailHandler(thumbs *domain.ThumbnailService, log *logger.ZapLogger) *ThumbnailHandler {
	return &ThumbnailHandler{thumbs: thumbs, log: log}
}

func (h *ThumbnailHandler) Preview(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	previews, err := h.thumbs.Preview(r.Context(), keyword)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "thumbnail preview failed", Error: err})
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"thumbnails": previews})
}

func (h *ThumbnailHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VideoIDs []string `json:"video_ids"`
		Keyword  string   `json:"keyword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	if len(req.VideoIDs) == 0 {
		writeError(w, http.StatusBadRequest, "video_ids is required")
		return
	}

	user := UserFrom(r.Context())
	saved, err := h.thumbs.Store(r.Context(), user.ID, req.VideoIDs, req.Keyword)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "thumbnail store failed", Error: err})
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"stored": saved})
}

func (h *ThumbnailHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minFaces, _ := strconv.Atoi(q.Get("min_faces"))

	user := UserFrom(r.Context())
	thumbs, err := h.thumbs.Search(r.Context(), user.ID, ports.ThumbnailFilter{
		Keyword:  q.Get("keyword"),
		Text:     q.Get("text"),
		Emotion:  q.Get("emotion"),
		MinFaces: minFaces,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"thumbnails": thumbs})
}

func (h *ThumbnailHandler) Validate(w http.ResponseWriter, r *http.Request) {
	data, _, err := readUpload(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	analysis, err := h.thumbs.Validate(r.Context(), data)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (h *ThumbnailHandler) Generate(w http.ResponseWriter, r *http.Request) {
	data, header, err := readUpload(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	prompt := r.FormValue("prompt")
	if prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	concept, err := h.thumbs.GenerateConcept(r.Context(), data, mimeType, prompt)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "thumbnail concept failed", Error: err})
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"concept": concept})
}

func readUpload(r *http.Request, field string) ([]byte, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, err
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, nil, err
	}
	return data, header, nil
}
