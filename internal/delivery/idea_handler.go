package delivery

import (
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/showrunner/internal/domain"
)

type IdeaHandler struct {
	ideas *domain.IdeaService
	log   *logger.ZapLogger
}

func NewIdeaHandler(ideas *domain.IdeaService, log *logger.ZapLogger) *IdeaHandler {
	return &IdeaHandler{ideas: ideas, log: log}
}

func (h *IdeaHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("query") == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	maxResults, _ := strconv.Atoi(q.Get("max_results"))
	minViews, _ := strconv.ParseInt(q.Get("min_views"), 10, 64)
	minSubs, _ := strconv.ParseInt(q.Get("min_subscribers"), 10, 64)

	videos, err := h.ideas.Search(r.Context(), domain.IdeaSearchParams{
		Query:            q.Get("query"),
		MaxResults:       maxResults,
		DurationCategory: q.Get("duration"),
		MinViews:         minViews,
		MinSubscribers:   minSubs,
		UploadWindow:     q.Get("upload_window"),
	})
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "idea search failed", Error: err})
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"videos": videos})
}

func (h *IdeaHandler) Video(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")

	video, err := h.ideas.VideoByID(r.Context(), videoID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

func (h *IdeaHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())
	videoID := chi.URLParam(r, "id")

	if err := h.ideas.Save(r.Context(), user.ID, videoID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "saved"})
}

func (h *IdeaHandler) Saved(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())

	videos, err := h.ideas.ListSaved(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"videos": videos})
}

func (h *IdeaHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())
	videoID := chi.URLParam(r, "id")

	if err := h.ideas.Unsave(r.Context(), user.ID, videoID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "removed"})
}
