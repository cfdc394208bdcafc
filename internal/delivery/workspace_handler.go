package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/showrunner/internal/domain"
)

type WorkspaceHandler struct {
	knowledge *domain.KnowledgeService
	log       *logger.ZapLogger
}

func NewWorkspaceHandler(knowledge *domain.KnowledgeService, log *logger.ZapLogger) *WorkspaceHandler {
	return &WorkspaceHandler{knowledge: knowledge, log: log}
}

type namedRequest struct {
	Name string `json:"name"`
}

func (h *WorkspaceHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req namedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	user := UserFrom(r.Context())
	project, err := h.knowledge.CreateProject(r.Context(), user.ID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (h *WorkspaceHandler) RenameProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req namedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	user := UserFrom(r.Context())
	if err := h.knowledge.RenameProject(r.Context(), user.ID, id, req.Name); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "renamed"})
}

func (h *WorkspaceHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	user := UserFrom(r.Context())
	if err := h.knowledge.DeleteProject(r.Context(), user.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *WorkspaceHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())
	projects, err := h.knowledge.ListProjects(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (h *WorkspaceHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID int    `json:"project_id"`
		Name      string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "project_id and name are required")
		return
	}

	user := UserFrom(r.Context())
	group, err := h.knowledge.CreateGroup(r.Context(), user.ID, req.ProjectID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (h *WorkspaceHandler) RenameGroup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	var req namedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	user := UserFrom(r.Context())
	if err := h.knowledge.RenameGroup(r.Context(), user.ID, id, req.Name); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "renamed"})
}

func (h *WorkspaceHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	user := UserFrom(r.Context())
	if err := h.knowledge.DeleteGroup(r.Context(), user.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *WorkspaceHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	data, header, err := readUpload(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := UserFrom(r.Context())
	doc, err := h.knowledge.AddDocument(r.Context(), user.ID, groupID, header.Filename, data)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "document upload failed", Error: err})
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (h *WorkspaceHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	user := UserFrom(r.Context())
	video, err := h.knowledge.AddGroupVideo(r.Context(), user.ID, groupID, req.URL)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "group video add failed", Error: err})
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, video)
}

func (h *WorkspaceHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	user := UserFrom(r.Context())
	docs, err := h.knowledge.GroupDocuments(r.Context(), user.ID, groupID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (h *WorkspaceHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	user := UserFrom(r.Context())
	videos, err := h.knowledge.GroupVideos(r.Context(), user.ID, groupID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"videos": videos})
}

// Ingest kicks off chunking and embedding in the background; progress is
// streamed over the websocket room named in the request.
func (h *WorkspaceHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	var req struct {
		RoomID string `json:"room_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomID == "" {
		writeError(w, http.StatusBadRequest, "room_id is required")
		return
	}

	user := UserFrom(r.Context())
	if _, err := h.knowledge.GroupDocuments(r.Context(), user.ID, groupID); err != nil {
		writeServiceError(w, err)
		return
	}

	go func() {
		if err := h.knowledge.Ingest(context.Background(), user.ID, groupID, req.RoomID); err != nil {
			h.log.Log(logger.LogEntry{
				Level:   "error",
				Message: "ingest failed",
				Fields:  map[string]any{"group_id": groupID, "room": req.RoomID},
				Error:   err,
			})
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started", "room_id": req.RoomID})
}
