package delivery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Vovarama1992/showrunner/internal/ports"
)

type Handlers struct {
	Auth      *AuthHandler
	Thumbnail *ThumbnailHandler
	Script    *ScriptHandler
	Title     *TitleHandler
	Idea      *IdeaHandler
	Workspace *WorkspaceHandler
	Chat      *ChatHandler
	Admin     *AdminHandler
}

func RegisterRoutes(r chi.Router, h Handlers, auth ports.AuthService) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/authentication/signup", h.Auth.Signup)
	r.Post("/authentication/login", h.Auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(auth))

		r.Post("/authentication/logout", h.Auth.Logout)

		r.Route("/thumbnails", func(r chi.Router) {
			r.Get("/preview", h.Thumbnail.Preview)
			r.Post("/store", h.Thumbnail.Store)
			r.Get("/search", h.Thumbnail.Search)
			r.Post("/validate", h.Thumbnail.Validate)
			r.Post("/generate", h.Thumbnail.Generate)
		})

		r.Route("/scripts", func(r chi.Router) {
			r.Post("/generate", h.Script.Generate)
			r.Post("/remix", h.Script.Remix)
			r.Get("/", h.Script.List)
			r.Get("/{id}", h.Script.Get)
			r.Post("/speech-to-text", h.Script.SpeechToText)
			r.Post("/voice-tone", h.Script.VoiceTone)
		})

		r.Route("/titles", func(r chi.Router) {
			r.Post("/generate", h.Title.Generate)
			r.Get("/", h.Title.List)
		})

		r.Route("/ideas", func(r chi.Router) {
			r.Get("/search", h.Idea.Search)
			r.Get("/video/saved", h.Idea.Saved)
			r.Get("/video/{id}", h.Idea.Video)
			r.Post("/video/save/{id}", h.Idea.Save)
			r.Delete("/video/save/{id}", h.Idea.Unsave)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Post("/create", h.Workspace.CreateProject)
			r.Get("/", h.Workspace.ListProjects)
			r.Put("/{id}", h.Workspace.RenameProject)
			r.Delete("/{id}", h.Workspace.DeleteProject)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/create", h.Workspace.CreateGroup)
			r.Put("/{id}", h.Workspace.RenameGroup)
			r.Delete("/{id}", h.Workspace.DeleteGroup)
			r.Post("/{id}/documents", h.Workspace.AddDocument)
			r.Get("/{id}/documents", h.Workspace.ListDocuments)
			r.Post("/{id}/videos", h.Workspace.AddVideo)
			r.Get("/{id}/videos", h.Workspace.ListVideos)
			r.Post("/{id}/ingest", h.Workspace.Ingest)
		})

		r.Route("/instructions", func(r chi.Router) {
			r.Post("/", h.Chat.CreateInstruction)
			r.Get("/", h.Chat.ListInstructions)
			r.Put("/{id}", h.Chat.UpdateInstruction)
			r.Delete("/{id}", h.Chat.DeleteInstruction)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/create", h.Chat.CreateSession)
			r.Get("/", h.Chat.ListSessions)
			r.Get("/{id}", h.Chat.GetSession)
			r.Delete("/{id}", h.Chat.DeleteSession)
		})

		r.Post("/chat/ask", h.Chat.Ask)
		r.Get("/conversations/{id}/messages", h.Chat.History)

		r.Group(func(r chi.Router) {
			r.Use(AdminOnly)
			r.Get("/admin/users", h.Admin.Users)
			r.Get("/admin/logins", h.Admin.Logins)
		})
	})
}
