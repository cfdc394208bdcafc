package ports

import (
	"context"

	"github.com/Vovarama1992/showrunner/internal/models"
)

type ThumbnailFilter struct {
	Keyword  string
	Text     string
	Emotion  string
	MinFaces int
}

type ThumbnailRepository interface {
	InsertThumbnail(ctx context.Context, t *models.Thumbnail) (*models.Thumbnail, error)
	SearchThumbnails(ctx context.Context, userID int, f ThumbnailFilter) ([]models.Thumbnail, error)
}

type VideoRepository interface {
	UpsertChannel(ctx context.Context, c *models.Channel) error
	UpsertVideo(ctx context.Context, v *models.Video) error
	GetVideo(ctx context.Context, videoID string) (*models.Video, error)

	SaveForUser(ctx context.Context, userID int, videoID string) error
	ListSaved(ctx context.Context, userID int) ([]models.Video, error)
	UnsaveForUser(ctx context.Context, userID int, videoID string) error
}

type ScriptRepository interface {
	InsertScript(ctx context.Context, s *models.Script) (*models.Script, error)
	ListScripts(ctx context.Context, userID int) ([]models.Script, error)
	GetScript(ctx context.Context, userID, id int) (*models.Script, error)
	ListScriptsByTitle(ctx context.Context, userID int, inputTitle string) ([]models.Script, error)

	InsertRemixedScript(ctx context.Context, s *models.RemixedScript) (*models.RemixedScript, error)
}

type TitleRepository interface {
	InsertTitleBatch(ctx context.Context, b *models.TitleBatch) (*models.TitleBatch, error)
	ListTitles(ctx context.Context, userID int) ([]models.TitleBatch, error)
}

type WorkspaceRepository interface {
	InsertProject(ctx context.Context, p *models.Project) (*models.Project, error)
	RenameProject(ctx context.Context, userID, id int, name string) error
	SoftDeleteProject(ctx context.Context, userID, id int) error
	ListProjects(ctx context.Context, userID int) ([]models.Project, error)

	InsertGroup(ctx context.Context, g *models.Group) (*models.Group, error)
	GetGroup(ctx context.Context, userID, id int) (*models.Group, error)
	GetGroups(ctx context.Context, userID int, ids []int) ([]models.Group, error)
	RenameGroup(ctx context.Context, userID, id int, name string) error
	SoftDeleteGroup(ctx context.Context, userID, id int) error

	InsertDocument(ctx context.Context, d *models.Document) (*models.Document, error)
	ListDocuments(ctx context.Context, groupID int) ([]models.Document, error)

	InsertGroupVideo(ctx context.Context, v *models.GroupVideo) (*models.GroupVideo, error)
	ListGroupVideos(ctx context.Context, groupID int) ([]models.GroupVideo, error)
}

type ChatRepository interface {
	InsertSession(ctx context.Context, name string, groupIDs []int) (*models.ChatSession, error)
	GetSession(ctx context.Context, userID, id int) (*models.ChatSession, error)
	ListSessions(ctx context.Context, userID int) ([]models.ChatSession, error)
	SoftDeleteSession(ctx context.Context, userID, id int) error

	InsertConversation(ctx context.Context, c *models.Conversation) (*models.Conversation, error)
	GetConversationGroups(ctx context.Context, conversationID int) ([]models.Group, error)

	InsertMessage(ctx context.Context, m *models.ChatMessage) error
	ListMessages(ctx context.Context, conversationID int) ([]models.ChatMessage, error)

	InsertInstruction(ctx context.Context, in *models.Instruction) (*models.Instruction, error)
	UpdateInstruction(ctx context.Context, in *models.Instruction) error
	SoftDeleteInstruction(ctx context.Context, userID, id int) error
	ListInstructions(ctx context.Context, userID int, activeOnly bool) ([]models.Instruction, error)
}

type VectorStore interface {
	// ReplaceGroupChunks drops and rewrites the embedded chunks of a group.
	ReplaceGroupChunks(ctx context.Context, groupID int, chunks []models.KnowledgeChunk) error

	// GroupChunks returns all chunks of a group, embedding included.
	GroupChunks(ctx context.Context, groupID int) ([]models.KnowledgeChunk, error)
}
