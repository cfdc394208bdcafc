package domain

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
)

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrBadDocument     = errors.New("only .txt and .md documents are supported")
	ErrNothingToIngest = errors.New("group has no content to ingest")
)

// KnowledgeService owns the projects/groups/documents workspace and the
// background vector ingest for the chat layer.
type KnowledgeService struct {
	repo    ports.WorkspaceRepository
	vectors ports.VectorStore
	youtube ports.YouTubeClient
	llm     ports.LLMService
	embed   ports.EmbeddingService

	events chan ports.IngestEvent
}

func NewKnowledgeService(
	repo ports.WorkspaceRepository,
	vectors ports.VectorStore,
	youtube ports.YouTubeClient,
	llm ports.LLMService,
	embed ports.EmbeddingService,
) *KnowledgeService {
	return &KnowledgeService{
		repo:    repo,
		vectors: vectors,
		youtube: youtube,
		llm:     llm,
		embed:   embed,
		events:  make(chan ports.IngestEvent, 100),
	}
}

func (k *KnowledgeService) Events() <-chan ports.IngestEvent { return k.events }

func (k *KnowledgeService) CreateProject(ctx context.Context, userID int, name string) (*models.Project, error) {
	return k.repo.InsertProject(ctx, &models.Project{UserID: userID, Name: name})
}

func (k *KnowledgeService) RenameProject(ctx context.Context, userID, id int, name string) error {
	return k.repo.RenameProject(ctx, userID, id, name)
}

func (k *KnowledgeService) DeleteProject(ctx context.Context, userID, id int) error {
	return k.repo.SoftDeleteProject(ctx, userID, id)
}

func (k *KnowledgeService) ListProjects(ctx context.Context, userID int) ([]models.Project, error) {
	return k.repo.ListProjects(ctx, userID)
}

func (k *KnowledgeService) CreateGroup(ctx context.Context, userID, projectID int, name string) (*models.Group, error) {
	return k.repo.InsertGroup(ctx, &models.Group{ProjectID: projectID, UserID: userID, Name: name})
}

func (k *KnowledgeService) RenameGroup(ctx context.Context, userID, id int, name string) error {
	return k.repo.RenameGroup(ctx, userID, id, name)
}

func (k *KnowledgeService) DeleteGroup(ctx context.Context, userID, id int) error {
	return k.repo.SoftDeleteGroup(ctx, userID, id)
}

// AddDocument stores an uploaded text document in a group, with the tone and
// style the model reads out of it.
func (k *KnowledgeService) AddDocument(ctx context.Context, userID, groupID int, filename string, content []byte) (*models.Document, error) {
	if err := k.ownGroup(ctx, userID, groupID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".txt" && ext != ".md" {
		return nil, ErrBadDocument
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("document is not valid UTF-8")
	}

	text := strings.TrimSpace(string(content))
	tone, style := analyzeToneStyle(ctx, k.llm, text)

	return k.repo.InsertDocument(ctx, &models.Document{
		GroupID:  groupID,
		Filename: filename,
		Content:  text,
		Tone:     tone,
		Style:    style,
	})
}

// AddGroupVideo attaches a reference video: its transcript is fetched and the
// tone/style analyzed before storing.
func (k *KnowledgeService) AddGroupVideo(ctx context.Context, userID, groupID int, url string) (*models.GroupVideo, error) {
	if err := k.ownGroup(ctx, userID, groupID); err != nil {
		return nil, err
	}

	videoID := ExtractVideoID(url)
	if videoID == "" {
		return nil, fmt.Errorf("invalid YouTube URL")
	}
	transcript, err := k.youtube.Transcript(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}

	tone, style := analyzeToneStyle(ctx, k.llm, transcript)

	return k.repo.InsertGroupVideo(ctx, &models.GroupVideo{
		GroupID:    groupID,
		URL:        url,
		Transcript: transcript,
		Tone:       tone,
		Style:      style,
	})
}

// Ingest rebuilds a group's vector index: it combines documents and video
// transcripts, chunks them, embeds every chunk and replaces the stored set.
// Progress is reported through Events keyed by roomID.
func (k *KnowledgeService) Ingest(ctx context.Context, userID, groupID int, roomID string) error {
	fail := func(stage string, err error) error {
		k.emit(ports.IngestEvent{RoomID: roomID, GroupID: groupID, Stage: "error", Detail: err.Error()})
		return fmt.Errorf("%s: %w", stage, err)
	}

	if err := k.ownGroup(ctx, userID, groupID); err != nil {
		return fail("resolve group", err)
	}

	k.emit(ports.IngestEvent{RoomID: roomID, GroupID: groupID, Stage: "transcript"})

	docs, err := k.repo.ListDocuments(ctx, groupID)
	if err != nil {
		return fail("list documents", err)
	}
	videos, err := k.repo.ListGroupVideos(ctx, groupID)
	if err != nil {
		return fail("list videos", err)
	}

	var parts []string
	for _, d := range docs {
		parts = append(parts, d.Content)
	}
	for _, v := range videos {
		if v.Transcript != "" {
			parts = append(parts, v.Transcript)
		}
	}
	combined := strings.Join(parts, "\n\n")
	if strings.TrimSpace(combined) == "" {
		return fail("collect content", ErrNothingToIngest)
	}

	k.emit(ports.IngestEvent{RoomID: roomID, GroupID: groupID, Stage: "chunking"})
	texts := SplitText(combined)

	chunks := make([]models.KnowledgeChunk, 0, len(texts))
	for i, text := range texts {
		vec, err := k.embed.Embed(ctx, text)
		if err != nil {
			return fail("embed chunk", err)
		}
		chunks = append(chunks, models.KnowledgeChunk{
			GroupID:    groupID,
			ChunkIndex: i,
			Content:    text,
			Embedding:  vec,
		})
		k.emit(ports.IngestEvent{
			RoomID:  roomID,
			GroupID: groupID,
			Stage:   "embedding",
			Chunk:   i + 1,
			Total:   len(texts),
		})
	}

	if err := k.vectors.ReplaceGroupChunks(ctx, groupID, chunks); err != nil {
		return fail("store chunks", err)
	}

	log.Printf("[INGEST][DONE] group=%d chunks=%d", groupID, len(chunks))
	k.emit(ports.IngestEvent{RoomID: roomID, GroupID: groupID, Stage: "done", Total: len(chunks)})
	return nil
}

// GroupDocuments lists a group's documents after checking ownership.
func (k *KnowledgeService) GroupDocuments(ctx context.Context, userID, groupID int) ([]models.Document, error) {
	if err := k.ownGroup(ctx, userID, groupID); err != nil {
		return nil, err
	}
	return k.repo.ListDocuments(ctx, groupID)
}

// GroupVideos lists a group's reference videos after checking ownership.
func (k *KnowledgeService) GroupVideos(ctx context.Context, userID, groupID int) ([]models.GroupVideo, error) {
	if err := k.ownGroup(ctx, userID, groupID); err != nil {
		return nil, err
	}
	return k.repo.ListGroupVideos(ctx, groupID)
}

func (k *KnowledgeService) ownGroup(ctx context.Context, userID, groupID int) error {
	g, err := k.repo.GetGroup(ctx, userID, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}
	return nil
}

func (k *KnowledgeService) emit(ev ports.IngestEvent) {
	select {
	case k.events <- ev:
	default:
		log.Printf("[INGEST][DROP] room=%s stage=%s", ev.RoomID, ev.Stage)
	}
}
