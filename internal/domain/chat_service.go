package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
)

const retrievalTopK = 20

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrNoGroups        = errors.New("a session needs at least one group")
)

var greetings = map[string]bool{
	"hi":          true,
	"hello":       true,
	"hey":         true,
	"how are you": true,
}

const greetingReply = "Hello! How can I assist you today?"

type ChatService struct {
	chats     ports.ChatRepository
	workspace ports.WorkspaceRepository
	vectors   ports.VectorStore
	llm       ports.LLMService
	embed     ports.EmbeddingService
}

func NewChatService(
	chats ports.ChatRepository,
	workspace ports.WorkspaceRepository,
	vectors ports.VectorStore,
	llm ports.LLMService,
	embed ports.EmbeddingService,
) *ChatService {
	return &ChatService{
		chats:     chats,
		workspace: workspace,
		vectors:   vectors,
		llm:       llm,
		embed:     embed,
	}
}

// CreateSession binds a named session to the user's knowledge groups.
func (c *ChatService) CreateSession(ctx context.Context, userID int, name string, groupIDs []int) (*models.ChatSession, error) {
	if len(groupIDs) == 0 {
		return nil, ErrNoGroups
	}
	groups, err := c.workspace.GetGroups(ctx, userID, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve groups: %w", err)
	}
	if len(groups) != len(groupIDs) {
		return nil, ErrGroupNotFound
	}
	return c.chats.InsertSession(ctx, name, groupIDs)
}

func (c *ChatService) GetSession(ctx context.Context, userID, id int) (*models.ChatSession, error) {
	s, err := c.chats.GetSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (c *ChatService) ListSessions(ctx context.Context, userID int) ([]models.ChatSession, error) {
	return c.chats.ListSessions(ctx, userID)
}

func (c *ChatService) DeleteSession(ctx context.Context, userID, id int) error {
	return c.chats.SoftDeleteSession(ctx, userID, id)
}

// Ask answers a query inside a conversation. A zero conversationID starts a
// new conversation in the session. Plain greetings skip retrieval entirely.
func (c *ChatService) Ask(ctx context.Context, userID, sessionID, conversationID int, query string) (string, int, error) {
	if greetings[strings.ToLower(strings.TrimSpace(query))] {
		return greetingReply, conversationID, nil
	}

	if conversationID == 0 {
		if _, err := c.GetSession(ctx, userID, sessionID); err != nil {
			return "", 0, err
		}
		conv, err := c.chats.InsertConversation(ctx, &models.Conversation{
			SessionID: sessionID,
			Name:      firstWords(query, 6),
		})
		if err != nil {
			return "", 0, fmt.Errorf("create conversation: %w", err)
		}
		conversationID = conv.ID
	}

	groups, err := c.conversationGroups(ctx, userID, conversationID)
	if err != nil {
		return "", 0, err
	}
	if len(groups) == 0 {
		return "", 0, ErrNoGroups
	}

	queryVec, err := c.embed.Embed(ctx, query)
	if err != nil {
		return "", 0, fmt.Errorf("embed query: %w", err)
	}

	var sources []string
	var tones, styles []string
	for i, g := range groups {
		chunks, err := c.vectors.GroupChunks(ctx, g.ID)
		if err != nil {
			return "", 0, fmt.Errorf("load chunks: %w", err)
		}
		top := TopChunks(queryVec, chunks, retrievalTopK)
		if len(top) == 0 {
			continue
		}

		var texts []string
		for _, ch := range top {
			texts = append(texts, strings.TrimSpace(ch.Content))
		}
		sources = append(sources, fmt.Sprintf("Formatted content for Group %d\n\n%s", i+1, strings.Join(texts, "\n\n")))

		gt, gs, err := c.groupToneStyle(ctx, g.ID)
		if err != nil {
			return "", 0, err
		}
		tones = append(tones, gt...)
		styles = append(styles, gs...)
	}

	history, err := c.chats.ListMessages(ctx, conversationID)
	if err != nil {
		return "", 0, fmt.Errorf("load history: %w", err)
	}
	var historyLines []string
	for _, m := range history {
		historyLines = append(historyLines, fmt.Sprintf("User: %s\nAssistant: %s", m.Query, m.Response))
	}

	instructions, err := c.chats.ListInstructions(ctx, userID, true)
	if err != nil {
		return "", 0, fmt.Errorf("load instructions: %w", err)
	}
	var instructionLines []string
	for _, in := range instructions {
		instructionLines = append(instructionLines, "Instruction: "+in.Content)
	}

	prompt := fmt.Sprintf(chatPrompt,
		query,
		strings.Join(sources, "\n\n---\n\n"),
		orDefault(strings.Join(dedupeStrings(tones), ", "), "Neutral"),
		orDefault(strings.Join(dedupeStrings(styles), ", "), "Plain"),
		strings.Join(historyLines, "\n"),
		strings.Join(instructionLines, "\n"),
	)

	answer, err := c.llm.Generate(ctx, prompt)
	if err != nil {
		return "", 0, fmt.Errorf("generate answer: %w", err)
	}
	answer = strings.TrimSpace(answer)

	if err := c.chats.InsertMessage(ctx, &models.ChatMessage{
		ConversationID: conversationID,
		UserID:         userID,
		Query:          strings.TrimSpace(query),
		Response:       answer,
	}); err != nil {
		return "", 0, fmt.Errorf("store message: %w", err)
	}
	return answer, conversationID, nil
}

// History returns a conversation's messages, owner only.
func (c *ChatService) History(ctx context.Context, userID, conversationID int) ([]models.ChatMessage, error) {
	groups, err := c.conversationGroups(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, ErrSessionNotFound
	}
	return c.chats.ListMessages(ctx, conversationID)
}

// conversationGroups resolves a conversation's groups and rejects callers who
// do not own them.
func (c *ChatService) conversationGroups(ctx context.Context, userID, conversationID int) ([]models.Group, error) {
	groups, err := c.chats.GetConversationGroups(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("resolve groups: %w", err)
	}
	for _, g := range groups {
		if g.UserID != userID {
			return nil, ErrSessionNotFound
		}
	}
	return groups, nil
}

func (c *ChatService) CreateInstruction(ctx context.Context, userID int, name, content string, active bool) (*models.Instruction, error) {
	return c.chats.InsertInstruction(ctx, &models.Instruction{
		UserID:   userID,
		Name:     name,
		Content:  content,
		IsActive: active,
	})
}

func (c *ChatService) UpdateInstruction(ctx context.Context, userID, id int, name, content string, active bool) error {
	return c.chats.UpdateInstruction(ctx, &models.Instruction{
		ID:       id,
		UserID:   userID,
		Name:     name,
		Content:  content,
		IsActive: active,
	})
}

func (c *ChatService) DeleteInstruction(ctx context.Context, userID, id int) error {
	return c.chats.SoftDeleteInstruction(ctx, userID, id)
}

func (c *ChatService) ListInstructions(ctx context.Context, userID int) ([]models.Instruction, error) {
	return c.chats.ListInstructions(ctx, userID, false)
}

// groupToneStyle collects the tones and styles already read out of a group's
// documents and videos.
func (c *ChatService) groupToneStyle(ctx context.Context, groupID int) (tones, styles []string, err error) {
	docs, err := c.workspace.ListDocuments(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("list documents: %w", err)
	}
	videos, err := c.workspace.ListGroupVideos(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("list videos: %w", err)
	}

	for _, d := range docs {
		if d.Tone != "" {
			tones = append(tones, d.Tone)
		}
		if d.Style != "" {
			styles = append(styles, d.Style)
		}
	}
	for _, v := range videos {
		if v.Tone != "" {
			tones = append(tones, v.Tone)
		}
		if v.Style != "" {
			styles = append(styles, v.Style)
		}
	}
	return tones, styles, nil
}

// TopChunks ranks chunks by cosine similarity to the query vector and returns
// the best k in their original document order.
func TopChunks(query []float32, chunks []models.KnowledgeChunk, k int) []models.KnowledgeChunk {
	type scored struct {
		chunk models.KnowledgeChunk
		score float64
	}

	ranked := make([]scored, 0, len(chunks))
	for _, ch := range chunks {
		ranked = append(ranked, scored{chunk: ch, score: CosineSimilarity(query, ch.Embedding)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	out := make([]models.KnowledgeChunk, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.chunk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChunkIndex < out[j].ChunkIndex })
	return out
}

// CosineSimilarity of two vectors; 0 for mismatched or zero-length input.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
