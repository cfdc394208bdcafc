package domain

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/showrunner/internal/models"
)

type fakeChatRepo struct {
	convGroups map[int][]models.Group
	messages   map[int][]models.ChatMessage
}

func (f *fakeChatRepo) InsertSession(_ context.Context, name string, groupIDs []int) (*models.ChatSession, error) {
	return &models.ChatSession{ID: 1, Name: name, GroupIDs: groupIDs}, nil
}

func (f *fakeChatRepo) GetSession(_ context.Context, _, _ int) (*models.ChatSession, error) {
	return nil, nil
}

func (f *fakeChatRepo) ListSessions(_ context.Context, _ int) ([]models.ChatSession, error) {
	return nil, nil
}

func (f *fakeChatRepo) SoftDeleteSession(_ context.Context, _, _ int) error { return nil }

func (f *fakeChatRepo) InsertConversation(_ context.Context, c *models.Conversation) (*models.Conversation, error) {
	c.ID = 1
	return c, nil
}

func (f *fakeChatRepo) GetConversationGroups(_ context.Context, conversationID int) ([]models.Group, error) {
	return f.convGroups[conversationID], nil
}

func (f *fakeChatRepo) InsertMessage(_ context.Context, m *models.ChatMessage) error {
	f.messages[m.ConversationID] = append(f.messages[m.ConversationID], *m)
	return nil
}

func (f *fakeChatRepo) ListMessages(_ context.Context, conversationID int) ([]models.ChatMessage, error) {
	return f.messages[conversationID], nil
}

func (f *fakeChatRepo) InsertInstruction(_ context.Context, in *models.Instruction) (*models.Instruction, error) {
	return in, nil
}

func (f *fakeChatRepo) UpdateInstruction(_ context.Context, _ *models.Instruction) error { return nil }

func (f *fakeChatRepo) SoftDeleteInstruction(_ context.Context, _, _ int) error { return nil }

func (f *fakeChatRepo) ListInstructions(_ context.Context, _ int, _ bool) ([]models.Instruction, error) {
	return nil, nil
}

func TestHistoryOwnerOnly(t *testing.T) {
	repo := &fakeChatRepo{
		convGroups: map[int][]models.Group{
			5: {{ID: 3, UserID: 42}},
		},
		messages: map[int][]models.ChatMessage{
			5: {{ConversationID: 5, UserID: 42, Query: "hook ideas", Response: "here you go"}},
		},
	}
	svc := NewChatService(repo, nil, nil, nil, nil)
	ctx := context.Background()

	_, err := svc.History(ctx, 7, 5)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	messages, err := svc.History(ctx, 42, 5)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestHistoryUnknownConversation(t *testing.T) {
	repo := &fakeChatRepo{
		convGroups: map[int][]models.Group{},
		messages:   map[int][]models.ChatMessage{},
	}
	svc := NewChatService(repo, nil, nil, nil, nil)

	_, err := svc.History(context.Background(), 7, 99)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAskRejectsForeignConversation(t *testing.T) {
	repo := &fakeChatRepo{
		convGroups: map[int][]models.Group{
			5: {{ID: 3, UserID: 42}},
		},
		messages: map[int][]models.ChatMessage{},
	}
	svc := NewChatService(repo, nil, nil, nil, nil)

	_, _, err := svc.Ask(context.Background(), 7, 1, 5, "write me a hook")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, repo.messages[5])
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"length mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestTopChunksRanksThenRestoresOrder(t *testing.T) {
	query := []float32{1, 0}
	chunks := []models.KnowledgeChunk{
		{ChunkIndex: 0, Content: "off topic", Embedding: []float32{0, 1}},
		{ChunkIndex: 1, Content: "relevant one", Embedding: []float32{1, 0.1}},
		{ChunkIndex: 2, Content: "relevant two", Embedding: []float32{1, 0}},
		{ChunkIndex: 3, Content: "mildly related", Embedding: []float32{0.5, 0.8}},
	}

	top := TopChunks(query, chunks, 2)

	assert.Len(t, top, 2)
	// best two by similarity, re-sorted back into document order
	assert.Equal(t, 1, top[0].ChunkIndex)
	assert.Equal(t, 2, top[1].ChunkIndex)
}

func TestTopChunksFewerThanK(t *testing.T) {
	chunks := []models.KnowledgeChunk{
		{ChunkIndex: 0, Embedding: []float32{1, 0}},
	}
	top := TopChunks([]float32{1, 0}, chunks, 20)
	assert.Len(t, top, 1)
}

func TestTopChunksEmpty(t *testing.T) {
	assert.Empty(t, TopChunks([]float32{1}, nil, 5))
}

func TestGreetingShortCircuit(t *testing.T) {
	for _, q := range []string{"hi", "Hello", " HEY ", "how are you"} {
		assert.True(t, greetings[strings.ToLower(strings.TrimSpace(q))], "query %q should be a greeting", q)
	}
	assert.False(t, greetings[strings.ToLower("hello, write me a script")])
}

func TestFirstWords(t *testing.T) {
	assert.Equal(t, "one two three", firstWords("one two three", 6))
	assert.Equal(t, "a b c d e f", firstWords("a b c d e f g h", 6))
	assert.Equal(t, "", firstWords("   ", 6))
}
