package models

// KnowledgeChunk is one embedded slice of a group's knowledge base.
type KnowledgeChunk struct {
	ID         int       `db:"id"`
	GroupID    int       `db:"group_id"`
	ChunkIndex int       `db:"chunk_index"`
	Content    string    `db:"content"`
	Embedding  []float32 `db:"embedding"`
}
