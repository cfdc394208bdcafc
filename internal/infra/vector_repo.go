package infra

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/showrunner/internal/models"
	"github.com/Vovarama1992/showrunner/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresVectorStore struct {
	pool *pgxpool.Pool
}

func NewPostgresVectorStore(pool *pgxpool.Pool) ports.VectorStore {
	return &PostgresVectorStore{pool: pool}
}

// ReplaceGroupChunks rewrites the whole embedding set of a group. Re-ingesting
// always replaces; partial updates would leave stale chunks ranked against
// fresh ones.
func (r *PostgresVectorStore) ReplaceGroupChunks(ctx context.Context, groupID int, chunks []models.KnowledgeChunk) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM knowledge_chunks WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}

	for _, c := range chunks {
		if _, err := tx.Exec(ctx, `
			INSERT INTO knowledge_chunks (group_id, chunk_index, content, embedding)
			VALUES ($1, $2, $3, $4)
		`, groupID, c.ChunkIndex, c.Content, c.Embedding); err != nil {
			return fmt.Errorf("insert chunk %d: %w", c.ChunkIndex, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *PostgresVectorStore) GroupChunks(ctx context.Context, groupID int) ([]models.KnowledgeChunk, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, group_id, chunk_index, content, embedding
		FROM knowledge_chunks
		WHERE group_id = $1
		ORDER BY chunk_index
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("group chunks: %w", err)
	}
	defer rows.Close()

	var out []models.KnowledgeChunk
	for rows.Next() {
		var c models.KnowledgeChunk
		if err := rows.Scan(&c.ID, &c.GroupID, &c.ChunkIndex, &c.Content, &c.Embedding); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
