package handlers

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// OrphanCleanupHandler sweeps rows whose referenced parent is gone. The
// synchronous cascades make this rare, but references are not enforced by
// the storage engine, so an interrupted delete can leave strays behind.
type OrphanCleanupHandler struct {
	pool *pgxpool.Pool
}

func NewOrphanCleanupHandler(pool *pgxpool.Pool) *OrphanCleanupHandler {
	return &OrphanCleanupHandler{pool: pool}
}

func (h *OrphanCleanupHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	log.Info().Msg("Starting orphan cleanup sweep")

	sweeps := []struct {
		name  string
		query string
	}{
		{
			name:  "comments_without_post",
			query: `DELETE FROM comments WHERE post_id NOT IN (SELECT id FROM posts)`,
		},
		{
			name:  "replies_without_parent",
			query: `DELETE FROM comments WHERE parent_id IS NOT NULL AND parent_id NOT IN (SELECT id FROM comments)`,
		},
		{
			name:  "bookmarks_without_post",
			query: `DELETE FROM bookmarks WHERE post_id NOT IN (SELECT id FROM posts)`,
		},
		{
			name:  "likes_without_comment",
			query: `DELETE FROM comment_likes WHERE comment_id NOT IN (SELECT id FROM comments)`,
		},
	}

	var total int64
	for _, sweep := range sweeps {
		tag, err := h.pool.Exec(ctx, sweep.query)
		if err != nil {
			log.Error().Err(err).Str("sweep", sweep.name).Msg("Orphan sweep failed")
			return fmt.Errorf("sweep %s: %w", sweep.name, err)
		}
		if tag.RowsAffected() > 0 {
			log.Info().
				Str("sweep", sweep.name).
				Int64("deleted", tag.RowsAffected()).
				Msg("Removed orphaned rows")
		}
		total += tag.RowsAffected()
	}

	log.Info().
		Int64("total_deleted", total).
		Msg("Orphan cleanup sweep finished")

	return nil
}
