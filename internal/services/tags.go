package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive/internal/models"
)

// dedupeTagInputs trims tag names, drops empty ones and collapses
// names differing only in case to the first occurrence. Storage
// keeps the original casing of that first occurrence. Missing
// colors fall back to the default.
func dedupeTagInputs(inputs []TagInput) []TagInput {
	seen := make(map[string]struct{}, len(inputs))
	deduped := make([]TagInput, 0, len(inputs))
	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		color := strings.TrimSpace(input.Color)
		if color == "" {
			color = models.DefaultTagColor
		}
		deduped = append(deduped, TagInput{Name: name, Color: color})
	}
	return deduped
}

// resolveTags upserts every input by name and returns the resolved
// rows. The upsert rides the unique constraint on tags.name, so two
// requests racing on the same new name both get the same row. On
// reuse the existing color wins over the supplied one.
func (s *taskServiceImpl) resolveTags(ctx context.Context, tx pgx.Tx, inputs []TagInput) ([]models.Tag, error) {
	const upsertTagQuery = `
INSERT INTO tags (id,
                  name,
                  color,
                  created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (name) DO UPDATE SET name = excluded.name
RETURNING id, name, color, created_at
`
	tags := make([]models.Tag, 0, len(inputs))
	for _, input := range inputs {
		tagUUID, err := uuid.NewV7()
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to generate tag uuid")
			return nil, err
		}

		var tag models.Tag
		err = tx.QueryRow(
			ctx,
			upsertTagQuery,
			tagUUID.String(),
			input.Name,
			input.Color,
			time.Now(),
		).Scan(
			&tag.ID,
			&tag.Name,
			&tag.Color,
			&tag.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("name", input.Name).
				Msg("failed to upsert tag")
			return nil, err
		}
		tags = append(tags, tag)
	}
	s.logger.Debug().
		Int("count", len(tags)).
		Msg("resolved tags")

	return tags, nil
}

// associateTags links the resolved tags to the task. Existing
// associations are expected to be gone already when replacing.
func (s *taskServiceImpl) associateTags(ctx context.Context, tx pgx.Tx, taskID string, tags []models.Tag) error {
	const insertTaskTagQuery = `
INSERT INTO task_tags (task_id, tag_id)
VALUES ($1, $2)
`
	for _, tag := range tags {
		_, err := tx.Exec(
			ctx,
			insertTaskTagQuery,
			taskID,
			tag.ID,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("task_id", taskID).
				Str("tag_id", tag.ID).
				Msg("failed to insert task tag")
			return err
		}
	}
	return nil
}
