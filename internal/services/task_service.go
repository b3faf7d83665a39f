package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/taskhive/taskhive/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	// uuid v7 ids are time-ordered, so the id tie-break
	// keeps the order deterministic.
	const selectTasksByUserIDQuery = `
SELECT id,
       title,
       description,
       status,
       created_at,
       updated_at
FROM tasks
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTasksByUserIDQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	byID := make(map[string]*models.Task)
	for rows.Next() {
		task := &models.Task{
			UserID: userID,
			Tags:   []models.Tag{},
		}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
		byID[task.ID] = task
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	if len(tasks) == 0 {
		s.logger.Debug().
			Str("user_id", userID).
			Msg("no tasks found")
		return []*models.Task{}, nil
	}

	taskIDs := make([]string, len(tasks))
	for i, task := range tasks {
		taskIDs[i] = task.ID
	}

	const selectTagsByTaskIDsQuery = `
SELECT tt.task_id,
       t.id,
       t.name,
       t.color,
       t.created_at
FROM task_tags tt
JOIN tags t ON t.id = tt.tag_id
WHERE tt.task_id = ANY ($1)
ORDER BY t.name
`
	tagRows, err := s.pgPool.Query(
		ctx,
		selectTagsByTaskIDsQuery,
		taskIDs,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tags by task ids")
		return nil, err
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var (
			taskID string
			tag    models.Tag
		)
		err = tagRows.Scan(
			&taskID,
			&tag.ID,
			&tag.Name,
			&tag.Color,
			&tag.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan tag")
			return nil, err
		}
		if task, ok := byID[taskID]; ok {
			task.Tags = append(task.Tags, tag)
		}
	}

	err = tagRows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Info().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("fetched tasks")
	return tasks, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := params.Status
	if status == "" {
		status = models.StatusPending
	}
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidTaskStatus
	}

	now := time.Now()
	task := &models.Task{
		UserID:      params.UserID,
		Title:       title,
		Description: trimDescription(params.Description),
		Status:      status,
		Tags:        []models.Tag{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   title,
                   description,
                   status,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err = tx.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")

	tags, err := s.resolveTags(ctx, tx, dedupeTagInputs(params.Tags))
	if err != nil {
		return nil, err
	}

	err = s.associateTags(ctx, tx, task.ID, tags)
	if err != nil {
		return nil, err
	}
	task.Tags = tags

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task := &models.Task{
		ID:     params.ID,
		UserID: params.UserID,
		Tags:   []models.Tag{},
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Ownership check before any mutation. A foreign task is
	// indistinguishable from a missing one.
	const selectTaskQuery = `
SELECT title,
       description,
       status,
       created_at
FROM tasks
WHERE id = $1 AND user_id = $2
FOR UPDATE
`
	err = tx.QueryRow(
		ctx,
		selectTaskQuery,
		task.ID,
		task.UserID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Status,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("task_id", task.ID).
				Str("user_id", task.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to select task")
		return nil, err
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = title
	}
	if params.Description != nil {
		task.Description = trimDescription(params.Description)
	}
	if params.Status != nil {
		if !models.IsValidStatus(*params.Status) {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *params.Status
	}
	task.UpdatedAt = time.Now()

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    status = $3,
    updated_at = $4
WHERE id = $5
`
	_, err = tx.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.Status,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("updated task")

	if params.Tags != nil {
		// Replace-all semantics: drop every association,
		// then re-resolve the new list.
		const deleteTaskTagsQuery = `
DELETE FROM task_tags
WHERE task_id = $1
`
		_, err = tx.Exec(
			ctx,
			deleteTaskTagsQuery,
			task.ID,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("task_id", task.ID).
				Msg("failed to delete task tags")
			return nil, err
		}

		tags, err := s.resolveTags(ctx, tx, dedupeTagInputs(*params.Tags))
		if err != nil {
			return nil, err
		}

		err = s.associateTags(ctx, tx, task.ID, tags)
		if err != nil {
			return nil, err
		}
		task.Tags = tags
	} else {
		tags, err := s.selectTaskTags(ctx, tx, task.ID)
		if err != nil {
			return nil, err
		}
		task.Tags = tags
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, params DeleteTaskParams) error {
	// task_tags rows go with the task via the schema cascade;
	// tag rows stay.
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	commandTag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		params.ID,
		params.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to delete task")
		return err
	}
	if commandTag.RowsAffected() == 0 {
		s.logger.Error().
			Str("task_id", params.ID).
			Str("user_id", params.UserID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Str("task_id", params.ID).
		Str("user_id", params.UserID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) selectTaskTags(ctx context.Context, tx pgx.Tx, taskID string) ([]models.Tag, error) {
	const selectTagsByTaskIDQuery = `
SELECT t.id,
       t.name,
       t.color,
       t.created_at
FROM task_tags tt
JOIN tags t ON t.id = tt.tag_id
WHERE tt.task_id = $1
ORDER BY t.name
`
	rows, err := tx.Query(
		ctx,
		selectTagsByTaskIDQuery,
		taskID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to select tags by task id")
		return nil, err
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		err = rows.Scan(
			&tag.ID,
			&tag.Name,
			&tag.Color,
			&tag.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan tag")
			return nil, err
		}
		tags = append(tags, tag)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return tags, nil
}

func trimDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
