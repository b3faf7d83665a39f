package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/taskhive/taskhive/internal/models"
)

type userServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewUserService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) UserService {
	return &userServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{
		ID: userID,
	}

	const selectUserByIDQuery = `
SELECT name,
       email,
       created_at,
       updated_at
FROM users
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByIDQuery,
		user.ID,
	).Scan(
		&user.Name,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Str("user_id", user.ID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to select user by id")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("selected user by id")

	return user, nil
}

func (s *userServiceImpl) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)

	const selectEmailExistsQuery = `
SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
`
	var taken bool
	err := s.pgPool.QueryRow(
		ctx,
		selectEmailExistsQuery,
		email,
	).Scan(&taken)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("email", email).
			Msg("failed to check email")
		return false, err
	}
	s.logger.Debug().
		Str("email", email).
		Bool("taken", taken).
		Msg("checked email")

	return taken, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	// A single statement: the schema cascades users -> tasks -> task_tags,
	// so the whole subtree goes atomically. Tag rows stay.
	const deleteUserQuery = `
DELETE FROM users
WHERE id = $1
`
	commandTag, err := s.pgPool.Exec(
		ctx,
		deleteUserQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to delete user")
		return err
	}
	if commandTag.RowsAffected() == 0 {
		s.logger.Error().
			Str("user_id", userID).
			Msg("user not found")
		return ErrUserNotFound
	}

	s.logger.Info().
		Str("user_id", userID).
		Msg("deleted user")
	return nil
}
