package services

import (
	"context"
	"errors"
	"time"

	"github.com/taskhive/taskhive/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrTaskNotFound         = errors.New("task not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
)

type AuthService interface {
	// Register creates a user with the given name, email and password.
	//
	// It stores the email trimmed and lowercased, hashes the password,
	// generates a unique ID and issues a fresh JWT token.
	//
	// It returns ErrUserAlreadyExists if the user
	// with the given email already exists.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login authenticates the user by email and password
	// and issues a fresh JWT token.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist or ErrUserPasswordMismatch if the
	// given password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)

	// ParseToken verifies the given JWT token and returns the
	// user ID it was issued for. Verification is stateless;
	// no store lookup is performed.
	ParseToken(token string) (string, error)
}

type UserService interface {
	// GetUserByID returns the user with the given ID or
	// ErrUserNotFound if it doesn't exist.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// IsEmailTaken reports whether a user with the given
	// email is already registered.
	IsEmailTaken(ctx context.Context, email string) (bool, error)

	// DeleteUser deletes the user with the given ID together
	// with all their tasks and tag associations. Tag rows are
	// kept since tags are shared between users.
	//
	// It returns ErrUserNotFound if the user doesn't exist.
	DeleteUser(ctx context.Context, userID string) error
}

type TaskService interface {
	// ListTasks returns all tasks owned by the given user,
	// newest-created first, with their tags resolved.
	ListTasks(ctx context.Context, userID string) ([]*models.Task, error)

	// CreateTask creates a task owned by the given user.
	//
	// The title is trimmed and must be non-empty, the status
	// defaults to pending, and the tag list is deduplicated
	// case-insensitively and upserted by name.
	//
	// It returns ErrTitleRequired or ErrInvalidTaskStatus on
	// invalid input.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// UpdateTask applies the non-nil fields of params to the task.
	//
	// A non-nil tag list, even an empty one, fully replaces the
	// task's tag associations; a nil tag list leaves them untouched.
	//
	// It returns ErrTaskNotFound if the task doesn't exist or is
	// owned by a different user.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask deletes the task together with its tag
	// associations. Tag rows are kept.
	//
	// It returns ErrTaskNotFound if the task doesn't exist or is
	// owned by a different user.
	DeleteTask(ctx context.Context, params DeleteTaskParams) error
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User           *models.User
	Token          string
	TokenExpiresAt time.Time
}

// TagInput is a tag reference as supplied by the caller.
// The color is only used when the tag doesn't exist yet.
type TagInput struct {
	Name  string
	Color string
}

type CreateTaskParams struct {
	UserID      string
	Title       string
	Description *string
	Status      string
	Tags        []TagInput
}

type UpdateTaskParams struct {
	ID          string
	UserID      string
	Title       *string
	Description *string
	Status      *string
	Tags        *[]TagInput
}

type DeleteTaskParams struct {
	ID     string
	UserID string
}
