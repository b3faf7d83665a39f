package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/services"
)

var errMockStore = errors.New("store unavailable")

type mockAuthService struct {
	RegisterFunc   func(ctx context.Context, params services.RegisterParams) (*services.AuthResult, error)
	LoginFunc      func(ctx context.Context, params services.LoginParams) (*services.AuthResult, error)
	ParseTokenFunc func(token string) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, params services.RegisterParams) (*services.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, params)
	}
	return nil, errMockStore
}

func (m *mockAuthService) Login(ctx context.Context, params services.LoginParams) (*services.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, params)
	}
	return nil, errMockStore
}

func (m *mockAuthService) ParseToken(token string) (string, error) {
	if m.ParseTokenFunc != nil {
		return m.ParseTokenFunc(token)
	}
	return "", errors.New("invalid token")
}

type mockUserService struct {
	GetUserByIDFunc  func(ctx context.Context, userID string) (*models.User, error)
	IsEmailTakenFunc func(ctx context.Context, email string) (bool, error)
	DeleteUserFunc   func(ctx context.Context, userID string) error
}

func (m *mockUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, userID)
	}
	return nil, services.ErrUserNotFound
}

func (m *mockUserService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	if m.IsEmailTakenFunc != nil {
		return m.IsEmailTakenFunc(ctx, email)
	}
	return false, nil
}

func (m *mockUserService) DeleteUser(ctx context.Context, userID string) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, userID)
	}
	return nil
}

type mockTaskService struct {
	ListTasksFunc  func(ctx context.Context, userID string) ([]*models.Task, error)
	CreateTaskFunc func(ctx context.Context, params services.CreateTaskParams) (*models.Task, error)
	UpdateTaskFunc func(ctx context.Context, params services.UpdateTaskParams) (*models.Task, error)
	DeleteTaskFunc func(ctx context.Context, params services.DeleteTaskParams) error
}

func (m *mockTaskService) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	if m.ListTasksFunc != nil {
		return m.ListTasksFunc(ctx, userID)
	}
	return []*models.Task{}, nil
}

func (m *mockTaskService) CreateTask(ctx context.Context, params services.CreateTaskParams) (*models.Task, error) {
	if m.CreateTaskFunc != nil {
		return m.CreateTaskFunc(ctx, params)
	}
	return nil, errMockStore
}

func (m *mockTaskService) UpdateTask(ctx context.Context, params services.UpdateTaskParams) (*models.Task, error) {
	if m.UpdateTaskFunc != nil {
		return m.UpdateTaskFunc(ctx, params)
	}
	return nil, services.ErrTaskNotFound
}

func (m *mockTaskService) DeleteTask(ctx context.Context, params services.DeleteTaskParams) error {
	if m.DeleteTaskFunc != nil {
		return m.DeleteTaskFunc(ctx, params)
	}
	return services.ErrTaskNotFound
}

// acceptAnyToken resolves every bearer token to the given user id.
func acceptAnyToken(userID string) *mockAuthService {
	return &mockAuthService{
		ParseTokenFunc: func(string) (string, error) {
			return userID, nil
		},
	}
}

func newTestRouter(auth services.AuthService, users services.UserService, tasks services.TaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := New(zerolog.Nop(), auth, users, tasks)

	router := gin.New()
	router.GET("/health", h.HandleHealth)

	api := router.Group("/api")

	authRouter := api.Group("/auth")
	authRouter.POST("/register", h.HandleRegister)
	authRouter.POST("/login", h.HandleLogin)
	authRouter.POST("/logout", h.HandleLogout)
	authRouter.GET("/check-email", h.HandleCheckEmail)
	authRouter.GET("/me", h.HandleAuthMiddleware, h.HandleGetMe)
	authRouter.DELETE("/me", h.HandleAuthMiddleware, h.HandleDeleteMe)

	tasksRouter := api.Group("/tasks", h.HandleAuthMiddleware)
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)

	return router
}

func doRequest(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&mockAuthService{}, &mockUserService{}, &mockTaskService{})

	w := doRequest(router, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"timestamp"`) {
		t.Errorf("body has no timestamp: %s", w.Body.String())
	}
}
