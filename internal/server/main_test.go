package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/featureflags"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// gormNotFound returns the storage-layer not-found error for mock setups.
func gormNotFound() error {
	return gorm.ErrRecordNotFound
}

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, q repository.ListQuery) ([]*models.Post, repository.PageMeta, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, repository.PageMeta{}, args.Error(2)
	}
	return args.Get(0).([]*models.Post), args.Get(1).(repository.PageMeta), args.Error(2)
}

func (m *MockPostRepository) ExistsByTitleAndUser(ctx context.Context, title string, userID uint) (bool, error) {
	args := m.Called(ctx, title, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, q repository.ListQuery) ([]*models.Comment, repository.PageMeta, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, repository.PageMeta{}, args.Error(2)
	}
	return args.Get(0).([]*models.Comment), args.Get(1).(repository.PageMeta), args.Error(2)
}

func (m *MockCommentRepository) ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

// testDeps bundles the mock repositories behind a Server wired for tests.
type testDeps struct {
	userRepo    *MockUserRepository
	postRepo    *MockPostRepository
	commentRepo *MockCommentRepository
}

func newTestServer() (*Server, *testDeps) {
	deps := &testDeps{
		userRepo:    new(MockUserRepository),
		postRepo:    new(MockPostRepository),
		commentRepo: new(MockCommentRepository),
	}
	s := &Server{
		config: &config.Config{
			Env:       "test",
			BaseURL:   "http://localhost:8080",
			MediaDir:  "media",
			JWTSecret: "test-secret-used-only-in-tests",
		},
		featureFlags: featureflags.NewManager(""),
		userRepo:     deps.userRepo,
		postRepo:     deps.postRepo,
		commentRepo:  deps.commentRepo,
	}
	s.authService = service.NewAuthService(deps.userRepo)
	s.postService = service.NewPostService(deps.postRepo)
	s.commentService = service.NewCommentService(deps.commentRepo, deps.postRepo)
	middleware.InitMiddleware(s.config)
	return s, deps
}

// withUser simulates the auth middleware by planting a user ID in locals.
func withUser(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", id)
		return c.Next()
	}
}

// decodeBody parses a response envelope into a generic map.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
