package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newUserTestServer(userRepo *MockUserRepository, commentRepo *MockCommentRepository) *Server {
	if commentRepo == nil {
		commentRepo = new(MockCommentRepository)
	}
	return &Server{
		userService:    service.NewUserService(userRepo),
		commentService: service.NewCommentService(commentRepo, new(MockPostRepository), userRepo),
	}
}

func TestGetUser(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newUserTestServer(mockRepo, nil)

	app.Get("/users/:id", s.GetUser)

	tests := []struct {
		name           string
		userIDParam    string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:        "Success",
			userIDParam: "1",
			mockSetup: func() {
				mockRepo.On("GetByIDDeep", mock.Anything, uint(1)).
					Return(&models.User{ID: 1, Email: "a@b.com"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid ID",
			userIDParam:    "abc",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Not Found",
			userIDParam: "99",
			mockSetup: func() {
				mockRepo.On("GetByIDDeep", mock.Anything, uint(99)).
					Return(nil, models.NewNotFoundError("User", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.userIDParam, nil)
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

// The context handlers hand to services must be the enriched user context,
// not the raw fasthttp one, so request ids reach the logger in deep layers.
func TestGetUser_ContextCarriesRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByIDDeep", mock.MatchedBy(func(ctx context.Context) bool {
		rid, ok := ctx.Value(middleware.RequestIDKey).(string)
		return ok && rid != ""
	}), uint(1)).Return(&models.User{ID: 1}, nil)

	s := newUserTestServer(mockRepo, nil)
	app.Get("/users/:id", s.GetUser)

	req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(repo *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"email":"new@b.com","name":"New"}`,
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Nested profile",
			body: `{"email":"p@b.com","name":"P","profile":{"bio":"hi"}}`,
			mockSetup: func(repo *MockUserRepository) {
				repo.On("CreateWithProfile", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing email",
			body:           `{"name":"Anon"}`,
			mockSetup:      func(_ *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate email",
			body: `{"email":"dup@b.com"}`,
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
					Return(models.NewConflictError("A user with this email already exists"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Malformed body",
			body:           `{not json`,
			mockSetup:      func(_ *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			s := newUserTestServer(mockRepo, nil)
			app.Post("/users", s.CreateUser)

			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestCreateUserWithProfile(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("CreateWithProfile", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)
	s := newUserTestServer(mockRepo, nil)
	app.Post("/users/with-profile", s.CreateUserWithProfile)

	req := httptest.NewRequest(http.MethodPost, "/users/with-profile",
		strings.NewReader(`{"email":"p@b.com","name":"P","profile":{"bio":"hi"}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Missing profile object is rejected before the service is consulted.
	req = httptest.NewRequest(http.MethodPost, "/users/with-profile",
		strings.NewReader(`{"email":"q@b.com","name":"Q"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateUserProfile(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newUserTestServer(mockRepo, nil)
	app.Patch("/users/:id/profile", s.UpdateUserProfile)

	mockRepo.On("UpsertProfile", mock.Anything, uint(1), mock.AnythingOfType("*models.Profile")).
		Return(&models.Profile{ID: 3, UserID: 1, Bio: "updated"}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/users/1/profile",
		strings.NewReader(`{"bio":"updated"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeleteUser(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newUserTestServer(mockRepo, nil)
	app.Delete("/users/:id", s.DeleteUser)

	mockRepo.On("Delete", mock.Anything, uint(1)).Return(nil)
	mockRepo.On("Delete", mock.Anything, uint(99)).Return(models.NewNotFoundError("User", 99))

	req := httptest.NewRequest(http.MethodDelete, "/users/1", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/users/99", nil)
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetUserStats(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newUserTestServer(mockRepo, nil)
	app.Get("/users/:id/stats", s.GetUserStats)

	mockRepo.On("GetByIDDeep", mock.Anything, uint(1)).Return(&models.User{
		ID:       1,
		Profile:  &models.Profile{ID: 1, UserID: 1},
		Posts:    []models.Post{{ID: 1, Published: true}},
		Comments: []models.Comment{{ID: 1}, {ID: 2}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/1/stats", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
