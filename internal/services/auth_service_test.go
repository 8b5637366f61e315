package services_test

import (
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Test successful registration
	user := &models.User{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	}

	mockRepo.On("GetByUsername", user.Username).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("GetByEmail", user.Email).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test username already taken
	user2 := &models.User{Username: "testuser", Email: "other@example.com", Password: "password123"}
	mockRepo.On("GetByUsername", user2.Username).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user2)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrUserExists))
	mockRepo.AssertExpectations(t)

	// Test email already registered
	user3 := &models.User{Username: "otheruser", Email: "test@example.com", Password: "password123"}
	mockRepo.On("GetByUsername", user3.Username).Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("GetByEmail", user3.Email).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user3)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrUserExists))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_Invalid(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Missing email fails validation before any repository call
	err := authService.RegisterUser(&models.User{
		Username: "testuser",
		Password: "password123",
	})
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-1",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	token, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	mockRepo.AssertExpectations(t)

	// Test wrong password
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	token, err = authService.LoginUser("testuser", "wrongpassword")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
	assert.Empty(t, token)
	mockRepo.AssertExpectations(t)

	// Test unknown username maps to the same error as a wrong password
	mockRepo.On("GetByUsername", "nobody").Return(nil, repositories.ErrNotFound).Once()
	token, err = authService.LoginUser("nobody", "password123")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInvalidCredentials))
	assert.Empty(t, token)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_TokenRoles(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	cases := []struct {
		name      string
		user      *models.User
		wantRoles []string
	}{
		{
			name:      "customer",
			user:      &models.User{ID: "user-1", Username: "alice", Password: string(hashedPassword)},
			wantRoles: []string{"customer"},
		},
		{
			name:      "admin",
			user:      &models.User{ID: "user-2", Username: "root", Password: string(hashedPassword), IsAdmin: true},
			wantRoles: []string{"customer", "admin"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo.On("GetByUsername", tc.user.Username).Return(tc.user, nil).Once()
			token, err := authService.LoginUser(tc.user.Username, "password123")
			assert.NoError(t, err)

			claims, err := authService.ValidateToken(token)
			assert.NoError(t, err)
			assert.Equal(t, tc.user.ID, claims["user_id"])

			rawRoles, ok := claims["roles"].([]interface{})
			assert.True(t, ok)
			roles := make([]string, 0, len(rawRoles))
			for _, r := range rawRoles {
				roles = append(roles, r.(string))
			}
			assert.Equal(t, tc.wantRoles, roles)
		})
	}
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")

	// Garbage token
	_, err := authService.ValidateToken("not-a-token")
	assert.Error(t, err)

	// Token signed with a different secret
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "user-1"})
	forged, _ := other.SignedString([]byte("wrong_secret"))
	_, err = authService.ValidateToken(forged)
	assert.Error(t, err)
}
