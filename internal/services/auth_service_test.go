package services_test

import (
	"io"
	"log"
	"os"
	"testing"

	"heirloom/internal/models"
	"heirloom/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
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

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain is used to setup the test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	// Test successful registration: only the bcrypt hash reaches the store
	var created *models.User
	mockRepo.On("GetByUsername", "alice").Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
	}).Return(nil).Once()

	outcome, err := authService.RegisterUser("alice", "pw1234")
	assert.NoError(t, err)
	assert.Equal(t, services.RegisterCreated, outcome)
	assert.NotNil(t, created)
	assert.Equal(t, "alice", created.Username)
	assert.NotEqual(t, "pw1234", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("pw1234")))
	mockRepo.AssertExpectations(t)

	// Test duplicate username: pre-check reports a conflict, nothing is stored
	mockRepo.On("GetByUsername", "alice").Return(&models.User{ID: "user-1", Username: "alice"}, nil).Once()
	outcome, err = authService.RegisterUser("alice", "other")
	assert.NoError(t, err)
	assert.Equal(t, services.RegisterConflict, outcome)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "alice",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByUsername", "alice").Return(user, nil).Once()
	loggedIn, err := authService.LoginUser("alice", "pw1")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Equal(t, "alice", loggedIn.Username)
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByUsername", "alice").Return(user, nil).Once()
	_, err = authService.LoginUser("alice", "wrongpassword")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (user not found) - same generic error
	mockRepo.On("GetByUsername", "nobody").Return(nil, gorm.ErrRecordNotFound).Once()
	_, err = authService.LoginUser("nobody", "pw1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}
