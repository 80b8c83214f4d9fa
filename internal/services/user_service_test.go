package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/onerilhan/go-betting-api/internal/models"
	"github.com/onerilhan/go-betting-api/internal/svcerr"
)

// TestUserService_Register_Success fan rolüyle kayıt senaryosunu test eder.
func TestUserService_Register_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	req := &models.CreateUserRequest{
		Email:     "taraftar@example.com",
		Password:  "gizli123",
		FirstName: "Ali",
		LastName:  "Yılmaz",
		Role:      models.RoleFan,
	}

	mockUserRepo.On("GetByEmail", req.Email).Return(nil, svcerr.ErrNotFound)
	mockUserRepo.On("Create", mock.MatchedBy(func(r *models.CreateUserRequest) bool {
		// Şifre hash'lenmiş olmalı, düz metin asla repo'ya gitmez
		return r.Email == "taraftar@example.com" && r.Password != "gizli123"
	})).Return(&models.User{ID: 1, Email: req.Email, Role: models.RoleFan}, nil)

	// Act
	user, err := userService.Register(req)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, models.RoleFan, user.Role)
	mockUserRepo.AssertExpectations(t)
}

// TestUserService_Register_AdminRejected public kayıtla admin açılamadığını test eder.
func TestUserService_Register_AdminRejected(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("GetByEmail", mock.Anything).Return(nil, svcerr.ErrNotFound)

	// Act
	_, err := userService.Register(&models.CreateUserRequest{
		Email:     "kotu@example.com",
		Password:  "gizli123",
		FirstName: "Kötü",
		LastName:  "Niyet",
		Role:      models.RoleAdmin,
	})

	// Assert
	assert.Error(t, err)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// TestUserService_Register_DefaultRole boş rolün fan'a düştüğünü test eder.
func TestUserService_Register_DefaultRole(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("GetByEmail", mock.Anything).Return(nil, svcerr.ErrNotFound)
	mockUserRepo.On("Create", mock.MatchedBy(func(r *models.CreateUserRequest) bool {
		return r.Role == models.RoleFan
	})).Return(&models.User{ID: 2, Role: models.RoleFan}, nil)

	// Act
	_, err := userService.Register(&models.CreateUserRequest{
		Email:     "bos@example.com",
		Password:  "gizli123",
		FirstName: "Boş",
		LastName:  "Rol",
	})

	// Assert
	assert.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
}

// TestUserService_Register_DuplicateEmail aynı email ile ikinci kaydın reddedildiğini test eder.
func TestUserService_Register_DuplicateEmail(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	mockUserRepo.On("GetByEmail", "var@example.com").Return(&models.User{ID: 9}, nil)

	// Act
	_, err := userService.Register(&models.CreateUserRequest{
		Email:    "var@example.com",
		Password: "gizli123",
	})

	// Assert
	assert.Error(t, err)
	mockUserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// TestUserService_Login_Success doğru şifreyle token döndüğünü test eder.
func TestUserService_Login_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	hashed, err := bcrypt.GenerateFromPassword([]byte("gizli123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	mockUserRepo.On("GetByEmail", "taraftar@example.com").Return(&models.User{
		ID:       1,
		Email:    "taraftar@example.com",
		Password: string(hashed),
		Role:     models.RoleFan,
	}, nil)

	// Act
	response, err := userService.Login(&models.LoginRequest{
		Email:    "taraftar@example.com",
		Password: "gizli123",
	})

	// Assert
	assert.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, 1, response.User.ID)
	mockUserRepo.AssertExpectations(t)
}

// TestUserService_Login_WrongPassword yanlış şifrede genel hata dönmesini test eder.
func TestUserService_Login_WrongPassword(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	userService := NewUserService(mockUserRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("dogru"), bcrypt.DefaultCost)

	mockUserRepo.On("GetByEmail", "taraftar@example.com").Return(&models.User{
		ID:       1,
		Email:    "taraftar@example.com",
		Password: string(hashed),
	}, nil)

	// Act
	_, err := userService.Login(&models.LoginRequest{
		Email:    "taraftar@example.com",
		Password: "yanlis",
	})

	// Assert
	assert.Error(t, err)
	assert.EqualError(t, err, "email veya şifre hatalı")
}
