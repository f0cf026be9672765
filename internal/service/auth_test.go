package service

import (
	"errors"
	"testing"

	"github.com/safespace-dev/safespace/internal/domain"
	internal_errors "github.com/safespace-dev/safespace/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

type MockAuthStorage struct {
	SaveUserFunc    func(user domain.User) (domain.UserId, error)
	UserByEmailFunc func(email domain.Email) (domain.User, error)
}

func (m *MockAuthStorage) SaveUser(user domain.User) (domain.UserId, error) {
	if m.SaveUserFunc != nil {
		return m.SaveUserFunc(user)
	}
	return 1, nil
}

func (m *MockAuthStorage) UserByEmail(email domain.Email) (domain.User, error) {
	if m.UserByEmailFunc != nil {
		return m.UserByEmailFunc(email)
	}
	return domain.User{Id: 1, Email: email}, nil
}

type MockJwt struct {
	NewTokenFunc func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(user)
	}
	return "token", nil
}

func TestAuthRegister(t *testing.T) {
	storage := &MockAuthStorage{}
	service := NewAuth(storage, &MockJwt{})

	creds := domain.Credentials{Email: "Sam@Example.com", Password: "password123", DisplayName: "Sam"}

	// successful registration hashes the password and lowercases the email
	var saved domain.User
	storage.SaveUserFunc = func(user domain.User) (domain.UserId, error) {
		saved = user
		return 7, nil
	}
	token, err := service.Register(creds)
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if token != "token" {
		t.Errorf("Unexpected token: %q", token)
	}
	if saved.Email != "sam@example.com" {
		t.Errorf("Email not lowercased: %q", saved.Email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(saved.PassHash), []byte("password123")); err != nil {
		t.Errorf("Stored hash does not match password: %v", err)
	}

	// bad inputs
	if _, err := service.Register(domain.Credentials{Email: "not-an-email", Password: "password123", DisplayName: "Sam"}); internal_errors.StatusCode(err) != 400 {
		t.Errorf("Expected 400 for bad email, got: %v", err)
	}
	if _, err := service.Register(domain.Credentials{Email: "sam@example.com", Password: "short", DisplayName: "Sam"}); internal_errors.StatusCode(err) != 400 {
		t.Errorf("Expected 400 for short password, got: %v", err)
	}
	if _, err := service.Register(domain.Credentials{Email: "sam@example.com", Password: "password123", DisplayName: "  "}); internal_errors.StatusCode(err) != 400 {
		t.Errorf("Expected 400 for blank display name, got: %v", err)
	}

	// duplicate email passes through storage's 409
	storage.SaveUserFunc = func(user domain.User) (domain.UserId, error) {
		return 0, &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: 409}
	}
	if _, err := service.Register(creds); internal_errors.StatusCode(err) != 409 {
		t.Errorf("Expected 409, got: %v", err)
	}
}

func TestAuthLogin(t *testing.T) {
	passHash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	storage := &MockAuthStorage{
		UserByEmailFunc: func(email domain.Email) (domain.User, error) {
			if email != "sam@example.com" {
				return domain.User{}, internal_errors.NotFound("User")
			}
			return domain.User{Id: 1, Email: email, PassHash: string(passHash)}, nil
		},
	}
	service := NewAuth(storage, &MockJwt{})

	token, err := service.Login(domain.Credentials{Email: "Sam@Example.com", Password: "password123"})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if token != "token" {
		t.Errorf("Unexpected token: %q", token)
	}

	// unknown user and wrong password are indistinguishable
	_, unknownErr := service.Login(domain.Credentials{Email: "other@example.com", Password: "password123"})
	_, wrongErr := service.Login(domain.Credentials{Email: "sam@example.com", Password: "wrong-password"})
	for _, err := range []error{unknownErr, wrongErr} {
		if internal_errors.StatusCode(err) != 401 || err.Error() != "Invalid credentials" {
			t.Errorf("Expected uniform 401 Invalid credentials, got: %v", err)
		}
	}

	// plain storage errors pass through
	mockError := errors.New("mock storage failure")
	storage.UserByEmailFunc = func(email domain.Email) (domain.User, error) { return domain.User{}, mockError }
	if _, err := service.Login(domain.Credentials{Email: "sam@example.com", Password: "password123"}); !errors.Is(err, mockError) {
		t.Errorf("Expected %v, got: %v", mockError, err)
	}
}
