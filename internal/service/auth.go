package service

import (
	"net/http"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/safespace-dev/safespace/internal/domain"
	"github.com/safespace-dev/safespace/internal/errors"
	"github.com/safespace-dev/safespace/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(creds domain.Credentials) (string, error)
	Login(creds domain.Credentials) (string, error)
	Me(email domain.Email) (domain.User, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	UserByEmail(email domain.Email) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage, jwt}
}

func checkEmail(email domain.Email) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.Validation("Email is invalid")
	}
	return nil
}

// Register creates the account and signs the user straight in, returning
// an access token. Duplicate emails surface as 409 from storage.
func (a *Auth) Register(creds domain.Credentials) (string, error) {
	email := strings.ToLower(creds.Email)

	if err := checkEmail(email); err != nil {
		return "", err
	}
	if utf8.RuneCountInString(creds.Password) < 8 {
		return "", errors.Validation("Password must be at least 8 characters")
	}
	displayName := strings.TrimSpace(creds.DisplayName)
	if displayName == "" {
		return "", errors.Validation("Display name must not be empty")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return "", err
	}

	id, err := a.storage.SaveUser(domain.User{Email: email, DisplayName: displayName, PassHash: string(passHash)})
	if err != nil {
		return "", err
	}

	token, err := a.jwt.NewToken(domain.User{Id: id, Email: email, DisplayName: displayName})
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", id, "error", err)
		return "", err
	}
	return token, nil
}

// Login verifies credentials and returns an access token. Unknown emails
// and wrong passwords produce the same answer to not leak existing users.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	email := strings.ToLower(creds.Email)

	if err := checkEmail(email); err != nil {
		return "", err
	}

	user, err := a.storage.UserByEmail(email)
	if err != nil {
		if errors.HasStatus(err, http.StatusNotFound) {
			return "", errors.Permission("Invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Debug("password verification failed", "error", err)
		return "", errors.Permission("Invalid credentials")
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", err
	}
	return token, nil
}

func (a *Auth) Me(email domain.Email) (domain.User, error) {
	return a.storage.UserByEmail(strings.ToLower(email))
}
