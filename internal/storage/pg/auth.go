package pg

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/safespace-dev/safespace/internal/domain"
	internal_errors "github.com/safespace-dev/safespace/internal/errors"
)

func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	createdTs := time.Now().UTC().Round(time.Microsecond)
	var id domain.UserId
	err := s.db.QueryRow(`
	INSERT INTO users(email, display_name, pass_hash, created)
	VALUES($1, $2, $3, $4)
	RETURNING id`,
		user.Email, user.DisplayName, user.PassHash, createdTs).Scan(&id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return 0, &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: 409}
		}
		return 0, err
	}
	return id, nil
}

func (s *Storage) UserByEmail(email domain.Email) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
	SELECT id, email, display_name, pass_hash, created
	FROM users
	WHERE email = $1`, email).Scan(&user.Id, &user.Email, &user.DisplayName, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User")
		}
		return domain.User{}, err
	}
	return user, nil
}
