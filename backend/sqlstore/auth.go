package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/eringen/blogpost/blog"
)

const minPasswordLen = 6

// Messages match the ones a hosted auth service reports, so the UI reads
// the same whichever backend is configured.
var (
	errInvalidCredentials = &blog.BackendError{Message: "Invalid login credentials"}
	errAlreadyRegistered  = &blog.BackendError{Message: "User already registered"}
	errShortPassword      = &blog.BackendError{Message: "Password should be at least 6 characters."}
	errInvalidEmail       = &blog.BackendError{Message: "Unable to validate email address: invalid format"}
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a bcrypt password hash.
func (s *Store) Register(ctx context.Context, email, password string) (blog.User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return blog.User{}, errInvalidEmail
	}
	if len(password) < minPasswordLen {
		return blog.User{}, errShortPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return blog.User{}, err
	}

	var exists int
	err = s.db.QueryRowContext(ctx, s.rebind(`SELECT COUNT(*) FROM users WHERE email = ?`), email).Scan(&exists)
	if err != nil {
		return blog.User{}, err
	}
	if exists > 0 {
		return blog.User{}, errAlreadyRegistered
	}

	u := blog.User{ID: uuid.NewString(), Email: email}
	_, err = s.db.ExecContext(ctx, s.rebind(`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`),
		u.ID, u.Email, string(hash), s.timestamp())
	if isUniqueViolation(err) {
		// a concurrent Register won between the count and the insert
		return blog.User{}, errAlreadyRegistered
	}
	if err != nil {
		return blog.User{}, err
	}
	return u, nil
}

// Login checks the password against the stored hash. Unknown emails and
// wrong passwords report the same error.
func (s *Store) Login(ctx context.Context, email, password string) (blog.User, error) {
	email = normalizeEmail(email)
	var id, hash string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT id, password_hash FROM users WHERE email = ?`), email).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return blog.User{}, errInvalidCredentials
	}
	if err != nil {
		return blog.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return blog.User{}, errInvalidCredentials
	}
	return blog.User{ID: id, Email: email}, nil
}

// Logout has nothing to revoke: sessions live in the web tier's cookie.
func (s *Store) Logout(ctx context.Context) error {
	return ctx.Err()
}
