package services

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/ophthalmoai/saas-backend/internal/auth/models"
)

// ErrInvalidCredentials is returned for both an unknown username and a wrong
// password, so the response never reveals which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	DB *sql.DB
}

func NewAuthService(db *sql.DB) *AuthService {
	return &AuthService{DB: db}
}

// Authenticate validates a username/password pair against the users table.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	var u models.User
	query := "SELECT id, username, password, role, hospital_id FROM users WHERE username = ?"
	err := s.DB.QueryRow(query, username).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.HospitalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}
