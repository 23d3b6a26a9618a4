package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/colective/fleet-backend-go/internal/models"
)

// UserRepository handles database operations for users, companies and
// refresh tokens
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a user inside a transaction and returns its id
func (r *UserRepository) CreateUser(tx *sql.Tx, email, passwordHash, name, photo, role string, companyID *int64) (int64, error) {
	res, err := tx.Exec(`INSERT INTO users (email, password, name, photo, role, company_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		email, passwordHash, name, photo, role, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user id: %w", err)
	}
	return id, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(userColumns+" WHERE u.email = ?", email))
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(userColumns+" WHERE u.id = ?", id))
}

const userColumns = `SELECT u.id, u.email, u.password, u.name, u.photo, u.role,
	u.change_password, u.company_id, c.name, c.logo
	FROM users u
	LEFT JOIN companies c ON u.company_id = c.id`

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var photo, companyName, companyLogo sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &photo, &u.Role,
		&u.ChangePassword, &u.CompanyID, &companyName, &companyLogo)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.Photo = photo.String
	if u.CompanyID != nil {
		u.Company = &models.Company{ID: *u.CompanyID, Name: companyName.String, Logo: companyLogo.String}
	}
	return &u, nil
}

// CreateRefreshToken stores a refresh token for a user
func (r *UserRepository) CreateRefreshToken(userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(`INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES (?, ?, ?)`,
		userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// RefreshTokenRecord is a stored refresh token with its owner
type RefreshTokenRecord struct {
	UserID    int64
	Token     string
	Revoked   bool
	ExpiresAt time.Time
}

// GetRefreshToken retrieves a non-revoked refresh token
func (r *UserRepository) GetRefreshToken(token string) (*RefreshTokenRecord, error) {
	var rec RefreshTokenRecord
	err := r.db.QueryRow(`SELECT user_id, token, revoked, expires_at
		FROM refresh_tokens WHERE token = ? AND revoked = 0`, token).
		Scan(&rec.UserID, &rec.Token, &rec.Revoked, &rec.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return &rec, nil
}

// RevokeRefreshToken marks a refresh token as revoked
func (r *UserRepository) RevokeRefreshToken(token string) error {
	_, err := r.db.Exec(`UPDATE refresh_tokens SET revoked = 1 WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
