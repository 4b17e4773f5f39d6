package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound           = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

// Admin is a backoffice account. The password hash never leaves this package.
type Admin struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Nama      string     `json:"nama"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const adminColumns = `id, username, email, password, nama, role, last_login, created_at, updated_at`

func (r *Repository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE email = ?`, email)

	var a Admin
	var lastLogin sql.NullTime
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.Password, &a.Nama, &a.Role,
		&lastLogin, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		a.LastLogin = &t
	}
	return &a, nil
}

func (r *Repository) Create(ctx context.Context, a *Admin) (int64, error) {
	if a.Role == "" {
		a.Role = "admin"
	}
	if a.Username == "" {
		a.Username = a.Email
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (username, email, password, nama, role) VALUES (?, ?, ?, ?, ?)`,
		a.Username, a.Email, a.Password, a.Nama, a.Role)
	if err != nil {
		return 0, fmt.Errorf("insert admin: %w", err)
	}
	return res.LastInsertId()
}

func (r *Repository) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admins SET last_login = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
