package village

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("record not found")

// Settings is the singleton profile row of the village. Logo and hero image
// are stored as plain URLs managed by the admin frontend, not by the asset
// lifecycle.
type Settings struct {
	ID           int64     `json:"id"`
	NamaDesa     string    `json:"nama_desa"`
	Alamat       string    `json:"alamat,omitempty"`
	Telepon      string    `json:"telepon,omitempty"`
	Email        string    `json:"email,omitempty"`
	Website      string    `json:"website,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty"`
	HeroImageURL string    `json:"hero_image_url,omitempty"`
	Visi         string    `json:"visi,omitempty"`
	Misi         string    `json:"misi,omitempty"`
	Sejarah      string    `json:"sejarah,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the settings row; deployments are seeded with one at startup.
func (r *SettingsRepository) Get(ctx context.Context) (*Settings, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, nama_desa, alamat, telepon, email, website, logo_url, hero_image_url,
		 visi, misi, sejarah, created_at, updated_at
		 FROM desa_settings ORDER BY id ASC LIMIT 1`)

	var s Settings
	var alamat, telepon, email, website, logo, hero, visi, misi, sejarah sql.NullString
	err := row.Scan(&s.ID, &s.NamaDesa, &alamat, &telepon, &email, &website, &logo, &hero,
		&visi, &misi, &sejarah, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	s.Alamat = alamat.String
	s.Telepon = telepon.String
	s.Email = email.String
	s.Website = website.String
	s.LogoURL = logo.String
	s.HeroImageURL = hero.String
	s.Visi = visi.String
	s.Misi = misi.String
	s.Sejarah = sejarah.String
	return &s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *Settings) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE desa_settings SET nama_desa = ?, alamat = ?, telepon = ?, email = ?,
		 website = ?, logo_url = ?, hero_image_url = ?, visi = ?, misi = ?, sejarah = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		s.NamaDesa, s.Alamat, s.Telepon, s.Email, s.Website, s.LogoURL, s.HeroImageURL,
		s.Visi, s.Misi, s.Sejarah, s.ID)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
