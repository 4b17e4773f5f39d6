package village

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Service is a public service offered by the village office.
type Service struct {
	ID          int64     `json:"id"`
	Nama        string    `json:"nama"`
	Deskripsi   string    `json:"deskripsi,omitempty"`
	Persyaratan string    `json:"persyaratan,omitempty"`
	Biaya       string    `json:"biaya"`
	WaktuProses string    `json:"waktu_proses,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ServiceRepository struct {
	db *sql.DB
}

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const serviceColumns = `id, nama, deskripsi, persyaratan, biaya, waktu_proses, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (*Service, error) {
	var s Service
	var deskripsi, persyaratan, waktu sql.NullString
	err := row.Scan(&s.ID, &s.Nama, &deskripsi, &persyaratan, &s.Biaya, &waktu,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Deskripsi = deskripsi.String
	s.Persyaratan = persyaratan.String
	s.WaktuProses = waktu.String
	return &s, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*Service, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY nama ASC`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*Service, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id)
	s, err := scanService(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}
	return s, nil
}

func (r *ServiceRepository) Create(ctx context.Context, s *Service) (int64, error) {
	if s.Biaya == "" {
		s.Biaya = "Gratis"
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO services (nama, deskripsi, persyaratan, biaya, waktu_proses)
		 VALUES (?, ?, ?, ?, ?)`,
		s.Nama, s.Deskripsi, s.Persyaratan, s.Biaya, s.WaktuProses)
	if err != nil {
		return 0, fmt.Errorf("insert service: %w", err)
	}
	return res.LastInsertId()
}

func (r *ServiceRepository) Update(ctx context.Context, s *Service) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE services SET nama = ?, deskripsi = ?, persyaratan = ?, biaya = ?,
		 waktu_proses = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		s.Nama, s.Deskripsi, s.Persyaratan, s.Biaya, s.WaktuProses, s.ID)
	if err != nil {
		return fmt.Errorf("update service %d: %w", s.ID, err)
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete service %d: %w", id, err)
	}
	return nil
}
