package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, judul, deskripsi, tanggal_mulai, tanggal_selesai, lokasi, gambar, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*Event, error) {
	var e Event
	var deskripsi, lokasi, gambar sql.NullString
	var selesai sql.NullTime
	err := row.Scan(&e.ID, &e.Judul, &deskripsi, &e.TanggalMulai, &selesai,
		&lokasi, &gambar, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Deskripsi = deskripsi.String
	e.Lokasi = lokasi.String
	e.Filename = gambar.String
	if selesai.Valid {
		t := selesai.Time
		e.TanggalSelesai = &t
	}
	return &e, nil
}

// List returns events newest first by start date.
func (r *EventRepository) List(ctx context.Context) ([]*Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY tanggal_mulai DESC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return e, nil
}

func (r *EventRepository) Create(ctx context.Context, e *Event) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO events (judul, deskripsi, tanggal_mulai, tanggal_selesai, lokasi, gambar)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Judul, nullable(e.Deskripsi), e.TanggalMulai, nullableTime(e.TanggalSelesai),
		nullable(e.Lokasi), nullable(e.Filename))
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return res.LastInsertId()
}

func (r *EventRepository) Update(ctx context.Context, e *Event) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE events SET judul = ?, deskripsi = ?, tanggal_mulai = ?, tanggal_selesai = ?,
		 lokasi = ?, gambar = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		e.Judul, nullable(e.Deskripsi), e.TanggalMulai, nullableTime(e.TanggalSelesai),
		nullable(e.Lokasi), nullable(e.Filename), e.ID)
	if err != nil {
		return fmt.Errorf("update event %d: %w", e.ID, err)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return nil
}

// nullableTime maps a nil time pointer to NULL.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
