package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type GalleryRepository struct {
	db *sql.DB
}

func NewGalleryRepository(db *sql.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

const galleryColumns = `id, judul, deskripsi, kategori, gambar, created_at, updated_at`

func scanGallery(row interface{ Scan(...any) error }) (*GalleryItem, error) {
	var g GalleryItem
	var deskripsi, gambar sql.NullString
	err := row.Scan(&g.ID, &g.Judul, &deskripsi, &g.Kategori, &gambar, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	g.Deskripsi = deskripsi.String
	g.Filename = gambar.String
	return &g, nil
}

// List returns gallery items newest first, optionally filtered by category.
func (r *GalleryRepository) List(ctx context.Context, kategori string) ([]*GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM galleries ORDER BY created_at DESC`
	args := []any{}
	if kategori != "" {
		query = `SELECT ` + galleryColumns + ` FROM galleries WHERE kategori = ? ORDER BY created_at DESC`
		args = append(args, kategori)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list galleries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*GalleryItem, 0)
	for rows.Next() {
		g, err := scanGallery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gallery: %w", err)
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

func (r *GalleryRepository) GetByID(ctx context.Context, id int64) (*GalleryItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+galleryColumns+` FROM galleries WHERE id = ?`, id)
	g, err := scanGallery(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get gallery %d: %w", id, err)
	}
	return g, nil
}

func (r *GalleryRepository) Create(ctx context.Context, g *GalleryItem) (int64, error) {
	if g.Kategori == "" {
		g.Kategori = "umum"
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO galleries (judul, deskripsi, kategori, gambar) VALUES (?, ?, ?, ?)`,
		g.Judul, nullable(g.Deskripsi), g.Kategori, nullable(g.Filename))
	if err != nil {
		return 0, fmt.Errorf("insert gallery: %w", err)
	}
	return res.LastInsertId()
}

func (r *GalleryRepository) Update(ctx context.Context, g *GalleryItem) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE galleries SET judul = ?, deskripsi = ?, kategori = ?, gambar = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		g.Judul, nullable(g.Deskripsi), g.Kategori, nullable(g.Filename), g.ID)
	if err != nil {
		return fmt.Errorf("update gallery %d: %w", g.ID, err)
	}
	return nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM galleries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete gallery %d: %w", id, err)
	}
	return nil
}
