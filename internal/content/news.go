package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// NewsPage wraps one page of a news listing.
type NewsPage struct {
	Items      []*News
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

type NewsRepository struct {
	db *sql.DB
}

func NewNewsRepository(db *sql.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

const newsColumns = `id, judul, slug, konten, excerpt, gambar, penulis, status, tanggal, created_at, updated_at`

func scanNews(row interface{ Scan(...any) error }) (*News, error) {
	var n News
	var excerpt, gambar sql.NullString
	err := row.Scan(&n.ID, &n.Judul, &n.Slug, &n.Konten, &excerpt, &gambar,
		&n.Penulis, &n.Status, &n.Tanggal, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	n.Excerpt = excerpt.String
	n.Filename = gambar.String
	return &n, nil
}

// List returns one reverse-chronological page of news filtered by status,
// along with the total row count for that status.
func (r *NewsRepository) List(ctx context.Context, page, limit int, status string) (*NewsPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+newsColumns+` FROM news WHERE status = ? ORDER BY tanggal DESC LIMIT ? OFFSET ?`,
		status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*News, 0)
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("scan news: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var total int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news WHERE status = ?`, status).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count news: %w", err)
	}

	return &NewsPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}, nil
}

func (r *NewsRepository) GetByID(ctx context.Context, id int64) (*News, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+newsColumns+` FROM news WHERE id = ?`, id)
	n, err := scanNews(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get news %d: %w", id, err)
	}
	return n, nil
}

// GetBySlug returns a published news item by its unique slug.
func (r *NewsRepository) GetBySlug(ctx context.Context, slug string) (*News, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+newsColumns+` FROM news WHERE slug = ? AND status = 'published' LIMIT 1`, slug)
	n, err := scanNews(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get news by slug %q: %w", slug, err)
	}
	return n, nil
}

func (r *NewsRepository) Create(ctx context.Context, n *News) (int64, error) {
	if n.Penulis == "" {
		n.Penulis = "admin"
	}
	if n.Status == "" {
		n.Status = "draft"
	}
	if n.Tanggal.IsZero() {
		n.Tanggal = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO news (judul, slug, konten, excerpt, gambar, penulis, status, tanggal)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.Judul, n.Slug, n.Konten, nullable(n.Excerpt), nullable(n.Filename),
		n.Penulis, n.Status, n.Tanggal)
	if err != nil {
		return 0, fmt.Errorf("insert news: %w", err)
	}
	return res.LastInsertId()
}

func (r *NewsRepository) Update(ctx context.Context, n *News) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE news SET judul = ?, slug = ?, konten = ?, excerpt = ?, gambar = ?,
		 penulis = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		n.Judul, n.Slug, n.Konten, nullable(n.Excerpt), nullable(n.Filename),
		n.Penulis, n.Status, n.ID)
	if err != nil {
		return fmt.Errorf("update news %d: %w", n.ID, err)
	}
	return nil
}

func (r *NewsRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete news %d: %w", id, err)
	}
	return nil
}

// nullable maps an empty string to NULL so absent optional fields stay NULL
// in the row instead of becoming empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
