package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type OrganizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

const organizationColumns = `id, nama, jabatan, urutan, gambar, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (*OrganizationMember, error) {
	var m OrganizationMember
	var gambar sql.NullString
	err := row.Scan(&m.ID, &m.Nama, &m.Jabatan, &m.Urutan, &gambar, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Filename = gambar.String
	return &m, nil
}

// List returns organization members in their explicit display order.
func (r *OrganizationRepository) List(ctx context.Context) ([]*OrganizationMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+organizationColumns+` FROM organization ORDER BY urutan ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list organization: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*OrganizationMember, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization member: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id int64) (*OrganizationMember, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+organizationColumns+` FROM organization WHERE id = ?`, id)
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get organization member %d: %w", id, err)
	}
	return m, nil
}

func (r *OrganizationRepository) Create(ctx context.Context, m *OrganizationMember) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO organization (nama, jabatan, urutan, gambar) VALUES (?, ?, ?, ?)`,
		m.Nama, m.Jabatan, m.Urutan, nullable(m.Filename))
	if err != nil {
		return 0, fmt.Errorf("insert organization member: %w", err)
	}
	return res.LastInsertId()
}

func (r *OrganizationRepository) Update(ctx context.Context, m *OrganizationMember) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE organization SET nama = ?, jabatan = ?, urutan = ?, gambar = ?,
		 updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		m.Nama, m.Jabatan, m.Urutan, nullable(m.Filename), m.ID)
	if err != nil {
		return fmt.Errorf("update organization member %d: %w", m.ID, err)
	}
	return nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM organization WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete organization member %d: %w", id, err)
	}
	return nil
}
