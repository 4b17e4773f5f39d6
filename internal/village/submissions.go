package village

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidStatus = errors.New("invalid submission status")

// Submission statuses form a small workflow: pending -> diproses ->
// selesai/ditolak. Terminal states record a completion date.
const (
	StatusPending  = "pending"
	StatusDiproses = "diproses"
	StatusSelesai  = "selesai"
	StatusDitolak  = "ditolak"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusDiproses, StatusSelesai, StatusDitolak:
		return true
	}
	return false
}

// Submission is a citizen's request for a village service.
type Submission struct {
	ID               int64      `json:"id"`
	ServiceID        int64      `json:"service_id"`
	NamaPemohon      string     `json:"nama_pemohon"`
	NIK              string     `json:"nik"`
	Alamat           string     `json:"alamat"`
	Telepon          string     `json:"telepon"`
	Email            string     `json:"email,omitempty"`
	Keperluan        string     `json:"keperluan"`
	BerkasPendukung  string     `json:"berkas_pendukung,omitempty"`
	Status           string     `json:"status"`
	Catatan          string     `json:"catatan,omitempty"`
	TanggalPengajuan time.Time  `json:"tanggal_pengajuan"`
	TanggalSelesai   *time.Time `json:"tanggal_selesai,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

const submissionColumns = `id, service_id, nama_pemohon, nik, alamat, telepon, email,
	keperluan, berkas_pendukung, status, catatan, tanggal_pengajuan, tanggal_selesai,
	created_at, updated_at`

func scanSubmission(row interface{ Scan(...any) error }) (*Submission, error) {
	var s Submission
	var email, berkas, catatan sql.NullString
	var selesai sql.NullTime
	err := row.Scan(&s.ID, &s.ServiceID, &s.NamaPemohon, &s.NIK, &s.Alamat, &s.Telepon,
		&email, &s.Keperluan, &berkas, &s.Status, &catatan, &s.TanggalPengajuan,
		&selesai, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Email = email.String
	s.BerkasPendukung = berkas.String
	s.Catatan = catatan.String
	if selesai.Valid {
		t := selesai.Time
		s.TanggalSelesai = &t
	}
	return &s, nil
}

// List returns submissions newest first, optionally filtered by status.
func (r *SubmissionRepository) List(ctx context.Context, status string) ([]*Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM service_submissions ORDER BY tanggal_pengajuan DESC`
	args := []any{}
	if status != "" {
		if !ValidStatus(status) {
			return nil, ErrInvalidStatus
		}
		query = `SELECT ` + submissionColumns + ` FROM service_submissions WHERE status = ? ORDER BY tanggal_pengajuan DESC`
		args = append(args, status)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*Submission, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+submissionColumns+` FROM service_submissions WHERE id = ?`, id)
	s, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get submission %d: %w", id, err)
	}
	return s, nil
}

func (r *SubmissionRepository) Create(ctx context.Context, s *Submission) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO service_submissions
		 (service_id, nama_pemohon, nik, alamat, telepon, email, keperluan, berkas_pendukung)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ServiceID, s.NamaPemohon, s.NIK, s.Alamat, s.Telepon, s.Email, s.Keperluan,
		s.BerkasPendukung)
	if err != nil {
		return 0, fmt.Errorf("insert submission: %w", err)
	}
	return res.LastInsertId()
}

// UpdateStatus moves a submission through the workflow. Terminal states stamp
// tanggal_selesai.
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id int64, status, catatan string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	query := `UPDATE service_submissions SET status = ?, catatan = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if status == StatusSelesai || status == StatusDitolak {
		query = `UPDATE service_submissions SET status = ?, catatan = ?,
			tanggal_selesai = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	}

	res, err := r.db.ExecContext(ctx, query, status, catatan, id)
	if err != nil {
		return fmt.Errorf("update submission %d status: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
