package database

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SeedDefaults inserts the singleton settings row and an initial admin
// account when their tables are empty, so a fresh deployment is usable
// immediately. The default admin password must be rotated after first login.
func SeedDefaults(db *sql.DB) error {
	var settingsCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM desa_settings`).Scan(&settingsCount); err != nil {
		return fmt.Errorf("count settings: %w", err)
	}
	if settingsCount == 0 {
		_, err := db.Exec(`INSERT INTO desa_settings (nama_desa, alamat, telepon, email, visi, misi, sejarah)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			"Desa Maju Bersama",
			"Jl. Raya Desa No. 123, Kecamatan Contoh, Kabupaten Contoh",
			"(021) 1234-5678",
			"info@desamajubersama.id",
			"Menjadi desa yang maju, mandiri, dan sejahtera berbasis teknologi digital",
			"Meningkatkan pelayanan publik melalui digitalisasi, Memberdayakan masyarakat dalam bidang ekonomi dan sosial, Melestarikan budaya dan lingkungan hidup",
			"Desa Maju Bersama didirikan pada tahun 1945 dan telah berkembang menjadi desa yang modern dengan tetap mempertahankan nilai-nilai tradisional.")
		if err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}

	var adminCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM admins`).Scan(&adminCount); err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
		if err != nil {
			return fmt.Errorf("hash default admin password: %w", err)
		}
		_, err = db.Exec(`INSERT INTO admins (username, email, password, nama, role)
			VALUES (?, ?, ?, ?, ?)`,
			"admin", "admin@desa.id", string(hash), "Administrator", "super_admin")
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	return nil
}
