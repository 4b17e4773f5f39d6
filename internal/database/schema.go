package database

import "database/sql"

// EnsureSchema creates all tables if they do not exist yet. Idempotent, which
// matters for in-memory databases in tests.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS desa_settings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nama_desa TEXT NOT NULL DEFAULT 'Desa Digital',
			alamat TEXT,
			telepon TEXT,
			email TEXT,
			website TEXT,
			logo_url TEXT,
			hero_image_url TEXT,
			visi TEXT,
			misi TEXT,
			sejarah TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			nama TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'admin' CHECK (role IN ('admin', 'super_admin')),
			last_login DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS news (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			judul TEXT NOT NULL,
			slug TEXT UNIQUE NOT NULL,
			konten TEXT NOT NULL,
			excerpt TEXT,
			gambar TEXT,
			penulis TEXT NOT NULL DEFAULT 'admin',
			status TEXT NOT NULL DEFAULT 'published' CHECK (status IN ('draft', 'published')),
			tanggal DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS galleries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			judul TEXT NOT NULL,
			deskripsi TEXT,
			kategori TEXT NOT NULL DEFAULT 'umum',
			gambar TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			judul TEXT NOT NULL,
			deskripsi TEXT,
			tanggal_mulai DATETIME NOT NULL,
			tanggal_selesai DATETIME,
			lokasi TEXT,
			gambar TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS organization (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nama TEXT NOT NULL,
			jabatan TEXT NOT NULL,
			urutan INTEGER NOT NULL DEFAULT 0,
			gambar TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS services (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nama TEXT NOT NULL,
			deskripsi TEXT,
			persyaratan TEXT,
			biaya TEXT NOT NULL DEFAULT 'Gratis',
			waktu_proses TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS service_submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			service_id INTEGER NOT NULL REFERENCES services(id) ON DELETE CASCADE,
			nama_pemohon TEXT NOT NULL,
			nik TEXT NOT NULL,
			alamat TEXT NOT NULL,
			telepon TEXT NOT NULL,
			email TEXT,
			keperluan TEXT NOT NULL,
			berkas_pendukung TEXT,
			status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'diproses', 'selesai', 'ditolak')),
			catatan TEXT,
			tanggal_pengajuan DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			tanggal_selesai DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
