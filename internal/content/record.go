package content

import "time"

// ImageField carries the asset reference of a media record. Only the bare
// filename is persisted; read paths replace it with a resolved URL, or clear
// it and attach a warning when the backing file is gone.
type ImageField struct {
	Filename string  `json:"-"`
	URL      *string `json:"gambar"`
	Warning  string  `json:"warning,omitempty"`
}

// Record is implemented by all media-bearing entities managed by Lifecycle.
type Record interface {
	RecordID() int64
	Image() *ImageField
}

type News struct {
	ID      int64  `json:"id"`
	Judul   string `json:"judul"`
	Slug    string `json:"slug"`
	Konten  string `json:"konten"`
	Excerpt string `json:"excerpt,omitempty"`
	Penulis string `json:"penulis"`
	Status  string `json:"status"`
	ImageField
	Tanggal   time.Time `json:"tanggal"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *News) RecordID() int64    { return n.ID }
func (n *News) Image() *ImageField { return &n.ImageField }

type GalleryItem struct {
	ID        int64  `json:"id"`
	Judul     string `json:"judul"`
	Deskripsi string `json:"deskripsi,omitempty"`
	Kategori  string `json:"kategori"`
	ImageField
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *GalleryItem) RecordID() int64    { return g.ID }
func (g *GalleryItem) Image() *ImageField { return &g.ImageField }

type Event struct {
	ID             int64      `json:"id"`
	Judul          string     `json:"judul"`
	Deskripsi      string     `json:"deskripsi,omitempty"`
	TanggalMulai   time.Time  `json:"tanggal_mulai"`
	TanggalSelesai *time.Time `json:"tanggal_selesai,omitempty"`
	Lokasi         string     `json:"lokasi,omitempty"`
	ImageField
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Event) RecordID() int64    { return e.ID }
func (e *Event) Image() *ImageField { return &e.ImageField }

type OrganizationMember struct {
	ID      int64  `json:"id"`
	Nama    string `json:"nama"`
	Jabatan string `json:"jabatan"`
	Urutan  int    `json:"urutan"`
	ImageField
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *OrganizationMember) RecordID() int64    { return o.ID }
func (o *OrganizationMember) Image() *ImageField { return &o.ImageField }
