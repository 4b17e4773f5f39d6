package content

import (
	"context"
	"errors"
	"testing"

	"github.com/digidesa/desa-cms/internal/assets"
	"go.uber.org/zap"
)

// fakeStore keeps files in memory and can be told to fail saves.
type fakeStore struct {
	files    map[string][]byte
	failSave bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string][]byte{}}
}

func (s *fakeStore) Save(name string, content []byte) error {
	if s.failSave {
		return errors.New("disk full")
	}
	s.files[name] = content
	return nil
}

func (s *fakeStore) Exists(name string) bool {
	_, ok := s.files[name]
	return ok
}

func (s *fakeStore) Delete(name string) {
	delete(s.files, name)
}

// fakeRepo stores gallery items in memory and can be told to fail mutations.
type fakeRepo struct {
	items      map[int64]*GalleryItem
	nextID     int64
	failCreate bool
	failUpdate bool
	failDelete bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]*GalleryItem{}, nextID: 1}
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*GalleryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *fakeRepo) Create(_ context.Context, rec *GalleryItem) (int64, error) {
	if r.failCreate {
		return 0, errors.New("insert failed")
	}
	id := r.nextID
	r.nextID++
	clone := *rec
	clone.ID = id
	r.items[id] = &clone
	return id, nil
}

func (r *fakeRepo) Update(_ context.Context, rec *GalleryItem) error {
	if r.failUpdate {
		return errors.New("update failed")
	}
	if _, ok := r.items[rec.ID]; !ok {
		return ErrNotFound
	}
	clone := *rec
	r.items[rec.ID] = &clone
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if r.failDelete {
		return errors.New("delete failed")
	}
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func newTestLifecycle(store *fakeStore, repo *fakeRepo) *Lifecycle[*GalleryItem] {
	return NewLifecycle[*GalleryItem](repo, store, assets.NewResolver("/backend-assets", "gallery"), zap.NewNop())
}

var testBase = assets.Base{Scheme: "https", Host: "desa.example.id"}

func TestLifecycle_CreateWithUpload(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepo()
	lifecycle := newTestLifecycle(store, repo)

	upload := &Upload{Filename: "abc.jpg", Content: []byte{0x01}}
	created, err := lifecycle.Create(context.Background(), testBase, &GalleryItem{Judul: "Panen Raya", Kategori: "kegiatan"}, upload)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if !store.Exists("abc.jpg") {
		t.Error("expected uploaded file to be stored")
	}
	if created.Filename != "abc.jpg" {
		t.Errorf("expected stored filename abc.jpg, got %q", created.Filename)
	}
	if created.URL == nil {
		t.Fatal("expected resolved image URL")
	}
	expected := "https://desa.example.id/backend-assets/gallery/abc.jpg"
	if *created.URL != expected {
		t.Errorf("expected URL %q, got %q", expected, *created.URL)
	}
}

func TestLifecycle_CreateWithoutUpload(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepo()
	lifecycle := newTestLifecycle(store, repo)

	created, err := lifecycle.Create(context.Background(), testBase, &GalleryItem{Judul: "Tanpa Foto", Kategori: "umum"}, nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.URL != nil {
		t.Errorf("expected nil URL for record without image, got %q", *created.URL)
	}
	if created.Warning != "" {
		t.Errorf("expected no warning for record without image, got %q", created.Warning)
	}
}

func TestLifecycle_CreateRollsBackFileWhenRowInsertFails(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepo()
	repo.failCreate = true
	lifecycle := newTestLifecycle(store, repo)

	upload := &Upload{Filename: "orphan.jpg", Content: []byte{0x01}}
	_, err := lifecycle.Create(context.Background(), testBase, &GalleryItem{Judul: "Gagal"}, upload)
	if err == nil {
		t.Fatal("expected Create to fail")
	}
	if store.Exists("orphan.jpg") {
		t.Error("expected uploaded file to be removed after failed insert")
	}
}

func TestLifecycle_CreateFailsFastWhenFileWriteFails(t *testing.T) {
	store := newFakeStore()
	store.failSave = true
	repo := newFakeRepo()
	lifecycle := newTestLifecycle(store, repo)

	upload := &Upload{Filename: "never.jpg", Content: []byte{0x01}}
	_, err := lifecycle.Create(context.Background(), testBase, &GalleryItem{Judul: "Gagal"}, upload)
	if err == nil {
		t.Fatal("expected Create to fail")
	}
	if len(repo.items) != 0 {
		t.Error("expected no row to be written when the file write fails")
	}
}

func TestLifecycle_UpdateReplacesImage(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepo()
	lifecycle := newTestLifecycle(store, repo)
	ctx := context.Background()

	created, err := lifecycle.Create(ctx, testBase, &GalleryItem{Judul: "Awal", Kategori: "umum"},
		&Upload{Filename: "old.jpg", Content: []byte{0x01}})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	patch := &GalleryItem{ID: created.ID, Judul: "Diubah", Kategori: "umum"}
	updated, err := lifecycle.Update(ctx, testBase, patch, &Upload{Filename: "new.jpg", Content: []byte{0x02}})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.Filename != "new.jpg" {
		t.Errorf("expected filename new.jpg, got %q", updated.Filename)
	}
	if store.Exists("old.jpg") {
		t.Error("expected old file to be removed after successful replacement")
	}
	if !store.Exists("new.jpg") {
		t.Error("expected new file to be present")
	}
}

func TestLifecycle_UpdateWithoutUploadKeepsImage(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepo()
	lifecycle := newTestLifecycle(store, repo)
	ctx := context.Background()

	created, err := lifecycle.Create(ctx, testBase, &GalleryItem{Judul: "Awal", Kategori: "umum"},
		&Upload{Filename: "keep.jpg", Content: []byte{0x01}})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	patch := &GalleryItem{ID: created.ID, Judul: "Judul Baru", Kategori: "umum"}
	updated, err := lifecycle.Update(ctx, testBase, patch, nil)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.Filename != "keep.jpg" {
		t.Errorf("expected existing filename to be kept, got %q", updated.Filename)
	}
	if updated.Judul != "Judul Baru" {
		t.Errorf("expected title change to be applied, got %q", updated.Judul)
	}
	if !store.Exists("keep.jpg") {
		t.Error("expected existing file to stay on disk")
	}
}

func TestLifecycle_UpdateRollbackLeavesOldFileUntouched(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepo()
	lifecycle := newTestLifecycle(store, repo)
	ctx := context.Background()

	created, err := lifecycle.Create(ctx, testBase, &GalleryItem{Judul: "Awal", Kategori: "umum"},
		&Upload{Filename: "old.jpg", Content: []byte{0x01}})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	repo.failUpdate = true
	patch := &GalleryItem{ID: created.ID, Judul: "Gagal", Kategori: "umum"}
	_, err = lifecycle.Update(ctx, testBase, patch, &Upload{Filename: "new.jpg", Content: []byte{0x02}})
	if err == nil {
		t.Fatal("expected Update to fail")
	}

	if !store.Exists("old.jpg") {
		t.Error("expected old file to be untouched after failed row write")
	}
	if store.Exists("new.jpg") {
		t.Error("expected new file to be rolled back after failed row write")
	}
}

func TestLifecycle_UpdateMissingRecord(t *testing.T) {
	lifecycle := newTestLifecycle(newFakeStore(), newFakeRepo())
	_, err := lifecycle.Update(context.Background(), testBase, &GalleryItem{ID: 42}, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLifecycle_DeleteRemovesRowAndFile(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepo()
	lifecycle := newTestLifecycle(store, repo)
	ctx := context.Background()

	created, err := lifecycle.Create(ctx, testBase, &GalleryItem{Judul: "Hapus", Kategori: "umum"},
		&Upload{Filename: "gone.jpg", Content: []byte{0x01}})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	id, err := lifecycle.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if id != created.ID {
		t.Errorf("expected deleted id %d, got %d", created.ID, id)
	}
	if _, ok := repo.items[created.ID]; ok {
		t.Error("expected row to be deleted")
	}
	if store.Exists("gone.jpg") {
		t.Error("expected backing file to be deleted")
	}
}

func TestLifecycle_DeleteSucceedsWhenFileAlreadyGone(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepo()
	lifecycle := newTestLifecycle(store, repo)
	ctx := context.Background()

	created, err := lifecycle.Create(ctx, testBase, &GalleryItem{Judul: "Hapus", Kategori: "umum"},
		&Upload{Filename: "already-gone.jpg", Content: []byte{0x01}})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	store.Delete("already-gone.jpg")

	if _, err := lifecycle.Delete(ctx, created.ID); err != nil {
		t.Fatalf("expected Delete to succeed despite missing file, got %v", err)
	}
}

func TestLifecycle_DeleteRowFailureKeepsFile(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepo()
	lifecycle := newTestLifecycle(store, repo)
	ctx := context.Background()

	created, err := lifecycle.Create(ctx, testBase, &GalleryItem{Judul: "Hapus", Kategori: "umum"},
		&Upload{Filename: "stay.jpg", Content: []byte{0x01}})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	repo.failDelete = true
	if _, err := lifecycle.Delete(ctx, created.ID); err == nil {
		t.Fatal("expected Delete to fail")
	}
	if !store.Exists("stay.jpg") {
		t.Error("expected file to remain when the row delete fails")
	}
}

func TestLifecycle_ResolveFlagsMissingFile(t *testing.T) {
	store := newFakeStore()
	repo := newFakeRepo()
	lifecycle := newTestLifecycle(store, repo)
	ctx := context.Background()

	created, err := lifecycle.Create(ctx, testBase, &GalleryItem{Judul: "Rusak", Kategori: "umum"},
		&Upload{Filename: "lost.jpg", Content: []byte{0x01}})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Simulate out-of-band file loss.
	store.Delete("lost.jpg")

	got, err := lifecycle.Get(ctx, testBase, created.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.URL != nil {
		t.Errorf("expected nil URL for missing file, got %q", *got.URL)
	}
	if got.Warning != WarningImageMissing {
		t.Errorf("expected warning %q, got %q", WarningImageMissing, got.Warning)
	}
}

func TestLifecycle_ResolveAllMixedRecords(t *testing.T) {
	store := newFakeStore()
	lifecycle := newTestLifecycle(store, newFakeRepo())
	if err := store.Save("ok.jpg", []byte{0x01}); err != nil {
		t.Fatal(err)
	}

	withFile := &GalleryItem{ID: 1, ImageField: ImageField{Filename: "ok.jpg"}}
	withLostFile := &GalleryItem{ID: 2, ImageField: ImageField{Filename: "lost.jpg"}}
	withoutImage := &GalleryItem{ID: 3}

	lifecycle.ResolveAll(testBase, []*GalleryItem{withFile, withLostFile, withoutImage})

	if withFile.URL == nil || *withFile.URL != "https://desa.example.id/backend-assets/gallery/ok.jpg" {
		t.Errorf("unexpected URL for present file: %v", withFile.URL)
	}
	if withLostFile.URL != nil || withLostFile.Warning != WarningImageMissing {
		t.Errorf("expected warning for lost file, got url=%v warning=%q", withLostFile.URL, withLostFile.Warning)
	}
	if withoutImage.URL != nil || withoutImage.Warning != "" {
		t.Errorf("expected untouched image field for record without image, got url=%v warning=%q", withoutImage.URL, withoutImage.Warning)
	}
}

func TestLifecycle_BasePath(t *testing.T) {
	lifecycle := newTestLifecycle(newFakeStore(), newFakeRepo())
	expected := "https://desa.example.id/backend-assets/gallery/"
	if got := lifecycle.BasePath(testBase); got != expected {
		t.Errorf("expected base path %q, got %q", expected, got)
	}
}
