package content

import (
	"context"
	"fmt"

	"github.com/digidesa/desa-cms/internal/assets"
	"go.uber.org/zap"
)

// WarningImageMissing is attached to records whose stored filename no longer
// points at a file on disk.
const WarningImageMissing = "Image file not found on server"

// AssetStore is the filesystem side of the lifecycle, scoped to one category.
type AssetStore interface {
	Save(name string, content []byte) error
	Exists(name string) bool
	Delete(name string)
}

// URLResolver turns a stored filename into an externally reachable URL.
type URLResolver interface {
	Resolve(base assets.Base, filename string) string
}

// Repository is the per-category persistence contract consumed by Lifecycle.
// GetByID returns ErrNotFound when the id is absent.
type Repository[T Record] interface {
	GetByID(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, rec T) (int64, error)
	Update(ctx context.Context, rec T) error
	Delete(ctx context.Context, id int64) error
}

// Upload is a staged uploaded file: content plus the generated target name.
// Name generation happens in the transport layer, not here.
type Upload struct {
	Filename string
	Content  []byte
}

// Lifecycle coordinates record rows and their backing image files for one
// category. Durability ordering biases failures toward orphan files rather
// than rows referencing missing files: the file is written before the row on
// create, and the row is deleted before the file on delete. Orphans stay
// invisible to consumers because every read re-validates file existence.
type Lifecycle[T Record] struct {
	repo     Repository[T]
	store    AssetStore
	resolver URLResolver
	log      *zap.Logger
}

func NewLifecycle[T Record](repo Repository[T], store AssetStore, resolver URLResolver, log *zap.Logger) *Lifecycle[T] {
	return &Lifecycle[T]{repo: repo, store: store, resolver: resolver, log: log}
}

// BasePath returns the category's public base path, advertised to clients so
// they can resolve relative names themselves.
func (l *Lifecycle[T]) BasePath(base assets.Base) string {
	return l.resolver.Resolve(base, "")
}

// Create persists the optional upload first, then the row. If the row write
// or the re-fetch fails after the file was written, the file is rolled back
// so it cannot be orphaned by a failed create.
func (l *Lifecycle[T]) Create(ctx context.Context, base assets.Base, rec T, upload *Upload) (T, error) {
	var zero T
	if upload != nil {
		if err := l.store.Save(upload.Filename, upload.Content); err != nil {
			return zero, fmt.Errorf("store upload: %w", err)
		}
		rec.Image().Filename = upload.Filename
	}

	id, err := l.repo.Create(ctx, rec)
	if err != nil {
		l.rollbackUpload(upload)
		return zero, err
	}

	created, err := l.repo.GetByID(ctx, id)
	if err != nil {
		l.rollbackUpload(upload)
		return zero, err
	}

	// The file was written moments ago; skip the existence probe.
	if name := created.Image().Filename; name != "" {
		url := l.resolver.Resolve(base, name)
		created.Image().URL = &url
	}
	return created, nil
}

// Get fetches a record by id and resolves its image URL.
func (l *Lifecycle[T]) Get(ctx context.Context, base assets.Base, id int64) (T, error) {
	var zero T
	rec, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	l.Resolve(base, rec)
	return rec, nil
}

// Update applies rec, whose fields the caller has already merged with the
// existing values, and optionally replaces the backing file. The old file is
// only removed after the row write succeeds, so a failed update leaves the
// previous asset untouched and rolls back the new one.
func (l *Lifecycle[T]) Update(ctx context.Context, base assets.Base, rec T, upload *Upload) (T, error) {
	var zero T
	existing, err := l.repo.GetByID(ctx, rec.RecordID())
	if err != nil {
		return zero, err
	}
	oldName := existing.Image().Filename

	if upload != nil {
		if err := l.store.Save(upload.Filename, upload.Content); err != nil {
			return zero, fmt.Errorf("store upload: %w", err)
		}
		rec.Image().Filename = upload.Filename
	} else {
		rec.Image().Filename = oldName
	}

	if err := l.repo.Update(ctx, rec); err != nil {
		l.rollbackUpload(upload)
		return zero, err
	}

	if upload != nil && oldName != "" && oldName != upload.Filename {
		l.store.Delete(oldName)
	}

	updated, err := l.repo.GetByID(ctx, rec.RecordID())
	if err != nil {
		return zero, err
	}
	l.Resolve(base, updated)
	return updated, nil
}

// Delete removes the row, then best-effort removes the backing file. Row
// deletion succeeding is sufficient for overall success.
func (l *Lifecycle[T]) Delete(ctx context.Context, id int64) (int64, error) {
	rec, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := l.repo.Delete(ctx, id); err != nil {
		return 0, err
	}
	if name := rec.Image().Filename; name != "" {
		l.store.Delete(name)
	}
	return id, nil
}

// Resolve fills the image URL of rec, degrading to a warning when the backing
// file has gone missing out-of-band.
func (l *Lifecycle[T]) Resolve(base assets.Base, rec T) {
	img := rec.Image()
	if img.Filename == "" {
		return
	}
	if !l.store.Exists(img.Filename) {
		img.URL = nil
		img.Warning = WarningImageMissing
		return
	}
	url := l.resolver.Resolve(base, img.Filename)
	img.URL = &url
}

// ResolveAll resolves image URLs for a listing.
func (l *Lifecycle[T]) ResolveAll(base assets.Base, recs []T) {
	for _, rec := range recs {
		l.Resolve(base, rec)
	}
}

func (l *Lifecycle[T]) rollbackUpload(upload *Upload) {
	if upload == nil {
		return
	}
	l.log.Warn("rolling back uploaded file after failed record mutation",
		zap.String("file", upload.Filename))
	l.store.Delete(upload.Filename)
}
