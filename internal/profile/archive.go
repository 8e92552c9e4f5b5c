package profile

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/flowintel/flowintel/internal/storage/archive"
	"go.uber.org/zap"
)

// ArchiveRepository serves profiles loaded from YAML documents in an archive
// (a local directory or an S3 bucket). Documents are read on Load; between
// loads it behaves like a MemoryRepository.
type ArchiveRepository struct {
	*MemoryRepository
	storage archive.Storage
	prefix  string
	logger  *zap.Logger
}

// NewArchiveRepository creates an empty repository over storage. Call Load
// before serving.
func NewArchiveRepository(storage archive.Storage, prefix string, logger *zap.Logger) *ArchiveRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveRepository{
		MemoryRepository: NewMemoryRepository(),
		storage:          storage,
		prefix:           strings.Trim(prefix, "/"),
		logger:           logger,
	}
}

// Load reads every document under the prefix and replaces the catalogue.
// Invalid documents are logged and skipped. It returns the number loaded.
func (r *ArchiveRepository) Load(ctx context.Context) (int, error) {
	paths, err := r.storage.List(ctx, r.prefix)
	if err != nil {
		return 0, fmt.Errorf("listing profiles: %w", err)
	}

	var loaded []Profile
	seen := make(map[string]string)
	for _, p := range paths {
		if !isDocument(p) {
			continue
		}

		data, err := r.storage.Read(ctx, p)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", p, err)
		}

		prof, err := Decode(data)
		if err != nil {
			r.logger.Warn("skipping invalid profile document",
				zap.String("path", p),
				zap.Error(err),
			)
			continue
		}
		if prev, dup := seen[prof.ID]; dup {
			r.logger.Warn("duplicate profile id, keeping first",
				zap.String("id", prof.ID),
				zap.String("kept", prev),
				zap.String("skipped", p),
			)
			continue
		}
		seen[prof.ID] = p
		loaded = append(loaded, *prof)
	}

	r.Replace(loaded)
	r.logger.Info("profiles loaded",
		zap.String("prefix", r.prefix),
		zap.Int("count", len(loaded)),
	)
	return len(loaded), nil
}

// ExportResult lists the document paths an export wrote and left alone.
type ExportResult struct {
	Written []string
	Skipped []string
}

// Export writes one document per profile under prefix. Documents already in
// storage are skipped unless overwrite is set.
func Export(ctx context.Context, storage archive.Storage, prefix string, profiles []Profile, overwrite bool) (ExportResult, error) {
	var res ExportResult
	for _, p := range profiles {
		docPath := DocumentPath(prefix, p.ID)
		if !overwrite {
			exists, err := storage.Exists(ctx, docPath)
			if err != nil {
				return res, fmt.Errorf("checking %s: %w", p.ID, err)
			}
			if exists {
				res.Skipped = append(res.Skipped, docPath)
				continue
			}
		}

		data, err := Encode(p)
		if err != nil {
			return res, fmt.Errorf("exporting %s: %w", p.ID, err)
		}
		if err := storage.Write(ctx, docPath, data); err != nil {
			return res, fmt.Errorf("writing %s: %w", p.ID, err)
		}
		res.Written = append(res.Written, docPath)
	}
	return res, nil
}

// DocumentPath is where a profile document lives under prefix.
func DocumentPath(prefix, id string) string {
	return path.Join(strings.Trim(prefix, "/"), id+DocumentExt)
}

func isDocument(p string) bool {
	return strings.HasSuffix(p, DocumentExt) || strings.HasSuffix(p, ".yml")
}
