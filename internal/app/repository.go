package app

import (
	"context"
	"fmt"

	"github.com/flowintel/flowintel/internal/config"
	"github.com/flowintel/flowintel/internal/profile"
	"github.com/flowintel/flowintel/internal/storage/archive"
	"go.uber.org/zap"
)

// OpenRepository builds the profile repository selected by cfg and loads it.
// It returns the repository and the number of profiles available.
func OpenRepository(ctx context.Context, cfg config.ProfilesConfig, logger *zap.Logger) (profile.Repository, int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Source {
	case "", config.SourceFixtures:
		repo := profile.NewMemoryRepository(profile.Fixtures()...)
		logger.Info("serving built-in profiles", zap.Int("count", repo.Len()))
		return repo, repo.Len(), nil

	case config.SourceLocalFS, config.SourceS3:
		storage, err := OpenArchive(cfg)
		if err != nil {
			return nil, 0, err
		}
		repo := profile.NewArchiveRepository(storage, cfg.Prefix, logger)
		n, err := repo.Load(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("loading profiles: %w", err)
		}
		return repo, n, nil

	default:
		return nil, 0, fmt.Errorf("unknown profiles source %q", cfg.Source)
	}
}

// OpenArchive opens the blob store behind a localfs or s3 profile source.
func OpenArchive(cfg config.ProfilesConfig) (archive.Storage, error) {
	storage, err := archive.Open(archive.Options{
		Type: cfg.Source,
		Path: cfg.Path,
		S3: archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s profile store: %w", cfg.Source, err)
	}
	return storage, nil
}
