// Package storage persists uploaded assets under caller-chosen names.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/rpupo63/portfolio-admin-backend/config"
)

// Store keeps one object per key. Put overwrites, Delete of a missing key succeeds.
type Store interface {
	Put(ctx context.Context, namespace, name string, content io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New returns the Store selected by cfg.AssetBackend.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.AssetBackend {
	case config.AssetBackendDisk:
		return NewDiskStore(cfg.AssetRoot)
	case config.AssetBackendS3:
		return NewS3Store(ctx, S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			UsePathStyle:    cfg.S3UsePathStyle,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
		})
	default:
		return nil, fmt.Errorf("unsupported asset backend %q", cfg.AssetBackend)
	}
}

// Key joins namespace and name into a slash separated key, rejecting traversal.
func Key(namespace, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid asset name %q", name)
	}
	key := path.Join(namespace, name)
	if err := checkKey(key); err != nil {
		return "", err
	}
	return key, nil
}

func checkKey(key string) error {
	if key == "" || path.IsAbs(key) || strings.Contains(key, `\`) {
		return fmt.Errorf("invalid asset key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." {
			return fmt.Errorf("invalid asset key %q", key)
		}
	}
	return nil
}
