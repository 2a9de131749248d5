package repository

import (
	"context"

	"github.com/wekeepgrowing/toptex-catalog-sync/internal/domain/model"
)

// MediaStore keeps normalized images and returns a URI that references them
type MediaStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// MediaBlobStore is a MediaStore that also serves what it keeps
type MediaBlobStore interface {
	MediaStore
	// Get returns (nil, nil) when no image is stored under key
	Get(ctx context.Context, key string) (*model.MediaBlob, error)
}
