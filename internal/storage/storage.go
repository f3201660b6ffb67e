package storage

import (
	"context"
	"io"
)

// MaxUploadSize caps blog/partner media uploads.
const MaxUploadSize = 8 << 20 // 8 MiB

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

// Storage persists uploaded media (blog covers, partner logos). Catalog
// product images are served by the remote catalog and never pass through
// here.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}
