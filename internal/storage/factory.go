package storage

import (
	"context"
	"fmt"
)

// Config selects and configures the media backend. It is nested into the
// application configuration, so the fields arrive through envconfig like
// every other setting.
type Config struct {
	Driver string `default:"local"` // local or s3

	LocalDir       string `split_words:"true" default:"./storage/media"`
	LocalURLPrefix string `split_words:"true" default:"/media"`

	S3Region        string `envconfig:"S3_REGION"`
	S3Bucket        string `envconfig:"S3_BUCKET"`
	S3Prefix        string `envconfig:"S3_PREFIX" default:"media"`
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`
}

type FactoryResult struct {
	Driver  string
	Storage Storage
}

// New builds the media storage backend. Defaults to local disk so dev
// setups need no S3 credentials.
func New(ctx context.Context, cfg Config) (FactoryResult, error) {
	switch cfg.Driver {
	case "", "local":
		return FactoryResult{Driver: "local", Storage: NewLocal(cfg.LocalDir, cfg.LocalURLPrefix)}, nil

	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" || cfg.S3PublicBaseURL == "" {
			return FactoryResult{}, fmt.Errorf("s3 media config missing: region, bucket and public base URL are required")
		}
		s, err := NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "s3", Storage: s}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown media driver: %s", cfg.Driver)
	}
}
