package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToLocalDisk(t *testing.T) {
	res, err := New(context.Background(), Config{LocalDir: t.TempDir(), LocalURLPrefix: "/media"})
	require.NoError(t, err)
	assert.Equal(t, "local", res.Driver)
	require.IsType(t, &Local{}, res.Storage)
}

func TestNewRejectsIncompleteS3Config(t *testing.T) {
	cases := []Config{
		{Driver: "s3"},
		{Driver: "s3", S3Region: "eu-central-1"},
		{Driver: "s3", S3Region: "eu-central-1", S3Bucket: "freesport-media"},
	}
	for _, cfg := range cases {
		_, err := New(context.Background(), cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), Config{Driver: "ftp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ftp")
}
