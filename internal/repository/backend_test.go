package repository

import (
	"context"
	"testing"

	"github.com/MikhailONe12/App-Risk-Manager/internal/config"
	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBlobStore_File(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StoreBackend: config.StoreBackendFile, StoreDir: t.TempDir()}

	blobs, closeFn, err := OpenBlobStore(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()

	repo := NewStateRepository(blobs)
	require.NoError(t, repo.SaveProfiles(ctx, []domain.RiskProfile{domain.DefaultProfile()}))

	profiles, err := repo.LoadProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestOpenBlobStore_UnknownBackend(t *testing.T) {
	_, closeFn, err := OpenBlobStore(context.Background(), &config.Config{StoreBackend: "floppy"})

	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}
