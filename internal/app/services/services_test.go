package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/app/registry"
)

// memStore keeps snapshots in memory for the service tests.
type memStore struct {
	blobs map[string][]byte
}

func (m *memStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	blob, ok := m.blobs[key]
	return blob, ok, nil
}

func (m *memStore) Save(_ context.Context, key string, blob []byte) error {
	m.blobs[key] = blob
	return nil
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New(&memStore{blobs: map[string][]byte{}}, zerolog.Nop())
	require.NoError(t, reg.Load(context.Background()))
	return reg
}

func seedInstitute(t *testing.T, reg *registry.Registry, id string, year models.Year, departmentID string) {
	t.Helper()
	require.NoError(t, reg.AddInstitute(context.Background(), &models.Institute{
		ID:           id,
		Name:         "معهد تفهنا الأشراف الأزهري",
		Location:     "تفهنا الأشراف",
		DepartmentID: departmentID,
		Year:         year,
		MaxCapacity:  models.InstituteCapacity,
	}))
}
