package registry

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
)

// memStore is an in-memory store.Store used across the registry tests.
type memStore struct {
	blobs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{blobs: map[string][]byte{}}
}

func (m *memStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	blob, ok := m.blobs[key]
	return blob, ok, nil
}

func (m *memStore) Save(_ context.Context, key string, blob []byte) error {
	m.blobs[key] = blob
	return nil
}

func newTestRegistry(t *testing.T) (*Registry, *memStore) {
	t.Helper()
	st := newMemStore()
	r := New(st, zerolog.Nop())
	require.NoError(t, r.Load(context.Background()))
	return r, st
}

func testInstitute(id string) *models.Institute {
	return &models.Institute{
		ID:           id,
		Name:         "معهد تفهنا الأشراف الأزهري (1)",
		Location:     "تفهنا الأشراف",
		DepartmentID: "arabic",
		Year:         models.YearThird,
		MaxCapacity:  models.InstituteCapacity,
	}
}

func testStudent(instituteID, nationalID string) *models.Student {
	return &models.Student{
		ID:           uuid.New().String(),
		Name:         "أحمد محمد علي حسن",
		NationalID:   nationalID,
		Year:         models.YearThird,
		DepartmentID: "arabic",
		InstituteID:  instituteID,
	}
}

// requireInvariant asserts that every occupancy count equals the number of
// students referencing the institute.
func requireInvariant(t *testing.T, r *Registry) {
	t.Helper()
	for _, inst := range r.Institutes(InstituteFilter{}) {
		assert.Equal(t, len(r.StudentsByInstitute(inst.ID)), inst.CurrentCount,
			"occupancy count of %s drifted from its roster", inst.ID)
	}
}

func TestRegisterStudent_IncrementsCount(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.AddInstitute(ctx, testInstitute("inst-1")))
	require.NoError(t, r.RegisterStudent(ctx, testStudent("inst-1", "29805241234567")))

	inst, ok := r.InstituteByID("inst-1")
	require.True(t, ok)
	assert.Equal(t, 1, inst.CurrentCount)
	requireInvariant(t, r)
}

func TestRegisterStudent_UnknownInstitute(t *testing.T) {
	r, _ := newTestRegistry(t)

	err := r.RegisterStudent(context.Background(), testStudent("missing", "29805241234567"))
	assert.ErrorIs(t, err, apperrors.ErrInstituteNotFound)
}

func TestRegisterStudent_FullInstituteRejectedWithoutMutation(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.AddInstitute(ctx, testInstitute("inst-1")))

	for i := 0; i < models.InstituteCapacity; i++ {
		nid := fmt.Sprintf("298052412345%02d", i)
		require.NoError(t, r.RegisterStudent(ctx, testStudent("inst-1", nid)))
	}

	// The seventh attempt must be rejected and must not touch either collection.
	err := r.RegisterStudent(ctx, testStudent("inst-1", "29805241234599"))
	assert.ErrorIs(t, err, apperrors.ErrInstituteFull)

	inst, _ := r.InstituteByID("inst-1")
	assert.Equal(t, models.InstituteCapacity, inst.CurrentCount)
	assert.Len(t, r.StudentsByInstitute("inst-1"), models.InstituteCapacity)
	requireInvariant(t, r)
}

func TestRemoveStudent_DecrementsCount(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.AddInstitute(ctx, testInstitute("inst-1")))
	student := testStudent("inst-1", "29805241234567")
	require.NoError(t, r.RegisterStudent(ctx, student))

	require.NoError(t, r.RemoveStudent(ctx, student.ID, "inst-1"))

	inst, _ := r.InstituteByID("inst-1")
	assert.Equal(t, 0, inst.CurrentCount)
	assert.Empty(t, r.StudentsByInstitute("inst-1"))
	requireInvariant(t, r)
}

func TestRemoveStudent_Unknown(t *testing.T) {
	r, _ := newTestRegistry(t)

	err := r.RemoveStudent(context.Background(), "nope", "inst-1")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestRemoveStudent_CountNeverGoesNegative(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.AddInstitute(ctx, testInstitute("inst-1")))
	student := testStudent("inst-1", "29805241234567")
	require.NoError(t, r.RegisterStudent(ctx, student))

	// Removing against a different institute id exercises the defensive
	// clamp: the named institute has a count of 0 already.
	require.NoError(t, r.AddInstitute(ctx, testInstitute("inst-2")))
	require.NoError(t, r.RemoveStudent(ctx, student.ID, "inst-2"))

	inst2, _ := r.InstituteByID("inst-2")
	assert.Equal(t, 0, inst2.CurrentCount)
}

func TestDeleteInstitute_CascadesToStudents(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.AddInstitute(ctx, testInstitute("inst-1")))
	require.NoError(t, r.AddInstitute(ctx, testInstitute("inst-2")))
	require.NoError(t, r.RegisterStudent(ctx, testStudent("inst-1", "29805241234501")))
	require.NoError(t, r.RegisterStudent(ctx, testStudent("inst-1", "29805241234502")))
	keep := testStudent("inst-2", "29805241234503")
	require.NoError(t, r.RegisterStudent(ctx, keep))

	removed, err := r.DeleteInstitute(ctx, "inst-1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, ok := r.InstituteByID("inst-1")
	assert.False(t, ok)
	assert.Empty(t, r.StudentsByInstitute("inst-1"))

	// The unrelated institute and its roster survive untouched.
	_, ok = r.StudentByID(keep.ID)
	assert.True(t, ok)
	requireInvariant(t, r)
}

func TestDeleteInstitute_Unknown(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.DeleteInstitute(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrInstituteNotFound)
}

func TestRenameInstitute(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.AddInstitute(ctx, testInstitute("inst-1")))
	require.NoError(t, r.RenameInstitute(ctx, "inst-1", "معهد ميت غمر الأزهري"))

	inst, _ := r.InstituteByID("inst-1")
	assert.Equal(t, "معهد ميت غمر الأزهري", inst.Name)

	assert.ErrorIs(t, r.RenameInstitute(ctx, "missing", "x"), apperrors.ErrInstituteNotFound)
}

func TestLoad_RestoresStateAndRecountsOccupancy(t *testing.T) {
	st := newMemStore()
	ctx := context.Background()

	first := New(st, zerolog.Nop())
	require.NoError(t, first.Load(ctx))
	require.NoError(t, first.AddInstitute(ctx, testInstitute("inst-1")))
	require.NoError(t, first.RegisterStudent(ctx, testStudent("inst-1", "29805241234567")))

	// Tamper with the cached count in the stored snapshot; the student
	// collection is authoritative on load.
	st.blobs["institutes"] = []byte(`[{"id":"inst-1","name":"n","location":"l","departmentId":"arabic","year":"third","maxCapacity":6,"currentCount":5}]`)

	second := New(st, zerolog.Nop())
	require.NoError(t, second.Load(ctx))

	inst, ok := second.InstituteByID("inst-1")
	require.True(t, ok)
	assert.Equal(t, 1, inst.CurrentCount)
	requireInvariant(t, second)
}

func TestLoad_MalformedSnapshotFallsBackToEmpty(t *testing.T) {
	st := newMemStore()
	st.blobs["institutes"] = []byte(`{not json`)
	st.blobs["students"] = []byte(`broken too`)

	r := New(st, zerolog.Nop())
	require.NoError(t, r.Load(context.Background()))

	assert.False(t, r.HasInstitutes())
	assert.Empty(t, r.Institutes(InstituteFilter{}))
}

func TestInstitutes_Filtering(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	third := testInstitute("inst-1")
	fourth := testInstitute("inst-2")
	fourth.Year = models.YearFourth
	fourth.Location = "ميت غمر"
	english := testInstitute("inst-3")
	english.DepartmentID = "english"
	require.NoError(t, r.AddInstitute(ctx, third))
	require.NoError(t, r.AddInstitute(ctx, fourth))
	require.NoError(t, r.AddInstitute(ctx, english))

	assert.Len(t, r.Institutes(InstituteFilter{Year: models.YearThird}), 2)
	assert.Len(t, r.Institutes(InstituteFilter{DepartmentID: "arabic"}), 2)
	assert.Len(t, r.Institutes(InstituteFilter{Year: models.YearThird, DepartmentID: "english"}), 1)
	assert.Len(t, r.Institutes(InstituteFilter{Search: "ميت غمر"}), 1)

	grouped := r.InstitutesByLocation(InstituteFilter{})
	assert.Len(t, grouped["تفهنا الأشراف"], 2)
	assert.Len(t, grouped["ميت غمر"], 1)
}

func TestStudentsBySection_SortedByName(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.AddInstitute(ctx, testInstitute("inst-1")))

	second := testStudent("inst-1", "29805241234501")
	second.Name = "ياسر محمود عبد الله حسن"
	first := testStudent("inst-1", "29805241234502")
	first.Name = "أحمد محمد علي حسن"
	require.NoError(t, r.RegisterStudent(ctx, second))
	require.NoError(t, r.RegisterStudent(ctx, first))

	section := r.StudentsBySection(models.YearThird, "arabic")
	require.Len(t, section, 2)
	assert.Equal(t, first.Name, section[0].Name)
	assert.Equal(t, second.Name, section[1].Name)
}

func TestStudentByNationalID(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.AddInstitute(ctx, testInstitute("inst-1")))
	student := testStudent("inst-1", "29805241234567")
	require.NoError(t, r.RegisterStudent(ctx, student))

	found, ok := r.StudentByNationalID("29805241234567")
	require.True(t, ok)
	assert.Equal(t, student.ID, found.ID)

	_, ok = r.StudentByNationalID("00000000000000")
	assert.False(t, ok)
}
