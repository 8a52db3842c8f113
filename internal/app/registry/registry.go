package registry

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tafahna/practicum-portal/internal/app/models"
	"github.com/tafahna/practicum-portal/internal/pkg/apperrors"
	"github.com/tafahna/practicum-portal/internal/store"
)

// Registry is the single source of truth for the institute and student
// collections. Every mutation updates both sides of the occupancy invariant
// under one lock and then persists full JSON snapshots through the store:
// for every institute I, I.CurrentCount equals the number of students whose
// InstituteID is I.ID.
type Registry struct {
	mu         sync.RWMutex
	institutes []*models.Institute
	students   []*models.Student
	store      store.Store
	logger     zerolog.Logger
}

// New creates an empty registry backed by the given store.
func New(st store.Store, logger zerolog.Logger) *Registry {
	return &Registry{
		store:  st,
		logger: logger,
	}
}

// Load reads both collection snapshots from the store. A missing or
// malformed blob falls back to the empty collection; the failure is logged
// but never surfaced. Occupancy counts are re-derived from the student
// collection because the stored count is only a cache.
func (r *Registry) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.institutes = loadCollection[models.Institute](ctx, r.store, store.KeyInstitutes, r.logger)
	r.students = loadCollection[models.Student](ctx, r.store, store.KeyStudents, r.logger)

	r.recountLocked()
	return nil
}

func loadCollection[T any](ctx context.Context, st store.Store, key string, logger zerolog.Logger) []*T {
	blob, found, err := st.Load(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to load snapshot, starting empty")
		return nil
	}
	if !found {
		return nil
	}

	var items []*T
	if err := json.Unmarshal(blob, &items); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Malformed snapshot, starting empty")
		return nil
	}
	return items
}

// recountLocked re-derives every occupancy count from the student collection.
func (r *Registry) recountLocked() {
	counts := make(map[string]int, len(r.institutes))
	for _, s := range r.students {
		counts[s.InstituteID]++
	}
	for _, inst := range r.institutes {
		inst.CurrentCount = counts[inst.ID]
		if inst.CurrentCount > inst.MaxCapacity {
			r.logger.Warn().
				Str("instituteId", inst.ID).
				Int("count", inst.CurrentCount).
				Int("capacity", inst.MaxCapacity).
				Msg("Institute roster exceeds capacity in stored snapshot")
		}
	}
}

// persistLocked writes both snapshots. A failed write loses only that
// write; the in-memory state stays authoritative and the next mutation
// retries a full snapshot anyway.
func (r *Registry) persistLocked(ctx context.Context) {
	if blob, err := json.Marshal(r.institutes); err == nil {
		if err := r.store.Save(ctx, store.KeyInstitutes, blob); err != nil {
			r.logger.Error().Err(err).Msg("Failed to persist institutes snapshot")
		}
	}
	if blob, err := json.Marshal(r.students); err == nil {
		if err := r.store.Save(ctx, store.KeyStudents, blob); err != nil {
			r.logger.Error().Err(err).Msg("Failed to persist students snapshot")
		}
	}
}

func (r *Registry) findInstituteLocked(id string) (int, *models.Institute) {
	for i, inst := range r.institutes {
		if inst.ID == id {
			return i, inst
		}
	}
	return -1, nil
}

// RegisterStudent inserts the student record and increments the occupancy
// count of the referenced institute. Registration into a missing or full
// institute is rejected before any mutation.
func (r *Registry) RegisterStudent(ctx context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, inst := r.findInstituteLocked(student.InstituteID)
	if inst == nil {
		return apperrors.ErrInstituteNotFound
	}
	if inst.Full() {
		return apperrors.ErrInstituteFull
	}

	copied := *student
	r.students = append(r.students, &copied)
	inst.CurrentCount++

	r.persistLocked(ctx)
	return nil
}

// RemoveStudent deletes the student record and decrements the referenced
// institute's occupancy count, floored at 0.
func (r *Registry) RemoveStudent(ctx context.Context, studentID, instituteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, s := range r.students {
		if s.ID == studentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.ErrStudentNotFound
	}

	r.students = append(r.students[:idx], r.students[idx+1:]...)

	if _, inst := r.findInstituteLocked(instituteID); inst != nil {
		if inst.CurrentCount > 0 {
			inst.CurrentCount--
		}
	}

	r.persistLocked(ctx)
	return nil
}

// AddInstitute inserts a new institute at the front of the catalogue with
// an occupancy of 0.
func (r *Registry) AddInstitute(ctx context.Context, inst *models.Institute) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *inst
	copied.CurrentCount = 0
	r.institutes = append([]*models.Institute{&copied}, r.institutes...)

	r.persistLocked(ctx)
	return nil
}

// RenameInstitute renames an institute in place. The name is the only
// mutable field.
func (r *Registry) RenameInstitute(ctx context.Context, id, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, inst := r.findInstituteLocked(id)
	if inst == nil {
		return apperrors.ErrInstituteNotFound
	}
	inst.Name = newName

	r.persistLocked(ctx)
	return nil
}

// DeleteInstitute removes the institute and cascades deletion to every
// student referencing it. Both collections change under the same lock so no
// orphaned student ever references a missing institute. Returns how many
// student records the cascade removed.
func (r *Registry) DeleteInstitute(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, inst := r.findInstituteLocked(id)
	if inst == nil {
		return 0, apperrors.ErrInstituteNotFound
	}

	r.institutes = append(r.institutes[:idx], r.institutes[idx+1:]...)

	kept := r.students[:0]
	removed := 0
	for _, s := range r.students {
		if s.InstituteID == id {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	r.students = kept

	r.persistLocked(ctx)
	return removed, nil
}

// SeedInstitutes installs an initial catalogue. Used only when the store
// held no institute snapshot at startup.
func (r *Registry) SeedInstitutes(ctx context.Context, institutes []*models.Institute) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.institutes = institutes
	r.recountLocked()
	r.persistLocked(ctx)
}

// HasInstitutes reports whether any institute exists.
func (r *Registry) HasInstitutes() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.institutes) > 0
}

// InstituteFilter narrows institute views.
type InstituteFilter struct {
	Year         models.Year
	DepartmentID string
	Search       string
}

func (f InstituteFilter) matches(inst *models.Institute) bool {
	if f.Year != "" && inst.Year != f.Year {
		return false
	}
	if f.DepartmentID != "" && inst.DepartmentID != f.DepartmentID {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(inst.Name), needle) &&
			!strings.Contains(strings.ToLower(inst.Location), needle) {
			return false
		}
	}
	return true
}

// Institutes returns copies of the institutes matching the filter, in
// catalogue order.
func (r *Registry) Institutes(filter InstituteFilter) []models.Institute {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Institute, 0, len(r.institutes))
	for _, inst := range r.institutes {
		if filter.matches(inst) {
			result = append(result, *inst)
		}
	}
	return result
}

// InstitutesByLocation groups the matching institutes by their free-text
// location, preserving catalogue order within each group.
func (r *Registry) InstitutesByLocation(filter InstituteFilter) map[string][]models.Institute {
	grouped := make(map[string][]models.Institute)
	for _, inst := range r.Institutes(filter) {
		grouped[inst.Location] = append(grouped[inst.Location], inst)
	}
	return grouped
}

// InstituteByID returns a copy of the institute, if present.
func (r *Registry) InstituteByID(id string) (models.Institute, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, inst := r.findInstituteLocked(id); inst != nil {
		return *inst, true
	}
	return models.Institute{}, false
}

// StudentsByInstitute returns the roster of an institute.
func (r *Registry) StudentsByInstitute(instituteID string) []models.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Student
	for _, s := range r.students {
		if s.InstituteID == instituteID {
			result = append(result, *s)
		}
	}
	return result
}

// StudentsBySection returns students sorted by name, narrowed to a
// year-track and department when those are non-empty.
func (r *Registry) StudentsBySection(year models.Year, departmentID string) []models.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Student
	for _, s := range r.students {
		if year != "" && s.Year != year {
			continue
		}
		if departmentID != "" && s.DepartmentID != departmentID {
			continue
		}
		result = append(result, *s)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// StudentByID returns a copy of the student record, if present.
func (r *Registry) StudentByID(id string) (models.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.students {
		if s.ID == id {
			return *s, true
		}
	}
	return models.Student{}, false
}

// StudentByNationalID returns the registration holding the national id, if
// any. Used for the one-registration-per-person check.
func (r *Registry) StudentByNationalID(nationalID string) (models.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.students {
		if s.NationalID == nationalID {
			return *s, true
		}
	}
	return models.Student{}, false
}
