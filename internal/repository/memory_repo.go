package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/sristy17/sgay-v1/internal/model"
	pkgerrors "github.com/sristy17/sgay-v1/pkg/errors"
)

// The memory repositories keep the same contract as the gorm ones: absent rows
// yield gorm.ErrRecordNotFound, stale versions yield ErrOptimisticLock, and
// callers never share memory with the stored records.

// ── shared table ──

// memTable id-keyed rows; every row goes in and out through clone.
type memTable[T any] struct {
	mu    sync.RWMutex
	rows  map[int64]*T
	clone func(*T) *T
}

func newMemTable[T any](clone func(*T) *T) *memTable[T] {
	return &memTable[T]{rows: make(map[int64]*T), clone: clone}
}

func (t *memTable[T]) get(id int64) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t.clone(row), nil
}

// list returns matching rows in id order. keep may be nil.
func (t *memTable[T]) list(keep func(*T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int64, 0, len(t.rows))
	for id, row := range t.rows {
		if keep == nil || keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	list := make([]T, 0, len(ids))
	for _, id := range ids {
		list = append(list, *t.clone(t.rows[id]))
	}
	return list
}

func (t *memTable[T]) delete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *memTable[T]) maxID() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var max int64
	for id := range t.rows {
		if id > max {
			max = id
		}
	}
	return max
}

// stampCreated version 1 and audit times for a new row
func stampCreated(v *model.VersionedModel) {
	if v.Version == 0 {
		v.Version = 1
	}
	now := time.Now()
	v.CreatedAt, v.UpdatedAt = now, now
}

// stampUpdated checks next against the stored version and bumps it
func stampUpdated(cur, next *model.VersionedModel) error {
	if cur.Version != next.Version {
		return pkgerrors.ErrOptimisticLock
	}
	next.Version++
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = time.Now()
	return nil
}

// ── beneficiaries ──

type memoryBeneficiaryRepo struct {
	*memTable[model.Beneficiary]
}

// NewMemoryBeneficiaryRepo creates an in-memory BeneficiaryRepository
func NewMemoryBeneficiaryRepo() BeneficiaryRepository {
	return &memoryBeneficiaryRepo{newMemTable((*model.Beneficiary).Clone)}
}

func (r *memoryBeneficiaryRepo) Create(_ context.Context, b *model.Beneficiary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[b.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	stampCreated(&b.VersionedModel)
	r.rows[b.ID] = b.Clone()
	return nil
}

func (r *memoryBeneficiaryRepo) GetByID(_ context.Context, id int64) (*model.Beneficiary, error) {
	return r.get(id)
}

func (r *memoryBeneficiaryRepo) List(_ context.Context, filter BeneficiaryFilter) ([]model.Beneficiary, error) {
	return r.list(func(b *model.Beneficiary) bool {
		if filter.Constituency != "" && b.Constituency != filter.Constituency {
			return false
		}
		return filter.AssignedOfficer == "" || b.AssignedOfficer == filter.AssignedOfficer
	}), nil
}

func (r *memoryBeneficiaryRepo) ListByIDs(_ context.Context, ids []int64) ([]model.Beneficiary, error) {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.list(func(b *model.Beneficiary) bool { return want[b.ID] }), nil
}

func (r *memoryBeneficiaryRepo) Update(_ context.Context, b *model.Beneficiary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.rows[b.ID]
	if !ok {
		return pkgerrors.ErrOptimisticLock
	}
	if err := stampUpdated(&cur.VersionedModel, &b.VersionedModel); err != nil {
		return err
	}
	r.rows[b.ID] = b.Clone()
	return nil
}

func (r *memoryBeneficiaryRepo) MaxID(_ context.Context) (int64, error) {
	return r.maxID(), nil
}

// ── pending entries ──

type memoryPendingEntryRepo struct {
	*memTable[model.PendingEntry]
}

// NewMemoryPendingEntryRepo creates an in-memory PendingEntryRepository
func NewMemoryPendingEntryRepo() PendingEntryRepository {
	return &memoryPendingEntryRepo{newMemTable((*model.PendingEntry).Clone)}
}

func (r *memoryPendingEntryRepo) Create(_ context.Context, e *model.PendingEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[e.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.rows[e.ID] = e.Clone()
	return nil
}

func (r *memoryPendingEntryRepo) GetByID(_ context.Context, id int64) (*model.PendingEntry, error) {
	return r.get(id)
}

func (r *memoryPendingEntryRepo) List(_ context.Context) ([]model.PendingEntry, error) {
	return r.list(nil), nil
}

func (r *memoryPendingEntryRepo) Delete(_ context.Context, id int64) error {
	return r.delete(id)
}

func (r *memoryPendingEntryRepo) MaxID(_ context.Context) (int64, error) {
	return r.maxID(), nil
}

// ── officers ──

type memoryOfficerRepo struct {
	*memTable[model.Officer]
}

// NewMemoryOfficerRepo creates an in-memory OfficerRepository
func NewMemoryOfficerRepo() OfficerRepository {
	return &memoryOfficerRepo{newMemTable((*model.Officer).Clone)}
}

func (r *memoryOfficerRepo) Create(_ context.Context, o *model.Officer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[o.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	for _, cur := range r.rows {
		if cur.Name == o.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	stampCreated(&o.VersionedModel)
	if o.AssignedHouses == nil {
		o.AssignedHouses = model.IntArray{}
	}
	r.rows[o.ID] = o.Clone()
	return nil
}

func (r *memoryOfficerRepo) GetByID(_ context.Context, id int64) (*model.Officer, error) {
	return r.get(id)
}

// GetByName names are unique, so at most one row matches.
func (r *memoryOfficerRepo) GetByName(_ context.Context, name string) (*model.Officer, error) {
	matches := r.list(func(o *model.Officer) bool { return o.Name == name })
	if len(matches) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &matches[0], nil
}

func (r *memoryOfficerRepo) List(_ context.Context) ([]model.Officer, error) {
	return r.list(nil), nil
}

func (r *memoryOfficerRepo) Update(_ context.Context, o *model.Officer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.rows[o.ID]
	if !ok {
		return pkgerrors.ErrOptimisticLock
	}
	if err := stampUpdated(&cur.VersionedModel, &o.VersionedModel); err != nil {
		return err
	}
	r.rows[o.ID] = o.Clone()
	return nil
}

func (r *memoryOfficerRepo) Delete(_ context.Context, id int64) error {
	return r.delete(id)
}

func (r *memoryOfficerRepo) MaxID(_ context.Context) (int64, error) {
	return r.maxID(), nil
}
