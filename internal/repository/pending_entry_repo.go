package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sristy17/sgay-v1/internal/model"
)

// PendingEntryRepository pending entry queue data access.
// An entry is either present (awaiting a decision) or absent (decided).
type PendingEntryRepository interface {
	Create(ctx context.Context, e *model.PendingEntry) error
	GetByID(ctx context.Context, id int64) (*model.PendingEntry, error)
	// List returns entries in insertion order.
	List(ctx context.Context) ([]model.PendingEntry, error)
	// Delete returns gorm.ErrRecordNotFound when the entry is absent.
	Delete(ctx context.Context, id int64) error
	MaxID(ctx context.Context) (int64, error)
}

type pendingEntryRepo struct {
	db *gorm.DB
}

// NewPendingEntryRepo creates a PendingEntryRepository
func NewPendingEntryRepo(db *gorm.DB) PendingEntryRepository {
	return &pendingEntryRepo{db: db}
}

func (r *pendingEntryRepo) Create(ctx context.Context, e *model.PendingEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *pendingEntryRepo) GetByID(ctx context.Context, id int64) (*model.PendingEntry, error) {
	var e model.PendingEntry
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ids are allocated monotonically, so id order is insertion order
func (r *pendingEntryRepo) List(ctx context.Context) ([]model.PendingEntry, error) {
	var list []model.PendingEntry
	err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *pendingEntryRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PendingEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pendingEntryRepo) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	err := r.db.WithContext(ctx).
		Model(&model.PendingEntry{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	return maxID, err
}
