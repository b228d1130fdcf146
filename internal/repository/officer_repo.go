package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sristy17/sgay-v1/internal/model"
	pkgerrors "github.com/sristy17/sgay-v1/pkg/errors"
)

// OfficerRepository officer index data access
type OfficerRepository interface {
	Create(ctx context.Context, o *model.Officer) error
	GetByID(ctx context.Context, id int64) (*model.Officer, error)
	// GetByName exact, case-sensitive match.
	GetByName(ctx context.Context, name string) (*model.Officer, error)
	List(ctx context.Context) ([]model.Officer, error)
	Update(ctx context.Context, o *model.Officer) error
	Delete(ctx context.Context, id int64) error
	MaxID(ctx context.Context) (int64, error)
}

type officerRepo struct {
	db *gorm.DB
}

// NewOfficerRepo creates an OfficerRepository
func NewOfficerRepo(db *gorm.DB) OfficerRepository {
	return &officerRepo{db: db}
}

func (r *officerRepo) Create(ctx context.Context, o *model.Officer) error {
	if o.Version == 0 {
		o.Version = 1
	}
	if o.AssignedHouses == nil {
		o.AssignedHouses = model.IntArray{}
	}
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *officerRepo) GetByID(ctx context.Context, id int64) (*model.Officer, error) {
	var o model.Officer
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *officerRepo) GetByName(ctx context.Context, name string) (*model.Officer, error) {
	var o model.Officer
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id ASC").
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *officerRepo) List(ctx context.Context) ([]model.Officer, error) {
	var list []model.Officer
	err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *officerRepo) Update(ctx context.Context, o *model.Officer) error {
	oldVersion := o.Version
	result := r.db.WithContext(ctx).
		Model(&model.Officer{}).
		Where("id = ? AND version = ?", o.ID, oldVersion).
		Updates(map[string]interface{}{
			"name":            o.Name,
			"designation":     o.Designation,
			"email":           o.Email,
			"contact_number":  o.ContactNumber,
			"constituency":    o.Constituency,
			"role":            o.Role,
			"assigned_houses": o.AssignedHouses,
			"updated_at":      gorm.Expr("NOW()"),
			"version":         oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	o.Version = oldVersion + 1
	return nil
}

func (r *officerRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Officer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *officerRepo) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	err := r.db.WithContext(ctx).
		Model(&model.Officer{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	return maxID, err
}
