package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sristy17/sgay-v1/internal/model"
	pkgerrors "github.com/sristy17/sgay-v1/pkg/errors"
)

// BeneficiaryFilter optional list filters; empty fields match everything
type BeneficiaryFilter struct {
	Constituency    string
	AssignedOfficer string
}

// BeneficiaryRepository canonical beneficiary data access
type BeneficiaryRepository interface {
	Create(ctx context.Context, b *model.Beneficiary) error
	GetByID(ctx context.Context, id int64) (*model.Beneficiary, error)
	List(ctx context.Context, filter BeneficiaryFilter) ([]model.Beneficiary, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Beneficiary, error)
	// Update replaces the record when its version still matches, then bumps the version.
	Update(ctx context.Context, b *model.Beneficiary) error
	MaxID(ctx context.Context) (int64, error)
}

type beneficiaryRepo struct {
	db *gorm.DB
}

// NewBeneficiaryRepo creates a BeneficiaryRepository
func NewBeneficiaryRepo(db *gorm.DB) BeneficiaryRepository {
	return &beneficiaryRepo{db: db}
}

func (r *beneficiaryRepo) Create(ctx context.Context, b *model.Beneficiary) error {
	if b.Version == 0 {
		b.Version = 1
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *beneficiaryRepo) GetByID(ctx context.Context, id int64) (*model.Beneficiary, error) {
	var b model.Beneficiary
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *beneficiaryRepo) List(ctx context.Context, filter BeneficiaryFilter) ([]model.Beneficiary, error) {
	var list []model.Beneficiary
	db := r.db.WithContext(ctx)

	if filter.Constituency != "" {
		db = db.Where("constituency = ?", filter.Constituency)
	}
	if filter.AssignedOfficer != "" {
		db = db.Where("assigned_officer = ?", filter.AssignedOfficer)
	}

	err := db.Order("id ASC").Find(&list).Error
	return list, err
}

func (r *beneficiaryRepo) ListByIDs(ctx context.Context, ids []int64) ([]model.Beneficiary, error) {
	var list []model.Beneficiary
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *beneficiaryRepo) Update(ctx context.Context, b *model.Beneficiary) error {
	oldVersion := b.Version
	result := r.db.WithContext(ctx).
		Model(&model.Beneficiary{}).
		Where("id = ? AND version = ?", b.ID, oldVersion).
		Updates(map[string]interface{}{
			"beneficiary_name":     b.BeneficiaryName,
			"constituency":         b.Constituency,
			"village":              b.Village,
			"stage":                b.Stage,
			"progress":             b.Progress,
			"contact_number":       b.ContactNumber,
			"aadhar_number":        b.AadharNumber,
			"family_members":       b.FamilyMembers,
			"assigned_officer":     b.AssignedOfficer,
			"start_date":           b.StartDate,
			"expected_completion":  b.ExpectedCompletion,
			"remarks":              b.Remarks,
			"lat":                  b.Lat,
			"lng":                  b.Lng,
			"images":               b.Images,
			"last_updated":         b.LastUpdated,
			"fund_details":         b.FundDetails,
			"construction_details": b.ConstructionDetails,
			"updated_at":           gorm.Expr("NOW()"),
			"version":              oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	b.Version = oldVersion + 1
	return nil
}

func (r *beneficiaryRepo) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	err := r.db.WithContext(ctx).
		Model(&model.Beneficiary{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	return maxID, err
}
