package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sristy17/sgay-v1/internal/dto"
	"github.com/sristy17/sgay-v1/internal/model"
	"github.com/sristy17/sgay-v1/internal/repository"
	pkgerrors "github.com/sristy17/sgay-v1/pkg/errors"
)

// ── approval errors ──

// ErrOriginalNotFound an update entry references a beneficiary that does not exist
var ErrOriginalNotFound = errors.New("original beneficiary not found")

// ApprovalService decides pending entries.
//
// Approve merges the entry into the beneficiary store and only then removes it
// from the queue, so a failed merge leaves the entry in place for a retried
// approval. A new beneficiary is then assigned to its officer as a separate,
// best-effort step whose outcome is reported but never fails the approval.
type ApprovalService interface {
	Approve(ctx context.Context, entryID int64) (*dto.ApprovalResponse, error)
	Reject(ctx context.Context, entryID int64) error
}

type approvalService struct {
	repo     *repository.Repository
	locker   Locker
	officers OfficerService
	logger   *zap.Logger
	now      func() time.Time
}

// NewApprovalService creates an ApprovalService
func NewApprovalService(repo *repository.Repository, locker Locker, officers OfficerService, logger *zap.Logger) ApprovalService {
	return &approvalService{
		repo:     repo,
		locker:   locker,
		officers: officers,
		logger:   logger,
		now:      time.Now,
	}
}

// ────────────────────── Approve ──────────────────────

func (s *approvalService) Approve(ctx context.Context, entryID int64) (*dto.ApprovalResponse, error) {
	unlock, err := s.locker.Lock(ctx, lockKeyPendingEntries)
	if err != nil {
		return nil, lockError(err)
	}
	defer unlock()

	entry, err := s.loadEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	var (
		beneficiary *model.Beneficiary
		created     bool
	)
	switch entry.UpdateType {
	case model.UpdateEdit, model.UpdateProgress:
		beneficiary, err = s.applyUpdate(ctx, entry)
	case model.UpdateNone:
		beneficiary, err = s.createBeneficiary(ctx, entry)
		created = true
	default:
		err = fmt.Errorf("%w: unknown updateType %q", ErrMalformedInput, entry.UpdateType)
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.PendingEntry.Delete(ctx, entryID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			// merged but still queued; a retry re-applies it
			s.logger.Error("dequeue approved entry failed",
				zap.Int64("entry_id", entryID),
				zap.Int64("beneficiary_id", beneficiary.ID),
				zap.Error(err),
			)
			return nil, storeError(err)
		}
		s.logger.Warn("approved entry already removed from queue", zap.Int64("entry_id", entryID))
	}

	resp := &dto.ApprovalResponse{
		Success:     true,
		Created:     created,
		Beneficiary: beneficiary,
		Assignment:  dto.AssignmentSkipped,
	}
	if created {
		resp.Message = dto.MessageNewApproved
		resp.Assignment = s.assignOfficer(ctx, entry.Officer(), beneficiary.ID)
	} else {
		resp.Message = dto.MessageUpdateApproved
	}

	s.logger.Info("pending entry approved",
		zap.Int64("entry_id", entryID),
		zap.Int64("beneficiary_id", beneficiary.ID),
		zap.Bool("created", created),
		zap.String("assignment", string(resp.Assignment)),
	)
	return resp, nil
}

func (s *approvalService) loadEntry(ctx context.Context, entryID int64) (*model.PendingEntry, error) {
	entry, err := s.repo.PendingEntry.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPendingEntryNotFound
		}
		s.logger.Error("get pending entry failed", zap.Int64("entry_id", entryID), zap.Error(err))
		return nil, storeError(err)
	}
	return entry, nil
}

// applyUpdate overwrites the supplied fields of the original beneficiary
func (s *approvalService) applyUpdate(ctx context.Context, entry *model.PendingEntry) (*model.Beneficiary, error) {
	if entry.OriginalHouseID == nil {
		return nil, ErrOriginalNotFound
	}

	b, err := s.repo.Beneficiary.GetByID(ctx, *entry.OriginalHouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("approval references missing beneficiary",
				zap.Int64("entry_id", entry.ID),
				zap.Int64("original_house_id", *entry.OriginalHouseID),
			)
			return nil, ErrOriginalNotFound
		}
		s.logger.Error("get beneficiary failed", zap.Int64("beneficiary_id", *entry.OriginalHouseID), zap.Error(err))
		return nil, storeError(err)
	}

	mergeUpdate(b, entry, today(s.now()))

	if err := s.repo.Beneficiary.Update(ctx, b); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrConflict
		}
		s.logger.Error("update beneficiary failed", zap.Int64("beneficiary_id", b.ID), zap.Error(err))
		return nil, storeError(err)
	}
	return b, nil
}

// createBeneficiary appends a new beneficiary with id max+1
func (s *approvalService) createBeneficiary(ctx context.Context, entry *model.PendingEntry) (*model.Beneficiary, error) {
	maxID, err := s.repo.Beneficiary.MaxID(ctx)
	if err != nil {
		s.logger.Error("allocate beneficiary id failed", zap.Error(err))
		return nil, storeError(err)
	}

	b := newBeneficiary(maxID+1, entry, today(s.now()))
	if err := s.repo.Beneficiary.Create(ctx, b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		s.logger.Error("create beneficiary failed", zap.Int64("beneficiary_id", b.ID), zap.Error(err))
		return nil, storeError(err)
	}
	return b, nil
}

// assignOfficer post-commit step; failures are logged, never returned
func (s *approvalService) assignOfficer(ctx context.Context, officerName string, beneficiaryID int64) dto.AssignmentOutcome {
	outcome, err := s.officers.AssignHouse(ctx, officerName, beneficiaryID)
	switch {
	case err != nil:
		s.logger.Warn("assign beneficiary to officer failed",
			zap.String("officer", officerName),
			zap.Int64("beneficiary_id", beneficiaryID),
			zap.Error(err),
		)
	case outcome == dto.AssignmentOfficerNotFound:
		s.logger.Info("no officer matches assigned officer name",
			zap.String("officer", officerName),
			zap.Int64("beneficiary_id", beneficiaryID),
		)
	}
	return outcome
}

// ────────────────────── Reject ──────────────────────

func (s *approvalService) Reject(ctx context.Context, entryID int64) error {
	unlock, err := s.locker.Lock(ctx, lockKeyPendingEntries)
	if err != nil {
		return lockError(err)
	}
	defer unlock()

	if err := s.repo.PendingEntry.Delete(ctx, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPendingEntryNotFound
		}
		s.logger.Error("reject pending entry failed", zap.Int64("entry_id", entryID), zap.Error(err))
		return storeError(err)
	}

	s.logger.Info("pending entry rejected", zap.Int64("entry_id", entryID))
	return nil
}

// ────────────────────── merge rules ──────────────────────

// mergeUpdate replaces every field the entry supplies. The id never changes and
// images only grow.
func mergeUpdate(b *model.Beneficiary, e *model.PendingEntry, date string) {
	if e.BeneficiaryName != "" {
		b.BeneficiaryName = e.BeneficiaryName
	}
	setString(&b.Constituency, e.Constituency)
	setString(&b.Village, e.Village)
	setString(&b.Stage, e.Stage)
	setString(&b.ContactNumber, e.ContactNumber)
	setString(&b.AadharNumber, e.AadharNumber)
	setString(&b.AssignedOfficer, e.AssignedOfficer)
	setString(&b.StartDate, e.StartDate)
	setString(&b.ExpectedCompletion, e.ExpectedCompletion)
	setString(&b.Remarks, e.Remarks)
	if e.FamilyMembers != nil {
		b.FamilyMembers = *e.FamilyMembers
	}
	if e.Lat != nil {
		v := *e.Lat
		b.Lat = &v
	}
	if e.Lng != nil {
		v := *e.Lng
		b.Lng = &v
	}
	if e.FundDetails != nil {
		b.FundDetails = *e.FundDetails
	}
	// progress is derived from the stages, so the two only change together
	if e.ConstructionDetails != nil {
		b.ConstructionDetails = *e.ConstructionDetails
		b.Progress = e.Progress
	}
	b.AppendImages(e.Images)
	if b.Images == nil {
		b.Images = model.StringList{}
	}
	b.LastUpdated = date
}

// newBeneficiary populates every field from the entry, absent ones as empty values
func newBeneficiary(id int64, e *model.PendingEntry, date string) *model.Beneficiary {
	b := &model.Beneficiary{
		ID:                  id,
		BeneficiaryName:     e.BeneficiaryName,
		Stage:               model.DefaultStageLabel,
		Progress:            e.Progress,
		Images:              model.StringList{},
		LastUpdated:         date,
		ConstructionDetails: model.DefaultConstructionDetails(),
	}
	setString(&b.Constituency, e.Constituency)
	setString(&b.Village, e.Village)
	setString(&b.ContactNumber, e.ContactNumber)
	setString(&b.AadharNumber, e.AadharNumber)
	setString(&b.AssignedOfficer, e.AssignedOfficer)
	setString(&b.StartDate, e.StartDate)
	setString(&b.ExpectedCompletion, e.ExpectedCompletion)
	setString(&b.Remarks, e.Remarks)
	if e.Stage != nil && *e.Stage != "" {
		b.Stage = *e.Stage
	}
	if e.FamilyMembers != nil {
		b.FamilyMembers = *e.FamilyMembers
	}
	if e.Lat != nil {
		v := *e.Lat
		b.Lat = &v
	}
	if e.Lng != nil {
		v := *e.Lng
		b.Lng = &v
	}
	if e.Images != nil {
		b.Images = e.Images.Clone()
	}
	if e.FundDetails != nil {
		b.FundDetails = *e.FundDetails
	}
	if e.ConstructionDetails != nil {
		b.ConstructionDetails = *e.ConstructionDetails
	}
	return b
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
