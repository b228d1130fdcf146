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
	"github.com/sristy17/sgay-v1/internal/progress"
	"github.com/sristy17/sgay-v1/internal/repository"
)

// ── pending entry errors ──

var (
	ErrPendingEntryNotFound = errors.New("pending entry not found")
	ErrMalformedInput       = errors.New("malformed submission")
)

// PendingEntryIDBase pending ids start above the seed data range
const PendingEntryIDBase int64 = 100

// PendingEntryService intake and read access for the pending queue
type PendingEntryService interface {
	// List returns the queue in insertion order. A store failure is logged and
	// yields an empty list.
	List(ctx context.Context) []model.PendingEntry
	GetByID(ctx context.Context, id int64) (*model.PendingEntry, error)
	// Submit normalizes the submission, computes its progress and queues it.
	Submit(ctx context.Context, req *dto.SubmitPendingEntryRequest) (*model.PendingEntry, error)
	// Preview evaluates both progress strategies without queueing anything.
	Preview(req *dto.ProgressPreviewRequest) (*progress.Report, error)
}

type pendingEntryService struct {
	repo     *repository.Repository
	locker   Locker
	strategy progress.Strategy
	logger   *zap.Logger
	now      func() time.Time
}

// NewPendingEntryService creates a PendingEntryService
func NewPendingEntryService(repo *repository.Repository, locker Locker, strategy progress.Strategy, logger *zap.Logger) PendingEntryService {
	return &pendingEntryService{
		repo:     repo,
		locker:   locker,
		strategy: strategy,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *pendingEntryService) List(ctx context.Context) []model.PendingEntry {
	list, err := s.repo.PendingEntry.List(ctx)
	if err != nil {
		s.logger.Error("list pending entries failed", zap.Error(err))
		return []model.PendingEntry{}
	}
	if list == nil {
		list = []model.PendingEntry{}
	}
	return list
}

func (s *pendingEntryService) GetByID(ctx context.Context, id int64) (*model.PendingEntry, error) {
	e, err := s.repo.PendingEntry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPendingEntryNotFound
		}
		s.logger.Error("get pending entry failed", zap.Int64("entry_id", id), zap.Error(err))
		return nil, storeError(err)
	}
	return e, nil
}

func (s *pendingEntryService) Submit(ctx context.Context, req *dto.SubmitPendingEntryRequest) (*model.PendingEntry, error) {
	if req == nil {
		return nil, ErrMalformedInput
	}

	entry, err := s.buildEntry(req)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, lockKeyPendingEntries)
	if err != nil {
		return nil, lockError(err)
	}
	defer unlock()

	maxID, err := s.repo.PendingEntry.MaxID(ctx)
	if err != nil {
		s.logger.Error("allocate pending entry id failed", zap.Error(err))
		return nil, storeError(err)
	}
	if maxID < PendingEntryIDBase {
		maxID = PendingEntryIDBase
	}
	entry.ID = maxID + 1

	if err := s.repo.PendingEntry.Create(ctx, entry); err != nil {
		s.logger.Error("queue pending entry failed", zap.Int64("entry_id", entry.ID), zap.Error(err))
		return nil, storeError(err)
	}

	s.logger.Info("pending entry submitted",
		zap.Int64("entry_id", entry.ID),
		zap.String("update_type", string(entry.UpdateType)),
		zap.String("submitted_by", entry.SubmittedBy),
		zap.Int("progress", entry.Progress),
	)
	return entry, nil
}

// buildEntry validates the submission and fills the defaults
func (s *pendingEntryService) buildEntry(req *dto.SubmitPendingEntryRequest) (*model.PendingEntry, error) {
	updateType := model.UpdateType(req.UpdateType)
	if !updateType.Valid() {
		return nil, fmt.Errorf("%w: unknown updateType %q", ErrMalformedInput, req.UpdateType)
	}

	switch {
	case updateType.IsUpdate() && (req.OriginalHouseID == nil || *req.OriginalHouseID <= 0):
		return nil, fmt.Errorf("%w: updateType %q requires a positive originalHouseId", ErrMalformedInput, updateType)
	case !updateType.IsUpdate() && req.OriginalHouseID != nil:
		return nil, fmt.Errorf("%w: originalHouseId is only valid for updates", ErrMalformedInput)
	}

	entry := &model.PendingEntry{
		UpdateType:         updateType,
		OriginalHouseID:    req.OriginalHouseID,
		Constituency:       req.Constituency,
		Village:            req.Village,
		Stage:              req.Stage,
		ContactNumber:      req.ContactNumber,
		AadharNumber:       req.AadharNumber,
		AssignedOfficer:    req.AssignedOfficer,
		StartDate:          req.StartDate,
		ExpectedCompletion: req.ExpectedCompletion,
		Remarks:            req.Remarks,
		Lat:                req.Lat,
		Lng:                req.Lng,
		SubmittedBy:        "Unknown",
		SubmittedOn:        s.now().UTC(),
	}
	if req.BeneficiaryName != nil {
		entry.BeneficiaryName = *req.BeneficiaryName
	}
	if req.SubmittedBy != nil && *req.SubmittedBy != "" {
		entry.SubmittedBy = *req.SubmittedBy
	}
	if req.SubmittedOn != nil && !req.SubmittedOn.IsZero() {
		entry.SubmittedOn = req.SubmittedOn.UTC()
	}
	if req.FamilyMembers != nil {
		n := int(*req.FamilyMembers)
		entry.FamilyMembers = &n
	}
	if req.Images != nil {
		entry.Images = model.StringList(req.Images).Clone()
	}

	if req.FundDetails != nil {
		fund := *req.FundDetails
		if fund.Remaining == "" {
			if remaining, ok := fund.DerivedRemaining(); ok {
				fund.Remaining = remaining
			}
		}
		entry.FundDetails = &fund
	}

	if req.ConstructionDetails != nil {
		details := *req.ConstructionDetails
		if err := details.Normalize(); err != nil {
			return nil, fmt.Errorf("%w: constructionDetails.%v", ErrMalformedInput, err)
		}
		entry.ConstructionDetails = &details
	}

	entry.Progress = s.strategy.Compute(entry.ConstructionDetails)
	return entry, nil
}

func (s *pendingEntryService) Preview(req *dto.ProgressPreviewRequest) (*progress.Report, error) {
	if req == nil || req.ConstructionDetails == nil {
		report := progress.Evaluate(nil)
		return &report, nil
	}
	details := *req.ConstructionDetails
	if err := details.Normalize(); err != nil {
		return nil, fmt.Errorf("%w: constructionDetails.%v", ErrMalformedInput, err)
	}
	report := progress.Evaluate(&details)
	return &report, nil
}
