package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sristy17/sgay-v1/internal/model"
	"github.com/sristy17/sgay-v1/internal/progress"
	"github.com/sristy17/sgay-v1/internal/repository"
)

var errStoreDown = errors.New("connection refused")

// fixedNow 2026-03-14 10:30 UTC
func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
}

// ── fault-injecting wrappers around the memory repositories ──

type flakyPendingRepo struct {
	repository.PendingEntryRepository
	failList   bool
	failGet    bool
	failCreate bool
	failDelete bool
	failMax    bool
}

func (r *flakyPendingRepo) List(ctx context.Context) ([]model.PendingEntry, error) {
	if r.failList {
		return nil, errStoreDown
	}
	return r.PendingEntryRepository.List(ctx)
}

func (r *flakyPendingRepo) GetByID(ctx context.Context, id int64) (*model.PendingEntry, error) {
	if r.failGet {
		return nil, errStoreDown
	}
	return r.PendingEntryRepository.GetByID(ctx, id)
}

func (r *flakyPendingRepo) Create(ctx context.Context, e *model.PendingEntry) error {
	if r.failCreate {
		return errStoreDown
	}
	return r.PendingEntryRepository.Create(ctx, e)
}

func (r *flakyPendingRepo) Delete(ctx context.Context, id int64) error {
	if r.failDelete {
		return errStoreDown
	}
	return r.PendingEntryRepository.Delete(ctx, id)
}

func (r *flakyPendingRepo) MaxID(ctx context.Context) (int64, error) {
	if r.failMax {
		return 0, errStoreDown
	}
	return r.PendingEntryRepository.MaxID(ctx)
}

type flakyBeneficiaryRepo struct {
	repository.BeneficiaryRepository
	failCreate bool
	failUpdate error
}

func (r *flakyBeneficiaryRepo) Create(ctx context.Context, b *model.Beneficiary) error {
	if r.failCreate {
		return errStoreDown
	}
	return r.BeneficiaryRepository.Create(ctx, b)
}

func (r *flakyBeneficiaryRepo) Update(ctx context.Context, b *model.Beneficiary) error {
	if r.failUpdate != nil {
		return r.failUpdate
	}
	return r.BeneficiaryRepository.Update(ctx, b)
}

type flakyOfficerRepo struct {
	repository.OfficerRepository
	failGetByName bool
	failUpdate    bool
	failDelete    bool
	failList      bool
}

func (r *flakyOfficerRepo) GetByName(ctx context.Context, name string) (*model.Officer, error) {
	if r.failGetByName {
		return nil, errStoreDown
	}
	return r.OfficerRepository.GetByName(ctx, name)
}

func (r *flakyOfficerRepo) Update(ctx context.Context, o *model.Officer) error {
	if r.failUpdate {
		return errStoreDown
	}
	return r.OfficerRepository.Update(ctx, o)
}

func (r *flakyOfficerRepo) Delete(ctx context.Context, id int64) error {
	if r.failDelete {
		return errStoreDown
	}
	return r.OfficerRepository.Delete(ctx, id)
}

func (r *flakyOfficerRepo) List(ctx context.Context) ([]model.Officer, error) {
	if r.failList {
		return nil, errStoreDown
	}
	return r.OfficerRepository.List(ctx)
}

// ── fixture ──

type fixture struct {
	repo           *repository.Repository
	pending        *flakyPendingRepo
	beneficiary    *flakyBeneficiaryRepo
	officer        *flakyOfficerRepo
	locker         *LocalLocker
	pendingSvc     *pendingEntryService
	approvalSvc    *approvalService
	officerSvc     *officerService
	beneficiarySvc *beneficiaryService
}

func newFixture() *fixture {
	f := &fixture{
		pending:     &flakyPendingRepo{PendingEntryRepository: repository.NewMemoryPendingEntryRepo()},
		beneficiary: &flakyBeneficiaryRepo{BeneficiaryRepository: repository.NewMemoryBeneficiaryRepo()},
		officer:     &flakyOfficerRepo{OfficerRepository: repository.NewMemoryOfficerRepo()},
		locker:      NewLocalLocker(time.Second),
	}
	f.repo = &repository.Repository{
		Beneficiary:  f.beneficiary,
		PendingEntry: f.pending,
		Officer:      f.officer,
	}

	logger := zap.NewNop()

	f.officerSvc = NewOfficerService(f.repo, f.locker, logger).(*officerService)
	f.officerSvc.now = fixedNow

	f.pendingSvc = NewPendingEntryService(f.repo, f.locker, progress.StageWeighted{}, logger).(*pendingEntryService)
	f.pendingSvc.now = fixedNow

	f.approvalSvc = NewApprovalService(f.repo, f.locker, f.officerSvc, logger).(*approvalService)
	f.approvalSvc.now = fixedNow

	f.beneficiarySvc = NewBeneficiaryService(f.repo, logger).(*beneficiaryService)
	f.beneficiarySvc.now = fixedNow

	return f
}

func (f *fixture) seedBeneficiary(b *model.Beneficiary) *model.Beneficiary {
	if err := f.repo.Beneficiary.Create(context.Background(), b); err != nil {
		panic(err)
	}
	return b
}

func (f *fixture) seedOfficer(o *model.Officer) *model.Officer {
	if err := f.repo.Officer.Create(context.Background(), o); err != nil {
		panic(err)
	}
	return o
}

func (f *fixture) seedEntry(e *model.PendingEntry) *model.PendingEntry {
	if e.SubmittedBy == "" {
		e.SubmittedBy = "Unknown"
	}
	if e.SubmittedOn.IsZero() {
		e.SubmittedOn = fixedNow()
	}
	if err := f.repo.PendingEntry.Create(context.Background(), e); err != nil {
		panic(err)
	}
	return e
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func stages(f, w, r, fin model.StageStatus) *model.ConstructionDetails {
	return &model.ConstructionDetails{
		Foundation: model.ConstructionStageRecord{Status: f},
		Walls:      model.ConstructionStageRecord{Status: w},
		Roof:       model.ConstructionStageRecord{Status: r},
		Finishing:  model.ConstructionStageRecord{Status: fin},
	}
}
