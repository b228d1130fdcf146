package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sristy17/sgay-v1/config"
	"github.com/sristy17/sgay-v1/internal/progress"
	"github.com/sristy17/sgay-v1/internal/repository"
	pkgerrors "github.com/sristy17/sgay-v1/pkg/errors"
	"github.com/sristy17/sgay-v1/pkg/jwt"
	"github.com/sristy17/sgay-v1/pkg/redis"
)

// ── shared errors ──

var (
	// ErrStoreUnavailable the record store could not be reached
	ErrStoreUnavailable = errors.New("record store unavailable")
	// ErrBusy another operation holds the collection lock
	ErrBusy = errors.New("another operation is in progress, retry shortly")
	// ErrConflict the record changed between read and write
	ErrConflict = errors.New("record was modified concurrently")
)

// Service aggregates every service
type Service struct {
	PendingEntry PendingEntryService
	Approval     ApprovalService
	Beneficiary  BeneficiaryService
	Officer      OfficerService
	Auth         AuthService
}

// NewService wires the services. Intake always stores the stage-weighted
// formula; the split-weighted one is only reported by Preview. rdb may be nil:
// locks then fall back to the process-local locker and token revocation is
// disabled.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	locker := newLocker(cfg, rdb)
	officerSvc := NewOfficerService(repo, locker, logger)

	return &Service{
		PendingEntry: NewPendingEntryService(repo, locker, progress.StageWeighted{}, logger),
		Approval:     NewApprovalService(repo, locker, officerSvc, logger),
		Beneficiary:  NewBeneficiaryService(repo, logger),
		Officer:      officerSvc,
		Auth:         NewAuthService(cfg, jwtMgr, rdb, logger),
	}
}

// storeError wraps a repository failure that is not a domain condition
func storeError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// lockError maps a Locker failure
func lockError(err error) error {
	if errors.Is(err, pkgerrors.ErrLockNotObtained) || errors.Is(err, context.DeadlineExceeded) {
		return ErrBusy
	}
	return storeError(err)
}

// today the date stamp written to lastUpdated
func today(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}
