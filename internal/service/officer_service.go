package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sristy17/sgay-v1/internal/dto"
	"github.com/sristy17/sgay-v1/internal/model"
	"github.com/sristy17/sgay-v1/internal/repository"
	pkgerrors "github.com/sristy17/sgay-v1/pkg/errors"
)

// ── officer errors ──

var (
	ErrOfficerNotFound      = errors.New("officer not found")
	ErrOfficerNameExists    = errors.New("an officer with this name already exists")
	ErrOfficerAddFailed     = errors.New("failed to add officer")
	ErrOfficerRemoveFailed  = errors.New("failed to remove officer")
	ErrCalendarGenerateFail = errors.New("failed to build calendar")
)

// OfficerService officer index
type OfficerService interface {
	List(ctx context.Context) ([]model.Officer, error)
	GetByID(ctx context.Context, id int64) (*model.Officer, error)
	Add(ctx context.Context, req *dto.CreateOfficerRequest) (*model.Officer, error)
	Remove(ctx context.Context, id int64) error
	// AssignHouse appends beneficiaryID to the officer with exactly this name.
	// An empty name is skipped; an unknown name yields AssignmentOfficerNotFound.
	AssignHouse(ctx context.Context, officerName string, beneficiaryID int64) (dto.AssignmentOutcome, error)
	// Calendar one all-day event per assigned beneficiary's expected completion date.
	Calendar(ctx context.Context, id int64) ([]byte, error)
}

type officerService struct {
	repo   *repository.Repository
	locker Locker
	logger *zap.Logger
	now    func() time.Time
}

// NewOfficerService creates an OfficerService
func NewOfficerService(repo *repository.Repository, locker Locker, logger *zap.Logger) OfficerService {
	return &officerService{repo: repo, locker: locker, logger: logger, now: time.Now}
}

func (s *officerService) List(ctx context.Context) ([]model.Officer, error) {
	list, err := s.repo.Officer.List(ctx)
	if err != nil {
		s.logger.Error("list officers failed", zap.Error(err))
		return nil, storeError(err)
	}
	if list == nil {
		list = []model.Officer{}
	}
	return list, nil
}

func (s *officerService) GetByID(ctx context.Context, id int64) (*model.Officer, error) {
	o, err := s.repo.Officer.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficerNotFound
		}
		s.logger.Error("get officer failed", zap.Int64("officer_id", id), zap.Error(err))
		return nil, storeError(err)
	}
	return o, nil
}

func (s *officerService) Add(ctx context.Context, req *dto.CreateOfficerRequest) (*model.Officer, error) {
	unlock, err := s.locker.Lock(ctx, lockKeyOfficers)
	if err != nil {
		return nil, lockError(err)
	}
	defer unlock()

	maxID, err := s.repo.Officer.MaxID(ctx)
	if err != nil {
		s.logger.Error("allocate officer id failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrOfficerAddFailed, err)
	}

	role := req.Role
	if role == "" {
		role = model.RoleOfficer
	}
	o := &model.Officer{
		ID:             maxID + 1,
		Name:           req.Name,
		Designation:    req.Designation,
		Email:          req.Email,
		ContactNumber:  req.ContactNumber,
		Constituency:   req.Constituency,
		Role:           role,
		AssignedHouses: model.IntArray{},
	}
	for _, id := range req.AssignedHouses {
		o.AssignHouse(id)
	}

	if err := s.repo.Officer.Create(ctx, o); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrOfficerNameExists
		}
		s.logger.Error("create officer failed", zap.String("name", req.Name), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrOfficerAddFailed, err)
	}

	s.logger.Info("officer added", zap.Int64("officer_id", o.ID), zap.String("name", o.Name))
	return o, nil
}

func (s *officerService) Remove(ctx context.Context, id int64) error {
	unlock, err := s.locker.Lock(ctx, lockKeyOfficers)
	if err != nil {
		return lockError(err)
	}
	defer unlock()

	if err := s.repo.Officer.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOfficerNotFound
		}
		s.logger.Error("delete officer failed", zap.Int64("officer_id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrOfficerRemoveFailed, err)
	}

	s.logger.Info("officer removed", zap.Int64("officer_id", id))
	return nil
}

func (s *officerService) AssignHouse(ctx context.Context, officerName string, beneficiaryID int64) (dto.AssignmentOutcome, error) {
	if officerName == "" {
		return dto.AssignmentSkipped, nil
	}

	unlock, err := s.locker.Lock(ctx, lockKeyOfficers)
	if err != nil {
		return dto.AssignmentFailed, lockError(err)
	}
	defer unlock()

	o, err := s.repo.Officer.GetByName(ctx, officerName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentOfficerNotFound, nil
		}
		return dto.AssignmentFailed, storeError(err)
	}

	if !o.AssignHouse(beneficiaryID) {
		return dto.AssignmentAssigned, nil
	}
	if err := s.repo.Officer.Update(ctx, o); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return dto.AssignmentFailed, ErrConflict
		}
		return dto.AssignmentFailed, storeError(err)
	}
	return dto.AssignmentAssigned, nil
}

func (s *officerService) Calendar(ctx context.Context, id int64) ([]byte, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	houses, err := s.repo.Beneficiary.ListByIDs(ctx, o.AssignedHouses)
	if err != nil {
		s.logger.Error("list assigned beneficiaries failed", zap.Int64("officer_id", id), zap.Error(err))
		return nil, storeError(err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//sgay//officer completion calendar//EN")
	cal.SetXWRCalName(fmt.Sprintf("Expected completions: %s", o.Name))

	stamp := s.now().UTC()
	for _, b := range houses {
		due, err := time.Parse("2006-01-02", b.ExpectedCompletion)
		if err != nil {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("beneficiary-%d@sgay", b.ID))
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(due)
		ev.SetAllDayEndAt(due.AddDate(0, 0, 1))
		ev.SetSummary(fmt.Sprintf("Expected completion: %s (#%d)", b.BeneficiaryName, b.ID))
		ev.SetDescription(fmt.Sprintf("Stage: %s, progress %d%%", b.Stage, b.Progress))
		if b.Village != "" {
			ev.SetLocation(b.Village)
		}
	}

	out := cal.Serialize()
	if out == "" {
		return nil, ErrCalendarGenerateFail
	}
	return []byte(out), nil
}
