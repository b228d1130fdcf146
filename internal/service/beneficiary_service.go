package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sristy17/sgay-v1/internal/dto"
	"github.com/sristy17/sgay-v1/internal/model"
	"github.com/sristy17/sgay-v1/internal/repository"
)

// ── beneficiary errors ──

var (
	ErrBeneficiaryNotFound = errors.New("beneficiary not found")
	ErrExportGenerateFail  = errors.New("failed to generate Excel file")
)

// BeneficiaryService read access to the canonical dataset. Beneficiaries are
// only written through ApprovalService.
type BeneficiaryService interface {
	List(ctx context.Context, req *dto.BeneficiaryListRequest) ([]model.Beneficiary, error)
	GetByID(ctx context.Context, id int64) (*model.Beneficiary, error)
	// Export returns an .xlsx workbook and a suggested file name.
	Export(ctx context.Context, req *dto.BeneficiaryListRequest) (*bytes.Buffer, string, error)
}

type beneficiaryService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewBeneficiaryService creates a BeneficiaryService
func NewBeneficiaryService(repo *repository.Repository, logger *zap.Logger) BeneficiaryService {
	return &beneficiaryService{repo: repo, logger: logger, now: time.Now}
}

func (s *beneficiaryService) List(ctx context.Context, req *dto.BeneficiaryListRequest) ([]model.Beneficiary, error) {
	filter := repository.BeneficiaryFilter{}
	if req != nil {
		filter.Constituency = req.Constituency
		filter.AssignedOfficer = req.Officer
	}

	list, err := s.repo.Beneficiary.List(ctx, filter)
	if err != nil {
		s.logger.Error("list beneficiaries failed", zap.Error(err))
		return nil, storeError(err)
	}
	if list == nil {
		list = []model.Beneficiary{}
	}
	return list, nil
}

func (s *beneficiaryService) GetByID(ctx context.Context, id int64) (*model.Beneficiary, error) {
	b, err := s.repo.Beneficiary.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBeneficiaryNotFound
		}
		s.logger.Error("get beneficiary failed", zap.Int64("beneficiary_id", id), zap.Error(err))
		return nil, storeError(err)
	}
	return b, nil
}

var exportHeader = []interface{}{
	"ID", "Beneficiary", "Constituency", "Village", "Stage", "Progress (%)",
	"Assigned Officer", "Start Date", "Expected Completion", "Last Updated",
	"Foundation", "Walls", "Roof", "Finishing",
	"Allocated", "Released", "Utilized", "Remaining",
}

func (s *beneficiaryService) Export(ctx context.Context, req *dto.BeneficiaryListRequest) (*bytes.Buffer, string, error) {
	list, err := s.List(ctx, req)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Beneficiaries"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		s.logger.Error("write export header failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeader))
	f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)
	f.SetColWidth(sheet, "B", "B", 24)
	f.SetColWidth(sheet, "C", "D", 16)
	f.SetColWidth(sheet, "G", "J", 18)
	f.SetColWidth(sheet, "O", "R", 14)

	for i, b := range list {
		cd := b.ConstructionDetails
		row := []interface{}{
			b.ID, b.BeneficiaryName, b.Constituency, b.Village, b.Stage, b.Progress,
			b.AssignedOfficer, b.StartDate, b.ExpectedCompletion, b.LastUpdated,
			string(cd.Foundation.Status), string(cd.Walls.Status), string(cd.Roof.Status), string(cd.Finishing.Status),
			b.FundDetails.Allocated, b.FundDetails.Released, b.FundDetails.Utilized, b.FundDetails.Remaining,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			s.logger.Error("write export row failed", zap.Int64("beneficiary_id", b.ID), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("beneficiaries_%s.xlsx", s.now().Format("2006-01-02"))
	return buf, filename, nil
}
