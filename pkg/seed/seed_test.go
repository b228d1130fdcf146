package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/sristy17/sgay-v1/internal/model"
	"github.com/sristy17/sgay-v1/internal/repository"
)

const sample = `
officers:
  - id: 1
    name: A. Sharma
    designation: Assistant Engineer
    constituency: Bhimavaram
    assignedHouses: [3]
beneficiaries:
  - id: 3
    beneficiaryName: Lakshmi Devi
    constituency: Bhimavaram
    village: Gollapalem
    stage: Walls
    progress: 50
    familyMembers: 4
    assignedOfficer: A. Sharma
    startDate: "2025-11-01"
    expectedCompletion: "2026-06-30"
    lat: 16.54
    lng: 81.52
    images: [img/3-a.jpg]
    fundDetails:
      allocated: "Rs. 1,20,000"
      utilized: "Rs. 60,000"
    constructionDetails:
      foundation: {status: Completed, completionDate: "2025-12-10"}
      walls: {status: In Progress}
  - id: 4
    beneficiaryName: Ravi Kumar
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Officers) != 1 || len(f.Beneficiaries) != 2 {
		t.Fatalf("unexpected counts: %d officers, %d beneficiaries", len(f.Officers), len(f.Beneficiaries))
	}

	o := f.Officers[0]
	if o.Name != "A. Sharma" || len(o.AssignedHouses) != 1 || o.AssignedHouses[0] != 3 {
		t.Errorf("unexpected officer %+v", o)
	}

	b := f.Beneficiaries[0]
	if b.BeneficiaryName != "Lakshmi Devi" || b.FamilyMembers != 4 || b.ExpectedCompletion != "2026-06-30" {
		t.Errorf("unexpected beneficiary %+v", b)
	}
	if b.Lat == nil || *b.Lat != 16.54 {
		t.Errorf("lat not decoded: %v", b.Lat)
	}
	if b.FundDetails.Allocated != "Rs. 1,20,000" {
		t.Errorf("fund details not decoded: %+v", b.FundDetails)
	}
	cd := b.ConstructionDetails
	if cd.Foundation.Status != model.StageCompleted || cd.Walls.Status != model.StageInProgress || cd.Roof.Status != model.StageNotStarted {
		t.Errorf("construction details not normalized: %+v", cd)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "  \n", "empty"},
		{"bad yaml", "officers: [", "decode yaml"},
		{"officer without id", "officers:\n  - name: X\n", "id must be positive"},
		{"officer without name", "officers:\n  - id: 2\n", "name is required"},
		{"duplicate officer name", "officers:\n  - {id: 1, name: X}\n  - {id: 2, name: X}\n", "duplicate name"},
		{"beneficiary without id", "beneficiaries:\n  - beneficiaryName: X\n", "id must be positive"},
		{"bad stage", "beneficiaries:\n  - id: 1\n    constructionDetails: {roof: {status: Halfway}}\n", "unknown stage status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestApply_SkipsExisting(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	f, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	res, err := Apply(ctx, repo, f, zap.NewNop())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.OfficersAdded != 1 || res.BeneficiariesAdded != 2 {
		t.Errorf("unexpected first result %+v", res)
	}

	b, err := repo.Beneficiary.GetByID(ctx, 4)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if b.Stage != model.DefaultStageLabel || b.Images == nil {
		t.Errorf("defaults not applied: %+v", b)
	}

	res, err = Apply(ctx, repo, f, zap.NewNop())
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if res.OfficersSkipped != 1 || res.BeneficiariesSkipped != 2 || res.BeneficiariesAdded != 0 {
		t.Errorf("second run should skip everything, got %+v", res)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Errorf("LoadFile: %v", err)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
