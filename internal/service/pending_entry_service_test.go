package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sristy17/sgay-v1/internal/dto"
	"github.com/sristy17/sgay-v1/internal/model"
)

func TestSubmit_AssignsDefaults(t *testing.T) {
	f := newFixture()

	entry, err := f.pendingSvc.Submit(context.Background(), &dto.SubmitPendingEntryRequest{
		BeneficiaryName: strPtr("Ravi Kumar"),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.ID != 101 {
		t.Errorf("first id should be 101, got %d", entry.ID)
	}
	if entry.SubmittedBy != "Unknown" {
		t.Errorf("expected submittedBy Unknown, got %q", entry.SubmittedBy)
	}
	if !entry.SubmittedOn.Equal(fixedNow()) {
		t.Errorf("expected submittedOn = now, got %v", entry.SubmittedOn)
	}
	if entry.Progress != 0 {
		t.Errorf("no construction details should yield 0, got %d", entry.Progress)
	}
	if entry.UpdateType != model.UpdateNone {
		t.Errorf("expected new-beneficiary entry, got %q", entry.UpdateType)
	}
}

func TestSubmit_KeepsSuppliedSubmitter(t *testing.T) {
	f := newFixture()
	on := time.Date(2026, 2, 1, 8, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))

	entry, err := f.pendingSvc.Submit(context.Background(), &dto.SubmitPendingEntryRequest{
		SubmittedBy: strPtr("field-officer-12"),
		SubmittedOn: &on,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.SubmittedBy != "field-officer-12" {
		t.Errorf("submittedBy overwritten: %q", entry.SubmittedBy)
	}
	if !entry.SubmittedOn.Equal(on) || entry.SubmittedOn.Location() != time.UTC {
		t.Errorf("expected the same instant in UTC, got %v", entry.SubmittedOn)
	}
}

func TestSubmit_IDsIncreaseFromMax(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedEntry(&model.PendingEntry{ID: 101})
	f.seedEntry(&model.PendingEntry{ID: 105})

	entry, err := f.pendingSvc.Submit(ctx, &dto.SubmitPendingEntryRequest{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.ID != 106 {
		t.Errorf("expected 106, got %d", entry.ID)
	}

	next, _ := f.pendingSvc.Submit(ctx, &dto.SubmitPendingEntryRequest{})
	if next.ID != 107 {
		t.Errorf("expected 107, got %d", next.ID)
	}
}

func TestSubmit_IDNeverBelowBase(t *testing.T) {
	f := newFixture()
	f.seedEntry(&model.PendingEntry{ID: 12})

	entry, err := f.pendingSvc.Submit(context.Background(), &dto.SubmitPendingEntryRequest{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.ID != 101 {
		t.Errorf("expected 101, got %d", entry.ID)
	}
}

func TestSubmit_ComputesProgressAndIgnoresClientValue(t *testing.T) {
	f := newFixture()
	clientProgress := 97.0

	entry, err := f.pendingSvc.Submit(context.Background(), &dto.SubmitPendingEntryRequest{
		ConstructionDetails: stages(model.StageCompleted, model.StageCompleted, model.StageInProgress, model.StageNotStarted),
		Progress:            &clientProgress,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.Progress != 50 {
		t.Errorf("expected 50, got %d", entry.Progress)
	}
}

func TestSubmit_NormalizesConstructionDetails(t *testing.T) {
	f := newFixture()
	details := &model.ConstructionDetails{
		Foundation: model.ConstructionStageRecord{Status: model.StageCompleted, CompletionDate: "2026-01-20"},
		Walls:      model.ConstructionStageRecord{Status: model.StageInProgress, CompletionDate: "2026-02-01"},
	}

	entry, err := f.pendingSvc.Submit(context.Background(), &dto.SubmitPendingEntryRequest{ConstructionDetails: details})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	cd := entry.ConstructionDetails
	if cd.Roof.Status != model.StageNotStarted || cd.Finishing.Status != model.StageNotStarted {
		t.Errorf("empty statuses should become Not Started: %+v", cd)
	}
	if cd.Foundation.CompletionDate != "2026-01-20" {
		t.Error("completed stage keeps its date")
	}
	if cd.Walls.CompletionDate != "" {
		t.Error("stage in progress should drop its completion date")
	}
}

func TestSubmit_DerivesRemainingFund(t *testing.T) {
	f := newFixture()

	entry, err := f.pendingSvc.Submit(context.Background(), &dto.SubmitPendingEntryRequest{
		FundDetails: &model.FundDetails{Allocated: "Rs. 150,000", Utilized: "Rs. 60,000"},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.FundDetails.Remaining != "Rs. 90,000" {
		t.Errorf("expected derived remaining Rs. 90,000, got %q", entry.FundDetails.Remaining)
	}
}

func TestSubmit_CopiesFamilyMembersAndImages(t *testing.T) {
	f := newFixture()
	n := dto.FlexInt(6)
	images := []string{"img/1.jpg"}

	entry, err := f.pendingSvc.Submit(context.Background(), &dto.SubmitPendingEntryRequest{
		FamilyMembers: &n,
		Images:        images,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.FamilyMembers == nil || *entry.FamilyMembers != 6 {
		t.Errorf("expected familyMembers 6, got %v", entry.FamilyMembers)
	}
	images[0] = "mutated"
	if entry.Images[0] != "img/1.jpg" {
		t.Error("entry should not share the request's image slice")
	}
}

func TestSubmit_Malformed(t *testing.T) {
	tests := []struct {
		name string
		req  *dto.SubmitPendingEntryRequest
	}{
		{"nil request", nil},
		{"unknown update type", &dto.SubmitPendingEntryRequest{UpdateType: "delete"}},
		{"update without original", &dto.SubmitPendingEntryRequest{UpdateType: "progress"}},
		{"update with zero original", &dto.SubmitPendingEntryRequest{UpdateType: "edit", OriginalHouseID: int64Ptr(0)}},
		{"new entry with original", &dto.SubmitPendingEntryRequest{OriginalHouseID: int64Ptr(3)}},
		{"unknown stage status", &dto.SubmitPendingEntryRequest{ConstructionDetails: &model.ConstructionDetails{
			Roof: model.ConstructionStageRecord{Status: "Halfway"},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if _, err := f.pendingSvc.Submit(context.Background(), tt.req); !errors.Is(err, ErrMalformedInput) {
				t.Errorf("expected ErrMalformedInput, got %v", err)
			}
			if list := f.pendingSvc.List(context.Background()); len(list) != 0 {
				t.Errorf("nothing should be queued, got %d", len(list))
			}
		})
	}
}

func TestSubmit_UpdateEntryQueued(t *testing.T) {
	f := newFixture()

	entry, err := f.pendingSvc.Submit(context.Background(), &dto.SubmitPendingEntryRequest{
		UpdateType:      "progress",
		OriginalHouseID: int64Ptr(7),
		Remarks:         strPtr("roof done"),
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.UpdateType != model.UpdateProgress || *entry.OriginalHouseID != 7 {
		t.Errorf("unexpected entry %+v", entry)
	}
}

func TestSubmit_StoreUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{"max id", func(f *fixture) { f.pending.failMax = true }},
		{"create", func(f *fixture) { f.pending.failCreate = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)
			if _, err := f.pendingSvc.Submit(context.Background(), &dto.SubmitPendingEntryRequest{}); !errors.Is(err, ErrStoreUnavailable) {
				t.Errorf("expected ErrStoreUnavailable, got %v", err)
			}
		})
	}
}

func TestPendingList_InsertionOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := f.pendingSvc.Submit(ctx, &dto.SubmitPendingEntryRequest{}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	list := f.pendingSvc.List(ctx)
	if len(list) != 3 {
		t.Fatalf("expected 3, got %d", len(list))
	}
	for i, e := range list {
		if e.ID != int64(101+i) {
			t.Errorf("position %d: expected id %d, got %d", i, 101+i, e.ID)
		}
	}
}

func TestPendingList_StoreFailureYieldsEmpty(t *testing.T) {
	f := newFixture()
	f.seedEntry(&model.PendingEntry{ID: 101})
	f.pending.failList = true

	list := f.pendingSvc.List(context.Background())
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", list)
	}
}

func TestPendingGetByID(t *testing.T) {
	f := newFixture()
	f.seedEntry(&model.PendingEntry{ID: 101, BeneficiaryName: "Ravi Kumar"})

	e, err := f.pendingSvc.GetByID(context.Background(), 101)
	if err != nil || e.BeneficiaryName != "Ravi Kumar" {
		t.Errorf("unexpected %+v, %v", e, err)
	}
	if _, err := f.pendingSvc.GetByID(context.Background(), 102); !errors.Is(err, ErrPendingEntryNotFound) {
		t.Errorf("expected ErrPendingEntryNotFound, got %v", err)
	}
}

func TestPreview(t *testing.T) {
	f := newFixture()

	report, err := f.pendingSvc.Preview(&dto.ProgressPreviewRequest{
		ConstructionDetails: stages(model.StageCompleted, model.StageCompleted, model.StageInProgress, model.StageNotStarted),
	})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if report.StageWeighted != 50 || report.SplitWeighted != 39 {
		t.Errorf("expected 50/39, got %d/%d", report.StageWeighted, report.SplitWeighted)
	}

	empty, err := f.pendingSvc.Preview(nil)
	if err != nil || empty.StageWeighted != 0 || empty.SplitWeighted != 0 {
		t.Errorf("expected zero report, got %+v, %v", empty, err)
	}

	_, err = f.pendingSvc.Preview(&dto.ProgressPreviewRequest{ConstructionDetails: &model.ConstructionDetails{
		Walls: model.ConstructionStageRecord{Status: "??"},
	}})
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}
}
