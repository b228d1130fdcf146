package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sristy17/sgay-v1/config"
	"github.com/sristy17/sgay-v1/internal/api/handler"
	"github.com/sristy17/sgay-v1/internal/dto"
	"github.com/sristy17/sgay-v1/internal/model"
	"github.com/sristy17/sgay-v1/internal/repository"
	"github.com/sristy17/sgay-v1/internal/service"
	"github.com/sristy17/sgay-v1/pkg/jwt"
)

func testConfig(authEnabled bool) *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, BodyLimitMB: 1},
		Auth:     config.AuthConfig{Enabled: authEnabled, JWTSecret: "router-test-secret-16", AccessTokenTTL: time.Hour},
		Store:    config.StoreConfig{Driver: config.StoreDriverMemory},
		Approval: config.ApprovalConfig{LockTTL: time.Second, LockRetryCount: 5, LockRetryInterval: 10 * time.Millisecond},
	}
}

func newEngine(t *testing.T, cfg *config.Config) (http.Handler, *jwt.Manager, *repository.Repository) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return Setup(cfg, handler.NewHandler(svc), jwtMgr, nil, zap.NewNop()), jwtMgr, repo
}

func do(h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h, _, _ := newEngine(t, testConfig(true))
	if w := do(h, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// submit → approve → beneficiary visible → officer index updated
func TestSubmitApproveFlow(t *testing.T) {
	h, _, repo := newEngine(t, testConfig(false))
	ctx := context.Background()
	if err := repo.Officer.Create(ctx, &model.Officer{ID: 1, Name: "A. Sharma", AssignedHouses: model.IntArray{3}}); err != nil {
		t.Fatalf("seed officer: %v", err)
	}

	name, officer := "Ravi Kumar", "A. Sharma"
	w := do(h, http.MethodPost, "/api/v1/pending-entries", "", dto.SubmitPendingEntryRequest{
		BeneficiaryName: &name,
		AssignedOfficer: &officer,
		ConstructionDetails: &model.ConstructionDetails{
			Foundation: model.ConstructionStageRecord{Status: model.StageCompleted},
			Walls:      model.ConstructionStageRecord{Status: model.StageCompleted},
			Roof:       model.ConstructionStageRecord{Status: model.StageInProgress},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var submitted struct {
		Data model.PendingEntry `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &submitted)
	if submitted.Data.ID != 101 || submitted.Data.Progress != 50 {
		t.Fatalf("unexpected entry %+v", submitted.Data)
	}

	w = do(h, http.MethodPost, "/api/v1/pending-entries/101/approve", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if w = do(h, http.MethodGet, "/api/v1/beneficiaries/1", "", nil); w.Code != http.StatusOK {
		t.Errorf("beneficiary 1 should exist, got %d", w.Code)
	}
	if w = do(h, http.MethodGet, "/api/v1/pending-entries/101", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("entry should be dequeued, got %d", w.Code)
	}

	o, _ := repo.Officer.GetByID(ctx, 1)
	if len(o.AssignedHouses) != 2 || o.AssignedHouses[1] != 1 {
		t.Errorf("expected [3 1], got %v", o.AssignedHouses)
	}
}

func TestApproveRequiresAdmin(t *testing.T) {
	h, jwtMgr, _ := newEngine(t, testConfig(true))
	officerToken, _ := jwtMgr.GenerateAccessToken("A. Sharma", model.RoleOfficer)
	adminToken, _ := jwtMgr.GenerateAccessToken("District Admin", model.RoleAdmin)

	if w := do(h, http.MethodPost, "/api/v1/pending-entries/101/approve", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", w.Code)
	}
	if w := do(h, http.MethodPost, "/api/v1/pending-entries/101/approve", officerToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("officer: expected 403, got %d", w.Code)
	}
	if w := do(h, http.MethodPost, "/api/v1/pending-entries/101/approve", adminToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("admin on missing entry: expected 404, got %d", w.Code)
	}
	if w := do(h, http.MethodGet, "/api/v1/pending-entries", officerToken, nil); w.Code != http.StatusOK {
		t.Errorf("officer can list: expected 200, got %d", w.Code)
	}
}

func TestExportRouteNotShadowedByID(t *testing.T) {
	h, _, _ := newEngine(t, testConfig(false))
	w := do(h, http.MethodGet, "/api/v1/beneficiaries/export", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type %q", ct)
	}
}
