package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/bandroster/internal/app/controllers"
	"github.com/yigit/bandroster/internal/app/migrations"
	"github.com/yigit/bandroster/internal/app/models/dto"
	"github.com/yigit/bandroster/internal/app/services"
	"github.com/yigit/bandroster/internal/config"
	"github.com/yigit/bandroster/internal/db"
	"github.com/yigit/bandroster/internal/middleware"
	"github.com/yigit/bandroster/internal/pkg/metrics"
	"github.com/yigit/bandroster/internal/seed"
)

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store, err := db.NewSQLiteStore(ctx, config.SQLiteDSN(filepath.Join(t.TempDir(), "api.db")))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := migrations.NewMigrator(store).Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := seed.CreateDefaultData(ctx, store, zerolog.Nop(), true, "2026-09-01"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m := metrics.New()
	session := services.NewSession(store, services.WithMetrics(m))
	t.Cleanup(func() { _ = session.Close() })

	router := gin.New()
	router.Use(middleware.RequestID())
	SetupRouter(router, Controllers{
		Student:   controllers.NewStudentController(services.NewRosterService(session)),
		Equipment: controllers.NewEquipmentController(services.NewCheckoutService(session)),
		Undo:      controllers.NewUndoController(services.NewUndoService(session)),
		Admin:     controllers.NewAdminController(services.NewAdminService(session)),
	}, m.Handler())
	return router
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode body %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w, env
}

func TestStudentLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/students",
		`{"studentId":"555","firstName":"Lee","lastName":"Ortiz","section":"BRASS","shoeSize":"10.5"}`)
	if w.Code != http.StatusCreated || !env.Success {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}

	w, env = do(t, r, http.MethodPost, "/api/v1/students",
		`{"studentId":"555","firstName":"Lee","lastName":"Ortiz","section":"BRASS"}`)
	if w.Code != http.StatusConflict || env.Error == nil || env.Error.Code != dto.ErrorCodeResourceAlreadyExists {
		t.Fatalf("duplicate = %d %s", w.Code, w.Body.String())
	}

	w, _ = do(t, r, http.MethodPut, "/api/v1/students/555/compliance",
		`{"creditHours":12,"gpa":3.5,"duesPaid":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("compliance = %d %s", w.Code, w.Body.String())
	}

	w, env = do(t, r, http.MethodGet, "/api/v1/students/555", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get = %d %s", w.Code, w.Body.String())
	}
	var detail struct {
		Eligible bool `json:"eligible"`
	}
	if err := json.Unmarshal(env.Data, &detail); err != nil || !detail.Eligible {
		t.Fatalf("student detail = %s", w.Body.String())
	}

	w, env = do(t, r, http.MethodGet, "/api/v1/students/555/preview", "")
	var preview dto.StudentPreviewResponse
	if err := json.Unmarshal(env.Data, &preview); err != nil || preview.Name != "Lee Ortiz" {
		t.Fatalf("preview = %d %s", w.Code, w.Body.String())
	}

	w, _ = do(t, r, http.MethodDelete, "/api/v1/students/555", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete = %d %s", w.Code, w.Body.String())
	}
	w, env = do(t, r, http.MethodGet, "/api/v1/students/555", "")
	if w.Code != http.StatusNotFound || env.Error.Code != dto.ErrorCodeResourceNotFound {
		t.Fatalf("get deleted = %d %s", w.Code, w.Body.String())
	}

	w, _ = do(t, r, http.MethodPost, "/api/v1/undo", "")
	if w.Code != http.StatusOK {
		t.Fatalf("undo = %d %s", w.Code, w.Body.String())
	}
	w, _ = do(t, r, http.MethodGet, "/api/v1/students/555", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get after undo = %d %s", w.Code, w.Body.String())
	}
}

func TestValidationErrors(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name, method, path, body string
		status                   int
	}{
		{"bad section", http.MethodPost, "/api/v1/students", `{"studentId":"9","firstName":"A","lastName":"B","section":"STRINGS"}`, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/api/v1/students", `{"studentId":`, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/api/v1/students/abc", "", http.StatusBadRequest},
		{"gpa range", http.MethodPut, "/api/v1/students/300819037/compliance", `{"creditHours":12,"gpa":4.5}`, http.StatusBadRequest},
		{"unknown category", http.MethodGet, "/api/v1/equipment/tubas", "", http.StatusNotFound},
		{"assign without student", http.MethodPost, "/api/v1/equipment/shakos/2/assign", `{}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, tc.method, tc.path, tc.body)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tc.status, w.Body.String())
			}
			if env.Success || env.Error == nil {
				t.Fatalf("missing error envelope: %s", w.Body.String())
			}
		})
	}
}

func TestCheckoutEndpoints(t *testing.T) {
	r := newTestRouter(t)

	// Sample data: Jordan Reed (WOODWIND) holds the clarinet, the snare drum is free.
	w, env := do(t, r, http.MethodGet, "/api/v1/equipment/instruments?q=snare", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d %s", w.Code, w.Body.String())
	}
	var instruments []struct {
		InstrumentID int64 `json:"instrumentId"`
	}
	if err := json.Unmarshal(env.Data, &instruments); err != nil || len(instruments) != 1 {
		t.Fatalf("snare search = %s", w.Body.String())
	}
	snare := instruments[0].InstrumentID
	path := "/api/v1/equipment/instrument/" + jsonInt(snare)

	w, env = do(t, r, http.MethodPost, path+"/assign", `{"studentId":300819037}`)
	if w.Code != http.StatusConflict || env.Error.Code != dto.ErrorCodeSectionMismatch {
		t.Fatalf("mismatch = %d %s", w.Code, w.Body.String())
	}

	// Zoe Smith is WOODWIND and holds nothing.
	w, _ = do(t, r, http.MethodPost, path+"/assign", `{"studentId":300131935,"overrideSectionMismatch":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("override assign = %d %s", w.Code, w.Body.String())
	}

	w, env = do(t, r, http.MethodPost, path+"/assign", `{"studentId":300135890}`)
	if w.Code != http.StatusConflict || env.Error.Code != dto.ErrorCodeAlreadyAssigned {
		t.Fatalf("double assign = %d %s", w.Code, w.Body.String())
	}

	w, _ = do(t, r, http.MethodPost, path+"/unassign", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unassign = %d %s", w.Code, w.Body.String())
	}
	w, env = do(t, r, http.MethodPost, path+"/unassign", `{"conditionNotes":"dented"}`)
	if w.Code != http.StatusConflict || env.Error.Code != dto.ErrorCodeNotAssigned {
		t.Fatalf("second unassign = %d %s", w.Code, w.Body.String())
	}

	w, env = do(t, r, http.MethodPost, "/api/v1/equipment/shakos", `{"size":"7 5/8"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add shako = %d %s", w.Code, w.Body.String())
	}
	var created dto.UnitCreatedResponse
	if err := json.Unmarshal(env.Data, &created); err != nil || created.UnitID == 0 {
		t.Fatalf("created = %s", w.Body.String())
	}
}

func TestUndoAndResetEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/undo", "")
	if w.Code != http.StatusConflict || env.Error.Code != dto.ErrorCodeNothingToUndo {
		t.Fatalf("empty undo = %d %s", w.Code, w.Body.String())
	}

	do(t, r, http.MethodPost, "/api/v1/equipment/uniforms", `{"coatSize":"44R","pantSize":"36","coatNumber":"C-9","pantNumber":"P-9"}`)
	w, env = do(t, r, http.MethodGet, "/api/v1/undo", "")
	var status services.UndoStatus
	if err := json.Unmarshal(env.Data, &status); err != nil || status.Depth != 1 || !status.Ready {
		t.Fatalf("status = %s", w.Body.String())
	}

	w, _ = do(t, r, http.MethodPost, "/api/v1/admin/reset", "")
	if w.Code != http.StatusOK {
		t.Fatalf("reset = %d %s", w.Code, w.Body.String())
	}
	w, env = do(t, r, http.MethodGet, "/api/v1/students", "")
	if w.Code != http.StatusOK || string(env.Data) != "[]" {
		t.Fatalf("students after reset = %s", w.Body.String())
	}
	w, env = do(t, r, http.MethodPost, "/api/v1/undo", "")
	if w.Code != http.StatusConflict || env.Error.Code != dto.ErrorCodeNothingToUndo {
		t.Fatalf("undo after reset = %d %s", w.Code, w.Body.String())
	}
}

func TestPingAndMetrics(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/v1/undo", "")

	w, _ := do(t, r, http.MethodGet, "/ping", "")
	if w.Code != http.StatusOK {
		t.Fatalf("ping = %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `bandroster_operations_total{operation="undo",result="empty_stack"} 1`) {
		t.Fatalf("metrics = %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatalf("missing request id header")
	}
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
