package metrics

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yigit/bandroster/internal/pkg/apperrors"
)

func TestResult(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("%w: id", apperrors.ErrStudentNotFound), "not_found"},
		{apperrors.ErrAlreadyAssigned, "conflict"},
		{fmt.Errorf("%w: x: %w", apperrors.ErrUndoFailed, apperrors.ErrStudentNotFound), "undo_failed"},
		{apperrors.ErrSectionMismatch, "section_mismatch"},
		{errors.New("disk"), "error"},
	}
	for _, tc := range cases {
		if got := Result(tc.err); got != tc.want {
			t.Fatalf("Result(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveOperation("assign", nil)
	m.ObserveOperation("assign", apperrors.ErrAlreadyAssigned)
	m.SetUndoDepth(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	for _, want := range []string{
		`bandroster_operations_total{operation="assign",result="ok"} 1`,
		`bandroster_operations_total{operation="assign",result="conflict"} 1`,
		`bandroster_undo_depth 3`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveOperation("assign", nil)
	m.SetUndoDepth(1)
}
