package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRegisterAndRecordersAreSafe(t *testing.T) {
	Register()
	Register()

	Mutation("add")
	Noop("delete")
	PersistFailure("save")
	RecordHTTPRequest("POST", "/drop", 200, 3*time.Millisecond)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"kanban_board_mutations_total", "kanban_store_failures_total", "kanban_http_requests_total"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in metrics output", want)
		}
	}
}
