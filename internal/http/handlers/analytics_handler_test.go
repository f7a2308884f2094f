package handlers_test

import (
	"net/http"
	"testing"

	"github.com/ngoriel/portfolio-api/internal/domain"
)

func TestLogVisit(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/analytics/visit", "", domain.VisitRequest{
		PageVisited: "/gallery/wedding",
		Referrer:    "https://www.google.com/",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	decodeJSON(t, rec, &resp)
	if resp["id"] == "" {
		t.Error("expected a visit id")
	}

	f.bus.mu.Lock()
	defer f.bus.mu.Unlock()
	if len(f.bus.subjects) == 0 || f.bus.subjects[0] != "visit.logged" {
		t.Errorf("published subjects = %v, want visit.logged", f.bus.subjects)
	}
}

func TestLogVisitDefaultsPage(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/analytics/visit", "", domain.VisitRequest{})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestFinishVisit(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/analytics/visit", "", domain.VisitRequest{
		PageVisited: "/",
	})
	var created map[string]string
	decodeJSON(t, rec, &created)

	rec = f.do(t, http.MethodPut, "/api/analytics/visit/"+created["id"], "", domain.FinishVisitRequest{
		DurationSeconds: 42,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]bool
	decodeJSON(t, rec, &resp)
	if !resp["success"] {
		t.Error("expected success response")
	}
}

func TestFinishVisitRejectsNegativeDuration(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/analytics/visit", "", domain.VisitRequest{})
	var created map[string]string
	decodeJSON(t, rec, &created)

	rec = f.do(t, http.MethodPut, "/api/analytics/visit/"+created["id"], "", domain.FinishVisitRequest{
		DurationSeconds: -5,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestVisitorReportsRequireAuth(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/api/analytics/visitors", "/api/analytics/stats"} {
		rec := f.do(t, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s = %d, want 401", path, rec.Code)
		}
	}
}

func TestListVisitors(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	for i := 0; i < 3; i++ {
		rec := f.do(t, http.MethodPost, "/api/analytics/visit", "", domain.VisitRequest{PageVisited: "/"})
		if rec.Code != http.StatusOK {
			t.Fatalf("log visit status = %d", rec.Code)
		}
	}

	rec := f.do(t, http.MethodGet, "/api/analytics/visitors", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Visitors []domain.Visitor `json:"visitors"`
		Total    int              `json:"total"`
	}
	decodeJSON(t, rec, &resp)
	if resp.Total != 3 || len(resp.Visitors) != 3 {
		t.Errorf("total = %d, visitors = %d, want 3", resp.Total, len(resp.Visitors))
	}
}

func TestVisitorStats(t *testing.T) {
	f := newFixture(t)
	token := f.login(t)

	rec := f.do(t, http.MethodGet, "/api/analytics/stats", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var stats domain.VisitorStats
	decodeJSON(t, rec, &stats)
	if stats.TotalVisitors != 0 {
		t.Errorf("total_visitors = %d, want 0", stats.TotalVisitors)
	}
}
