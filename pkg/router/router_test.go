package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MatheusTerradasDEV/ChapaQuente/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRoutesAndURL(t *testing.T) {
	r := router.New()
	r.Get("/orders/{id}", "orders.show", ok)

	path, found := r.Path("orders.show")
	if !found || path != "/orders/{id}" {
		t.Errorf("Path: got %q, found=%v", path, found)
	}

	url, err := r.URL("orders.show", map[string]string{"id": "abc"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/orders/abc" {
		t.Errorf("URL: got %q", url)
	}

	if _, err := r.URL("orders.show", nil); err == nil {
		t.Error("expected error for missing parameters")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route name")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var sawMiddleware bool
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sawMiddleware = true
			next.ServeHTTP(w, req)
		})
	}

	r := router.New()
	admin := r.Group("/api").Group("/admin", mw)
	admin.Get("/orders", "admin.orders.index", ok)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !sawMiddleware {
		t.Error("group middleware did not run")
	}

	path, found := r.Path("admin.orders.index")
	if !found || path != "/api/admin/orders" {
		t.Errorf("expected joined prefix, got %q", path)
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	r.Post("/b", "b", ok)
	r.HandleFunc("/unnamed", ok)

	infos := r.Routes()
	if len(infos) != 2 {
		t.Errorf("expected 2 named routes, got %d", len(infos))
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := router.New()
	r.Get("/only-get", "only.get", ok)

	req := httptest.NewRequest(http.MethodPost, "/only-get", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
