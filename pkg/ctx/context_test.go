package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appctx "github.com/MatheusTerradasDEV/ChapaQuente/pkg/ctx"
)

func TestWrapAndJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.JSON(http.StatusOK, map[string]any{"ok": true})
	})(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestBindJSONValidates(t *testing.T) {
	type body struct {
		Phone string `json:"phone" validate:"required,digits=11"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"phone":"123"}`))
	req.Header.Set("Content-Type", "application/json")

	var bound bool
	appctx.Wrap(func(c *appctx.Context) {
		var b body
		bound = c.BindJSON(&b)
	})(rec, req)

	if bound {
		t.Error("expected BindJSON to fail validation")
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "phone") {
		t.Errorf("expected phone error in body: %s", rec.Body.String())
	}
}

func TestBindJSONMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{nope"))
	req.Header.Set("Content-Type", "application/json")

	appctx.Wrap(func(c *appctx.Context) {
		var v struct{}
		if c.BindJSON(&v) {
			t.Error("expected BindJSON to fail on malformed JSON")
		}
	})(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHTMLResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.HTML(http.StatusOK, "<html><body>oi</body></html>")
	})(rec, req)

	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("expected html content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "oi") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestQueryHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?search=ana&status=pending", nil)
	appctx.Wrap(func(c *appctx.Context) {
		if got := c.Query("search"); got != "ana" {
			t.Errorf("Query(search) = %q", got)
		}
		if got := c.DefaultQuery("missing", "fallback"); got != "fallback" {
			t.Errorf("DefaultQuery = %q", got)
		}
		c.Status(http.StatusNoContent)
	})(rec, req)
}

func TestStoreIsPerRequest(t *testing.T) {
	handler := appctx.Wrap(func(c *appctx.Context) {
		if v := c.GetString("leftover"); v != "" {
			t.Errorf("store leaked between requests: %q", v)
		}
		c.Set("leftover", "x")
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler(rec, req)
	}
}
