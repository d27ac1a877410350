package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext(e *echo.Echo, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			return ck
		}
	}
	t.Fatalf("session cookie not set")
	return nil
}

func TestCookieManager_AttachFlags(t *testing.T) {
	e := echo.New()
	c, rec := newTestContext(e, httptest.NewRequest(http.MethodGet, "/", nil))

	NewCookieManager(true).Attach(c, "token123")

	ck := sessionCookie(t, rec)
	if ck.Value != "token123" {
		t.Fatalf("expected token value, got %q", ck.Value)
	}
	if !ck.HttpOnly {
		t.Fatalf("expected HttpOnly")
	}
	if !ck.Secure {
		t.Fatalf("expected Secure in production mode")
	}
	if ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite=Lax, got %v", ck.SameSite)
	}
	if ck.Path != "/" {
		t.Fatalf("expected Path=/, got %q", ck.Path)
	}
	if ck.MaxAge != 86400 {
		t.Fatalf("expected Max-Age=86400, got %d", ck.MaxAge)
	}
}

func TestCookieManager_AttachInsecureOutsideProduction(t *testing.T) {
	e := echo.New()
	c, rec := newTestContext(e, httptest.NewRequest(http.MethodGet, "/", nil))

	NewCookieManager(false).Attach(c, "token123")

	if sessionCookie(t, rec).Secure {
		t.Fatalf("expected Secure off outside production")
	}
}

func TestCookieManager_ClearExpiresImmediately(t *testing.T) {
	e := echo.New()
	c, rec := newTestContext(e, httptest.NewRequest(http.MethodGet, "/", nil))

	m := NewCookieManager(false)
	m.Clear(c)

	ck := sessionCookie(t, rec)
	if ck.Value != "" {
		t.Fatalf("expected empty value, got %q", ck.Value)
	}
	if ck.MaxAge >= 0 {
		t.Fatalf("expected negative Max-Age, got %d", ck.MaxAge)
	}
	if ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("clear must use the same SameSite policy as set, got %v", ck.SameSite)
	}
}

func TestCookieManager_RoundTrip(t *testing.T) {
	e := echo.New()
	m := NewCookieManager(false)

	c, rec := newTestContext(e, httptest.NewRequest(http.MethodGet, "/", nil))
	m.Attach(c, "token123")

	// Feed the response cookie back into a fresh request.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, rec))
	c2, _ := newTestContext(e, req)

	token, ok := m.Extract(c2)
	if !ok || token != "token123" {
		t.Fatalf("expected round-tripped token, got %q (%v)", token, ok)
	}
}

func TestCookieManager_ExtractBearerFallback(t *testing.T) {
	e := echo.New()
	m := NewCookieManager(false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer token456")
	c, _ := newTestContext(e, req)

	token, ok := m.Extract(c)
	if !ok || token != "token456" {
		t.Fatalf("expected bearer token, got %q (%v)", token, ok)
	}
}

func TestCookieManager_ExtractCookieWinsOverBearer(t *testing.T) {
	e := echo.New()
	m := NewCookieManager(false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")
	c, _ := newTestContext(e, req)

	token, _ := m.Extract(c)
	if token != "from-cookie" {
		t.Fatalf("expected cookie to take precedence, got %q", token)
	}
}

func TestCookieManager_ExtractMissing(t *testing.T) {
	e := echo.New()
	m := NewCookieManager(false)

	c, _ := newTestContext(e, httptest.NewRequest(http.MethodGet, "/", nil))
	if token, ok := m.Extract(c); ok {
		t.Fatalf("expected no token, got %q", token)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	c2, _ := newTestContext(e, req)
	if _, ok := m.Extract(c2); ok {
		t.Fatalf("expected non-bearer scheme to be ignored")
	}
}
