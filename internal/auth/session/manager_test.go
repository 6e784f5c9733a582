package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/onebase/onebase/internal/config"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestReadToken(t *testing.T) {
	m := NewManager(config.Config{})

	c, _ := testContext()
	if _, ok := m.ReadToken(c); ok {
		t.Fatal("expected no token without cookie")
	}

	c, _ = testContext()
	c.Request.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "abc123"})
	token, ok := m.ReadToken(c)
	if !ok || token != "abc123" {
		t.Fatalf("got %q/%v, want abc123/true", token, ok)
	}

	c, _ = testContext()
	c.Request.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: ""})
	if _, ok := m.ReadToken(c); ok {
		t.Fatal("expected no token for empty cookie")
	}
}

func TestSetAndClear(t *testing.T) {
	m := NewManager(config.Config{AuthCookieSecure: true})

	c, w := testContext()
	m.Set(c, "abc123", time.Now().Add(time.Hour))

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != DefaultCookieName || cookie.Value != "abc123" {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
	if !cookie.HttpOnly || !cookie.Secure {
		t.Fatalf("expected HttpOnly secure cookie, got %+v", cookie)
	}
	if cookie.MaxAge <= 0 {
		t.Fatalf("max age = %d, want positive", cookie.MaxAge)
	}

	c, w = testContext()
	m.Clear(c)
	cookies = w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expiring cookie, got %+v", cookies)
	}
}
