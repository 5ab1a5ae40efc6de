package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newContext(header, cookie string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: cookie})
	}

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestExtractBearer(t *testing.T) {
	extractors := []TokenExtractor{FromHeader(echo.HeaderAuthorization), FromCookie("access_token")}

	tests := []struct {
		name      string
		header    string
		cookie    string
		wantToken string
		wantOK    bool
	}{
		{name: "header", header: "Bearer abc", wantToken: "abc", wantOK: true},
		{name: "scheme is case-insensitive", header: "bEaReR abc", wantToken: "abc", wantOK: true},
		{name: "cookie fallback", cookie: "Bearer fromcookie", wantToken: "fromcookie", wantOK: true},
		{name: "header wins over cookie", header: "Bearer h", cookie: "Bearer c", wantToken: "h", wantOK: true},
		{name: "bad header does not fall back", header: "Basic xyz", cookie: "Bearer c", wantOK: false},
		{name: "missing token after scheme", header: "Bearer ", wantOK: false},
		{name: "no scheme", header: "abc", wantOK: false},
		{name: "nothing", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := ExtractBearer(newContext(tt.header, tt.cookie), extractors...)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
