package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const bearerScheme = "bearer"

// TokenExtractor reads a raw credential from one place in the request.
// It reports false when that place holds nothing.
type TokenExtractor func(c echo.Context) (string, bool)

// FromHeader reads the named request header.
func FromHeader(name string) TokenExtractor {
	return func(c echo.Context) (string, bool) {
		value := c.Request().Header.Get(name)

		return value, value != ""
	}
}

// FromCookie reads the named cookie.
func FromCookie(name string) TokenExtractor {
	return func(c echo.Context) (string, bool) {
		cookie, err := c.Cookie(name)
		if err != nil || cookie.Value == "" {
			return "", false
		}

		return cookie.Value, true
	}
}

// ExtractBearer tries extractors in order. The first one that finds a value
// decides the outcome: it must be "Bearer <token>" with the scheme matched
// case-insensitively, later extractors are not consulted.
func ExtractBearer(c echo.Context, extractors ...TokenExtractor) (string, bool) {
	for _, extract := range extractors {
		raw, found := extract(c)
		if !found {
			continue
		}

		return parseBearer(raw)
	}

	return "", false
}

func parseBearer(raw string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(raw), " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
