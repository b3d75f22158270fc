package handler

import (
	"regexp"
	"strings"

	"backhand/http"
)

// Compiled once; shared read-only across all connections.
var setCookiePattern = regexp.MustCompile(`(?i)^set-cookie: (.+)$`)

// JoinCookies wraps inner and coalesces all Set-Cookie headers of its
// responses into a single comma-joined Set-Cookie header. Responses
// without any Set-Cookie header pass through untouched, and the body
// is never altered.
//
// Applying it twice is the same as applying it once: after one pass at
// most one Set-Cookie header is left to join.
func JoinCookies(inner Handler) Handler {
	return Func(func(req http.Request) (http.Response, error) {
		res, err := inner.Handle(req)
		if err != nil {
			return http.Response{}, err
		}

		return joinCookies(res), nil
	})
}

func joinCookies(res http.Response) http.Response {
	cookies := make([]string, 0)
	for _, field := range res.Headers {
		m := setCookiePattern.FindSubmatch(field.Text())
		if m == nil {
			continue
		}
		cookies = append(cookies, string(m[1]))
	}

	if len(cookies) == 0 {
		return res
	}

	return res.
		WithoutHeader("Set-Cookie").
		WithHeader("Set-Cookie", strings.Join(cookies, ", "))
}
