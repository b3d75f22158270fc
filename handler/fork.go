package handler

import (
	"regexp"
	"strings"

	"backhand/http"
)

// Route binds a path pattern to a handler. The pattern must match the
// whole request path (the target with any query string cut off).
type Route struct {
	pattern *regexp.Regexp
	handler Handler
}

// NewRoute compiles pattern. It panics on an invalid pattern, so
// routes are meant to be built at startup.
func NewRoute(pattern string, h Handler) Route {
	return Route{
		pattern: regexp.MustCompile(`\A(?:` + pattern + `)\z`),
		handler: h,
	}
}

// Fork dispatches to the first route whose pattern matches the request
// path. When nothing matches it responds 404.
func Fork(routes ...Route) Handler {
	return Func(func(req http.Request) (http.Response, error) {
		path, _, _ := strings.Cut(req.Target, "?")

		for _, route := range routes {
			if route.pattern.MatchString(path) {
				return route.handler.Handle(req)
			}
		}

		return http.NewResponse(http.StatusNotFound), nil
	})
}
