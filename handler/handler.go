// Package handler defines the request handler contract consumed by the
// back-end, a few elementary handlers, and decorators that derive new
// handlers from existing ones.
package handler

import (
	"backhand/http"
)

// Handler transforms a materialized request into a response.
//
// Implementations must be safe for concurrent use: the back-end calls
// one handler instance from many connection goroutines.
type Handler interface {
	Handle(req http.Request) (http.Response, error)
}

// Func adapts a plain function to [Handler].
type Func func(req http.Request) (http.Response, error)

func (f Func) Handle(req http.Request) (http.Response, error) { return f(req) }

// Text always responds 200 with the given plain-text body.
func Text(body string) Handler {
	res := http.NewResponse(http.StatusOK).
		WithHeader("Content-Type", "text/plain").
		WithBody([]byte(body))

	return Fixed(res)
}

// Fixed always responds with the given response.
func Fixed(res http.Response) Handler {
	return Func(func(http.Request) (http.Response, error) {
		return res, nil
	})
}
