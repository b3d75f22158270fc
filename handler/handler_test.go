package handler

import (
	"testing"

	"backhand/http"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

var errFailing = errors.New("handler is broken")

type failingHandler struct{}

func (failingHandler) Handle(http.Request) (http.Response, error) {
	return http.Response{}, errFailing
}

type HandlerTestSuite struct {
	suite.Suite
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) TestText() {
	res, err := Text("Hello world!").Handle(http.Request{})
	s.Require().NoError(err)

	s.Equal(http.StatusOK, res.StatusCode)
	s.Equal("Hello world!", string(res.Body))

	cl, ok := res.Header("Content-Length")
	s.True(ok)
	s.Equal("12", cl)

	ct, ok := res.Header("Content-Type")
	s.True(ok)
	s.Equal("text/plain", ct)
}

func (s *HandlerTestSuite) TestFixed() {
	fixed := http.NewResponse(http.StatusNoContent)

	res, err := Fixed(fixed).Handle(http.Request{})
	s.Require().NoError(err)
	s.Equal(fixed, res)
}

type ForkTestSuite struct {
	suite.Suite
}

func TestForkTestSuite(t *testing.T) {
	suite.Run(t, new(ForkTestSuite))
}

func (s *ForkTestSuite) fork() Handler {
	return Fork(
		NewRoute("/path/a", Text("a")),
		NewRoute("/path/b", Text("b")),
		NewRoute("/items/[0-9]+", Text("item")),
	)
}

func (s *ForkTestSuite) TestDispatch() {
	testcases := []struct {
		desc         string
		target       string
		expectedCode uint
		expectedBody string
	}{
		{
			desc:         "first route",
			target:       "/path/a",
			expectedCode: http.StatusOK,
			expectedBody: "a",
		},
		{
			desc:         "second route",
			target:       "/path/b",
			expectedCode: http.StatusOK,
			expectedBody: "b",
		},
		{
			desc:         "regex route",
			target:       "/items/42",
			expectedCode: http.StatusOK,
			expectedBody: "item",
		},
		{
			desc:         "query string is not part of the path",
			target:       "/path/a?x=1",
			expectedCode: http.StatusOK,
			expectedBody: "a",
		},
		{
			desc:         "no route matched",
			target:       "/path/c",
			expectedCode: http.StatusNotFound,
		},
		{
			desc:         "pattern must match the whole path",
			target:       "/items/42/sub",
			expectedCode: http.StatusNotFound,
		},
	}
	for _, tc := range testcases {
		s.Run(tc.desc, func() {
			req := http.Request{}
			req.Target = tc.target

			res, err := s.fork().Handle(req)
			s.Require().NoError(err)
			s.Equal(tc.expectedCode, res.StatusCode)
			s.Equal(tc.expectedBody, string(res.Body))
		})
	}
}
