package http

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ResponseEncoderTestSuite struct {
	suite.Suite
}

func TestResponseEncoderTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseEncoderTestSuite))
}

func (s *ResponseEncoderTestSuite) encode(res Response, opts EncodeOptions) string {
	buf := bytes.NewBuffer(nil)
	s.Require().NoError(NewResponseEncoder(buf, opts).Encode(res))
	return buf.String()
}

func (s *ResponseEncoderTestSuite) TestEncode() {
	res := NewResponse(StatusOK).
		WithHeader("Content-Type", "text/plain").
		WithBody([]byte("Hello world!"))

	wire := s.encode(res, DefaultEncodeOptions)

	s.Equal(""+
		"HTTP/1.1 200 OK\r\n"+
		"Content-Type: text/plain\r\n"+
		"Content-Length: 12\r\n"+
		"\r\n"+
		"Hello world!",
		wire,
	)
}

func (s *ResponseEncoderTestSuite) TestEncodeEmptyReason() {
	res := NewResponse(StatusOK)
	res.ReasonPhrase = ""

	wire := s.encode(res, DefaultEncodeOptions)

	s.Equal("HTTP/1.1 200\r\n\r\n", wire)
}

func (s *ResponseEncoderTestSuite) TestEncodeSoleLF() {
	res := NewResponse(StatusNoContent)

	wire := s.encode(res, EncodeOptions{UseSoleLF: true})

	s.Equal("HTTP/1.1 204 No Content\n\n", wire)
}

// The encoder must not frame, reinterpret or "fix" anything: headers
// go out as given, the body goes out verbatim.
func (s *ResponseEncoderTestSuite) TestEncodeVerbatim() {
	res := NewResponse(StatusOK).
		WithHeader("Content-Length", "999") // wrong on purpose
	res.Body = []byte("tiny")

	wire := s.encode(res, DefaultEncodeOptions)

	s.Equal(""+
		"HTTP/1.1 200 OK\r\n"+
		"Content-Length: 999\r\n"+
		"\r\n"+
		"tiny",
		wire,
	)
}

// Round-trip: a compliant reader of the encoded bytes sees the exact
// status code, header set and body the response carried.
func (s *ResponseEncoderTestSuite) TestRoundTrip() {
	res := NewResponse(StatusNotFound).
		WithHeader("Set-Cookie", "a=1").
		WithHeader("Set-Cookie", "b=2").
		WithBody([]byte("gone missing"))

	wire := s.encode(res, DefaultEncodeOptions)

	statusLine, headers, body := parseResponse(s.T(), wire)
	s.Equal("HTTP/1.1 404 Not Found", statusLine)
	s.Equal([]string{
		"Set-Cookie: a=1",
		"Set-Cookie: b=2",
		"Content-Length: 12",
	}, headers)
	s.Equal("gone missing", body)
}

func parseResponse(t *testing.T, wire string) (statusLine string, headers []string, body string) {
	t.Helper()

	r := bufio.NewReader(strings.NewReader(wire))

	readLine := func() string {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("reading line: %v", err)
		}
		return strings.TrimSuffix(line, "\r\n")
	}

	statusLine = readLine()
	for {
		line := readLine()
		if line == "" {
			break
		}
		headers = append(headers, line)
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}

	return statusLine, headers, string(rest)
}
