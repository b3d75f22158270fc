package http

import (
	"bytes"
	"strconv"
	"strings"

	"backhand/http/rule"

	"github.com/pkg/errors"
)

// Field is one header line. Duplicate names are legal and order is
// preserved, so messages carry a slice of fields rather than a map.
type Field struct{ Name, Value []byte }

// ParseField parses a raw field line ("Name: value") into a [Field].
func ParseField(fieldLine []byte) (Field, error) {
	name, value, found := bytes.Cut(fieldLine, []byte{':'})
	if !found {
		return Field{}, errors.Errorf("colon separator not found on header: %q", string(fieldLine))
	}

	// No whitespace is allowed between field name and colon.
	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-5.1-2
	for _, c := range rule.OWS {
		if bytes.HasSuffix(name, []byte{c}) {
			return Field{}, errors.New("field name has trailing whitespace")
		}
	}

	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-5.1-3
	value = bytes.TrimFunc(value, func(r rune) bool {
		return r < 256 && rule.IsWhitespace(byte(r))
	})

	return Field{Name: bytes.Clone(name), Value: bytes.Clone(value)}, nil
}

// HasName reports whether the field's name equals name, ignoring case.
func (f Field) HasName(name string) bool {
	return strings.EqualFold(string(f.Name), name)
}

// Text renders the field as it appears on the wire, without the
// terminating CRLF.
func (f Field) Text() []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write(f.Name)
	buf.Write([]byte(": "))
	buf.Write(f.Value)
	return buf.Bytes()
}

// HeaderValue returns the value of the first field named name.
func HeaderValue(headers []Field, name string) (string, bool) {
	for _, f := range headers {
		if f.HasName(name) {
			return string(f.Value), true
		}
	}
	return "", false
}

// [Major, Minor]
type Version [2]uint

// ParseVersion parses http version text (e.g. "HTTP/1.1") into [Version].
func ParseVersion(b []byte) (Version, error) {
	prefix := []byte("HTTP/")
	if !bytes.HasPrefix(b, prefix) {
		return Version{}, errors.Errorf("http version prefix not found: %s", b)
	}

	// Get major and minor version.
	first, second, found := bytes.Cut(b[len(prefix):], []byte{'.'})
	if !found {
		return Version{}, errors.Errorf("dot separator not found on version: %s", b)
	}

	major, err1 := strconv.ParseUint(string(first), 10, 64)
	minor, err2 := strconv.ParseUint(string(second), 10, 64)
	if err1 != nil || err2 != nil {
		return Version{}, errors.Errorf("http version is not convertable to int: %s", b)
	}

	return Version{uint(major), uint(minor)}, nil
}

var Version11 = Version{1, 1}

func (ver Version) Text() []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write([]byte("HTTP/"))
	buf.Write([]byte(strconv.FormatUint(uint64(ver[0]), 10)))
	buf.Write([]byte{'.'})
	buf.Write([]byte(strconv.FormatUint(uint64(ver[1]), 10)))
	return buf.Bytes()
}

func (ver Version) String() string { return string(ver.Text()) }

type requestLine struct {
	Method  string
	Target  string
	Version Version
}

// Request is one materialized HTTP request. It is a value: once the
// decoder produced it, nothing mutates it. Header helpers return
// copies.
type Request struct {
	requestLine
	Headers []Field

	Body []byte
}

// Header returns the value of the first header line named name.
func (r Request) Header(name string) (string, bool) {
	return HeaderValue(r.Headers, name)
}

// WithHeader returns a copy of the request with one field appended.
func (r Request) WithHeader(name, value string) Request {
	r.Headers = appendField(r.Headers, name, value)
	return r
}

type statusLine struct {
	Version      Version
	StatusCode   uint
	ReasonPhrase string
}

// Response is one HTTP response as produced by a handler. Like
// [Request] it is a value; decorators derive new responses instead of
// mutating.
type Response struct {
	statusLine
	Headers []Field

	Body []byte
}

// NewResponse returns a response with the given status code, the
// canonical reason phrase and no headers or body.
func NewResponse(code uint) Response {
	return Response{
		statusLine: statusLine{
			Version:      Version11,
			StatusCode:   code,
			ReasonPhrase: ReasonPhrase(code),
		},
	}
}

// Header returns the value of the first header line named name.
func (r Response) Header(name string) (string, bool) {
	return HeaderValue(r.Headers, name)
}

// WithHeader returns a copy of the response with one field appended.
func (r Response) WithHeader(name, value string) Response {
	r.Headers = appendField(r.Headers, name, value)
	return r
}

// WithoutHeader returns a copy of the response with every field named
// name (case-insensitive) removed.
func (r Response) WithoutHeader(name string) Response {
	headers := make([]Field, 0, len(r.Headers))
	for _, f := range r.Headers {
		if f.HasName(name) {
			continue
		}
		headers = append(headers, f)
	}

	r.Headers = headers
	return r
}

// WithBody returns a copy of the response carrying body and a matching
// Content-Length header.
func (r Response) WithBody(body []byte) Response {
	r = r.WithoutHeader("Content-Length")
	r = r.WithHeader("Content-Length", strconv.Itoa(len(body)))
	r.Body = body
	return r
}

func appendField(headers []Field, name, value string) []Field {
	clone := make([]Field, len(headers), len(headers)+1)
	copy(clone, headers)
	return append(clone, Field{Name: []byte(name), Value: []byte(value)})
}
