package http

import (
	"bytes"
	"io"
	"strconv"

	"backhand/http/rule"
	iolib "backhand/lib/io"

	"github.com/pkg/errors"
)

type DecodeOptions struct {
	// AllowSoleLF specifies whether a single LF character should be
	// recognized as a valid line terminator.
	//
	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-2.2-3
	AllowSoleLF bool

	// MaxRequestLineLength sets the limit of request line length.
	// Recommended: >= 8000
	//
	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-3-5
	MaxRequestLineLength uint

	// MaxFieldLineLength sets the limit of field line length on headers.
	MaxFieldLineLength uint

	// MaxContentLength caps the declared Content-Length. 0 means no cap.
	MaxContentLength uint
}

var DefaultDecodeOptions = DecodeOptions{
	AllowSoleLF:          false,
	MaxRequestLineLength: 0,
	MaxFieldLineLength:   0,
	MaxContentLength:     0,
}

var (
	errLineTooLong       = errors.New("line length exceeds limit")
	ErrMissingCRBeforeLF = errors.New("missing CR before LF")

	ErrRequestLineTooLong   = errors.New("request line length exceeds limit")
	ErrMalformedRequestLine = errors.New("request line is malformed")

	ErrFieldLineTooLong   = errors.New("field line length exceeds limit")
	ErrMalformedFieldLine = errors.New("field line is malformed")

	// ErrShortBody means the stream ended before Content-Length bytes
	// of body arrived.
	ErrShortBody = errors.New("body is shorter than declared content length")

	ErrContentTooLarge = errors.New("declared content length exceeds limit")

	// ErrUnsupportedTransferCoding rejects Transfer-Encoding outright.
	// Bodies are delimited by Content-Length only; accepting a coding
	// we cannot frame would desync the stream.
	ErrUnsupportedTransferCoding = errors.New("transfer codings are not supported")
)

// RequestDecoder materializes requests off a byte stream: request
// line, header block, then exactly Content-Length bytes of body.
type RequestDecoder struct {
	r    *iolib.UntilReader
	opts DecodeOptions
}

func NewRequestDecoder(r io.Reader, opts DecodeOptions) *RequestDecoder {
	return &RequestDecoder{r: iolib.NewUntilReader(r), opts: opts}
}

// Decode reads one full request. r MUST be a non-nil pointer.
// On failure the stream position is undefined and the connection
// should be abandoned.
func (rd *RequestDecoder) Decode(r *Request) error {
	if err := rd.decodeRequestLine(&r.requestLine); err != nil {
		return errors.Wrap(err, "parsing request line")
	}

	if err := rd.decodeHeaders(&r.Headers); err != nil {
		return errors.Wrap(err, "parsing headers")
	}

	body, err := rd.readBody(r.Headers)
	if err != nil {
		return errors.Wrap(err, "reading body")
	}
	r.Body = body

	return nil
}

func (rd *RequestDecoder) readLine(limit uint) ([]byte, error) {
	b, err := rd.r.ReadUntilLimit([]byte{rule.LF}, limit)
	if err != nil {
		if errors.Is(err, io.EOF) {
			if limit > 0 && uint(len(b)) >= limit {
				return nil, errLineTooLong
			}
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	b = b[:len(b)-1] // Remove LF.

	if !rd.opts.AllowSoleLF {
		if len(b) == 0 || b[len(b)-1] != rule.CR {
			return nil, ErrMissingCRBeforeLF
		}
	}
	b = bytes.TrimSuffix(b, []byte{rule.CR})

	return b, nil
}

func (rd *RequestDecoder) decodeRequestLine(reqLine *requestLine) error {
	var line []byte
	for {
		b, err := rd.readLine(rd.opts.MaxRequestLineLength)
		if err != nil {
			if errors.Is(err, errLineTooLong) {
				return ErrRequestLineTooLong
			}
			return errors.Wrap(err, "reading line")
		}

		// An empty line can be received before the message.
		// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-2.2-6
		if len(b) > 0 {
			line = b
			break
		}
	}

	parsed, err := parseRequestLine(line)
	if err != nil {
		return ErrMalformedRequestLine
	}

	*reqLine = parsed

	return nil
}

func parseRequestLine(line []byte) (requestLine, error) {
	parts := bytes.Split(line, []byte{rule.SP})
	if len(parts) != 3 {
		return requestLine{}, errors.New("request line is not three tokens")
	}

	method := string(parts[0])
	if !rule.IsValidToken(method) {
		return requestLine{}, errors.New("method is not a valid token")
	}

	target := string(parts[1])
	if len(target) == 0 {
		return requestLine{}, errors.New("request target should not be empty")
	}

	ver, err := ParseVersion(parts[2])
	if err != nil {
		return requestLine{}, errors.Wrap(err, "parsing version")
	}

	return requestLine{Method: method, Target: target, Version: ver}, nil
}

func (rd *RequestDecoder) decodeHeaders(headers *[]Field) error {
	tmpHeaders := make([]Field, 0)
	for {
		fieldLine, err := rd.readLine(rd.opts.MaxFieldLineLength)
		if err != nil {
			if errors.Is(err, errLineTooLong) {
				return ErrFieldLineTooLong
			}
			return errors.Wrap(err, "reading line")
		}

		if len(fieldLine) == 0 {
			// An empty line. This means that there are no more headers.
			break
		}

		field, err := ParseField(fieldLine)
		if err != nil {
			return ErrMalformedFieldLine
		}

		tmpHeaders = append(tmpHeaders, field)
	}

	*headers = tmpHeaders

	return nil
}

func (rd *RequestDecoder) readBody(headers []Field) ([]byte, error) {
	if _, ok := HeaderValue(headers, "Transfer-Encoding"); ok {
		return nil, ErrUnsupportedTransferCoding
	}

	v, ok := HeaderValue(headers, "Content-Length")
	if !ok {
		// No Content-Length means no body on this exchange.
		// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-6.3-2.7
		return nil, nil
	}

	length, err := strconv.ParseUint(v, 10, 63)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedFieldLine, "content length %q is not a non-negative integer", v)
	}

	if max := rd.opts.MaxContentLength; max > 0 && uint(length) > max {
		return nil, ErrContentTooLarge
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(rd.r, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.Wrapf(ErrShortBody, "want %d bytes", length)
		}
		return nil, err
	}

	return body, nil
}
