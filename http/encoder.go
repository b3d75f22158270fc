package http

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"backhand/http/rule"

	"github.com/pkg/errors"
)

type EncodeOptions struct {
	// UseSoleLF specifies whether a single LF character should be used
	// as a line terminator.
	//
	// Reference: https://datatracker.ietf.org/doc/html/rfc9112#section-2.2-3
	UseSoleLF bool
}

var DefaultEncodeOptions = EncodeOptions{
	UseSoleLF: false,
}

// ResponseEncoder serializes responses onto a stream: status line,
// header lines, a blank line, then the body bytes verbatim.
//
// It is a non-interpreting serializer. It does not compute or check
// Content-Length (header correctness is the handler's job) and it
// never closes the stream.
type ResponseEncoder struct {
	bw   *bufio.Writer
	opts EncodeOptions
}

func NewResponseEncoder(w io.Writer, opts EncodeOptions) *ResponseEncoder {
	return &ResponseEncoder{bw: bufio.NewWriter(w), opts: opts}
}

func (re *ResponseEncoder) Encode(response Response) error {
	if err := re.encodeStatusLine(response.statusLine); err != nil {
		return errors.Wrap(err, "encoding status line")
	}

	if err := re.encodeHeaders(response.Headers); err != nil {
		return errors.Wrap(err, "encoding headers")
	}

	// Flush the head before the body.
	if err := re.bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing status line & headers")
	}

	if _, err := re.bw.Write(response.Body); err != nil {
		return errors.Wrap(err, "writing response body")
	}

	if err := re.bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing response body")
	}

	return nil
}

func (re *ResponseEncoder) encodeStatusLine(statLine statusLine) error {
	buf := bytes.NewBuffer(nil)

	buf.Write(statLine.Version.Text())
	buf.WriteByte(rule.SP)
	buf.Write([]byte(strconv.FormatUint(uint64(statLine.StatusCode), 10)))
	if len(statLine.ReasonPhrase) > 0 {
		buf.WriteByte(rule.SP)
		buf.Write([]byte(statLine.ReasonPhrase))
	}

	if err := re.writeLine(buf.Bytes()); err != nil {
		return errors.Wrap(err, "writing line")
	}

	return nil
}

func (re *ResponseEncoder) encodeHeaders(headers []Field) error {
	for _, field := range headers {
		if err := re.writeLine(field.Text()); err != nil {
			return errors.Wrap(err, "writing field")
		}
	}

	// Write an empty line as all the headers are written.
	if err := re.writeLine(nil); err != nil {
		return errors.Wrap(err, "writing line terminator")
	}

	return nil
}

func (re *ResponseEncoder) writeLine(line []byte) error {
	if _, err := re.bw.Write(line); err != nil {
		return errors.Wrap(err, "writing line")
	}

	term := rule.CRLF
	if re.opts.UseSoleLF {
		term = term[1:]
	}

	if _, err := re.bw.Write(term); err != nil {
		return errors.Wrap(err, "writing line terminator")
	}

	return nil
}
