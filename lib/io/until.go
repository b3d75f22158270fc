package iolib

import (
	"bytes"
	"errors"
	"io"
)

// UntilReader is an [io.Reader] that can additionally read up to a
// delimiter. Bytes consumed past the delimiter are buffered and served
// on the next call, so interleaving Read and ReadUntil is safe.
type UntilReader struct {
	r io.Reader

	buf *bytes.Buffer
}

func NewUntilReader(r io.Reader) *UntilReader {
	return &UntilReader{r: r, buf: bytes.NewBuffer(nil)}
}

func (ur *UntilReader) Read(p []byte) (n int, err error) {
	if ur.buf.Len() > 0 {
		n, err = ur.buf.Read(p)
		if err == io.EOF {
			err = nil
		}
		return n, err
	}

	return ur.r.Read(p)
}

var ErrZeroLenDelim = errors.New("delim has zero length")

// ReadUntil reads until delim is seen. The output includes delim.
// If the underlying reader fails before delim shows up, whatever was
// read so far is returned along with the error.
func (ur *UntilReader) ReadUntil(delim []byte) ([]byte, error) {
	if len(delim) == 0 {
		return nil, ErrZeroLenDelim
	}

	out := bytes.NewBuffer(nil)
	last := delim[len(delim)-1]

	r := ur.r
	if ur.buf.Len() > 0 {
		// Serve buffered leftovers before touching the reader again.
		r = io.MultiReader(
			bytes.NewReader(bytes.Clone(ur.buf.Bytes())),
			ur.r,
		)
		ur.buf.Reset()
	}

	tmp := make([]byte, 1)
	for {
		n, err := r.Read(tmp)
		if n > 0 {
			out.WriteByte(tmp[0])

			if tmp[0] == last && bytes.HasSuffix(out.Bytes(), delim) {
				return out.Bytes(), nil
			}
		}

		if err != nil {
			return out.Bytes(), err
		}
	}
}

// ReadUntilLimit is ReadUntil that gives up once limit bytes were
// consumed without seeing delim. limit == 0 means no limit.
func (ur *UntilReader) ReadUntilLimit(delim []byte, limit uint) ([]byte, error) {
	if limit > 0 {
		r := ur.r
		ur.r = LimitReader(r, limit)
		defer func() { ur.r = r }() // restore underlying reader.
	}

	return ur.ReadUntil(delim)
}
