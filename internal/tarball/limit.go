package tarball

import (
	"errors"
	"io"
)

// errTooLarge is returned once a limitReader has emitted its full budget and
// another read is attempted.
var errTooLarge = errors.New("maximum decompressed size reached")

// limitReader caps the total number of bytes read through it. Unlike
// io.LimitReader it does not report a clean EOF at the cap: any read past it
// fails, so runaway decompression surfaces as an explicit error instead of a
// silently truncated archive. The check is incremental per read call;
// nothing is buffered.
type limitReader struct {
	r         io.Reader
	remaining int64
}

func newLimitReader(r io.Reader, max int64) *limitReader {
	return &limitReader{r: r, remaining: max}
}

func (l *limitReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if l.remaining <= 0 {
		return 0, errTooLarge
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}
