package client

import (
	"errors"
	"io"

	"github.com/schollz/progressbar/v3"
)

// progressBody reports the bytes read from a response body on a progress bar.
type progressBody struct {
	reader io.Reader
	closer io.Closer
	bar    *progressbar.ProgressBar
}

// newProgressBody wraps body. A negative total renders a spinner instead of a bar.
func newProgressBody(body io.ReadCloser, total int64, w io.Writer) io.ReadCloser {
	bar := progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription("Retrieving"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(10), //nolint:mnd // Same width as the default bytes bar.
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)

	return &progressBody{
		reader: io.TeeReader(body, bar),
		closer: body,
		bar:    bar,
	}
}

func (p *progressBody) Read(b []byte) (int, error) {
	n, err := p.reader.Read(b)
	if errors.Is(err, io.EOF) {
		_ = p.bar.Finish()
	}

	return n, err
}

func (p *progressBody) Close() error {
	_ = p.bar.Exit()

	return p.closer.Close()
}
