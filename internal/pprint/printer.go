package pprint

import (
	"github.com/oshokin/http-pprint/internal/sink"
)

const (
	// NotRedirectedNotice precedes the summary of a response that was not redirected.
	NotRedirectedNotice = "Request was not redirected"
	// RedirectedNotice precedes the summary of a redirect chain.
	RedirectedNotice = "Request was redirected!"

	// OriginalRequestLabel labels the first request of a redirect chain.
	OriginalRequestLabel = "------ ORIGINAL REQUEST ------"
	// OriginalResponseLabel labels the first response of a redirect chain.
	OriginalResponseLabel = "------ ORIGINAL RESPONSE ------"
	// RedirectedRequestLabel labels the last request of a redirect chain.
	RedirectedRequestLabel = "------ REDIRECTED REQUEST ------"
	// RedirectedResponseLabel labels the last response of a redirect chain.
	RedirectedResponseLabel = "------ REDIRECTED RESPONSE ------"
)

// Printer writes formatted requests and responses to a sink.
// It holds no state between calls.
type Printer struct {
	sink sink.Sink
}

// NewPrinter creates a Printer writing to s.
func NewPrinter(s sink.Sink) *Printer {
	return &Printer{sink: s}
}

// PrintRequest prints a request. A missing Host header is added to req.
func (p *Printer) PrintRequest(req *Request) error {
	if req == nil {
		return ErrNilRequest
	}

	return p.sink.Print(FormatRequest(req))
}

// PrintResponse prints a buffered response.
func (p *Printer) PrintResponse(resp *Response) error {
	if resp == nil {
		return ErrNilResponse
	}

	return p.sink.Print(FormatResponse(resp))
}

// PrintResponseSummary prints the exchange that produced resp.
// For a redirect chain it prints the original request and response followed by the
// final ones; intermediate hops are skipped.
func (p *Printer) PrintResponseSummary(resp *Response) error {
	if resp == nil {
		return ErrNilResponse
	}

	if !resp.Redirected() {
		return p.printSteps(
			p.notice(sink.Success(NotRedirectedNotice)),
			p.optionalRequest(resp.Request),
			func() error { return p.PrintResponse(resp) },
		)
	}

	original := resp.History[0]

	return p.printSteps(
		p.notice(sink.Warning(RedirectedNotice)),
		p.label(OriginalRequestLabel),
		p.optionalRequest(original.Request),
		p.label(OriginalResponseLabel),
		func() error { return p.PrintResponse(original) },
		p.label(RedirectedRequestLabel),
		p.optionalRequest(resp.Request),
		p.label(RedirectedResponseLabel),
		func() error { return p.PrintResponse(resp) },
	)
}

// printSteps runs print steps in order and stops at the first error.
func (p *Printer) printSteps(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	return nil
}

func (p *Printer) notice(segment sink.Segment) func() error {
	return func() error {
		return p.sink.Print(sink.NewText(segment))
	}
}

func (p *Printer) label(label string) func() error {
	return p.notice(sink.Plain(label))
}

// optionalRequest prints req when it is known; responses built by hand may lack one.
func (p *Printer) optionalRequest(req *Request) func() error {
	return func() error {
		if req == nil {
			return nil
		}

		return p.PrintRequest(req)
	}
}
