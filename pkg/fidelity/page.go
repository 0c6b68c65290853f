package fidelity

import "context"

// Page is the slice of the browser page surface the driver needs. The
// playwright adapter implements it against a live page, tests swap in an
// in-memory fake.
type Page interface {
	Goto(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, value string) error
	// FillAndEnter fills an input and submits it with the Enter key.
	FillAndEnter(ctx context.Context, selector, value string) error
	// InnerText returns the trimmed text content of the first match.
	InnerText(ctx context.Context, selector string) (string, error)
	// InnerTexts returns the trimmed text content of every match.
	InnerTexts(ctx context.Context, selector string) ([]string, error)
	// WaitFor blocks until the selector is present on the page.
	WaitFor(ctx context.Context, selector string) error
	// Download clicks the selector, waits for the triggered download to
	// finish, and returns the path of the stored file.
	Download(ctx context.Context, selector string) (string, error)
	Close() error
}
