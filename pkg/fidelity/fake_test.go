package fidelity

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type op struct {
	method   string
	selector string
	value    string
}

// fakePage records every operation and serves canned page content.
type fakePage struct {
	ops          []op
	texts        map[string]string
	allTexts     map[string][]string
	downloadPath string
	failOn       map[string]error // keyed by selector or url
}

func newFakePage() *fakePage {
	return &fakePage{
		texts:    map[string]string{},
		allTexts: map[string][]string{},
		failOn:   map[string]error{},
	}
}

func (f *fakePage) record(method, selector, value string) error {
	f.ops = append(f.ops, op{method, selector, value})
	return f.failOn[selector]
}

func (f *fakePage) Goto(_ context.Context, url string) error {
	return f.record("goto", url, "")
}

func (f *fakePage) Click(_ context.Context, selector string) error {
	return f.record("click", selector, "")
}

func (f *fakePage) Fill(_ context.Context, selector, value string) error {
	return f.record("fill", selector, value)
}

func (f *fakePage) FillAndEnter(_ context.Context, selector, value string) error {
	return f.record("fill_enter", selector, value)
}

func (f *fakePage) InnerText(_ context.Context, selector string) (string, error) {
	if err := f.record("inner_text", selector, ""); err != nil {
		return "", err
	}
	text, ok := f.texts[selector]
	if !ok {
		return "", fmt.Errorf("no text for %s", selector)
	}
	return text, nil
}

func (f *fakePage) InnerTexts(_ context.Context, selector string) ([]string, error) {
	if err := f.record("inner_texts", selector, ""); err != nil {
		return nil, err
	}
	texts, ok := f.allTexts[selector]
	if !ok {
		return nil, fmt.Errorf("no texts for %s", selector)
	}
	return texts, nil
}

func (f *fakePage) WaitFor(_ context.Context, selector string) error {
	return f.record("wait", selector, "")
}

func (f *fakePage) Download(_ context.Context, selector string) (string, error) {
	if err := f.record("download", selector, ""); err != nil {
		return "", err
	}
	return f.downloadPath, nil
}

func (f *fakePage) Close() error { return nil }

// fakeConfirmer answers prompts from a queue, defaulting to yes.
type fakeConfirmer struct {
	answers []bool
	prompts []string
}

func (f *fakeConfirmer) Confirm(prompt string) (bool, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.answers) == 0 {
		return true, nil
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

func newTestDriver(page *fakePage, confirmer Confirmer) *Driver {
	if confirmer == nil {
		confirmer = &fakeConfirmer{}
	}
	return &Driver{
		page:      page,
		logger:    zap.NewNop(),
		confirmer: confirmer,
		timeout:   DefaultTimeout,
	}
}
