package fidelity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// playwrightPage adapts a playwright.Page to the Page interface. A
// cancelled context is honored between element operations, individual
// operations rely on the page default timeout.
type playwrightPage struct {
	page playwright.Page
}

func newPlaywrightPage(browser playwright.Browser, timeout time.Duration) (*playwrightPage, error) {
	page, err := browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("unable to open page: %w", err)
	}
	page.SetDefaultTimeout(float64(timeout.Milliseconds()))
	return &playwrightPage{page: page}, nil
}

func (p *playwrightPage) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url)
	return err
}

func (p *playwrightPage) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.page.Click(selector)
}

func (p *playwrightPage) Fill(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.page.Fill(selector, value)
}

func (p *playwrightPage) FillAndEnter(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	input := p.page.Locator(selector)
	if err := input.Fill(value); err != nil {
		return err
	}
	return input.Press("Enter")
}

func (p *playwrightPage) InnerText(ctx context.Context, selector string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := p.page.InnerText(selector)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (p *playwrightPage) InnerTexts(ctx context.Context, selector string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	texts, err := p.page.Locator(selector).AllInnerTexts()
	if err != nil {
		return nil, err
	}
	trimmed := make([]string, len(texts))
	for i, text := range texts {
		trimmed[i] = strings.TrimSpace(text)
	}
	return trimmed, nil
}

func (p *playwrightPage) WaitFor(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.page.Locator(selector).First().WaitFor()
}

func (p *playwrightPage) Download(ctx context.Context, selector string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	download, err := p.page.ExpectDownload(func() error {
		return p.page.Click(selector)
	})
	if err != nil {
		return "", err
	}
	return download.Path()
}

func (p *playwrightPage) Close() error {
	return p.page.Close()
}
