package fetcher

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/techjobs/harvester/internal/harvest"
)

// SelectorConfig names the two structural roles extracted from a detail
// page. The CSS classes are generated by the upstream site's styling
// pipeline, so they live in configuration rather than code; markup churn is
// a config change.
type SelectorConfig struct {
	// LaborFunction selects the labor-function candidates; the node at
	// LaborIndex carries the refined category label.
	LaborFunction string
	LaborIndex    int
	// Description selects the free-text description container; the first
	// match wins.
	Description string
}

func (c SelectorConfig) withDefaults() SelectorConfig {
	if c.LaborFunction == "" {
		c.LaborFunction = "div.sc-beqWaB.bpXRKw"
		c.LaborIndex = 1
	}
	if c.Description == "" {
		c.Description = "div.sc-beqWaB.fmCCHr"
	}
	return c
}

// extract parses the page HTML and pulls the two role-tagged fields.
// LaborFunction stays empty when the page has fewer matches than the
// configured ordinal; the caller applies the industry fallback.
func extract(body []byte, selectors SelectorConfig) (*harvest.DetailPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	page := &harvest.DetailPage{HTML: body}

	labor := doc.Find(selectors.LaborFunction)
	if labor.Length() > selectors.LaborIndex {
		page.LaborFunction = strings.TrimSpace(labor.Eq(selectors.LaborIndex).Text())
	}

	if desc := doc.Find(selectors.Description).First(); desc.Length() > 0 {
		page.Description = strings.TrimSpace(desc.Text())
	}

	return page, nil
}
