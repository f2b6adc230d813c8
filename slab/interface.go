package slab

import (
	"github.com/joshuapare/slabkit/internal/diag"
	"github.com/joshuapare/slabkit/internal/pagesrc"
)

// PageSource is a type alias for the canonical interface defined in internal/pagesrc.
type PageSource = pagesrc.Source

// Reporter is a type alias for the canonical interface defined in internal/diag.
type Reporter = diag.Reporter

// ReporterFunc adapts a function to Reporter.
type ReporterFunc = diag.ReporterFunc

// DefaultPageSource returns the operating-system backed page source.
func DefaultPageSource() PageSource {
	return pagesrc.Default()
}

// BudgetedPageSource wraps src so that at most limit bytes are mapped at once.
func BudgetedPageSource(src PageSource, limit uint64) PageSource {
	return pagesrc.Budgeted(src, limit)
}
