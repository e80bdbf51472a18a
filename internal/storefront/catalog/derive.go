package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ergolife/storefront/internal/storefront/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey orders a derived listing
type SortKey string

const (
	// SortNone keeps the input order
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	// SortName orders names by Vietnamese collation
	SortName SortKey = "name"
	// SortNewest orders by descending numeric id. Non-numeric ids go last.
	SortNewest SortKey = "newest"
)

// ParseSortKey returns the key for s and whether it is known
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(s); k {
	case SortNone, SortPriceAsc, SortPriceDesc, SortName, SortNewest:
		return k, true
	}
	return SortNone, false
}

// Filter selects and orders products for display
type Filter struct {
	Query string
	// Category is matched exactly; empty or model.CategoryAll matches all
	Category string
	// PriceMax is inclusive; zero means no ceiling
	PriceMax int64
	Sort     SortKey
	// InShop also matches Query against descriptions
	InShop bool
}

// Derive returns the products matching every predicate of f in f.Sort
// order. The input is not modified.
func Derive(products []model.Product, f Filter) []model.Product {
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(f.Query))

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(p, f.Category) || !withinPrice(p, f.PriceMax) {
			continue
		}
		if query != "" && !matchesQuery(fold, p, query, f.InShop) {
			continue
		}
		out = append(out, p)
	}

	if cmpFn := comparator(f.Sort); cmpFn != nil {
		slices.SortStableFunc(out, cmpFn)
	}
	return out
}

func matchesCategory(p model.Product, category string) bool {
	return category == "" || category == model.CategoryAll || p.Category == category
}

func withinPrice(p model.Product, priceMax int64) bool {
	return priceMax <= 0 || p.Price <= priceMax
}

func matchesQuery(fold cases.Caser, p model.Product, query string, inShop bool) bool {
	if strings.Contains(fold.String(p.Name), query) {
		return true
	}
	return inShop && strings.Contains(fold.String(p.Description), query)
}

func comparator(key SortKey) func(a, b model.Product) int {
	switch key {
	case SortPriceAsc:
		return func(a, b model.Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceDesc:
		return func(a, b model.Product) int { return cmp.Compare(b.Price, a.Price) }
	case SortName:
		col := collate.New(language.Vietnamese)
		return func(a, b model.Product) int { return col.CompareString(a.Name, b.Name) }
	case SortNewest:
		return compareNewest
	}
	return nil
}

func compareNewest(a, b model.Product) int {
	an, aok := a.ID.Numeric()
	bn, bok := b.ID.Numeric()
	switch {
	case aok && bok:
		return cmp.Compare(bn, an)
	case aok:
		return -1
	case bok:
		return 1
	}
	return 0
}
