package types

import (
	"sort"
	"time"
)

// Product is the canonical identity of one Level-1, Level-2 or Level-3
// product found on disk. Products are built once during cataloging and are
// never mutated afterwards.
type Product struct {
	Name     string    `json:"name"`
	Variant  Variant   `json:"variant"`
	Level    Level     `json:"level"`
	Tile     string    `json:"tile"`
	Date     time.Time `json:"date"`
	Root     string    `json:"root"`
	Metadata string    `json:"metadata"`
}

// Platform returns the platform that acquired the product.
func (p Product) Platform() Platform {
	return p.Variant.Platform()
}

// Type returns the format family of the product.
func (p Product) Type() ProcessingType {
	return p.Variant.Type()
}

// Equal reports whether two products share platform, type, level, tile and
// date. Filesystem locations do not take part in identity.
func (p Product) Equal(o Product) bool {
	return p.Variant == o.Variant &&
		p.Level == o.Level &&
		p.Tile == o.Tile &&
		p.Date.Equal(o.Date)
}

// SortProducts orders products by acquisition date, breaking ties on the
// product root path so the order never depends on directory listing order.
func SortProducts(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Root < b.Root
	})
}

// AuxFile is an auxiliary input of the correction (CAMS or DTM) made of one
// header file and one or more data files.
type AuxFile struct {
	Kind AuxKind   `json:"kind"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
	// End is the second timestamp of a CAMS name; zero for DTM.
	End time.Time `json:"end,omitzero"`
	HDR string    `json:"hdr"`
	DBL []string  `json:"dbl"`
}

// Complete reports whether both the header and at least one data file exist.
func (a AuxFile) Complete() bool {
	return a.HDR != "" && len(a.DBL) > 0
}

// Files returns the header followed by the data files.
func (a AuxFile) Files() []string {
	out := make([]string, 0, len(a.DBL)+1)
	if a.HDR != "" {
		out = append(out, a.HDR)
	}
	return append(out, a.DBL...)
}

// SortAux orders auxiliary files by date, then by name.
func SortAux(files []AuxFile) {
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Name < b.Name
	})
}
