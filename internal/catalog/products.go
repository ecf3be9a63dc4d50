// Package catalog enumerates product and auxiliary directories and turns
// their entries into validated identities for scheduling.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/dwsmith1983/startmaja/internal/naming"
	"github.com/dwsmith1983/startmaja/pkg/types"
)

// metadataHint recognises files that only ever live inside a product
// directory. A directory holding one of them is expected to be a product.
var metadataHint = regexp.MustCompile(`(_MTD_ALL\.xml|^MTD_MSIL1C\.xml|_MTL\.txt|^S2[AB]_OPER_MTD_SAFL1C_\w+\.xml)$`)

// Scanner enumerates product directories of a single tile.
type Scanner struct {
	matcher *naming.Matcher
	logger  *slog.Logger
}

// NewScanner returns a scanner bound to tile.
func NewScanner(tile string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{matcher: naming.NewMatcher(tile), logger: logger}
}

// Tile returns the normalized tile of the scanner.
func (s *Scanner) Tile() string {
	return s.matcher.Tile()
}

type identity struct {
	variant types.Variant
	level   types.Level
	tile    string
	date    time.Time
}

// Enumerate lists the immediate children of dir and returns the products of
// the requested level, sorted by date. Entries that match no grammar, or that
// belong to another tile, are ignored.
func (s *Scanner) Enumerate(dir string, level types.Level) ([]types.Product, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingDirectory, dir)
		}
		return nil, fmt.Errorf("reading product dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	var products []types.Product
	seen := make(map[identity]string)
	for _, e := range entries {
		name := e.Name()
		root := filepath.Join(dir, name)

		m, ok, err := s.matcher.Classify(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			if err := s.checkUnmatched(root, name, e.IsDir()); err != nil {
				return nil, err
			}
			continue
		}
		if m.Level != level {
			s.logger.Debug("skipping product of other level", "name", name, "level", m.Level)
			continue
		}

		id := identity{m.Variant, m.Level, m.Tile, m.Date}
		if prev, dup := seen[id]; dup {
			s.logger.Debug("skipping duplicate product", "name", name, "kept", prev)
			continue
		}

		metadata, err := findMetadata(m.Metadata(), dir, root, name, names)
		if err != nil {
			return nil, err
		}
		seen[id] = name
		products = append(products, m.Product(name, root, metadata))
		s.logger.Debug("found product", "name", name, "variant", m.Variant, "date", m.Date)
	}

	types.SortProducts(products)
	return products, nil
}

// checkUnmatched reports a directory that carries product metadata but is
// not recognised by any grammar. Names of other tiles are not an error.
func (s *Scanner) checkUnmatched(root, name string, isDir bool) error {
	if !isDir {
		return nil
	}
	if _, ok, _ := naming.Classify(name); ok {
		return nil
	}
	inner, err := os.ReadDir(root)
	if err != nil {
		return nil
	}
	for _, f := range inner {
		if metadataHint.MatchString(f.Name()) {
			return fmt.Errorf("%w: %s contains %s", ErrUnrecognizedProduct, root, f.Name())
		}
	}
	return nil
}

func findMetadata(rule naming.MetadataRule, dir, root, name string, siblings []string) (string, error) {
	re := rule.Regexp(name)
	if rule.Sibling {
		for _, n := range siblings {
			if re.MatchString(n) {
				return filepath.Join(dir, n), nil
			}
		}
		return "", fmt.Errorf("%w: %s next to %s", ErrMissingMetadata, rule.FileName(name), root)
	}

	inner, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("%w: cannot read %s: %v", ErrMissingMetadata, root, err)
	}
	for _, f := range inner {
		if !f.IsDir() && re.MatchString(f.Name()) {
			return filepath.Join(root, f.Name()), nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrMissingMetadata, rule.FileName(name), root)
}
