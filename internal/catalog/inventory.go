package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dwsmith1983/startmaja/pkg/types"
)

// Inventory is the product snapshot of one scheduling run.
type Inventory struct {
	Platform types.Platform       `json:"platform"`
	Type     types.ProcessingType `json:"type"`
	L1       []types.Product      `json:"l1"`
	L2       []types.Product      `json:"l2"`
}

// Specifier returns the directory name products are grouped under: the
// site when one is given, the tile otherwise.
func Specifier(site, tile string) string {
	if site != "" {
		return site
	}
	return tile
}

// Dirs resolves the Level-1 and Level-2 product directories. Input
// directories override the Level-1 directory first, then the Level-2 one.
func Dirs(repL1, repL2, site, tile string, inputs []string) (l1, l2 string, err error) {
	group := Specifier(site, tile)
	l1 = filepath.Join(repL1, group)
	l2 = filepath.Join(repL2, group)

	switch len(inputs) {
	case 0:
	case 1:
		l1 = inputs[0]
	case 2:
		l1, l2 = inputs[0], inputs[1]
	default:
		return "", "", fmt.Errorf("%w: %v", ErrTooManyInputs, inputs)
	}

	if _, err := os.Stat(l1); err != nil {
		return "", "", fmt.Errorf("%w: L1 directory %s", ErrMissingDirectory, l1)
	}
	return l1, l2, nil
}

// Inventory enumerates both product directories. A missing or empty Level-1
// directory is fatal; a missing or empty Level-2 directory is reported as a
// warning. All products must belong to one platform, and only Venus may mix
// format families among its Level-1 products.
func (s *Scanner) Inventory(l1Dir, l2Dir string, diags *types.Diagnostics) (*Inventory, error) {
	l1, err := s.Enumerate(l1Dir, types.LevelL1C)
	if err != nil {
		return nil, fmt.Errorf("enumerating L1 products: %w", err)
	}
	if len(l1) == 0 {
		return nil, fmt.Errorf("%w: no L1 products for tile %s in %s", ErrNoProducts, s.Tile(), l1Dir)
	}

	platform, err := singlePlatform(l1)
	if err != nil {
		return nil, fmt.Errorf("L1 products in %s: %w", l1Dir, err)
	}
	var kinds []types.ProcessingType
	for _, p := range l1 {
		kinds = append(kinds, p.Type())
	}
	kind := types.CombineTypes(kinds)
	if kind == types.TypeMixed && platform != types.PlatformVenus {
		return nil, fmt.Errorf("%w: %s L1 products in %s", ErrMixedTypes, platform, l1Dir)
	}

	l2, err := s.Enumerate(l2Dir, types.LevelL2A)
	switch {
	case errors.Is(err, ErrMissingDirectory):
		diags.Warnf("L2 directory %s is missing", l2Dir)
		l2 = nil
	case err != nil:
		return nil, fmt.Errorf("enumerating L2 products: %w", err)
	case len(l2) == 0:
		diags.Warnf("no L2 products found in %s", l2Dir)
	}
	for _, p := range l2 {
		if p.Platform() != platform {
			return nil, fmt.Errorf("%w: L1 %s, L2 %s (%s)", ErrMultiplePlatforms, platform, p.Platform(), p.Name)
		}
	}

	s.logger.Info("products found", "platform", platform, "type", kind, "l1", len(l1), "l2", len(l2))
	return &Inventory{Platform: platform, Type: kind, L1: l1, L2: l2}, nil
}

func singlePlatform(products []types.Product) (types.Platform, error) {
	platform := products[0].Platform()
	for _, p := range products[1:] {
		if p.Platform() != platform {
			return "", fmt.Errorf("%w: %s and %s", ErrMultiplePlatforms, platform, p.Platform())
		}
	}
	return platform, nil
}
