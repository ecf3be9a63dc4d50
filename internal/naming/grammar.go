// Package naming recognises satellite product names and extracts their
// canonical identity (platform, format, level, tile, acquisition date).
package naming

import (
	"github.com/dwsmith1983/startmaja/pkg/types"
)

// tileToken marks where the tile identifier sits in a pattern. A matcher
// bound to a tile substitutes the quoted tile, a generic matcher substitutes
// the grammar's default tile sub-pattern.
const tileToken = "{tile}"

const (
	mgrsTile    = `\d{2}[A-Z]{3}`
	pathRowTile = `\d{6}`
	siteTile    = `[A-Z0-9]+`
)

// MetadataRule locates the metadata file that makes a matched name a genuine
// product. Pattern and Template may reference {name} (the full entry name)
// and {stem} (the entry name up to its first dot).
type MetadataRule struct {
	// Sibling is set when the metadata file lies next to the product entry
	// rather than inside it.
	Sibling bool
	// Pattern is a regular expression matched against candidate file names.
	Pattern string
	// Template is the concrete file name written by the product generators.
	Template string
}

// Grammar is one historical naming convention of a platform.
//
// Pattern uses the named groups "date" and optionally "level"; the tile
// position is given by {tile}. Grammars without {tile} carry no tile in the
// name and inherit the tile the catalog was asked for.
type Grammar struct {
	ID       string
	Variant  types.Variant
	Pattern  string
	Tile     string
	Layout   DateLayout
	Level    types.Level
	Levels   map[string]types.Level
	Metadata MetadataRule
}

var muscateLevels = map[string]types.Level{
	"1C": types.LevelL1C,
	"2A": types.LevelL2A,
	"3A": types.LevelL3A,
}

var validLevels = map[string]types.Level{
	"1": types.LevelL1C,
	"2": types.LevelL2A,
}

var muscateMetadata = MetadataRule{Pattern: `^{name}_MTD_ALL\.xml$`, Template: "{name}_MTD_ALL.xml"}

var natifMetadata = MetadataRule{Sibling: true, Pattern: `^{stem}\.HDR$`, Template: "{stem}.HDR"}

var mtlMetadata = MetadataRule{Pattern: `^{name}_MTL\.txt$`, Template: "{name}_MTL.txt"}

// Grammars is the closed, ordered grammar table. For a given name the first
// matching grammar of a platform wins.
var Grammars = []Grammar{
	{
		ID:       "s2-safe",
		Variant:  types.VariantSentinel2Native,
		Pattern:  `^S2[AB]_MSIL1C_(?P<date>\d{8}T\d{6})_N\d+_R\d+_T{tile}_\d{8}T\d{6}\.SAFE$`,
		Tile:     mgrsTile,
		Layout:   LayoutSafe,
		Level:    types.LevelL1C,
		Metadata: MetadataRule{Pattern: `^MTD_MSIL1C\.xml$`, Template: "MTD_MSIL1C.xml"},
	},
	{
		ID:       "s2-muscate",
		Variant:  types.VariantSentinel2Muscate,
		Pattern:  `^SENTINEL2[ABX]_(?P<date>\d{8}-\d{6}-\d{3})_L(?P<level>1C|2A|3A)_T{tile}_\w_V[\d-]+$`,
		Tile:     mgrsTile,
		Layout:   LayoutMuscate,
		Levels:   muscateLevels,
		Metadata: muscateMetadata,
	},
	{
		ID:       "s2-natif",
		Variant:  types.VariantSentinel2Native,
		Pattern:  `^S2[AB]_OPER_SSC_L(?P<level>[12])VALD_{tile}_+(?P<date>\d{8})\.(HDR|DBL\.DIR)$`,
		Tile:     `[0-9]{2}[A-Z0-9]{3}`,
		Layout:   LayoutCompact,
		Levels:   validLevels,
		Metadata: natifMetadata,
	},
	{
		ID:      "s2-pdmc",
		Variant: types.VariantSentinel2Native,
		Pattern: `^S2[AB]_OPER_PRD_MSIL1C_PDMC_\d{8}T\d{6}_R\d+_V(?P<date>\d{8}T\d{6})_\d{8}T\d{6}\.SAFE$`,
		Layout:  LayoutSafe,
		Level:   types.LevelL1C,
		Metadata: MetadataRule{
			Pattern:  `^S2[AB]_OPER_MTD_SAFL1C_\w+\.xml$`,
			Template: "S2A_OPER_MTD_SAFL1C_PDMC_20160101T000000_R000_V20160101T000000_20160101T000000.xml",
		},
	},
	{
		ID:       "l8-collection",
		Variant:  types.VariantLandsat8Native,
		Pattern:  `^LC08_L(?P<level>[12])[A-Z]{2}_{tile}_(?P<date>\d{8})_\d{8}_\d{2}_(T1|T2|RT)$`,
		Tile:     pathRowTile,
		Layout:   LayoutCompact,
		Levels:   validLevels,
		Metadata: mtlMetadata,
	},
	{
		ID:       "l8-precollection",
		Variant:  types.VariantLandsat8Native,
		Pattern:  `^LC8{tile}(?P<date>\d{7})[A-Z]{3}\d{2}$`,
		Tile:     pathRowTile,
		Layout:   LayoutJulian,
		Level:    types.LevelL1C,
		Metadata: mtlMetadata,
	},
	{
		ID:       "l8-muscate",
		Variant:  types.VariantLandsat8Muscate,
		Pattern:  `^LANDSAT8(-[\w-]+)?_(?P<date>\d{8}-\d{6}-\d{3})_L(?P<level>1C|2A|3A)_T{tile}_\w_V[\d-]+$`,
		Tile:     mgrsTile,
		Layout:   LayoutMuscate,
		Levels:   muscateLevels,
		Metadata: muscateMetadata,
	},
	{
		ID:       "l8-natif",
		Variant:  types.VariantLandsat8Native,
		Pattern:  `^L8_\w{4}_L8C_L(?P<level>[12])VALD_{tile}_(?P<date>\d{8})\.(HDR|DBL\.DIR)$`,
		Tile:     pathRowTile,
		Layout:   LayoutCompact,
		Levels:   validLevels,
		Metadata: natifMetadata,
	},
	{
		ID:       "vns-muscate",
		Variant:  types.VariantVenusMuscate,
		Pattern:  `^VENUS(-XS)?_(?P<date>\d{8}-\d{6}-\d{3})_L(?P<level>1C|2A|3A)_{tile}_\w_V[\w-]+$`,
		Tile:     siteTile,
		Layout:   LayoutMuscate,
		Levels:   muscateLevels,
		Metadata: muscateMetadata,
	},
	{
		ID:       "vns-natif",
		Variant:  types.VariantVenusNative,
		Pattern:  `^VE_\w{4}_VSC_L(?P<level>[12])VALD_{tile}_(?P<date>\d{8})\.(HDR|DBL\.DIR)$`,
		Tile:     siteTile,
		Layout:   LayoutCompact,
		Levels:   validLevels,
		Metadata: natifMetadata,
	},
}

// ForPlatform returns the grammars of one platform in table order.
func ForPlatform(p types.Platform) []Grammar {
	var out []Grammar
	for _, g := range Grammars {
		if g.Variant.Platform() == p {
			out = append(out, g)
		}
	}
	return out
}
