// Package types defines the public domain types for the startmaja workplan scheduler.
package types

// Platform identifies the satellite platform that acquired a product.
type Platform string

// Platform values enumerate the supported platforms, in classification order.
const (
	PlatformSentinel2 Platform = "sentinel2"
	PlatformLandsat8  Platform = "landsat8"
	PlatformVenus     Platform = "venus"
)

// Platforms lists every supported platform in classification order.
var Platforms = []Platform{PlatformSentinel2, PlatformLandsat8, PlatformVenus}

// String returns the underlying string value.
func (p Platform) String() string {
	return string(p)
}

// ProcessingType identifies the product format family of a processing baseline.
type ProcessingType string

// ProcessingType values enumerate the known format families.
const (
	TypeNative  ProcessingType = "natif"
	TypeMuscate ProcessingType = "muscate"
	// TypeMixed is reported for a catalog holding both families for one platform.
	TypeMixed ProcessingType = "tm"
)

// String returns the underlying string value.
func (t ProcessingType) String() string {
	return string(t)
}

// Level is the processing level of a product.
type Level string

// Level values enumerate the processing levels found in product names.
const (
	LevelL1C Level = "L1C"
	LevelL2A Level = "L2A"
	LevelL3A Level = "L3A"
)

// String returns the underlying string value.
func (l Level) String() string {
	return string(l)
}

// Mode is the processing mode assigned to a workplan.
type Mode string

// Mode values enumerate the correction modes.
const (
	ModeInit     Mode = "INIT"
	ModeBackward Mode = "BACKWARD"
	ModeNominal  Mode = "NOMINAL"
)

// String returns the underlying string value.
func (m Mode) String() string {
	return string(m)
}

// Variant is the closed set of platform and format combinations a product
// name can belong to.
type Variant string

// Variant values enumerate every recognised platform/format pair.
const (
	VariantSentinel2Muscate Variant = "sentinel2-muscate"
	VariantSentinel2Native  Variant = "sentinel2-natif"
	VariantLandsat8Muscate  Variant = "landsat8-muscate"
	VariantLandsat8Native   Variant = "landsat8-natif"
	VariantVenusMuscate     Variant = "venus-muscate"
	VariantVenusNative      Variant = "venus-natif"
)

var variantParts = map[Variant]struct {
	platform Platform
	kind     ProcessingType
}{
	VariantSentinel2Muscate: {PlatformSentinel2, TypeMuscate},
	VariantSentinel2Native:  {PlatformSentinel2, TypeNative},
	VariantLandsat8Muscate:  {PlatformLandsat8, TypeMuscate},
	VariantLandsat8Native:   {PlatformLandsat8, TypeNative},
	VariantVenusMuscate:     {PlatformVenus, TypeMuscate},
	VariantVenusNative:      {PlatformVenus, TypeNative},
}

// Platform returns the platform half of the variant.
func (v Variant) Platform() Platform {
	return variantParts[v].platform
}

// Type returns the format half of the variant.
func (v Variant) Type() ProcessingType {
	return variantParts[v].kind
}

// Valid reports whether v is one of the declared variants.
func (v Variant) Valid() bool {
	_, ok := variantParts[v]
	return ok
}

// String returns the underlying string value.
func (v Variant) String() string {
	return string(v)
}

// CombineTypes folds the processing types seen in a catalog into one value:
// the single type when all agree, TypeMixed otherwise, "" for none.
func CombineTypes(kinds []ProcessingType) ProcessingType {
	var out ProcessingType
	for _, k := range kinds {
		switch {
		case out == "":
			out = k
		case out != k:
			return TypeMixed
		}
	}
	return out
}

// AuxKind identifies the kind of auxiliary file.
type AuxKind string

// AuxKind values enumerate the auxiliary inputs of a correction run.
const (
	AuxCAMS AuxKind = "CAMS"
	AuxDTM  AuxKind = "DTM"
)

// DiagnosticLevel grades a diagnostic emitted during cataloging or scheduling.
type DiagnosticLevel string

const (
	DiagnosticError   DiagnosticLevel = "error"
	DiagnosticWarning DiagnosticLevel = "warning"
	DiagnosticInfo    DiagnosticLevel = "info"
)
