package catalog

import "errors"

var (
	// ErrMissingDirectory is returned when a required product directory does not exist.
	ErrMissingDirectory = errors.New("missing directory")
	// ErrNoProducts is returned when no Level-1 product is found for the tile.
	ErrNoProducts = errors.New("no products found")
	// ErrMultiplePlatforms is returned when products of two platforms share a catalog.
	ErrMultiplePlatforms = errors.New("products for multiple platforms found")
	// ErrMixedTypes is returned when Level-1 products of one platform mix
	// format families where only Venus allows it.
	ErrMixedTypes = errors.New("mixed processing types")
	// ErrMissingMetadata is returned when a matched product lacks its metadata file.
	ErrMissingMetadata = errors.New("missing metadata file")
	// ErrUnrecognizedProduct is returned for a directory that carries product
	// metadata but whose name matches no grammar.
	ErrUnrecognizedProduct = errors.New("unrecognized product")
	// ErrTooManyInputs is returned when more than two input directories are given.
	ErrTooManyInputs = errors.New("more than two input directories given")
	// ErrIncompleteAux is returned when an auxiliary header has no data file.
	ErrIncompleteAux = errors.New("incomplete auxiliary file")
	// ErrMissingDTM is returned when no terrain model is found for the tile.
	ErrMissingDTM = errors.New("missing DTM")
	// ErrMissingGIPP is returned when the parameter directory lacks a required file.
	ErrMissingGIPP = errors.New("missing GIPP file")
)
