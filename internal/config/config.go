// Package config handles loading and validation of the startmaja.yaml
// folders definition and the run options.
//
// The loading sequence is:
//  1. Read and parse the YAML file.
//  2. Load a .env file via godotenv (non-fatal if absent).
//  3. Apply STARTMAJA_* environment overrides with envconfig.
//  4. Validate the result with go-playground/validator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/dwsmith1983/startmaja/pkg/types"
)

// FileName is the folders definition looked up when Load is given a directory.
const FileName = "startmaja.yaml"

// EnvPrefix prefixes every environment override, e.g. STARTMAJA_L1.
const EnvPrefix = "STARTMAJA"

// ErrInvalidConfig is returned for configuration that fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// Load reads the folders definition at path. When path is a directory the
// file FileName inside it is used.
func Load(path string) (*types.ProjectConfig, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, FileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg types.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// godotenv does not override variables that are already set.
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, &cfg.Paths); err != nil {
		return nil, fmt.Errorf("processing environment overrides: %w", err)
	}

	if err := validateStruct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// validateStruct runs the struct validator and rewrites its errors as one
// line per failing field.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "dir":
		return fmt.Sprintf("%s is missing: %v", field, fe.Value())
	case "file":
		return fmt.Sprintf("%s is not a file: %v", field, fe.Value())
	case "datetime":
		return fmt.Sprintf("%s must be in format YYYY-MM-DD, got %v", field, fe.Value())
	case "min", "max":
		return fmt.Sprintf("%s must be %s %s, got %v", field, bound(fe.Tag()), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func bound(tag string) string {
	if tag == "min" {
		return "at least"
	}
	return "at most"
}

// fieldPath turns "ProjectConfig.Paths.Work" into "paths.work".
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, ".")
}
