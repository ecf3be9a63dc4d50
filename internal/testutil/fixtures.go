// Package testutil provides on-disk fixtures for startmaja tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dwsmith1983/startmaja/internal/naming"
	"github.com/dwsmith1983/startmaja/pkg/types"
)

// Touch creates an empty file, creating parent directories as needed.
func Touch(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
}

// Mkdir creates a directory and its parents.
func Mkdir(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
}

// Product lays out the product name under dir together with the metadata
// file its grammar requires and returns the product root.
func Product(t testing.TB, dir, name string) string {
	t.Helper()
	m, ok, err := naming.Classify(name)
	if err != nil || !ok {
		t.Fatalf("fixture name %q is not a product (ok=%v, err=%v)", name, ok, err)
	}
	root := filepath.Join(dir, name)
	rule := m.Metadata()
	if rule.Sibling {
		if strings.HasSuffix(name, ".HDR") {
			Touch(t, root)
			return root
		}
		Mkdir(t, root)
		Touch(t, filepath.Join(dir, rule.FileName(name)))
		return root
	}
	Mkdir(t, root)
	Touch(t, filepath.Join(root, rule.FileName(name)))
	return root
}

// Products lays out several products under dir.
func Products(t testing.TB, dir string, names ...string) {
	t.Helper()
	Mkdir(t, dir)
	for _, n := range names {
		Product(t, dir, n)
	}
}

// S2MuscateName builds a Sentinel-2 muscate product name.
func S2MuscateName(date time.Time, level types.Level, tile string) string {
	return fmt.Sprintf("SENTINEL2A_%s-%03d_%s_T%s_C_V1-0",
		date.Format("20060102-150405"), date.Nanosecond()/int(time.Millisecond), level, naming.NormalizeTile(tile))
}

// S2SafeName builds a Sentinel-2 SAFE Level-1C product name.
func S2SafeName(date time.Time, tile string) string {
	stamp := date.Format("20060102T150405")
	return fmt.Sprintf("S2A_MSIL1C_%s_N0204_R137_T%s_%s.SAFE", stamp, naming.NormalizeTile(tile), stamp)
}

// L8NatifName builds a Landsat-8 native product name.
func L8NatifName(date time.Time, level types.Level, tile string) string {
	return fmt.Sprintf("L8_TEST_L8C_L%sVALD_%s_%s.DBL.DIR", validToken(level), tile, date.Format("20060102"))
}

// VenusMuscateName builds a Venus muscate product name.
func VenusMuscateName(date time.Time, level types.Level, site string) string {
	return fmt.Sprintf("VENUS-XS_%s-%03d_%s_%s_C_V1-0",
		date.Format("20060102-150405"), date.Nanosecond()/int(time.Millisecond), level, site)
}

// VenusNatifName builds a Venus native product name.
func VenusNatifName(date time.Time, level types.Level, site string) string {
	return fmt.Sprintf("VE_TEST_VSC_L%sVALD_%s_%s.DBL.DIR", validToken(level), site, date.Format("20060102"))
}

func validToken(level types.Level) string {
	if level == types.LevelL2A {
		return "2"
	}
	return "1"
}

// CAMS creates a complete CAMS header and data pair and returns its stem.
func CAMS(t testing.TB, dir string, start, end time.Time) string {
	t.Helper()
	stem := fmt.Sprintf("S2__TEST_EXO_CAMS_%s_%s", start.Format("20060102T150405"), end.Format("20060102T150405"))
	Touch(t, filepath.Join(dir, stem+".HDR"))
	Mkdir(t, filepath.Join(dir, stem+".DBL.DIR"))
	return stem
}

// DTM creates a terrain model folder for tile inside dir and returns the
// folder path.
func DTM(t testing.TB, dir, tile string) string {
	t.Helper()
	name := fmt.Sprintf("S2__TEST_AUX_REFDE2_T%s_0001", naming.NormalizeTile(tile))
	root := filepath.Join(dir, name)
	Touch(t, filepath.Join(root, name+".HDR"))
	Mkdir(t, filepath.Join(root, name+".DBL.DIR"))
	return root
}

// GIPPCodes mirrors the parameter families the catalog checks for.
var GIPPCodes = []string{
	"L2ALBD", "L2DIFT", "L2DIRT", "L2TOCR", "L2WATV",
	"CKEXTL", "CKQLTL", "L2COMM", "L2SITE", "L2SMAC",
}

// GIPP creates one parameter file per code in dir, skipping the codes in omit.
func GIPP(t testing.TB, dir string, omit ...string) {
	t.Helper()
	Mkdir(t, dir)
	skip := make(map[string]bool, len(omit))
	for _, o := range omit {
		skip[o] = true
	}
	for _, code := range GIPPCodes {
		if skip[code] {
			continue
		}
		Touch(t, filepath.Join(dir, fmt.Sprintf("S2A_TEST_GIP_%s_L_ALLSITES_00001_20190626_21000101.HDR", code)))
	}
}

// Day returns noon UTC of the given calendar day.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}
