package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dwsmith1983/startmaja/internal/naming"
	"github.com/dwsmith1983/startmaja/pkg/types"
)

var camsPattern = regexp.MustCompile(`^(?P<stem>\w{3}_TEST_EXO_CAMS_(?P<start>\d{8}T\d{6})_(?P<end>\d{8}T\d{6}))\.(?P<ext>HDR|DBL|DBL\.DIR)$`)

const camsLayout = "20060102T150405"

// GIPPCodes lists the parameter families a GIPP directory must provide.
var GIPPCodes = []string{
	"L2ALBD", "L2DIFT", "L2DIRT", "L2TOCR", "L2WATV",
	"CKEXTL", "CKQLTL", "L2COMM", "L2SITE", "L2SMAC",
}

// CAMS lists the CAMS files of dir, keyed by their start date. Entries whose
// header or data file is missing are discarded with a warning. An empty or
// missing directory yields no files and a warning.
func CAMS(dir string, diags *types.Diagnostics) ([]types.AuxFile, error) {
	if dir == "" {
		diags.Warnf("no CAMS directory configured, processing without CAMS")
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			diags.Warnf("CAMS directory %s is missing, processing without CAMS", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("reading CAMS dir %s: %w", dir, err)
	}

	byStem := make(map[string]*types.AuxFile)
	var order []string
	for _, e := range entries {
		sub := camsPattern.FindStringSubmatch(e.Name())
		if sub == nil {
			continue
		}
		stem := sub[camsPattern.SubexpIndex("stem")]
		aux, ok := byStem[stem]
		if !ok {
			start, err := time.Parse(camsLayout, sub[camsPattern.SubexpIndex("start")])
			if err != nil {
				return nil, fmt.Errorf("parsing CAMS date of %s: %w", e.Name(), err)
			}
			end, err := time.Parse(camsLayout, sub[camsPattern.SubexpIndex("end")])
			if err != nil {
				return nil, fmt.Errorf("parsing CAMS date of %s: %w", e.Name(), err)
			}
			aux = &types.AuxFile{Kind: types.AuxCAMS, Name: stem, Date: start, End: end}
			byStem[stem] = aux
			order = append(order, stem)
		}
		path := filepath.Join(dir, e.Name())
		if sub[camsPattern.SubexpIndex("ext")] == "HDR" {
			aux.HDR = path
		} else {
			aux.DBL = append(aux.DBL, path)
		}
	}

	out := make([]types.AuxFile, 0, len(order))
	for _, stem := range order {
		aux := byStem[stem]
		if !aux.Complete() {
			diags.WarnAt(aux.Date, "discarding incomplete CAMS %s", stem)
			continue
		}
		out = append(out, *aux)
	}
	types.SortAux(out)
	return out, nil
}

// DTM locates the terrain model of tile in dir. The header and data files
// may lie directly in dir or inside a single folder named after the model.
func DTM(dir, tile string) (*types.AuxFile, error) {
	tile = naming.NormalizeTile(tile)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrMissingDTM, dir, err)
	}

	files := regexp.MustCompile(`^\w+_AUX_REFDE2_\w*` + regexp.QuoteMeta(tile) + `\w*\.(HDR|DBL|DBL\.DIR)$`)
	if aux := collectDTM(dir, entries, files); aux.HDR != "" && len(aux.DBL) > 0 && !aux.ambiguous {
		return &aux.AuxFile, nil
	}

	folder := regexp.MustCompile(`^\w+_AUX_REFDE2_\w*` + regexp.QuoteMeta(tile) + `\w+$`)
	var folders []string
	for _, e := range entries {
		if e.IsDir() && folder.MatchString(e.Name()) {
			folders = append(folders, e.Name())
		}
	}
	if len(folders) != 1 {
		return nil, fmt.Errorf("%w: found %d DTM folders for %s in %s", ErrMissingDTM, len(folders), tile, dir)
	}

	root := filepath.Join(dir, folders[0])
	inner, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrMissingDTM, root, err)
	}
	aux := collectDTM(root, inner, files)
	switch {
	case aux.HDR == "" || aux.ambiguous:
		return nil, fmt.Errorf("%w: expected exactly one .HDR for %s in %s", ErrMissingDTM, tile, root)
	case len(aux.DBL) == 0:
		return nil, fmt.Errorf("%w: DTM %s has no data file", ErrIncompleteAux, aux.Name)
	}
	return &aux.AuxFile, nil
}

type dtmCandidate struct {
	types.AuxFile
	ambiguous bool
}

func collectDTM(dir string, entries []fs.DirEntry, re *regexp.Regexp) dtmCandidate {
	var c dtmCandidate
	c.Kind = types.AuxDTM
	for _, e := range entries {
		name := e.Name()
		if !re.MatchString(name) {
			continue
		}
		path := filepath.Join(dir, name)
		if strings.HasSuffix(name, ".HDR") {
			if c.HDR != "" {
				c.ambiguous = true
			}
			c.HDR = path
			c.Name = naming.Stem(name)
			continue
		}
		c.DBL = append(c.DBL, path)
	}
	sort.Strings(c.DBL)
	return c
}

// CheckGIPP verifies that dir holds at least one file per GIPP code.
func CheckGIPP(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: cannot read GIPP dir %s: %v", ErrMissingGIPP, dir, err)
	}
	for _, code := range GIPPCodes {
		re := regexp.MustCompile(`\w+GIP_` + code + `\w+`)
		found := false
		for _, e := range entries {
			if re.MatchString(e.Name()) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: no %s file in %s", ErrMissingGIPP, code, dir)
		}
	}
	return nil
}
