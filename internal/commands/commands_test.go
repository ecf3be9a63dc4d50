package commands

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwsmith1983/startmaja/internal/alert"
	"github.com/dwsmith1983/startmaja/internal/catalog"
	"github.com/dwsmith1983/startmaja/internal/config"
	"github.com/dwsmith1983/startmaja/internal/report"
	"github.com/dwsmith1983/startmaja/internal/schedule"
	"github.com/dwsmith1983/startmaja/internal/testutil"
	"github.com/dwsmith1983/startmaja/pkg/types"
)

const tile = "31TCH"

type project struct {
	root, l1, l2, cams, gipp, dtm string
}

// newProject lays out a folders definition with three Level-1 products ten
// days apart and empty Level-2, CAMS, GIPP and DTM directories.
func newProject(t *testing.T) project {
	t.Helper()
	root := t.TempDir()
	p := project{
		root: root,
		l1:   filepath.Join(root, "l1c", tile),
		l2:   filepath.Join(root, "l2a", tile),
		cams: filepath.Join(root, "cams"),
		gipp: filepath.Join(root, "gipp"),
		dtm:  filepath.Join(root, "dtm"),
	}
	testutil.Mkdir(t, filepath.Join(root, "work"))
	testutil.Touch(t, filepath.Join(root, "maja"))
	testutil.Mkdir(t, p.l2)
	testutil.Mkdir(t, p.cams)
	testutil.Mkdir(t, p.dtm)
	testutil.GIPP(t, p.gipp)
	testutil.Products(t, p.l1,
		testutil.S2MuscateName(testutil.Day(2020, 1, 1), types.LevelL1C, tile),
		testutil.S2MuscateName(testutil.Day(2020, 1, 11), types.LevelL1C, tile),
		testutil.S2MuscateName(testutil.Day(2020, 1, 21), types.LevelL1C, tile),
	)

	yaml := "paths:\n" +
		"  work: " + filepath.Join(root, "work") + "\n" +
		"  l1: " + filepath.Join(root, "l1c") + "\n" +
		"  l2: " + filepath.Join(root, "l2a") + "\n" +
		"  exe: " + filepath.Join(root, "maja") + "\n" +
		"  cams: " + p.cams + "\n" +
		"  gipp: " + p.gipp + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte(yaml), 0o644))
	return p
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func planJSON(t *testing.T, args ...string) report.Document {
	t.Helper()
	out, _, err := execute(t, NewPlanCmd(), append(args, "--json")...)
	require.NoError(t, err)
	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	return doc
}

func modes(doc report.Document) []types.Mode {
	var out []types.Mode
	for _, e := range doc.Workplans {
		out = append(out, e.Mode)
	}
	return out
}

func TestPlan_Table(t *testing.T) {
	p := newProject(t)

	out, stderr, err := execute(t, NewPlanCmd(), "--tile", tile, "--config", p.root, "--nbackward", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, types.TableHeader, lines[0])
	assert.Contains(t, lines[1], "20200101 | 31TCH | BACKWARD")
	assert.True(t, strings.HasSuffix(lines[1], "NBACKWARD=3"))
	assert.Contains(t, lines[2], "20200111 | 31TCH |  NOMINAL")
	assert.True(t, strings.HasSuffix(lines[2], "PREV=20200101"))
	assert.Contains(t, lines[3], "20200121 | 31TCH |  NOMINAL")

	assert.Contains(t, stderr, "no DTM directory configured")
	assert.Contains(t, stderr, "plan ready")
}

func TestPlan_JSON(t *testing.T) {
	p := newProject(t)
	testutil.DTM(t, p.dtm, tile)

	doc := planJSON(t, "--tile", "T31TCH", "--config", p.root, "--nbackward", "2", "--dtm", p.dtm)

	assert.Len(t, doc.RunID, 26)
	assert.Equal(t, tile, doc.Tile)
	assert.Equal(t, types.PlatformSentinel2, doc.Platform)
	assert.Equal(t, types.TypeMuscate, doc.Type)
	assert.Equal(t, []types.Mode{types.ModeBackward, types.ModeNominal, types.ModeNominal}, modes(doc))
	assert.Len(t, doc.Workplans[0].Inputs, 3)
	for _, e := range doc.Workplans {
		assert.NotEmpty(t, e.DTM)
	}
	assert.NotEmpty(t, doc.Diagnostics.Warnings())
}

func TestPlan_SkipsExistingL2(t *testing.T) {
	p := newProject(t)
	l2 := testutil.S2MuscateName(testutil.Day(2020, 1, 11), types.LevelL2A, tile)
	testutil.Product(t, p.l2, l2)

	doc := planJSON(t, "--tile", tile, "--config", p.root, "--nbackward", "2")
	assert.Equal(t, []types.Mode{types.ModeBackward, types.ModeNominal}, modes(doc))
	assert.Equal(t, []string{testutil.S2MuscateName(testutil.Day(2020, 1, 11), types.LevelL1C, tile)}, doc.Skipped)
	assert.Equal(t, filepath.Join(p.l2, l2), doc.Workplans[1].L2)

	doc = planJSON(t, "--tile", tile, "--config", p.root, "--nbackward", "2", "--overwrite")
	assert.Len(t, doc.Workplans, 3)
	assert.Empty(t, doc.Skipped)
}

func TestPlan_AttachesCAMS(t *testing.T) {
	p := newProject(t)
	stem := testutil.CAMS(t, p.cams,
		time.Date(2020, 1, 11, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 12, 0, 0, 0, 0, time.UTC))

	doc := planJSON(t, "--tile", tile, "--config", p.root, "--nbackward", "2")
	require.Len(t, doc.Workplans, 3)
	// The backward window covers the CAMS day and claims it first.
	assert.Equal(t, []string{stem}, doc.Workplans[0].CAMS)
	assert.Empty(t, doc.Workplans[1].CAMS)
}

func TestPlan_DiagnosticsFile(t *testing.T) {
	p := newProject(t)
	path := filepath.Join(t.TempDir(), "diagnostics.jsonl")

	_, _, err := execute(t, NewPlanCmd(), "--tile", tile, "--config", p.root, "--diagnostics-file", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	var records []alert.Record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r alert.Record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		records = append(records, r)
	}
	require.NotEmpty(t, records)
	runID := records[0].RunID
	assert.Len(t, runID, 26)
	for _, r := range records {
		assert.Equal(t, runID, r.RunID)
		assert.Equal(t, tile, r.Tile)
	}
}

func TestPlan_Failures(t *testing.T) {
	p := newProject(t)

	tests := []struct {
		name  string
		setup func(t *testing.T) []string
		want  error
	}{
		{
			name:  "start after last product",
			setup: func(*testing.T) []string { return []string{"--start", "2021-01-01"} },
			want:  schedule.ErrInfeasible,
		},
		{
			name:  "bad date format",
			setup: func(*testing.T) []string { return []string{"--start", "2020/01/01"} },
			want:  config.ErrInvalidConfig,
		},
		{
			name:  "start after end",
			setup: func(*testing.T) []string { return []string{"--start", "2020-02-01", "--end", "2020-01-01"} },
			want:  config.ErrInvalidConfig,
		},
		{
			name:  "too many inputs",
			setup: func(*testing.T) []string { return []string{"--input", "a,b,c"} },
			want:  config.ErrInvalidConfig,
		},
		{
			name: "incomplete gipp",
			setup: func(t *testing.T) []string {
				dir := filepath.Join(t.TempDir(), "gipp")
				testutil.GIPP(t, dir, "L2SMAC")
				return []string{"--gipp", dir}
			},
			want: catalog.ErrMissingGIPP,
		},
		{
			name:  "missing dtm",
			setup: func(*testing.T) []string { return []string{"--dtm", p.dtm} },
			want:  catalog.ErrMissingDTM,
		},
		{
			name:  "missing l1 input",
			setup: func(*testing.T) []string { return []string{"--input", filepath.Join(p.root, "absent")} },
			want:  catalog.ErrMissingDirectory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--tile", tile, "--config", p.root}, tt.setup(t)...)
			_, _, err := execute(t, NewPlanCmd(), args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPlan_InputOverride(t *testing.T) {
	p := newProject(t)
	other := filepath.Join(t.TempDir(), "elsewhere")
	testutil.Products(t, other, testutil.S2MuscateName(testutil.Day(2020, 3, 1), types.LevelL1C, tile))

	doc := planJSON(t, "--tile", tile, "--config", p.root, "--input", other)
	require.Len(t, doc.Workplans, 1)
	assert.Equal(t, types.ModeInit, doc.Workplans[0].Mode)
}

func TestPlan_RequiresTile(t *testing.T) {
	p := newProject(t)
	_, _, err := execute(t, NewPlanCmd(), "--config", p.root)
	assert.ErrorContains(t, err, "tile")
}

func TestPlan_ShortFlags(t *testing.T) {
	p := newProject(t)
	testutil.DTM(t, p.dtm, tile)

	out, _, err := execute(t, NewPlanCmd(),
		"-t", tile, "-f", filepath.Join(p.root, config.FileName),
		"-d", "2020-01-05", "-e", "2020-01-15", "-g", p.gipp, "-m", p.dtm, "--json")
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Workplans, 1)
	assert.True(t, doc.Workplans[0].Date.Equal(testutil.Day(2020, 1, 11)))
	assert.NotEmpty(t, doc.Workplans[0].DTM)
}

func TestProducts_ReportsDiagnostics(t *testing.T) {
	p := newProject(t)

	_, stderr, err := execute(t, NewProductsCmd(), "--tile", tile, "--config", p.root)
	require.NoError(t, err)
	assert.Contains(t, stderr, "[WARN] no L2 products found in "+p.l2)
}

func TestProducts(t *testing.T) {
	p := newProject(t)
	testutil.Product(t, p.l2, testutil.S2MuscateName(testutil.Day(2020, 1, 1), types.LevelL2A, tile))

	out, _, err := execute(t, NewProductsCmd(), "--tile", tile, "--config", p.root)
	require.NoError(t, err)
	assert.Contains(t, out, "Platform: sentinel2 (muscate)")
	assert.Contains(t, out, "L1 products (3):")
	assert.Contains(t, out, "L2 products (1):")

	out, _, err = execute(t, NewProductsCmd(), "--tile", tile, "--config", p.root, "--json")
	require.NoError(t, err)
	var inv catalog.Inventory
	require.NoError(t, json.Unmarshal([]byte(out), &inv))
	assert.Len(t, inv.L1, 3)
	assert.Len(t, inv.L2, 1)
}

func TestClassify(t *testing.T) {
	name := testutil.S2MuscateName(testutil.Day(2020, 1, 1), types.LevelL1C, tile)

	out, _, err := execute(t, NewClassifyCmd(), "/some/dir/"+name, "notes.txt")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], name+"  "))
	assert.Contains(t, lines[0], "platform=sentinel2 type=muscate level=L1C tile=31TCH")
	assert.Contains(t, lines[0], "date=2020-01-01T12:00:00Z")
	assert.Equal(t, "notes.txt  no match", lines[1])

	out, _, err = execute(t, NewClassifyCmd(), "--tile", "31TCJ", name)
	require.NoError(t, err)
	assert.Contains(t, out, "no match")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, NewVersionCmd("1.2.3"))
	require.NoError(t, err)
	assert.Equal(t, "startmaja 1.2.3\n", out)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "json", true)
	require.NoError(t, err)
	logger.Debug("hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])

	buf.Reset()
	logger, err = newLogger(&buf, "text", false)
	require.NoError(t, err)
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	_, err = newLogger(&buf, "xml", false)
	assert.Error(t, err)
}
