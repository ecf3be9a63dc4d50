package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwsmith1983/startmaja/internal/testutil"
	"github.com/dwsmith1983/startmaja/pkg/types"
)

const tile = "31TCH"

func TestEnumerate_MatchesTileAndLevel(t *testing.T) {
	dir := t.TempDir()
	d1 := testutil.Day(2020, 1, 1)
	d2 := testutil.Day(2020, 1, 11)
	testutil.Products(t, dir,
		testutil.S2MuscateName(d2, types.LevelL1C, tile),
		testutil.S2MuscateName(d1, types.LevelL1C, tile),
		testutil.S2MuscateName(d1, types.LevelL2A, tile),
		testutil.S2MuscateName(d1, types.LevelL1C, "31TCJ"),
	)
	testutil.Touch(t, filepath.Join(dir, "notes.txt"))

	s := NewScanner("T"+tile, nil)
	got, err := s.Enumerate(dir, types.LevelL1C)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Date.Equal(d1))
	assert.True(t, got[1].Date.Equal(d2))
	for _, p := range got {
		assert.Equal(t, tile, p.Tile)
		assert.Equal(t, types.VariantSentinel2Muscate, p.Variant)
		assert.FileExists(t, p.Metadata)
	}

	l2, err := s.Enumerate(dir, types.LevelL2A)
	require.NoError(t, err)
	assert.Len(t, l2, 1)
}

func TestEnumerate_MissingDirectory(t *testing.T) {
	s := NewScanner(tile, nil)
	_, err := s.Enumerate(filepath.Join(t.TempDir(), "absent"), types.LevelL1C)
	assert.ErrorIs(t, err, ErrMissingDirectory)
}

func TestEnumerate_MissingMetadata(t *testing.T) {
	dir := t.TempDir()
	testutil.Mkdir(t, filepath.Join(dir, testutil.S2MuscateName(testutil.Day(2020, 1, 1), types.LevelL1C, tile)))

	_, err := NewScanner(tile, nil).Enumerate(dir, types.LevelL1C)
	assert.ErrorIs(t, err, ErrMissingMetadata)
}

func TestEnumerate_NatifPairIsOneProduct(t *testing.T) {
	dir := t.TempDir()
	name := testutil.L8NatifName(testutil.Day(2013, 6, 26), types.LevelL1C, "198030")
	testutil.Products(t, dir, name)

	got, err := NewScanner("198030", nil).Enumerate(dir, types.LevelL1C)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, name, got[0].Name)
	assert.Equal(t, "L8_TEST_L8C_L1VALD_198030_20130626.HDR", filepath.Base(got[0].Metadata))
}

func TestEnumerate_NatifWithoutHeader(t *testing.T) {
	dir := t.TempDir()
	testutil.Mkdir(t, filepath.Join(dir, testutil.L8NatifName(testutil.Day(2013, 6, 26), types.LevelL1C, "198030")))

	_, err := NewScanner("198030", nil).Enumerate(dir, types.LevelL1C)
	assert.ErrorIs(t, err, ErrMissingMetadata)
}

func TestEnumerate_UnrecognizedProduct(t *testing.T) {
	dir := t.TempDir()
	name := "SENTINEL2A_2020-01-01_L1C_T31TCH"
	testutil.Touch(t, filepath.Join(dir, name, name+"_MTD_ALL.xml"))

	_, err := NewScanner(tile, nil).Enumerate(dir, types.LevelL1C)
	assert.ErrorIs(t, err, ErrUnrecognizedProduct)
}

func TestInventory_SinglePlatform(t *testing.T) {
	l1 := t.TempDir()
	l2 := t.TempDir()
	testutil.Products(t, l1,
		testutil.S2MuscateName(testutil.Day(2020, 1, 1), types.LevelL1C, tile),
		testutil.S2SafeName(time.Date(2020, 1, 11, 10, 50, 0, 0, time.UTC), tile),
	)
	testutil.Products(t, l2, testutil.S2MuscateName(testutil.Day(2020, 1, 1), types.LevelL2A, tile))

	var diags types.Diagnostics
	_, err := NewScanner(tile, nil).Inventory(l1, l2, &diags)
	assert.ErrorIs(t, err, ErrMixedTypes)

	l1 = t.TempDir()
	testutil.Products(t, l1, testutil.S2MuscateName(testutil.Day(2020, 1, 1), types.LevelL1C, tile))
	inv, err := NewScanner(tile, nil).Inventory(l1, l2, &diags)
	require.NoError(t, err)
	assert.Equal(t, types.PlatformSentinel2, inv.Platform)
	assert.Equal(t, types.TypeMuscate, inv.Type)
	assert.Len(t, inv.L1, 1)
	assert.Len(t, inv.L2, 1)
	assert.Empty(t, diags)
}

func TestInventory_VenusMayMixTypes(t *testing.T) {
	l1 := t.TempDir()
	testutil.Products(t, l1,
		testutil.VenusMuscateName(time.Date(2018, 2, 1, 5, 13, 59, 0, time.UTC), types.LevelL1C, "KHUMBU"),
		testutil.VenusNatifName(testutil.Day(2018, 2, 3), types.LevelL1C, "KHUMBU"),
	)

	var diags types.Diagnostics
	inv, err := NewScanner("KHUMBU", nil).Inventory(l1, filepath.Join(l1, "absent"), &diags)
	require.NoError(t, err)
	assert.Equal(t, types.PlatformVenus, inv.Platform)
	assert.Equal(t, types.TypeMixed, inv.Type)
	require.Len(t, diags.Warnings(), 1)
	assert.Contains(t, diags[0].Message, "L2 directory")
}

func TestInventory_MultiplePlatforms(t *testing.T) {
	l1 := t.TempDir()
	testutil.Products(t, l1,
		testutil.S2MuscateName(testutil.Day(2020, 1, 1), types.LevelL1C, tile),
		"LANDSAT8_20200105-103532-111_L1C_T31TCH_C_V1-0",
	)

	var diags types.Diagnostics
	_, err := NewScanner(tile, nil).Inventory(l1, t.TempDir(), &diags)
	assert.ErrorIs(t, err, ErrMultiplePlatforms)
}

func TestInventory_L2OfOtherPlatform(t *testing.T) {
	l1 := t.TempDir()
	l2 := t.TempDir()
	testutil.Products(t, l1, testutil.S2MuscateName(testutil.Day(2020, 1, 1), types.LevelL1C, tile))
	testutil.Products(t, l2, "LANDSAT8_20200105-103532-111_L2A_T31TCH_C_V1-0")

	var diags types.Diagnostics
	_, err := NewScanner(tile, nil).Inventory(l1, l2, &diags)
	assert.ErrorIs(t, err, ErrMultiplePlatforms)
}

func TestInventory_NoL1Products(t *testing.T) {
	var diags types.Diagnostics
	_, err := NewScanner(tile, nil).Inventory(t.TempDir(), t.TempDir(), &diags)
	assert.ErrorIs(t, err, ErrNoProducts)
}

func TestInventory_EmptyL2IsWarning(t *testing.T) {
	l1 := t.TempDir()
	testutil.Products(t, l1, testutil.S2MuscateName(testutil.Day(2020, 1, 1), types.LevelL1C, tile))

	var diags types.Diagnostics
	inv, err := NewScanner(tile, nil).Inventory(l1, t.TempDir(), &diags)
	require.NoError(t, err)
	assert.Empty(t, inv.L2)
	assert.Len(t, diags.Warnings(), 1)
}

func TestDirs(t *testing.T) {
	repL1 := t.TempDir()
	repL2 := t.TempDir()
	testutil.Mkdir(t, filepath.Join(repL1, tile))
	testutil.Mkdir(t, filepath.Join(repL1, "SITE"))

	l1, l2, err := Dirs(repL1, repL2, "", tile, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(repL1, tile), l1)
	assert.Equal(t, filepath.Join(repL2, tile), l2)

	l1, _, err = Dirs(repL1, repL2, "SITE", tile, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(repL1, "SITE"), l1)

	in1 := t.TempDir()
	in2 := t.TempDir()
	l1, l2, err = Dirs(repL1, repL2, "", tile, []string{in1})
	require.NoError(t, err)
	assert.Equal(t, in1, l1)
	assert.Equal(t, filepath.Join(repL2, tile), l2)

	l1, l2, err = Dirs(repL1, repL2, "", tile, []string{in1, in2})
	require.NoError(t, err)
	assert.Equal(t, in1, l1)
	assert.Equal(t, in2, l2)

	_, _, err = Dirs(repL1, repL2, "", tile, []string{in1, in2, in1})
	assert.ErrorIs(t, err, ErrTooManyInputs)

	_, _, err = Dirs(repL1, repL2, "OTHER", tile, nil)
	assert.ErrorIs(t, err, ErrMissingDirectory)
}

func TestCAMS(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2020, 1, 11, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	testutil.CAMS(t, dir, start, end)
	testutil.CAMS(t, dir, start.Add(-10*24*time.Hour), end.Add(-10*24*time.Hour))
	testutil.Touch(t, filepath.Join(dir, "S2__TEST_EXO_CAMS_20200121T000000_20200122T000000.HDR"))

	var diags types.Diagnostics
	got, err := CAMS(dir, &diags)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Date.Before(got[1].Date))
	assert.True(t, got[1].Date.Equal(start))
	assert.True(t, got[1].End.Equal(end))
	for _, c := range got {
		assert.True(t, c.Complete())
		assert.Len(t, c.Files(), 2)
	}
	require.Len(t, diags.Warnings(), 1)
	assert.Contains(t, diags[0].Message, "incomplete")
}

func TestCAMS_RequiresThreeCharacterMission(t *testing.T) {
	dir := t.TempDir()
	stem := testutil.CAMS(t, dir, time.Date(2020, 1, 11, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 12, 0, 0, 0, 0, time.UTC))
	short := "S2_TEST_EXO_CAMS_20200121T000000_20200122T000000"
	testutil.Touch(t, filepath.Join(dir, short+".HDR"))
	testutil.Mkdir(t, filepath.Join(dir, short+".DBL.DIR"))

	var diags types.Diagnostics
	got, err := CAMS(dir, &diags)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, stem, got[0].Name)
	assert.Empty(t, diags)
}

func TestCAMS_MissingDirectory(t *testing.T) {
	var diags types.Diagnostics
	got, err := CAMS(filepath.Join(t.TempDir(), "absent"), &diags)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, diags.Warnings(), 1)

	diags = nil
	got, err = CAMS("", &diags)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, diags.Warnings(), 1)
}

func TestDTM_Folder(t *testing.T) {
	dir := t.TempDir()
	testutil.DTM(t, dir, tile)

	got, err := DTM(dir, "T"+tile)
	require.NoError(t, err)
	assert.Equal(t, types.AuxDTM, got.Kind)
	assert.Equal(t, "S2__TEST_AUX_REFDE2_T31TCH_0001", got.Name)
	assert.True(t, got.Complete())
}

func TestDTM_TopLevelFiles(t *testing.T) {
	dir := t.TempDir()
	testutil.Touch(t, filepath.Join(dir, "S2__TEST_AUX_REFDE2_T31TCH_0001.HDR"))
	testutil.Touch(t, filepath.Join(dir, "S2__TEST_AUX_REFDE2_T31TCH_0001.DBL"))

	got, err := DTM(dir, tile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "S2__TEST_AUX_REFDE2_T31TCH_0001.HDR"), got.HDR)
	assert.Len(t, got.DBL, 1)
}

func TestDTM_Missing(t *testing.T) {
	dir := t.TempDir()
	testutil.DTM(t, dir, "31TCJ")

	_, err := DTM(dir, tile)
	assert.ErrorIs(t, err, ErrMissingDTM)
}

func TestDTM_Incomplete(t *testing.T) {
	dir := t.TempDir()
	name := "S2__TEST_AUX_REFDE2_T31TCH_0001"
	testutil.Touch(t, filepath.Join(dir, name, name+".HDR"))

	_, err := DTM(dir, tile)
	assert.ErrorIs(t, err, ErrIncompleteAux)
}

func TestCheckGIPP(t *testing.T) {
	dir := t.TempDir()
	testutil.GIPP(t, dir)
	assert.NoError(t, CheckGIPP(dir))
	assert.Equal(t, GIPPCodes, testutil.GIPPCodes)

	partial := t.TempDir()
	testutil.GIPP(t, partial, "L2SMAC")
	err := CheckGIPP(partial)
	assert.ErrorIs(t, err, ErrMissingGIPP)
	assert.Contains(t, err.Error(), "L2SMAC")

	assert.ErrorIs(t, CheckGIPP(filepath.Join(dir, "absent")), ErrMissingGIPP)
}
