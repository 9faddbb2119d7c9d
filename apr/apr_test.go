/*
 * apr_test.go, part of goAPR.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package apr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/goapr"
	"github.com/rmera/goapr/config"
	"github.com/rmera/goapr/restraint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testData = "../test/a-coc-p"

var testFiles = []string{"smirnoff.prmtop", "smirnoff.inpcrd", "smirnoff.pdb"}

//testConfig copies the test system to a temporary root, once per name in systems,
//and returns the default configuration for it.
func testConfig(t *testing.T, systems ...string) *config.Config {
	root := t.TempDir()
	for _, s := range systems {
		require.NoError(t, os.MkdirAll(filepath.Join(root, s), 0o755))
		for _, f := range testFiles {
			b, err := os.ReadFile(filepath.Join(testData, f))
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(filepath.Join(root, s, f), b, 0o644))
		}
	}
	cfg := config.Default()
	cfg.Root = root
	cfg.Systems = systems
	return cfg
}

func readLines(t *testing.T, name string) []string {
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}

func TestAnchors(t *testing.T) {
	a := DefaultAnchors()
	require.NoError(t, a.Check())
	b := a.With(map[string]string{"G2": ":COC@O2"})
	assert.Equal(t, ":COC@O2", b["G2"])
	assert.Equal(t, ":COC@O1", a["G2"])
	assert.Error(t, a.With(map[string]string{"G3": ":1"}).Check())
	delete(b, "D3")
	assert.Error(t, b.Check())
}

func TestBuilders(t *testing.T) {
	cfg := testConfig(t, "a-coc-p")
	set, err := Build(cfg, "a-coc-p")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"static": 6, "guest": 3, "conformational": 12, "wall": 13}, set.Counts())

	assert.Equal(t, []string{":8", ":1@O3"}, set.Static[0].Masks)
	assert.Equal(t, []string{":8", ":1@O3", ":3@C1", ":5@C6"}, set.Static[5].Masks)
	assert.Equal(t, []string{":9", ":8", ":COC@C1"}, set.Guest[1].Masks)
	assert.Equal(t, []string{":1@O5", ":1@C1", ":1@O1", ":2@C4"}, set.Conformational[0].Masks)
	assert.Equal(t, []string{":1@C1", ":1@O1", ":2@C4", ":2@C5"}, set.Conformational[1].Masks)
	assert.Equal(t, []string{":6@O5", ":6@C1", ":6@O1", ":1@C4"}, set.Conformational[10].Masks)
	assert.Equal(t, []string{":6@C1", ":6@O1", ":1@C4", ":1@C5"}, set.Conformational[11].Masks)
	assert.Equal(t, []string{":1@O2", ":COC@C1"}, set.Wall[0].Masks)
	assert.Equal(t, []string{":1@O6", ":COC@C1"}, set.Wall[1].Masks)
	assert.Equal(t, []string{":9", ":COC@C1", ":COC@O1"}, set.Wall[12].Masks)

	for _, r := range set.All() {
		assert.Equal(t, 30, r.Windows(restraint.Attach), r.String())
		assert.Zero(t, r.Windows(restraint.Pull), r.String())
	}
	assert.Equal(t, 6.0, set.Guest[0].Phase[restraint.Attach].Targets[0])
	assert.Equal(t, 0.0, set.Guest[0].Phase[restraint.Attach].ForceConstants[0])
	assert.InDelta(t, 100.0, set.Guest[2].Phase[restraint.Attach].ForceConstants[29], 1e-10)
	assert.Equal(t, 104.30, set.Conformational[0].Phase[restraint.Attach].Targets[5])
	assert.Equal(t, 50.0, set.Wall[3].Phase[restraint.Attach].ForceConstants[0])
}

func TestWallTargets(t *testing.T) {
	assert.Equal(t, []float64{11.3, 13.3, 80.0}, WallTargets("a-coc-p"))
	assert.Equal(t, []float64{12.5, 14.5, 80.0}, WallTargets("b-coc-p"))
	top, err := chem.PrmtopFileRead(filepath.Join(testData, "smirnoff.prmtop"))
	require.NoError(t, err)
	_, err = GuestWallRestraints(config.Default().Wall, []float64{1, 2}, DefaultAnchors(), top, 3, "MGO")
	assert.Error(t, err)
	_, err = GuestWallRestraints(config.Default().Wall, WallTargets("a"), DefaultAnchors(), top, 3, "BCD")
	assert.Error(t, err)
}

func TestPhaseRestraints(t *testing.T) {
	d := func(m string) *restraint.DAT { return &restraint.DAT{Masks: []string{m, m}} }
	s, g, c, w := d("s"), d("g"), d("c"), d("w")
	set := &Set{Static: []*restraint.DAT{s}, Guest: []*restraint.DAT{g}, Conformational: []*restraint.DAT{c}, Wall: []*restraint.DAT{w}}
	assert.Equal(t, []*restraint.DAT{s, g, c, w}, PhaseRestraints(set, restraint.Attach))
	assert.Equal(t, []*restraint.DAT{s, c, g}, PhaseRestraints(set, restraint.Pull))
	assert.Equal(t, []*restraint.DAT{s, c, g}, PhaseRestraints(set, restraint.Release))
}

func TestSetup(t *testing.T) {
	cfg := testConfig(t, "a-coc-p")
	cfg.Manifest = true
	cfg.Plot = true
	res, err := Setup(context.Background(), cfg, "a-coc-p")
	require.NoError(t, err)
	//the last attach window is the first pull one, so it is not written.
	require.Len(t, res.Windows, 29)
	assert.Equal(t, "a000", res.Windows[0])
	assert.Equal(t, "a028", res.Windows[28])
	require.Len(t, res.Files, 29)
	_, err = os.Stat(filepath.Join(cfg.SystemDir("a-coc-p"), "a029"))
	assert.True(t, os.IsNotExist(err))

	dir := cfg.SystemDir("a-coc-p")
	lines := readLines(t, filepath.Join(dir, "a000", "disang.rest"))
	require.Len(t, lines, 34)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "&rst iat= "), l)
		assert.True(t, strings.HasSuffix(l, " &end"), l)
	}
	//static D1-H1 distance and D1-H1-H2-H3 torsion, measured on the reference.
	assert.Equal(t, "&rst iat= 57,7,            r1=     0.0000, r2=     6.0109, r3=     6.0109, r4=   999.0000, rk2=   5.0000, rk3=   5.0000, &end", lines[0])
	assert.Equal(t, "&rst iat= 57,7,19,40,      r1=  -104.9319, r2=    75.0681, r3=    75.0681, r4=   255.0681, rk2= 100.0000, rk3= 100.0000, &end", lines[5])
	//guest distance, at fraction 0.
	assert.True(t, strings.HasPrefix(lines[6], "&rst iat= 57,55, "), lines[6])
	assert.Contains(t, lines[6], "r2=     6.0000,")
	assert.Contains(t, lines[6], "rk2=   0.0000,")
	//first wall.
	assert.True(t, strings.HasPrefix(lines[21], "&rst iat= 6,55, "), lines[21])
	assert.Contains(t, lines[21], "r1=     0.0000, r2=     0.0000, r3=    11.3000, r4=   999.0000, rk2=  50.0000, rk3=  50.0000,")
	//angle wall.
	assert.Contains(t, lines[33], "r1=     0.0000, r2=    80.0000, r3=    80.0000, r4=   180.0000, rk2= 500.0000, rk3=   0.0000,")

	last := readLines(t, filepath.Join(dir, "a028", "disang.rest"))
	assert.Contains(t, last[6], "rk2=   4.8276,")

	m, err := ReadManifest(filepath.Join(dir, ManifestName))
	require.NoError(t, err)
	assert.Equal(t, res.RunID, m.RunID)
	assert.Equal(t, "a-coc-p", m.System)
	assert.Equal(t, map[string]int{"attach": 29}, m.PhaseWindows)
	assert.Equal(t, 13, m.Restraints["wall"])
	assert.Len(t, m.Windows, 29)

	info, err := os.Stat(filepath.Join(dir, PlotName))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSetupPullRelease(t *testing.T) {
	cfg := testConfig(t, "a-coc-p")
	cfg.AttachFractions = config.Fractions(5)
	cfg.PullDistances = []float64{6, 8, 10}
	cfg.ReleaseFractions = []float64{1, 0.5, 0}
	require.NoError(t, cfg.Check())
	res, err := Setup(context.Background(), cfg, "a-coc-p")
	require.NoError(t, err)
	assert.Equal(t, []string{"a000", "a001", "a002", "a003", "p000", "p001", "p002", "r001", "r002"}, res.Windows)

	dir := cfg.SystemDir("a-coc-p")
	pull := readLines(t, filepath.Join(dir, "p002", "disang.rest"))
	require.Len(t, pull, 21)
	//static, conformational, then guest.
	assert.Contains(t, pull[18], "r2=    10.0000,")
	assert.Contains(t, pull[18], "rk2=   5.0000,")

	rel := readLines(t, filepath.Join(dir, "r001", "disang.rest"))
	require.Len(t, rel, 21)
	assert.Contains(t, rel[6], "rk2=   3.0000,")
	assert.Contains(t, rel[18], "r2=    10.0000,")

	_, err = os.Stat(filepath.Join(dir, "r000"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "a004"))
	assert.True(t, os.IsNotExist(err))
}

func TestSetupErrors(t *testing.T) {
	cfg := testConfig(t, "a-coc-p")
	_, err := Setup(context.Background(), cfg, "b-coc-p")
	assert.Error(t, err)

	cfg.Anchors = map[string]string{"G1": ":COC@C9"}
	_, err = Setup(context.Background(), cfg, "a-coc-p")
	assert.ErrorIs(t, err, restraint.ErrEmptySelection)

	cfg = testConfig(t, "a-coc-p")
	cfg.PullDistances = []float64{7, 8}
	_, err = Setup(context.Background(), cfg, "a-coc-p")
	assert.ErrorIs(t, err, restraint.ErrNotContinuous)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Setup(ctx, testConfig(t, "a-coc-p"), "a-coc-p")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun(t *testing.T) {
	cfg := testConfig(t, "a-coc-p", "b-coc-p")
	cfg.Workers = 2
	cfg.AttachFractions = config.Fractions(4)
	results, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a-coc-p", results[0].System)
	assert.Equal(t, "b-coc-p", results[1].System)
	assert.Equal(t, results[0].RunID, results[1].RunID)

	lines := readLines(t, filepath.Join(cfg.SystemDir("b-coc-p"), "a002", "disang.rest"))
	assert.Contains(t, lines[21], "r3=    12.5000,")

	cfg.Systems = []string{"a-coc-p", "c-coc-p"}
	results, err = Run(context.Background(), cfg)
	assert.Error(t, err)
	assert.NotNil(t, results[0])
	assert.Nil(t, results[1])

	cfg.Workers = 0
	_, err = Run(context.Background(), cfg)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, context.Canceled))
}
