/*
 * config_test.go, part of goAPR.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Check())
	assert.Equal(t, [3]int{30, 0, 0}, c.Windows())
	assert.Equal(t, 0.0, c.AttachFractions[0])
	assert.InDelta(t, 1.0, c.AttachFractions[29], 1e-12)
	assert.Equal(t, filepath.Join("..", "a-coc-p"), c.SystemDir("a-coc-p"))
}

const testYAML = `
root: /data/apr
systems: [a-coc-p, b-coc-p]
attach_windows: 5
pull_distances: [6.0, 6.4, 6.8]
anchors:
  G2: ":COC@O2"
wall:
  targets: [10.0, 12.0, 70.0]
workers: 2
manifest: true
`

func TestLoadYAML(t *testing.T) {
	c, err := Load(writeTemp(t, "apr.yaml", testYAML))
	require.NoError(t, err)
	assert.Equal(t, "/data/apr", c.Root)
	assert.Equal(t, []string{"a-coc-p", "b-coc-p"}, c.Systems)
	assert.Equal(t, [3]int{5, 3, 0}, c.Windows())
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, c.AttachFractions)
	assert.Equal(t, ":COC@O2", c.Anchors["G2"])
	assert.Equal(t, []float64{10, 12, 70}, c.Wall.Targets)
	assert.Equal(t, 500.0, c.Wall.AngleFC)
	assert.Equal(t, 2, c.Workers)
	assert.True(t, c.Manifest)
	assert.False(t, c.Plot)
	//defaults
	assert.Equal(t, "smirnoff.prmtop", c.Topology)
	assert.Equal(t, "MGO", c.HostResname)
	assert.Equal(t, 6.0, c.Conformational.FC)
	assert.Len(t, c.Conformational.Template, 2)
}

const testTOML = `
root = "systems"
systems = ["b-coc-p"]
attach_fractions = [0.0, 0.1, 1.0]
release_fractions = [1.0, 0.5, 0.0]
distance_fc = 10.0
plot = true

[conformational]
template = [["O5", "C1", "O1", "C4"]]
targets = [100.0]
fc = 3.0
`

func TestLoadTOML(t *testing.T) {
	c, err := Load(writeTemp(t, "apr.toml", testTOML))
	require.NoError(t, err)
	assert.Equal(t, "systems", c.Root)
	assert.Equal(t, []string{"b-coc-p"}, c.Systems)
	assert.Equal(t, [3]int{3, 0, 3}, c.Windows())
	assert.Equal(t, 10.0, c.DistanceFC)
	assert.Equal(t, 100.0, c.AngleFC)
	assert.True(t, c.Plot)
	assert.Equal(t, [][]string{{"O5", "C1", "O1", "C4"}}, c.Conformational.Template)
	assert.Equal(t, []float64{100}, c.Conformational.Targets)
	assert.Equal(t, 3.0, c.Conformational.FC)
	assert.Equal(t, "disang.rest", c.RestraintFile)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeTemp(t, "apr.json", "{}"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = Load(writeTemp(t, "apr.yaml", "systems: [a, a]\n"))
	assert.ErrorIs(t, err, errCheck)
	_, err = Load(writeTemp(t, "apr.yaml", "root: [\n"))
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	cases := map[string]func(c *Config){
		"no root":          func(c *Config) { c.Root = "" },
		"no systems":       func(c *Config) { c.Systems = nil },
		"empty system":     func(c *Config) { c.Systems = []string{""} },
		"no reference":     func(c *Config) { c.Reference = "" },
		"no host":          func(c *Config) { c.HostResname = "" },
		"empty anchor":     func(c *Config) { c.Anchors = map[string]string{"D1": " "} },
		"no attach":        func(c *Config) { c.AttachFractions = nil },
		"attach fraction":  func(c *Config) { c.AttachFractions = []float64{0, 1.5} },
		"release fraction": func(c *Config) { c.ReleaseFractions = []float64{-0.1} },
		"zero fc":          func(c *Config) { c.Wall.AngleFC = 0 },
		"guest targets":    func(c *Config) { c.GuestTargets.Final = []float64{24} },
		"negative pull":    func(c *Config) { c.PullDistances = []float64{6, -1} },
		"template targets": func(c *Config) { c.Conformational.Targets = []float64{1} },
		"template atoms":   func(c *Config) { c.Conformational.Template[1] = []string{"C1"} },
		"wall targets":     func(c *Config) { c.Wall.Targets = []float64{1, 2} },
		"no workers":       func(c *Config) { c.Workers = 0 },
		"no wall atoms":    func(c *Config) { c.Wall.Atoms = nil },
	}
	for name, f := range cases {
		c := Default()
		f(c)
		assert.ErrorIs(t, c.Check(), errCheck, name)
	}
}

func TestFractions(t *testing.T) {
	assert.Nil(t, Fractions(0))
	assert.Equal(t, []float64{0}, Fractions(1))
	assert.Equal(t, []float64{0, 0.5, 1}, Fractions(3))
}
