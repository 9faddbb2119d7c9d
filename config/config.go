/*
 * config.go, part of goAPR.
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

// Package config contains the parameters of an APR restraint setup. They can
// be read from a YAML or a TOML file, and any field that is not given takes
// the value from Default.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"
)

// Targets are the values of the guest restraints (the D1-G1 distance, and the
// D2-D1-G1 and D1-G1-G2 angles) at the beginning and at the end of the pull.
type Targets struct {
	Initial []float64 `yaml:"initial" toml:"initial"`
	Final   []float64 `yaml:"final" toml:"final"`
}

// Conformational are the parameters of the torsion restraints that keep the
// host in shape. Template contains 4 atom names per torsion, the first torsion
// spans one residue and the first atom of the next one, the others two atoms
// of each residue.
type Conformational struct {
	Template [][]string `yaml:"template" toml:"template"`
	Targets  []float64  `yaml:"targets" toml:"targets"`
	FC       float64    `yaml:"fc" toml:"fc"`
}

// Wall are the parameters of the restraints that keep the guest from leaving
// the host cavity during the attach phase.
type Wall struct {
	// Atoms are the names of the host atoms, in each host residue, that
	// get a distance wall to the G1 anchor.
	Atoms      []string  `yaml:"atoms" toml:"atoms"`
	// Targets are the distance walls, one per atom in Atoms, followed by
	// the D2-G1-G2 angle wall. If empty, they are chosen from the system name.
	Targets    []float64 `yaml:"targets" toml:"targets"`
	DistanceFC float64   `yaml:"distance_fc" toml:"distance_fc"`
	AngleFC    float64   `yaml:"angle_fc" toml:"angle_fc"`
}

// Config is a structure containing the parameters specified in the
// configuration file. It can be instanced through Load or Default, or by
// hand, in which case the Check method should be used.
type Config struct {
	// Root is the directory that contains one directory per system.
	Root    string   `yaml:"root" toml:"root"`
	Systems []string `yaml:"systems" toml:"systems"`

	// Topology, Coordinates and Reference are file names relative to the
	// directory of each system. The reference structure is the one static
	// restraints are measured on.
	Topology      string `yaml:"topology" toml:"topology"`
	Coordinates   string `yaml:"coordinates" toml:"coordinates"`
	Reference     string `yaml:"reference" toml:"reference"`
	RestraintFile string `yaml:"restraint_file" toml:"restraint_file"`

	HostResname string `yaml:"host_resname" toml:"host_resname"`

	// Anchors replace the default anchor masks with the same label.
	Anchors map[string]string `yaml:"anchors" toml:"anchors"`

	// AttachFractions are the fractions of the full force constant in each
	// attach window. If not given, AttachWindows evenly spaced fractions
	// from 0 to 1 are used.
	AttachFractions []float64 `yaml:"attach_fractions" toml:"attach_fractions"`
	AttachWindows   int       `yaml:"attach_windows" toml:"attach_windows"`

	// PullDistances are the D1-G1 targets in each pull window. No pull
	// phase is set up if empty.
	PullDistances []float64 `yaml:"pull_distances" toml:"pull_distances"`

	// ReleaseFractions are the fractions of the full host force constants
	// in each release window. No release phase is set up if empty.
	ReleaseFractions []float64 `yaml:"release_fractions" toml:"release_fractions"`

	// DistanceFC and AngleFC are used by the static and guest restraints.
	DistanceFC float64 `yaml:"distance_fc" toml:"distance_fc"`
	AngleFC    float64 `yaml:"angle_fc" toml:"angle_fc"`

	GuestTargets   Targets        `yaml:"guest_targets" toml:"guest_targets"`
	Conformational Conformational `yaml:"conformational" toml:"conformational"`
	Wall           Wall           `yaml:"wall" toml:"wall"`

	// Workers is the number of systems set up at the same time.
	Workers int `yaml:"workers" toml:"workers"`

	// Plot writes a PNG with the attach schedule of each system.
	Plot bool `yaml:"plot" toml:"plot"`

	// Manifest writes a JSON summary of each system.
	Manifest bool `yaml:"manifest" toml:"manifest"`
}

// Default returns the parameters for an alpha-cyclodextrin host with a
// cyclooctanol guest, in 30 attach windows.
func Default() *Config {
	return &Config{
		Root:            "..",
		Systems:         []string{"a-coc-p"},
		Topology:        "smirnoff.prmtop",
		Coordinates:     "smirnoff.inpcrd",
		Reference:       "smirnoff.pdb",
		RestraintFile:   "disang.rest",
		HostResname:     "MGO",
		AttachWindows:   30,
		AttachFractions: Fractions(30),
		DistanceFC:      5,
		AngleFC:         100,
		GuestTargets: Targets{
			Initial: []float64{6, 180, 180},
			Final:   []float64{24, 180, 180},
		},
		Conformational: Conformational{
			Template: [][]string{{"O5", "C1", "O1", "C4"}, {"C1", "O1", "C4", "C5"}},
			Targets:  []float64{104.30, -108.8},
			FC:       6,
		},
		Wall: Wall{
			Atoms:      []string{"O2", "O6"},
			DistanceFC: 50,
			AngleFC:    500,
		},
		Workers: 1,
	}
}

// Fractions returns n evenly spaced values from 0 to 1.
func Fractions(n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{0}
	}
	return floats.Span(make([]float64, n), 0, 1)
}

// Load opens and decodes the configuration file path, which must be a YAML
// (.yaml, .yml) or TOML (.toml) file. Fields missing from the file take their
// default values. This method automatically calls Check.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c Config
	r := bufio.NewReader(f)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(r).Decode(&c)
	case ".toml":
		err = toml.NewDecoder(r).Decode(&c)
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	c.fill()
	err = c.Check()
	if err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}
	return &c, nil
}

// fill replaces the zero-valued fields with the defaults.
func (c *Config) fill() {
	d := Default()
	str := func(s *string, def string) {
		if *s == "" {
			*s = def
		}
	}
	num := func(f *float64, def float64) {
		if *f == 0 {
			*f = def
		}
	}
	str(&c.Root, d.Root)
	str(&c.Topology, d.Topology)
	str(&c.Coordinates, d.Coordinates)
	str(&c.Reference, d.Reference)
	str(&c.RestraintFile, d.RestraintFile)
	str(&c.HostResname, d.HostResname)
	if len(c.Systems) == 0 {
		c.Systems = d.Systems
	}
	if len(c.AttachFractions) == 0 {
		if c.AttachWindows == 0 {
			c.AttachWindows = d.AttachWindows
		}
		c.AttachFractions = Fractions(c.AttachWindows)
	} else {
		c.AttachWindows = len(c.AttachFractions)
	}
	num(&c.DistanceFC, d.DistanceFC)
	num(&c.AngleFC, d.AngleFC)
	if len(c.GuestTargets.Initial) == 0 {
		c.GuestTargets.Initial = d.GuestTargets.Initial
	}
	if len(c.GuestTargets.Final) == 0 {
		c.GuestTargets.Final = d.GuestTargets.Final
	}
	if len(c.Conformational.Template) == 0 {
		c.Conformational.Template = d.Conformational.Template
		if len(c.Conformational.Targets) == 0 {
			c.Conformational.Targets = d.Conformational.Targets
		}
	}
	num(&c.Conformational.FC, d.Conformational.FC)
	if len(c.Wall.Atoms) == 0 {
		c.Wall.Atoms = d.Wall.Atoms
	}
	num(&c.Wall.DistanceFC, d.Wall.DistanceFC)
	num(&c.Wall.AngleFC, d.Wall.AngleFC)
	if c.Workers == 0 {
		c.Workers = d.Workers
	}
}

// Windows returns the number of attach, pull and release windows.
func (c *Config) Windows() [3]int {
	return [3]int{len(c.AttachFractions), len(c.PullDistances), len(c.ReleaseFractions)}
}

// SystemDir returns the directory of the given system.
func (c *Config) SystemDir(system string) string {
	return filepath.Join(c.Root, system)
}

var errCheck = errors.New("invalid configuration")

func checkFractions(name string, fr []float64) error {
	for i, v := range fr {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s[%d] = %v is not between 0 and 1", errCheck, name, i, v)
		}
	}
	return nil
}

// Check checks if Config is correct. It returns an error if a field doesn't
// meet the requirements.
func (c *Config) Check() error {
	if c.Root == "" {
		return fmt.Errorf("%w: Root cannot be empty", errCheck)
	}
	if len(c.Systems) == 0 {
		return fmt.Errorf("%w: no systems given", errCheck)
	}
	seen := make(map[string]bool, len(c.Systems))
	for _, s := range c.Systems {
		if s == "" || seen[s] {
			return fmt.Errorf("%w: empty or repeated system %q", errCheck, s)
		}
		seen[s] = true
	}
	if c.Topology == "" || c.Coordinates == "" || c.Reference == "" || c.RestraintFile == "" {
		return fmt.Errorf("%w: Topology, Coordinates, Reference and RestraintFile must be given", errCheck)
	}
	if c.HostResname == "" {
		return fmt.Errorf("%w: HostResname cannot be empty", errCheck)
	}
	for k, v := range c.Anchors {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: empty mask for anchor %s", errCheck, k)
		}
	}
	if len(c.AttachFractions) == 0 {
		return fmt.Errorf("%w: there must be at least one attach window", errCheck)
	}
	if err := checkFractions("AttachFractions", c.AttachFractions); err != nil {
		return err
	}
	if err := checkFractions("ReleaseFractions", c.ReleaseFractions); err != nil {
		return err
	}
	if c.DistanceFC <= 0 || c.AngleFC <= 0 || c.Conformational.FC <= 0 || c.Wall.DistanceFC <= 0 || c.Wall.AngleFC <= 0 {
		return fmt.Errorf("%w: force constants must be greater than 0", errCheck)
	}
	if len(c.GuestTargets.Initial) != 3 || len(c.GuestTargets.Final) != 3 {
		return fmt.Errorf("%w: the guest targets need 3 initial and 3 final values", errCheck)
	}
	for i, v := range c.PullDistances {
		if v < 0 {
			return fmt.Errorf("%w: PullDistances[%d] = %v is negative", errCheck, i, v)
		}
	}
	if len(c.Conformational.Template) != len(c.Conformational.Targets) {
		return fmt.Errorf("%w: %d conformational templates but %d targets", errCheck, len(c.Conformational.Template), len(c.Conformational.Targets))
	}
	for i, t := range c.Conformational.Template {
		if len(t) != 4 {
			return fmt.Errorf("%w: conformational template %d has %d atoms, need 4", errCheck, i, len(t))
		}
	}
	if len(c.Wall.Atoms) == 0 {
		return fmt.Errorf("%w: no wall atoms given", errCheck)
	}
	if len(c.Wall.Targets) != 0 && len(c.Wall.Targets) != len(c.Wall.Atoms)+1 {
		return fmt.Errorf("%w: the wall needs %d targets, %d given", errCheck, len(c.Wall.Atoms)+1, len(c.Wall.Targets))
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: Workers must be at least 1", errCheck)
	}
	return nil
}
