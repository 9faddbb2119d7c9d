/*
 * manifest.go, part of goAPR.
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
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rmera/goapr/restraint"
)

//ManifestName is the file, in the directory of each system, with the manifest.
const ManifestName = "apr-manifest.json"

//Manifest summarizes what was set up for a system.
type Manifest struct {
	RunID         string         `json:"run_id"`
	System        string         `json:"system"`
	Created       time.Time      `json:"created"`
	RestraintFile string         `json:"restraint_file"`
	Windows       []string       `json:"windows"`
	PhaseWindows  map[string]int `json:"phase_windows"`
	Restraints    map[string]int `json:"restraints"`
}

//NewManifest returns the manifest for res.
func NewManifest(res *Result, restraintFile string) *Manifest {
	m := &Manifest{
		RunID:         res.RunID,
		System:        res.System,
		Created:       time.Now().UTC(),
		RestraintFile: restraintFile,
		Windows:       res.Windows,
		PhaseWindows:  make(map[string]int, 3),
		Restraints:    res.Set.Counts(),
	}
	for _, w := range res.Windows {
		if _, p, err := restraint.ParseWindow(w); err == nil {
			m.PhaseWindows[string(p)]++
		}
	}
	return m
}

//Write writes the manifest, as indented JSON, to ManifestName in dir.
func (m *Manifest) Write(dir string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ManifestName), append(b, '\n'), 0o644)
}

//ReadManifest reads a manifest written by Write.
func ReadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := new(Manifest)
	if err := json.Unmarshal(b, m); err != nil {
		return nil, err
	}
	return m, nil
}
