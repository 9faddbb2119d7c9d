/*
 * setup.go, part of goAPR.
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
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/Jeffail/tunny"
	"github.com/google/uuid"
	chem "github.com/rmera/goapr"
	"github.com/rmera/goapr/chemplot"
	"github.com/rmera/goapr/config"
	"github.com/rmera/goapr/restraint"
)

//PlotName is the file, in the directory of each system, with the attach schedule plot.
const PlotName = "apr-attach.png"

//Result is what Setup did for one system.
type Result struct {
	System  string
	RunID   string
	Set     *Set
	Windows []string
	//Files are the restraint files written, one per window.
	Files []string
}

//Build reads the structures of system and builds its restraints.
func Build(cfg *config.Config, system string) (*Set, error) {
	dir := cfg.SystemDir(system)
	mol, err := chem.StructureFileRead(filepath.Join(dir, cfg.Topology), filepath.Join(dir, cfg.Coordinates))
	if err != nil {
		return nil, err
	}
	ref, err := chem.StructureFileRead(filepath.Join(dir, cfg.Reference), "")
	if err != nil {
		return nil, err
	}
	anchors := DefaultAnchors().With(cfg.Anchors)
	if err := anchors.Check(); err != nil {
		return nil, err
	}
	w := Windows{
		AttachFractions:  cfg.AttachFractions,
		PullDistances:    cfg.PullDistances,
		ReleaseFractions: cfg.ReleaseFractions,
	}
	set := new(Set)
	set.Static, err = StaticRestraints(anchors, w.Counts(), ref, cfg.DistanceFC, cfg.AngleFC)
	if err != nil {
		return nil, err
	}
	log.Printf("%s: There are %d static restraints", system, len(set.Static))
	set.Guest, err = GuestRestraints(anchors, w, mol, cfg.DistanceFC, cfg.AngleFC, cfg.GuestTargets)
	if err != nil {
		return nil, err
	}
	log.Printf("%s: There are %d guest restraints", system, len(set.Guest))
	set.Conformational, err = ConformationalRestraints(cfg.Conformational, w, mol, cfg.HostResname)
	if err != nil {
		return nil, err
	}
	log.Printf("%s: There are %d conformational restraints", system, len(set.Conformational))
	targets := cfg.Wall.Targets
	if len(targets) == 0 {
		targets = WallTargets(system)
	}
	set.Wall, err = GuestWallRestraints(cfg.Wall, targets, anchors, mol, len(w.AttachFractions), cfg.HostResname)
	if err != nil {
		return nil, err
	}
	log.Printf("%s: There are %d guest wall restraints", system, len(set.Wall))
	return set, nil
}

//writeWindow writes the restraint file of one window.
func writeWindow(name string, restraints []*restraint.DAT, window string) (err error) {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	for _, r := range restraints {
		line, err := restraint.AmberLine(r, window)
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if _, err := w.WriteString(line); err != nil {
			return err
		}
	}
	return w.Flush()
}

//Setup builds the restraints of system and writes them to a restraint file in
//the directory of each window, under the directory of the system. The windows are
//those of the guest restraints. It also writes the plot and manifest, if the configuration
//asks for them.
func Setup(ctx context.Context, cfg *config.Config, system string) (*Result, error) {
	return setup(ctx, cfg, system, uuid.New().String())
}

func setup(ctx context.Context, cfg *config.Config, system, runID string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Printf("%s: There are %v windows in this attach-pull-release calculation", system, cfg.Windows())
	set, err := Build(cfg, system)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", system, err)
	}
	windows, err := restraint.WindowList(set.Guest)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", system, err)
	}
	//the other restraints must agree with the guest ones.
	if _, err := restraint.WindowList(set.All()); err != nil {
		return nil, fmt.Errorf("%s: %w", system, err)
	}
	res := &Result{System: system, RunID: runID, Set: set, Windows: windows, Files: make([]string, 0, len(windows))}
	dir := cfg.SystemDir(system)
	log.Printf("%s: Writing restraint file in each window (%d windows)", system, len(windows))
	for _, window := range windows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_, phase, err := restraint.ParseWindow(window)
		if err != nil {
			return nil, err
		}
		name := filepath.Join(dir, window, cfg.RestraintFile)
		if err := writeWindow(name, PhaseRestraints(set, phase), window); err != nil {
			return nil, fmt.Errorf("%s: window %s: %w", system, window, err)
		}
		res.Files = append(res.Files, name)
	}
	if cfg.Plot {
		err := chemplot.SchedulePlot(PhaseRestraints(set, restraint.Attach), restraint.Attach, system+" attach", filepath.Join(dir, PlotName))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", system, err)
		}
	}
	if cfg.Manifest {
		if err := NewManifest(res, cfg.RestraintFile).Write(dir); err != nil {
			return nil, fmt.Errorf("%s: %w", system, err)
		}
	}
	return res, nil
}

type outcome struct {
	res *Result
	err error
}

//Run sets up every system in cfg, using cfg.Workers systems at the same time. The results
//are returned in the order of cfg.Systems, nil for the systems that failed. The returned
//error joins the errors of all the systems that failed.
func Run(ctx context.Context, cfg *config.Config) ([]*Result, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	runID := uuid.New().String()
	log.Printf("Setting up %d systems with %d workers, run %s", len(cfg.Systems), cfg.Workers, runID)
	pool := tunny.NewFunc(cfg.Workers, func(payload interface{}) interface{} {
		res, err := setup(ctx, cfg, payload.(string), runID)
		return outcome{res, err}
	})
	defer pool.Close()

	results := make([]*Result, len(cfg.Systems))
	errs := make([]error, len(cfg.Systems))
	var wg sync.WaitGroup
	for i, system := range cfg.Systems {
		wg.Add(1)
		go func(i int, system string) {
			defer wg.Done()
			out, err := pool.ProcessCtx(ctx, system)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", system, err)
				return
			}
			o := out.(outcome)
			results[i], errs[i] = o.res, o.err
		}(i, system)
	}
	wg.Wait()
	return results, errors.Join(errs...)
}
