/*
 * dat.go, part of goAPR.
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

package restraint

import (
	"errors"
	"fmt"
	"math"

	chem "github.com/rmera/goapr"
	"github.com/rmera/goapr/mask"
)

//Phase is one of the three stages of an APR calculation.
type Phase string

const (
	Attach  Phase = "attach"
	Pull    Phase = "pull"
	Release Phase = "release"
)

//Phases lists the APR phases in the order they are run.
var Phases = []Phase{Attach, Pull, Release}

//Prefix returns the letter that starts the window names of the phase.
func (p Phase) Prefix() byte {
	return string(p)[0]
}

var (
	ErrMasks          = errors.New("invalid restraint masks")
	ErrEmptySelection = errors.New("mask selects no atoms")
	ErrNoMethod       = errors.New("restraint input did not match one of the supported methods")
	ErrNoTarget       = errors.New("restraint target not set")
	ErrNotContinuous  = errors.New("phases are not continuous")
	ErrCustomKey      = errors.New("unknown custom restraint value")
)

//Float returns a pointer to v. It is a shorthand to fill the optional fields of the
//phase specifications.
func Float(v float64) *float64 {
	return &v
}

//AttachSpec specifies the schedule of the attach or the release phase. A nil pointer,
//nil slice or zero NumWindows means "not set". The supported combinations are, in
//order of precedence:
//
//	NumWindows and FCFinal: FCInitial (or 0) to FCFinal, evenly spaced.
//	FCIncrement and FCFinal: FCInitial (or 0) to FCFinal, in FCIncrement steps.
//	FractionList and FCFinal: each fraction times FCFinal.
//	FractionIncrement and FCFinal: fractions from 0 to 1 in FractionIncrement steps, times FCFinal.
//	FCList: the given force constants.
//
//If nothing is set, the restraint is not active in the phase.
type AttachSpec struct {
	Target            *float64
	FCInitial         *float64
	FCFinal           *float64
	NumWindows        int
	FCIncrement       *float64
	FractionIncrement *float64
	FractionList      []float64
	FCList            []float64
}

func (a *AttachSpec) unset() bool {
	return a.Target == nil && a.FCInitial == nil && a.FCFinal == nil && a.NumWindows == 0 &&
		a.FCIncrement == nil && a.FractionIncrement == nil && a.FractionList == nil && a.FCList == nil
}

//ReleaseSpec specifies the schedule of the release phase, in the same way as AttachSpec.
type ReleaseSpec = AttachSpec

//PullSpec specifies the schedule of the pull phase. The supported combinations are, in order of precedence:
//
//	NumWindows and TargetFinal: TargetInitial (or the attach target) to TargetFinal, evenly spaced.
//	TargetIncrement and TargetFinal: TargetInitial (or the attach target) to TargetFinal in TargetIncrement steps.
//	FractionList and TargetFinal: each fraction times TargetFinal.
//	FractionIncrement and TargetFinal: fractions from 0 to 1 in FractionIncrement steps, times TargetFinal.
//	TargetList: the given targets.
//
//The force constant is FC or, if not set, the final attach force constant.
type PullSpec struct {
	FC                *float64
	TargetInitial     *float64
	TargetFinal       *float64
	NumWindows        int
	TargetIncrement   *float64
	FractionIncrement *float64
	FractionList      []float64
	TargetList        []float64
}

func (p *PullSpec) unset() bool {
	return p.FC == nil && p.TargetInitial == nil && p.TargetFinal == nil && p.NumWindows == 0 &&
		p.TargetIncrement == nil && p.FractionIncrement == nil && p.FractionList == nil && p.TargetList == nil
}

//Schedule contains the force constant and target of a restraint in each window of a phase.
type Schedule struct {
	ForceConstants []float64
	Targets        []float64
}

//Windows returns the number of windows in the schedule. A nil schedule has 0.
func (s *Schedule) Windows() int {
	if s == nil {
		return 0
	}
	return len(s.Targets)
}

//The keys that can be given in DAT.Custom
var customKeys = []string{"r1", "r2", "r3", "r4", "rk2", "rk3"}

//DAT is a distance, angle or torsion restraint.
type DAT struct {
	//Topology is used to resolve the masks.
	Topology chem.Residuer
	//Masks has 2 (distance), 3 (angle) or 4 (torsion) AMBER masks.
	//A mask selecting more than one atom acts on the center of mass of the group.
	Masks []string
	//Indexes are the atoms selected by each mask, filled by Initialize.
	Indexes [][]int
	//AutoAPR fills the force constant and initial target of the pull phase from the attach
	//specification, and the target and final force constant of the release phase from the
	//pull and attach ones. Only phases with something set are filled.
	AutoAPR bool
	//ContinuousAPR means that the last attach window is the same as the first pull
	//window, and the last pull window the same as the first release one.
	ContinuousAPR bool
	//AmberIndex stores 1-based atom indexes, as AMBER expects.
	AmberIndex bool
	//Custom overrides the r1, r2, r3, r4, rk2 and rk3 values written to the
	//AMBER restraint file, in all windows.
	Custom  map[string]float64
	Attach  AttachSpec
	Pull    PullSpec
	Release ReleaseSpec
	//Phase has the computed schedules, filled by Initialize. Inactive phases have nil schedules.
	Phase map[Phase]*Schedule
}

//New returns an empty restraint with ContinuousAPR set.
func New() *DAT {
	return &DAT{ContinuousAPR: true, Custom: make(map[string]float64)}
}

//Kind returns "distance", "angle" or "torsion" depending on the number of masks.
func (r *DAT) Kind() string {
	switch len(r.Masks) {
	case 2:
		return "distance"
	case 3:
		return "angle"
	case 4:
		return "torsion"
	}
	return "invalid"
}

//String returns the masks of the restraint, joined by dashes.
func (r *DAT) String() string {
	s := ""
	for i, m := range r.Masks {
		if i > 0 {
			s += " - "
		}
		s += m
	}
	return fmt.Sprintf("%s %s", r.Kind(), s)
}

//Windows returns the number of windows the restraint has in the phase p.
//It is only meaningful after Initialize.
func (r *DAT) Windows(p Phase) int {
	return r.Phase[p].Windows()
}

//resolve fills r.Indexes from the masks.
func (r *DAT) resolve() error {
	if r.Topology == nil {
		return fmt.Errorf("%w: no topology to resolve them", ErrMasks)
	}
	if len(r.Masks) < 2 || len(r.Masks) > 4 {
		return fmt.Errorf("%w: %d masks given, need 2 to 4", ErrMasks, len(r.Masks))
	}
	r.Indexes = make([][]int, len(r.Masks))
	for i, m := range r.Masks {
		if m == "" {
			return fmt.Errorf("%w: mask %d is empty", ErrMasks, i+1)
		}
		sel, err := mask.Select(r.Topology, m)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMasks, err)
		}
		if len(sel) == 0 {
			return fmt.Errorf("%w: %q", ErrEmptySelection, m)
		}
		if r.AmberIndex {
			for j := range sel {
				sel[j]++
			}
		}
		r.Indexes[i] = sel
	}
	return nil
}

//Initialize resolves the masks and computes the schedules for the three phases.
//It must be called after the specification is complete and before the restraint is used.
func (r *DAT) Initialize() error {
	if err := r.resolve(); err != nil {
		return err
	}
	for k := range r.Custom {
		if !isIn(customKeys, k) {
			return fmt.Errorf("%w: %q", ErrCustomKey, k)
		}
	}
	if r.AutoAPR {
		//only phases that were requested get filled.
		if !r.Pull.unset() {
			r.Pull.FC = r.Attach.FCFinal
			r.Pull.TargetInitial = r.Attach.Target
		}
		if !r.Release.unset() {
			r.Release.Target = r.Pull.TargetFinal
			r.Release.FCFinal = r.Attach.FCFinal
		}
	}
	r.Phase = make(map[Phase]*Schedule, 3)
	var err error
	r.Phase[Attach], err = r.Attach.schedule(Attach, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", r, err)
	}
	r.Phase[Pull], err = r.Pull.schedule(&r.Attach)
	if err != nil {
		return fmt.Errorf("%s: %w", r, err)
	}
	fallback := r.Pull.TargetFinal
	if fallback == nil {
		fallback = r.Attach.Target
	}
	r.Phase[Release], err = r.Release.schedule(Release, fallback)
	if err != nil {
		return fmt.Errorf("%s: %w", r, err)
	}
	if r.ContinuousAPR {
		if err := r.checkContinuity(); err != nil {
			return fmt.Errorf("%s: %w", r, err)
		}
	}
	return nil
}

const continuityTolerance = 1e-6

//checkContinuity verifies that, when phases follow each other, the target where one
//ends is the one where the next begins.
func (r *DAT) checkContinuity() error {
	a, p, rel := r.Phase[Attach], r.Phase[Pull], r.Phase[Release]
	if a.Windows() > 0 && p.Windows() > 0 {
		if math.Abs(a.Targets[len(a.Targets)-1]-p.Targets[0]) > continuityTolerance {
			return fmt.Errorf("%w: last attach target %.4f differs from first pull target %.4f", ErrNotContinuous, a.Targets[len(a.Targets)-1], p.Targets[0])
		}
	}
	if p.Windows() > 0 && rel.Windows() > 0 {
		if math.Abs(p.Targets[len(p.Targets)-1]-rel.Targets[0]) > continuityTolerance {
			return fmt.Errorf("%w: last pull target %.4f differs from release target %.4f", ErrNotContinuous, p.Targets[len(p.Targets)-1], rel.Targets[0])
		}
	}
	return nil
}

func isIn(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
