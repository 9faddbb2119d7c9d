/*
 * schedule.go, part of goAPR.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

//linspace returns n evenly spaced values from l to u, both included.
func linspace(l, u float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{l}
	}
	return floats.Span(make([]float64, n), l, u)
}

//arangeTolerance is the relative slack allowed for the last value of arange
//to still count as reaching the end of the range.
const arangeTolerance = 1e-9

//arange returns the values l, l+step, l+2*step... up to u, included.
func arange(l, u, step float64) ([]float64, error) {
	if step == 0 || math.IsNaN(step) || (u-l)/step < 0 {
		return nil, fmt.Errorf("%w: can't go from %.4f to %.4f in steps of %.4f", ErrNoMethod, l, u, step)
	}
	n := int(math.Floor((u-l)/step+arangeTolerance)) + 1
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = l + float64(i)*step
	}
	return ret, nil
}

func scale(fracs []float64, f float64) []float64 {
	ret := make([]float64, len(fracs))
	copy(ret, fracs)
	floats.Scale(f, ret)
	return ret
}

func repeat(v float64, n int) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = v
	}
	return ret
}

func orZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

//schedule computes the force constants of the attach or release phase. The target
//is the one in the specification or, if that is not set, fallback.
func (a *AttachSpec) schedule(phase Phase, fallback *float64) (*Schedule, error) {
	if a.unset() {
		return nil, nil
	}
	var fcs []float64
	var err error
	switch {
	case a.NumWindows > 0 && a.FCFinal != nil:
		fcs = linspace(orZero(a.FCInitial), *a.FCFinal, a.NumWindows)
	case a.FCIncrement != nil && a.FCFinal != nil:
		fcs, err = arange(orZero(a.FCInitial), *a.FCFinal, *a.FCIncrement)
	case a.FractionList != nil && a.FCFinal != nil:
		fcs = scale(a.FractionList, *a.FCFinal)
	case a.FractionIncrement != nil && a.FCFinal != nil:
		var fracs []float64
		fracs, err = arange(0, 1, *a.FractionIncrement)
		fcs = scale(fracs, *a.FCFinal)
	case a.FCList != nil:
		fcs = append([]float64(nil), a.FCList...)
	default:
		return nil, fmt.Errorf("%s: %w", phase, ErrNoMethod)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", phase, err)
	}
	if len(fcs) == 0 {
		return nil, fmt.Errorf("%s: %w: no windows", phase, ErrNoMethod)
	}
	target := a.Target
	if target == nil {
		target = fallback
	}
	if target == nil {
		return nil, fmt.Errorf("%s: %w", phase, ErrNoTarget)
	}
	return &Schedule{ForceConstants: fcs, Targets: repeat(*target, len(fcs))}, nil
}

//schedule computes the targets of the pull phase. attach provides the default
//initial target and force constant.
func (p *PullSpec) schedule(attach *AttachSpec) (*Schedule, error) {
	if p.unset() {
		return nil, nil
	}
	var targets []float64
	var err error
	initial := p.TargetInitial
	if initial == nil {
		initial = attach.Target
	}
	switch {
	case p.NumWindows > 0 && p.TargetFinal != nil:
		if initial == nil {
			return nil, fmt.Errorf("%s: %w: no initial target", Pull, ErrNoTarget)
		}
		targets = linspace(*initial, *p.TargetFinal, p.NumWindows)
	case p.TargetIncrement != nil && p.TargetFinal != nil:
		if initial == nil {
			return nil, fmt.Errorf("%s: %w: no initial target", Pull, ErrNoTarget)
		}
		targets, err = arange(*initial, *p.TargetFinal, *p.TargetIncrement)
	case p.FractionList != nil && p.TargetFinal != nil:
		targets = scale(p.FractionList, *p.TargetFinal)
	case p.FractionIncrement != nil && p.TargetFinal != nil:
		var fracs []float64
		fracs, err = arange(0, 1, *p.FractionIncrement)
		targets = scale(fracs, *p.TargetFinal)
	case p.TargetList != nil:
		targets = append([]float64(nil), p.TargetList...)
	default:
		return nil, fmt.Errorf("%s: %w", Pull, ErrNoMethod)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Pull, err)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%s: %w: no windows", Pull, ErrNoMethod)
	}
	fc := p.FC
	if fc == nil {
		fc = attach.FCFinal
	}
	if fc == nil {
		return nil, fmt.Errorf("%s: force constant not set", Pull)
	}
	return &Schedule{ForceConstants: repeat(*fc, len(targets)), Targets: targets}, nil
}
