/*
 * static.go, part of goAPR.
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

	chem "github.com/rmera/goapr"
	"github.com/rmera/goapr/mask"
	v3 "github.com/rmera/goapr/v3"
)

//Measure returns the distance, angle or dihedral (angles in degrees) between the centers
//of mass of the groups selected by masks on the first frame of mol.
func Measure(mol *chem.Molecule, masks []string) (float64, error) {
	if len(masks) < 2 || len(masks) > 4 {
		return 0, fmt.Errorf("%w: %d masks given, need 2 to 4", ErrMasks, len(masks))
	}
	centers := make([]*v3.Matrix, len(masks))
	for i, m := range masks {
		sel, err := mask.Select(mol, m)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrMasks, err)
		}
		if len(sel) == 0 {
			return 0, fmt.Errorf("%w: %q", ErrEmptySelection, m)
		}
		centers[i], err = chem.GroupCenter(mol, mol.Coord(), sel)
		if err != nil {
			return 0, err
		}
	}
	switch len(centers) {
	case 2:
		return chem.Distance(centers[0], centers[1]), nil
	case 3:
		return chem.Angle(centers[0], centers[1], centers[2]), nil
	}
	return chem.Dihedral(centers[0], centers[1], centers[2], centers[3]), nil
}

//Static returns an initialized restraint that keeps the groups given by masks at the
//value they have in the reference structure ref, with the force constant fc,
//in every phase that has windows. windows contains the number of attach, pull and
//release windows, in that order.
func Static(masks []string, windows [3]int, ref *chem.Molecule, fc float64, continuous, amberIndex bool) (*DAT, error) {
	target, err := Measure(ref, masks)
	if err != nil {
		return nil, fmt.Errorf("static restraint %v: %w", masks, err)
	}
	r := New()
	r.Topology = ref
	r.Masks = masks
	r.ContinuousAPR = continuous
	r.AmberIndex = amberIndex
	if windows[0] > 0 {
		r.Attach = AttachSpec{Target: Float(target), FCInitial: Float(fc), FCFinal: Float(fc), NumWindows: windows[0]}
	}
	if windows[1] > 0 {
		r.Pull = PullSpec{TargetInitial: Float(target), TargetFinal: Float(target), FC: Float(fc), NumWindows: windows[1]}
	}
	if windows[2] > 0 {
		r.Release = ReleaseSpec{Target: Float(target), FCInitial: Float(fc), FCFinal: Float(fc), NumWindows: windows[2]}
	}
	if err := r.Initialize(); err != nil {
		return nil, err
	}
	return r, nil
}
