/*
 * handy.go, part of goAPR.
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

package chem

import (
	"math"

	v3 "github.com/rmera/goapr/v3"
)

//Deg2Rad converts degrees to radians.
func Deg2Rad(f float64) float64 {
	return f * math.Pi / 180.0
}

//Rad2Deg converts radians to degrees.
func Rad2Deg(f float64) float64 {
	return f * 180.0 / math.Pi
}

//GroupCenter returns the center of mass of the atoms with indexes in list,
//taking the coordinates from coords and the masses from mol. If some of the atoms
//lack a mass, the geometric center is returned.
func GroupCenter(mol Atomer, coords *v3.Matrix, list []int) (*v3.Matrix, error) {
	if len(list) == 0 {
		return nil, CError{"Empty atom list", []string{"GroupCenter"}}
	}
	sel := v3.Zeros(len(list))
	if err := sel.SomeVecsSafe(coords, list); err != nil {
		return nil, CError{err.Error(), []string{"v3.SomeVecsSafe", "GroupCenter"}}
	}
	mass := make([]float64, len(list))
	for i, v := range list {
		mass[i] = mol.Atom(v).Mass
		if mass[i] == 0 {
			mass = nil
			break
		}
	}
	return CenterOfMass(sel, mass)
}
