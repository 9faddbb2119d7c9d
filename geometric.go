/*
 * geometric.go, part of goAPR.
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
	"fmt"
	"math"

	v3 "github.com/rmera/goapr/v3"
	"gonum.org/v1/gonum/floats"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//CenterOfMass returns the center of mass the atoms represented by the coordinates in geometry
//and the masses in mass, and an error. If mass is nil, or its elements add up to zero,
//it calculates the geometric center.
func CenterOfMass(geometry *v3.Matrix, mass []float64) (*v3.Matrix, error) {
	if geometry == nil {
		return nil, CError{"nil matrix to get the center of mass", []string{"CenterOfMass"}}
	}
	gr := geometry.NVecs()
	if gr == 0 {
		return nil, CError{"empty matrix to get the center of mass", []string{"CenterOfMass"}}
	}
	if mass != nil && len(mass) != gr {
		return nil, CError{fmt.Sprintf("%d masses for %d coordinates", len(mass), gr), []string{"CenterOfMass"}}
	}
	if mass == nil || floats.Sum(mass) <= appzero {
		mass = make([]float64, gr)
		for i := range mass {
			mass[i] = 1
		}
	}
	total := floats.Sum(mass)
	ref := v3.Zeros(1)
	for i := 0; i < gr; i++ {
		for j := 0; j < 3; j++ {
			ref.Set(0, j, ref.At(0, j)+mass[i]*geometry.At(i, j))
		}
	}
	ref.Scale(1.0/total, ref)
	return ref, nil
}

//Distance returns the distance between the 1x3 matrices a and b.
func Distance(a, b *v3.Matrix) float64 {
	d := v3.Zeros(1)
	d.Sub(a, b)
	return d.Norm2()
}

//vecAngle takes 2 vectors and calculate the angle in radians between them
//It does not check for correctness or return errors!
func vecAngle(v1, v2 *v3.Matrix) float64 {
	normproduct := v1.Norm2() * v2.Norm2()
	dotprod := v1.Dot(v2)
	argument := dotprod / normproduct
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

//Angle returns the angle, in degrees, formed by the points a, b and c, with
//the vertex in b.
func Angle(a, b, c *v3.Matrix) float64 {
	ba := v3.Zeros(1)
	bc := v3.Zeros(1)
	ba.Sub(a, b)
	bc.Sub(c, b)
	return Rad2Deg(vecAngle(ba, bc))
}

//Dihedral calculate the dihedral, in degrees, between the points a, b, c, d, where the first plane
//is defined by abc and the second by bcd. The sign follows the IUPAC convention.
func Dihedral(a, b, c, d *v3.Matrix) float64 {
	all := []*v3.Matrix{a, b, c, d}
	for number, point := range all {
		if point == nil {
			panic(fmt.Sprintf("Vector %d is nil", number))
		}
		if point.NVecs() != 1 {
			panic(fmt.Sprintf("Vector %d has invalid shape", number))
		}
	}
	//bma=b minus a
	bma := v3.Zeros(1)
	cmb := v3.Zeros(1)
	dmc := v3.Zeros(1)
	bmascaled := v3.Zeros(1)
	bma.Sub(b, a)
	cmb.Sub(c, b)
	dmc.Sub(d, c)
	bmascaled.Scale(cmb.Norm2(), bma)
	first := bmascaled.Dot(v3.Cross(cmb, dmc))
	v1 := v3.Cross(bma, cmb)
	v2 := v3.Cross(cmb, dmc)
	second := v1.Dot(v2)
	dihedral := math.Atan2(first, second)
	return Rad2Deg(dihedral)
}
