/*
 * chem.go, part of goAPR.
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

	v3 "github.com/rmera/goapr/v3"
)

//Atom contains the information read for an atom, except for the coordinates,
//which are kept in a v3.Matrix.
type Atom struct {
	Name    string
	Id      int    //1-based serial, as in the input file.
	Type    string //Force-field atom type, if the topology provides one.
	Molname string //Residue name
	Molid   int    //Residue number as written in the file.
	Chain   byte
	Mass    float64
	Charge  float64
	Symbol  string
	Het     bool // is hetatm in the pdb file?
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	Newat := new(Atom)
	*Newat = *A
	return Newat
}

/*****Topology type***/

//Residue is a contiguous run of atoms sharing residue number, name and chain.
//Index is the 1-based sequential position of the residue in the topology,
//which is what AMBER masks refer to.
type Residue struct {
	Index int
	Molid int
	Name  string
	Chain byte
	Atoms []int
}

//Topology contains information about a molecule which is not expected to change in time (i.e. everything except for coordinates)
type Topology struct {
	Atoms    []*Atom
	residues []*Residue
}

//NewTopology returns a topology with the given atoms. It returns error
//if ats is nil.
func NewTopology(ats []*Atom) (*Topology, error) {
	if ats == nil {
		return nil, CError{"Supplied a nil Atom slice", []string{"NewTopology"}}
	}
	top := new(Topology)
	top.Atoms = ats
	return top, nil
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() || i < 0 {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Masses returns a slice with the masses of all atoms, and an error if any of them
//is missing.
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i := 0; i < T.Len(); i++ {
		thisatom := T.Atom(i)
		if thisatom.Mass == 0 {
			return nil, CError{fmt.Sprintf("Not all the masses have been obtained: %d %v", i, thisatom), []string{"Masses"}}
		}
		mass[i] = thisatom.Mass
	}
	return mass, nil
}

//Residues returns the residues of the topology, in order. The result is cached,
//so changes to the atoms after the first call are not reflected.
func (T *Topology) Residues() []*Residue {
	if T.residues != nil {
		return T.residues
	}
	T.residues = make([]*Residue, 0, 10)
	var curr *Residue
	for i, at := range T.Atoms {
		if curr == nil || at.Molid != curr.Molid || at.Molname != curr.Name || at.Chain != curr.Chain {
			curr = &Residue{Index: len(T.residues) + 1, Molid: at.Molid, Name: at.Molname, Chain: at.Chain}
			T.residues = append(T.residues, curr)
		}
		curr.Atoms = append(curr.Atoms, i)
	}
	return T.residues
}

/**Type Molecule**/

//Molecule contains a topology and one or more frames of coordinates. goAPR only
//ever uses the first one.
type Molecule struct {
	*Topology
	Coords []*v3.Matrix
	Box    []float64 //a, b, c, alpha, beta, gamma, or nil.
}

//NewMolecule makes a molecule with ats atoms and coords coordinates.
//It returns error if the number of atoms and coordinates don't match.
func NewMolecule(coords []*v3.Matrix, ats *Topology) (*Molecule, error) {
	if ats == nil || len(coords) == 0 {
		return nil, CError{"Supplied a nil topology or no coordinates", []string{"NewMolecule"}}
	}
	for i, c := range coords {
		if c.NVecs() != ats.Len() {
			return nil, CError{fmt.Sprintf("Mismatched number of atoms (%d) and coordinates (%d) in frame %d", ats.Len(), c.NVecs(), i), []string{"NewMolecule"}}
		}
	}
	return &Molecule{Topology: ats, Coords: coords}, nil
}

//Coord returns the coordinates of the first frame.
func (M *Molecule) Coord() *v3.Matrix {
	return M.Coords[0]
}
