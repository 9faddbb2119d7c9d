/*
 * files.go, part of goAPR.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v3 "github.com/rmera/goapr/v3"
)

//PDB_read family

//Parses a valid ATOM or HETATM line of a PDB file, returns an Atom
//object with the info except for the coordinates, which are returned
//separately as an array of 3 float64.
func readPDBLine(line string, contlines int) (*Atom, [3]float64, error) {
	var coords [3]float64
	//Lines written by some programs are shorter than 80 chars.
	//We need at least up to the z coordinate.
	if len(line) < 54 {
		return nil, coords, FError{fmt.Sprintf("Line %d too short", contlines), "", "PDB", []string{"readPDBLine"}, true}
	}
	err := make([]error, 5) //accumulate errors to check at the end of the read line.
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.Id, err[0] = strconv.Atoi(strings.TrimSpace(line[6:11]))
	atom.Name = strings.TrimSpace(line[12:16])
	//PDB says that pos. 17 is for other thing but I see that is
	//used for residue name in many cases
	atom.Molname = strings.TrimSpace(line[17:21])
	atom.Chain = line[21]
	atom.Molid, err[1] = strconv.Atoi(strings.TrimSpace(line[22:26]))
	coords[0], err[2] = strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	coords[1], err[3] = strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	coords[2], err[4] = strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	for i := range err {
		if err[i] != nil {
			return nil, coords, FError{fmt.Sprintf("Line %d: %s", contlines, err[i].Error()), "", "PDB", []string{"strconv", "readPDBLine"}, true}
		}
	}
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
		if len(atom.Symbol) == 2 {
			atom.Symbol = atom.Symbol[:1] + strings.ToLower(atom.Symbol[1:])
		}
	}
	//This part tries to guess the symbol from the atom name, if it has not been read
	//No error checking here, just fills symbol with the empty string the function returns
	if atom.Symbol == "" {
		atom.Symbol, _ = symbolFromName(atom.Name)
	}
	if atom.Symbol != "" {
		atom.Mass, _ = massFromSymbol(atom.Symbol)
	}
	return atom, coords, nil
}

//readCryst1 reads the unit cell from a CRYST1 line. It returns nil if the
//line can't be parsed.
func readCryst1(line string) []float64 {
	f := strings.Fields(line)
	if len(f) < 7 {
		return nil
	}
	box := make([]float64, 6)
	for i := range box {
		var err error
		box[i], err = strconv.ParseFloat(f[i+1], 64)
		if err != nil {
			return nil
		}
	}
	return box
}

//PDBRead reads the first model of a PDB from r and returns it as a Molecule.
//Only ATOM, HETATM, CRYST1, ENDMDL and END records are considered.
func PDBRead(r io.Reader) (*Molecule, error) {
	molecule := make([]*Atom, 0, 100)
	coords := make([]float64, 0, 300)
	var box []float64
	pdb := bufio.NewReader(r)
	contlines := 0 //count the lines read to better report errors
	for {
		line, err := pdb.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, FError{err.Error(), "", "PDB", []string{"PDBRead"}, true}
		}
		contlines++
		if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
			at, c, err2 := readPDBLine(line, contlines)
			if err2 != nil {
				return nil, errDecorate(err2, "PDBRead")
			}
			molecule = append(molecule, at)
			coords = append(coords, c[:]...)
		} else if strings.HasPrefix(line, "CRYST1") {
			box = readCryst1(line)
		} else if strings.HasPrefix(line, "ENDMDL") || strings.HasPrefix(line, "END ") || strings.TrimSpace(line) == "END" {
			//we only read the first model.
			break
		}
		if err == io.EOF {
			break
		}
	}
	if len(molecule) == 0 {
		return nil, FError{"No atoms found", "", "PDB", []string{"PDBRead"}, true}
	}
	top, err := NewTopology(molecule)
	if err != nil {
		return nil, errDecorate(err, "PDBRead")
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, err
	}
	mol, err := NewMolecule([]*v3.Matrix{mcoords}, top)
	if err != nil {
		return nil, errDecorate(err, "PDBRead")
	}
	mol.Box = box
	return mol, nil
}

//PDBFileRead reads the PDB file pdbname, which can be gzip or zstd-compressed.
func PDBFileRead(pdbname string) (*Molecule, error) {
	f, err := OpenFile(pdbname)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead")
	}
	defer f.Close()
	mol, err := PDBRead(f)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead", pdbname)
	}
	return mol, nil
}

//End PDB_read family
