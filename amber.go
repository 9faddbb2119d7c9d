/*
 * amber.go, part of goAPR.
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
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	v3 "github.com/rmera/goapr/v3"
)

//AmberChargeUnit is the factor by which the charges in an AMBER topology
//are multiplied (sqrt of the Coulomb constant in kcal*A/mol/e^2).
const AmberChargeUnit = 18.2223

//The pointers we use from the POINTERS section of an AMBER topology.
const (
	ptrNatom = 0
	ptrNres  = 11
)

var formatRe = regexp.MustCompile(`^\s*(\d*)\s*([aAiIeEfF])\s*(\d+)(?:\.(\d+))?\s*$`)

//fortranFormat is the part of a FORTRAN format statement that matters to us:
//how many fields per line, of which kind and how wide.
type fortranFormat struct {
	perline int
	kind    byte
	width   int
}

func parseFormat(s string) (fortranFormat, error) {
	var f fortranFormat
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "%FORMAT")
	s = strings.Trim(s, "() \n\r")
	m := formatRe.FindStringSubmatch(s)
	if m == nil {
		return f, fmt.Errorf("unknown format %q", s)
	}
	f.perline = 1
	if m[1] != "" {
		f.perline, _ = strconv.Atoi(m[1])
	}
	f.kind = strings.ToLower(m[2])[0]
	f.width, _ = strconv.Atoi(m[3])
	if f.width <= 0 {
		return f, fmt.Errorf("zero width in format %q", s)
	}
	return f, nil
}

//prmtopSection holds the raw lines under one %FLAG.
type prmtopSection struct {
	format fortranFormat
	lines  []string
}

//fields splits the lines of the section in fixed-width fields.
func (p *prmtopSection) fields() []string {
	ret := make([]string, 0, len(p.lines)*p.format.perline)
	w := p.format.width
	for _, l := range p.lines {
		l = strings.TrimRight(l, "\r\n")
		for i := 0; i < len(l); i += w {
			end := i + w
			if end > len(l) {
				end = len(l)
			}
			field := l[i:end]
			if strings.TrimSpace(field) == "" && p.format.kind != 'a' {
				continue
			}
			ret = append(ret, field)
		}
	}
	return ret
}

func (p *prmtopSection) words() []string {
	f := p.fields()
	for i, v := range f {
		f[i] = strings.TrimSpace(v)
	}
	return f
}

func (p *prmtopSection) ints() ([]int, error) {
	f := p.fields()
	ret := make([]int, len(f))
	var err error
	for i, v := range f {
		ret[i], err = strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func (p *prmtopSection) floats() ([]float64, error) {
	f := p.fields()
	ret := make([]float64, len(f))
	var err error
	for i, v := range f {
		//Some old programs write FORTRAN-style D exponents.
		ret[i], err = strconv.ParseFloat(strings.Replace(strings.TrimSpace(v), "D", "E", 1), 64)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

//readPrmtopSections reads all the %FLAG sections of an AMBER7 topology.
func readPrmtopSections(r io.Reader) (map[string]*prmtopSection, error) {
	sections := make(map[string]*prmtopSection)
	var curr *prmtopSection
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 1024), 1024*1024)
	contlines := 0
	for s.Scan() {
		contlines++
		line := s.Text()
		switch {
		case strings.HasPrefix(line, "%VERSION"), strings.HasPrefix(line, "%COMMENT"):
			continue
		case strings.HasPrefix(line, "%FLAG"):
			f := strings.Fields(line)
			if len(f) < 2 {
				return nil, FError{fmt.Sprintf("Line %d: %%FLAG without a name", contlines), "", "prmtop", []string{"readPrmtopSections"}, true}
			}
			curr = new(prmtopSection)
			sections[f[1]] = curr
		case strings.HasPrefix(line, "%FORMAT"):
			if curr == nil {
				return nil, FError{fmt.Sprintf("Line %d: %%FORMAT before any %%FLAG", contlines), "", "prmtop", []string{"readPrmtopSections"}, true}
			}
			var err error
			curr.format, err = parseFormat(line)
			if err != nil {
				return nil, FError{fmt.Sprintf("Line %d: %s", contlines, err.Error()), "", "prmtop", []string{"parseFormat", "readPrmtopSections"}, true}
			}
		case strings.TrimSpace(line) == "":
			continue
		default:
			if curr == nil || curr.format.width == 0 {
				//Old-style (pre-AMBER7) topologies are not supported.
				return nil, FError{fmt.Sprintf("Line %d: data outside a %%FLAG/%%FORMAT section", contlines), "", "prmtop", []string{"readPrmtopSections"}, true}
			}
			curr.lines = append(curr.lines, line)
		}
	}
	if err := s.Err(); err != nil {
		return nil, FError{err.Error(), "", "prmtop", []string{"readPrmtopSections"}, true}
	}
	return sections, nil
}

//PrmtopRead reads an AMBER7 topology (prmtop/parm7) from r. The atom names, residues,
//masses, charges (in electron units) and atomic numbers are read, bonded terms
//are ignored.
func PrmtopRead(r io.Reader) (*Topology, error) {
	sections, err := readPrmtopSections(r)
	if err != nil {
		return nil, errDecorate(err, "PrmtopRead")
	}
	req := []string{"POINTERS", "ATOM_NAME", "RESIDUE_LABEL", "RESIDUE_POINTER"}
	for _, v := range req {
		if _, ok := sections[v]; !ok {
			return nil, FError{fmt.Sprintf("%s: section %s", MissingData, v), "", "prmtop", []string{"PrmtopRead"}, true}
		}
	}
	ptrs, err := sections["POINTERS"].ints()
	if err != nil || len(ptrs) <= ptrNres {
		return nil, FError{"Malformed POINTERS section", "", "prmtop", []string{"PrmtopRead"}, true}
	}
	natoms := ptrs[ptrNatom]
	nres := ptrs[ptrNres]
	names := sections["ATOM_NAME"].words()
	labels := sections["RESIDUE_LABEL"].words()
	//names and labels can have trailing empty fields from short lines
	names = trimEmpty(names)
	labels = trimEmpty(labels)
	resptr, err := sections["RESIDUE_POINTER"].ints()
	if err != nil {
		return nil, FError{"Malformed RESIDUE_POINTER section: " + err.Error(), "", "prmtop", []string{"PrmtopRead"}, true}
	}
	if len(names) != natoms {
		return nil, FError{fmt.Sprintf("%s: %d atoms in POINTERS but %d names", WrongFormat, natoms, len(names)), "", "prmtop", []string{"PrmtopRead"}, true}
	}
	if nres < 1 || len(labels) != nres || len(resptr) != nres {
		return nil, FError{fmt.Sprintf("%s: %d residues in POINTERS but %d labels and %d pointers", WrongFormat, nres, len(labels), len(resptr)), "", "prmtop", []string{"PrmtopRead"}, true}
	}
	optFloats := func(name string) ([]float64, error) {
		s, ok := sections[name]
		if !ok {
			return nil, nil
		}
		f, err := s.floats()
		if err != nil {
			return nil, FError{fmt.Sprintf("Malformed %s section: %s", name, err.Error()), "", "prmtop", []string{"PrmtopRead"}, true}
		}
		if len(f) != natoms {
			return nil, FError{fmt.Sprintf("%s: %d values in %s for %d atoms", WrongFormat, len(f), name, natoms), "", "prmtop", []string{"PrmtopRead"}, true}
		}
		return f, nil
	}
	charges, err := optFloats("CHARGE")
	if err != nil {
		return nil, err
	}
	masses, err := optFloats("MASS")
	if err != nil {
		return nil, err
	}
	var atnums []int
	if s, ok := sections["ATOMIC_NUMBER"]; ok {
		atnums, err = s.ints()
		if err != nil || len(atnums) != natoms {
			return nil, FError{"Malformed ATOMIC_NUMBER section", "", "prmtop", []string{"PrmtopRead"}, true}
		}
	}
	var types []string
	if s, ok := sections["AMBER_ATOM_TYPE"]; ok {
		types = trimEmpty(s.words())
	}
	ats := make([]*Atom, natoms)
	res := 0
	for i := range ats {
		//resptr values are 1-based
		for res+1 < nres && resptr[res+1]-1 <= i {
			res++
		}
		at := &Atom{Name: names[i], Id: i + 1, Molname: labels[res], Molid: res + 1, Chain: ' '}
		if charges != nil {
			at.Charge = charges[i] / AmberChargeUnit
		}
		if atnums != nil {
			at.Symbol = numberSymbol[atnums[i]]
		}
		if at.Symbol == "" {
			at.Symbol, _ = symbolFromName(at.Name)
		}
		if masses != nil {
			at.Mass = masses[i]
		} else {
			at.Mass, _ = massFromSymbol(at.Symbol)
		}
		if len(types) == natoms {
			at.Type = types[i]
		}
		ats[i] = at
	}
	return NewTopology(ats)
}

func trimEmpty(s []string) []string {
	for len(s) > 0 && s[len(s)-1] == "" {
		s = s[:len(s)-1]
	}
	return s
}

//PrmtopFileRead reads the AMBER topology in the file name (which can be compressed).
func PrmtopFileRead(name string) (*Topology, error) {
	f, err := OpenFile(name)
	if err != nil {
		return nil, errDecorate(err, "PrmtopFileRead")
	}
	defer f.Close()
	top, err := PrmtopRead(f)
	if err != nil {
		return nil, errDecorate(err, "PrmtopFileRead", name)
	}
	return top, nil
}

//InpcrdRead reads AMBER coordinates (inpcrd/rst7, ASCII) from r. If natoms > 0 it must match the
//number of atoms in the file. It returns the coordinates and the box (a, b, c, alpha, beta, gamma),
//or nil if there is no box. Velocities, if present, are discarded.
func InpcrdRead(r io.Reader, natoms int) (*v3.Matrix, []float64, error) {
	const width = 12 //6F12.7
	s := bufio.NewReader(r)
	_, err := s.ReadString('\n') //The first line is just a comment
	if err != nil {
		return nil, nil, FError{"Can't read title: " + err.Error(), "", "inpcrd", []string{"InpcrdRead"}, true}
	}
	header, err := s.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, nil, FError{"Can't read atom number: " + err.Error(), "", "inpcrd", []string{"InpcrdRead"}, true}
	}
	h := strings.Fields(header)
	if len(h) == 0 {
		return nil, nil, FError{"Empty atom number line", "", "inpcrd", []string{"InpcrdRead"}, true}
	}
	fnatoms, err := strconv.Atoi(h[0])
	if err != nil {
		return nil, nil, FError{"Can't read atom number: " + err.Error(), "", "inpcrd", []string{"InpcrdRead"}, true}
	}
	if natoms > 0 && natoms != fnatoms {
		return nil, nil, FError{fmt.Sprintf("Expected %d atoms, file has %d", natoms, fnatoms), "", "inpcrd", []string{"InpcrdRead"}, true}
	}
	natoms = fnatoms
	vals := make([]float64, 0, natoms*3+6)
	for {
		line, err := s.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, nil, FError{err.Error(), "", "inpcrd", []string{"InpcrdRead"}, true}
		}
		line = strings.TrimRight(line, "\r\n")
		for i := 0; i < len(line); i += width {
			end := i + width
			if end > len(line) {
				end = len(line)
			}
			field := strings.TrimSpace(line[i:end])
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, FError{"Unable to read coordinates: " + err.Error(), "", "inpcrd", []string{"strconv.ParseFloat", "InpcrdRead"}, true}
			}
			vals = append(vals, v)
		}
		if err == io.EOF {
			break
		}
	}
	n3 := natoms * 3
	var box []float64
	switch len(vals) {
	case n3, 2 * n3:
	case n3 + 6, 2*n3 + 6:
		box = vals[len(vals)-6:]
	default:
		return nil, nil, FError{fmt.Sprintf("%s: %d values for %d atoms", WrongFormat, len(vals), natoms), "", "inpcrd", []string{"InpcrdRead"}, true}
	}
	coords, err := v3.NewMatrix(vals[:n3])
	if err != nil {
		return nil, nil, FError{err.Error(), "", "inpcrd", []string{"v3.NewMatrix", "InpcrdRead"}, true}
	}
	return coords, box, nil
}

//InpcrdFileRead reads AMBER coordinates from the file name (which can be compressed).
func InpcrdFileRead(name string, natoms int) (*v3.Matrix, []float64, error) {
	f, err := OpenFile(name)
	if err != nil {
		return nil, nil, errDecorate(err, "InpcrdFileRead")
	}
	defer f.Close()
	c, box, err := InpcrdRead(f, natoms)
	if err != nil {
		return nil, nil, errDecorate(err, "InpcrdFileRead", name)
	}
	return c, box, nil
}

//isPDB returns true if the name, minus any compression suffix, ends in .pdb or .ent
func isPDB(name string) bool {
	ext := strings.ToLower(filepath.Ext(trimCompression(name)))
	return ext == ".pdb" || ext == ".ent"
}

//StructureFileRead loads a structure. If topology is a PDB file it is read alone
//(coordinates can be empty). Otherwise topology must be an AMBER topology, and
//coordinates an AMBER coordinate file or a PDB with the same atoms, from
//which only the coordinates are taken.
func StructureFileRead(topology, coordinates string) (*Molecule, error) {
	if isPDB(topology) {
		mol, err := PDBFileRead(topology)
		if err != nil {
			return nil, errDecorate(err, "StructureFileRead")
		}
		return mol, nil
	}
	top, err := PrmtopFileRead(topology)
	if err != nil {
		return nil, errDecorate(err, "StructureFileRead")
	}
	if coordinates == "" {
		return nil, CError{"AMBER topology given without coordinates", []string{"StructureFileRead"}}
	}
	var coords *v3.Matrix
	var box []float64
	if isPDB(coordinates) {
		pdb, err := PDBFileRead(coordinates)
		if err != nil {
			return nil, errDecorate(err, "StructureFileRead")
		}
		coords = pdb.Coord()
		box = pdb.Box
	} else {
		coords, box, err = InpcrdFileRead(coordinates, top.Len())
		if err != nil {
			return nil, errDecorate(err, "StructureFileRead")
		}
	}
	mol, err := NewMolecule([]*v3.Matrix{coords}, top)
	if err != nil {
		return nil, errDecorate(err, "StructureFileRead")
	}
	mol.Box = box
	return mol, nil
}
