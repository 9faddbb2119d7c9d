/*
 * gochem_test.go, part of goAPR.
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/goapr/v3"
)

const testdir = "test/a-coc-p"

func TestPrmtopRead(Te *testing.T) {
	top, err := PrmtopFileRead(filepath.Join(testdir, "smirnoff.prmtop"))
	if err != nil {
		Te.Fatal(err)
	}
	if top.Len() != 59 {
		Te.Fatalf("expected 59 atoms, got %d", top.Len())
	}
	res := top.Residues()
	if len(res) != 10 {
		Te.Fatalf("expected 10 residues, got %d", len(res))
	}
	if res[0].Name != "MGO" || len(res[0].Atoms) != 9 || res[6].Name != "COC" || res[9].Name != "DM3" {
		Te.Errorf("unexpected residues: %+v %+v %+v", res[0], res[6], res[9])
	}
	at := top.Atom(55)
	if at.Name != "O1" || at.Molname != "COC" || at.Molid != 7 || at.Symbol != "O" || at.Type != "oh" {
		Te.Errorf("unexpected atom 56: %+v", at)
	}
	if math.Abs(top.Atom(0).Charge-0.1) > 1e-6 {
		Te.Errorf("charge not converted from AMBER units: %f", top.Atom(0).Charge)
	}
	dum := top.Atom(56)
	if dum.Symbol != "Du" || dum.Mass != 220 {
		Te.Errorf("unexpected dummy atom: %+v", dum)
	}
}

func TestPrmtopMissingSection(Te *testing.T) {
	bad := "%VERSION  VERSION_STAMP = V0001.000\n%FLAG POINTERS\n%FORMAT(10I8)\n       1       0       0       0       0       0       0       0       0       0\n       0       1\n"
	_, err := PrmtopRead(strings.NewReader(bad))
	if err == nil {
		Te.Fatal("expected an error for a topology without ATOM_NAME")
	}
	if _, ok := err.(FileError); !ok {
		Te.Errorf("expected a FileError, got %T", err)
	}
}

func TestInpcrdRead(Te *testing.T) {
	c, box, err := InpcrdFileRead(filepath.Join(testdir, "smirnoff.inpcrd"), 59)
	if err != nil {
		Te.Fatal(err)
	}
	if box != nil {
		Te.Errorf("the test file has no box, got %v", box)
	}
	if c.NVecs() != 59 {
		Te.Fatalf("expected 59 coordinates, got %d", c.NVecs())
	}
	if c.At(54, 2) != 0.5 || c.At(58, 1) != 2.2 {
		Te.Errorf("wrong coordinates read: %v %v", c.VecView(54), c.VecView(58))
	}
	if _, _, err = InpcrdFileRead(filepath.Join(testdir, "smirnoff.inpcrd"), 60); err == nil {
		Te.Error("expected an error for a wrong atom number")
	}
}

func TestInpcrdBox(Te *testing.T) {
	crd := "title\n     3\n   1.0000000   2.0000000   3.0000000   4.0000000   5.0000000   6.0000000\n   7.0000000   8.0000000   9.0000000\n  30.0000000  31.0000000  32.0000000  90.0000000  90.0000000  90.0000000\n"
	c, box, err := InpcrdRead(strings.NewReader(crd), 0)
	if err != nil {
		Te.Fatal(err)
	}
	if c.NVecs() != 3 || c.At(2, 2) != 9 {
		Te.Errorf("wrong coordinates %v", c)
	}
	if len(box) != 6 || box[0] != 30 || box[5] != 90 {
		Te.Errorf("wrong box %v", box)
	}
}

func TestPDBRead(Te *testing.T) {
	for _, name := range []string{"smirnoff.pdb", "smirnoff.pdb.gz"} {
		mol, err := PDBFileRead(filepath.Join(testdir, name))
		if err != nil {
			Te.Fatal(err)
		}
		if mol.Len() != 59 {
			Te.Errorf("%s: expected 59 atoms, got %d", name, mol.Len())
		}
		if mol.Atom(0).Symbol != "C" || mol.Atom(0).Het {
			Te.Errorf("%s: wrong first atom %+v", name, mol.Atom(0))
		}
		if !mol.Atom(54).Het || mol.Atom(54).Molname != "COC" {
			Te.Errorf("%s: wrong guest atom %+v", name, mol.Atom(54))
		}
		if mol.Atom(58).Symbol != "Du" || mol.Atom(58).Mass != DummyMass {
			Te.Errorf("%s: dummy atom not recognized %+v", name, mol.Atom(58))
		}
		if mol.Coord().At(56, 2) != -6 {
			Te.Errorf("%s: wrong coordinates for D1: %v", name, mol.Coord().VecView(56))
		}
	}
}

func TestZstdInput(Te *testing.T) {
	orig, err := os.ReadFile(filepath.Join(testdir, "smirnoff.inpcrd"))
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "smirnoff.inpcrd.zst")
	f, err := os.Create(name)
	if err != nil {
		Te.Fatal(err)
	}
	w, err := zstd.NewWriter(f)
	if err != nil {
		Te.Fatal(err)
	}
	w.Write(orig)
	w.Close()
	f.Close()
	c, _, err := InpcrdFileRead(name, 59)
	if err != nil {
		Te.Fatal(err)
	}
	if c.At(54, 2) != 0.5 {
		Te.Errorf("wrong coordinates from the compressed file: %v", c.VecView(54))
	}
}

func TestStructureFileRead(Te *testing.T) {
	prmtop := filepath.Join(testdir, "smirnoff.prmtop")
	for _, crd := range []string{"smirnoff.inpcrd", "smirnoff.pdb"} {
		mol, err := StructureFileRead(prmtop, filepath.Join(testdir, crd))
		if err != nil {
			Te.Fatal(err)
		}
		if mol.Len() != 59 || mol.Atom(56).Molname != "DM1" {
			Te.Errorf("%s: wrong structure", crd)
		}
		if math.Abs(mol.Coord().At(57, 2)+9) > 1e-3 {
			Te.Errorf("%s: wrong coordinates for D2: %v", crd, mol.Coord().VecView(57))
		}
	}
	if _, err := StructureFileRead(prmtop, ""); err == nil {
		Te.Error("expected an error for a topology without coordinates")
	}
	mol, err := StructureFileRead(filepath.Join(testdir, "smirnoff.pdb"), "")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 59 {
		Te.Errorf("expected 59 atoms, got %d", mol.Len())
	}
}

func TestGeometry(Te *testing.T) {
	mk := func(x, y, z float64) *v3.Matrix {
		m, _ := v3.NewMatrix([]float64{x, y, z})
		return m
	}
	a := mk(1, 0, 0)
	b := mk(0, 0, 0)
	c := mk(0, 1, 0)
	d := mk(0, 1, 1)
	if math.Abs(Distance(a, c)-math.Sqrt2) > 1e-9 {
		Te.Errorf("wrong distance %f", Distance(a, c))
	}
	if math.Abs(Angle(a, b, c)-90) > 1e-9 {
		Te.Errorf("wrong angle %f", Angle(a, b, c))
	}
	if math.Abs(Angle(a, b, mk(-2, 0, 0))-180) > 1e-9 {
		Te.Errorf("wrong linear angle %f", Angle(a, b, mk(-2, 0, 0)))
	}
	//a-b-c-d: looking down b->c, a is along +x and d along +z.
	dih := Dihedral(a, b, c, d)
	if math.Abs(math.Abs(dih)-90) > 1e-9 {
		Te.Errorf("wrong dihedral %f", dih)
	}
	if math.Abs(Dihedral(a, b, c, mk(1, 1, 0))) > 1e-9 {
		Te.Errorf("cis dihedral should be 0, got %f", Dihedral(a, b, c, mk(1, 1, 0)))
	}
}

func TestCenterOfMass(Te *testing.T) {
	coords, _ := v3.NewMatrix([]float64{0, 0, 0, 4, 0, 0})
	com, err := CenterOfMass(coords, []float64{3, 1})
	if err != nil {
		Te.Fatal(err)
	}
	if com.At(0, 0) != 1 {
		Te.Errorf("wrong center of mass %v", com)
	}
	geo, err := CenterOfMass(coords, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if geo.At(0, 0) != 2 {
		Te.Errorf("wrong geometric center %v", geo)
	}
	if _, err = CenterOfMass(coords, []float64{1}); err == nil {
		Te.Error("expected an error for mismatched masses")
	}
}

//TestGroupCenter takes the center of mass of the guest (C1 and O1) and the
//geometric center of the massless dummy atoms.
func TestGroupCenter(Te *testing.T) {
	mol, err := PDBFileRead(filepath.Join(testdir, "smirnoff.pdb"))
	if err != nil {
		Te.Fatal(err)
	}
	com, err := GroupCenter(mol, mol.Coord(), []int{54, 55})
	if err != nil {
		Te.Fatal(err)
	}
	want := []float64{0, 0.171367, 1.299714}
	for j, v := range want {
		if math.Abs(com.At(0, j)-v) > 1e-5 {
			Te.Errorf("wrong center of mass %v, expected %v", com, want)
		}
	}
	mol.Atom(56).Mass = 0
	geo, err := GroupCenter(mol, mol.Coord(), []int{56, 57})
	if err != nil {
		Te.Fatal(err)
	}
	if geo.At(0, 2) != -7.5 || geo.At(0, 1) != 0 {
		Te.Errorf("wrong geometric center %v", geo)
	}
	if _, err := GroupCenter(mol, mol.Coord(), nil); err == nil {
		Te.Error("expected an error for an empty atom list")
	}
}
