/*
 * atomicdata.go, part of goAPR.
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
	"strings"
)

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Cr": 51.996,
	"Si": 28.08,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
	"Pb": 207.2,
}

//DummyMass is the mass given to the dummy (Du) atoms used as APR anchors
//when the input carries no mass for them.
const DummyMass = 220.0

//A map from atomic numbers, as found in the ATOMIC_NUMBER section of
//AMBER topologies, to element symbols.
var numberSymbol = map[int]string{
	1:  "H",
	4:  "Be",
	6:  "C",
	7:  "N",
	8:  "O",
	9:  "F",
	11: "Na",
	12: "Mg",
	14: "Si",
	15: "P",
	16: "S",
	17: "Cl",
	19: "K",
	20: "Ca",
	24: "Cr",
	25: "Mn",
	26: "Fe",
	27: "Co",
	29: "Cu",
	30: "Zn",
	34: "Se",
	35: "Br",
	53: "I",
	82: "Pb",
}

//This tries to guess a chemical element symbol from a PDB atom name. Mostly based on AMBER names.
//It only deals with some common bio-elements, plus the "DUM"-style
//names of the APR dummy atoms, which get the symbol "Du".
func symbolFromName(name string) (string, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("Couldn't guess symbol from an empty PDB name")
	}
	symbol := ""
	switch {
	case strings.HasPrefix(name, "DU"):
		symbol = "Du"
	case name[0] == 'H': //4-char amber names are always hydrogens.
		symbol = "H"
	case name == "CU":
		symbol = "Cu"
	case name == "CO":
		symbol = "Co"
	case name == "CL":
		symbol = "Cl"
	case name[0] == 'C': //Ca is not considered here
		symbol = "C"
	case name == "NA":
		symbol = "Na"
	case name[0] == 'N':
		symbol = "N"
	case name[0] == 'O':
		symbol = "O"
	case name[0] == 'P':
		symbol = "P"
	case name == "SE":
		symbol = "Se"
	case name[0] == 'S':
		symbol = "S"
	case strings.HasPrefix(name, "ZN"):
		symbol = "Zn"
	case name[0] == 'F':
		symbol = "F"
	}
	if symbol == "" {
		return symbol, fmt.Errorf("Couldn't guess symbol from PDB name %s", name)
	}
	return symbol, nil
}

//massFromSymbol returns the mass for the element symbol. Dummy atoms get DummyMass.
func massFromSymbol(symbol string) (float64, bool) {
	if symbol == "Du" {
		return DummyMass, true
	}
	m, ok := symbolMass[symbol]
	return m, ok
}
