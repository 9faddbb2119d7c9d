/*
 * mask_test.go, part of goAPR.
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

package mask

import (
	"testing"

	chem "github.com/rmera/goapr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTest(t *testing.T) *chem.Molecule {
	mol, err := chem.PDBFileRead("../test/a-coc-p/smirnoff.pdb")
	require.NoError(t, err)
	return mol
}

func TestSelectAnchors(t *testing.T) {
	mol := readTest(t)
	cases := map[string][]int{
		":8":      {56},
		":9":      {57},
		":10":     {58},
		":1@O3":   {6},
		":3@C1":   {18},
		":5@C6":   {39},
		":COC@C1": {54},
		":COC@O1": {55},
		"@55":     {54},
	}
	for m, want := range cases {
		got, err := Select(mol, m)
		require.NoError(t, err, m)
		assert.Equal(t, want, got, m)
	}
}

func TestSelectLists(t *testing.T) {
	mol := readTest(t)
	cases := map[string][]int{
		":1-2@C1,O1":   {0, 4, 9, 13},
		"(:1|:2)&@O5":  {7, 16},
		":COC | :8":    {54, 55, 56},
		":DM?":         {56, 57, 58},
		":D=":          {56, 57, 58},
		"@/Du":         {56, 57, 58},
		":MGO & @O6":   {8, 17, 26, 35, 44, 53},
		"!:MGO & !:DM*": {54, 55},
	}
	for m, want := range cases {
		got, err := Select(mol, m)
		require.NoError(t, err, m)
		assert.Equal(t, want, got, m)
	}
	all, err := Select(mol, "*")
	require.NoError(t, err)
	assert.Len(t, all, 59)
	host, err := Select(mol, ":MGO")
	require.NoError(t, err)
	assert.Len(t, host, 54)
	notHost, err := Select(mol, "!:MGO")
	require.NoError(t, err)
	assert.Len(t, notHost, 5)
}

func TestSelectTypes(t *testing.T) {
	top, err := chem.PrmtopFileRead("../test/a-coc-p/smirnoff.prmtop")
	require.NoError(t, err)
	got, err := Select(top, "@%DU")
	require.NoError(t, err)
	assert.Equal(t, []int{56, 57, 58}, got)
	got, err = Select(top, ":COC@%oh")
	require.NoError(t, err)
	assert.Equal(t, []int{55}, got)
}

func TestSelectEmpty(t *testing.T) {
	mol := readTest(t)
	got, err := Select(mol, ":99")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectErrors(t *testing.T) {
	mol := readTest(t)
	for _, m := range []string{"", ":", "@", ":1-", ":3-1", "(:1", ":1)", ":1 :2", ":1 &", ":1<:3", "C1", ":1,,2"} {
		_, err := Select(mol, m)
		if assert.Error(t, err, m) {
			var e Error
			assert.ErrorAs(t, err, &e, m)
		}
	}
}

func TestResidues(t *testing.T) {
	mol := readTest(t)
	res, err := Residues(mol, ":MGO")
	require.NoError(t, err)
	require.Len(t, res, 6)
	for i, r := range res {
		assert.Equal(t, i+1, r.Index)
		assert.Equal(t, "MGO", r.Name)
	}
	res, err = Residues(mol, "@O1")
	require.NoError(t, err)
	assert.Len(t, res, 7)
	assert.Equal(t, "COC", res[6].Name)
}
