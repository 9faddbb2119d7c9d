/*
 * anchors.go, part of goAPR.
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

package apr

import (
	"fmt"
	"sort"
	"strings"
)

//Anchors maps the anchor labels to AMBER masks. D1, D2 and D3 are the dummy
//atoms, H1, H2 and H3 the host anchors and G1 and G2 the guest anchors.
type Anchors map[string]string

//AnchorLabels are the labels every Anchors must contain.
var AnchorLabels = []string{"D1", "D2", "D3", "H1", "H2", "H3", "G1", "G2"}

//DefaultAnchors returns the anchors for an alpha-cyclodextrin (6 MGO residues)
//host with a cyclooctanol (COC) guest and the dummy atoms in residues 8 to 10.
func DefaultAnchors() Anchors {
	return Anchors{
		"D1": ":8",
		"D2": ":9",
		"D3": ":10",
		"H1": ":1@O3",
		"H2": ":3@C1",
		"H3": ":5@C6",
		"G1": ":COC@C1",
		"G2": ":COC@O1",
	}
}

//With returns a copy of a where the masks in over replace those with the same label.
func (a Anchors) With(over map[string]string) Anchors {
	ret := make(Anchors, len(a)+len(over))
	for k, v := range a {
		ret[k] = v
	}
	for k, v := range over {
		ret[k] = v
	}
	return ret
}

//Check returns an error if a label is missing, empty or unknown.
func (a Anchors) Check() error {
	for _, l := range AnchorLabels {
		if strings.TrimSpace(a[l]) == "" {
			return fmt.Errorf("anchor %s not given", l)
		}
	}
	if len(a) == len(AnchorLabels) {
		return nil
	}
	unknown := make([]string, 0, 1)
	for k := range a {
		if !isIn(AnchorLabels, k) {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return fmt.Errorf("unknown anchors: %s", strings.Join(unknown, ", "))
}

func isIn(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
