/*
 * builders.go, part of goAPR.
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
	"strings"

	chem "github.com/rmera/goapr"
	"github.com/rmera/goapr/config"
	"github.com/rmera/goapr/mask"
	"github.com/rmera/goapr/restraint"
)

//Windows are the fractions and distances that define the windows of the three phases.
type Windows struct {
	AttachFractions  []float64
	PullDistances    []float64
	ReleaseFractions []float64
}

//Counts returns the number of attach, pull and release windows.
func (w Windows) Counts() [3]int {
	return [3]int{len(w.AttachFractions), len(w.PullDistances), len(w.ReleaseFractions)}
}

func newDAT(top chem.Residuer, masks []string) *restraint.DAT {
	r := restraint.New()
	r.Topology = top
	r.Masks = masks
	r.AmberIndex = true
	return r
}

//StaticRestraints returns the six restraints that keep the host in place with respect
//to the dummy atoms: one distance, two angles and three torsions, measured on ref.
//Distances use distanceFC and the rest angleFC.
func StaticRestraints(anchors Anchors, windows [3]int, ref *chem.Molecule, distanceFC, angleFC float64) ([]*restraint.DAT, error) {
	atoms := [][]string{
		{anchors["D1"], anchors["H1"]},
		{anchors["D2"], anchors["D1"], anchors["H1"]},
		{anchors["D1"], anchors["H1"], anchors["H2"]},
		{anchors["D3"], anchors["D2"], anchors["D1"], anchors["H1"]},
		{anchors["D2"], anchors["D1"], anchors["H1"], anchors["H2"]},
		{anchors["D1"], anchors["H1"], anchors["H2"], anchors["H3"]},
	}
	ret := make([]*restraint.DAT, 0, len(atoms))
	for _, masks := range atoms {
		fc := distanceFC
		if len(masks) > 2 {
			fc = angleFC
		}
		r, err := restraint.Static(masks, windows, ref, fc, true, true)
		if err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	return ret, nil
}

//GuestRestraints returns the D1-G1 distance and the D2-D1-G1 and D1-G1-G2 angle
//restraints on the guest. They are attached with the attach fractions, from their
//initial targets. In the pull phase, the distance follows the pull distances and the
//angles go to their final targets. In the release phase they stay at full force.
func GuestRestraints(anchors Anchors, w Windows, top chem.Residuer, distanceFC, angleFC float64, targets config.Targets) ([]*restraint.DAT, error) {
	atoms := [][]string{
		{anchors["D1"], anchors["G1"]},
		{anchors["D2"], anchors["D1"], anchors["G1"]},
		{anchors["D1"], anchors["G1"], anchors["G2"]},
	}
	if len(targets.Initial) < len(atoms) || len(targets.Final) < len(atoms) {
		return nil, fmt.Errorf("GuestRestraints: need %d initial and final targets", len(atoms))
	}
	ret := make([]*restraint.DAT, 0, len(atoms))
	for i, masks := range atoms {
		fc := distanceFC
		if len(masks) > 2 {
			fc = angleFC
		}
		r := newDAT(top, masks)
		r.Attach = restraint.AttachSpec{
			Target:       restraint.Float(targets.Initial[i]),
			FCFinal:      restraint.Float(fc),
			FractionList: w.AttachFractions,
		}
		final := targets.Initial[i]
		if n := len(w.PullDistances); n > 0 {
			if i == 0 {
				r.Pull = restraint.PullSpec{FC: restraint.Float(fc), TargetList: w.PullDistances}
				final = w.PullDistances[n-1]
			} else {
				r.Pull = restraint.PullSpec{
					FC:            restraint.Float(fc),
					TargetInitial: restraint.Float(targets.Initial[i]),
					TargetFinal:   restraint.Float(targets.Final[i]),
					NumWindows:    n,
				}
				final = targets.Final[i]
			}
		}
		if n := len(w.ReleaseFractions); n > 0 {
			r.Release = restraint.ReleaseSpec{
				Target:     restraint.Float(final),
				FCInitial:  restraint.Float(fc),
				FCFinal:    restraint.Float(fc),
				NumWindows: n,
			}
		}
		if err := r.Initialize(); err != nil {
			return nil, fmt.Errorf("guest restraint: %w", err)
		}
		ret = append(ret, r)
	}
	return ret, nil
}

//hostResidues returns the AMBER number of the first residue named resname,
//and how many residues have that name.
func hostResidues(top chem.Residuer, resname string) (int, int, error) {
	res, err := mask.Residues(top, ":"+strings.ToUpper(resname))
	if err != nil {
		return 0, 0, err
	}
	if len(res) == 0 {
		return 0, 0, fmt.Errorf("no host residues named %s", resname)
	}
	return res[0].Index, len(res), nil
}

//ConformationalRestraints returns, for each host residue and each torsion in the
//template, a restraint to the corresponding target. The first torsion takes three atoms
//from the residue and one from the next, the others two from each. The residue after the
//last one is the first one. The restraints are attached with the attach fractions,
//kept during the pull and released with the release fractions.
func ConformationalRestraints(c config.Conformational, w Windows, top chem.Residuer, resname string) ([]*restraint.DAT, error) {
	if len(c.Targets) < len(c.Template) {
		return nil, fmt.Errorf("ConformationalRestraints: %d templates but %d targets", len(c.Template), len(c.Targets))
	}
	first, count, err := hostResidues(top, resname)
	if err != nil {
		return nil, fmt.Errorf("ConformationalRestraints: %w", err)
	}
	ret := make([]*restraint.DAT, 0, count*len(c.Template))
	for n := first; n < first+count; n++ {
		next := n + 1
		if next >= first+count {
			next = first
		}
		for i, atoms := range c.Template {
			if len(atoms) != 4 {
				return nil, fmt.Errorf("ConformationalRestraints: template %d has %d atoms", i, len(atoms))
			}
			res := []int{n, n, next, next}
			if i == 0 {
				res[2] = n
			}
			masks := make([]string, 4)
			for j := range masks {
				masks[j] = fmt.Sprintf(":%d@%s", res[j], atoms[j])
			}
			target := c.Targets[i]
			r := newDAT(top, masks)
			r.Attach = restraint.AttachSpec{
				Target:       restraint.Float(target),
				FCFinal:      restraint.Float(c.FC),
				FractionList: w.AttachFractions,
			}
			if np := len(w.PullDistances); np > 0 {
				r.Pull = restraint.PullSpec{
					FC:            restraint.Float(c.FC),
					TargetInitial: restraint.Float(target),
					TargetFinal:   restraint.Float(target),
					NumWindows:    np,
				}
			}
			if len(w.ReleaseFractions) > 0 {
				r.Release = restraint.ReleaseSpec{
					Target:       restraint.Float(target),
					FCFinal:      restraint.Float(c.FC),
					FractionList: w.ReleaseFractions,
				}
			}
			if err := r.Initialize(); err != nil {
				return nil, fmt.Errorf("conformational restraint: %w", err)
			}
			ret = append(ret, r)
		}
	}
	return ret, nil
}

//WallTargets returns the default wall targets for a system: the two distance walls and
//the angle wall. Systems whose name begins with "a" (alpha-cyclodextrin hosts) get
//a narrower wall.
func WallTargets(system string) []float64 {
	if strings.HasPrefix(system, "a") {
		return []float64{11.3, 13.3, 80.0}
	}
	return []float64{12.5, 14.5, 80.0}
}

//GuestWallRestraints returns, for each host residue, a flat-bottom distance wall between
//each wall atom and G1, which only acts beyond the target, and a single D2-G1-G2 angle
//wall which only acts below its target. They only exist in the attach phase, at full
//force in every window. targets has one distance per wall atom and then the angle.
func GuestWallRestraints(wall config.Wall, targets []float64, anchors Anchors, top chem.Residuer, attachWindows int, resname string) ([]*restraint.DAT, error) {
	if len(targets) != len(wall.Atoms)+1 {
		return nil, fmt.Errorf("GuestWallRestraints: %d wall atoms need %d targets, got %d", len(wall.Atoms), len(wall.Atoms)+1, len(targets))
	}
	first, count, err := hostResidues(top, resname)
	if err != nil {
		return nil, fmt.Errorf("GuestWallRestraints: %w", err)
	}
	ret := make([]*restraint.DAT, 0, count*len(wall.Atoms)+1)
	for n := first; n < first+count; n++ {
		for i, atom := range wall.Atoms {
			r := newDAT(top, []string{fmt.Sprintf(":%d@%s", n, atom), anchors["G1"]})
			r.Attach = restraint.AttachSpec{
				Target:     restraint.Float(targets[i]),
				FCInitial:  restraint.Float(wall.DistanceFC),
				FCFinal:    restraint.Float(wall.DistanceFC),
				NumWindows: attachWindows,
			}
			r.Custom = map[string]float64{"rk2": wall.DistanceFC, "rk3": wall.DistanceFC, "r1": 0, "r2": 0}
			if err := r.Initialize(); err != nil {
				return nil, fmt.Errorf("guest wall restraint: %w", err)
			}
			ret = append(ret, r)
		}
	}
	r := newDAT(top, []string{anchors["D2"], anchors["G1"], anchors["G2"]})
	r.Attach = restraint.AttachSpec{
		Target:     restraint.Float(targets[len(targets)-1]),
		FCInitial:  restraint.Float(wall.AngleFC),
		FCFinal:    restraint.Float(wall.AngleFC),
		NumWindows: attachWindows,
	}
	r.Custom = map[string]float64{"rk2": wall.AngleFC, "rk3": 0}
	if err := r.Initialize(); err != nil {
		return nil, fmt.Errorf("guest wall restraint: %w", err)
	}
	return append(ret, r), nil
}

//Set contains the four families of restraints of a system.
type Set struct {
	Static         []*restraint.DAT
	Guest          []*restraint.DAT
	Conformational []*restraint.DAT
	Wall           []*restraint.DAT
}

//Counts returns the number of restraints in each family.
func (s *Set) Counts() map[string]int {
	return map[string]int{
		"static":         len(s.Static),
		"guest":          len(s.Guest),
		"conformational": len(s.Conformational),
		"wall":           len(s.Wall),
	}
}

//All returns every restraint in the set.
func (s *Set) All() []*restraint.DAT {
	ret := make([]*restraint.DAT, 0, len(s.Static)+len(s.Guest)+len(s.Conformational)+len(s.Wall))
	ret = append(ret, s.Static...)
	ret = append(ret, s.Conformational...)
	ret = append(ret, s.Guest...)
	return append(ret, s.Wall...)
}

//PhaseRestraints returns the restraints written in the windows of phase p, in the order
//they are written. The walls are only used in the attach phase.
func PhaseRestraints(s *Set, p restraint.Phase) []*restraint.DAT {
	ret := make([]*restraint.DAT, 0, len(s.Static)+len(s.Guest)+len(s.Conformational)+len(s.Wall))
	ret = append(ret, s.Static...)
	if p == restraint.Attach {
		ret = append(ret, s.Guest...)
		ret = append(ret, s.Conformational...)
		return append(ret, s.Wall...)
	}
	ret = append(ret, s.Conformational...)
	return append(ret, s.Guest...)
}
