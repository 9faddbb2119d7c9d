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

package restraint

import (
	"fmt"
	"strings"
)

//Values returns the AMBER restraint values (r1, r2, r3, r4, rk2 and rk3) of r in the window
//with index window of phase p. The flat-bottom region collapses on the target, and the
//outer bounds are the limits of the restraint coordinate. Custom values override
//the defaults.
func Values(r *DAT, p Phase, window int) (map[string]float64, error) {
	s := r.Phase[p]
	if s.Windows() == 0 {
		return nil, fmt.Errorf("%s not active in the %s phase", r, p)
	}
	if window < 0 || window >= s.Windows() {
		return nil, fmt.Errorf("%s: window %d out of range, the %s phase has %d", r, window, p, s.Windows())
	}
	target, fc := s.Targets[window], s.ForceConstants[window]
	var lower, upper float64
	switch len(r.Masks) {
	case 2:
		lower, upper = 0, 999
	case 3:
		lower, upper = 0, 180
	default:
		lower, upper = target-180, target+180
	}
	ret := map[string]float64{
		"r1":  lower,
		"r2":  target,
		"r3":  target,
		"r4":  upper,
		"rk2": fc,
		"rk3": fc,
	}
	for k, v := range r.Custom {
		ret[k] = v
	}
	return ret, nil
}

//AmberLine returns the AMBER NMR restraint (&rst namelist) for r in the window named window.
//It returns an empty string if the restraint is not active in the window's phase.
//Masks that select more than one atom are written as groups (iat=-1 and an igr list).
func AmberLine(r *DAT, window string) (string, error) {
	idx, p, err := ParseWindow(window)
	if err != nil {
		return "", err
	}
	if r.Windows(p) == 0 {
		return "", nil
	}
	if len(r.Indexes) != len(r.Masks) {
		return "", fmt.Errorf("%s: not initialized", r)
	}
	v, err := Values(r, p, idx)
	if err != nil {
		return "", err
	}
	var iat, igr strings.Builder
	for i, group := range r.Indexes {
		if len(group) == 1 {
			fmt.Fprintf(&iat, "%d,", group[0])
			continue
		}
		iat.WriteString("-1,")
		fmt.Fprintf(&igr, " igr%d=", i+1)
		for _, a := range group {
			fmt.Fprintf(&igr, "%d,", a)
		}
	}
	return fmt.Sprintf("&rst iat= %-16s r1= %10.4f, r2= %10.4f, r3= %10.4f, r4= %10.4f, rk2= %8.4f, rk3= %8.4f,%s &end\n",
		iat.String(), v["r1"], v["r2"], v["r3"], v["r4"], v["rk2"], v["rk3"], igr.String()), nil
}
