/*
 * windows.go, part of goAPR.
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
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
)

var (
	ErrWindowMismatch = errors.New("restraints have different numbers of windows")
	ErrWindowName     = errors.New("invalid window name")
)

//WindowName returns the name of the i-th window of phase p, i.e. a000, p012.
func WindowName(p Phase, i int) string {
	return fmt.Sprintf("%c%03d", p.Prefix(), i)
}

//WindowList returns the names of all the windows implied by restraints. Every restraint
//active in a phase must have the same number of windows in it. When the restraints
//are continuous, the last attach window is dropped, as it is the same as the first pull
//window, and the release windows start at r001, as r000 is the same as the last pull window.
func WindowList(restraints []*DAT) ([]string, error) {
	if len(restraints) == 0 {
		return nil, nil
	}
	continuous := restraints[0].ContinuousAPR
	counts := make(map[Phase]int, 3)
	for _, r := range restraints {
		if r.ContinuousAPR != continuous {
			return nil, fmt.Errorf("%s: continuous and non-continuous restraints mixed", r)
		}
		for _, p := range Phases {
			n := r.Windows(p)
			if n == 0 {
				continue
			}
			if counts[p] != 0 && counts[p] != n {
				return nil, fmt.Errorf("%w: %s has %d %s windows, other restraints have %d", ErrWindowMismatch, r, n, p, counts[p])
			}
			counts[p] = n
		}
	}
	ret := make([]string, 0, counts[Attach]+counts[Pull]+counts[Release])
	for _, p := range Phases {
		first, last := 0, counts[p]
		if continuous {
			switch p {
			case Attach:
				last--
			case Release:
				first++
			}
		}
		if last > 999 {
			log.Printf("restraint: %d %s windows, names will be longer than 3 digits", last, p)
		}
		for i := first; i < last; i++ {
			ret = append(ret, WindowName(p, i))
		}
	}
	return ret, nil
}

//ParseWindow returns the index and phase of the window name w.
//Only names WindowName can produce (a letter and at least 3 digits) are accepted.
func ParseWindow(w string) (int, Phase, error) {
	if len(w) < 4 {
		return 0, "", fmt.Errorf("%w: %q", ErrWindowName, w)
	}
	var p Phase
	switch w[0] {
	case 'a':
		p = Attach
	case 'p':
		p = Pull
	case 'r':
		p = Release
	default:
		return 0, "", fmt.Errorf("%w: %q", ErrWindowName, w)
	}
	if strings.Trim(w[1:], "0123456789") != "" {
		return 0, "", fmt.Errorf("%w: %q", ErrWindowName, w)
	}
	i, err := strconv.Atoi(w[1:])
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q", ErrWindowName, w)
	}
	return i, p, nil
}
