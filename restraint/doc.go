/*
 * doc.go, part of goAPR.
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

/*
Package restraint implements the distance, angle and torsion (DAT) restraints
used in attach-pull-release (APR) free energy calculations, and their output
as AMBER NMR restraints.

A DAT restraint acts on 2 to 4 groups of atoms, given as AMBER masks. Each of
the three APR phases has its own schedule of force constants and targets:

	attach:  the force constant grows while the target stays fixed.
	pull:    the target moves while the force constant stays fixed.
	release: the force constant changes while the target stays fixed.

Each schedule can be given in several ways (number of windows, increments,
fraction lists or explicit lists; see AttachSpec and PullSpec). Initialize
resolves the masks and turns the specification into per-window values.
WindowList derives the window names (a000, p000, r000...) for a set of
restraints, and AmberLine writes the restraint for one window.
*/
package restraint
