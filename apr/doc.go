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
Package apr sets up the restraints of an attach-pull-release (APR) binding free
energy calculation for a host-guest system, and writes them, as AMBER NMR
restraints, to one directory per window.

Four families of restraints are built from a set of anchor masks:

	static:         keep the host in place with respect to three dummy atoms.
	guest:          orient the guest and pull it out of the host.
	conformational: keep the torsions of the host residues.
	wall:           keep the guest inside the host during the attach phase.

Setup does that for one system, Run for every system in a configuration.
*/
package apr
