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

/*Package chem is the main package of goAPR. It provides atom and molecule structures,
readers for the structure files used to set up attach-pull-release (APR) free energy
calculations and the geometric functions needed to measure restraint targets.



	**Capabilities**


    Reads AMBER7 topologies (prmtop/parm7), AMBER coordinates (inpcrd/rst7)
	and PDB files. Any of them can be gzip or zstd compressed.

    Groups atoms in residues numbered the AMBER way, so they can be selected
	with AMBER masks (see the mask package).

    Measures distances, angles and dihedrals between the centers of mass
	of groups of atoms.


The restraint package builds the restraints themselves, and the apr package
assembles the four restraint families of a host-guest APR calculation
and writes the AMBER restraint files for each window.

*/
package chem
