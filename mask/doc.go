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
Package mask selects atoms from a goAPR topology using AMBER mask syntax,
the way restraints are usually specified for AMBER/pAPRika-style APR setups.

Supported syntax:

	:1-6          residues 1 to 6 (sequential residue numbers, starting from 1)
	:MGO,COC      residues by name; * and ? are wildcards, = is the same as *
	@C1,O5        atoms by name, with the same wildcards
	@12-20        atoms by number (1-based)
	@%c3          atoms by force-field type
	@/O           atoms by element
	:3@C1         atom C1 of residue 3
	*             everything

Selections can be combined with & (and), | (or), ! (not) and parentheses.
Distance-based selections (< and >) are not supported.
*/
package mask
