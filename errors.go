/*
 * errors.go, part of goAPR.
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

import "fmt"

//CError is the general goAPR error. It fullfills chem.Error.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err CError) Decorate(dec string) []string {
	//Even thought this method does not use a pointer as a receiver, and tries to alter the received,
	//it should work, since err.deco is a slice, and hence a pointer itself.
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FError is the error returned by the file readers. It fullfills chem.FileError.
type FError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	format   string
	deco     []string
	critical bool
}

func (err FError) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("%s error: %s", err.format, err.message)
	}
	return fmt.Sprintf("%s file %s error: %s", err.format, err.filename, err.message)
}

func (E FError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func (err FError) FileName() string { return err.filename }

func (err FError) Format() string { return err.format }

func (err FError) Critical() bool { return err.critical }

//errDecorate is a helper function that decorates the error with the caller's name
//and, for file errors, sets the file name if it was missing. Errors that don't
//implement chem.Error are returned unchanged.
func errDecorate(err error, caller string, filename ...string) error {
	switch e := err.(type) {
	case FError:
		if len(filename) > 0 && e.filename == "" {
			e.filename = filename[0]
		}
		e.deco = e.Decorate(caller)
		return e
	case Error:
		e.Decorate(caller)
		return e
	}
	return err
}

const (
	UnableToOpen = "Unable to open file"
	WrongFormat  = "Wrong format in the file"
	MissingData  = "Required data missing"
)
