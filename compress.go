/*
 * compress.go, part of goAPR.
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

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//zstd.Decoder doesn't implement io.ReadCloser, as its Close
//returns nothing.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//OpenFile opens the file name for reading. Files ending in .gz or .zst
//are decompressed on the fly. The caller must close the returned object.
func OpenFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, FError{err.Error(), name, "input", []string{"os.Open", "OpenFile"}, true}
	}
	b := bufio.NewReader(f)
	var dec io.ReadCloser
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".gz"):
		dec, err = gzip.NewReader(b)
	case strings.HasSuffix(strings.ToLower(name), ".zst"):
		var z *zstd.Decoder
		z, err = zstd.NewReader(b)
		if err == nil {
			dec = zstdCloser{z}
		}
	default:
		return &multiCloser{b, []io.Closer{f}}, nil
	}
	if err != nil {
		f.Close()
		return nil, FError{"Can't decompress: " + err.Error(), name, "input", []string{"OpenFile"}, true}
	}
	return &multiCloser{dec, []io.Closer{dec, f}}, nil
}

//trimCompression returns name without a trailing .gz or .zst suffix, so the
//format of the underlying file can be guessed from what remains.
func trimCompression(name string) string {
	l := strings.ToLower(name)
	for _, s := range []string{".gz", ".zst"} {
		if strings.HasSuffix(l, s) {
			return name[:len(name)-len(s)]
		}
	}
	return name
}
