/*
 * mask.go, part of goAPR.
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

package mask

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	chem "github.com/rmera/goapr"
)

type tokenKind int

const (
	tkTerm tokenKind = iota
	tkAnd
	tkOr
	tkNot
	tkLParen
	tkRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

const separators = " \t&|!()<>"

func tokenize(mask string) ([]token, error) {
	tokens := make([]token, 0, 4)
	for i := 0; i < len(mask); {
		c := mask[i]
		switch c {
		case ' ', '\t':
			i++
		case '&':
			tokens = append(tokens, token{tkAnd, "&", i})
			i++
		case '|':
			tokens = append(tokens, token{tkOr, "|", i})
			i++
		case '!':
			tokens = append(tokens, token{tkNot, "!", i})
			i++
		case '(':
			tokens = append(tokens, token{tkLParen, "(", i})
			i++
		case ')':
			tokens = append(tokens, token{tkRParen, ")", i})
			i++
		case ':', '@', '*':
			j := i + 1
			for j < len(mask) && !strings.ContainsRune(separators, rune(mask[j])) {
				j++
			}
			tokens = append(tokens, token{tkTerm, mask[i:j], i})
			i = j
		case '<', '>':
			return nil, fmt.Errorf("distance selections are not supported (position %d)", i)
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", c, i)
		}
	}
	return tokens, nil
}

//parser evaluates the mask against a topology as it parses it, so
//every node returns the selection as a slice of bools.
type parser struct {
	tokens []token
	pos    int
	top    chem.Residuer
	resOf  []*chem.Residue //residue of each atom
}

func (p *parser) peek() *token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

// expr := and ('|' and)*
func (p *parser) expr() ([]bool, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for t := p.peek(); t != nil && t.kind == tkOr; t = p.peek() {
		p.pos++
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		for i := range left {
			left[i] = left[i] || right[i]
		}
	}
	return left, nil
}

// and := unary ('&' unary)*
func (p *parser) and() ([]bool, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for t := p.peek(); t != nil && t.kind == tkAnd; t = p.peek() {
		p.pos++
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		for i := range left {
			left[i] = left[i] && right[i]
		}
	}
	return left, nil
}

// unary := '!' unary | '(' expr ')' | term
func (p *parser) unary() ([]bool, error) {
	t := p.peek()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of mask")
	}
	switch t.kind {
	case tkNot:
		p.pos++
		sel, err := p.unary()
		if err != nil {
			return nil, err
		}
		for i := range sel {
			sel[i] = !sel[i]
		}
		return sel, nil
	case tkLParen:
		p.pos++
		sel, err := p.expr()
		if err != nil {
			return nil, err
		}
		if c := p.peek(); c == nil || c.kind != tkRParen {
			return nil, fmt.Errorf("unbalanced parenthesis at position %d", t.pos)
		}
		p.pos++
		return sel, nil
	case tkTerm:
		p.pos++
		return p.term(t.text)
	}
	return nil, fmt.Errorf("unexpected %q at position %d", t.text, t.pos)
}

//term evaluates a single :residues@atoms, @atoms or * selection.
func (p *parser) term(t string) ([]bool, error) {
	n := p.top.Len()
	sel := make([]bool, n)
	if t == "*" {
		for i := range sel {
			sel[i] = true
		}
		return sel, nil
	}
	var respart, atpart string
	var hasres, hasat bool
	switch t[0] {
	case ':':
		hasres = true
		respart = t[1:]
		if k := strings.IndexByte(respart, '@'); k >= 0 {
			hasat = true
			atpart = respart[k+1:]
			respart = respart[:k]
		}
	case '@':
		hasat = true
		atpart = t[1:]
	default:
		return nil, fmt.Errorf("malformed selection %q", t)
	}
	var resmatch, atmatch func(i int) bool
	if hasres {
		items, err := parseList(respart)
		if err != nil {
			return nil, fmt.Errorf("residue list in %q: %w", t, err)
		}
		resmatch = func(i int) bool {
			r := p.resOf[i]
			return items.match(r.Index, r.Name)
		}
	}
	if hasat {
		var field func(at *chem.Atom) string
		switch {
		case strings.HasPrefix(atpart, "%"):
			atpart = atpart[1:]
			field = func(at *chem.Atom) string { return at.Type }
		case strings.HasPrefix(atpart, "/"):
			atpart = atpart[1:]
			field = func(at *chem.Atom) string { return at.Symbol }
		default:
			field = func(at *chem.Atom) string { return at.Name }
		}
		items, err := parseList(atpart)
		if err != nil {
			return nil, fmt.Errorf("atom list in %q: %w", t, err)
		}
		atmatch = func(i int) bool {
			return items.match(i+1, field(p.top.Atom(i)))
		}
	}
	for i := range sel {
		sel[i] = (resmatch == nil || resmatch(i)) && (atmatch == nil || atmatch(i))
	}
	return sel, nil
}

//item is either a numeric range (lo<=n<=hi) or a name pattern.
type item struct {
	lo, hi  int
	pattern string
}

type itemList []item

func (l itemList) match(number int, name string) bool {
	for _, it := range l {
		if it.pattern == "" {
			if number >= it.lo && number <= it.hi {
				return true
			}
			continue
		}
		if ok, _ := path.Match(it.pattern, name); ok {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

//parseList parses a comma-separated list of numbers, ranges and names.
func parseList(s string) (itemList, error) {
	if s == "" {
		return nil, fmt.Errorf("empty list")
	}
	fields := strings.Split(s, ",")
	ret := make(itemList, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			return nil, fmt.Errorf("empty element in list %q", s)
		}
		if isDigits(f) {
			n, _ := strconv.Atoi(f)
			ret = append(ret, item{lo: n, hi: n})
			continue
		}
		if lo, hi, ok := strings.Cut(f, "-"); ok && isDigits(lo) {
			if !isDigits(hi) {
				return nil, fmt.Errorf("malformed range %q", f)
			}
			l, _ := strconv.Atoi(lo)
			h, _ := strconv.Atoi(hi)
			if h < l {
				return nil, fmt.Errorf("inverted range %q", f)
			}
			ret = append(ret, item{lo: l, hi: h})
			continue
		}
		pattern := strings.ReplaceAll(f, "=", "*")
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", f, err)
		}
		ret = append(ret, item{pattern: pattern})
	}
	return ret, nil
}

//Select returns the indexes (0-based, ascending) of the atoms of top selected by
//the AMBER mask. A valid mask that matches no atom returns an empty slice and no error.
func Select(top chem.Residuer, mask string) ([]int, error) {
	mask = strings.TrimSpace(mask)
	if mask == "" {
		return nil, Error{"empty mask", mask, []string{"Select"}}
	}
	tokens, err := tokenize(mask)
	if err != nil {
		return nil, Error{err.Error(), mask, []string{"tokenize", "Select"}}
	}
	p := &parser{tokens: tokens, top: top, resOf: make([]*chem.Residue, top.Len())}
	for _, r := range top.Residues() {
		for _, a := range r.Atoms {
			p.resOf[a] = r
		}
	}
	sel, err := p.expr()
	if err != nil {
		return nil, Error{err.Error(), mask, []string{"Select"}}
	}
	if p.pos != len(p.tokens) {
		return nil, Error{fmt.Sprintf("unexpected %q at position %d", p.tokens[p.pos].text, p.tokens[p.pos].pos), mask, []string{"Select"}}
	}
	ret := make([]int, 0, 4)
	for i, v := range sel {
		if v {
			ret = append(ret, i)
		}
	}
	return ret, nil
}

//Residues returns, in order, the residues with at least one atom selected by mask.
func Residues(top chem.Residuer, mask string) ([]*chem.Residue, error) {
	sel, err := Select(top, mask)
	if err != nil {
		return nil, errDecorate(err, "Residues")
	}
	selected := make(map[int]bool, len(sel))
	for _, v := range sel {
		selected[v] = true
	}
	res := top.Residues()
	ret := make([]*chem.Residue, 0, len(res))
	for _, r := range res {
		for _, a := range r.Atoms {
			if selected[a] {
				ret = append(ret, r)
				break
			}
		}
	}
	return ret, nil
}

//Error is the error returned by the functions of this package. It fullfills chem.Error
type Error struct {
	message string
	mask    string
	deco    []string
}

func (err Error) Error() string {
	return fmt.Sprintf("mask %q: %s", err.mask, err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Mask returns the offending mask.
func (err Error) Mask() string { return err.mask }

func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = e.Decorate(caller)
		return e
	}
	return err
}
