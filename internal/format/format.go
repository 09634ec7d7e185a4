// Copyright 2026 The Quarry Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package format parses printf-style templates into literal spans and
// verbs, and decides whether a verb's kind selector is compatible with an
// argument's type.
package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Part is one span of a parsed template: a [Literal] or a [Verb].
type Part interface {
	part()
}

// Literal is a span of template text without formatting directives.
type Literal string

func (Literal) part() {}

// OptionKind describes how a width or precision is supplied.
type OptionKind int

//go:generate go tool stringer -type OptionKind
const (
	// OptNone means the option is absent.
	OptNone OptionKind = iota
	// OptLiteral means the option is a literal number in the template.
	OptLiteral
	// OptStar means the option is read from an argument.
	OptStar
)

// Option is a verb's width or precision.
type Option struct {
	Kind OptionKind
	// Value is the literal number for OptLiteral, or the explicit 1-based
	// argument index for OptStar (-1 when the star uses the implicit
	// cursor).
	Value int
}

// Verb is one formatting directive.
type Verb struct {
	// Letter is the kind selector, e.g. 'd'. The letter '%' marks an
	// escaped percent sign consuming no argument.
	Letter rune
	// Flags holds the verb's flag characters.
	Flags string
	// Index is the explicit 1-based argument index, or -1 when the verb
	// uses the implicit cursor. Index 0 is representable and invalid.
	Index int
	// Width and Precision are the verb's options.
	Width     Option
	Precision Option
}

func (Verb) part() {}

// ErrMissingVerb is wrapped into errors for templates ending mid-directive.
var ErrMissingVerb = errors.New("missing verb at end of format string")

const verbFlags = "+-# 0"

// Parse splits a template into literal spans and verbs. A malformed
// directive yields an error describing the defect; callers convert it into
// a diagnostic, never a process failure.
func Parse(template string) ([]Part, error) {
	p := parser{src: template}

	var parts []Part

	for p.pos < len(p.src) {
		next := strings.IndexByte(p.src[p.pos:], '%')
		if next < 0 {
			parts = append(parts, Literal(p.src[p.pos:]))

			break
		}

		if next > 0 {
			parts = append(parts, Literal(p.src[p.pos:p.pos+next]))
			p.pos += next
		}

		p.pos++ // consume '%'

		verb, err := p.verb()
		if err != nil {
			return nil, err
		}

		parts = append(parts, verb)
	}

	return parts, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) verb() (Verb, error) {
	v := Verb{Index: -1}

	v.Flags = p.flags()

	// Width, possibly with an explicit star index. A bracket not followed
	// by a star is the verb's own argument index.
	indexed, err := p.option(&v.Width, &v.Index)
	if err != nil {
		return Verb{}, err
	}

	if !indexed && p.eat('.') {
		v.Precision = Option{Kind: OptLiteral, Value: 0}

		indexed, err = p.option(&v.Precision, &v.Index)
		if err != nil {
			return Verb{}, err
		}
	}

	if !indexed && p.peek() == '[' {
		n, err := p.bracket()
		if err != nil {
			return Verb{}, err
		}

		v.Index = n
	}

	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	if size == 0 {
		return Verb{}, ErrMissingVerb
	}
	p.pos += size

	v.Letter = r
	if r == '%' {
		return Verb{Letter: '%', Index: -1}, nil
	}

	return v, nil
}

// option parses a width or precision into opt. When a bracketed index is
// not followed by a star it belongs to the verb itself; option stores it
// in index and reports true, ending the directive's option section.
func (p *parser) option(opt *Option, index *int) (indexed bool, err error) {
	switch {
	case p.peek() == '[':
		n, err := p.bracket()
		if err != nil {
			return false, err
		}

		if p.eat('*') {
			*opt = Option{Kind: OptStar, Value: n}

			return false, nil
		}

		*index = n

		return true, nil

	case p.eat('*'):
		*opt = Option{Kind: OptStar, Value: -1}

		return false, nil

	default:
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}

		if p.pos > start {
			n, err := strconv.Atoi(p.src[start:p.pos])
			if err != nil {
				return false, fmt.Errorf("invalid width or precision %q: %w", p.src[start:p.pos], err)
			}

			*opt = Option{Kind: OptLiteral, Value: n}
		}

		return false, nil
	}
}

func (p *parser) bracket() (int, error) {
	start := p.pos
	p.pos++ // consume '['

	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return 0, fmt.Errorf("unterminated argument index %q", p.src[start:])
	}

	n, err := strconv.Atoi(p.src[p.pos : p.pos+end])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid argument index %q", p.src[start:p.pos+end+1])
	}

	p.pos += end + 1

	return n, nil
}

func (p *parser) flags() string {
	start := p.pos
	for p.pos < len(p.src) && strings.IndexByte(verbFlags, p.src[p.pos]) >= 0 {
		p.pos++
	}

	return p.src[start:p.pos]
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

func (p *parser) eat(c byte) bool {
	if p.peek() != c {
		return false
	}

	p.pos++

	return true
}
