// Copyright 2020-2021 Dolthub, Inc.
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

// Package parse turns Prolog source into core logic expressions, one to one:
// `\+ X` becomes a negation, `,` a conjunction, `;` a disjunction, `:-` a
// rule, `true` truth, `fail` and `false` falsity, `!` the CUT keyword.
package parse

import (
	"io"
	"io/ioutil"
	"strconv"

	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-prolog.v0/logic"
	"gopkg.in/src-d/go-prolog.v0/mem"
)

// ErrSyntax is returned when the input does not conform to the grammar.
var ErrSyntax = errors.NewKind("syntax error at line %d: %s")

// Program parses a Prolog program and returns a knowledge-base table
// pre-populated with its clauses.
func Program(src string) (logic.Table, error) {
	rules, err := Clauses(src)
	if err != nil {
		return nil, err
	}
	return mem.NewLinear(rules...), nil
}

// ProgramReader is Program over a readable stream.
func ProgramReader(r io.Reader) (logic.Table, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Program(string(data))
}

// Clauses parses a program into its rules without storing them anywhere.
func Clauses(src string) ([]logic.Rule, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	var rules []logic.Rule
	for p.peek().kind != tkEOF {
		rule, err := p.clause()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Query parses a single query expression, with no trailing dot required.
func Query(src string) (logic.Logical, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	expr, err := p.disjunction()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind == tkDot {
		p.advance()
	}
	if tok := p.peek(); tok.kind != tkEOF {
		return nil, ErrSyntax.New(tok.line, "unexpected "+tokenNames[tok.kind]+" after query")
	}
	return expr, nil
}

type parser struct {
	tokens []token
	pos    int
}

func newParser(src string) (*parser, error) {
	tokens, err := newLexer(src).tokens()
	if err != nil {
		return nil, err
	}
	return &parser{tokens: tokens}, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tkEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.peek()
	if tok.kind != kind {
		return token{}, ErrSyntax.New(tok.line, "expected "+tokenNames[kind]+", got "+tokenNames[tok.kind])
	}
	return p.advance(), nil
}

// clause := term [ ":-" body ] "."
func (p *parser) clause() (logic.Rule, error) {
	head, err := p.primary()
	if err != nil {
		return logic.Rule{}, err
	}
	term, ok := head.(logic.Term)
	if !ok {
		return logic.Rule{}, ErrSyntax.New(p.peek().line, "clause head must be a term")
	}
	rule := logic.Fact(term)
	if p.peek().kind == tkImplies {
		p.advance()
		body, err := p.disjunction()
		if err != nil {
			return logic.Rule{}, err
		}
		rule = logic.NewRule(term, body)
	}
	if _, err := p.expect(tkDot); err != nil {
		return logic.Rule{}, err
	}
	return rule, nil
}

// disjunction := conjunction ( ";" conjunction )*
func (p *parser) disjunction() (logic.Logical, error) {
	first, err := p.conjunction()
	if err != nil {
		return nil, err
	}
	parts := []logic.Logical{first}
	for p.peek().kind == tkSemicolon {
		p.advance()
		next, err := p.conjunction()
		if err != nil {
			return nil, err
		}
		parts = append(parts, next)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return logic.NewOr(parts...), nil
}

// conjunction := unary ( "," unary )*
func (p *parser) conjunction() (logic.Logical, error) {
	first, err := p.unary()
	if err != nil {
		return nil, err
	}
	parts := []logic.Logical{first}
	for p.peek().kind == tkComma {
		p.advance()
		next, err := p.unary()
		if err != nil {
			return nil, err
		}
		parts = append(parts, next)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return logic.NewAnd(parts...), nil
}

// unary := "\+" unary | primary
func (p *parser) unary() (logic.Logical, error) {
	if p.peek().kind == tkNegate {
		p.advance()
		item, err := p.unary()
		if err != nil {
			return nil, err
		}
		return logic.NewNot(item), nil
	}
	return p.primary()
}

func (p *parser) primary() (logic.Logical, error) {
	tok := p.peek()
	switch tok.kind {
	case tkLParen:
		p.advance()
		inner, err := p.disjunction()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tkRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case tkVariable:
		p.advance()
		return logic.NewVar(tok.text), nil
	case tkInt:
		p.advance()
		n, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, ErrSyntax.New(tok.line, "bad integer "+tok.text)
		}
		return logic.NewLiteral(n), nil
	case tkFloat:
		p.advance()
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, ErrSyntax.New(tok.line, "bad float "+tok.text)
		}
		return logic.NewLiteral(f), nil
	case tkString:
		p.advance()
		return logic.NewLiteral(tok.text), nil
	case tkCut:
		p.advance()
		return logic.CUT, nil
	case tkAtom:
		return p.atom()
	}
	return nil, ErrSyntax.New(tok.line, "unexpected "+tokenNames[tok.kind])
}

// atom := name [ "(" arg ( "," arg )* ")" ], with true/fail/false/not
// recognized as keywords.
func (p *parser) atom() (logic.Logical, error) {
	tok := p.advance()
	if p.peek().kind != tkLParen {
		switch tok.text {
		case "true":
			return logic.YES, nil
		case "fail", "false":
			return logic.NO, nil
		}
		return logic.Atom(tok.text), nil
	}

	p.advance() // consume "("
	var args []logic.Logical
	for {
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().kind != tkComma {
			break
		}
		p.advance()
	}
	if _, err := p.expect(tkRParen); err != nil {
		return nil, err
	}

	if tok.text == "not" && len(args) == 1 {
		return logic.NewNot(args[0]), nil
	}
	return logic.NewTerm(tok.text, args...), nil
}
