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

package logic

import (
	"fmt"
	"strings"
)

// Term is a named functor with an ordered tuple of arguments. A term with no
// arguments is an atom. You could represent the Prolog sentence
// sibling(leo, milo) as NewTerm("sibling", Atom("leo"), Atom("milo")).
type Term struct {
	Op   string
	Args []Logical
}

// NewTerm builds a term from a functor name and arguments.
func NewTerm(op string, args ...Logical) Term {
	return Term{Op: op, Args: args}
}

// Atom builds a term with no arguments.
func Atom(op string) Term {
	return Term{Op: op}
}

// String implements Logical.
func (t Term) String() string {
	if len(t.Args) == 0 {
		return t.Op
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Op + "(" + strings.Join(args, ", ") + ")"
}

// Map implements Logical. The functor is preserved; arguments are mapped.
func (t Term) Map(f func(Logical) Logical) Logical {
	args := make([]Logical, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Map(f)
	}
	return Term{Op: t.Op, Args: args}
}

// Implies builds the rule t <= body.
func (t Term) Implies(body Logical) Rule {
	return Rule{Head: t, Body: body}
}

// Functor returns a constructor for terms with the given name and no arity
// check, the usual way to build many sentences over one predicate.
func Functor(name string) func(args ...Logical) Term {
	return func(args ...Logical) Term {
		return Term{Op: name, Args: args}
	}
}

// FunctorN returns an arity-checked constructor for terms with the given
// name. Calling it with a different number of arguments surfaces ErrArity.
func FunctorN(name string, arity int) func(args ...Logical) (Term, error) {
	return func(args ...Logical) (Term, error) {
		if len(args) != arity {
			return Term{}, ErrArity.New(name, arity, len(args))
		}
		return Term{Op: name, Args: args}, nil
	}
}

// Var is a logic variable. Two variables are equal iff both name and id
// match. A nonzero id marks a standardized-apart copy.
type Var struct {
	Name string
	ID   uint64
}

// NewVar returns a fresh variable with no id.
func NewVar(name string) Var { return Var{Name: name} }

// String implements Logical.
func (v Var) String() string {
	if v.ID != 0 {
		return fmt.Sprintf("%s_%d", v.Name, v.ID)
	}
	return v.Name
}

// Map implements Logical.
func (v Var) Map(f func(Logical) Logical) Logical { return f(v) }

// Tail returns the list-tail marker for this variable, the equivalent of the
// Prolog "|": unifying (x, +t) against a tuple binds t to the remainder.
func (v Var) Tail() Tail { return Tail(v) }

// Variables returns one fresh variable per rune of s, so
// Variables("XYZ") yields X, Y and Z.
func Variables(s string) []Var {
	vars := make([]Var, 0, len(s))
	for _, r := range s {
		vars = append(vars, Var{Name: string(r)})
	}
	return vars
}

// Tail marks the list-tail position in a tuple pattern. It carries the same
// (name, id) as the variable it was built from and can be demoted back.
type Tail struct {
	Name string
	ID   uint64
}

// Var demotes the tail to its ordinary variable form.
func (t Tail) Var() Var { return Var(t) }

// String implements Logical.
func (t Tail) String() string { return "+" + Var(t).String() }

// Map implements Logical.
func (t Tail) Map(f func(Logical) Logical) Logical { return f(t) }

// Literal is a ground host value: a number or a string produced by the
// parser, or any value supplied by client code.
type Literal struct {
	Value interface{}
}

// NewLiteral wraps a host value.
func NewLiteral(v interface{}) Literal { return Literal{Value: v} }

// String implements Logical.
func (l Literal) String() string { return fmt.Sprint(l.Value) }

// Map implements Logical.
func (l Literal) Map(f func(Logical) Logical) Logical { return f(l) }

// Tuple is an ordered sequence of expressions. It is not produced by the
// parser; it appears as the value a tail variable binds to and as the
// carrier for tuple unification.
type Tuple []Logical

// String implements Logical.
func (t Tuple) String() string {
	items := make([]string, len(t))
	for i, x := range t {
		items[i] = x.String()
	}
	return "(" + strings.Join(items, ", ") + ")"
}

// Map implements Logical.
func (t Tuple) Map(f func(Logical) Logical) Logical {
	out := make(Tuple, len(t))
	for i, x := range t {
		out[i] = x.Map(f)
	}
	return out
}
