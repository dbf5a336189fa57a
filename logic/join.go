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

import "strings"

var (
	// YES is truth, the empty conjunction. A rule whose body is YES is a
	// fact.
	YES = And{}
	// NO is falsity, the empty disjunction. It doubles as the absorbing
	// condition paired with a failed binding.
	NO = Or{}
)

// And is an ordered conjunction. Nested conjunctions are flattened on
// construction, so no immediate child of an And is itself an And.
type And struct {
	Args []Logical
}

// NewAnd builds a conjunction, splicing in the children of same-kind joins.
func NewAnd(args ...Logical) And {
	merged := make([]Logical, 0, len(args))
	for _, a := range args {
		if inner, ok := a.(And); ok {
			merged = append(merged, inner.Args...)
		} else {
			merged = append(merged, a)
		}
	}
	return And{Args: merged}
}

// First returns the first conjunct, under the assumption that it exists.
func (a And) First() Logical { return a.Args[0] }

// Rest returns the conjunction with all conjuncts except the first.
func (a And) Rest() And { return And{Args: a.Args[1:]} }

// String implements Logical.
func (a And) String() string { return joinString(a.Args, " & ", "YES") }

// Map implements Logical.
func (a And) Map(f func(Logical) Logical) Logical {
	return NewAnd(mapAll(a.Args, f)...)
}

// Or is an ordered disjunction, flattened like And.
type Or struct {
	Args []Logical
}

// NewOr builds a disjunction, splicing in the children of same-kind joins.
func NewOr(args ...Logical) Or {
	merged := make([]Logical, 0, len(args))
	for _, a := range args {
		if inner, ok := a.(Or); ok {
			merged = append(merged, inner.Args...)
		} else {
			merged = append(merged, a)
		}
	}
	return Or{Args: merged}
}

// First returns the first disjunct, under the assumption that it exists.
func (o Or) First() Logical { return o.Args[0] }

// Rest returns the disjunction with all disjuncts except the first.
func (o Or) Rest() Or { return Or{Args: o.Args[1:]} }

// String implements Logical.
func (o Or) String() string { return joinString(o.Args, " | ", "NO") }

// Map implements Logical.
func (o Or) Map(f func(Logical) Logical) Logical {
	return NewOr(mapAll(o.Args, f)...)
}

// Not wraps a single sub-expression; its semantics is negation as failure.
type Not struct {
	Item Logical
}

// NewNot builds a negation.
func NewNot(item Logical) Not { return Not{Item: item} }

// String implements Logical.
func (n Not) String() string { return "~" + n.Item.String() }

// Map implements Logical.
func (n Not) Map(f func(Logical) Logical) Logical {
	return Not{Item: n.Item.Map(f)}
}

// IsYes reports whether x is the empty conjunction.
func IsYes(x Logical) bool {
	a, ok := x.(And)
	return ok && len(a.Args) == 0
}

// IsNo reports whether x is the empty disjunction.
func IsNo(x Logical) bool {
	o, ok := x.(Or)
	return ok && len(o.Args) == 0
}

func mapAll(args []Logical, f func(Logical) Logical) []Logical {
	out := make([]Logical, len(args))
	for i, a := range args {
		out[i] = a.Map(f)
	}
	return out
}

func joinString(args []Logical, sym, empty string) string {
	if len(args) == 0 {
		return empty
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, sym)
}
