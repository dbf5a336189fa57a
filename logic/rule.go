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

	"github.com/mitchellh/hashstructure"
)

// Rule is a Horn clause: a head entailed by a body. A rule whose body is YES
// is a fact.
type Rule struct {
	Head Term
	Body Logical
}

// NewRule builds head <= body.
func NewRule(head Term, body Logical) Rule {
	return Rule{Head: head, Body: body}
}

// Fact builds a rule with body YES.
func Fact(head Term) Rule {
	return Rule{Head: head, Body: YES}
}

// Op returns the functor of the head.
func (r Rule) Op() string { return r.Head.Op }

// IsFact reports whether the body is YES.
func (r Rule) IsFact() bool { return IsYes(r.Body) }

// Map applies f over head and body, preserving rule structure.
func (r Rule) Map(f func(Logical) Logical) Rule {
	return Rule{
		Head: r.Head.Map(f).(Term),
		Body: r.Body.Map(f),
	}
}

// Standardize renames all variables of the rule with one fresh shared id, so
// the rule can be consulted many times in a proof without variable capture.
func (r Rule) Standardize() Rule {
	return r.Map(renamer(nextID()))
}

// StripIDs removes variable ids from head and body.
func (r Rule) StripIDs() Rule {
	return r.Map(renamer(0))
}

// Substitute applies the binding over head and body.
func (r Rule) Substitute(b *Binding) Rule {
	if b == nil || b.Failed() {
		return r
	}
	return r.Map(substitution(b))
}

// Equal reports structural equality of two rules.
func (r Rule) Equal(o Rule) bool {
	return Equal(r.Head, o.Head) && Equal(r.Body, o.Body)
}

func (r Rule) String() string {
	return fmt.Sprintf("%s <= %s", r.Head, r.Body)
}

// Hash returns a structural hash of the rule, usable as a deduplication key
// by tables. Rules that are Equal hash identically.
func (r Rule) Hash() (uint64, error) {
	return hashstructure.Hash(r, nil)
}

// HashLogical returns a structural hash of any expression.
func HashLogical(x Logical) (uint64, error) {
	return hashstructure.Hash(x, nil)
}
