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

	"github.com/spf13/cast"
)

// Constraint embeds host comparisons inside proof procedures. Test takes a
// binding and returns the bindings under which the constraint holds, which
// is how constraints can both filter and extend bindings.
type Constraint interface {
	Logical
	Test(b *Binding) []*Binding
	Sides() (Logical, Logical)
}

// Equals holds when its two sides unify, binding free variables as a side
// effect. It is unification, not value comparison.
type Equals struct {
	Left  Logical
	Right Logical
}

// NewEquals builds an equality constraint.
func NewEquals(left, right Logical) Equals { return Equals{Left: left, Right: right} }

// Test implements Constraint.
func (e Equals) Test(b *Binding) []*Binding {
	u := Unify(e.Left, e.Right, b)
	if u.Failed() {
		return nil
	}
	return []*Binding{u}
}

// Sides implements Constraint.
func (e Equals) Sides() (Logical, Logical) { return e.Left, e.Right }

// String implements Logical.
func (e Equals) String() string { return constraintString("Equals", e.Left, e.Right) }

// Map implements Logical.
func (e Equals) Map(f func(Logical) Logical) Logical {
	return Equals{Left: e.Left.Map(f), Right: e.Right.Map(f)}
}

// LE holds when left <= right under the host's ordered comparison.
type LE struct {
	Left  Logical
	Right Logical
}

// NewLE builds a less-or-equal constraint.
func NewLE(left, right Logical) LE { return LE{Left: left, Right: right} }

// Test implements Constraint.
func (c LE) Test(b *Binding) []*Binding { return compare(c.Left, c.Right, b, func(n int) bool { return n <= 0 }) }

// Sides implements Constraint.
func (c LE) Sides() (Logical, Logical) { return c.Left, c.Right }

// String implements Logical.
func (c LE) String() string { return constraintString("LE", c.Left, c.Right) }

// Map implements Logical.
func (c LE) Map(f func(Logical) Logical) Logical {
	return LE{Left: c.Left.Map(f), Right: c.Right.Map(f)}
}

// GE holds when left >= right.
type GE struct {
	Left  Logical
	Right Logical
}

// NewGE builds a greater-or-equal constraint.
func NewGE(left, right Logical) GE { return GE{Left: left, Right: right} }

// Test implements Constraint.
func (c GE) Test(b *Binding) []*Binding { return compare(c.Left, c.Right, b, func(n int) bool { return n >= 0 }) }

// Sides implements Constraint.
func (c GE) Sides() (Logical, Logical) { return c.Left, c.Right }

// String implements Logical.
func (c GE) String() string { return constraintString("GE", c.Left, c.Right) }

// Map implements Logical.
func (c GE) Map(f func(Logical) Logical) Logical {
	return GE{Left: c.Left.Map(f), Right: c.Right.Map(f)}
}

// LT holds when left < right.
type LT struct {
	Left  Logical
	Right Logical
}

// NewLT builds a strictly-less constraint.
func NewLT(left, right Logical) LT { return LT{Left: left, Right: right} }

// Test implements Constraint.
func (c LT) Test(b *Binding) []*Binding { return compare(c.Left, c.Right, b, func(n int) bool { return n < 0 }) }

// Sides implements Constraint.
func (c LT) Sides() (Logical, Logical) { return c.Left, c.Right }

// String implements Logical.
func (c LT) String() string { return constraintString("LT", c.Left, c.Right) }

// Map implements Logical.
func (c LT) Map(f func(Logical) Logical) Logical {
	return LT{Left: c.Left.Map(f), Right: c.Right.Map(f)}
}

// GT holds when left > right.
type GT struct {
	Left  Logical
	Right Logical
}

// NewGT builds a strictly-greater constraint.
func NewGT(left, right Logical) GT { return GT{Left: left, Right: right} }

// Test implements Constraint.
func (c GT) Test(b *Binding) []*Binding { return compare(c.Left, c.Right, b, func(n int) bool { return n > 0 }) }

// Sides implements Constraint.
func (c GT) Sides() (Logical, Logical) { return c.Left, c.Right }

// String implements Logical.
func (c GT) String() string { return constraintString("GT", c.Left, c.Right) }

// Map implements Logical.
func (c GT) Map(f func(Logical) Logical) Logical {
	return GT{Left: c.Left.Map(f), Right: c.Right.Map(f)}
}

func constraintString(name string, left, right Logical) string {
	return fmt.Sprintf("%s(%s, %s)", name, left, right)
}

// compare resolves both sides to host values through the binding and applies
// the ordered comparison. A side that resolves to FREE fails the constraint.
func compare(left, right Logical, b *Binding, holds func(int) bool) []*Binding {
	lv := Resolve(left, b)
	rv := Resolve(right, b)
	if Equal(lv, FREE) || Equal(rv, FREE) {
		return nil
	}
	lraw, ok := hostValue(lv)
	if !ok {
		return nil
	}
	rraw, ok := hostValue(rv)
	if !ok {
		return nil
	}
	n, ok := compareValues(lraw, rraw)
	if !ok || !holds(n) {
		return nil
	}
	return []*Binding{b}
}

// hostValue extracts the native value behind an expression: literals carry
// their value, atoms compare by name.
func hostValue(x Logical) (interface{}, bool) {
	switch t := x.(type) {
	case Literal:
		return t.Value, true
	case Term:
		if len(t.Args) == 0 {
			return t.Op, true
		}
	}
	return nil, false
}

// compareValues orders two host values, numerically when both sides cast to
// float64 and lexically when both cast to strings.
func compareValues(a, b interface{}) (int, bool) {
	af, aerr := cast.ToFloat64E(a)
	bf, berr := cast.ToFloat64E(b)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}
	as, aerr := cast.ToStringE(a)
	bs, berr := cast.ToStringE(b)
	if aerr == nil && berr == nil {
		switch {
		case as < bs:
			return -1, true
		case as > bs:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
