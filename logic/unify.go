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

// OccursCheck is the package-wide default for the occurs check during
// unification. It is off by default, which admits cyclic bindings the same
// way most Prolog systems do; turning it on makes unify-variable fail when
// the variable occurs in the value.
var OccursCheck = false

// Unify returns the most general unifier extending b under which x and y are
// structurally equal, or NoBinding. It is commutative in x and y, and
// failure passed in as b is passed straight through, so unifiers compose.
func Unify(x, y Logical, b *Binding) *Binding {
	return UnifyWithOptions(x, y, b, OccursCheck)
}

// UnifyWithOptions is Unify with a call-time occurs-check toggle.
func UnifyWithOptions(x, y Logical, b *Binding, occursCheck bool) *Binding {
	if b == nil {
		b = NewBinding()
	}
	if b.Failed() {
		return NoBinding
	}
	if Equal(x, y) {
		return b
	}
	if v, ok := x.(Var); ok {
		return unifyVariable(v, y, b, occursCheck)
	}
	if v, ok := y.(Var); ok {
		return unifyVariable(v, x, b, occursCheck)
	}
	// A tail marker outside the tail position of a tuple does not unify
	// with anything.
	if _, ok := x.(Tail); ok {
		return NoBinding
	}
	if _, ok := y.(Tail); ok {
		return NoBinding
	}
	switch a := x.(type) {
	case Term:
		c, ok := y.(Term)
		if !ok || a.Op != c.Op || len(a.Args) != len(c.Args) {
			return NoBinding
		}
		return unifyTuples(a.Args, c.Args, b, occursCheck)
	case Tuple:
		c, ok := y.(Tuple)
		if !ok {
			return NoBinding
		}
		return unifyTuples(a, c, b, occursCheck)
	case And:
		c, ok := y.(And)
		if !ok {
			return NoBinding
		}
		return unifyTuples(a.Args, c.Args, b, occursCheck)
	case Or:
		c, ok := y.(Or)
		if !ok {
			return NoBinding
		}
		return unifyTuples(a.Args, c.Args, b, occursCheck)
	case Not:
		c, ok := y.(Not)
		if !ok {
			return NoBinding
		}
		return UnifyWithOptions(a.Item, c.Item, b, occursCheck)
	}
	return NoBinding
}

// UnifyTuples unifies two argument tuples, honoring the tail pattern: a
// tuple of exactly one tail marker binds that variable to the whole other
// side.
func UnifyTuples(x, y []Logical, b *Binding) *Binding {
	return unifyTuples(x, y, b, OccursCheck)
}

func unifyTuples(x, y []Logical, b *Binding, occursCheck bool) *Binding {
	if b == nil {
		b = NewBinding()
	}
	if b.Failed() {
		return NoBinding
	}
	if t, ok := tailPattern(x); ok {
		return unifyVariable(t.Var(), Tuple(append([]Logical(nil), y...)), b, occursCheck)
	}
	if t, ok := tailPattern(y); ok {
		return unifyVariable(t.Var(), Tuple(append([]Logical(nil), x...)), b, occursCheck)
	}
	if len(x) == 0 || len(y) == 0 {
		if len(x) == len(y) {
			return b
		}
		return NoBinding
	}
	return unifyTuples(x[1:], y[1:], UnifyWithOptions(x[0], y[0], b, occursCheck), occursCheck)
}

// tailPattern reports whether the tuple is exactly one tail marker.
func tailPattern(x []Logical) (Tail, bool) {
	if len(x) != 1 {
		return Tail{}, false
	}
	t, ok := x[0].(Tail)
	return t, ok
}

func unifyVariable(v Var, x Logical, b *Binding, occursCheck bool) *Binding {
	if val, ok := b.Get(v); ok {
		return UnifyWithOptions(val, x, b, occursCheck)
	}
	if xv, ok := x.(Var); ok {
		// A bound variable stands for its value; binding v to it directly
		// could close a cycle such as X -> Y, Y -> X.
		if val, ok := b.Get(xv); ok {
			return UnifyWithOptions(v, val, b, occursCheck)
		}
		// An unbound variable that is already some key's value is reached
		// through the topmost key of its alias chain instead.
		for {
			alias, ok := b.alias(xv)
			if !ok {
				break
			}
			xv = alias
		}
		return b.With(v, xv)
	}
	if occursCheck && Occurs(v, x) {
		return NoBinding
	}
	return b.With(v, x)
}

// Occurs reports whether v appears anywhere inside val, recursing through
// terms, tuples and joins.
func Occurs(v Var, val Logical) bool {
	return VariablesIn(val).Has(v)
}

// Unifiable reports whether x and y unify under an empty binding. Forward
// chaining uses it to test fact subsumption.
func Unifiable(x, y Logical) bool {
	return !Unify(x, y, nil).Failed()
}

// Resolve follows the binding chain from x to a value. An unbound variable
// resolves to FREE. Non-variables resolve to themselves.
func Resolve(x Logical, b *Binding) Logical {
	seen := map[Var]struct{}{}
	for {
		var v Var
		switch t := x.(type) {
		case Var:
			v = t
		case Tail:
			v = t.Var()
		default:
			return x
		}
		if _, cyclic := seen[v]; cyclic {
			return FREE
		}
		seen[v] = struct{}{}
		val, ok := b.Get(v)
		if !ok {
			return FREE
		}
		x = val
	}
}

// ResolveDeep resolves x through the binding all the way down: variable
// chains are followed and compound values have their variables resolved
// recursively. Unlike Resolve, unbound variables stay themselves.
func ResolveDeep(x Logical, b *Binding) Logical {
	return resolveDeep(x, b, map[Var]struct{}{})
}

func resolveDeep(x Logical, b *Binding, seen map[Var]struct{}) Logical {
	var v Var
	switch t := x.(type) {
	case Var:
		v = t
	case Tail:
		v = t.Var()
	default:
		return x.Map(func(l Logical) Logical {
			return resolveDeep(l, b, seen)
		})
	}
	if _, cyclic := seen[v]; cyclic {
		return x
	}
	val, ok := b.Get(v)
	if !ok {
		return x
	}
	seen[v] = struct{}{}
	out := resolveDeep(val, b, seen)
	delete(seen, v)
	return out
}
