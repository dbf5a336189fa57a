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
	"sort"
	"strings"
)

// Binding is a finite mapping from variables to values. It is bidirectional
// for variable aliases: when a variable is bound to another variable, the
// inverse lookup finds the original key, which unification relies on.
// Compound values are not reverse-indexed.
//
// Unification never binds a variable to a variable that is already bound, so
// forward chains never close into a cycle. A variable that is already some
// key's value is not bound again: a new variable is bound to the topmost key
// of its alias chain instead, so no two keys map to the same variable value
// and a value stored forward can itself be a key.
//
// NoBinding is the distinguished failure value; it absorbs every operation.
type Binding struct {
	failed bool
	fwd    map[Var]Logical
	rev    map[Var]Var
}

// NoBinding is the absorbing failure binding. Unification returns it in
// place of an error; proof search propagates and swallows it silently.
var NoBinding = &Binding{failed: true}

// NewBinding returns an empty binding.
func NewBinding() *Binding {
	return &Binding{
		fwd: map[Var]Logical{},
		rev: map[Var]Var{},
	}
}

// Failed reports whether this is the failure binding. A nil binding counts
// as empty, not failed.
func (b *Binding) Failed() bool {
	return b != nil && b.failed
}

// Len returns the number of bound variables.
func (b *Binding) Len() int {
	if b == nil || b.failed {
		return 0
	}
	return len(b.fwd)
}

// Get returns the value bound to v. Tails must be demoted to variables
// before lookup; keys are never tails.
func (b *Binding) Get(v Var) (Logical, bool) {
	if b == nil || b.failed {
		return nil, false
	}
	val, ok := b.fwd[v]
	return val, ok
}

// alias returns the key variable whose value is the variable x, if any.
func (b *Binding) alias(x Var) (Var, bool) {
	if b == nil || b.failed {
		return Var{}, false
	}
	k, ok := b.rev[x]
	return k, ok
}

// Copy returns an independent copy. Copying the failure binding returns the
// failure binding itself.
func (b *Binding) Copy() *Binding {
	if b == nil {
		return NewBinding()
	}
	if b.failed {
		return NoBinding
	}
	out := &Binding{
		fwd: make(map[Var]Logical, len(b.fwd)),
		rev: make(map[Var]Var, len(b.rev)),
	}
	for k, v := range b.fwd {
		out.fwd[k] = v
	}
	for k, v := range b.rev {
		out.rev[k] = v
	}
	return out
}

// With returns a copy of b extended with v bound to x. Binding on the
// failure value returns the failure value.
func (b *Binding) With(v Var, x Logical) *Binding {
	if b.Failed() {
		return NoBinding
	}
	out := b.Copy()
	out.fwd[v] = x
	if xv, ok := x.(Var); ok {
		out.rev[xv] = v
	}
	return out
}

// Vars returns the bound variables sorted by name then id.
func (b *Binding) Vars() []Var {
	if b == nil || b.failed {
		return nil
	}
	vars := make([]Var, 0, len(b.fwd))
	for v := range b.fwd {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool {
		if vars[i].Name != vars[j].Name {
			return vars[i].Name < vars[j].Name
		}
		return vars[i].ID < vars[j].ID
	})
	return vars
}

// Equal reports whether two bindings hold the same entries. Failure only
// equals failure.
func (b *Binding) Equal(o *Binding) bool {
	if b.Failed() || o.Failed() {
		return b.Failed() && o.Failed()
	}
	if b.Len() != o.Len() {
		return false
	}
	for _, v := range b.Vars() {
		x, _ := b.Get(v)
		y, ok := o.Get(v)
		if !ok || !Equal(x, y) {
			return false
		}
	}
	return true
}

// String renders the binding as {X: value, ...} with keys sorted, or NO for
// the failure binding.
func (b *Binding) String() string {
	if b.Failed() {
		return "NO"
	}
	var parts []string
	for _, v := range b.Vars() {
		val, _ := b.Get(v)
		parts = append(parts, v.String()+": "+val.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
