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

package mem

import "gopkg.in/src-d/go-prolog.v0/logic"

// Factory builds the sub-tables a composite table delegates to.
type Factory func() logic.Table

// Predicate buckets rules by functor name, delegating each bucket to a
// sub-table built by the factory. A query only ever consults its own
// bucket; a missing bucket is an empty result, not an error.
type Predicate struct {
	factory Factory
	buckets map[string]logic.Table
	ops     []string
}

var _ logic.Table = (*Predicate)(nil)

// NewPredicate returns a predicate-indexed table over sub-tables built by
// the factory. A nil factory buckets into linear tables.
func NewPredicate(factory Factory, rules ...logic.Rule) *Predicate {
	if factory == nil {
		factory = func() logic.Table { return NewLinear() }
	}
	t := &Predicate{
		factory: factory,
		buckets: map[string]logic.Table{},
	}
	for _, r := range rules {
		t.Tell(r)
	}
	return t
}

// Tell implements logic.Table.
func (t *Predicate) Tell(r logic.Rule) {
	bucket, ok := t.buckets[r.Op()]
	if !ok {
		bucket = t.factory()
		t.buckets[r.Op()] = bucket
		t.ops = append(t.ops, r.Op())
	}
	bucket.Tell(r)
}

// Fetch implements logic.Table.
func (t *Predicate) Fetch(query logic.Term, conditional bool, binding *logic.Binding) logic.AnswerIter {
	bucket, ok := t.buckets[query.Op]
	if !ok {
		return logic.NewSliceIter()
	}
	return bucket.Fetch(query, conditional, binding)
}

// Rules implements logic.Table. Buckets enumerate in first-told order.
func (t *Predicate) Rules() []logic.Rule {
	var rules []logic.Rule
	for _, op := range t.ops {
		rules = append(rules, t.buckets[op].Rules()...)
	}
	return rules
}

// Facts implements logic.Table.
func (t *Predicate) Facts() []logic.Term {
	var facts []logic.Term
	for _, op := range t.ops {
		facts = append(facts, t.buckets[op].Facts()...)
	}
	return facts
}
