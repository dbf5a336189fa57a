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

// Package bitmap implements a rule table that prunes fetch candidates with
// roaring bitmaps over rule ordinals, keyed by functor, arity and ground
// first argument. Pruning over-approximates: every rule whose head could
// unify with the query survives it.
package bitmap

import (
	"fmt"

	"github.com/pilosa/pilosa/roaring"

	"gopkg.in/src-d/go-prolog.v0/logic"
)

// Table is a bitmap-indexed rule table.
type Table struct {
	rules []logic.Rule

	byOp      map[string]*roaring.Bitmap
	byArity   map[int]*roaring.Bitmap
	byFirst   map[string]*roaring.Bitmap
	wildFirst *roaring.Bitmap
}

var _ logic.Table = (*Table)(nil)

// NewTable returns a bitmap-indexed table holding the given rules.
func NewTable(rules ...logic.Rule) *Table {
	t := &Table{
		byOp:      map[string]*roaring.Bitmap{},
		byArity:   map[int]*roaring.Bitmap{},
		byFirst:   map[string]*roaring.Bitmap{},
		wildFirst: roaring.NewBitmap(),
	}
	for _, r := range rules {
		t.Tell(r)
	}
	return t
}

// Tell implements logic.Table.
func (t *Table) Tell(r logic.Rule) {
	r = r.Standardize()
	id := uint64(len(t.rules))
	t.rules = append(t.rules, r)

	add(bucket(t.byOp, r.Op()), id)
	add(bucketInt(t.byArity, len(r.Head.Args)), id)
	if len(r.Head.Args) == 0 {
		return
	}
	if key, ok := groundKey(r.Head.Args[0]); ok {
		add(bucket(t.byFirst, key), id)
	} else {
		add(t.wildFirst, id)
	}
}

// Fetch implements logic.Table. Candidates are the intersection of the
// functor and arity bitmaps, narrowed by the first-argument bitmap when the
// query's first argument is ground, then scanned in ordinal order.
func (t *Table) Fetch(query logic.Term, conditional bool, binding *logic.Binding) logic.AnswerIter {
	ops, ok := t.byOp[query.Op]
	if !ok {
		return logic.NewSliceIter()
	}
	arity, ok := t.byArity[len(query.Args)]
	if !ok {
		return logic.NewSliceIter()
	}
	candidates := ops.Intersect(arity)
	if len(query.Args) > 0 {
		if key, ok := groundKey(query.Args[0]); ok {
			first, ok := t.byFirst[key]
			if !ok {
				first = roaring.NewBitmap()
			}
			candidates = candidates.Intersect(first.Union(t.wildFirst))
		}
	}

	var pruned []logic.Rule
	candidates.ForEach(func(id uint64) {
		pruned = append(pruned, t.rules[id])
	})
	return logic.FetchRules(pruned, query, conditional, binding)
}

// Rules implements logic.Table.
func (t *Table) Rules() []logic.Rule {
	return append([]logic.Rule(nil), t.rules...)
}

// Facts implements logic.Table.
func (t *Table) Facts() []logic.Term {
	var facts []logic.Term
	for _, r := range t.rules {
		if r.IsFact() {
			facts = append(facts, r.Head)
		}
	}
	return facts
}

// groundKey returns the bitmap key for a ground atom or literal argument.
// Anything else indexes as a wildcard.
func groundKey(arg logic.Logical) (string, bool) {
	switch a := arg.(type) {
	case logic.Literal:
		return fmt.Sprintf("l:%v", a.Value), true
	case logic.Term:
		if len(a.Args) == 0 {
			return "a:" + a.Op, true
		}
	}
	return "", false
}

func bucket(m map[string]*roaring.Bitmap, key string) *roaring.Bitmap {
	bm, ok := m[key]
	if !ok {
		bm = roaring.NewBitmap()
		m[key] = bm
	}
	return bm
}

func bucketInt(m map[int]*roaring.Bitmap, key int) *roaring.Bitmap {
	bm, ok := m[key]
	if !ok {
		bm = roaring.NewBitmap()
		m[key] = bm
	}
	return bm
}

func add(bm *roaring.Bitmap, id uint64) {
	_, _ = bm.Add(id)
}
