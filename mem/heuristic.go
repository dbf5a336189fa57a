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

import (
	"io"
	"math"
	"sort"

	"gopkg.in/src-d/go-prolog.v0/logic"
)

// Heuristic decorates another table, reordering conditional fetch results by
// an estimated cost of discharging the condition, cheapest first: facts
// before single goals, single goals before disjunctions, conjunctions by
// their width.
type Heuristic struct {
	inner  logic.Table
	scores map[uint64]int
}

var _ logic.Table = (*Heuristic)(nil)

// NewHeuristic wraps a table. A nil inner table wraps a fresh linear one.
func NewHeuristic(inner logic.Table) *Heuristic {
	if inner == nil {
		inner = NewLinear()
	}
	return &Heuristic{
		inner:  inner,
		scores: map[uint64]int{},
	}
}

// Tell implements logic.Table.
func (t *Heuristic) Tell(r logic.Rule) { t.inner.Tell(r) }

// Rules implements logic.Table.
func (t *Heuristic) Rules() []logic.Rule { return t.inner.Rules() }

// Facts implements logic.Table.
func (t *Heuristic) Facts() []logic.Term { return t.inner.Facts() }

// Fetch implements logic.Table. In conditional mode candidates are
// materialized and sorted by condition cost ascending; the sort is stable,
// so equal-cost answers keep the inner table's order. Fact-only fetches
// pass through untouched.
func (t *Heuristic) Fetch(query logic.Term, conditional bool, binding *logic.Binding) logic.AnswerIter {
	if !conditional {
		return t.inner.Fetch(query, conditional, binding)
	}
	it := t.inner.Fetch(query, true, binding)
	var answers []logic.Answer
	for {
		a, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Table fetches do not fail; stop at whatever was
			// produced.
			break
		}
		answers = append(answers, a)
	}
	_ = it.Close()
	sort.SliceStable(answers, func(i, j int) bool {
		return t.cost(answers[i].Condition) < t.cost(answers[j].Condition)
	})
	return logic.NewSliceIter(answers...)
}

// cost estimates how expensive a condition is to discharge. Scores are
// memoized by structural hash.
func (t *Heuristic) cost(condition logic.Logical) int {
	key, err := logic.HashLogical(condition)
	if err == nil {
		if score, ok := t.scores[key]; ok {
			return score
		}
	}
	score := conditionCost(condition)
	if err == nil {
		t.scores[key] = score
	}
	return score
}

func conditionCost(condition logic.Logical) int {
	switch c := condition.(type) {
	case logic.And:
		if len(c.Args) == 0 {
			return 0
		}
		return len(c.Args)
	case logic.Term:
		return 1
	case logic.Or:
		return 2
	}
	return math.MaxInt32
}
