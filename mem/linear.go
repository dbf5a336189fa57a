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

// Linear is the baseline table: a sequence of rules scanned in insertion
// order on every fetch.
type Linear struct {
	rules []logic.Rule
}

var _ logic.Table = (*Linear)(nil)

// NewLinear returns a linear table holding the given rules.
func NewLinear(rules ...logic.Rule) *Linear {
	t := &Linear{}
	for _, r := range rules {
		t.Tell(r)
	}
	return t
}

// Tell implements logic.Table.
func (t *Linear) Tell(r logic.Rule) {
	t.rules = append(t.rules, r.Standardize())
}

// Fetch implements logic.Table.
func (t *Linear) Fetch(query logic.Term, conditional bool, binding *logic.Binding) logic.AnswerIter {
	return logic.FetchRules(t.rules, query, conditional, binding)
}

// Rules implements logic.Table.
func (t *Linear) Rules() []logic.Rule {
	return append([]logic.Rule(nil), t.rules...)
}

// Facts implements logic.Table.
func (t *Linear) Facts() []logic.Term {
	var facts []logic.Term
	for _, r := range t.rules {
		if r.IsFact() {
			facts = append(facts, r.Head)
		}
	}
	return facts
}
