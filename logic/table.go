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

import "io"

// Table is an unordered multiset of rules. Implementations index the rules
// differently but honor one contract: Fetch may over-approximate, returning
// candidates that do not unify is fine, but it must never omit a rule whose
// head unifies with the query. Telling the same rule twice stores two
// entries.
//
// Tell standardizes the rule apart before storing it, so a stored rule can
// be consulted many times in the same proof without variable capture.
type Table interface {
	// Tell inserts a rule.
	Tell(r Rule)
	// Fetch enumerates stored rules whose head unifies with the query,
	// as (binding, condition) answers where the condition is the rule
	// body under the unifier. With conditional false only facts are
	// returned. Order is implementation-defined but deterministic.
	Fetch(query Term, conditional bool, binding *Binding) AnswerIter
	// Rules enumerates every stored rule.
	Rules() []Rule
	// Facts enumerates the heads of stored rules whose body is YES.
	Facts() []Term
}

// CopyRules tells every rule of src to dst. The rules get standardized
// again on insert, which preserves their meaning.
func CopyRules(dst, src Table) {
	for _, r := range src.Rules() {
		dst.Tell(r)
	}
}

// FetchRules is the unification scan shared by table implementations: it
// lazily tries each candidate rule against the query and yields the answers
// the Table contract requires. Each candidate is standardized again before
// it is tried, so consulting the same rule twice in one proof never shares
// variables between the two uses.
func FetchRules(rules []Rule, query Term, conditional bool, binding *Binding) AnswerIter {
	return &ruleScanIter{
		rules:       rules,
		query:       query,
		conditional: conditional,
		binding:     binding,
	}
}

type ruleScanIter struct {
	rules       []Rule
	query       Term
	conditional bool
	binding     *Binding
	pos         int
}

func (i *ruleScanIter) Next() (Answer, error) {
	for i.pos < len(i.rules) {
		rule := i.rules[i.pos]
		i.pos++
		if !rule.IsFact() && !i.conditional {
			continue
		}
		rule = rule.Standardize()
		b := Unify(rule.Head, i.query, i.binding)
		if b.Failed() {
			continue
		}
		return Answer{Binding: b, Condition: Substitute(rule.Body, b)}, nil
	}
	return Answer{}, io.EOF
}

func (i *ruleScanIter) Close() error { return nil }
