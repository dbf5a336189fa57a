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

package prolog

import (
	"io"

	"github.com/hashicorp/go-multierror"

	"gopkg.in/src-d/go-prolog.v0/logic"
	"gopkg.in/src-d/go-prolog.v0/mem"
)

// KnowledgeBase evaluates compound queries over a table of rules. It
// dispatches on the shape of the query, recursing for conjunction,
// disjunction and negation, delegating constraints to their own tests and
// atomic terms to the table.
type KnowledgeBase struct {
	table logic.Table
}

// NewKnowledgeBase wraps a table. A nil table means a fresh linear one.
func NewKnowledgeBase(table logic.Table) *KnowledgeBase {
	if table == nil {
		table = mem.NewLinear()
	}
	return &KnowledgeBase{table: table}
}

// Table exposes the underlying table.
func (kb *KnowledgeBase) Table() logic.Table { return kb.table }

// CloneInto copies the rules into another table and returns a knowledge
// base over it. Forward chaining mutates its table; callers wanting the
// original untouched saturate a clone instead. A nil table clones into a
// fresh linear one.
func (kb *KnowledgeBase) CloneInto(table logic.Table) *KnowledgeBase {
	if table == nil {
		table = mem.NewLinear()
	}
	logic.CopyRules(table, kb.table)
	return NewKnowledgeBase(table)
}

// Tell adds a sentence to the knowledge base: a term becomes a fact, a
// conjunction is told conjunct by conjunct, and anything else is not a Horn
// clause.
func (kb *KnowledgeBase) Tell(sentence logic.Logical) error {
	switch s := sentence.(type) {
	case logic.And:
		var result *multierror.Error
		for _, part := range s.Args {
			result = multierror.Append(result, kb.Tell(part))
		}
		return result.ErrorOrNil()
	case logic.Or:
		return logic.ErrNotHorn.New(s)
	case logic.Term:
		kb.table.Tell(logic.Fact(s))
		return nil
	}
	return logic.ErrNotHorn.New(sentence)
}

// TellRule adds a rule directly.
func (kb *KnowledgeBase) TellRule(r logic.Rule) {
	kb.table.Tell(r)
}

// Fetch enumerates the (binding, condition) pairs under which the query
// holds, dispatching on its shape. A failed binding short-circuits: the
// query is never evaluated and the absorbing answer comes back alone.
func (kb *KnowledgeBase) Fetch(query logic.Logical, conditional bool, binding *logic.Binding) (logic.AnswerIter, error) {
	if binding.Failed() {
		return logic.NewSliceIter(logic.Answer{Binding: logic.NoBinding, Condition: logic.NO}), nil
	}
	if binding == nil {
		binding = logic.NewBinding()
	}

	switch q := query.(type) {
	case logic.And:
		if len(q.Args) == 0 {
			return logic.NewSliceIter(logic.Answer{Binding: binding, Condition: logic.YES}), nil
		}
		head, err := kb.Fetch(q.First(), conditional, binding)
		if err != nil {
			return nil, err
		}
		return &andIter{kb: kb, rest: q.Rest(), conditional: conditional, head: head}, nil
	case logic.Or:
		if len(q.Args) == 0 {
			return logic.NewSliceIter(logic.Answer{Binding: logic.NoBinding, Condition: logic.NO}), nil
		}
		return &orIter{kb: kb, parts: q.Args, conditional: conditional, binding: binding}, nil
	case logic.Not:
		return &notIter{kb: kb, item: q.Item, conditional: conditional, binding: binding}, nil
	case logic.Constraint:
		var answers []logic.Answer
		for _, b := range q.Test(binding) {
			if b.Failed() {
				continue
			}
			answers = append(answers, logic.Answer{Binding: b, Condition: logic.YES})
		}
		return logic.NewSliceIter(answers...), nil
	case logic.Term:
		return kb.table.Fetch(q, conditional, binding), nil
	}
	return nil, logic.ErrUnsupportedQuery.New(query)
}

// andIter yields, for each answer of the first conjunct, every answer of
// the remaining conjuncts under that answer's binding. The conditions of
// both halves recombine as a conjunction.
type andIter struct {
	kb          *KnowledgeBase
	rest        logic.And
	conditional bool

	head     logic.AnswerIter
	headAns  logic.Answer
	restIter logic.AnswerIter
}

func (i *andIter) Next() (logic.Answer, error) {
	for {
		if i.restIter == nil {
			ans, err := i.head.Next()
			if err != nil {
				return logic.Answer{}, err
			}
			i.headAns = ans
			rest, err := i.kb.Fetch(i.rest, i.conditional, ans.Binding)
			if err != nil {
				return logic.Answer{}, err
			}
			i.restIter = rest
		}
		ans, err := i.restIter.Next()
		if err == io.EOF {
			i.restIter = nil
			continue
		}
		if err != nil {
			return logic.Answer{}, err
		}
		return logic.Answer{
			Binding:   ans.Binding,
			Condition: logic.NewAnd(i.headAns.Condition, ans.Condition),
		}, nil
	}
}

func (i *andIter) Close() error {
	if i.restIter != nil {
		_ = i.restIter.Close()
	}
	return i.head.Close()
}

// orIter concatenates the answers of each disjunct under the same binding.
type orIter struct {
	kb          *KnowledgeBase
	parts       []logic.Logical
	conditional bool
	binding     *logic.Binding

	pos int
	cur logic.AnswerIter
}

func (i *orIter) Next() (logic.Answer, error) {
	for {
		if i.cur == nil {
			if i.pos >= len(i.parts) {
				return logic.Answer{}, io.EOF
			}
			cur, err := i.kb.Fetch(i.parts[i.pos], i.conditional, i.binding)
			if err != nil {
				return logic.Answer{}, err
			}
			i.pos++
			i.cur = cur
		}
		ans, err := i.cur.Next()
		if err == io.EOF {
			i.cur = nil
			continue
		}
		return ans, err
	}
}

func (i *orIter) Close() error {
	if i.cur != nil {
		return i.cur.Close()
	}
	return nil
}

// notIter implements negation as failure: it looks for one successful
// answer to the negated query and succeeds with the incoming binding,
// untouched, only when there is none. Negation never captures bindings.
type notIter struct {
	kb          *KnowledgeBase
	item        logic.Logical
	conditional bool
	binding     *logic.Binding
	done        bool
}

func (i *notIter) Next() (logic.Answer, error) {
	if i.done {
		return logic.Answer{}, io.EOF
	}
	i.done = true

	inner, err := i.kb.Fetch(i.item, i.conditional, i.binding)
	if err != nil {
		return logic.Answer{}, err
	}
	defer func() { _ = inner.Close() }()
	for {
		ans, err := inner.Next()
		if err == io.EOF {
			return logic.Answer{Binding: i.binding, Condition: logic.YES}, nil
		}
		if err != nil {
			return logic.Answer{}, err
		}
		if !ans.Binding.Failed() {
			return logic.Answer{}, io.EOF
		}
	}
}

func (i *notIter) Close() error { return nil }
