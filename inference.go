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

	"github.com/sirupsen/logrus"

	"gopkg.in/src-d/go-prolog.v0/logic"
)

// BcAsk proves the query by backward chaining with no depth bound and
// yields the bindings, reduced to the query's free variables, under which
// it is entailed. Left-recursive rule sets can make it diverge; bound it
// with BcAskDepth or consume it with Take.
func BcAsk(kb *KnowledgeBase, query logic.Logical) (logic.AnswerIter, error) {
	return BcAskDepth(kb, query, -1, 0)
}

// BcAskDepth is BcAsk with a patience bound on proof depth (negative means
// unbounded) and a minimum depth below which results are suppressed.
// Iterative deepening is built from the two together.
func BcAskDepth(kb *KnowledgeBase, query logic.Logical, patience, minDepth int) (logic.AnswerIter, error) {
	root, err := kb.Fetch(query, true, nil)
	if err != nil {
		return nil, err
	}
	return &bcIter{
		kb:       kb,
		vars:     logic.VariablesIn(query),
		stack:    []bcFrame{{iter: root}},
		patience: patience,
		minDepth: minDepth,
	}, nil
}

type bcFrame struct {
	iter  logic.AnswerIter
	depth int
}

// bcIter is a depth-first search over proof trees: each frame enumerates
// the ways a subgoal holds, and non-trivial conditions push a deeper frame.
type bcIter struct {
	kb       *KnowledgeBase
	vars     logic.VarSet
	stack    []bcFrame
	patience int
	minDepth int
}

func (i *bcIter) Next() (logic.Answer, error) {
	for len(i.stack) > 0 {
		top := &i.stack[len(i.stack)-1]
		ans, err := top.iter.Next()
		if err == io.EOF {
			_ = top.iter.Close()
			i.stack = i.stack[:len(i.stack)-1]
			continue
		}
		if err != nil {
			return logic.Answer{}, err
		}
		if ans.Binding.Failed() {
			continue
		}
		if logic.IsYes(ans.Condition) {
			if top.depth < i.minDepth {
				continue
			}
			return logic.Answer{
				Binding:   project(ans.Binding, i.vars),
				Condition: logic.YES,
			}, nil
		}
		if i.patience >= 0 && top.depth+1 > i.patience {
			continue
		}
		goal := logic.Substitute(ans.Condition, ans.Binding)
		inner, err := i.kb.Fetch(goal, true, ans.Binding)
		if err != nil {
			return logic.Answer{}, err
		}
		i.stack = append(i.stack, bcFrame{iter: inner, depth: top.depth + 1})
	}
	return logic.Answer{}, io.EOF
}

func (i *bcIter) Close() error {
	for _, f := range i.stack {
		_ = f.iter.Close()
	}
	i.stack = nil
	return nil
}

// project reduces a proof binding to the query's own variables, following
// alias chains down to their values so intermediate rule variables never
// leak into answers.
func project(b *logic.Binding, vars logic.VarSet) *logic.Binding {
	out := logic.NewBinding()
	for v := range vars {
		val := logic.ResolveDeep(v, b)
		if logic.Equal(val, v) {
			continue
		}
		out = out.With(v, val)
	}
	return out
}

// ForwardChain saturates the knowledge base: every rule body is evaluated
// against the known facts and unsubsumed head instances are added, until a
// full pass deduces nothing new. Function-introducing rule heads can make
// this diverge; bounding that is the caller's responsibility.
func ForwardChain(kb *KnowledgeBase) error {
	for pass := 1; ; pass++ {
		var deduced []logic.Term
		for _, rule := range kb.table.Rules() {
			if rule.IsFact() {
				continue
			}
			r := rule.Standardize()
			it, err := kb.Fetch(r.Body, false, nil)
			if err != nil {
				return err
			}
			answers, err := logic.AnswersToSlice(it)
			if err != nil {
				return err
			}
			for _, ans := range answers {
				if ans.Binding.Failed() {
					continue
				}
				head := logic.Substitute(r.Head, ans.Binding).(logic.Term)
				if subsumed(deduced, head) {
					continue
				}
				known, err := kb.derivable(head)
				if err != nil {
					return err
				}
				if !known {
					deduced = append(deduced, head)
				}
			}
		}
		if len(deduced) == 0 {
			return nil
		}
		for _, head := range deduced {
			kb.table.Tell(logic.Fact(head))
		}
		logrus.WithFields(logrus.Fields{
			"pass":    pass,
			"deduced": len(deduced),
		}).Debug("forward chaining pass")
	}
}

// derivable reports whether the term already follows from the stored facts.
func (kb *KnowledgeBase) derivable(t logic.Term) (bool, error) {
	it, err := kb.Fetch(t, false, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = it.Close() }()
	for {
		ans, err := it.Next()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if !ans.Binding.Failed() {
			return true, nil
		}
	}
}

func subsumed(facts []logic.Term, t logic.Term) bool {
	for _, f := range facts {
		if logic.Unifiable(f, t) {
			return true
		}
	}
	return false
}

// FcAsk saturates the knowledge base, then answers the query from facts
// alone. The saturation mutates the table; clone it first for
// non-destructive semantics.
func FcAsk(kb *KnowledgeBase, query logic.Logical) (logic.AnswerIter, error) {
	if err := ForwardChain(kb); err != nil {
		return nil, err
	}
	return kb.Fetch(query, false, nil)
}

// IDAsk runs backward chaining at patience 0, 1, 2, ... emitting at each
// level only the proofs that complete exactly there, which rescues queries
// plain depth-first search loops on. The sequence never ends on its own;
// consume it with Take or IDAskLevels.
func IDAsk(kb *KnowledgeBase, query logic.Logical) logic.AnswerIter {
	return &idIter{kb: kb, query: query, maxLevel: -1}
}

// IDAskLevels is IDAsk stopping after the given deepest level.
func IDAskLevels(kb *KnowledgeBase, query logic.Logical, maxLevel int) logic.AnswerIter {
	return &idIter{kb: kb, query: query, maxLevel: maxLevel}
}

type idIter struct {
	kb       *KnowledgeBase
	query    logic.Logical
	maxLevel int

	level int
	cur   logic.AnswerIter
}

func (i *idIter) Next() (logic.Answer, error) {
	for {
		if i.maxLevel >= 0 && i.level > i.maxLevel {
			return logic.Answer{}, io.EOF
		}
		if i.cur == nil {
			cur, err := BcAskDepth(i.kb, i.query, i.level, i.level)
			if err != nil {
				return logic.Answer{}, err
			}
			i.cur = cur
		}
		ans, err := i.cur.Next()
		if err == io.EOF {
			_ = i.cur.Close()
			i.cur = nil
			i.level++
			continue
		}
		return ans, err
	}
}

func (i *idIter) Close() error {
	if i.cur != nil {
		return i.cur.Close()
	}
	return nil
}
