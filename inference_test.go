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
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.in/src-d/go-prolog.v0/logic"
	"gopkg.in/src-d/go-prolog.v0/logic/parse"
	"gopkg.in/src-d/go-prolog.v0/mem"
)

const hogwarts = `
wizard(X) :- guy(X), magical(X).
witch(X) :- girl(X), magical(X).
guy(harry). guy(ron). guy(dudley).
girl(hermione).
magical(harry). magical(ron). magical(hermione).
`

// siblingKB is a symmetric, transitive sibling relation: the kind of rule
// set plain depth-first search loops on.
func siblingKB() *KnowledgeBase {
	vars := logic.Variables("XYZ")
	x, y, z := vars[0], vars[1], vars[2]
	sibling := logic.Functor("sibling")

	kb := NewKnowledgeBase(nil)
	kb.TellRule(logic.NewRule(sibling(x, y), sibling(y, x)))
	kb.TellRule(logic.NewRule(sibling(x, y), logic.NewAnd(sibling(x, z), sibling(z, y))))
	kb.TellRule(logic.Fact(sibling(milo, leo)))
	kb.TellRule(logic.Fact(sibling(leo, declan)))
	return kb
}

func bindingValues(answers []logic.Answer, v logic.Var) []logic.Logical {
	var out []logic.Logical
	for _, a := range answers {
		if val, ok := a.Binding.Get(v); ok {
			out = append(out, val)
		}
	}
	return out
}

func containsValue(xs []logic.Logical, want logic.Logical) bool {
	for _, x := range xs {
		if logic.Equal(x, want) {
			return true
		}
	}
	return false
}

func TestBcAskSiblings(t *testing.T) {
	require := require.New(t)

	kb := siblingKB()
	x := logic.NewVar("X")
	sibling := logic.Functor("sibling")

	it, err := BcAskDepth(kb, sibling(x, milo), 3, 0)
	require.NoError(err)
	answers, err := logic.AnswersToSlice(it)
	require.NoError(err)

	values := bindingValues(answers, x)
	require.True(containsValue(values, leo), "expected X: leo in %v", answers)
	require.True(containsValue(values, declan), "expected X: declan in %v", answers)

	// a ground derivable query succeeds with the empty binding
	it, err = BcAskDepth(kb, sibling(leo, milo), 2, 0)
	require.NoError(err)
	answers, err = logic.AnswersToSlice(it)
	require.NoError(err)
	require.NotEmpty(answers)
	for _, a := range answers {
		require.Zero(a.Binding.Len())
	}

	// an unknown individual has no proofs
	it, err = BcAskDepth(kb, sibling(axel, leo), 2, 0)
	require.NoError(err)
	answers, err = logic.AnswersToSlice(it)
	require.NoError(err)
	require.Empty(answers)
}

func TestFcAskSiblings(t *testing.T) {
	require := require.New(t)

	kb := siblingKB()
	x := logic.NewVar("X")
	sibling := logic.Functor("sibling")

	it, err := FcAsk(kb, sibling(x, milo))
	require.NoError(err)
	answers, err := logic.AnswersToSlice(it)
	require.NoError(err)

	values := bindingValues(answers, x)
	require.True(containsValue(values, leo))
	require.True(containsValue(values, declan))

	// saturation happened once; ground queries answer from facts
	it, err = FcAsk(kb, sibling(leo, milo))
	require.NoError(err)
	answers, err = logic.AnswersToSlice(it)
	require.NoError(err)
	require.Len(answers, 1)
	require.Zero(answers[0].Binding.Len())

	it, err = FcAsk(kb, sibling(axel, leo))
	require.NoError(err)
	answers, err = logic.AnswersToSlice(it)
	require.NoError(err)
	require.Empty(answers)

	it, err = FcAsk(kb, sibling(axel, x))
	require.NoError(err)
	answers, err = logic.AnswersToSlice(it)
	require.NoError(err)
	require.Empty(answers)
}

func TestBcAskNegationFiltersAnswers(t *testing.T) {
	require := require.New(t)

	sibling := logic.Functor("sibling")
	kb := NewKnowledgeBase(nil)
	kb.TellRule(logic.Fact(sibling(leo, declan)))
	kb.TellRule(logic.Fact(sibling(leo, leo)))

	x := logic.NewVar("X")
	query := logic.NewAnd(sibling(leo, x), logic.NewNot(logic.NewEquals(leo, x)))

	it, err := BcAsk(kb, query)
	require.NoError(err)
	answers, err := logic.Take(1, it)
	require.NoError(err)
	require.Len(answers, 1)
	val, ok := answers[0].Binding.Get(x)
	require.True(ok)
	require.True(logic.Equal(val, declan))
}

func TestBcAskConstraints(t *testing.T) {
	require := require.New(t)

	kb := NewKnowledgeBase(nil)

	it, err := BcAsk(kb, logic.NewLE(logic.NewLiteral(1), logic.NewLiteral(2)))
	require.NoError(err)
	answers, err := logic.AnswersToSlice(it)
	require.NoError(err)
	require.Len(answers, 1)
	require.Zero(answers[0].Binding.Len())

	it, err = BcAsk(kb, logic.NewLE(logic.NewLiteral(2), logic.NewLiteral(1)))
	require.NoError(err)
	answers, err = logic.AnswersToSlice(it)
	require.NoError(err)
	require.Empty(answers)

	// a free side fails
	it, err = BcAsk(kb, logic.NewLE(logic.NewVar("X"), logic.NewLiteral(1)))
	require.NoError(err)
	answers, err = logic.AnswersToSlice(it)
	require.NoError(err)
	require.Empty(answers)
}

func hogwartsKB(t *testing.T, build func(rules ...logic.Rule) logic.Table) *KnowledgeBase {
	t.Helper()
	rules, err := parse.Clauses(hogwarts)
	require.NoError(t, err)
	return NewKnowledgeBase(build(rules...))
}

func TestHogwarts(t *testing.T) {
	builders := map[string]func(rules ...logic.Rule) logic.Table{
		"linear":    func(rules ...logic.Rule) logic.Table { return mem.NewLinear(rules...) },
		"predicate": func(rules ...logic.Rule) logic.Table { return mem.NewPredicate(nil, rules...) },
		"trie":      func(rules ...logic.Rule) logic.Table { return mem.NewTrie(rules...) },
	}

	x := logic.NewVar("X")
	wizard := logic.Functor("wizard")
	witch := logic.Functor("witch")
	guy := logic.Functor("guy")

	for name, build := range builders {
		t.Run(name+"/bc", func(t *testing.T) {
			require := require.New(t)
			kb := hogwartsKB(t, build)

			it, err := BcAsk(kb, wizard(x))
			require.NoError(err)
			answers, err := logic.AnswersToSlice(it)
			require.NoError(err)
			values := bindingValues(answers, x)
			require.Len(values, 2)
			require.True(containsValue(values, logic.Atom("harry")))
			require.True(containsValue(values, logic.Atom("ron")))

			it, err = BcAsk(kb, witch(x))
			require.NoError(err)
			answers, err = logic.AnswersToSlice(it)
			require.NoError(err)
			values = bindingValues(answers, x)
			require.Len(values, 1)
			require.True(containsValue(values, logic.Atom("hermione")))

			it, err = BcAsk(kb, guy(x))
			require.NoError(err)
			answers, err = logic.AnswersToSlice(it)
			require.NoError(err)
			require.Len(answers, 3)
		})

		t.Run(name+"/fc", func(t *testing.T) {
			require := require.New(t)
			kb := hogwartsKB(t, build)

			it, err := FcAsk(kb, wizard(x))
			require.NoError(err)
			answers, err := logic.AnswersToSlice(it)
			require.NoError(err)
			values := bindingValues(answers, x)
			require.Len(values, 2)
			require.True(containsValue(values, logic.Atom("harry")))
			require.True(containsValue(values, logic.Atom("ron")))

			it, err = FcAsk(kb, witch(x))
			require.NoError(err)
			answers, err = logic.AnswersToSlice(it)
			require.NoError(err)
			values = bindingValues(answers, x)
			require.Len(values, 1)
			require.True(containsValue(values, logic.Atom("hermione")))
		})
	}
}

func TestFcAskOnCloneLeavesOriginalUntouched(t *testing.T) {
	require := require.New(t)

	kb := siblingKB()
	before := len(kb.Table().Rules())

	clone := kb.CloneInto(nil)
	x := logic.NewVar("X")
	sibling := logic.Functor("sibling")

	it, err := FcAsk(clone, sibling(x, milo))
	require.NoError(err)
	answers, err := logic.AnswersToSlice(it)
	require.NoError(err)
	require.NotEmpty(answers)

	// the clone saturated, the original did not
	require.True(len(clone.Table().Rules()) > before)
	require.Equal(before, len(kb.Table().Rules()))
}

func TestForwardChainReachesFixpoint(t *testing.T) {
	require := require.New(t)

	kb := hogwartsKB(t, func(rules ...logic.Rule) logic.Table { return mem.NewLinear(rules...) })
	before := len(kb.Table().Rules())

	require.NoError(ForwardChain(kb))
	saturated := len(kb.Table().Rules())
	require.True(saturated > before)

	// a second run deduces nothing new
	require.NoError(ForwardChain(kb))
	require.Equal(saturated, len(kb.Table().Rules()))
}

// leftRecursiveKB loops under plain depth-first search: the rule is stored
// ahead of the fact that proves it.
func leftRecursiveKB() *KnowledgeBase {
	obvious := logic.Atom("obvious_reality")
	kb := NewKnowledgeBase(nil)
	kb.TellRule(logic.NewRule(obvious, obvious))
	kb.TellRule(logic.Fact(obvious))
	return kb
}

func TestIDAskEscapesLeftRecursion(t *testing.T) {
	require := require.New(t)

	kb := leftRecursiveKB()
	answers, err := logic.Take(1, IDAsk(kb, logic.Atom("obvious_reality")))
	require.NoError(err)
	require.Len(answers, 1)
	require.Zero(answers[0].Binding.Len())
}

func TestIDAskLevelsEmitAtTheirOwnDepth(t *testing.T) {
	require := require.New(t)

	kb := leftRecursiveKB()
	// one proof completes at every level: the fact at level zero, then
	// one more rule expansion per level
	answers, err := logic.AnswersToSlice(IDAskLevels(kb, logic.Atom("obvious_reality"), 3))
	require.NoError(err)
	require.Len(answers, 4)
}

func TestBcAskDepthBoundsLeftRecursion(t *testing.T) {
	require := require.New(t)

	kb := leftRecursiveKB()
	it, err := BcAskDepth(kb, logic.Atom("obvious_reality"), 5, 0)
	require.NoError(err)
	answers, err := logic.AnswersToSlice(it)
	require.NoError(err)
	// one proof per depth up to the bound, plus the direct fact
	require.Len(answers, 6)
}

func TestTake(t *testing.T) {
	require := require.New(t)

	kb := leftRecursiveKB()

	// shorter sequences return what exists
	answers, err := logic.Take(5, IDAskLevels(kb, logic.Atom("obvious_reality"), 1))
	require.NoError(err)
	require.Len(answers, 2)

	// longer sequences stop at n
	answers, err = logic.Take(3, IDAsk(kb, logic.Atom("obvious_reality")))
	require.NoError(err)
	require.Len(answers, 3)
}

func TestBcAskMinDepthSuppressesShallowProofs(t *testing.T) {
	require := require.New(t)

	kb := leftRecursiveKB()
	it, err := BcAskDepth(kb, logic.Atom("obvious_reality"), 2, 2)
	require.NoError(err)
	answers, err := logic.AnswersToSlice(it)
	require.NoError(err)
	require.Len(answers, 1)
}
