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

package bitmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.in/src-d/go-prolog.v0/logic"
)

var (
	leo    = logic.Atom("leo")
	milo   = logic.Atom("milo")
	declan = logic.Atom("declan")
)

func TestTableContract(t *testing.T) {
	require := require.New(t)

	x := logic.NewVar("X")
	sibling := logic.Functor("sibling")

	tb := NewTable(
		logic.NewRule(sibling(leo, x), sibling(declan, x)),
		logic.Fact(sibling(leo, milo)),
	)

	rules := tb.Rules()
	require.Len(rules, 2)
	for v := range logic.VariablesIn(rules[0].Body) {
		require.NotZero(v.ID)
	}

	answers, err := logic.AnswersToSlice(tb.Fetch(sibling(leo, milo), true, nil))
	require.NoError(err)
	require.Len(answers, 2)

	answers, err = logic.AnswersToSlice(tb.Fetch(sibling(leo, declan), true, nil))
	require.NoError(err)
	require.Len(answers, 1)

	answers, err = logic.AnswersToSlice(tb.Fetch(sibling(leo, milo), false, nil))
	require.NoError(err)
	require.Len(answers, 1)

	facts := tb.Facts()
	require.Len(facts, 1)
	require.True(logic.Equal(facts[0], sibling(leo, milo)))
}

func TestPruningNeverOmits(t *testing.T) {
	require := require.New(t)

	x := logic.NewVar("X")
	y := logic.NewVar("Y")
	sibling := logic.Functor("sibling")

	tb := NewTable(
		logic.Fact(sibling(leo, milo)),
		logic.Fact(sibling(milo, declan)),
		// variable first argument lands in the wildcard bitmap
		logic.Fact(sibling(x, x)),
	)

	// ground first argument: exact branch plus wildcards
	answers, err := logic.AnswersToSlice(tb.Fetch(sibling(leo, y), true, nil))
	require.NoError(err)
	require.Len(answers, 2)

	// variable first argument: everything is a candidate
	answers, err = logic.AnswersToSlice(tb.Fetch(sibling(x, y), true, nil))
	require.NoError(err)
	require.Len(answers, 3)
}

func TestPruningByFunctorAndArity(t *testing.T) {
	require := require.New(t)

	p := logic.Functor("p")
	tb := NewTable(
		logic.Fact(p(leo)),
		logic.Fact(p(leo, milo)),
	)

	answers, err := logic.AnswersToSlice(tb.Fetch(p(leo), true, nil))
	require.NoError(err)
	require.Len(answers, 1)

	answers, err = logic.AnswersToSlice(tb.Fetch(logic.NewTerm("q", leo), true, nil))
	require.NoError(err)
	require.Empty(answers)
}

func TestLiteralFirstArgumentKeys(t *testing.T) {
	require := require.New(t)

	age := logic.Functor("age")
	tb := NewTable(
		logic.Fact(age(logic.NewLiteral(int64(7)), leo)),
		logic.Fact(age(logic.NewLiteral(int64(9)), milo)),
	)

	answers, err := logic.AnswersToSlice(tb.Fetch(age(logic.NewLiteral(int64(7)), logic.NewVar("W")), true, nil))
	require.NoError(err)
	require.Len(answers, 1)
}

func TestFetchBindsQueryVariables(t *testing.T) {
	require := require.New(t)

	x := logic.NewVar("X")
	sibling := logic.Functor("sibling")
	tb := NewTable(logic.Fact(sibling(leo, milo)))

	answers, err := logic.AnswersToSlice(tb.Fetch(sibling(leo, x), false, nil))
	require.NoError(err)
	require.Len(answers, 1)
	require.True(logic.Equal(logic.Resolve(x, answers[0].Binding), milo))
}
