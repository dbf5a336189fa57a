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

package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.in/src-d/go-prolog.v0/logic"
)

func TestQueryShapes(t *testing.T) {
	x := logic.NewVar("X")
	foo := logic.Functor("foo")
	bar := logic.Functor("bar")

	cases := []struct {
		src  string
		want logic.Logical
	}{
		{"X", x},
		{"_Acc", logic.NewVar("_Acc")},
		{"leo", logic.Atom("leo")},
		{"foo(X)", foo(x)},
		{"foo(X, leo)", foo(x, logic.Atom("leo"))},
		{"foo(bar(X))", foo(bar(x))},
		{"42", logic.NewLiteral(int64(42))},
		{"3.14", logic.NewLiteral(3.14)},
		{`"hello world"`, logic.NewLiteral("hello world")},
		{`"with \"quotes\""`, logic.NewLiteral(`with "quotes"`)},
		{"foo(X), bar(X)", logic.NewAnd(foo(x), bar(x))},
		{"foo(X); bar(X)", logic.NewOr(foo(x), bar(x))},
		{"foo(X), bar(X); bar(X)", logic.NewOr(logic.NewAnd(foo(x), bar(x)), bar(x))},
		{`\+ foo(X)`, logic.NewNot(foo(x))},
		{"not(foo(X))", logic.NewNot(foo(x))},
		{"true", logic.YES},
		{"fail", logic.NO},
		{"false", logic.NO},
		{"!", logic.CUT},
		{"(foo(X); bar(X)), leo", logic.NewAnd(logic.NewOr(foo(x), bar(x)), logic.Atom("leo"))},
	}
	for _, tt := range cases {
		t.Run(tt.src, func(t *testing.T) {
			require := require.New(t)
			got, err := Query(tt.src)
			require.NoError(err)
			require.True(logic.Equal(got, tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestClauses(t *testing.T) {
	require := require.New(t)

	x := logic.NewVar("X")
	foo := logic.Functor("foo")
	bar := logic.Functor("bar")
	bang := logic.Functor("bang")

	rules, err := Clauses("foo(X) :- bar(X).")
	require.NoError(err)
	require.Len(rules, 1)
	require.True(rules[0].Equal(logic.NewRule(foo(x), bar(x))))

	rules, err = Clauses("foo(X) :- bar(X), bang(X).")
	require.NoError(err)
	require.True(rules[0].Equal(logic.NewRule(foo(x), logic.NewAnd(bar(x), bang(x)))))

	rules, err = Clauses("foo(leo).")
	require.NoError(err)
	require.True(rules[0].IsFact())
}

func TestProgram(t *testing.T) {
	require := require.New(t)

	table, err := Program(`
		% the usual example
		wizard(X) :- guy(X), magical(X).
		guy(harry). guy(ron).
		magical(harry).
	`)
	require.NoError(err)
	require.Len(table.Rules(), 4)
	require.Len(table.Facts(), 3)
}

func TestProgramReader(t *testing.T) {
	require := require.New(t)

	table, err := ProgramReader(strings.NewReader("guy(harry)."))
	require.NoError(err)
	require.Len(table.Rules(), 1)
}

func TestSyntaxErrors(t *testing.T) {
	cases := []string{
		"foo(X)",          // missing dot
		"foo(X :- bar.",   // unbalanced paren
		"foo(X)) .",       // stray paren
		":- bar(X).",      // missing head
		"42 :- bar(X).",   // head is not a term
		`foo("oops).`,     // unterminated string
		"foo(X)\\ bar.",   // lone backslash
		"Foo(X) :- bar.",  // variable head
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			require := require.New(t)
			_, err := Clauses(src)
			require.Error(err)
			require.True(ErrSyntax.Is(err))
		})
	}
}

func TestCommentsAndWhitespace(t *testing.T) {
	require := require.New(t)

	rules, err := Clauses("% leading comment\n  guy(harry). % trailing\n")
	require.NoError(err)
	require.Len(rules, 1)
}

func TestFormatRuleRoundTrip(t *testing.T) {
	x := logic.NewVar("X")
	foo := logic.Functor("foo")
	bar := logic.Functor("bar")
	bang := logic.Functor("bang")

	cases := []logic.Rule{
		logic.Fact(foo(logic.Atom("leo"))),
		logic.NewRule(foo(x), bar(x)),
		logic.NewRule(foo(x), logic.NewAnd(bar(x), bang(x))),
		logic.NewRule(foo(x), logic.NewOr(bar(x), bang(x))),
		logic.NewRule(foo(x), logic.NewNot(bar(x))),
		logic.NewRule(foo(x), logic.NewAnd(logic.NewOr(bar(x), bang(x)), bar(x))),
		logic.Fact(foo(logic.NewLiteral(int64(42)), logic.NewLiteral("hi"))),
	}
	for _, rule := range cases {
		t.Run(rule.String(), func(t *testing.T) {
			require := require.New(t)
			text := FormatRule(rule)
			parsed, err := Clauses(text)
			require.NoError(err)
			require.Len(parsed, 1)
			require.True(parsed[0].Equal(rule), "%s reparsed as %s", rule, parsed[0])
		})
	}
}

func TestFormatStandardizedRuleIsReadable(t *testing.T) {
	require := require.New(t)

	x := logic.NewVar("X")
	foo := logic.Functor("foo")
	rule := logic.NewRule(foo(x), logic.NewTerm("bar", x)).Standardize()

	require.Equal("foo(X) :- bar(X).", FormatRule(rule))
}
