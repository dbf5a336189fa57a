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

import (
	"fmt"
	"io"
)

// Logical is the sum type of every expression the engine can reason about:
// terms, variables, conjunctions, disjunctions, negations, constraints,
// literals and keywords. Values are immutable; every operation returns a new
// expression.
type Logical interface {
	fmt.Stringer
	// Map returns a copy of the expression with f applied to every leaf
	// (variables, literals and keywords) and recursively mapped over every
	// compound child. Substitution and standardization are both derived
	// from it.
	Map(f func(Logical) Logical) Logical
}

// Keyword is a reserved sentinel atom.
type Keyword string

const (
	// CUT is recognized by the parser ("!") and carried through untouched.
	CUT Keyword = "CUT"
	// FREE is the value an unbound variable resolves to.
	FREE Keyword = "FREE"
)

// String implements Logical.
func (k Keyword) String() string { return string(k) }

// Map implements Logical.
func (k Keyword) Map(f func(Logical) Logical) Logical { return f(k) }

// Answer is a single result of a fetch or a proof: the binding under which
// the query head matched, and the residual condition left to discharge (YES
// for an unconditional match).
type Answer struct {
	Binding   *Binding
	Condition Logical
}

// AnswerIter is a lazy iterator over answers. Next returns io.EOF after the
// last answer. A caller that stops consuming may simply drop the iterator or
// call Close; there are no resources behind it unless an implementation says
// otherwise.
type AnswerIter interface {
	Next() (Answer, error)
	Close() error
}

type sliceIter struct {
	answers []Answer
	pos     int
}

// NewSliceIter returns an iterator over a fixed set of answers.
func NewSliceIter(answers ...Answer) AnswerIter {
	return &sliceIter{answers: answers}
}

func (i *sliceIter) Next() (Answer, error) {
	if i.pos >= len(i.answers) {
		return Answer{}, io.EOF
	}
	a := i.answers[i.pos]
	i.pos++
	return a, nil
}

func (i *sliceIter) Close() error { return nil }

// AnswersToSlice drains the iterator into a slice.
func AnswersToSlice(it AnswerIter) ([]Answer, error) {
	var all []Answer
	for {
		a, err := it.Next()
		if err == io.EOF {
			return all, it.Close()
		}
		if err != nil {
			_ = it.Close()
			return nil, err
		}
		all = append(all, a)
	}
}

// Take consumes up to n answers from the iterator, returning fewer if the
// sequence is shorter.
func Take(n int, it AnswerIter) ([]Answer, error) {
	var all []Answer
	for len(all) < n {
		a, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = it.Close()
			return nil, err
		}
		all = append(all, a)
	}
	return all, it.Close()
}
