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

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrArity is returned when an arity-checked functor is called with
	// the wrong number of arguments.
	ErrArity = errors.NewKind("wrong arity: %s expects %d arguments, got %d")
	// ErrNotHorn is returned when a sentence that is not a Horn clause is
	// told to a knowledge base.
	ErrNotHorn = errors.NewKind("only Horn clauses can be told, got %s")
	// ErrUnsupportedQuery is returned when a fetch receives an expression
	// outside the enumerated query shapes.
	ErrUnsupportedQuery = errors.NewKind("cannot fetch this kind of expression: %s")
)
