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
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/src-d/go-prolog.v0/logic"
)

// FormatRule renders a rule back to clause syntax. Variable ids are
// stripped first, so standardized rules come out in their readable textual
// form; the result parses back to an equal rule.
func FormatRule(r logic.Rule) string {
	r = r.StripIDs()
	if r.IsFact() {
		return Format(r.Head) + "."
	}
	return Format(r.Head) + " :- " + Format(r.Body) + "."
}

// Format renders an expression in surface syntax.
func Format(x logic.Logical) string {
	return format(x, false)
}

func format(x logic.Logical, nested bool) string {
	switch t := x.(type) {
	case logic.Term:
		if len(t.Args) == 0 {
			return t.Op
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = format(a, true)
		}
		return t.Op + "(" + strings.Join(args, ", ") + ")"
	case logic.Var:
		return t.Name
	case logic.Tail:
		return t.Name
	case logic.Literal:
		if s, ok := t.Value.(string); ok {
			return strconv.Quote(s)
		}
		return fmt.Sprint(t.Value)
	case logic.And:
		if len(t.Args) == 0 {
			return "true"
		}
		return formatJoin(t.Args, ", ", nested)
	case logic.Or:
		if len(t.Args) == 0 {
			return "fail"
		}
		return formatJoin(t.Args, "; ", nested)
	case logic.Not:
		return "\\+ " + format(t.Item, true)
	case logic.Keyword:
		if t == logic.CUT {
			return "!"
		}
		return string(t)
	}
	// Constraints and tuples have no surface syntax; fall back to the
	// core rendering.
	return x.String()
}

func formatJoin(args []logic.Logical, sep string, nested bool) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = format(a, true)
	}
	joined := strings.Join(parts, sep)
	if nested {
		return "(" + joined + ")"
	}
	return joined
}
