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

import (
	"fmt"
	"sort"

	"gopkg.in/src-d/go-prolog.v0/logic"
)

// wildcard is the trie key for anything that is not a ground atom or
// literal: variables, tails and compound arguments all land here, which
// keeps fetch over-approximating but never omitting.
const wildcard = "*"

// Trie keys rules level by level: first the functor, then one level per
// argument position. Fetch descends in parallel with the query path,
// following exact keys and wildcard branches.
type Trie struct {
	root *trieNode
	size int
}

type trieNode struct {
	children map[string]*trieNode
	rules    []logic.Rule
}

var _ logic.Table = (*Trie)(nil)

// NewTrie returns a trie table holding the given rules.
func NewTrie(rules ...logic.Rule) *Trie {
	t := &Trie{root: newTrieNode()}
	for _, r := range rules {
		t.Tell(r)
	}
	return t
}

func newTrieNode() *trieNode {
	return &trieNode{children: map[string]*trieNode{}}
}

// Tell implements logic.Table.
func (t *Trie) Tell(r logic.Rule) {
	r = r.Standardize()
	node := t.root
	for _, key := range rulePath(r.Head) {
		child, ok := node.children[key]
		if !ok {
			child = newTrieNode()
			node.children[key] = child
		}
		node = child
	}
	node.rules = append(node.rules, r)
	t.size++
}

// Fetch implements logic.Table.
func (t *Trie) Fetch(query logic.Term, conditional bool, binding *logic.Binding) logic.AnswerIter {
	var candidates []logic.Rule
	collect(t.root, queryPath(query), &candidates)
	return logic.FetchRules(candidates, query, conditional, binding)
}

// Rules implements logic.Table.
func (t *Trie) Rules() []logic.Rule {
	rules := make([]logic.Rule, 0, t.size)
	walk(t.root, &rules)
	return rules
}

// Facts implements logic.Table.
func (t *Trie) Facts() []logic.Term {
	var facts []logic.Term
	for _, r := range t.Rules() {
		if r.IsFact() {
			facts = append(facts, r.Head)
		}
	}
	return facts
}

// rulePath is the storage path of a head: the functor with its arity, then
// one key per argument.
func rulePath(head logic.Term) []string {
	path := make([]string, 0, len(head.Args)+1)
	path = append(path, fmt.Sprintf("%s/%d", head.Op, len(head.Args)))
	for _, arg := range head.Args {
		path = append(path, argKey(arg))
	}
	return path
}

// queryPath mirrors rulePath for a query, keeping "" as the marker for
// positions that must traverse every branch.
func queryPath(query logic.Term) []string {
	path := make([]string, 0, len(query.Args)+1)
	path = append(path, fmt.Sprintf("%s/%d", query.Op, len(query.Args)))
	for _, arg := range query.Args {
		switch arg.(type) {
		case logic.Var, logic.Tail:
			path = append(path, "")
		default:
			path = append(path, argKey(arg))
		}
	}
	return path
}

// argKey maps an argument to its trie key: ground atoms and literals key on
// their value, everything else is a wildcard.
func argKey(arg logic.Logical) string {
	switch a := arg.(type) {
	case logic.Literal:
		return fmt.Sprintf("l:%v", a.Value)
	case logic.Term:
		if len(a.Args) == 0 {
			return "a:" + a.Op
		}
	}
	return wildcard
}

func collect(node *trieNode, path []string, out *[]logic.Rule) {
	if len(path) == 0 {
		*out = append(*out, node.rules...)
		return
	}
	key := path[0]
	if key == "" || key == wildcard {
		for _, k := range sortedKeys(node.children) {
			collect(node.children[k], path[1:], out)
		}
		return
	}
	if child, ok := node.children[key]; ok {
		collect(child, path[1:], out)
	}
	if child, ok := node.children[wildcard]; ok {
		collect(child, path[1:], out)
	}
}

func walk(node *trieNode, out *[]logic.Rule) {
	*out = append(*out, node.rules...)
	for _, k := range sortedKeys(node.children) {
		walk(node.children[k], out)
	}
}

func sortedKeys(m map[string]*trieNode) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
