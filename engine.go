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

// Package prolog is a Horn-clause logic engine: it stores rules and facts
// in a knowledge base, accepts queries expressed as logical formulas, and
// lazily enumerates the variable bindings under which the knowledge base
// entails them. Definite clauses plus negation as failure, disjunction,
// comparison constraints and list-tail patterns are supported.
package prolog

import (
	"io"
	"io/ioutil"

	"github.com/opentracing/opentracing-go"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"gopkg.in/src-d/go-prolog.v0/logic"
	"gopkg.in/src-d/go-prolog.v0/logic/parse"
)

// Engine ties a knowledge base to its configuration and instruments
// queries with ids, logging and tracing spans.
type Engine struct {
	// KB is the knowledge base queries run against.
	KB *KnowledgeBase

	cfg Config
}

// New creates an engine over the given knowledge base. A nil knowledge
// base gets a fresh one over the table the configuration selects.
func New(kb *KnowledgeBase, cfg Config) (*Engine, error) {
	if kb == nil {
		table, err := cfg.NewTable()
		if err != nil {
			return nil, err
		}
		kb = NewKnowledgeBase(table)
	}
	logic.OccursCheck = cfg.OccursCheck
	return &Engine{KB: kb, cfg: cfg}, nil
}

// NewDefault creates an engine with an empty knowledge base and default
// configuration.
func NewDefault() *Engine {
	e, _ := New(nil, Config{})
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Load consults a Prolog program from the reader into the knowledge base.
func (e *Engine) Load(r io.Reader) error {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	return e.LoadString(string(data))
}

// LoadString consults a Prolog program from source text.
func (e *Engine) LoadString(src string) error {
	rules, err := parse.Clauses(src)
	if err != nil {
		return err
	}
	for _, r := range rules {
		e.KB.TellRule(r)
	}
	return nil
}

// Query proves the query by backward chaining under the configured
// patience, returning a lazy iterator over answers. The query gets an id
// and a tracing span that finishes when the iterator is exhausted or
// closed.
func (e *Engine) Query(query logic.Logical) (logic.AnswerIter, error) {
	id := uuid.NewV4()
	span := opentracing.GlobalTracer().StartSpan("prolog.query")
	span.SetTag("query.id", id.String())
	span.SetTag("query.text", query.String())

	logrus.WithFields(logrus.Fields{
		"id":    id.String(),
		"query": query.String(),
	}).Debug("executing query")

	it, err := BcAskDepth(e.KB, query, e.cfg.patience(), 0)
	if err != nil {
		span.Finish()
		return nil, err
	}
	return &spanIter{iter: it, span: span}, nil
}

// QueryString parses and proves a textual query.
func (e *Engine) QueryString(src string) (logic.AnswerIter, error) {
	query, err := parse.Query(src)
	if err != nil {
		return nil, err
	}
	return e.Query(query)
}

// spanIter finishes the query span exactly once, on exhaustion or close.
type spanIter struct {
	iter     logic.AnswerIter
	span     opentracing.Span
	finished bool
}

func (i *spanIter) Next() (logic.Answer, error) {
	ans, err := i.iter.Next()
	if err == io.EOF {
		i.finish()
	}
	return ans, err
}

func (i *spanIter) Close() error {
	i.finish()
	return i.iter.Close()
}

func (i *spanIter) finish() {
	if !i.finished {
		i.finished = true
		i.span.Finish()
	}
}
