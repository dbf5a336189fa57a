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
	"io/ioutil"

	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v2"

	"gopkg.in/src-d/go-prolog.v0/logic"
	"gopkg.in/src-d/go-prolog.v0/logic/index/bitmap"
	"gopkg.in/src-d/go-prolog.v0/mem"
)

// ErrUnknownTable is returned when the configuration names a table
// implementation that does not exist.
var ErrUnknownTable = errors.NewKind("unknown table implementation %q")

// Config for the Engine. The zero value is valid: occurs check off,
// unbounded patience, linear table.
type Config struct {
	// OccursCheck enables the occurs check during unification.
	OccursCheck bool `yaml:"occurs_check"`
	// Patience bounds backward-chaining proof depth; zero or negative
	// means unbounded.
	Patience int `yaml:"patience"`
	// Table selects the table implementation: linear, predicate, trie,
	// heuristic or bitmap. Empty means linear.
	Table string `yaml:"table"`
}

func (c Config) patience() int {
	if c.Patience <= 0 {
		return -1
	}
	return c.Patience
}

// NewTable builds the table implementation the configuration selects.
func (c Config) NewTable() (logic.Table, error) {
	switch c.Table {
	case "", "linear":
		return mem.NewLinear(), nil
	case "predicate":
		return mem.NewPredicate(nil), nil
	case "trie":
		return mem.NewTrie(), nil
	case "heuristic":
		return mem.NewHeuristic(nil), nil
	case "bitmap":
		return bitmap.NewTable(), nil
	}
	return nil, ErrUnknownTable.New(c.Table)
}

// ParseConfig reads a Config from YAML.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}
