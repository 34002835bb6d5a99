// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/delta-incubator/delta-go"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

type Output interface {
	Filter(delta.PartitionFilter)
	Partitions([]delta.DeltaTablePartition)
	Match(filter delta.PartitionFilter, matched bool)
	Predicate(delta.Predicate)
	Error(error)
}

type textOutput struct{}

func (textOutput) Filter(f delta.PartitionFilter) {
	pterm.Println(f.String())
}

func (textOutput) Partitions(partitions []delta.DeltaTablePartition) {
	data := pterm.TableData{[]string{"key", "value", "type"}}
	for _, p := range partitions {
		data = append(data, []string{p.Key, p.Value.String(), p.Value.Type().Type()})
	}

	pterm.DefaultTable.
		WithHasHeader(true).
		WithHeaderRowSeparator("-").
		WithData(data).Render()
}

func (textOutput) Match(f delta.PartitionFilter, matched bool) {
	if matched {
		pterm.Success.Println(f.String())

		return
	}

	pterm.Error.Println(f.String())
}

func (textOutput) Predicate(p delta.Predicate) {
	leveled := pterm.LeveledList{}
	appendPredicate(&leveled, p, 0)

	root := putils.TreeFromLeveledList(leveled)
	root.Text = "Predicate"
	pterm.DefaultTree.WithRoot(root).Render()
}

func appendPredicate(out *pterm.LeveledList, p delta.Predicate, level int) {
	junction, ok := p.(delta.JunctionPredicate)
	if !ok {
		*out = append(*out, pterm.LeveledListItem{Level: level, Text: p.String()})

		return
	}

	*out = append(*out, pterm.LeveledListItem{Level: level, Text: junction.Op().String()})
	for _, child := range junction.Predicates() {
		appendPredicate(out, child, level+1)
	}
}

func (textOutput) Error(err error) {
	pterm.Error.Println(err.Error())
}

type jsonOutput struct{}

func (jsonOutput) write(v any) {
	if err := json.NewEncoder(os.Stdout).Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (j jsonOutput) Filter(f delta.PartitionFilter) {
	j.write(struct {
		Filter delta.PartitionFilter `json:"filter"`
	}{f})
}

func (j jsonOutput) Partitions(partitions []delta.DeltaTablePartition) {
	type part struct {
		Key   string `json:"key"`
		Value string `json:"value"`
		Type  string `json:"type"`
	}

	out := make([]part, 0, len(partitions))
	for _, p := range partitions {
		out = append(out, part{Key: p.Key, Value: p.Value.String(), Type: p.Value.Type().Type()})
	}
	j.write(struct {
		Partitions []part `json:"partitions"`
	}{out})
}

func (j jsonOutput) Match(f delta.PartitionFilter, matched bool) {
	j.write(struct {
		Filter  delta.PartitionFilter `json:"filter"`
		Matched bool                  `json:"matched"`
	}{f, matched})
}

func (j jsonOutput) Predicate(p delta.Predicate) {
	j.write(struct {
		Predicate string `json:"predicate"`
	}{p.String()})
}

func (j jsonOutput) Error(err error) {
	j.write(struct {
		Error string `json:"error"`
	}{err.Error()})
}
