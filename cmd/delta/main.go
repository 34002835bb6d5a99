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
	"log"
	"os"

	"github.com/delta-incubator/delta-go"
	"github.com/delta-incubator/delta-go/config"

	"github.com/docopt/docopt-go"
)

const usage = `delta.

Usage:
  delta render [options] KEY OP VALUE...
  delta parse [options] SEGMENT...
  delta match [options] KEY OP VALUE... [--partition SEGMENT]...
  delta compile [options] KEY OP VALUE...
  delta -h | --help | --version

Commands:
  render      Construct a partition filter and print its canonical form.
  parse       Parse hive-style "key=value" partition path segments.
  match       Match a partition filter against partition path segments.
  compile     Compile a partition filter against a table schema into a
              push-down predicate tree.

Arguments:
  KEY            partition column name
  OP             filter operator: =, !=, >, >=, <, <=, in, not in
  VALUE          raw operand text; repeatable for in / not in
  SEGMENT        hive-style partition path segment, e.g. "year=2021"

Options:
  -h --help            show this help message and exit
  --output TYPE        output type, json or text; falls back to the
                       config file setting, then text
  --type TEXT          declared partition column type for match [default: string]
  --partition SEGMENT  partition path segment to match against (repeatable)
  --schema TEXT        path to the table schema JSON file (for compile)`

type Config struct {
	Render  bool `docopt:"render"`
	Parse   bool `docopt:"parse"`
	Match   bool `docopt:"match"`
	Compile bool `docopt:"compile"`

	Key      string   `docopt:"KEY"`
	Op       string   `docopt:"OP"`
	Values   []string `docopt:"VALUE"`
	Segments []string `docopt:"SEGMENT"`

	Output     string   `docopt:"--output"`
	ColType    string   `docopt:"--type"`
	Partitions []string `docopt:"--partition"`
	Schema     string   `docopt:"--schema"`
}

func main() {
	args, err := docopt.ParseArgs(usage, os.Args[1:], delta.Version())
	if err != nil {
		log.Fatal(err)
	}

	cfg := Config{}
	if err := args.Bind(&cfg); err != nil {
		log.Fatal(err)
	}

	mergeConf(config.EnvConfig, &cfg)

	var output Output
	switch cfg.Output {
	case "json":
		output = jsonOutput{}
	default:
		output = textOutput{}
	}

	switch {
	case cfg.Render:
		filter, err := buildFilter(cfg)
		if err != nil {
			output.Error(err)
			os.Exit(1)
		}
		output.Filter(filter)
	case cfg.Parse:
		partitions, err := parseSegments(cfg.Segments)
		if err != nil {
			output.Error(err)
			os.Exit(1)
		}
		output.Partitions(partitions)
	case cfg.Match:
		runMatch(cfg, output)
	case cfg.Compile:
		runCompile(cfg, output)
	}
}

// command line flags win over the config file
func mergeConf(fileConf config.Config, resConfig *Config) {
	if len(resConfig.Output) == 0 {
		resConfig.Output = fileConf.Output
	}
	if len(resConfig.Schema) == 0 {
		resConfig.Schema = fileConf.Schema
	}
}

func buildFilter(cfg Config) (delta.PartitionFilter, error) {
	switch cfg.Op {
	case "in", "not in":
		return delta.NewPartitionFilterWithValues(cfg.Key, cfg.Op, cfg.Values)
	}

	if len(cfg.Values) != 1 {
		return delta.PartitionFilter{}, errSingleValue(cfg.Op)
	}

	return delta.NewPartitionFilter(cfg.Key, cfg.Op, cfg.Values[0])
}

func parseSegments(segments []string) ([]delta.DeltaTablePartition, error) {
	partitions := make([]delta.DeltaTablePartition, 0, len(segments))
	for _, seg := range segments {
		p, err := delta.NewPartitionFromHivePath(seg)
		if err != nil {
			return nil, err
		}
		partitions = append(partitions, p)
	}

	return partitions, nil
}

func runMatch(cfg Config, output Output) {
	filter, err := buildFilter(cfg)
	if err != nil {
		output.Error(err)
		os.Exit(1)
	}

	partitions, err := parseSegments(cfg.Partitions)
	if err != nil {
		output.Error(err)
		os.Exit(1)
	}

	dt, err := delta.ParseDataType(cfg.ColType)
	if err != nil {
		output.Error(err)
		os.Exit(1)
	}

	types := map[string]delta.DataType{filter.Key: dt}
	output.Match(filter, filter.MatchPartitions(partitions, types))
}

func runCompile(cfg Config, output Output) {
	filter, err := buildFilter(cfg)
	if err != nil {
		output.Error(err)
		os.Exit(1)
	}

	schema, err := loadSchema(cfg.Schema)
	if err != nil {
		output.Error(err)
		os.Exit(1)
	}

	predicate, err := delta.ToPredicate([]delta.PartitionFilter{filter}, schema)
	if err != nil {
		output.Error(err)
		os.Exit(1)
	}
	output.Predicate(predicate)
}

func loadSchema(path string) (*delta.StructType, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var schema delta.StructType
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("%w: %s", delta.ErrInvalidSchema, err)
	}
	if len(schema.Fields()) == 0 {
		return nil, fmt.Errorf("%w: schema has no fields", delta.ErrInvalidSchema)
	}

	return &schema, nil
}
