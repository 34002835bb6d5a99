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

package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	cfgFile       = ".delta-go.yaml"
	defaultOutput = "text"
)

type Config struct {
	// Output selects the CLI rendering, "text" or "json".
	Output string `yaml:"output"`
	// Schema is the default path of a table schema JSON file used by
	// predicate compilation when no --schema flag is given.
	Schema string `yaml:"schema"`
}

// LoadConfig reads the raw config file contents, either from the given path
// or from the default location in the user's home directory. A missing file
// is not an error and yields nil.
func LoadConfig(configPath string) []byte {
	var path string
	if len(configPath) > 0 {
		path = configPath
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(homeDir, cfgFile)
	}
	file, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	return file
}

func fromConfigFiles() Config {
	dir := os.Getenv("DELTA_GO_HOME")
	if dir != "" {
		dir = filepath.Join(dir, cfgFile)
	}

	var cfg Config
	if err := yaml.Unmarshal(LoadConfig(dir), &cfg); err != nil {
		return cfg
	}

	if cfg.Output == "" {
		cfg.Output = defaultOutput
	}

	return cfg
}

var EnvConfig = fromConfigFiles()
