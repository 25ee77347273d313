// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
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

package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ConfigFile is the name of the configuration file looked up by FindConfig.
const ConfigFile = "intcode.toml"

// Config is the contents of an intcode.toml configuration file.
type Config struct {
	Log LogConfig `toml:"log"`
	Run RunConfig `toml:"run"`

	// Path is the file the configuration was loaded from (set at load time).
	Path string `toml:"-"`
}

// LogConfig configures logging.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// RunConfig holds the defaults of the run command flags.
type RunConfig struct {
	StopOnOutput bool `toml:"stop-on-output"`
	ASCII        bool `toml:"ascii"`
	Trace        bool `toml:"trace"`
}

// LoadConfig parses the given configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read configuration")
	}
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, errors.Wrapf(err, "parse error in %s", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, errors.Errorf("%s: unknown key %s", path, keys[0])
	}
	c.Path = path
	return &c, nil
}

// FindConfig walks up from startDir to find an intcode.toml file, then loads
// and returns it. Returns nil if no configuration file is found.
func FindConfig(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, errors.Wrap(err, "FindConfig")
	}
	for {
		path := filepath.Join(dir, ConfigFile)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}
