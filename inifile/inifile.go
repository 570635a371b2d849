// Copyright 2024 Fantom Foundation
// This file is part of prior-plot, the prior sampling and plotting tool.
//
// prior-plot is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// prior-plot is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with prior-plot. If not, see <http://www.gnu.org/licenses/>.

// Package inifile reads workflow configuration files. Several files can be
// combined; options of later files override those of earlier ones and option
// values may reference other options with ${section|option}.
package inifile

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// SubsectionDelim separates a section prefix from its tag, e.g. prior-mass1.
const SubsectionDelim = "-"

// section keeps the options of a section in the order of their first appearance.
type section struct {
	keys   []string
	values map[string]string
}

// Config is a merged view of one or more configuration files.
type Config struct {
	files    []string
	order    []string
	sections map[string]*section
}

// loadOptions keeps option values verbatim; '#' and ';' only start a
// comment at the beginning of a line since labels may contain them.
var loadOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
}

// Load reads the given configuration files in order and merges them.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no configuration file given")
	}
	cfg := New()
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("cannot read configuration file %v; %w", path, err)
		}
		file, err := ini.LoadSources(loadOptions, path)
		if err != nil {
			return nil, fmt.Errorf("cannot parse configuration file %v; %w", path, err)
		}
		cfg.merge(file)
		cfg.files = append(cfg.files, path)
	}
	return cfg, nil
}

// LoadBytes parses configuration content held in memory.
func LoadBytes(data []byte) (*Config, error) {
	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse configuration; %w", err)
	}
	cfg := New()
	cfg.merge(file)
	return cfg, nil
}

// New returns an empty configuration.
func New() *Config {
	return &Config{sections: map[string]*section{}}
}

// merge copies all sections of file into the configuration, overriding
// options that already exist.
func (c *Config) merge(file *ini.File) {
	for _, sec := range file.Sections() {
		name := sec.Name()
		if name == ini.DefaultSection && len(sec.Keys()) == 0 {
			continue
		}
		for _, key := range sec.Keys() {
			c.Set(name, key.Name(), key.Value())
		}
		c.addSection(name)
	}
}

func (c *Config) addSection(name string) *section {
	s, found := c.sections[name]
	if !found {
		s = &section{values: map[string]string{}}
		c.sections[name] = s
		c.order = append(c.order, name)
	}
	return s
}

// Set assigns a value to an option, creating the section if needed.
func (c *Config) Set(sectionName, option, value string) {
	s := c.addSection(sectionName)
	if _, found := s.values[option]; !found {
		s.keys = append(s.keys, option)
	}
	s.values[option] = strings.TrimSpace(value)
}

// Files returns the paths the configuration was loaded from.
func (c *Config) Files() []string {
	return c.files
}

// Sections returns the section names in order of appearance.
func (c *Config) Sections() []string {
	res := make([]string, len(c.order))
	copy(res, c.order)
	return res
}

// HasSection reports whether the section exists.
func (c *Config) HasSection(name string) bool {
	_, found := c.sections[name]
	return found
}

// HasOption reports whether the option exists in the section.
func (c *Config) HasOption(sectionName, option string) bool {
	s, found := c.sections[sectionName]
	if !found {
		return false
	}
	_, found = s.values[option]
	return found
}

// Options returns the option names of a section in order of appearance.
func (c *Config) Options(sectionName string) ([]string, error) {
	s, found := c.sections[sectionName]
	if !found {
		return nil, fmt.Errorf("section [%v] not found", sectionName)
	}
	res := make([]string, len(s.keys))
	copy(res, s.keys)
	return res, nil
}

// Get returns the interpolated value of an option.
func (c *Config) Get(sectionName, option string) (string, error) {
	raw, err := c.raw(sectionName, option)
	if err != nil {
		return "", err
	}
	return c.interpolate(sectionName, raw, 0)
}

// GetFloat returns the value of an option as a float.
func (c *Config) GetFloat(sectionName, option string) (float64, error) {
	value, err := c.Get(sectionName, option)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("option %v in [%v] is not a number: %q", option, sectionName, value)
	}
	return f, nil
}

// GetInt returns the value of an option as an integer.
func (c *Config) GetInt(sectionName, option string) (int, error) {
	value, err := c.Get(sectionName, option)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("option %v in [%v] is not an integer: %q", option, sectionName, value)
	}
	return i, nil
}

// Items returns all interpolated option values of a section.
func (c *Config) Items(sectionName string) (map[string]string, error) {
	options, err := c.Options(sectionName)
	if err != nil {
		return nil, err
	}
	items := make(map[string]string, len(options))
	for _, option := range options {
		if items[option], err = c.Get(sectionName, option); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Subsections returns the sorted tags of all sections named <prefix>-<tag>.
func (c *Config) Subsections(prefix string) []string {
	var tags []string
	for _, name := range c.order {
		if tag, found := strings.CutPrefix(name, prefix+SubsectionDelim); found && tag != "" {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}

func (c *Config) raw(sectionName, option string) (string, error) {
	s, found := c.sections[sectionName]
	if !found {
		return "", fmt.Errorf("section [%v] not found", sectionName)
	}
	value, found := s.values[option]
	if !found {
		return "", fmt.Errorf("option %v not found in section [%v]", option, sectionName)
	}
	return value, nil
}
