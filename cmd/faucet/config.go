// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"
)

// loadConfig reads a flat YAML mapping of flag names to values.
func loadConfig(path string, known map[string]bool) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	values := make(map[string]string, len(raw))
	for name, v := range raw {
		if !known[name] {
			return nil, fmt.Errorf("config: unknown flag %q", name)
		}
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("config: flag %q must be a scalar", name)
		case nil:
			continue
		}
		values[name] = fmt.Sprint(v)
	}
	return values, nil
}

// applyConfig fills flags not given on the command line from the config file.
func applyConfig(ctx *cli.Context, flags []cli.Flag) error {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return nil
	}

	known := make(map[string]bool, len(flags))
	for _, f := range flags {
		if f.GetName() != configFlag.Name {
			known[f.GetName()] = true
		}
	}
	values, err := loadConfig(path, known)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ctx.IsSet(name) {
			continue
		}
		if err := ctx.Set(name, values[name]); err != nil {
			return errors.Wrapf(err, "config: flag %q", name)
		}
	}
	return nil
}
