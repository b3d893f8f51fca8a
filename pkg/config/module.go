// Package config loads TactiLink's settings from yaml or json files validated
// against an embedded CUE schema.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	J "cuelang.org/go/encoding/json"
	"cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaFile string

//go:embed default.yaml
var DEFAULT []byte

func readFile(ctx *cue.Context, path string) (*cue.Value, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("does not exist")
	}

	var value cue.Value
	switch filepath.Ext(path) {
	case ".json":
		dataFile, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		dataExpr, err := J.Extract(path, dataFile)
		if err != nil {
			return nil, err
		}

		value = ctx.BuildExpr(dataExpr)
	case ".yaml", ".yml":
		yamlFile, err := yaml.Extract(path, nil)
		if err != nil {
			return nil, err
		}

		value = ctx.BuildFile(yamlFile)
	default:
		return nil, fmt.Errorf("not in a valid format")
	}

	if err := value.Err(); err != nil {
		return nil, err
	}

	return &value, nil
}

func readDefault(ctx *cue.Context) (*cue.Value, error) {
	yamlFile, err := yaml.Extract("<default>", DEFAULT)
	if err != nil {
		return nil, err
	}

	value := ctx.BuildFile(yamlFile)
	if err := value.Err(); err != nil {
		return nil, err
	}

	return &value, nil
}

// Process reads the provided configuration files in order and unifies them
// with the schema. Later files may only add to earlier ones; conflicting
// values are an error. With no files the embedded default is used.
func Process(configPaths []string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaFile)
	if err := schema.Err(); err != nil {
		return nil, err
	}

	if len(configPaths) == 0 {
		value, err := readDefault(ctx)
		if err != nil {
			return nil, err
		}

		schema = schema.Unify(*value)
		if err := schema.Err(); err != nil {
			return nil, fmt.Errorf(
				"invalid default config file: %w",
				err,
			)
		}
	}

	for _, path := range configPaths {
		value, err := readFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf(
				"could not process config file %s: %w",
				path,
				err,
			)
		}

		schema = schema.Unify(*value)
		if err := schema.Err(); err != nil {
			return nil, fmt.Errorf(
				"could not merge config file %s: %w",
				path,
				err,
			)
		}

		if err := schema.Validate(); err != nil {
			return nil, fmt.Errorf(
				"config file %s is not valid: %w",
				path,
				err,
			)
		}
	}

	if err := schema.Validate(); err != nil {
		return nil, err
	}

	data, err := schema.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf(
			"could not aggregate config: %w",
			err,
		)
	}

	config := Config{}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := config.check(); err != nil {
		return nil, err
	}

	return &config, nil
}

// check covers rules that span several fields.
func (c *Config) check() error {
	if c.Cache.Kind == CacheKindFS && c.Cache.Directory == "" {
		return fmt.Errorf("cache kind %q requires cache.directory", c.Cache.Kind)
	}
	return nil
}
