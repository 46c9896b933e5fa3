package config

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/specialistvlad/grammargen/internal/ctxlog"
)

// File is the decoded project configuration. Pointer fields distinguish
// "absent from the file" from an explicit zero value, which the merge with
// command-line flags relies on.
type File struct {
	Source          *string
	OutputDir       *string
	OutputOverrides map[string]string
	Generator       GeneratorSettings
	GrammarOptions  map[string]string
}

// GeneratorSettings mirrors the generator block of the project file.
type GeneratorSettings struct {
	Listener       *bool
	Visitor        *bool
	Encoding       *string
	MessageFormat  *string
	LongMessages   *bool
	ATN            *bool
	Depend         *bool
	WarnAsError    *bool
	ExactOutputDir *bool
	Log            *bool
}

// fileRoot is the gohcl decoding target for the whole project file.
type fileRoot struct {
	Source         *string         `hcl:"source,optional"`
	Output         *outputBlock    `hcl:"output,block"`
	Generator      *generatorBlock `hcl:"generator,block"`
	GrammarOptions cty.Value       `hcl:"grammar_options,optional"`
}

type outputBlock struct {
	Dir      *string   `hcl:"dir,optional"`
	Grammars cty.Value `hcl:"grammars,optional"`
}

type generatorBlock struct {
	Listener       *bool   `hcl:"listener,optional"`
	Visitor        *bool   `hcl:"visitor,optional"`
	Encoding       *string `hcl:"encoding,optional"`
	MessageFormat  *string `hcl:"message_format,optional"`
	LongMessages   *bool   `hcl:"long_messages,optional"`
	ATN            *bool   `hcl:"atn,optional"`
	Depend         *bool   `hcl:"depend,optional"`
	WarnAsError    *bool   `hcl:"warnings_as_errors,optional"`
	ExactOutputDir *bool   `hcl:"exact_output_dir,optional"`
	Log            *bool   `hcl:"log,optional"`
}

// Load parses and decodes the project file at path.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Config loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	file := &File{Source: root.Source}

	if root.Output != nil {
		file.OutputDir = root.Output.Dir
		overrides, err := stringMap(root.Output.Grammars)
		if err != nil {
			return nil, fmt.Errorf("invalid output.grammars in %s: %w", path, err)
		}
		file.OutputOverrides = overrides
	}

	if root.Generator != nil {
		file.Generator = GeneratorSettings{
			Listener:       root.Generator.Listener,
			Visitor:        root.Generator.Visitor,
			Encoding:       root.Generator.Encoding,
			MessageFormat:  root.Generator.MessageFormat,
			LongMessages:   root.Generator.LongMessages,
			ATN:            root.Generator.ATN,
			Depend:         root.Generator.Depend,
			WarnAsError:    root.Generator.WarnAsError,
			ExactOutputDir: root.Generator.ExactOutputDir,
			Log:            root.Generator.Log,
		}
	}

	opts, err := stringMap(root.GrammarOptions)
	if err != nil {
		return nil, fmt.Errorf("invalid grammar_options in %s: %w", path, err)
	}
	file.GrammarOptions = opts

	logger.Debug("Config loader finished.", "grammar_options", len(file.GrammarOptions))
	return file, nil
}

// stringMap converts a decoded attribute value into a map of strings. An
// absent attribute yields a nil map.
func stringMap(v cty.Value) (map[string]string, error) {
	if v == cty.NilVal || v.IsNull() {
		return nil, nil
	}

	converted, err := convert.Convert(v, cty.Map(cty.String))
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	for it := converted.ElementIterator(); it.Next(); {
		k, val := it.Element()
		out[k.AsString()] = val.AsString()
	}
	return out, nil
}
