package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/grammargen/internal/testutil"
)

func TestParseDefaults(t *testing.T) {
	var out testutil.SafeBuffer
	cfg, exit, err := Parse([]string{"./grammars"}, &out)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "./grammars", cfg.SourcePath)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1, cfg.WorkerCount)
	assert.Equal(t, "lib", cfg.JarLibDir)
	assert.True(t, cfg.Generator.Listener)
	assert.False(t, cfg.Generator.Visitor)
	assert.Empty(t, cfg.Grammars)

	// The positional path counts as an explicit source so a project file
	// cannot override it.
	assert.True(t, cfg.Explicit["source"])
}

func TestParseSourceFlagForms(t *testing.T) {
	var out testutil.SafeBuffer

	t.Run("long flag", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-source", "/src"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "/src", cfg.SourcePath)
	})

	t.Run("shorthand", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-s", "/src"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "/src", cfg.SourcePath)
	})

	t.Run("long flag wins over positional", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-source", "/flag", "/positional"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "/flag", cfg.SourcePath)
	})
}

func TestParseNoSourcePrintsUsage(t *testing.T) {
	var out testutil.SafeBuffer
	cfg, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseConfigOnlyIsEnough(t *testing.T) {
	var out testutil.SafeBuffer
	cfg, exit, err := Parse([]string{"-config", "grammargen.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, exit)
	assert.Empty(t, cfg.SourcePath)
	assert.Equal(t, "grammargen.hcl", cfg.ConfigPath)
}

func TestParseGeneratorFlags(t *testing.T) {
	var out testutil.SafeBuffer
	cfg, _, err := Parse([]string{
		"-listener=false",
		"-visitor",
		"-encoding", "euc-jp",
		"-message-format", "gnu",
		"-long-messages",
		"-atn",
		"-depend",
		"-w-error",
		"-x-exact-output-dir",
		"-x-log",
		"-grammar-option", "superClass=Base",
		"-grammar-option", "language=Java",
		"/src",
	}, &out)
	require.NoError(t, err)

	gen := cfg.Generator
	assert.False(t, gen.Listener)
	assert.True(t, gen.Visitor)
	assert.Equal(t, "euc-jp", gen.Encoding)
	assert.Equal(t, "gnu", gen.MessageFormat)
	assert.True(t, gen.LongMessages)
	assert.True(t, gen.ATN)
	assert.True(t, gen.Depend)
	assert.True(t, gen.WarnAsError)
	assert.True(t, gen.ExactOutputDir)
	assert.True(t, gen.Log)
	assert.Equal(t, map[string]string{"superClass": "Base", "language": "Java"}, gen.GrammarOptions)
}

func TestParseGrammarsList(t *testing.T) {
	var out testutil.SafeBuffer
	cfg, _, err := Parse([]string{"-grammars", "Foo, Bar,,Baz", "/src"}, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Foo", "Bar", "Baz"}, cfg.Grammars)
}

func TestParseOutputOverrides(t *testing.T) {
	var out testutil.SafeBuffer
	cfg, _, err := Parse([]string{"-out", "Foo=./gen/foo", "-out", "Bar=./gen/bar", "/src"}, &out)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Foo": "./gen/foo", "Bar": "./gen/bar"}, cfg.OutputOverrides)
}

func TestParseValidation(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"bad log format", []string{"-log-format", "xml", "/src"}, "invalid log-format"},
		{"bad log level", []string{"-log-level", "verbose", "/src"}, "invalid log-level"},
		{"bad message format", []string{"-message-format", "fancy", "/src"}, "invalid message-format"},
		{"bad grammar option", []string{"-grammar-option", "noequals", "/src"}, "key=value"},
		{"bad output override", []string{"-out", "Foo=", "/src"}, "name=dir"},
		{"zero workers", []string{"-workers", "0", "/src"}, "WorkerCount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out testutil.SafeBuffer
			cfg, exit, err := Parse(tc.args, &out)
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.False(t, exit)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}

func TestParseHelp(t *testing.T) {
	var out testutil.SafeBuffer
	cfg, exit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
}
