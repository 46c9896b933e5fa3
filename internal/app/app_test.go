package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/grammargen/internal/antlr"
	"github.com/specialistvlad/grammargen/internal/testutil"
)

func testConfig(source string) Config {
	return Config{
		SourcePath:  source,
		OutputDir:   filepath.Join(source, "..", "gen"),
		Generator:   antlr.DefaultOptions(),
		LogFormat:   "text",
		LogLevel:    "warn",
		WorkerCount: 1,
	}
}

func runApp(t *testing.T, cfg Config, gen *testutil.FakeGenerator) (error, *testutil.SafeBuffer) {
	t.Helper()
	var out testutil.SafeBuffer
	a := NewApp(&out, &cfg, gen)
	return a.Run(context.Background()), &out
}

func TestRunGeneratesRootsOnly(t *testing.T) {
	src := testutil.WriteTree(t, map[string]string{
		"Foo.g4": `parser grammar Foo;
import Common;
options { tokenVocab = CommonLexer; }
foo : BAR ;`,
		"common/Common.g4":      "grammar Common;\ncommon : X ;",
		"common/CommonLexer.g4": "lexer grammar CommonLexer;\nBAR : 'bar' ;",
	})
	gen := &testutil.FakeGenerator{}

	err, _ := runApp(t, testConfig(src), gen)
	require.NoError(t, err)

	// Imported grammars ride along in the library directory; only the root
	// gets its own invocation.
	invs := gen.Invocations()
	require.Len(t, invs, 1)
	inv := invs[0]
	assert.Equal(t, "Foo", inv.Root)
	assert.Equal(t, "Foo.g4", inv.GrammarFile)
	assert.Equal(t, filepath.Join(src, "common"), inv.LibraryDir)
	assert.Equal(t, filepath.Join(src, "..", "gen", "foo"), inv.OutputDir)
}

func TestRunMultipleRootsSorted(t *testing.T) {
	src := testutil.WriteTree(t, map[string]string{
		"Zulu.g4":  "grammar Zulu;\nz : 'z' ;",
		"Alpha.g4": "grammar Alpha;\na : 'a' ;",
	})
	gen := &testutil.FakeGenerator{}

	err, _ := runApp(t, testConfig(src), gen)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Zulu"}, gen.Roots())
}

func TestRunUnresolvedImportWarnsAndContinues(t *testing.T) {
	src := testutil.WriteTree(t, map[string]string{
		"A.g4": "grammar A;\nimport Missing;\na : 'a' ;",
		"B.g4": "grammar B;\nb : 'b' ;",
	})
	gen := &testutil.FakeGenerator{}

	err, out := runApp(t, testConfig(src), gen)
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, gen.Roots())
	assert.Contains(t, out.String(), "Missing")
	assert.Contains(t, out.String(), "excluded")
}

func TestRunUnresolvedImportFatalWithWarnAsError(t *testing.T) {
	src := testutil.WriteTree(t, map[string]string{
		"A.g4": "grammar A;\nimport Missing;\na : 'a' ;",
		"B.g4": "grammar B;\nb : 'b' ;",
	})
	gen := &testutil.FakeGenerator{}

	cfg := testConfig(src)
	cfg.Generator.WarnAsError = true
	err, _ := runApp(t, cfg, gen)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Empty(t, gen.Invocations())
}

func TestRunUnparsableFileIsSkipped(t *testing.T) {
	src := testutil.WriteTree(t, map[string]string{
		"Broken.g4": "this is not a grammar header",
		"Ok.g4":     "grammar Ok;\nok : 'x' ;",
	})
	gen := &testutil.FakeGenerator{}

	err, out := runApp(t, testConfig(src), gen)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ok"}, gen.Roots())
	assert.Contains(t, out.String(), "Broken.g4")
}

func TestRunGeneratorFailureIsPartial(t *testing.T) {
	src := testutil.WriteTree(t, map[string]string{
		"Good.g4": "grammar Good;\ng : 'g' ;",
		"Bad.g4":  "grammar Bad;\nb : 'b' ;",
	})
	gen := &testutil.FakeGenerator{FailRoots: map[string]string{"Bad": "error(50): syntax error"}}

	err, out := runApp(t, testConfig(src), gen)
	require.Error(t, err)
	assert.EqualError(t, err, "generation failed for 1 of 2 grammars")

	// Both roots were attempted despite the failure.
	assert.Len(t, gen.Roots(), 2)
	assert.Contains(t, out.String(), "syntax error")
}

func TestRunEmptyTree(t *testing.T) {
	src := testutil.WriteTree(t, map[string]string{
		"readme.txt": "no grammars here",
	})
	gen := &testutil.FakeGenerator{}

	err, out := runApp(t, testConfig(src), gen)
	require.NoError(t, err)
	assert.Empty(t, gen.Invocations())
	assert.Contains(t, out.String(), "nothing to generate")
}

func TestRunGrammarsFilter(t *testing.T) {
	src := testutil.WriteTree(t, map[string]string{
		"A.g4": "grammar A;\na : 'a' ;",
		"B.g4": "grammar B;\nb : 'b' ;",
	})
	gen := &testutil.FakeGenerator{}

	cfg := testConfig(src)
	cfg.Grammars = []string{"B"}
	err, _ := runApp(t, cfg, gen)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, gen.Roots())
}

func TestRunOutputDirIsNotScanned(t *testing.T) {
	src := testutil.WriteTree(t, map[string]string{
		"A.g4":         "grammar A;\na : 'a' ;",
		"gen/Stale.g4": "grammar Stale;\ns : 's' ;",
	})
	gen := &testutil.FakeGenerator{}

	cfg := testConfig(src)
	cfg.OutputDir = filepath.Join(src, "gen")
	err, _ := runApp(t, cfg, gen)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, gen.Roots())
}

func TestRunOutputDirAtSourceRoot(t *testing.T) {
	// Generating into the source root itself (the CLI default output of "."
	// with `grammargen .`) must not skip the whole tree.
	src := testutil.WriteTree(t, map[string]string{
		"A.g4": "grammar A;\na : 'a' ;",
	})
	gen := &testutil.FakeGenerator{}

	cfg := testConfig(src)
	cfg.OutputDir = src
	err, _ := runApp(t, cfg, gen)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, gen.Roots())
}

func TestRunNameStemMismatchWarns(t *testing.T) {
	src := testutil.WriteTree(t, map[string]string{
		"Renamed.g4": "grammar Actual;\na : 'a' ;",
	})
	gen := &testutil.FakeGenerator{}

	err, out := runApp(t, testConfig(src), gen)
	require.NoError(t, err)

	// The declared name stays authoritative.
	assert.Equal(t, []string{"Actual"}, gen.Roots())
	assert.Contains(t, out.String(), "differs from file name")
}

func TestRunMissingSourcePath(t *testing.T) {
	gen := &testutil.FakeGenerator{}
	cfg := testConfig("")
	cfg.OutputDir = t.TempDir()
	err, _ := runApp(t, cfg, gen)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no source path configured")
}

func TestNewAppLoadsProjectFile(t *testing.T) {
	src := testutil.WriteTree(t, map[string]string{
		"A.g4": "grammar A;\na : 'a' ;",
	})
	projDir := testutil.WriteTree(t, map[string]string{
		"grammargen.hcl": `
source = "` + src + `"

generator {
  visitor = true
}

grammar_options = {
  language = "Java"
}
`,
	})

	var out testutil.SafeBuffer
	cfg := testConfig("")
	cfg.ConfigPath = filepath.Join(projDir, "grammargen.hcl")
	a := NewApp(&out, &cfg)

	effective := a.Config()
	assert.Equal(t, src, effective.SourcePath)
	assert.True(t, effective.Generator.Visitor)
	assert.Equal(t, map[string]string{"language": "Java"}, effective.Generator.GrammarOptions)
}

func TestNewAppBadProjectFilePanics(t *testing.T) {
	projDir := testutil.WriteTree(t, map[string]string{
		"grammargen.hcl": "source = ",
	})

	var out testutil.SafeBuffer
	cfg := testConfig("")
	cfg.ConfigPath = filepath.Join(projDir, "grammargen.hcl")
	assert.Panics(t, func() {
		NewApp(&out, &cfg)
	})
}

func TestExplicitFlagsWinOverProjectFile(t *testing.T) {
	src := testutil.WriteTree(t, map[string]string{
		"A.g4": "grammar A;\na : 'a' ;",
	})
	projDir := testutil.WriteTree(t, map[string]string{
		"grammargen.hcl": `
source = "/from/file"

output {
  dir = "/file/out"
}

generator {
  listener = false
}
`,
	})

	var out testutil.SafeBuffer
	cfg := testConfig(src)
	cfg.ConfigPath = filepath.Join(projDir, "grammargen.hcl")
	cfg.Explicit = map[string]bool{"source": true, "output": true, "listener": true}
	a := NewApp(&out, &cfg)

	effective := a.Config()
	assert.Equal(t, src, effective.SourcePath)
	assert.NotEqual(t, "/file/out", effective.OutputDir)
	assert.True(t, effective.Generator.Listener)
}
