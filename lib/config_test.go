package lib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/natrim/globex/lib/globals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadConfigPackageJson(t *testing.T) {
	path := writeFile(t, "package.json", `{
		"name": "app",
		"globex": {
			"entry": "src/index.js",
			"outfile": "dist/app.js",
			"format": "iife",
			"globals": {
				"jquery": "$",
				"react": {"varName": "React", "namedExports": ["useState"]}
			},
			"moduleType": {"jquery": "cjs"},
			"namedExports": {"react": ["useEffect"]}
		}
	}`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "src/index.js", config.Entry)
	assert.Equal(t, "dist/app.js", config.Outfile)
	assert.Equal(t, api.FormatIIFE, config.Format)
	assert.Equal(t, api.PlatformBrowser, config.Platform)
	assert.Equal(t, globals.Var("$"), config.Globals["jquery"])

	externals, err := config.Externals()
	require.NoError(t, err)

	contents, err := externals.Contents("jquery")
	require.NoError(t, err)
	assert.Equal(t, "module.exports = $;", contents)

	// the descriptor's own namedExports win over the options table
	contents, err = externals.Contents("react")
	require.NoError(t, err)
	assert.Equal(t, "export default React;\nconst useState = React.useState; export { useState };", contents)
}

func TestLoadConfigPackageJsonWithoutKey(t *testing.T) {
	path := writeFile(t, "package.json", `{"name": "app"}`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, config.Globals)

	externals, err := config.Externals()
	require.NoError(t, err)
	assert.True(t, externals.Empty())
}

func TestLoadConfigPackageJsonFaults(t *testing.T) {
	for name, contents := range map[string]string{
		"key not object":      `{"globex": ["jquery"]}`,
		"unknown option":      `{"globex": {"globalz": {}}}`,
		"bad module":          `{"globex": {"globals": {"jquery": 1}}}`,
		"bad module type":     `{"globex": {"moduleType": 1}}`,
		"bad named exports":   `{"globex": {"namedExports": "a"}}`,
		"bad format":          `{"globex": {"format": "umd"}}`,
		"bad platform":        `{"globex": {"platform": "deno"}}`,
		"not json":            `{`,
		"module type in list": `{"globex": {"moduleType": ["cjs"]}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "package.json", contents))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "package.json"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidGlobalsFailAtSetup(t *testing.T) {
	config, err := LoadConfig(writeFile(t, "package.json", `{"globex": {"globals": {"jquery": "not-valid"}}}`))
	require.NoError(t, err)

	_, err = config.Externals()
	assert.ErrorIs(t, err, globals.ErrInvalidIdentifier)
}

func TestLoadConfigYaml(t *testing.T) {
	path := writeFile(t, "globex.yaml", `
entry: src/main.ts
format: esm
platform: neutral
globals:
  jquery: $
  vue:
    varName: Vue
    defaultExport: false
moduleType: cjs
namedExports:
  vue: [ref, computed, ref]
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "src/main.ts", config.Entry)
	assert.Equal(t, api.FormatESModule, config.Format)
	assert.Equal(t, api.PlatformNeutral, config.Platform)

	externals, err := config.Externals()
	require.NoError(t, err)

	contents, err := externals.Contents("jquery")
	require.NoError(t, err)
	assert.Equal(t, "module.exports = $;", contents)

	info, err := externals.Module("vue")
	require.NoError(t, err)
	assert.Equal(t, globals.ModuleCJS, info.Type)
	assert.Equal(t, []string{"ref", "computed"}, info.NamedExports)
	assert.False(t, info.DefaultExport)
}

func TestLoadConfigYamlFaults(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "globex.yml", "globals:\n  jquery: [a]\n"))
	assert.ErrorIs(t, err, globals.ErrInvalidOption)

	_, err = LoadConfig(writeFile(t, "globex.yml", "unknown: true\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "globex.yml", "moduleType: 3\n"))
	assert.ErrorIs(t, err, globals.ErrInvalidOption)
}

func TestLoadConfigEmptyYaml(t *testing.T) {
	config, err := LoadConfig(writeFile(t, "globex.yml", ""))
	require.NoError(t, err)
	assert.Empty(t, config.Globals)
}
