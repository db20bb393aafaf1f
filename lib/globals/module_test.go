package globals

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestNormalizeShorthandEqualsStructured(t *testing.T) {
	fromString, err := Normalize(Var("X"))
	require.NoError(t, err)
	fromStruct, err := Normalize(ModuleInfo{VarName: "X"})
	require.NoError(t, err)

	assert.Equal(t, fromStruct, fromString)
	assert.Equal(t, NormalizedModuleInfo{VarName: "X", Type: ModuleESM, NamedExports: nil, DefaultExport: true}, fromString)
}

func TestNormalizeDedupesNamedExports(t *testing.T) {
	info, err := Normalize(ModuleInfo{VarName: "lib", NamedExports: []string{"a", "b", "a", "c", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, info.NamedExports)
}

func TestNormalizeEmptyNamedExportsIsNil(t *testing.T) {
	info, err := Normalize(ModuleInfo{VarName: "lib", NamedExports: []string{}})
	require.NoError(t, err)
	assert.Nil(t, info.NamedExports)
}

func TestNormalizeKeepsExplicitFields(t *testing.T) {
	info, err := Normalize(ModuleInfo{
		VarName:       "window.jQuery",
		Type:          ModuleCJS,
		NamedExports:  []string{"ajax"},
		DefaultExport: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, NormalizedModuleInfo{
		VarName:       "window.jQuery",
		Type:          ModuleCJS,
		NamedExports:  []string{"ajax"},
		DefaultExport: false,
	}, info)
}

func TestNormalizeFaults(t *testing.T) {
	tests := []struct {
		name string
		raw  ModuleInfo
		err  error
	}{
		{"missing var name", ModuleInfo{}, ErrMissingVarName},
		{"var name with dash", Var("my-lib"), ErrInvalidIdentifier},
		{"var name starting with digit", Var("3d"), ErrInvalidIdentifier},
		{"var name reserved word", Var("class"), ErrInvalidIdentifier},
		{"var name empty segment", Var("window..jQuery"), ErrInvalidIdentifier},
		{"var name expression", Var("require('x')"), ErrInvalidIdentifier},
		{"named export reserved", ModuleInfo{VarName: "lib", NamedExports: []string{"default"}}, ErrInvalidIdentifier},
		{"named export eval", ModuleInfo{VarName: "lib", NamedExports: []string{"eval"}}, ErrInvalidIdentifier},
		{"named export arguments", ModuleInfo{VarName: "lib", NamedExports: []string{"a", "arguments"}}, ErrInvalidIdentifier},
		{"named export not identifier", ModuleInfo{VarName: "lib", NamedExports: []string{"a-b"}}, ErrInvalidIdentifier},
		{"unknown module type", ModuleInfo{VarName: "lib", Type: ModuleType(9)}, ErrInvalidModuleType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNormalizeAcceptsUnicodeIdentifiers(t *testing.T) {
	info, err := Normalize(ModuleInfo{VarName: "Ωmega", NamedExports: []string{"$", "_private", "café"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"$", "_private", "café"}, info.NamedExports)
}

func TestParseModuleType(t *testing.T) {
	for text, want := range map[string]ModuleType{"": ModuleTypeDefault, "esm": ModuleESM, "cjs": ModuleCJS} {
		got, err := ParseModuleType(text)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseModuleType("umd")
	assert.ErrorIs(t, err, ErrInvalidModuleType)
}

func TestModuleInfoUnmarshalJSON(t *testing.T) {
	var table map[string]ModuleInfo
	err := json.Unmarshal([]byte(`{
		"jquery": "$",
		"react": {"varName": "React", "namedExports": ["useState", "useEffect"]},
		"lodash": {"varName": "_", "type": "cjs"},
		"three": {"varName": "THREE", "defaultExport": false, "namedExports": ["Scene"]}
	}`), &table)
	require.NoError(t, err)

	assert.Equal(t, Var("$"), table["jquery"])
	assert.Equal(t, ModuleInfo{VarName: "React", NamedExports: []string{"useState", "useEffect"}}, table["react"])
	assert.Equal(t, ModuleInfo{VarName: "_", Type: ModuleCJS}, table["lodash"])
	assert.Equal(t, ModuleInfo{VarName: "THREE", DefaultExport: boolPtr(false), NamedExports: []string{"Scene"}}, table["three"])
}

func TestModuleInfoUnmarshalJSONFaults(t *testing.T) {
	for name, data := range map[string]string{
		"number":        `42`,
		"array":         `["$"]`,
		"unknown key":   `{"varName": "$", "named": ["a"]}`,
		"bad type":      `{"varName": "$", "type": "umd"}`,
		"bad exports":   `{"varName": "$", "namedExports": "a"}`,
		"bad default":   `{"varName": "$", "defaultExport": "yes"}`,
		"boolean value": `true`,
	} {
		t.Run(name, func(t *testing.T) {
			var info ModuleInfo
			assert.Error(t, json.Unmarshal([]byte(data), &info))
		})
	}
}

func TestModuleInfoUnmarshalYAML(t *testing.T) {
	var table map[string]ModuleInfo
	err := yaml.Unmarshal([]byte(`
jquery: $
react:
  varName: React
  namedExports: [useState, useEffect]
lodash:
  varName: _
  type: cjs
three:
  varName: THREE
  defaultExport: false
`), &table)
	require.NoError(t, err)

	assert.Equal(t, Var("$"), table["jquery"])
	assert.Equal(t, ModuleInfo{VarName: "React", NamedExports: []string{"useState", "useEffect"}}, table["react"])
	assert.Equal(t, ModuleInfo{VarName: "_", Type: ModuleCJS}, table["lodash"])
	assert.Equal(t, ModuleInfo{VarName: "THREE", DefaultExport: boolPtr(false)}, table["three"])
}

func TestModuleInfoUnmarshalYAMLFaults(t *testing.T) {
	var table map[string]ModuleInfo
	err := yaml.Unmarshal([]byte("jquery: [a, b]\n"), &table)
	assert.ErrorIs(t, err, ErrInvalidOption)

	err = yaml.Unmarshal([]byte("jquery:\n  varName: $\n  type: amd\n"), &table)
	assert.ErrorIs(t, err, ErrInvalidModuleType)

	err = yaml.Unmarshal([]byte("jquery:\n  varName: $\n  named: [a]\n"), &table)
	assert.ErrorIs(t, err, ErrInvalidOption)
}
