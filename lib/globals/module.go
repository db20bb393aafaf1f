// Package globals replaces bundled modules with global variables that already exist at runtime.
package globals

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownModule     = errors.New("unknown module path")
	ErrMissingVarName    = errors.New("missing variable name")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidModuleType = errors.New("invalid module type")
	ErrInvalidOption     = errors.New("invalid option")
	ErrInvalidFilter     = errors.New("invalid filter")
)

// ModuleType selects the module system of the synthesized stand-in module.
type ModuleType uint8

const (
	ModuleTypeDefault ModuleType = iota
	ModuleESM
	ModuleCJS
)

func ParseModuleType(text string) (ModuleType, error) {
	switch text {
	case "":
		return ModuleTypeDefault, nil
	case "esm":
		return ModuleESM, nil
	case "cjs":
		return ModuleCJS, nil
	default:
		return ModuleTypeDefault, fmt.Errorf("%w: %q, valid values are \"esm\" or \"cjs\"", ErrInvalidModuleType, text)
	}
}

func (t ModuleType) String() string {
	switch t {
	case ModuleTypeDefault:
		return ""
	case ModuleESM:
		return "esm"
	case ModuleCJS:
		return "cjs"
	default:
		return fmt.Sprintf("ModuleType(%d)", uint8(t))
	}
}

func (t ModuleType) MarshalText() ([]byte, error) {
	if t > ModuleCJS {
		return nil, fmt.Errorf("%w: %d", ErrInvalidModuleType, uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *ModuleType) UnmarshalText(text []byte) error {
	parsed, err := ParseModuleType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ModuleInfo describes a module to be replaced by a global variable.
//
// A plain string in config files (or Var in Go) is shorthand for a
// ModuleInfo with only VarName set.
type ModuleInfo struct {
	// VarName is the global variable the import statements are replaced with.
	VarName string `json:"varName" yaml:"varName"`

	// Type defaults to ModuleESM.
	Type ModuleType `json:"type,omitempty" yaml:"type,omitempty"`

	// NamedExports has no effect if Type is ModuleCJS.
	NamedExports []string `json:"namedExports,omitempty" yaml:"namedExports,omitempty"`

	// DefaultExport defaults to true. No effect if Type is ModuleCJS.
	DefaultExport *bool `json:"defaultExport,omitempty" yaml:"defaultExport,omitempty"`
}

// Var is the bare variable name shorthand.
func Var(varName string) ModuleInfo {
	return ModuleInfo{VarName: varName}
}

// moduleInfoFields breaks the recursion of the custom decoders.
type moduleInfoFields ModuleInfo

func (m *ModuleInfo) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var varName string
		if err := json.Unmarshal(data, &varName); err != nil {
			return err
		}
		*m = Var(varName)
		return nil
	}
	if len(data) == 0 || data[0] != '{' {
		return fmt.Errorf("%w: module must be a variable name or an object {varName,type,namedExports,defaultExport}, got %s", ErrInvalidOption, data)
	}

	var fields moduleInfoFields
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fields); err != nil {
		return errors.Join(fmt.Errorf("%w: bad module object", ErrInvalidOption), err)
	}
	*m = ModuleInfo(fields)
	return nil
}

func (m *ModuleInfo) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var varName string
		if err := node.Decode(&varName); err != nil {
			return err
		}
		*m = Var(varName)
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			switch key := node.Content[i].Value; key {
			case "varName", "type", "namedExports", "defaultExport":
			default:
				return fmt.Errorf("%w: unknown module field %q (line %d)", ErrInvalidOption, key, node.Content[i].Line)
			}
		}
		var fields struct {
			VarName       string   `yaml:"varName"`
			Type          string   `yaml:"type"`
			NamedExports  []string `yaml:"namedExports"`
			DefaultExport *bool    `yaml:"defaultExport"`
		}
		if err := node.Decode(&fields); err != nil {
			return errors.Join(fmt.Errorf("%w: bad module object at line %d", ErrInvalidOption, node.Line), err)
		}
		t, err := ParseModuleType(fields.Type)
		if err != nil {
			return err
		}
		*m = ModuleInfo{
			VarName:       fields.VarName,
			Type:          t,
			NamedExports:  fields.NamedExports,
			DefaultExport: fields.DefaultExport,
		}
		return nil
	default:
		return fmt.Errorf("%w: module must be a variable name or a mapping {varName,type,namedExports,defaultExport} (line %d)", ErrInvalidOption, node.Line)
	}
}

// NormalizedModuleInfo is a ModuleInfo with every default applied.
type NormalizedModuleInfo struct {
	VarName string
	// Type is ModuleESM or ModuleCJS, never ModuleTypeDefault.
	Type ModuleType
	// NamedExports is nil when there is nothing to export, otherwise it holds
	// unique names in first seen order.
	NamedExports  []string
	DefaultExport bool
}

// Normalize applies defaults, dedupes named exports and validates identifiers.
func Normalize(raw ModuleInfo) (NormalizedModuleInfo, error) {
	if raw.VarName == "" {
		return NormalizedModuleInfo{}, ErrMissingVarName
	}
	if err := validateVarName(raw.VarName); err != nil {
		return NormalizedModuleInfo{}, err
	}

	info := NormalizedModuleInfo{
		VarName:       raw.VarName,
		Type:          raw.Type,
		DefaultExport: true,
	}

	switch info.Type {
	case ModuleTypeDefault:
		info.Type = ModuleESM
	case ModuleESM, ModuleCJS:
	default:
		return NormalizedModuleInfo{}, fmt.Errorf("%w: %s", ErrInvalidModuleType, raw.Type)
	}

	if raw.DefaultExport != nil {
		info.DefaultExport = *raw.DefaultExport
	}

	names, err := uniqueExports(raw.NamedExports)
	if err != nil {
		return NormalizedModuleInfo{}, err
	}
	info.NamedExports = names

	return info, nil
}

func uniqueExports(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		if !IsBindingName(name) {
			return nil, fmt.Errorf("%w: named export %q", ErrInvalidIdentifier, name)
		}
		seen[name] = true
		unique = append(unique, name)
	}
	return unique, nil
}

// validateVarName accepts a dotted chain of identifiers, ie. "$" or "window.jQuery".
func validateVarName(varName string) error {
	for i, part := range strings.Split(varName, ".") {
		if !IsIdentifier(part) || (i == 0 && IsReservedWord(part)) {
			return fmt.Errorf("%w: variable name %q", ErrInvalidIdentifier, varName)
		}
	}
	return nil
}

// rootIdentifier returns the first segment of a dotted variable name.
func rootIdentifier(varName string) string {
	if i := strings.IndexByte(varName, '.'); i >= 0 {
		return varName[:i]
	}
	return varName
}
