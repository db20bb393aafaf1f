package globals

import (
	"fmt"
)

type optionShape uint8

const (
	shapeAbsent optionShape = iota
	shapeScalar
	shapeTable
	shapeFunc
)

// ModuleTypeOption is the module type for every module, a per module table or a resolver.
// The zero value means "not set".
type ModuleTypeOption struct {
	shape optionShape
	value ModuleType
	table map[string]ModuleType
	fn    func(modulePath string) ModuleType
}

func ModuleTypeOf(t ModuleType) ModuleTypeOption {
	return ModuleTypeOption{shape: shapeScalar, value: t}
}

func ModuleTypeTable(table map[string]ModuleType) ModuleTypeOption {
	return ModuleTypeOption{shape: shapeTable, table: table}
}

func ModuleTypeFunc(fn func(modulePath string) ModuleType) ModuleTypeOption {
	return ModuleTypeOption{shape: shapeFunc, fn: fn}
}

// NamedExportsOption is the list of named exports for every module, a per module table or a resolver.
// The zero value means "not set".
type NamedExportsOption struct {
	shape optionShape
	value []string
	table map[string][]string
	fn    func(modulePath string) []string
}

func NamedExportsOf(names ...string) NamedExportsOption {
	return NamedExportsOption{shape: shapeScalar, value: names}
}

func NamedExportsTable(table map[string][]string) NamedExportsOption {
	return NamedExportsOption{shape: shapeTable, table: table}
}

func NamedExportsFunc(fn func(modulePath string) []string) NamedExportsOption {
	return NamedExportsOption{shape: shapeFunc, fn: fn}
}

// Options is the legacy way of configuring module types and named exports
// next to a plain specifier to variable name table.
type Options struct {
	ModuleType   ModuleTypeOption
	NamedExports NamedExportsOption
}

// NormalizedOptions resolves options for a single module path.
type NormalizedOptions struct {
	ModuleType   func(modulePath string) ModuleType
	NamedExports func(modulePath string) []string
}

func NormalizeOptions(options Options) (NormalizedOptions, error) {
	moduleType, err := normalizeModuleType(options.ModuleType)
	if err != nil {
		return NormalizedOptions{}, err
	}
	namedExports, err := normalizeNamedExports(options.NamedExports)
	if err != nil {
		return NormalizedOptions{}, err
	}
	return NormalizedOptions{ModuleType: moduleType, NamedExports: namedExports}, nil
}

func orESM(t ModuleType) ModuleType {
	if t == ModuleTypeDefault {
		return ModuleESM
	}
	return t
}

func normalizeModuleType(option ModuleTypeOption) (func(string) ModuleType, error) {
	switch option.shape {
	case shapeAbsent:
		return func(string) ModuleType { return ModuleESM }, nil
	case shapeScalar:
		if option.value > ModuleCJS {
			return nil, fmt.Errorf("%w: %s", ErrInvalidModuleType, option.value)
		}
		t := orESM(option.value)
		return func(string) ModuleType { return t }, nil
	case shapeTable:
		for modulePath, t := range option.table {
			if t > ModuleCJS {
				return nil, fmt.Errorf("%w: %s for %q", ErrInvalidModuleType, t, modulePath)
			}
		}
		table := option.table
		return func(modulePath string) ModuleType { return orESM(table[modulePath]) }, nil
	case shapeFunc:
		if option.fn == nil {
			return nil, fmt.Errorf("%w: nil moduleType resolver", ErrInvalidOption)
		}
		fn := option.fn
		return func(modulePath string) ModuleType { return orESM(fn(modulePath)) }, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized moduleType option", ErrInvalidOption)
	}
}

func normalizeNamedExports(option NamedExportsOption) (func(string) []string, error) {
	switch option.shape {
	case shapeAbsent:
		return func(string) []string { return nil }, nil
	case shapeScalar:
		names := option.value
		if len(names) == 0 {
			names = nil
		}
		return func(string) []string { return names }, nil
	case shapeTable:
		table := option.table
		return func(modulePath string) []string {
			if names := table[modulePath]; len(names) > 0 {
				return names
			}
			return nil
		}, nil
	case shapeFunc:
		if option.fn == nil {
			return nil, fmt.Errorf("%w: nil namedExports resolver", ErrInvalidOption)
		}
		fn := option.fn
		return func(modulePath string) []string {
			if names := fn(modulePath); len(names) > 0 {
				return names
			}
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized namedExports option", ErrInvalidOption)
	}
}

// ParseModuleTypeOption converts decoded config data into a ModuleTypeOption:
// nil, a "esm"/"cjs" string, or an object of module path to "esm"/"cjs".
func ParseModuleTypeOption(value any) (ModuleTypeOption, error) {
	switch v := value.(type) {
	case nil:
		return ModuleTypeOption{}, nil
	case string:
		t, err := ParseModuleType(v)
		if err != nil {
			return ModuleTypeOption{}, err
		}
		return ModuleTypeOf(t), nil
	case ModuleType:
		return ModuleTypeOf(v), nil
	case map[string]any:
		table := make(map[string]ModuleType, len(v))
		for modulePath, raw := range v {
			text, ok := raw.(string)
			if !ok {
				return ModuleTypeOption{}, fmt.Errorf("%w: moduleType for %q must be \"esm\" or \"cjs\", got %v", ErrInvalidOption, modulePath, raw)
			}
			t, err := ParseModuleType(text)
			if err != nil {
				return ModuleTypeOption{}, fmt.Errorf("moduleType for %q: %w", modulePath, err)
			}
			table[modulePath] = t
		}
		return ModuleTypeTable(table), nil
	case map[string]string:
		table := make(map[string]ModuleType, len(v))
		for modulePath, text := range v {
			t, err := ParseModuleType(text)
			if err != nil {
				return ModuleTypeOption{}, fmt.Errorf("moduleType for %q: %w", modulePath, err)
			}
			table[modulePath] = t
		}
		return ModuleTypeTable(table), nil
	case func(string) ModuleType:
		return ModuleTypeFunc(v), nil
	default:
		return ModuleTypeOption{}, fmt.Errorf("%w: moduleType must be a string, an object or a function, got %T", ErrInvalidOption, value)
	}
}

// ParseNamedExportsOption converts decoded config data into a NamedExportsOption:
// nil, a list of names, or an object of module path to list of names.
func ParseNamedExportsOption(value any) (NamedExportsOption, error) {
	switch v := value.(type) {
	case nil:
		return NamedExportsOption{}, nil
	case []string:
		return NamedExportsOf(v...), nil
	case []any:
		names, err := stringList(v)
		if err != nil {
			return NamedExportsOption{}, fmt.Errorf("namedExports: %w", err)
		}
		return NamedExportsOf(names...), nil
	case map[string][]string:
		return NamedExportsTable(v), nil
	case map[string]any:
		table := make(map[string][]string, len(v))
		for modulePath, raw := range v {
			var names []string
			switch list := raw.(type) {
			case nil:
			case []any:
				var err error
				if names, err = stringList(list); err != nil {
					return NamedExportsOption{}, fmt.Errorf("namedExports for %q: %w", modulePath, err)
				}
			case []string:
				names = list
			default:
				return NamedExportsOption{}, fmt.Errorf("%w: namedExports for %q must be a list, got %T", ErrInvalidOption, modulePath, raw)
			}
			table[modulePath] = names
		}
		return NamedExportsTable(table), nil
	case func(string) []string:
		return NamedExportsFunc(v), nil
	default:
		return NamedExportsOption{}, fmt.Errorf("%w: namedExports must be a list, an object or a function, got %T", ErrInvalidOption, value)
	}
}

func stringList(values []any) ([]string, error) {
	names := make([]string, len(values))
	for i, v := range values {
		name, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected a string, got %v", ErrInvalidOption, v)
		}
		names[i] = name
	}
	return names, nil
}
