package globals

import (
	"errors"
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
)

// mapperCacheSize bounds the normalized descriptors kept for mapper lookups.
const mapperCacheSize = 1024

// Mapper is a custom matcher and lookup pair. Filter is a Go regexp, Lookup
// is only called for module paths that matched it.
type Mapper struct {
	Filter string
	Lookup func(modulePath string) (ModuleInfo, bool)
}

// Externals is the immutable global externals configuration. It is safe for
// concurrent use and can be shared between builds.
type Externals struct {
	matcher *Matcher
	lookup  func(modulePath string) (ModuleInfo, bool)
	options NormalizedOptions
	// modules is filled for table based configurations only.
	modules map[string]NormalizedModuleInfo
	// cache holds mapper lookups that normalized fine, misses are never cached.
	cache *lru.Cache[string, NormalizedModuleInfo]
}

// New builds externals from a module path to ModuleInfo table. Every entry is
// normalized up front, so any configuration fault is returned here.
func New(table map[string]ModuleInfo, options Options) (*Externals, error) {
	normalizedOptions, err := NormalizeOptions(options)
	if err != nil {
		return nil, err
	}

	specifiers := make([]string, 0, len(table))
	raws := make(map[string]ModuleInfo, len(table))
	modules := make(map[string]NormalizedModuleInfo, len(table))
	var errs []error
	for modulePath, raw := range table {
		info, err := normalizeWithOptions(modulePath, raw, normalizedOptions)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		specifiers = append(specifiers, modulePath)
		raws[modulePath] = raw
		modules[modulePath] = info
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Externals{
		matcher: NewMatcher(specifiers),
		lookup: func(modulePath string) (ModuleInfo, bool) {
			raw, ok := raws[modulePath]
			return raw, ok
		},
		options: normalizedOptions,
		modules: modules,
	}, nil
}

// NewFromVars builds externals from a module path to variable name table.
func NewFromVars(vars map[string]string, options Options) (*Externals, error) {
	table := make(map[string]ModuleInfo, len(vars))
	for modulePath, varName := range vars {
		table[modulePath] = Var(varName)
	}
	return New(table, options)
}

// NewFromMapper builds externals from a custom filter and lookup function.
func NewFromMapper(mapper Mapper, options Options) (*Externals, error) {
	if mapper.Lookup == nil {
		return nil, fmt.Errorf("%w: mapper has no lookup function", ErrInvalidOption)
	}
	matcher, err := CompileMatcher(mapper.Filter)
	if err != nil {
		return nil, err
	}
	normalizedOptions, err := NormalizeOptions(options)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[string, NormalizedModuleInfo](mapperCacheSize)
	if err != nil {
		return nil, err
	}
	return &Externals{
		matcher: matcher,
		lookup:  mapper.Lookup,
		options: normalizedOptions,
		cache:   cache,
	}, nil
}

func (e *Externals) Match(modulePath string) bool {
	return e.matcher.Match(modulePath)
}

func (e *Externals) Filter() string {
	return e.matcher.Filter()
}

// Empty reports whether nothing can ever match.
func (e *Externals) Empty() bool {
	return e.modules != nil && len(e.modules) == 0
}

// Lookup returns the raw descriptor of a matched module path.
func (e *Externals) Lookup(modulePath string) (ModuleInfo, error) {
	raw, ok := e.lookup(modulePath)
	if !ok {
		return ModuleInfo{}, fmt.Errorf("%w: %q", ErrUnknownModule, modulePath)
	}
	return raw, nil
}

// Module returns the normalized descriptor of a matched module path.
func (e *Externals) Module(modulePath string) (NormalizedModuleInfo, error) {
	if e.modules != nil {
		if info, ok := e.modules[modulePath]; ok {
			return info, nil
		}
		return NormalizedModuleInfo{}, fmt.Errorf("%w: %q", ErrUnknownModule, modulePath)
	}
	if info, ok := e.cache.Get(modulePath); ok {
		return info, nil
	}
	raw, err := e.Lookup(modulePath)
	if err != nil {
		return NormalizedModuleInfo{}, err
	}
	info, err := normalizeWithOptions(modulePath, raw, e.options)
	if err != nil {
		return NormalizedModuleInfo{}, err
	}
	e.cache.Add(modulePath, info)
	return info, nil
}

// Contents returns the stand-in module source for a matched module path.
func (e *Externals) Contents(modulePath string) (string, error) {
	info, err := e.Module(modulePath)
	if err != nil {
		return "", err
	}
	return Contents(info), nil
}

// Specifiers lists the configured module paths of a table based configuration.
func (e *Externals) Specifiers() []string {
	specifiers := make([]string, 0, len(e.modules))
	for modulePath := range e.modules {
		specifiers = append(specifiers, modulePath)
	}
	sort.Strings(specifiers)
	return specifiers
}

// normalizeWithOptions lets fields set on raw win over the options.
func normalizeWithOptions(modulePath string, raw ModuleInfo, options NormalizedOptions) (NormalizedModuleInfo, error) {
	if raw.Type == ModuleTypeDefault {
		raw.Type = options.ModuleType(modulePath)
	}
	if raw.NamedExports == nil {
		raw.NamedExports = options.NamedExports(modulePath)
	}
	info, err := Normalize(raw)
	if err != nil {
		return NormalizedModuleInfo{}, fmt.Errorf("module %q: %w", modulePath, err)
	}
	return info, nil
}
