package lib

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/natrim/globex/lib/globals"
	"gopkg.in/yaml.v3"
)

// ConfigKey is the package.json key globex reads its options from.
const ConfigKey = "globex"

type Config struct {
	Entry     string
	Outfile   string
	Format    api.Format
	Platform  api.Platform
	Target    string
	SourceMap string

	Globals      map[string]globals.ModuleInfo
	ModuleType   globals.ModuleTypeOption
	NamedExports globals.NamedExportsOption
}

// fileConfig is the shape shared by the "globex" package.json key and yaml config files.
type fileConfig struct {
	Entry        string                        `json:"entry" yaml:"entry"`
	Outfile      string                        `json:"outfile" yaml:"outfile"`
	Format       string                        `json:"format" yaml:"format"`
	Platform     string                        `json:"platform" yaml:"platform"`
	Target       string                        `json:"target" yaml:"target"`
	SourceMap    string                        `json:"sourceMap" yaml:"sourceMap"`
	Globals      map[string]globals.ModuleInfo `json:"globals" yaml:"globals"`
	ModuleType   any                           `json:"moduleType" yaml:"moduleType"`
	NamedExports any                           `json:"namedExports" yaml:"namedExports"`
}

type PackageJson map[string]any

func ParsePackageJson(packagePath string) (PackageJson, error) {
	if !FileExists(packagePath) {
		return nil, errors.New("no " + packagePath + " found")
	}

	jsonFile, err := os.ReadFile(packagePath)
	if err != nil {
		return nil, err
	}
	var packageJson PackageJson
	err = json.Unmarshal(jsonFile, &packageJson)
	if err != nil {
		return nil, err
	}

	return packageJson, nil
}

// ParseJsonConfig reads the "globex" key of package.json, a missing key is an empty config.
func ParseJsonConfig(packageJson PackageJson) (*Config, error) {
	options, ok := packageJson[ConfigKey]
	if !ok {
		return &Config{}, nil
	}
	if _, ok = options.(map[string]any); !ok {
		return nil, fmt.Errorf("wrong '%s' key in 'package.json', use object: {globals:{package:variable,...},...}", ConfigKey)
	}

	raw, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err = dec.Decode(&fc); err != nil {
		return nil, errors.Join(fmt.Errorf("wrong '%s' key in 'package.json'", ConfigKey), err)
	}

	return fc.config()
}

func ParseYamlConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(errors.New("wrong config in '"+configPath+"'"), err)
	}

	return fc.config()
}

// LoadConfig picks the parser by extension, anything that is not yaml is read as package.json.
func LoadConfig(configPath string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yml", ".yaml":
		return ParseYamlConfig(configPath)
	default:
		packageJson, err := ParsePackageJson(configPath)
		if err != nil {
			return nil, err
		}
		return ParseJsonConfig(packageJson)
	}
}

func (fc fileConfig) config() (*Config, error) {
	config := Config{
		Entry:     fc.Entry,
		Outfile:   fc.Outfile,
		Target:    fc.Target,
		SourceMap: fc.SourceMap,
		Globals:   fc.Globals,
	}

	var errs []error
	var err error
	if config.Format, err = ParseFormat(fc.Format); err != nil {
		errs = append(errs, err)
	}
	if config.Platform, err = ParsePlatform(fc.Platform); err != nil {
		errs = append(errs, err)
	}
	if config.ModuleType, err = globals.ParseModuleTypeOption(fc.ModuleType); err != nil {
		errs = append(errs, err)
	}
	if config.NamedExports, err = globals.ParseNamedExportsOption(fc.NamedExports); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &config, nil
}

// Externals validates the globals part of the config.
func (c *Config) Externals() (*globals.Externals, error) {
	return globals.New(c.Globals, globals.Options{
		ModuleType:   c.ModuleType,
		NamedExports: c.NamedExports,
	})
}
