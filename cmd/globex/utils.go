package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/joho/godotenv"
	"github.com/natrim/globex/lib"
	"github.com/natrim/globex/lib/globals"
)

var envFiles = ""
var envPrefix = "APP_"
var envLoaded = false
var baseDir = "."
var configPath = "package.json"
var entry = "src/index.js"
var outfile = "dist/index.js"
var format = "esm"
var platform = "browser"
var customBrowserTarget = ""
var sourceMap = "linked"
var minify = true

var isBuild = false
var isWatch = false
var isHelp = false
var isVersion = false
var useColor = true

var buildOptions api.BuildOptions
var externals *globals.Externals
var definedReplacements map[string]string

var cliGlobals lib.MapFlags
var cliCommonJS lib.ArrayFlags
var cliNamedExports lib.ExportsFlags

func SetupFlags() {
	// now start settings flags
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.Usage = func() {
		// nothing, app will print it's stuff
	}

	flag.BoolVar(&isBuild, "b", isBuild, "build once")
	flag.BoolVar(&isBuild, "build", isBuild, "alias of -b")
	flag.BoolVar(&isWatch, "w", isWatch, "watch sources and rebuild on change")
	flag.BoolVar(&isWatch, "watch", isWatch, "alias of -w")
	flag.BoolVar(&isVersion, "version", isVersion, "globex version number")
	flag.BoolVar(&isVersion, "v", isVersion, "alias of -version")
	flag.BoolVar(&isHelp, "h", isHelp, "alias of -help")
	flag.BoolVar(&isHelp, "help", isHelp, "this help")

	flag.BoolVar(&useColor, "color", useColor, "colorize output")
	flag.StringVar(&configPath, "config", configPath, "package.json with a \"globex\" key, or a .yml/.yaml config file")
	flag.StringVar(&envFiles, "env", envFiles, "env files to load from (always loads .env first)")
	flag.StringVar(&envPrefix, "envPrefix", envPrefix, "env variables prefix, matching variables are defined as process.env.* and import.meta.env.*")

	flag.StringVar(&entry, "entry", entry, "entry file")
	flag.StringVar(&outfile, "outfile", outfile, "output file")
	flag.StringVar(&format, "format", format, "output format, available options: esm|iife|cjs")
	flag.StringVar(&platform, "platform", platform, "platform, available options: browser|node|neutral")
	flag.StringVar(&customBrowserTarget, "target", customBrowserTarget, "custom browser target, ie. es2020, defaults to esnext")
	flag.StringVar(&sourceMap, "sourceMap", sourceMap, "what sourcemap to use, available options: none|inline|linked|external|both")
	flag.BoolVar(&minify, "minify", minify, "minify on build, watch mode never minifies")

	flag.Var(&cliGlobals, "globals", "replace imports of a package with a global variable 'package:variable', adds to values from config, can have multiple flags, ie. --globals=jquery:$,react:React")
	flag.Var(&cliCommonJS, "cjs", "packages from -globals or config that are replaced as commonjs modules, ie. --cjs=jquery,lodash")
	flag.Var(&cliNamedExports, "exports", "named exports of a replaced package 'package:name|name2', ie. --exports=react:useState|useEffect,vue:ref")
}

func parseEnvVars(isBuildMode bool) (string, string, error) {
	envFiles := strings.Join(strings.Fields(strings.Trim(envFiles, ",")), "")
	if lib.FileExists(filepath.Join(baseDir, ".env")) {
		if envFiles != "" {
			envFiles = ".env," + envFiles
		} else {
			envFiles = ".env"
		}
	}
	if envFiles != "" {
		err := godotenv.Overload(strings.Split(envFiles, ",")...)
		if err != nil {
			return "", "", errors.Join(errors.New("cannot load .env file/s"), err)
		}
	}

	var MODE = os.Getenv("NODE_ENV")
	if MODE == "" && !isBuildMode {
		MODE = "development"
	} else if MODE == "" && isBuildMode {
		MODE = "production"
	}

	definedReplacements = makeDefines(MODE, envPrefix, os.Environ())

	return MODE, envFiles, nil
}

// makeDefines maps the node mode and prefixed env variables to esbuild defines.
func makeDefines(mode, prefix string, environ []string) map[string]string {
	define := map[string]string{
		"process.env.NODE_ENV": fmt.Sprintf("%q", mode),
		"import.meta.env.MODE": fmt.Sprintf("%q", mode),
		"import.meta.env.PROD": fmt.Sprintf("%t", mode != "development"),
		"import.meta.env.DEV":  fmt.Sprintf("%t", mode == "development"),
	}

	if prefix == "" {
		return define
	}
	for _, v := range environ {
		env := strings.SplitN(v, "=", 2)
		if len(env) == 2 && strings.HasPrefix(env[0], prefix) {
			define["process.env."+env[0]] = fmt.Sprintf("%q", env[1])
			define["import.meta.env."+env[0]] = fmt.Sprintf("%q", env[1])
		}
	}

	return define
}

func loadConfig() (*lib.Config, error) {
	path := filepath.Join(baseDir, configPath)
	if !lib.FileExists(path) {
		if lib.IsFlagPassed("config") {
			return nil, errors.New("no " + path + " found")
		}
		return &lib.Config{}, nil
	}
	return lib.LoadConfig(path)
}

// applyCliGlobals overrides config values by values from cli
func applyCliGlobals(config *lib.Config) error {
	if config.Globals == nil {
		config.Globals = make(map[string]globals.ModuleInfo, len(cliGlobals))
	}
	for modulePath, varName := range cliGlobals {
		info := config.Globals[modulePath]
		info.VarName = varName
		config.Globals[modulePath] = info
	}

	var errs []error
	for _, modulePath := range cliCommonJS {
		info, ok := config.Globals[modulePath]
		if !ok {
			errs = append(errs, fmt.Errorf("-cjs: %q is not in globals", modulePath))
			continue
		}
		info.Type = globals.ModuleCJS
		config.Globals[modulePath] = info
	}
	for modulePath, names := range cliNamedExports {
		info, ok := config.Globals[modulePath]
		if !ok {
			errs = append(errs, fmt.Errorf("-exports: %q is not in globals", modulePath))
			continue
		}
		info.NamedExports = names
		config.Globals[modulePath] = info
	}
	return errors.Join(errs...)
}

func buildEsbuildConfig(isBuildMode bool) error {
	if !envLoaded {
		envLoaded = true

		mode, env, err := parseEnvVars(isBuildMode)
		if err != nil {
			return err
		}

		if env != "" {
			lib.PrintInfof("env files: %s\n", env)
		}
		if mode != "" {
			lib.PrintInfof("node mode: \"%s\"\n", mode)
		}
	}

	config, err := loadConfig()
	if err != nil {
		return err
	}

	if lib.IsFlagPassed("entry") || config.Entry == "" {
		config.Entry = entry
	}
	if lib.IsFlagPassed("outfile") || config.Outfile == "" {
		config.Outfile = outfile
	}
	if lib.IsFlagPassed("format") || config.Format == api.FormatDefault {
		if config.Format, err = lib.ParseFormat(format); err != nil {
			return err
		}
	}
	if lib.IsFlagPassed("platform") {
		if config.Platform, err = lib.ParsePlatform(platform); err != nil {
			return err
		}
	}
	if lib.IsFlagPassed("target") || config.Target == "" {
		config.Target = customBrowserTarget
	}
	if lib.IsFlagPassed("sourceMap") || config.SourceMap == "" {
		config.SourceMap = sourceMap
	}
	if err = applyCliGlobals(config); err != nil {
		return err
	}

	// every globals fault surfaces here, before esbuild runs
	externals, err = config.Externals()
	if err != nil {
		return errors.Join(errors.New("invalid globals"), err)
	}

	browserTarget, err := lib.ParseBrowserTarget(config.Target)
	if err != nil {
		return err
	}
	sourceMapMode, err := lib.ParseSourceMap(config.SourceMap)
	if err != nil {
		return err
	}

	buildOptions = api.BuildOptions{
		EntryPoints:       []string{filepath.Join(baseDir, config.Entry)},
		Outfile:           filepath.Join(baseDir, config.Outfile),
		Bundle:            true,
		Format:            config.Format,
		Platform:          config.Platform,
		Target:            browserTarget,
		Sourcemap:         sourceMapMode,
		MinifyIdentifiers: isBuildMode && minify,
		MinifySyntax:      isBuildMode && minify,
		MinifyWhitespace:  isBuildMode && minify,
		Write:             true,
		LogLevel:          api.LogLevelSilent,

		Define: definedReplacements,

		Plugins: []api.Plugin{
			externals.Plugin(),
		},
	}

	if useColor {
		buildOptions.Color = api.ColorIfTerminal
	} else {
		buildOptions.Color = api.ColorNever
	}

	return nil
}

func printExternals() {
	specifiers := externals.Specifiers()
	if len(specifiers) == 0 {
		lib.PrintInfo("no globals configured, nothing will be replaced")
		return
	}
	lib.PrintInfo("globals:")
	for _, modulePath := range specifiers {
		info, err := externals.Module(modulePath)
		if err != nil {
			lib.PrintError(err)
			continue
		}
		line := fmt.Sprintf("%s -> %s (%s)", modulePath, info.VarName, info.Type)
		if info.Type == globals.ModuleESM && len(info.NamedExports) > 0 {
			line += " {" + strings.Join(info.NamedExports, ", ") + "}"
		}
		lib.PrintItem(line)
	}
}
