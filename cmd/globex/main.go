package main

import (
	"errors"
	"flag"
	"os"

	"github.com/natrim/globex/lib"
)

const help = `globex bundles an entry with esbuild and replaces imports of configured packages with global variables.

usage: globex -b|-w [options]

globals come from the "globex" key of package.json (or a .yml/.yaml file passed with -config):

  "globex": {
    "globals": {"jquery": "$", "react": {"varName": "React", "namedExports": ["useState"]}},
    "moduleType": {"jquery": "cjs"},
    "namedExports": {"react": ["useEffect"]}
  }

options:`

func main() {
	SetupFlags()

	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			isHelp = true
		} else {
			lib.PrintError(err)
			os.Exit(1)
		}
	}

	lib.UseColor(useColor)

	if isVersion {
		lib.PrintOk("globex version:", lib.Version)
		os.Exit(0)
	}

	if isHelp || (!isBuild && !isWatch) {
		lib.Print(help)
		flag.CommandLine.SetOutput(os.Stdout)
		flag.PrintDefaults()
		os.Exit(0)
	}

	if err := buildEsbuildConfig(isBuild && !isWatch); err != nil {
		lib.PrintError(err)
		os.Exit(1)
	}

	printExternals()

	var err error
	if isWatch {
		err = watch()
	} else {
		err = build()
	}
	if err != nil {
		lib.PrintError(err)
		os.Exit(1)
	}
}
