package main

import (
	"errors"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/natrim/globex/lib"
)

func build() error {
	start := time.Now()

	lib.PrintItem("Building..")

	// make sure to write files on build
	buildOptions.Write = true

	// esbuild app
	result := api.Build(buildOptions)

	if err := reportResult(result); err != nil {
		lib.PrintInfof("Time: %dms\n", time.Since(start).Milliseconds())
		return err
	}

	lib.PrintOk("Build done:", buildOptions.Outfile)
	lib.PrintInfof("Time: %dms\n", time.Since(start).Milliseconds())

	return nil
}

// reportResult prints esbuild warnings and turns its errors into one error.
func reportResult(result api.BuildResult) error {
	for _, msg := range lib.FormatMessages(result.Warnings, api.WarningMessage, useColor) {
		lib.PrintWarn(msg)
	}

	if len(result.Errors) == 0 {
		return nil
	}

	errs := []error{errors.New("failed to build")}
	for _, msg := range lib.FormatMessages(result.Errors, api.ErrorMessage, useColor) {
		errs = append(errs, errors.New(msg))
	}
	return errors.Join(errs...)
}
