package main

import (
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/fsnotify/fsnotify"
	"github.com/natrim/globex/lib"
)

func newContext() (api.BuildContext, error) {
	ctx, ctxerr := api.Context(buildOptions)
	if ctxerr != nil {
		errs := []error{errors.New("cannot create esbuild context")}
		for _, msg := range lib.FormatMessages(ctxerr.Errors, api.ErrorMessage, useColor) {
			errs = append(errs, errors.New(msg))
		}
		return nil, errors.Join(errs...)
	}
	return ctx, nil
}

func rebuild(ctx api.BuildContext) {
	start := time.Now()
	if err := reportResult(ctx.Rebuild()); err != nil {
		lib.PrintError(err)
		return
	}
	lib.PrintOk("Build done:", buildOptions.Outfile)
	lib.PrintInfof("Time: %dms\n", time.Since(start).Milliseconds())
}

func watch() error {
	ctx, err := newContext()
	if err != nil {
		return err
	}

	// schedule esbuild context cleanup, ctx gets swapped on config reload
	defer func() {
		ctx.Dispose()
	}()

	rebuild(ctx)

	// start file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// schedule watcher cleanup
	defer func(watcher *fsnotify.Watcher) {
		_ = watcher.Close()
	}(watcher)

	sourceDir := filepath.Dir(buildOptions.EntryPoints[0])
	absWalkPath, err := filepath.Abs(sourceDir)
	if err != nil {
		return err
	}
	absOutfile, err := filepath.Abs(buildOptions.Outfile)
	if err != nil {
		return err
	}
	skipDir := outputDir(absWalkPath, absOutfile)

	lib.PrintInfo("watching:", sourceDir)
	if err := filepath.WalkDir(absWalkPath, watchDir(watcher, skipDir)); err != nil {
		return err
	}

	absConfigPath, err := filepath.Abs(filepath.Join(baseDir, configPath))
	if err != nil {
		return err
	}
	if lib.FileExists(absConfigPath) {
		// watch the dir, editors replace files on save
		if err := watcher.Add(filepath.Dir(absConfigPath)); err != nil {
			return err
		}
		lib.PrintInfo("watching:", configPath)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	timer := time.NewTimer(time.Millisecond)
	<-timer.C
	configChanged := false

	for {
		select {
		case <-stop:
			lib.PrintInfo("stopping watch")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// skip event that has only chmod operation
			if event.Op == fsnotify.Chmod {
				continue
			}

			if event.Name == absConfigPath {
				configChanged = true
			} else if !strings.HasPrefix(event.Name, absWalkPath) || isBuildOutput(event.Name, absOutfile, skipDir) {
				continue
			}

			if event.Has(fsnotify.Write) {
				lib.PrintItem("Change in", event.Name)
			}
			timer.Reset(time.Millisecond * 100)

			// add new directories to watcher if event has create operation
			if event.Has(fsnotify.Create) {
				stat, err := os.Stat(event.Name)
				if err == nil && stat.IsDir() {
					err = filepath.WalkDir(event.Name, watchDir(watcher, skipDir))
					if err != nil {
						lib.PrintError(err)
					}
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			lib.PrintError(err)
		case <-timer.C:
			if configChanged {
				configChanged = false
				lib.PrintReload("Config changed, reloading...")
				// keep the old context when the new config is broken
				if err := buildEsbuildConfig(false); err != nil {
					lib.PrintError(err)
					continue
				}
				printExternals()
				next, err := newContext()
				if err != nil {
					lib.PrintError(err)
					continue
				}
				ctx.Dispose()
				ctx = next
			} else {
				lib.PrintReload("Change detected, rebuilding...")
			}
			rebuild(ctx)
		}
	}
}

// outputDir returns the output dir when it sits strictly inside the watched
// tree, otherwise "".
func outputDir(absWalkPath, absOutfile string) string {
	dir := filepath.Dir(absOutfile)
	if strings.HasPrefix(dir, absWalkPath+string(filepath.Separator)) {
		return dir
	}
	return ""
}

// isBuildOutput reports whether path is written by the build itself, so
// that a rebuild does not trigger the next one.
func isBuildOutput(path, absOutfile, skipDir string) bool {
	if skipDir != "" && (path == skipDir || strings.HasPrefix(path, skipDir+string(filepath.Separator))) {
		return true
	}
	stem := strings.TrimSuffix(absOutfile, filepath.Ext(absOutfile))
	switch path {
	case absOutfile, absOutfile + ".map", stem + ".css", stem + ".css.map":
		return true
	}
	return false
}

// watchDir gets run as a walk func, searching for directories to add watchers to
func watchDir(watcher *fsnotify.Watcher, skipDir string) fs.WalkDirFunc {
	return func(path string, fi os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if skipDir != "" && path == skipDir {
				return filepath.SkipDir
			}
			switch fi.Name() {
			case ".git", ".svn", ".hg", "node_modules":
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	}
}
