package arch_test

import (
	"path/filepath"
	"strings"
	"testing"
)

// layers assigns each internal package to a numeric layer. A package at
// layer N may only import packages at layer N or below.
var layers = map[string]int{
	"config":    0,
	"handoff":   0,
	"ledger":    0,
	"notify":    0,
	"record":    0,
	"telemetry": 0,

	"launcher": 1,
	"scripts":  1,

	"queue": 2,

	"ui": 3,
}

// loggers lists the packages allowed to log. Everything below them reports
// through returned errors.
var loggers = map[string]bool{
	"launcher": true,
	"queue":    true,
}

// TestDependencyLayering verifies that no internal package imports a package
// from a higher layer.
func TestDependencyLayering(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pkg := range internalPackages(t) {
		importerLayer, ok := layers[pkg]
		if !ok {
			continue
		}
		for _, imp := range internalImports(t, filepath.Join(dir, pkg)) {
			importedLayer, ok := layers[imp]
			if !ok {
				continue
			}
			if importerLayer < importedLayer {
				t.Errorf("layer violation: %s (layer %d) imports %s (layer %d)",
					pkg, importerLayer, imp, importedLayer)
			}
		}
	}
}

// TestNoUnknownPackages forces new packages to be placed in the layer map.
func TestNoUnknownPackages(t *testing.T) {
	t.Parallel()

	for _, pkg := range internalPackages(t) {
		if _, ok := layers[pkg]; !ok {
			t.Errorf("package %s has no layer assignment; add it to the layers map", pkg)
		}
	}
}

func TestLoggingStaysInOrchestration(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pkg := range internalPackages(t) {
		if loggers[pkg] {
			continue
		}
		for _, path := range importPaths(t, filepath.Join(dir, pkg)) {
			if strings.HasSuffix(path, "/logrus") {
				t.Errorf("%s imports %s; return errors and let queue log them", pkg, path)
			}
		}
	}
}
