package internalcheck

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// Borrow tracking must stay in safe Go: every raw-pointer concern belongs to
// internal/ffi, the pkg/gdext root (string marshaling), or mockhost (which
// plays the host). The packages below must never import unsafe.
var unsafeFreePackages = []string{
	"github.com/Ughuuu/gdext/pkg/gdext/cell",
	"github.com/Ughuuu/gdext/pkg/gdext/logging",
}

func TestNoUnsafeOutsideFFILayer(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedImports | packages.NeedName | packages.NeedFiles,
	}

	pkgs, err := packages.Load(cfg, unsafeFreePackages...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var findings []string
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			t.Fatalf("package %s has load errors: %v", pkg.PkgPath, pkg.Errors)
		}
		for importPath := range pkg.Imports {
			if importPath == "unsafe" {
				findings = append(findings, fmt.Sprintf("%s imports unsafe", pkg.PkgPath))
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("unsafe confinement policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func TestFFIOnlyImportedByFacade(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedImports | packages.NeedName,
	}

	pkgs, err := packages.Load(cfg, "github.com/Ughuuu/gdext/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	allowed := map[string]bool{
		"github.com/Ughuuu/gdext/internal/ffi":        true,
		"github.com/Ughuuu/gdext/pkg/gdext":           true,
		"github.com/Ughuuu/gdext/pkg/gdext/mockhost":  true,
		"github.com/Ughuuu/gdext/cmd/gdext-probe":     true,
		"github.com/Ughuuu/gdext/examples/hello-host": true,
	}

	var findings []string
	for _, pkg := range pkgs {
		if allowed[pkg.PkgPath] {
			continue
		}
		for importPath := range pkg.Imports {
			if importPath == "github.com/Ughuuu/gdext/internal/ffi" {
				findings = append(findings, fmt.Sprintf("%s imports internal/ffi", pkg.PkgPath))
			}
		}
	}

	if len(findings) > 0 {
		t.Fatalf("raw FFI layer leaked outside the facade:\n%s", strings.Join(findings, "\n"))
	}
}
