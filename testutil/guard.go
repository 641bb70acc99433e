// Package testutil holds architecture guards shared by package tests. The
// guards keep the check engine free of storage and transport code.
package testutil

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Forbidden reports whether an import path breaks a package boundary.
type Forbidden func(importPath string) bool

// ImportPrefixForbidden matches import paths equal to, or nested under, any
// of the given prefixes.
func ImportPrefixForbidden(prefixes ...string) Forbidden {
	return func(path string) bool {
		for _, p := range prefixes {
			if path == p || strings.HasPrefix(path, p+"/") {
				return true
			}
		}
		return false
	}
}

// IOImportForbidden matches packages that reach storage, the network or the
// filesystem. Schedule reconstruction and the domain model must not import them.
var IOImportForbidden = ImportPrefixForbidden(
	"os",
	"net",
	"database/sql",
	"projectdash/internal/blob",
	"projectdash/internal/infra",
	"projectdash/internal/tables",
)

// StorageDepForbidden matches the storage drivers and their SDKs. Unlike
// IOImportForbidden it is safe for transitive checks, since the standard
// library itself depends on os and net.
var StorageDepForbidden = ImportPrefixForbidden(
	"projectdash/internal/blob",
	"projectdash/internal/infra",
	"github.com/aws/aws-sdk-go-v2",
	"github.com/jackc/pgx/v5",
	"modernc.org/sqlite",
)

// AssertNoDirectImports parses the non-test Go files of dir and fails when
// any of their imports is forbidden. Build tags are ignored.
func AssertNoDirectImports(t testing.TB, dir string, forbidden Forbidden, reason string) {
	t.Helper()
	found, err := scanImports(dir, forbidden)
	if err != nil {
		t.Fatalf("scan %s: %v", dir, err)
	}
	report(t, "direct import", reason, found)
}

// AssertNoTransitiveDependency runs `go list -deps` on pattern and fails when
// any package in the dependency closure is forbidden.
func AssertNoTransitiveDependency(t testing.TB, pattern string, forbidden Forbidden, reason string) {
	t.Helper()
	found, out, err := listDeps(pattern, forbidden)
	if err != nil {
		t.Fatalf("go list -deps %s: %v\n%s", pattern, err, out)
	}
	report(t, "transitive dependency", reason, found)
}

var goListDeps = func(pattern string) ([]byte, error) {
	return exec.Command("go", "list", "-deps", pattern).CombinedOutput()
}

func listDeps(pattern string, forbidden Forbidden) ([]string, []byte, error) {
	out, err := goListDeps(pattern)
	if err != nil {
		return nil, out, err
	}
	var found []string
	for _, line := range strings.Split(string(out), "\n") {
		if pkg := strings.TrimSpace(line); pkg != "" && forbidden(pkg) {
			found = append(found, pkg)
		}
	}
	return found, out, nil
}

func scanImports(dir string, forbidden Forbidden) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	var found []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ImportsOnly)
		if err != nil {
			return nil, err
		}
		for _, imp := range f.Imports {
			if path := strings.Trim(imp.Path.Value, `"`); forbidden(path) {
				found = append(found, fmt.Sprintf("%s (in %s)", path, name))
			}
		}
	}
	sort.Strings(found)
	return found, nil
}

type fataler interface {
	Fatalf(format string, args ...any)
}

func report(t fataler, kind, reason string, found []string) {
	if len(found) == 0 {
		return
	}
	t.Fatalf("forbidden %s (%s):\n%s", kind, reason, strings.Join(found, "\n"))
}
