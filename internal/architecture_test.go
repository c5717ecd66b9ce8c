package internal_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestCoreImportRestrictions keeps the game rules free of UI, storage and logging.
func TestCoreImportRestrictions(t *testing.T) {
	allowedPrefixes := []string{
		"redline/internal/game",
		"redline/internal/mission",
		"redline/internal/events",
		"redline/internal/commands",
	}

	for _, dir := range []string{"./game", "./mission", "./events", "./commands"} {
		checkImports(t, dir, allowedPrefixes, nil)
	}
}

// TestTUIImportRestrictions ensures the TUI reaches storage only through
// the auth and save services.
func TestTUIImportRestrictions(t *testing.T) {
	forbiddenPrefixes := []string{
		"redline/internal/database", // No direct database access
		"redline/internal/cli",      // The CLI starts the TUI, not the other way round
	}

	checkImports(t, "./tui", nil, forbiddenPrefixes)
}

// TestStorageImportRestrictions ensures storage knows nothing about sessions or UI.
func TestStorageImportRestrictions(t *testing.T) {
	forbiddenPrefixes := []string{
		"redline/internal/session",
		"redline/internal/tui",
		"redline/internal/theme",
		"redline/internal/cli",
	}

	for _, dir := range []string{"./database", "./save", "./auth"} {
		checkImports(t, dir, nil, forbiddenPrefixes)
	}
}

func checkImports(t *testing.T, packageDir string, allowedPrefixes, forbiddenPrefixes []string) {
	err := filepath.Walk(packageDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			return nil
		}

		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)

			// Skip standard library and third-party imports
			if !strings.HasPrefix(importPath, "redline/internal") {
				continue
			}

			// Check forbidden imports
			for _, forbidden := range forbiddenPrefixes {
				if strings.HasPrefix(importPath, forbidden) {
					t.Errorf("FORBIDDEN import in %s: %s", path, importPath)
				}
			}

			// Check allowed imports (if specified)
			if len(allowedPrefixes) > 0 {
				allowed := false
				for _, prefix := range allowedPrefixes {
					if strings.HasPrefix(importPath, prefix) {
						allowed = true
						break
					}
				}
				if !allowed {
					t.Errorf("DISALLOWED import in %s: %s (not in allowed list)", path, importPath)
				}
			}
		}

		return nil
	})

	if err != nil {
		t.Errorf("Failed to walk directory %s: %v", packageDir, err)
	}
}
