package migrate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var migrationNameRe = regexp.MustCompile(`[^a-z0-9_]+`)

// DialectDir returns the directory under root that holds the migration set
// for driver, e.g. <root>/postgres or <root>/sqlite.
func DialectDir(root, driver string) string {
	return filepath.Join(root, path.Base(TargetFor(driver).Dir))
}

// CreateSQLMigration writes an empty goose migration into the dialect
// directory selected by driver:
//
//	<root>/<postgres|sqlite>/<YYYYMMDDHHMMSS>_<name>.sql
//
// Both sets must stay in step; callers create the sibling file for the other
// dialect with the same name.
func CreateSQLMigration(root, driver, name string) (string, error) {
	if root == "" {
		return "", errors.New("migrations root is required")
	}
	slug := migrationSlug(name)
	if slug == "" {
		return "", fmt.Errorf("migration name %q has no usable characters", name)
	}

	target := TargetFor(driver)
	dir := DialectDir(root, driver)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	file := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", time.Now().UTC().Format("20060102150405"), slug))
	if _, err := os.Stat(file); err == nil {
		return "", fmt.Errorf("migration already exists: %s", file)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat %q: %w", file, err)
	}

	body := fmt.Sprintf(`-- dialect: %s
-- +goose Up
-- +goose StatementBegin
-- %s
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- revert %s
-- +goose StatementEnd
`, target.Dialect, slug, slug)

	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", file, err)
	}
	return file, nil
}

func migrationSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = migrationNameRe.ReplaceAllString(slug, "_")
	return strings.Trim(slug, "_")
}
