package compatfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/albertocavalcante/go-regcompat/compat"
)

// filePermissions is the mode for written compat documents. Registry
// content is public, so world-readable.
const filePermissions = 0o644

// ReadFile reads and decodes a compat document. A missing file decodes as
// an empty table: the package has no registered versions yet.
func ReadFile(path string) (*compat.Table, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return compat.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read compat document: %w", err)
	}
	return Decode(data)
}

// WriteFile encodes the table and replaces the document at path
// atomically: the bytes go to a temp file in the same directory, which is
// then renamed over the target. A failed registration never leaves a
// partial document behind.
func WriteFile(path string, t *compat.Table) error {
	data, err := Encode(t)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".compat-*.toml")
	if err != nil {
		return fmt.Errorf("write compat document: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write compat document: %w", err)
	}
	if err := tmp.Chmod(filePermissions); err != nil {
		tmp.Close()
		return fmt.Errorf("write compat document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write compat document: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write compat document: %w", err)
	}
	return nil
}
