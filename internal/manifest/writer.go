package manifest

import (
	"fmt"
	"io"
	"os"

	"github.com/bft-labs/qiimemanifest/internal/domain"
)

// Write writes the manifest text to w.
func Write(w io.Writer, m *domain.Manifest) error {
	_, err := io.WriteString(w, m.String())
	return err
}

// WriteFile replaces the file at path with the manifest text.
// Uses atomic write (write to temp file, then rename) so readers never see a partial manifest.
func WriteFile(path string, m *domain.Manifest) error {
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, []byte(m.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
