package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/lodestone"
)

// Ensure SnapshotStore implements lodestone.SnapshotStore at compile time.
var _ lodestone.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore writes the markup each definition was bound to as
// dir/<name>.html, replacing earlier snapshots.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates a SnapshotStore writing into dir.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// Path returns the file a snapshot for name is written to.
func (s *SnapshotStore) Path(name string) string {
	return filepath.Join(s.dir, name+".html")
}

// SaveSnapshot writes html to a temporary file and renames it into place
// so readers never see a partial snapshot.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, name, html string) error {
	if name == "" || name != filepath.Base(name) {
		return lodestone.Errorf(lodestone.EINVALID, "invalid snapshot name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path(name))
}
