package filesystem

import (
	"os"
	"path/filepath"

	"audiosweep/domain/audio"
)

// Workspace implements audio.Workspace as a process-scoped temporary
// directory. os.MkdirTemp honors TMPDIR, so the temp root is overridable the
// standard way.
type Workspace struct {
	root string
}

// NewWorkspace creates the temporary directory
func NewWorkspace() (*Workspace, error) {
	root, err := os.MkdirTemp("", "audiosweep-")
	if err != nil {
		return nil, err
	}
	return &Workspace{root: root}, nil
}

// Join returns the absolute path of a named artifact inside the workspace
func (w *Workspace) Join(name string) string {
	return filepath.Join(w.root, name)
}

// Discard removes a single artifact
func (w *Workspace) Discard(path string) error {
	return os.Remove(path)
}

// Root returns the workspace directory
func (w *Workspace) Root() string {
	return w.root
}

// Close removes the workspace and everything in it
func (w *Workspace) Close() error {
	return os.RemoveAll(w.root)
}

// Ensure Workspace implements audio.Workspace
var _ audio.Workspace = (*Workspace)(nil)
