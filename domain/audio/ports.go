package audio

// FileChecker defines the interface for checking file existence
// This is used to validate inputs and the noise source before any engine runs
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}

// Prompter defines the interface for blocking interactive prompts
type Prompter interface {
	// Confirm asks a yes/no question and blocks until answered
	Confirm(message string, defaultValue bool) (bool, error)
}

// Workspace is the process-scoped temporary area holding intermediate
// artifacts. It is created before processing and removed on every exit path.
type Workspace interface {
	// Join returns the absolute path of a named artifact inside the workspace
	Join(name string) string

	// Discard removes a single artifact
	Discard(path string) error

	// Root returns the workspace directory
	Root() string

	// Close removes the workspace and everything in it
	Close() error
}
