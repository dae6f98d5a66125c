package ports

import "iter"

//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks

// FileSystem reads the inputs of a generation run.
type FileSystem interface {
	// ReadFile returns the content of the file at path.
	ReadFile(path string) ([]byte, error)
	// Exists reports whether path exists.
	Exists(path string) bool
	// WalkFiles yields the files beneath root, skipping VCS metadata and entries
	// whose base name matches one of ignores.
	WalkFiles(root string, ignores []string) iter.Seq[string]
}
