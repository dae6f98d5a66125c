package domain

import "path/filepath"

const (
	// GendocsDirName is the name of the internal state directory, relative to the config directory.
	GendocsDirName = ".gendocs"

	// StateFileName is the name of the file recording published digests.
	StateFileName = "state.json"

	// DefaultConfigFile is the configuration file used when none is given.
	DefaultConfigFile = "mkgendocs.yml"

	// DefaultSourcesDir is the output directory used when sources_dir is unset.
	DefaultSourcesDir = "docs/sources"

	// DefaultVersion is the ref used in source links when version is unset.
	DefaultVersion = "master"

	// DefaultReadme is the file rendered into index.md.
	DefaultReadme = "README.md"

	// DefaultContributing is the file copied to contributing.md.
	DefaultContributing = "CONTRIBUTING.md"

	// DefaultExamplesDir is the directory whose sources become example pages.
	DefaultExamplesDir = "examples"

	// IndexPage is the site path of the landing page.
	IndexPage = "index.md"

	// ContributingPage is the site path of the contribution guide.
	ContributingPage = "contributing.md"

	// AutogeneratedTag marks where generated content is inserted into a template page.
	AutogeneratedTag = "{{autogenerated}}"

	// DirPerm is the default permission for directories (rwxr-xr-x).
	DirPerm = 0o755

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// StateDirPerm is the permission of the state directory (rwxr-x---).
	StateDirPerm = 0o750
)

// DefaultStatePath returns the state store path for the given config directory.
// It joins root, .gendocs and state.json.
func DefaultStatePath(root string) string {
	return filepath.Join(root, GendocsDirName, StateFileName)
}
