package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default hiretrack data directory name (relative to home).
	DefaultDataDir = ".hiretrack"
	// DBFile is the SQLite database filename.
	DBFile = "hiretrack.db"
	// FlowsFile is the filename of the optional custom flow definitions.
	FlowsFile = "flows.yaml"
	// DefaultListenAddress is the address the API listens on by default.
	DefaultListenAddress = ":8080"
)

// DataDir returns the hiretrack data directory inside a home directory.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, DefaultDataDir)
}

// DBPath returns the path of the SQLite database inside a home directory.
func DBPath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), DBFile)
}

// FlowsPath returns the path of the custom flows file inside a home directory.
func FlowsPath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), FlowsFile)
}
