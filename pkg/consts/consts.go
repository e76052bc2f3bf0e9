package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ConfigFile is the project configuration file looked up in the working directory
	ConfigFile = ".plsqlfmt.yaml"

	// DefaultIndentWidth is the number of spaces added per indentation level
	DefaultIndentWidth = 2
)
