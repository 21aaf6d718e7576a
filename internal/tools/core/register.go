package core

import (
	"fsbot/internal/files"
	"fsbot/internal/tools"
)

// Tool names, as registered.
const (
	ToolCreateFile  = "create_file"
	ToolDeleteFile  = "delete_file"
	ToolReadFile    = "read_file"
	ToolSearchFiles = "search_files"
)

// RegisterAll registers all core filesystem tools bound to fsys.
func RegisterAll(registry *tools.Registry, fsys files.FileSystem) error {
	allTools := []*tools.Tool{
		// File operations
		CreateFileTool(fsys),
		DeleteFileTool(fsys),
		ReadFileTool(fsys),

		// Search operations
		SearchFilesTool(fsys),
	}

	for _, tool := range allTools {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}

	return nil
}
