// Package core provides the filesystem tools the dispatcher executes.
//
// Each tool is bound to a files.FileSystem, so the tools of one session
// share its current directory and search index.
//
// Tools:
//   - create_file: Create an empty file
//   - delete_file: Delete a file
//   - read_file: Read file contents
//   - search_files: Find entries whose name contains a query
package core
