package engine

// Guidance for intents whose filename could not be extracted.
const (
	replyCreateMissing = "Please specify a filename to create. Example: 'create file notes.txt'"
	replyDeleteMissing = "Please specify a filename to delete. Example: 'delete notes.txt'"
	replyReadMissing   = "Please specify a filename to read. Example: 'read notes.txt'"
)

// Success and failure templates.
const (
	replyCreated     = "I've created the file: %s"
	replyDeleted     = "I've deleted the file: %s"
	replyFound       = "Found these files:\n%s"
	replyNoMatches   = "No files found matching your search."
	replyContents    = "File contents:\n%s"
	replyCreateError = "Error creating file: %v"
	replyDeleteError = "Error deleting file: %v"
	replySearchError = "Error searching files: %v"
	replyReadError   = "Error reading file: %v"
)

// Fixed conversational replies.
const (
	ReplyHelp = "I can help you with these file operations:\n" +
		"- Create a file (e.g., 'create file notes.txt')\n" +
		"- Delete a file (e.g., 'delete notes.txt')\n" +
		"- Search for files (e.g., 'find Python files')\n" +
		"- Read file contents (e.g., 'read notes.txt')\n" +
		"What would you like to do?"

	ReplyGreet = "Hello! I'm fsbot, your file assistant. " +
		"What would you like to do today?"

	ReplyFarewell = "Goodbye! Feel free to ask for help anytime. Have a great day!"

	ReplyUnknown = "I'm not sure what you'd like me to do. Could you please provide more details? " +
		"Type 'help' to see what I can do."
)
