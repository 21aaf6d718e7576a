package perception

import (
	"strings"
)

// searchStopWord is dropped from search queries ("find python files").
const searchStopWord = "files"

// tokenize splits an utterance on whitespace. Index 0 is the command verb.
func tokenize(utterance string) []string {
	return strings.Fields(utterance)
}

// ExtractFilename returns the first token after the command verb that
// contains a '.', with its case preserved.
func ExtractFilename(utterance string) (string, bool) {
	tokens := tokenize(utterance)
	for i := 1; i < len(tokens); i++ {
		if strings.Contains(tokens[i], ".") {
			return tokens[i], true
		}
	}
	return "", false
}

// ExtractSearchQuery joins every token after the command verb, except the
// word "files", with single spaces. The result may be empty.
func ExtractSearchQuery(utterance string) string {
	tokens := tokenize(utterance)
	if len(tokens) < 2 {
		return ""
	}

	kept := make([]string, 0, len(tokens)-1)
	for _, tok := range tokens[1:] {
		if strings.EqualFold(tok, searchStopWord) {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}
