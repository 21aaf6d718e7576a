// Package perception turns raw user utterances into intents and parameters.
//
// Classification is rule based: each intent owns a family of keywords and the
// families are tested in a fixed priority order. Matching is done on
// substrings of the lowercased utterance, so "hit" matches the greeting
// family through "hi". Parameter extraction works on the raw text so that
// filenames and queries keep their original case.
package perception

// Intent is the classified category of action an utterance requests.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentCreate
	IntentDelete
	IntentSearch
	IntentRead
	IntentHelp
	IntentGreet
	IntentFarewell
)

var intentNames = map[Intent]string{
	IntentUnknown:  "unknown",
	IntentCreate:   "create",
	IntentDelete:   "delete",
	IntentSearch:   "search",
	IntentRead:     "read",
	IntentHelp:     "help",
	IntentGreet:    "greet",
	IntentFarewell: "farewell",
}

// String returns the lowercase intent name used in logs and API responses.
func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// NeedsFilename reports whether the intent cannot run without a filename.
func (i Intent) NeedsFilename() bool {
	switch i {
	case IntentCreate, IntentDelete, IntentRead:
		return true
	}
	return false
}

// ParseIntentName maps a name produced by String back to its Intent.
func ParseIntentName(name string) (Intent, bool) {
	for intent, n := range intentNames {
		if n == name {
			return intent, true
		}
	}
	return IntentUnknown, false
}
