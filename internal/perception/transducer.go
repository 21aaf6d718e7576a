package perception

import (
	"context"
	"strings"

	"fsbot/internal/logging"
)

// =============================================================================
// KEYWORD CORPUS
// =============================================================================
// Each entry maps a keyword family to an intent. The corpus is ordered: the
// first entry whose family matches wins. File operations come before the
// conversational intents so that "help me find a file" is a search.

// IntentEntry defines one keyword family.
type IntentEntry struct {
	Intent Intent
	AllOf  []string // every keyword must appear
	AnyOf  []string // at least one keyword must appear
}

// matches reports whether the lowercased input satisfies the family.
func (e IntentEntry) matches(lower string) bool {
	for _, kw := range e.AllOf {
		if !strings.Contains(lower, kw) {
			return false
		}
	}
	if len(e.AnyOf) == 0 {
		return len(e.AllOf) > 0
	}
	for _, kw := range e.AnyOf {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IntentCorpus is the priority-ordered keyword table.
var IntentCorpus = []IntentEntry{
	{Intent: IntentCreate, AllOf: []string{"create", "file"}},
	{Intent: IntentDelete, AnyOf: []string{"delete", "remove"}},
	{Intent: IntentSearch, AnyOf: []string{"find", "search"}},
	{Intent: IntentRead, AnyOf: []string{"read", "open"}},
	{Intent: IntentHelp, AnyOf: []string{"help"}},
	{Intent: IntentGreet, AnyOf: []string{"hello", "hi"}},
	{Intent: IntentFarewell, AnyOf: []string{"bye", "goodbye"}},
}

// Classify returns the intent of an utterance. It never fails: input that
// matches no family is IntentUnknown.
func Classify(utterance string) Intent {
	lower := strings.ToLower(utterance)
	for _, entry := range IntentCorpus {
		if entry.matches(lower) {
			return entry.Intent
		}
	}
	return IntentUnknown
}

// =============================================================================
// TRANSDUCER
// =============================================================================

// ParsedIntent is the classification of one utterance plus its parameters.
type ParsedIntent struct {
	Intent      Intent
	Filename    string
	HasFilename bool
	SearchQuery string
	Raw         string
}

// Transducer defines the interface for the perception layer.
type Transducer interface {
	ParseIntent(ctx context.Context, input string) (ParsedIntent, error)
}

// KeywordTransducer is the deterministic Transducer backed by IntentCorpus.
type KeywordTransducer struct{}

// NewKeywordTransducer creates a keyword transducer.
func NewKeywordTransducer() *KeywordTransducer {
	return &KeywordTransducer{}
}

// ParseIntent classifies the input and extracts the parameters the intent
// needs. The error is always nil; it exists to satisfy Transducer.
func (t *KeywordTransducer) ParseIntent(ctx context.Context, input string) (ParsedIntent, error) {
	parsed := ParsedIntent{
		Intent: Classify(input),
		Raw:    input,
	}

	switch parsed.Intent {
	case IntentCreate, IntentDelete, IntentRead:
		parsed.Filename, parsed.HasFilename = ExtractFilename(input)
	case IntentSearch:
		parsed.SearchQuery = ExtractSearchQuery(input)
	}

	logging.PerceptionDebug("parsed intent=%s filename=%q query=%q", parsed.Intent, parsed.Filename, parsed.SearchQuery)
	return parsed, nil
}
