// Package engine interprets utterances: it classifies them, extracts the
// parameters the intent needs, runs the matching filesystem tool and records
// the exchange in the conversation state.
package engine

import (
	"context"
	"errors"
	"fmt"

	"fsbot/internal/conversation"
	"fsbot/internal/files"
	"fsbot/internal/logging"
	"fsbot/internal/perception"
	"fsbot/internal/tools"
	"fsbot/internal/tools/core"
)

// intentTools maps the filesystem intents to the tool that serves them.
var intentTools = map[perception.Intent]string{
	perception.IntentCreate: core.ToolCreateFile,
	perception.IntentDelete: core.ToolDeleteFile,
	perception.IntentSearch: core.ToolSearchFiles,
	perception.IntentRead:   core.ToolReadFile,
}

// Turn is the outcome of one utterance.
type Turn struct {
	Intent perception.Intent
	Reply  string
}

// Engine owns one session: its filesystem view, its tools and its
// transcript. Calls must not overlap; front ends that accept concurrent
// input serialize them.
type Engine struct {
	fs         files.FileSystem
	state      *conversation.State
	registry   *tools.Registry
	transducer perception.Transducer
}

// New creates an engine over fsys. A nil state starts an empty transcript.
func New(fsys files.FileSystem, state *conversation.State) (*Engine, error) {
	if fsys == nil {
		return nil, errors.New("engine: nil filesystem")
	}
	if state == nil {
		state = conversation.NewState()
	}

	registry := tools.NewRegistry()
	if err := core.RegisterAll(registry, fsys); err != nil {
		return nil, fmt.Errorf("engine: register tools: %w", err)
	}

	logging.SessionDebug("engine ready: session=%s tools=%v", state.ID(), registry.Names())
	return &Engine{
		fs:         fsys,
		state:      state,
		registry:   registry,
		transducer: perception.NewKeywordTransducer(),
	}, nil
}

// State returns the session transcript.
func (e *Engine) State() *conversation.State {
	return e.state
}

// FileSystem returns the filesystem the engine dispatches to.
func (e *Engine) FileSystem() files.FileSystem {
	return e.fs
}

// HandleUtterance processes one line of user text and returns the reply.
func (e *Engine) HandleUtterance(ctx context.Context, text string) string {
	return e.Handle(ctx, text).Reply
}

// Handle processes one line of user text. The user message is recorded
// before classification and exactly one assistant message after the reply
// is built, whatever the outcome.
func (e *Engine) Handle(ctx context.Context, text string) Turn {
	e.state.Append(conversation.NewMessage(conversation.RoleUser, text))

	parsed, err := e.transducer.ParseIntent(ctx, text)
	if err != nil {
		logging.Get(logging.CategoryPerception).Warn("parse failed, treating as unknown: %v", err)
		parsed = perception.ParsedIntent{Intent: perception.IntentUnknown, Raw: text}
	}

	reply := e.dispatch(ctx, parsed)
	e.state.Append(conversation.NewMessage(conversation.RoleAssistant, reply))

	logging.Session("turn %d: intent=%s", e.state.Turns(), parsed.Intent)
	return Turn{Intent: parsed.Intent, Reply: reply}
}

// Dispatch runs intent against the filesystem using parameters extracted
// from utterance and returns the reply. It does not touch the transcript.
func (e *Engine) Dispatch(ctx context.Context, intent perception.Intent, utterance string) string {
	parsed := perception.ParsedIntent{Intent: intent, Raw: utterance}
	switch intent {
	case perception.IntentCreate, perception.IntentDelete, perception.IntentRead:
		parsed.Filename, parsed.HasFilename = perception.ExtractFilename(utterance)
	case perception.IntentSearch:
		parsed.SearchQuery = perception.ExtractSearchQuery(utterance)
	}
	return e.dispatch(ctx, parsed)
}

func (e *Engine) dispatch(ctx context.Context, parsed perception.ParsedIntent) string {
	switch parsed.Intent {
	case perception.IntentHelp:
		return ReplyHelp
	case perception.IntentGreet:
		return ReplyGreet
	case perception.IntentFarewell:
		return ReplyFarewell
	case perception.IntentUnknown:
		return ReplyUnknown
	}

	toolName, ok := intentTools[parsed.Intent]
	if !ok {
		return ReplyUnknown
	}

	args, err := toolArgs(parsed)
	if errors.Is(err, ErrParameterMissing) {
		logging.RoutingDebug("%s: %v", parsed.Intent, err)
		return missingReply(parsed.Intent)
	}

	logging.RoutingDebug("routing intent=%s -> tool=%s", parsed.Intent, toolName)
	result, err := e.registry.Execute(ctx, toolName, args)
	if err != nil {
		logging.Get(logging.CategoryRouting).Warn("tool %s failed: %v", toolName, err)
		return failureReply(parsed.Intent, err)
	}
	return successReply(parsed, result.Result)
}

// toolArgs builds the tool arguments for a filesystem intent.
func toolArgs(parsed perception.ParsedIntent) (map[string]any, error) {
	switch parsed.Intent {
	case perception.IntentCreate, perception.IntentDelete:
		if !parsed.HasFilename {
			return nil, ErrParameterMissing
		}
		return map[string]any{"name": parsed.Filename}, nil
	case perception.IntentRead:
		if !parsed.HasFilename {
			return nil, ErrParameterMissing
		}
		return map[string]any{"path": parsed.Filename}, nil
	case perception.IntentSearch:
		return map[string]any{"query": parsed.SearchQuery}, nil
	}
	return nil, fmt.Errorf("no arguments for intent %s", parsed.Intent)
}

func missingReply(intent perception.Intent) string {
	switch intent {
	case perception.IntentCreate:
		return replyCreateMissing
	case perception.IntentDelete:
		return replyDeleteMissing
	default:
		return replyReadMissing
	}
}

func successReply(parsed perception.ParsedIntent, result string) string {
	switch parsed.Intent {
	case perception.IntentCreate:
		return fmt.Sprintf(replyCreated, parsed.Filename)
	case perception.IntentDelete:
		return fmt.Sprintf(replyDeleted, parsed.Filename)
	case perception.IntentSearch:
		if result == "" {
			return replyNoMatches
		}
		return fmt.Sprintf(replyFound, result)
	default:
		return fmt.Sprintf(replyContents, result)
	}
}

func failureReply(intent perception.Intent, err error) string {
	switch intent {
	case perception.IntentCreate:
		return fmt.Sprintf(replyCreateError, err)
	case perception.IntentDelete:
		return fmt.Sprintf(replyDeleteError, err)
	case perception.IntentSearch:
		return fmt.Sprintf(replySearchError, err)
	default:
		return fmt.Sprintf(replyReadError, err)
	}
}
