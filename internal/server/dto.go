package server

import (
	"time"

	"fsbot/internal/conversation"
)

type CreateSessionResponse struct {
	ID               string    `json:"id"`
	CurrentDirectory string    `json:"cwd"`
	CreatedAt        time.Time `json:"created_at"`
}

type UtteranceRequest struct {
	Text *string `json:"text" binding:"required"`
}

type UtteranceResponse struct {
	Reply  string `json:"reply"`
	Intent string `json:"intent"`
}

type MessageResponse struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

type TranscriptResponse struct {
	ID       string            `json:"id"`
	Messages []MessageResponse `json:"messages"`
}

func ToTranscriptResponse(id string, msgs []conversation.Message) TranscriptResponse {
	out := TranscriptResponse{ID: id, Messages: make([]MessageResponse, 0, len(msgs))}
	for _, m := range msgs {
		out.Messages = append(out.Messages, MessageResponse{
			Role:    string(m.Role),
			Content: m.Content,
			Time:    m.Time,
		})
	}
	return out
}
