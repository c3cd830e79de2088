// Package ai adapts hosted generative models to the assistant features:
// crop advice, the farmer chat and pest photo classification.
package ai

import (
	"context"

	"kisan/pkg/apperr"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role  string
	Text  string
	Image []byte
	MIME  string
}

type Request struct {
	System   string
	Messages []Message
	// JSON asks the provider for a bare JSON object when it supports it.
	JSON bool
}

// Model is one hosted text/vision model.
type Model interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

type disabled struct{}

// Disabled stands in when no provider key is configured. Every call fails
// with UpstreamUnavailable; it never fabricates a reply.
func Disabled() Model { return disabled{} }

func (disabled) Name() string { return "disabled" }

func (disabled) Generate(context.Context, Request) (string, error) {
	return "", apperr.Unavailable("AI assistant is not configured", nil)
}
