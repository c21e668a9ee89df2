package models

import "github.com/google/uuid"

type PlaygroundInput struct {
	OrgId      uuid.UUID
	Messages   []ChatMessage
	Params     CompletionParams
	TestValues map[string]string
}
