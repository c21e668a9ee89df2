package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderForModel(t *testing.T) {
	assert.Equal(t, LLMProviderAnthropic, ProviderForModel("claude-3-haiku-20240307"))
	assert.Equal(t, LLMProviderOpenRouter, ProviderForModel("mistralai/mistral-7b-instruct"))
	assert.Equal(t, LLMProviderOpenAI, ProviderForModel("gpt-4o"))
	assert.Equal(t, LLMProviderOpenAI, ProviderForModel("some-custom-finetune"))
}

func TestModelCatalog(t *testing.T) {
	catalog := ModelCatalog()
	for _, m := range catalog {
		assert.True(t, IsKnownModel(m.Name))
		assert.Equal(t, m.Provider, ProviderForModel(m.Name), m.Name)
	}
	assert.False(t, IsKnownModel("some-custom-finetune"))
}
