package pure_utils

import (
	"regexp"

	"github.com/promptdeck/promptdeck-backend/models"
)

// {{ name }} with optional whitespace, names made of word characters, dots and dashes
var templateVariableRegex = regexp.MustCompile(`\{\{\s*([\w.-]+)\s*\}\}`)

// RenderTemplate replaces every template variable with its value. Variables
// without a value are replaced by the empty string.
func RenderTemplate(content string, values map[string]string) string {
	return templateVariableRegex.ReplaceAllStringFunc(content, func(token string) string {
		name := templateVariableRegex.FindStringSubmatch(token)[1]
		return values[name]
	})
}

func RenderMessages(messages []models.ChatMessage, values map[string]string) []models.ChatMessage {
	rendered := make([]models.ChatMessage, len(messages))
	for i, message := range messages {
		rendered[i] = models.ChatMessage{
			Role:    message.Role,
			Content: RenderTemplate(message.Content, values),
		}
	}
	return rendered
}
