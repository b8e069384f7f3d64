package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_JSONFence(t *testing.T) {
	input := "```json\n{\"items\": []}\n```"
	assert.Equal(t, `{"items": []}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_GenericFence(t *testing.T) {
	input := "```\n{\"items\": []}\n```"
	assert.Equal(t, `{"items": []}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_LanguageIdentifier(t *testing.T) {
	input := "```javascript\n{\"items\": []}\n```"
	assert.Equal(t, `{"items": []}`, CleanJSONBlock(input))
}

func TestCleanJSONBlock_NoFence(t *testing.T) {
	input := `{"items": []}`
	assert.Equal(t, input, CleanJSONBlock(input))
}

func TestCleanJSONBlock_Whitespace(t *testing.T) {
	assert.Equal(t, `{}`, CleanJSONBlock("  \n{}\n  "))
	assert.Equal(t, "", CleanJSONBlock(""))
}
