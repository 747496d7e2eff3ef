package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"whitespace", "  \n{\"a\": 1}\n ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.in))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"optimized_text": "x"}`, ExtractJSONObject(`Sure! {"optimized_text": "x"} Hope that helps.`))
	assert.Equal(t, `{"a": {"b": 1}}`, ExtractJSONObject(`{"a": {"b": 1}}`))
	assert.Empty(t, ExtractJSONObject("no json here"))
	assert.Empty(t, ExtractJSONObject("} backwards {"))
}
