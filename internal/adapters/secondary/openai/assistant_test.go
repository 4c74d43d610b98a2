package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/chat-relay-backend/internal/core/domain"
)

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{
			name: "plain json array",
			raw:  `["Yes, we ship worldwide.","Only within the EU."]`,
			want: []string{"Yes, we ship worldwide.", "Only within the EU."},
		},
		{
			name: "fenced json array",
			raw:  "```json\n[\"Option one\",\"Option two\"]\n```",
			want: []string{"Option one", "Option two"},
		},
		{
			name: "bare fence",
			raw:  "```\n[\"Just one\"]\n```",
			want: []string{"Just one"},
		},
		{
			name:    "prose instead of json",
			raw:     "Here are some options you could use:",
			wantErr: true,
		},
		{
			name:    "json object instead of array",
			raw:     `{"suggestions":["a"]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSuggestions(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToChatMessages(t *testing.T) {
	history := []domain.ChatMessage{
		{Role: "user", Text: "hi"},
		{Role: "assistant", Text: "hello"},
		{Role: "operator", Text: "unmapped role"},
	}

	msgs := toChatMessages(history)
	require.Len(t, msgs, 3)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "assistant", msgs[1].Role)

	// Unknown roles default to user rather than being dropped.
	assert.Equal(t, "user", msgs[2].Role)
	assert.Equal(t, "unmapped role", msgs[2].Content)
}
