package core

import (
	"encoding/json"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		records []json.RawMessage
		want    ExtensionName
	}{
		{
			name:    "empty sequence is Codex",
			records: nil,
			want:    ExtensionCodex,
		},
		{
			name:    "gemini single object",
			records: []json.RawMessage{[]byte(`{"sessionId":"s","projectHash":"h","messages":[]}`)},
			want:    ExtensionGemini,
		},
		{
			name:    "copilot single object",
			records: []json.RawMessage{[]byte(`{"sessionId":"s","startTime":"t","timeline":[]}`)},
			want:    ExtensionCopilotCLI,
		},
		{
			name: "claude via parentUuid",
			records: []json.RawMessage{
				[]byte(`{"type":"summary"}`),
				[]byte(`{"parentUuid":"abc","type":"assistant"}`),
			},
			want: ExtensionClaudeCode,
		},
		{
			name:    "codex fallback",
			records: []json.RawMessage{[]byte(`{"type":"session_meta"}`)},
			want:    ExtensionCodex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectFormat(tt.records)
			if got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}
