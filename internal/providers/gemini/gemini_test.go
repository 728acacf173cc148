package gemini

import (
	"encoding/json"
	"testing"
)

func TestAnalyzeTokenFolding(t *testing.T) {
	doc := `{
		"sessionId": "sess-1",
		"projectHash": "abc123",
		"cwd": "/repo",
		"messages": [
			{"model": "gemini-2.0-flash", "tokens": {"input": 100, "output": 50, "cached": 20, "thoughts": 10, "total": 180}}
		]
	}`

	rec := Analyze([]json.RawMessage{json.RawMessage(doc)})

	counts, ok := rec.ConversationUsage["gemini-2.0-flash"]
	if !ok {
		t.Fatalf("expected usage recorded, got %+v", rec.ConversationUsage)
	}
	if counts.InputTokens != 100 || counts.OutputTokens != 60 || counts.CacheReadInputTokens != 20 || counts.CacheCreationInputTokens != 0 {
		t.Fatalf("unexpected folded counts: %+v", counts)
	}
}

func TestAnalyzeFileOps(t *testing.T) {
	doc := `{
		"sessionId": "sess-2",
		"cwd": "/repo",
		"messages": [
			{"model": "gemini-2.0-flash", "parts": [
				{"functionCall": {"name": "write_file", "args": {"file_path": "a.go", "content": "x\ny\n"}}},
				{"functionCall": {"name": "replace", "args": {"file_path": "a.go", "old_string": "x", "new_string": "z"}}},
				{"functionCall": {"name": "run_shell_command", "args": {"command": "ls"}}}
			]}
		]
	}`

	rec := Analyze([]json.RawMessage{json.RawMessage(doc)})

	if rec.ToolCallCounts["Write"] != 1 || rec.ToolCallCounts["Edit"] != 1 || rec.ToolCallCounts["Bash"] != 1 {
		t.Fatalf("unexpected tool counts: %+v", rec.ToolCallCounts)
	}
	if rec.TotalWriteLines != 2 || rec.TotalEditLines != 1 {
		t.Fatalf("unexpected line totals: write=%d edit=%d", rec.TotalWriteLines, rec.TotalEditLines)
	}
	if rec.TotalUniqueFiles != 1 {
		t.Fatalf("expected 1 unique file (write+edit same path), got %d", rec.TotalUniqueFiles)
	}
}
