package copilot

import (
	"encoding/json"
	"testing"
)

func TestAnalyzeViewCommand(t *testing.T) {
	doc := `{
		"sessionId": "sess-1",
		"startTime": "2026-01-01T00:00:00.000Z",
		"cwd": "/repo",
		"timeline": [
			{"toolTitle": "str_replace_editor", "arguments": {"command": "view", "path": "a.py"}, "result": {"content": "x\ny\n"}}
		]
	}`

	rec := Analyze([]json.RawMessage{json.RawMessage(doc)})

	if rec.ToolCallCounts["Read"] != 1 {
		t.Fatalf("expected Read count 1, got %d", rec.ToolCallCounts["Read"])
	}
	if len(rec.ReadFileDetails) != 1 || rec.ReadFileDetails[0].LineCount != 2 {
		t.Fatalf("unexpected read details: %+v", rec.ReadFileDetails)
	}
	counts, ok := rec.ConversationUsage[modelLiteral]
	if !ok || !counts.IsZero() {
		t.Fatalf("expected zero-count copilot model entry, got %+v (ok=%v)", counts, ok)
	}
}

func TestAnalyzeBashAndCreate(t *testing.T) {
	doc := `{
		"sessionId": "sess-2",
		"cwd": "/repo",
		"timeline": [
			{"toolTitle": "bash", "arguments": {"command": "go build ./..."}},
			{"toolTitle": "str_replace_editor", "arguments": {"command": "create", "path": "new.go", "file_text": "package main\n"}}
		]
	}`

	rec := Analyze([]json.RawMessage{json.RawMessage(doc)})

	if rec.ToolCallCounts["Bash"] != 1 || rec.RunCommandDetails[0].Command != "go build ./..." {
		t.Fatalf("unexpected bash handling: %+v", rec.RunCommandDetails)
	}
	if rec.ToolCallCounts["Write"] != 1 || rec.TotalWriteLines != 1 {
		t.Fatalf("unexpected write handling: writeLines=%d write=%d", rec.TotalWriteLines, rec.ToolCallCounts["Write"])
	}
}
