package claudecode

import (
	"encoding/json"
	"testing"
)

func raws(lines ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(lines))
	for i, l := range lines {
		out[i] = json.RawMessage(l)
	}
	return out
}

func TestAnalyzeTokenAccounting(t *testing.T) {
	records := raws(`{
		"type": "assistant",
		"sessionId": "sess-1",
		"cwd": "/repo",
		"timestamp": "2026-01-01T00:00:00.000Z",
		"message": {
			"model": "claude-sonnet-4-20250514",
			"usage": {
				"input_tokens": 1000,
				"output_tokens": 500,
				"cache_read_input_tokens": 2000,
				"cache_creation_input_tokens": 500
			}
		}
	}`)

	rec := Analyze(records)

	counts, ok := rec.ConversationUsage["claude-sonnet-4-20250514"]
	if !ok {
		t.Fatalf("expected usage recorded for claude-sonnet-4-20250514, got %+v", rec.ConversationUsage)
	}
	if counts.InputTokens != 1000 || counts.OutputTokens != 500 ||
		counts.CacheReadInputTokens != 2000 || counts.CacheCreationInputTokens != 500 {
		t.Fatalf("unexpected token counts: %+v", counts)
	}
	if rec.TaskID != "sess-1" || rec.FolderPath != "/repo" {
		t.Fatalf("unexpected session metadata: taskId=%q folderPath=%q", rec.TaskID, rec.FolderPath)
	}
}

func TestAnalyzeBashToolUse(t *testing.T) {
	records := raws(`{
		"type": "assistant",
		"cwd": "/repo",
		"message": {
			"content": [
				{"type": "tool_use", "name": "Bash", "input": {"command": "go test ./...", "description": "run tests"}}
			]
		}
	}`)

	rec := Analyze(records)

	if rec.ToolCallCounts["Bash"] != 1 {
		t.Fatalf("expected Bash count 1, got %d", rec.ToolCallCounts["Bash"])
	}
	if len(rec.RunCommandDetails) != 1 || rec.RunCommandDetails[0].Command != "go test ./..." {
		t.Fatalf("unexpected run command details: %+v", rec.RunCommandDetails)
	}
}

func TestAnalyzeReadWriteEdit(t *testing.T) {
	records := raws(
		`{"cwd": "/repo", "toolUseResult": {"type":"text","filePath":"a.go","file":{"filePath":"a.go","numLines":3,"content":"x\ny\nz"}}}`,
		`{"cwd": "/repo", "toolUseResult": {"type":"create","filePath":"b.go","content":"hello\nworld"}}`,
		`{"cwd": "/repo", "toolUseResult": {"filePath":"b.go","oldString":"hello","newString":"hi"}}`,
	)

	rec := Analyze(records)

	if rec.TotalReadLines != 3 {
		t.Fatalf("expected 3 read lines, got %d", rec.TotalReadLines)
	}
	if rec.TotalWriteLines != 2 {
		t.Fatalf("expected 2 write lines, got %d", rec.TotalWriteLines)
	}
	if rec.TotalEditLines != 1 {
		t.Fatalf("expected 1 edit line, got %d", rec.TotalEditLines)
	}
	if rec.TotalUniqueFiles != 2 {
		t.Fatalf("expected 2 unique files (a.go, b.go), got %d", rec.TotalUniqueFiles)
	}
}

func TestAnalyzeMalformedRecordSkipped(t *testing.T) {
	records := raws(`not json`, `{"type":"assistant","message":{"model":"m","usage":{"input_tokens":1}}}`)

	rec := Analyze(records)

	if counts := rec.ConversationUsage["m"]; counts.InputTokens != 1 {
		t.Fatalf("expected malformed line skipped and second record folded, got %+v", rec.ConversationUsage)
	}
}
