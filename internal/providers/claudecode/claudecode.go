// Package claudecode implements the Claude Code session analyzer (spec
// component C4). Claude Code writes one JSONL file per conversation under
// ~/.claude/projects/; each line is either an assistant turn carrying
// model + usage + tool_use content blocks, or a user turn carrying the
// result of a previously invoked tool (toolUseResult).
package claudecode

import (
	"encoding/json"

	"github.com/vibecoding/vct/internal/core"
)

type record struct {
	Type          string          `json:"type"`
	SessionID     string          `json:"sessionId"`
	CWD           string          `json:"cwd"`
	Timestamp     string          `json:"timestamp"`
	Message       *message        `json:"message"`
	ToolUseResult json.RawMessage `json:"toolUseResult"`
}

type message struct {
	Model   string         `json:"model"`
	Usage   *usage         `json:"usage"`
	Content []contentBlock `json:"content"`
}

type usage struct {
	InputTokens              int64           `json:"input_tokens"`
	OutputTokens             int64           `json:"output_tokens"`
	CacheReadInputTokens     int64           `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int64           `json:"cache_creation_input_tokens"`
	ServiceTier              string          `json:"service_tier"`
	CacheCreation            *cacheCreation  `json:"cache_creation"`
}

type cacheCreation struct {
	Ephemeral5mInputTokens int64 `json:"ephemeral_5m_input_tokens"`
	Ephemeral1hInputTokens int64 `json:"ephemeral_1h_input_tokens"`
}

type contentBlock struct {
	Type  string          `json:"type"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

type toolInput struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

type toolUseResult struct {
	Type      string          `json:"type"`
	File      *fileResult     `json:"file"`
	FilePath  string          `json:"filePath"`
	Content   string          `json:"content"`
	OldString *string         `json:"oldString"`
	NewString *string         `json:"newString"`
}

type fileResult struct {
	FilePath string `json:"filePath"`
	NumLines int64  `json:"numLines"`
	Content  string `json:"content"`
}

// Analyze walks records in order and produces one CodeAnalysisRecord.
func Analyze(records []json.RawMessage) *core.CodeAnalysisRecord {
	rec := core.NewCodeAnalysisRecord()

	var cwd string
	uniqueFiles := make(map[string]struct{})
	var maxTS int64

	for _, raw := range records {
		var r record
		if err := json.Unmarshal(raw, &r); err != nil {
			continue // malformed individual record: skip, don't fail the file
		}

		if r.CWD != "" {
			cwd = r.CWD
		}
		if r.SessionID != "" {
			rec.TaskID = r.SessionID
		}
		if ts := core.ParseTimestamp(r.Timestamp); ts > maxTS {
			maxTS = ts
		}

		if r.Type == "assistant" && r.Message != nil {
			analyzeAssistantMessage(rec, r.Message, cwd)
		}

		if len(r.ToolUseResult) > 0 {
			analyzeToolUseResult(rec, r.ToolUseResult, cwd, uniqueFiles)
		}
	}

	rec.FolderPath = cwd
	rec.Timestamp = maxTS
	rec.TotalUniqueFiles = int64(len(uniqueFiles))
	return rec
}

func analyzeAssistantMessage(rec *core.CodeAnalysisRecord, msg *message, cwd string) {
	if msg.Model != "" && msg.Usage != nil {
		counts := core.TokenCounts{
			InputTokens:              msg.Usage.InputTokens,
			OutputTokens:             msg.Usage.OutputTokens,
			CacheReadInputTokens:     msg.Usage.CacheReadInputTokens,
			CacheCreationInputTokens: msg.Usage.CacheCreationInputTokens,
			ServiceTier:              msg.Usage.ServiceTier,
		}
		if msg.Usage.CacheCreation != nil {
			counts.CacheCreation = &core.CacheCreationBreakdown{
				Ephemeral5mInputTokens: msg.Usage.CacheCreation.Ephemeral5mInputTokens,
				Ephemeral1hInputTokens: msg.Usage.CacheCreation.Ephemeral1hInputTokens,
			}
		}
		existing := rec.ConversationUsage[msg.Model]
		existing.Add(counts)
		rec.ConversationUsage[msg.Model] = existing
	}

	for _, block := range msg.Content {
		if block.Type != "tool_use" || block.Name == "" {
			continue
		}
		rec.ToolCallCounts[block.Name]++

		if block.Name == "Bash" && len(block.Input) > 0 {
			var in toolInput
			if err := json.Unmarshal(block.Input, &in); err == nil {
				rec.RunCommandDetails = append(rec.RunCommandDetails, core.RunCommandDetail{
					Command:        in.Command,
					Description:    in.Description,
					Cwd:            cwd,
					CharacterCount: core.CharCount(in.Command),
				})
			}
		}
	}
}

func analyzeToolUseResult(rec *core.CodeAnalysisRecord, raw json.RawMessage, cwd string, uniqueFiles map[string]struct{}) {
	var res toolUseResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return
	}

	switch {
	case res.Type == "text" && res.File != nil:
		path := core.NormalizePath(cwd, res.File.FilePath)
		content := core.TrimTrailingNewline(res.File.Content)
		lines := res.File.NumLines
		if lines == 0 {
			lines = core.LineCount(content)
		}
		chars := core.CharCount(content)
		rec.ReadFileDetails = append(rec.ReadFileDetails, core.ReadFileDetail{
			Path:           path,
			Content:        content,
			LineCount:      lines,
			CharacterCount: chars,
		})
		rec.TotalReadLines += lines
		rec.TotalReadCharacters += chars
		uniqueFiles[path] = struct{}{}

	case res.Type == "create" && res.FilePath != "":
		path := core.NormalizePath(cwd, res.FilePath)
		content := core.TrimTrailingNewline(res.Content)
		lines := core.LineCount(content)
		chars := core.CharCount(content)
		rec.WriteFileDetails = append(rec.WriteFileDetails, core.WriteFileDetail{
			Path:           path,
			Content:        content,
			LineCount:      lines,
			CharacterCount: chars,
		})
		rec.TotalWriteLines += lines
		rec.TotalWriteCharacters += chars
		uniqueFiles[path] = struct{}{}

	case res.OldString != nil && res.NewString != nil && res.FilePath != "":
		path := core.NormalizePath(cwd, res.FilePath)
		lines := core.LineCount(*res.NewString)
		chars := core.CharCount(*res.NewString)
		rec.EditFileDetails = append(rec.EditFileDetails, core.EditFileDetail{
			Path:           path,
			OldString:      *res.OldString,
			NewString:      *res.NewString,
			LineCount:      lines,
			CharacterCount: chars,
		})
		rec.TotalEditLines += lines
		rec.TotalEditCharacters += chars
		uniqueFiles[path] = struct{}{}
	}
}
