// Package gemini implements the Gemini CLI session analyzer (spec
// component C4). Gemini writes one JSON document per chat session under
// ~/.gemini/tmp/<project_hash>/chats, carrying a flat "messages" array
// where each message folds its own token usage and may contain file-op
// parts inline.
package gemini

import (
	"encoding/json"

	"github.com/vibecoding/vct/internal/core"
)

type sessionDoc struct {
	SessionID   string    `json:"sessionId"`
	ProjectHash string    `json:"projectHash"`
	Cwd         string    `json:"cwd"`
	Messages    []message `json:"messages"`
}

type message struct {
	Timestamp string          `json:"timestamp"`
	Model     string          `json:"model"`
	Tokens    *tokens         `json:"tokens"`
	Parts     []messagePart   `json:"parts"`
}

type tokens struct {
	Input    int64 `json:"input"`
	Output   int64 `json:"output"`
	Cached   int64 `json:"cached"`
	Thoughts int64 `json:"thoughts"`
}

type messagePart struct {
	FunctionCall *functionCall `json:"functionCall"`
}

type functionCall struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

type readArgs struct {
	AbsolutePath string `json:"absolute_path"`
}

type writeArgs struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

type editArgs struct {
	FilePath  string `json:"file_path"`
	OldString string `json:"old_string"`
	NewString string `json:"new_string"`
}

type shellArgs struct {
	Command string `json:"command"`
}

const defaultModel = "gemini"

// Analyze walks the session's messages and produces one CodeAnalysisRecord.
func Analyze(records []json.RawMessage) *core.CodeAnalysisRecord {
	rec := core.NewCodeAnalysisRecord()

	if len(records) == 0 {
		return rec
	}

	var doc sessionDoc
	if err := json.Unmarshal(records[0], &doc); err != nil {
		return rec
	}

	rec.TaskID = doc.SessionID
	rec.FolderPath = doc.Cwd
	uniqueFiles := make(map[string]struct{})
	var maxTS int64

	for _, msg := range doc.Messages {
		if ts := core.ParseTimestamp(msg.Timestamp); ts > maxTS {
			maxTS = ts
		}

		model := msg.Model
		if model == "" {
			model = defaultModel
		}
		if msg.Tokens != nil {
			counts := core.TokenCounts{
				InputTokens:          msg.Tokens.Input,
				OutputTokens:         msg.Tokens.Output + msg.Tokens.Thoughts,
				CacheReadInputTokens: msg.Tokens.Cached,
			}
			existing := rec.ConversationUsage[model]
			existing.Add(counts)
			rec.ConversationUsage[model] = existing
		}

		for _, part := range msg.Parts {
			if part.FunctionCall == nil {
				continue
			}
			fc := part.FunctionCall

			switch fc.Name {
			case "read_file":
				var a readArgs
				if json.Unmarshal(fc.Args, &a) == nil {
					rec.ToolCallCounts["Read"]++
					path := core.NormalizePath(doc.Cwd, a.AbsolutePath)
					rec.ReadFileDetails = append(rec.ReadFileDetails, core.ReadFileDetail{Path: path})
					uniqueFiles[path] = struct{}{}
				}

			case "write_file":
				var a writeArgs
				if json.Unmarshal(fc.Args, &a) == nil {
					rec.ToolCallCounts["Write"]++
					path := core.NormalizePath(doc.Cwd, a.FilePath)
					content := core.TrimTrailingNewline(a.Content)
					lc := core.LineCount(content)
					cc := core.CharCount(content)
					rec.WriteFileDetails = append(rec.WriteFileDetails, core.WriteFileDetail{
						Path: path, Content: content, LineCount: lc, CharacterCount: cc,
					})
					rec.TotalWriteLines += lc
					rec.TotalWriteCharacters += cc
					uniqueFiles[path] = struct{}{}
				}

			case "replace":
				var a editArgs
				if json.Unmarshal(fc.Args, &a) == nil {
					rec.ToolCallCounts["Edit"]++
					path := core.NormalizePath(doc.Cwd, a.FilePath)
					lc := core.LineCount(a.NewString)
					cc := core.CharCount(a.NewString)
					rec.EditFileDetails = append(rec.EditFileDetails, core.EditFileDetail{
						Path: path, OldString: a.OldString, NewString: a.NewString, LineCount: lc, CharacterCount: cc,
					})
					rec.TotalEditLines += lc
					rec.TotalEditCharacters += cc
					uniqueFiles[path] = struct{}{}
				}

			case "run_shell_command":
				var a shellArgs
				if json.Unmarshal(fc.Args, &a) == nil {
					rec.ToolCallCounts["Bash"]++
					rec.RunCommandDetails = append(rec.RunCommandDetails, core.RunCommandDetail{
						Command:        a.Command,
						Cwd:            doc.Cwd,
						CharacterCount: core.CharCount(a.Command),
					})
				}
			}
		}
	}

	rec.Timestamp = maxTS
	rec.TotalUniqueFiles = int64(len(uniqueFiles))
	return rec
}
