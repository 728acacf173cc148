// Package copilot implements the GitHub Copilot CLI session analyzer
// (spec component C4). Copilot CLI writes one JSON document per session
// with a flat "timeline" array of tool invocations; it reports no token
// usage, so every session is recorded against the fixed "copilot" model
// literal with zero counts.
package copilot

import (
	"encoding/json"

	"github.com/vibecoding/vct/internal/core"
)

type sessionDoc struct {
	SessionID string         `json:"sessionId"`
	StartTime string         `json:"startTime"`
	Cwd       string         `json:"cwd"`
	Timeline  []timelineItem `json:"timeline"`
}

type timelineItem struct {
	ToolTitle string          `json:"toolTitle"`
	Timestamp string          `json:"timestamp"`
	Arguments json.RawMessage `json:"arguments"`
	Result    json.RawMessage `json:"result"`
}

type bashInput struct {
	Command string `json:"command"`
}

type editorInput struct {
	Command   string `json:"command"` // "view" | "str_replace" | "create"
	Path      string `json:"path"`
	FileText  string `json:"file_text"`
	OldStr    string `json:"old_str"`
	NewStr    string `json:"new_str"`
}

type editorOutput struct {
	Content string `json:"content"`
}

const modelLiteral = "copilot"

// Analyze walks the session's timeline and produces one CodeAnalysisRecord.
func Analyze(records []json.RawMessage) *core.CodeAnalysisRecord {
	rec := core.NewCodeAnalysisRecord()
	rec.ConversationUsage[modelLiteral] = core.TokenCounts{}

	if len(records) == 0 {
		return rec
	}

	var doc sessionDoc
	if err := json.Unmarshal(records[0], &doc); err != nil {
		return rec
	}

	rec.TaskID = doc.SessionID
	rec.FolderPath = doc.Cwd
	rec.Timestamp = core.ParseTimestamp(doc.StartTime)
	uniqueFiles := make(map[string]struct{})

	for _, item := range doc.Timeline {
		if ts := core.ParseTimestamp(item.Timestamp); ts > rec.Timestamp {
			rec.Timestamp = ts
		}

		switch item.ToolTitle {
		case "bash":
			var in bashInput
			command := ""
			if json.Unmarshal(item.Arguments, &in) == nil && in.Command != "" {
				command = in.Command
			} else if len(item.Arguments) > 0 {
				command = string(item.Arguments)
			}
			rec.ToolCallCounts["Bash"]++
			rec.RunCommandDetails = append(rec.RunCommandDetails, core.RunCommandDetail{
				Command:        command,
				Cwd:            doc.Cwd,
				CharacterCount: core.CharCount(command),
			})

		case "str_replace_editor":
			var in editorInput
			if json.Unmarshal(item.Arguments, &in) != nil {
				continue
			}
			path := core.NormalizePath(doc.Cwd, in.Path)

			switch in.Command {
			case "view":
				rec.ToolCallCounts["Read"]++
				var out editorOutput
				_ = json.Unmarshal(item.Result, &out)
				content := core.TrimTrailingNewline(out.Content)
				lc := core.LineCount(content)
				cc := core.CharCount(content)
				rec.ReadFileDetails = append(rec.ReadFileDetails, core.ReadFileDetail{
					Path: path, Content: content, LineCount: lc, CharacterCount: cc,
				})
				rec.TotalReadLines += lc
				rec.TotalReadCharacters += cc
				uniqueFiles[path] = struct{}{}

			case "create":
				rec.ToolCallCounts["Write"]++
				content := core.TrimTrailingNewline(in.FileText)
				lc := core.LineCount(content)
				cc := core.CharCount(content)
				rec.WriteFileDetails = append(rec.WriteFileDetails, core.WriteFileDetail{
					Path: path, Content: content, LineCount: lc, CharacterCount: cc,
				})
				rec.TotalWriteLines += lc
				rec.TotalWriteCharacters += cc
				uniqueFiles[path] = struct{}{}

			case "str_replace":
				rec.ToolCallCounts["Edit"]++
				lc := core.LineCount(in.NewStr)
				cc := core.CharCount(in.NewStr)
				rec.EditFileDetails = append(rec.EditFileDetails, core.EditFileDetail{
					Path: path, OldString: in.OldStr, NewString: in.NewStr, LineCount: lc, CharacterCount: cc,
				})
				rec.TotalEditLines += lc
				rec.TotalEditCharacters += cc
				uniqueFiles[path] = struct{}{}
			}
		}
	}

	rec.TotalUniqueFiles = int64(len(uniqueFiles))
	return rec
}
