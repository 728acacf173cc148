// Package codex implements the OpenAI Codex session analyzer (spec
// component C4). Codex session files interleave session_meta,
// turn_context, event_msg token-count snapshots, and response_item
// entries; shell commands arrive as a function_call followed later by a
// matching function_call_output correlated on call_id, and file edits
// travel as apply_patch hunks embedded in the shell command's script.
package codex

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/vibecoding/vct/internal/core"
)

type record struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

type sessionMetaPayload struct {
	Cwd       string         `json:"cwd"`
	SessionID string         `json:"id"`
	Git       *gitInfo       `json:"git"`
}

type gitInfo struct {
	RepositoryURL string `json:"repository_url"`
}

type turnContextPayload struct {
	Cwd   string `json:"cwd"`
	Model string `json:"model"`
}

type tokenCountPayload struct {
	Info *tokenCountInfo `json:"info"`
}

type tokenCountInfo struct {
	TotalTokenUsage *codexUsage `json:"total_token_usage"`
	LastTokenUsage  *codexUsage `json:"last_token_usage"`
}

type codexUsage struct {
	InputTokens           int64 `json:"input_tokens"`
	CachedInputTokens     int64 `json:"cached_input_tokens"`
	OutputTokens          int64 `json:"output_tokens"`
	ReasoningOutputTokens int64 `json:"reasoning_output_tokens"`
}

type responseItemPayload struct {
	Type      string          `json:"type"`
	CallID    string          `json:"call_id"`
	Name      string          `json:"name"`
	Arguments string          `json:"arguments"`
	Output    json.RawMessage `json:"output"`
}

type functionCallArgs struct {
	Command []string `json:"command"`
}

type functionCallOutput struct {
	Output string `json:"output"`
}

type pendingCall struct {
	script      string
	fullCommand string
}

var sedRangePattern = regexp.MustCompile(`^sed\s+-n\s+'[^']*'\s+(\S+)`)

// Analyze walks records in order and produces one CodeAnalysisRecord.
func Analyze(records []json.RawMessage) *core.CodeAnalysisRecord {
	rec := core.NewCodeAnalysisRecord()

	var cwd, currentModel string
	uniqueFiles := make(map[string]struct{})
	pending := make(map[string]pendingCall)
	var maxTS int64

	for _, raw := range records {
		var r record
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		if ts := core.ParseTimestamp(r.Timestamp); ts > maxTS {
			maxTS = ts
		}

		switch r.Type {
		case "session_meta":
			var p sessionMetaPayload
			if json.Unmarshal(r.Payload, &p) == nil {
				if p.Cwd != "" {
					cwd = p.Cwd
				}
				if p.SessionID != "" {
					rec.TaskID = p.SessionID
				}
				if p.Git != nil && p.Git.RepositoryURL != "" {
					rec.GitRemoteURL = p.Git.RepositoryURL
				}
			}

		case "turn_context":
			var p turnContextPayload
			if json.Unmarshal(r.Payload, &p) == nil {
				if p.Cwd != "" {
					cwd = p.Cwd
				}
				if p.Model != "" {
					currentModel = p.Model
				}
			}

		case "event_msg":
			var p tokenCountPayload
			if json.Unmarshal(r.Payload, &p) != nil || p.Info == nil || p.Info.TotalTokenUsage == nil {
				continue
			}
			if currentModel == "" {
				continue
			}
			u := p.Info.TotalTokenUsage
			counts := core.TokenCounts{
				InputTokens:          u.InputTokens,
				OutputTokens:         u.OutputTokens + u.ReasoningOutputTokens,
				CacheReadInputTokens: u.CachedInputTokens,
			}
			existing := rec.ConversationUsage[currentModel]
			existing.Add(counts)
			rec.ConversationUsage[currentModel] = existing

		case "response_item":
			var p responseItemPayload
			if json.Unmarshal(r.Payload, &p) != nil {
				continue
			}
			switch p.Type {
			case "function_call":
				if p.Name != "shell" {
					continue
				}
				var args functionCallArgs
				if json.Unmarshal([]byte(p.Arguments), &args) != nil || len(args.Command) == 0 {
					continue
				}
				pending[p.CallID] = pendingCall{
					script:      args.Command[len(args.Command)-1],
					fullCommand: strings.Join(args.Command, " "),
				}

			case "function_call_output":
				call, ok := pending[p.CallID]
				if !ok {
					continue
				}
				delete(pending, p.CallID)

				// output is usually a JSON string whose text is itself a
				// JSON {output, metadata} object; fall back to the raw text.
				text := string(p.Output)
				var s string
				if json.Unmarshal(p.Output, &s) == nil {
					text = s
				}
				var out functionCallOutput
				if json.Unmarshal([]byte(text), &out) != nil {
					out.Output = text
				}

				dispatchShellOutput(rec, call, out.Output, cwd, uniqueFiles)
			}
		}
	}

	rec.FolderPath = cwd
	rec.Timestamp = maxTS
	rec.TotalUniqueFiles = int64(len(uniqueFiles))
	return rec
}

func dispatchShellOutput(rec *core.CodeAnalysisRecord, call pendingCall, output, cwd string, uniqueFiles map[string]struct{}) {
	script := strings.TrimSpace(call.script)

	switch {
	case strings.Contains(script, "applypatch") || strings.Contains(script, "apply_patch"):
		applyPatchHunks(rec, script, cwd, uniqueFiles)

	case sedRangePattern.MatchString(script):
		m := sedRangePattern.FindStringSubmatch(script)
		path := core.NormalizePath(cwd, m[1])
		content := strings.TrimSpace(output)
		lc := core.LineCount(content)
		cc := core.CharCount(content)
		rec.ReadFileDetails = append(rec.ReadFileDetails, core.ReadFileDetail{
			Path: path, Content: content, LineCount: lc, CharacterCount: cc,
		})
		rec.TotalReadLines += lc
		rec.TotalReadCharacters += cc
		rec.ToolCallCounts["Read"]++
		uniqueFiles[path] = struct{}{}

	case strings.HasPrefix(script, "cat "):
		path := core.NormalizePath(cwd, strings.TrimSpace(strings.TrimPrefix(script, "cat ")))
		content := output
		if idx := strings.Index(content, "\n---"); idx >= 0 {
			content = content[:idx]
		}
		lc := core.LineCount(content)
		cc := core.CharCount(content)
		rec.ReadFileDetails = append(rec.ReadFileDetails, core.ReadFileDetail{
			Path: path, Content: content, LineCount: lc, CharacterCount: cc,
		})
		rec.TotalReadLines += lc
		rec.TotalReadCharacters += cc
		rec.ToolCallCounts["Read"]++
		uniqueFiles[path] = struct{}{}

	default:
		rec.ToolCallCounts["Bash"]++
		rec.RunCommandDetails = append(rec.RunCommandDetails, core.RunCommandDetail{
			Command:        call.fullCommand,
			Cwd:            cwd,
			CharacterCount: core.CharCount(call.fullCommand),
		})
	}
}

// applyPatchHunks recognizes an apply_patch envelope between
// "*** Begin Patch" and "*** End Patch" and turns its Add/Update/Delete
// File sections into Write/Edit details.
func applyPatchHunks(rec *core.CodeAnalysisRecord, script, cwd string, uniqueFiles map[string]struct{}) {
	if !strings.Contains(script, "*** Begin Patch") {
		return
	}

	lines := strings.Split(script, "\n")
	var currentPath, mode string
	var added, removed []string

	flush := func() {
		if currentPath == "" {
			return
		}
		path := core.NormalizePath(cwd, currentPath)
		oldContent := strings.Join(removed, "\n")
		newContent := strings.Join(added, "\n")

		switch mode {
		case "add":
			lc := core.LineCount(newContent)
			cc := core.CharCount(newContent)
			rec.WriteFileDetails = append(rec.WriteFileDetails, core.WriteFileDetail{
				Path: path, Content: newContent, LineCount: lc, CharacterCount: cc,
			})
			rec.TotalWriteLines += lc
			rec.TotalWriteCharacters += cc
			rec.ToolCallCounts["Write"]++

		case "delete":
			if oldContent != "" {
				rec.EditFileDetails = append(rec.EditFileDetails, core.EditFileDetail{
					Path: path, OldString: oldContent, NewString: "",
				})
				rec.ToolCallCounts["Edit"]++
			}

		case "update":
			if oldContent == "" && newContent != "" {
				lc := core.LineCount(newContent)
				cc := core.CharCount(newContent)
				rec.WriteFileDetails = append(rec.WriteFileDetails, core.WriteFileDetail{
					Path: path, Content: newContent, LineCount: lc, CharacterCount: cc,
				})
				rec.TotalWriteLines += lc
				rec.TotalWriteCharacters += cc
				rec.ToolCallCounts["Write"]++
			} else {
				lc := core.LineCount(newContent)
				cc := core.CharCount(newContent)
				rec.EditFileDetails = append(rec.EditFileDetails, core.EditFileDetail{
					Path: path, OldString: oldContent, NewString: newContent, LineCount: lc, CharacterCount: cc,
				})
				rec.TotalEditLines += lc
				rec.TotalEditCharacters += cc
				rec.ToolCallCounts["Edit"]++
			}
		}

		uniqueFiles[path] = struct{}{}
		added, removed = nil, nil
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "*** Add File: "):
			flush()
			currentPath = strings.TrimPrefix(line, "*** Add File: ")
			mode = "add"
		case strings.HasPrefix(line, "*** Update File: "):
			flush()
			currentPath = strings.TrimPrefix(line, "*** Update File: ")
			mode = "update"
		case strings.HasPrefix(line, "*** Delete File: "):
			flush()
			currentPath = strings.TrimPrefix(line, "*** Delete File: ")
			mode = "delete"
		case strings.HasPrefix(line, "*** End Patch"):
			flush()
			currentPath = ""
		case strings.HasPrefix(line, "@@"), strings.HasPrefix(line, "\\"):
			// hunk-position and no-newline markers carry no content
		case strings.HasPrefix(line, "+"):
			added = append(added, strings.TrimPrefix(line, "+"))
		case strings.HasPrefix(line, "-"):
			removed = append(removed, strings.TrimPrefix(line, "-"))
		}
	}
	flush()
}
