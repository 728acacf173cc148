// Package core holds the uniform data model every provider analyzer
// produces and every aggregator consumes: CodeAnalysis, its records, and
// the per-operation detail shapes described by the session file formats.
package core

// ExtensionName identifies which coding assistant produced a session file.
type ExtensionName string

const (
	ExtensionClaudeCode ExtensionName = "Claude-Code"
	ExtensionCodex      ExtensionName = "Codex"
	ExtensionCopilotCLI ExtensionName = "Copilot-CLI"
	ExtensionGemini     ExtensionName = "Gemini"
)

// CacheCreationBreakdown is the optional nested cache_creation detail some
// providers (Claude) attach to a usage entry.
type CacheCreationBreakdown struct {
	Ephemeral5mInputTokens int64 `json:"ephemeral_5m_input_tokens,omitempty"`
	Ephemeral1hInputTokens int64 `json:"ephemeral_1h_input_tokens,omitempty"`
}

// TokenCounts is the provider-agnostic token accounting unit. Every
// analyzer folds its native usage shape into this one.
type TokenCounts struct {
	InputTokens              int64                   `json:"input_tokens"`
	OutputTokens             int64                   `json:"output_tokens"`
	CacheReadInputTokens     int64                   `json:"cache_read_input_tokens"`
	CacheCreationInputTokens int64                   `json:"cache_creation_input_tokens"`
	CacheCreation            *CacheCreationBreakdown `json:"cache_creation,omitempty"`
	ServiceTier              string                  `json:"service_tier,omitempty"`
}

// IsZero reports whether every counter is zero (an empty fold).
func (t TokenCounts) IsZero() bool {
	return t.InputTokens == 0 && t.OutputTokens == 0 &&
		t.CacheReadInputTokens == 0 && t.CacheCreationInputTokens == 0
}

// Add folds other into t in place, summing counters and merging the
// optional cache_creation breakdown. ServiceTier is last-writer-wins,
// matching the record-order fold semantics of a single file.
func (t *TokenCounts) Add(other TokenCounts) {
	t.InputTokens += other.InputTokens
	t.OutputTokens += other.OutputTokens
	t.CacheReadInputTokens += other.CacheReadInputTokens
	t.CacheCreationInputTokens += other.CacheCreationInputTokens
	if other.CacheCreation != nil {
		if t.CacheCreation == nil {
			t.CacheCreation = &CacheCreationBreakdown{}
		}
		t.CacheCreation.Ephemeral5mInputTokens += other.CacheCreation.Ephemeral5mInputTokens
		t.CacheCreation.Ephemeral1hInputTokens += other.CacheCreation.Ephemeral1hInputTokens
	}
	if other.ServiceTier != "" {
		t.ServiceTier = other.ServiceTier
	}
}

// WriteFileDetail records a single file-write operation.
type WriteFileDetail struct {
	Path            string `json:"path"`
	Content         string `json:"content"`
	LineCount       int64  `json:"lineCount"`
	CharacterCount  int64  `json:"characterCount"`
	Timestamp       int64  `json:"timestamp"`
}

// ReadFileDetail records a single file-read operation.
type ReadFileDetail struct {
	Path           string `json:"path"`
	Content        string `json:"content"`
	LineCount      int64  `json:"lineCount"`
	CharacterCount int64  `json:"characterCount"`
	Timestamp      int64  `json:"timestamp"`
}

// EditFileDetail records a single file-edit operation.
type EditFileDetail struct {
	Path           string `json:"path"`
	OldString      string `json:"old_string"`
	NewString      string `json:"new_string"`
	LineCount      int64  `json:"lineCount"`
	CharacterCount int64  `json:"characterCount"`
	Timestamp      int64  `json:"timestamp"`
}

// RunCommandDetail records a single shell invocation.
type RunCommandDetail struct {
	Cwd            string `json:"cwd"`
	Command        string `json:"command"`
	Description    string `json:"description,omitempty"`
	CharacterCount int64  `json:"characterCount"`
	Timestamp      int64  `json:"timestamp"`
}

// CodeAnalysisRecord is the single record carried by every CodeAnalysis.
// The spec reserves room for a sequence of records but every analyzer in
// this implementation emits exactly one.
type CodeAnalysisRecord struct {
	ConversationUsage map[string]TokenCounts `json:"conversationUsage"`
	ToolCallCounts    map[string]int64       `json:"toolCallCounts"`

	WriteFileDetails []WriteFileDetail `json:"writeFileDetails"`
	ReadFileDetails  []ReadFileDetail  `json:"readFileDetails"`
	EditFileDetails  []EditFileDetail  `json:"editFileDetails"`
	RunCommandDetails []RunCommandDetail `json:"runCommandDetails"`

	TotalUniqueFiles    int64 `json:"totalUniqueFiles"`
	TotalReadLines      int64 `json:"totalReadLines"`
	TotalWriteLines     int64 `json:"totalWriteLines"`
	TotalEditLines      int64 `json:"totalEditLines"`
	TotalReadCharacters int64 `json:"totalReadCharacters"`
	TotalWriteCharacters int64 `json:"totalWriteCharacters"`
	TotalEditCharacters int64 `json:"totalEditCharacters"`

	TaskID       string `json:"taskId"`
	FolderPath   string `json:"folderPath"`
	GitRemoteURL string `json:"gitRemoteUrl,omitempty"`
	Timestamp    int64  `json:"timestamp"`
}

// NewCodeAnalysisRecord returns a record with initialized maps, ready for
// an analyzer to fold data into.
func NewCodeAnalysisRecord() *CodeAnalysisRecord {
	return &CodeAnalysisRecord{
		ConversationUsage: make(map[string]TokenCounts),
		ToolCallCounts:    make(map[string]int64),
	}
}

// PruneZeroUsage drops conversationUsage entries left all-zero after
// folding (a model that was only ever seen with empty usage blocks).
func (r *CodeAnalysisRecord) PruneZeroUsage() {
	for model, counts := range r.ConversationUsage {
		if counts.IsZero() {
			delete(r.ConversationUsage, model)
		}
	}
}

// CodeAnalysis is the uniform per-file structure every analyzer produces.
type CodeAnalysis struct {
	ExtensionName   ExtensionName         `json:"extensionName"`
	InsightsVersion string                `json:"insightsVersion"`
	User            string                `json:"user"`
	MachineID       string                `json:"machineId"`
	Records         []*CodeAnalysisRecord `json:"records"`
}

// knownToolNames lists the tool identifiers the spec calls out explicitly.
// toolCallCounts is not restricted to this set; unrecognized tool names are
// still counted, just not specially handled by any analyzer.
var knownToolNames = []string{"Read", "Write", "Edit", "Bash", "TodoWrite"}

// KnownToolNames returns the recognized tool-call names in spec order.
func KnownToolNames() []string {
	out := make([]string, len(knownToolNames))
	copy(out, knownToolNames)
	return out
}
