package core

import "encoding/json"

// DetectFormat classifies a parsed record sequence into a provider
// following the spec's ordered structural signals. Ties are broken by
// the listed priority; an empty sequence resolves to Codex.
func DetectFormat(records []json.RawMessage) ExtensionName {
	if len(records) == 0 {
		return ExtensionCodex
	}

	if len(records) == 1 {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(records[0], &obj); err == nil {
			_, hasSession := obj["sessionId"]
			_, hasHash := obj["projectHash"]
			_, hasMessages := obj["messages"]
			if hasSession && hasHash && hasMessages {
				return ExtensionGemini
			}

			_, hasStart := obj["startTime"]
			_, hasTimeline := obj["timeline"]
			if hasSession && hasStart && hasTimeline {
				return ExtensionCopilotCLI
			}
		}
	}

	for _, rec := range records {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}
		if _, ok := obj["parentUuid"]; ok {
			return ExtensionClaudeCode
		}
	}

	return ExtensionCodex
}
