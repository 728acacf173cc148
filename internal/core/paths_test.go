package core

import "testing"

func TestResolveSessionRootsReturnsFour(t *testing.T) {
	roots, err := ResolveSessionRoots()
	if err != nil {
		t.Fatalf("ResolveSessionRoots: %v", err)
	}
	if len(roots) != 4 {
		t.Fatalf("expected 4 session roots, got %d", len(roots))
	}

	seen := map[ExtensionName]bool{}
	for _, r := range roots {
		seen[r.Extension] = true
	}
	for _, ext := range []ExtensionName{ExtensionClaudeCode, ExtensionCodex, ExtensionCopilotCLI, ExtensionGemini} {
		if !seen[ext] {
			t.Errorf("missing session root for %s", ext)
		}
	}
}

func TestWalkSessionFilesToleratesMissingDir(t *testing.T) {
	root := SessionRoot{Extension: ExtensionClaudeCode, Dir: "/nonexistent/vct-test-dir", Suffix: ".jsonl"}
	files, err := WalkSessionFiles(root)
	if err != nil {
		t.Fatalf("expected missing directory to resolve to empty result, got error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
}
