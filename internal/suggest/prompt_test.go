package suggest

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildPromptContainsContract(t *testing.T) {
	p := BuildPrompt("how do I summarize a paper", []string{"summarize", "analyze_paper"})

	if !strings.Contains(p.SystemText, promptShape) {
		t.Errorf("system text missing output shape %q", promptShape)
	}
	if !strings.Contains(p.SystemText, "summarize\n") {
		t.Error("system text missing identifier summarize")
	}
	if !strings.Contains(p.SystemText, "analyze_paper\n") {
		t.Error("system text missing identifier analyze_paper")
	}
	if !strings.Contains(p.UserText, `"how do I summarize a paper"`) {
		t.Errorf("user text does not quote the input: %q", p.UserText)
	}
	if strings.Contains(p.UserText, "Available patterns") {
		t.Error("identifier list leaked into user text")
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	names := []string{"summarize", "extract_wisdom", "write_essay"}
	a := BuildPrompt("same input", names)
	b := BuildPrompt("same input", names)
	if a != b {
		t.Error("identical inputs produced different prompts")
	}
}

func TestBuildPromptCapsIdentifiers(t *testing.T) {
	names := make([]string, 300)
	for i := range names {
		names[i] = fmt.Sprintf("pattern_%03d", i)
	}

	p := BuildPrompt("input", names)
	if !strings.Contains(p.SystemText, "pattern_149\n") {
		t.Error("identifier at cap boundary missing")
	}
	if strings.Contains(p.SystemText, "pattern_150") {
		t.Error("identifier beyond cap embedded")
	}

	wide := BuildPromptWithCap("input", names, 200)
	if !strings.Contains(wide.SystemText, "pattern_199\n") {
		t.Error("custom cap not honored")
	}
	if strings.Contains(wide.SystemText, "pattern_200") {
		t.Error("identifier beyond custom cap embedded")
	}
}

func TestBuildPromptPreservesOrder(t *testing.T) {
	p := BuildPrompt("input", []string{"zed", "alpha", "mid"})
	zi := strings.Index(p.SystemText, "zed")
	ai := strings.Index(p.SystemText, "alpha")
	mi := strings.Index(p.SystemText, "mid")
	if !(zi < ai && ai < mi) {
		t.Errorf("identifier order not preserved: zed=%d alpha=%d mid=%d", zi, ai, mi)
	}
}

func TestBuildPromptEmptyCatalog(t *testing.T) {
	p := BuildPrompt("input", nil)
	if p.SystemText == "" || p.UserText == "" {
		t.Error("empty catalog should still produce a complete prompt")
	}
}
