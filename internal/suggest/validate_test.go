package suggest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func knownPatterns() map[string]struct{} {
	return KnownSet([]string{
		"summarize",
		"create_summary",
		"extract_main_idea",
		"extract_article_wisdom",
		"extract_wisdom",
		"analyze_paper",
		"write_essay",
		"create_quiz",
		"improve_prompt",
		"explain_code",
	})
}

func TestValidate(t *testing.T) {
	known := knownPatterns()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "clean object with five known names",
			raw:  `{"patterns":["summarize","create_summary","extract_main_idea","extract_article_wisdom","extract_wisdom"]}`,
			want: []string{"summarize", "create_summary", "extract_main_idea", "extract_article_wisdom", "extract_wisdom"},
		},
		{
			name: "unknown names filtered in place",
			raw:  `{"patterns":["summarize","fake_pattern","extract_wisdom","nonexistent","analyze_paper"]}`,
			want: []string{"summarize", "extract_wisdom", "analyze_paper"},
		},
		{
			name: "fenced json payload",
			raw:  "```json\n{\"patterns\":[\"summarize\",\"explain_code\"]}\n```",
			want: []string{"summarize", "explain_code"},
		},
		{
			name: "bare fence without language tag",
			raw:  "```\n{\"patterns\":[\"write_essay\"]}\n```",
			want: []string{"write_essay"},
		},
		{
			name: "uppercase fence tag",
			raw:  "```JSON\n{\"patterns\":[\"create_quiz\"]}\n```",
			want: []string{"create_quiz"},
		},
		{
			name: "surrounding whitespace",
			raw:  "\n\n  {\"patterns\":[\"summarize\"]}  \n",
			want: []string{"summarize"},
		},
		{
			name: "prose instead of json",
			raw:  "Sure! Here are some good patterns for you to try.",
			want: []string{},
		},
		{
			name: "empty response",
			raw:  "",
			want: []string{},
		},
		{
			name: "truncated json",
			raw:  `{"patterns":["summarize","extract`,
			want: []string{},
		},
		{
			name: "error field alongside patterns",
			raw:  `{"error":"rate limited","patterns":["summarize"]}`,
			want: []string{"summarize"},
		},
		{
			name: "error field only",
			raw:  `{"error":"model overloaded"}`,
			want: []string{},
		},
		{
			name: "patterns is not a sequence",
			raw:  `{"patterns":"summarize"}`,
			want: []string{},
		},
		{
			name: "patterns is null",
			raw:  `{"patterns":null}`,
			want: []string{},
		},
		{
			name: "non-string entries skipped",
			raw:  `{"patterns":[42,"summarize",{"name":"extract_wisdom"},"analyze_paper",null]}`,
			want: []string{"summarize", "analyze_paper"},
		},
		{
			name: "truncated to five",
			raw:  `{"patterns":["summarize","extract_wisdom","analyze_paper","write_essay","create_quiz","improve_prompt","explain_code"]}`,
			want: []string{"summarize", "extract_wisdom", "analyze_paper", "write_essay", "create_quiz"},
		},
		{
			name: "duplicates survive",
			raw:  `{"patterns":["summarize","summarize","extract_wisdom"]}`,
			want: []string{"summarize", "summarize", "extract_wisdom"},
		},
		{
			name: "top level array",
			raw:  `["summarize","extract_wisdom"]`,
			want: []string{},
		},
		{
			name: "fence inside payload untouched",
			raw:  `{"patterns":["summarize"],"note":"use ` + "```" + ` for code"}`,
			want: []string{"summarize"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.raw, known)
			if got == nil {
				t.Fatal("Validate returned nil, want non-nil slice")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateEmptyKnownSet(t *testing.T) {
	got := Validate(`{"patterns":["summarize"]}`, KnownSet(nil))
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
