package about

import (
	"strings"
	"testing"
)

func TestMarkdownListsStackAndSteps(t *testing.T) {
	t.Parallel()

	got := Markdown(10)
	if !strings.HasPrefix(got, "## "+Title) {
		t.Fatalf("expected title heading, got %q", got[:40])
	}
	for _, tech := range Stack() {
		if !strings.Contains(got, tech.Name) {
			t.Fatalf("markdown missing technology %q", tech.Name)
		}
	}
	if !strings.Contains(got, "at least 10 words") {
		t.Fatalf("markdown should mention the word threshold:\n%s", got)
	}
	if !strings.Contains(got, "3. **Compare**") {
		t.Fatalf("steps should be numbered:\n%s", got)
	}
}

func TestRenderProducesOutput(t *testing.T) {
	t.Parallel()

	out := Render(10, 60)
	if strings.TrimSpace(out) == "" {
		t.Fatal("render returned empty output")
	}
}
