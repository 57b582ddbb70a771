package about

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Title heads the about overlay.
const Title = "About PatentAI Analyst"

// Technology describes one building block of the service behind the client.
type Technology struct {
	Name        string
	Description string
}

// Step is one stage of the analysis workflow.
type Step struct {
	Title       string
	Description string
}

// Stack lists the technologies the search service is built on.
func Stack() []Technology {
	return []Technology{
		{
			Name:        "Local AI Models",
			Description: "Embeddings are generated locally using Sentence-Transformers for fast, free, and private semantic search.",
		},
		{
			Name:        "MongoDB Atlas",
			Description: "Atlas is our core vector database. Vector Search finds conceptually similar patents in milliseconds.",
		},
		{
			Name:        "Terminal Frontend",
			Description: "Built with Bubble Tea and Lip Gloss for a fluid, keyboard-driven conversational experience.",
		},
	}
}

// Steps explains how an idea travels through the tool. minWords is the
// submission threshold shown to the user.
func Steps(minWords int) []Step {
	return []Step{
		{
			Title:       "Describe",
			Description: fmt.Sprintf("Write at least %d words about your invention: the problem, the mechanism, and who uses it.", minWords),
		},
		{
			Title:       "Search",
			Description: "Your description is embedded and matched against the patent corpus; the closest prior art comes back with a relevance score.",
		},
		{
			Title:       "Compare",
			Description: "Select a patent card and compare it with your idea to see a novelty score, key similarities, and points of difference.",
		},
	}
}

// Markdown renders the about text.
func Markdown(minWords int) string {
	var b strings.Builder
	b.WriteString("## " + Title + "\n\n")
	b.WriteString("**PatentAI Analyst** is a free tool using AI to help assess the novelty of an idea against existing patents.\n\n")
	b.WriteString("### Technology Used\n\n")
	for _, tech := range Stack() {
		fmt.Fprintf(&b, "- **%s**: %s\n", tech.Name, tech.Description)
	}
	b.WriteString("\n### How it Works\n\n")
	for idx, step := range Steps(minWords) {
		fmt.Fprintf(&b, "%d. **%s**: %s\n", idx+1, step.Title, step.Description)
	}
	return b.String()
}

// Render formats the about text for a terminal of the given width. When the
// markdown renderer is unavailable the raw markdown is returned.
func Render(minWords, width int) string {
	source := Markdown(minWords)
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return source
	}
	out, err := renderer.Render(source)
	if err != nil {
		return source
	}
	return strings.Trim(out, "\n")
}
