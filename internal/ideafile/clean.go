package ideafile

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	paragraphSplit = regexp.MustCompile(`\n{2,}`)
	collapseSpace  = regexp.MustCompile(`\s+`)
	pageMarker     = regexp.MustCompile(`^(page\s*)?\d+(\s*(of|/)\s*\d+)?$`)
)

// dropPageFurniture removes page numbers, confidentiality banners and
// paragraphs repeated on every page of an exported disclosure.
func dropPageFurniture(text string) string {
	paragraphs := paragraphSplit.Split(text, -1)
	seen := make(map[string]bool, len(paragraphs))
	kept := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" || isFurniture(trimmed) {
			continue
		}
		canonical := strings.ToLower(collapseSpace.ReplaceAllString(trimmed, " "))
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n\n")
}

func isFurniture(paragraph string) bool {
	lower := strings.ToLower(paragraph)
	switch {
	case pageMarker.MatchString(lower):
		return true
	case strings.HasPrefix(lower, "confidential"):
		return true
	case strings.HasPrefix(lower, "copyright"), strings.HasPrefix(lower, "©"):
		return true
	}
	alpha := 0
	for _, r := range lower {
		if unicode.IsLetter(r) {
			alpha++
		}
	}
	return alpha*5 < len(lower)
}
