// Package ideafile loads an invention description from disk so it can
// pre-fill the composer.
package ideafile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxBytes caps how much text is read from plain files.
const MaxBytes = 64 << 10

var extraneousWhitespace = regexp.MustCompile(`[ \t\r\f\v]+`)

// ErrEmpty is returned when the file holds no usable text.
var ErrEmpty = errors.New("idea file contains no text")

// Load returns the idea text stored at path. PDF files are converted to plain
// text; everything else is read as UTF-8.
func Load(path string) (string, error) {
	var (
		text string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = readPDF(path)
	} else {
		text, err = readPlain(path)
	}
	if err != nil {
		return "", err
	}
	text = dropPageFurniture(normalize(text))
	if text == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return text, nil
}

func readPlain(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open idea file: %w", err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, MaxBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read idea file: %w", err)
	}
	return string(data), nil
}

func readPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	var builder strings.Builder
	if _, err := io.Copy(&builder, io.LimitReader(content, MaxBytes)); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// normalize collapses runs of blanks and trims each line while keeping
// paragraph breaks.
func normalize(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(extraneousWhitespace.ReplaceAllString(line, " "))
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
