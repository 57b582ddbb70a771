package ideafile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadPlainTextNormalizesWhitespace(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "idea.md", "  A   smart\tmug  \r\n\r\n\r\n that keeps coffee warm.  \n")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := "A smart mug\n\nthat keeps coffee warm."
	if got != want {
		t.Fatalf("Load = %q, want %q", got, want)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "empty.txt", " \n\t\n")
	if _, err := Load(path); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil || !strings.Contains(err.Error(), "failed to open idea file") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestLoadInvalidPDF(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "broken.PDF", "not really a pdf")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "pdf") {
		t.Fatalf("expected pdf error, got %v", err)
	}
}

func TestLoadDropsPageFurniture(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"Acme Labs invention disclosure",
		"A mug that heats itself using a small induction coil in the base.",
		"Page 1 of 2",
		"Acme Labs invention disclosure",
		"The coil is powered wirelessly from the saucer.",
		"2",
		"CONFIDENTIAL - do not distribute",
		"-- -- -- 12.3 / 45",
	}, "\n\n")
	got, err := Load(writeFile(t, "disclosure.txt", content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := "Acme Labs invention disclosure\n\n" +
		"A mug that heats itself using a small induction coil in the base.\n\n" +
		"The coil is powered wirelessly from the saucer."
	if got != want {
		t.Fatalf("Load = %q, want %q", got, want)
	}
}

func TestLoadOnlyFurnitureIsEmpty(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "pages.txt", "Page 1 of 3\n\n2\n\n3")
	if _, err := Load(path); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}
