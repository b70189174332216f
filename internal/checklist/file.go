package checklist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is a checklist file split into raw lines.
type Document struct {
	Lines           []string
	TrailingNewline bool
}

// ParseDocument splits content into lines. Line endings are normalised: a
// trailing \r is dropped from every line, so a CRLF file is written back as LF.
func ParseDocument(content string) Document {
	if content == "" {
		return Document{Lines: []string{}, TrailingNewline: true}
	}
	doc := Document{TrailingNewline: strings.HasSuffix(content, "\n")}
	body := strings.TrimSuffix(content, "\n")
	parts := strings.Split(body, "\n")
	for i, part := range parts {
		parts[i] = strings.TrimSuffix(part, "\r")
	}
	doc.Lines = parts
	return doc
}

func (d Document) String() string {
	if len(d.Lines) == 0 {
		return ""
	}
	out := strings.Join(d.Lines, "\n")
	if d.TrailingNewline {
		out += "\n"
	}
	return out
}

type File struct {
	Path string
}

func (f File) Read() (Document, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return Document{}, err
	}
	return ParseDocument(string(raw)), nil
}

// Write replaces the file content with a single write call.
func (f File) Write(doc Document) error {
	return os.WriteFile(f.Path, []byte(doc.String()), 0o644)
}

// Ensure creates the parent directory and an empty file when missing.
func (f File) Ensure() error {
	if strings.TrimSpace(f.Path) == "" {
		return errors.New("checklist: empty path")
	}
	dir := filepath.Dir(f.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create checklist dir: %w", err)
		}
	}
	fh, err := os.OpenFile(f.Path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create checklist file: %w", err)
	}
	return fh.Close()
}
