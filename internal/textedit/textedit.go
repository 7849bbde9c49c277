// Package textedit makes small idempotent edits to project text files:
// stylesheet directives inserted after an anchor line and marker-guarded
// blocks appended to files like .gitignore.
package textedit

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// TailwindAnchor is the import every input stylesheet starts from.
const TailwindAnchor = `@import "tailwindcss"`

// InsertAfterAnchor inserts each line not already present in content
// directly after the first line containing anchor, keeping their order.
// When no line contains anchor the lines go at the top. It returns the new
// content and the lines actually inserted.
func InsertAfterAnchor(content, anchor string, lines []string) (string, []string) {
	var missing []string
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if line == "" || seen[line] || strings.Contains(content, line) {
			continue
		}
		seen[line] = true
		missing = append(missing, line)
	}
	if len(missing) == 0 {
		return content, nil
	}

	existing := strings.Split(content, "\n")
	at := 0
	for i, line := range existing {
		if strings.Contains(line, anchor) {
			at = i + 1
			break
		}
	}

	out := make([]string, 0, len(existing)+len(missing))
	out = append(out, existing[:at]...)
	out = append(out, missing...)
	out = append(out, existing[at:]...)
	return strings.Join(out, "\n"), missing
}

// InsertFileAfterAnchor applies InsertAfterAnchor to the file at path. A
// missing file is left alone and reports no insertions.
func InsertFileAfterAnchor(path, anchor string, lines []string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	updated, inserted := InsertAfterAnchor(string(data), anchor, lines)
	if len(inserted) == 0 {
		return nil, nil
	}
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return nil, err
	}
	return inserted, nil
}

// AppendBlock appends header followed by body lines to content unless
// header is already present. A newline is added first when content does
// not end in one.
func AppendBlock(content, header string, body []string) (string, bool) {
	if strings.Contains(content, header) {
		return content, false
	}

	var b strings.Builder
	b.WriteString(content)
	if content != "" {
		if !strings.HasSuffix(content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(header)
	b.WriteString("\n")
	for _, line := range body {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), true
}

// AppendFileBlock applies AppendBlock to the file at path, creating it if
// needed. It reports whether the file changed.
func AppendFileBlock(path, header string, body []string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	updated, changed := AppendBlock(string(data), header, body)
	if !changed {
		return false, nil
	}
	return true, os.WriteFile(path, []byte(updated), 0644)
}

// WriteIfMissing writes content to path unless the file already exists.
// It reports whether the file was written.
func WriteIfMissing(path string, content []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return false, err
	}
	return true, f.Close()
}
