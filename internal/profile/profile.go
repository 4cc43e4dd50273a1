// Package profile appends environment exports to a user's shell profile
// and reads them back.
//
// Appends are unconditional: an existing definition is never edited or
// removed. Because shells evaluate the profile top to bottom, the last
// export of a name is the one in effect.
package profile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Export is a single `export NAME=value` line
type Export struct {
	Name  string
	Value string
}

// Line renders the export as it is written to the profile
func (e Export) Line() string {
	return fmt.Sprintf("export %s=%s", e.Name, quote(e.Value))
}

// Writer appends exports to one profile file
type Writer struct {
	fs   afero.Fs
	path string
}

// NewWriter creates a writer for the profile at path
func NewWriter(fs afero.Fs, path string) *Writer {
	return &Writer{fs: fs, path: path}
}

// Path returns the profile path
func (w *Writer) Path() string {
	return w.path
}

// Append writes each export on its own line at the end of the profile,
// creating the file if needed.
func (w *Writer) Append(exports ...Export) error {
	if len(exports) == 0 {
		return nil
	}

	f, err := w.fs.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open shell profile: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, e := range exports {
		if !validName(e.Name) {
			return fmt.Errorf("invalid variable name %q", e.Name)
		}
		b.WriteString(e.Line())
		b.WriteString("\n")
	}

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write shell profile: %w", err)
	}
	return nil
}

// Read returns every export in the profile, in file order.
// A missing profile yields no exports.
func Read(fs afero.Fs, path string) ([]Export, error) {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open shell profile: %w", err)
	}
	defer f.Close()

	var exports []Export
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if e, ok := parseLine(scanner.Text()); ok {
			exports = append(exports, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading shell profile: %w", err)
	}
	return exports, nil
}

// Effective returns the value each name ends up with (last definition wins)
func Effective(exports []Export) map[string]string {
	values := make(map[string]string, len(exports))
	for _, e := range exports {
		values[e.Name] = e.Value
	}
	return values
}

// Lookup returns the effective values of the given names from the profile
func Lookup(fs afero.Fs, path string, names ...string) (map[string]string, error) {
	exports, err := Read(fs, path)
	if err != nil {
		return nil, err
	}
	all := Effective(exports)

	found := make(map[string]string)
	for _, name := range names {
		if v, ok := all[name]; ok {
			found[name] = v
		}
	}
	return found, nil
}

// DefaultPath returns ~/.bashrc
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".bashrc"), nil
}

func parseLine(line string) (Export, bool) {
	line = strings.TrimSpace(line)
	rest, ok := strings.CutPrefix(line, "export ")
	if !ok {
		return Export{}, false
	}
	name, value, ok := strings.Cut(strings.TrimSpace(rest), "=")
	if !ok || !validName(name) {
		return Export{}, false
	}
	return Export{Name: name, Value: unquote(value)}, true
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// quote single-quotes values the shell would otherwise split or expand
func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n'\"$`\\;&|<>()*?#~") {
		return v
	}
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '\'' && v[len(v)-1] == '\'' {
		return strings.ReplaceAll(v[1:len(v)-1], `'\''`, "'")
	}
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}
