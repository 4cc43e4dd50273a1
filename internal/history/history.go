package history

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/asamgx/crunchsetup/internal/config"
)

// Operation represents the type of operation logged
type Operation string

const (
	OpInstall Operation = "install"
	OpSSHKeys Operation = "ssh-keys"
)

// Entry represents a single history log entry
type Entry struct {
	Timestamp time.Time
	RunID     string
	Operation Operation
	Role      string
	Details   string
	Summary   string
}

// Log appends an entry to the history log in the config directory
func Log(e Entry) error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}

	if err := config.EnsureDir(); err != nil {
		return err
	}

	return LogTo(path, e)
}

// LogTo appends an entry to the history log at path
func LogTo(path string, e Entry) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	if _, err := f.WriteString(formatEntry(e) + "\n"); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}

	return nil
}

// InstallEntry builds the entry for an install run
func InstallEntry(runID, role, catkinDir string, err error) Entry {
	return Entry{
		RunID:     runID,
		Operation: OpInstall,
		Role:      role,
		Details:   catkinDir,
		Summary:   summary(err),
	}
}

// SSHKeysEntry builds the entry for an SSH key run
func SSHKeysEntry(runID, username, hostname string, err error) Entry {
	return Entry{
		RunID:     runID,
		Operation: OpSSHKeys,
		Role:      "base",
		Details:   username + "@" + hostname,
		Summary:   summary(err),
	}
}

func summary(err error) string {
	if err != nil {
		return "failed"
	}
	return "completed"
}

// Read returns the most recent history entries
func Read(limit int) ([]Entry, error) {
	path, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}
	return ReadFrom(path, limit)
}

// ReadFrom returns the most recent entries of the log at path, newest first
func ReadFrom(path string, limit int) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		entry, err := parseEntry(line)
		if err != nil {
			continue // Skip malformed entries
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading history file: %w", err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries, nil
}

// formatEntry formats an entry for the log file
// Format: timestamp|run|operation|role|details|summary
func formatEntry(e Entry) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		e.Timestamp.Format(time.RFC3339),
		e.RunID,
		e.Operation,
		e.Role,
		sanitize(e.Details),
		e.Summary,
	)
}

func sanitize(s string) string {
	return strings.NewReplacer("|", "/", "\n", " ").Replace(s)
}

// parseEntry parses a log line into an Entry
func parseEntry(line string) (Entry, error) {
	parts := strings.SplitN(line, "|", 6)
	if len(parts) < 6 {
		return Entry{}, fmt.Errorf("invalid entry format")
	}

	timestamp, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	return Entry{
		Timestamp: timestamp,
		RunID:     parts[1],
		Operation: Operation(parts[2]),
		Role:      parts[3],
		Details:   parts[4],
		Summary:   parts[5],
	}, nil
}

// Clear removes all history entries
func Clear() error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Format returns a human-readable representation of an entry
func (e Entry) Format(detailed bool) string {
	timeStr := e.Timestamp.Format("2006-01-02 15:04")

	if detailed {
		return fmt.Sprintf("%s  %-8s  %-5s  %s  (%s)  [%s]",
			timeStr,
			e.Operation,
			e.Role,
			e.Details,
			e.Summary,
			shortID(e.RunID),
		)
	}

	return fmt.Sprintf("%s  %-8s  %-5s  %s",
		timeStr,
		e.Operation,
		e.Role,
		e.Summary,
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
