package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/notekeep"
)

type outputFormat struct {
	json bool
	yaml bool
}

// write renders v as JSON or YAML. It reports false when neither was requested.
func (f outputFormat) write(w io.Writer, v any) (bool, error) {
	switch {
	case f.json:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return true, encoder.Encode(v)
	case f.yaml:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return true, err
		}
		return true, encoder.Close()
	}
	return false, nil
}

// parseTags splits "a, b" into trimmed, non-empty tags.
func parseTags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id: %q", raw)
	}
	return id, nil
}

// summary is the one-line form used by list.
func summary(n notekeep.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s", n.ID, n.Title)
	for _, tag := range n.Tags {
		b.WriteString(" #" + tag)
	}
	if n.Archived {
		b.WriteString(" (archived)")
	}
	return b.String()
}

func printNote(w io.Writer, n notekeep.Note) {
	fmt.Fprintf(w, "ID:      %d\n", n.ID)
	fmt.Fprintf(w, "Title:   %s\n", n.Title)
	fmt.Fprintf(w, "Tags:    %s\n", strings.Join(n.Tags, ", "))
	fmt.Fprintf(w, "Updated: %s (v%d)\n", n.UpdatedAt.UTC().Format(notekeep.TimestampLayout), n.Version)
	if n.Archived {
		fmt.Fprintln(w, "Archived")
	}
	if n.Body != "" {
		fmt.Fprintf(w, "\n%s\n", n.Body)
	}
}
