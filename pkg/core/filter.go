package core

import "strings"

// FilterByTag returns the notes carrying tag. Surrounding whitespace in tag is
// ignored and an empty tag returns notes unchanged.
func FilterByTag(notes []Note, tag string) []Note {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return notes
	}

	filtered := make([]Note, 0, len(notes))
	for _, n := range notes {
		for _, t := range n.Tags {
			if t == tag {
				filtered = append(filtered, n)
				break
			}
		}
	}
	return filtered
}
