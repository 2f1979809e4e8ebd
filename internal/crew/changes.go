package crew

import "strings"

const (
	fileMarker = "=== file:"
	endMarker  = "=== end ==="
)

// FileChange is one planned workspace change extracted from developer
// output: a relative path and the verbatim content to write. It exists
// only for the duration of one orchestration step.
type FileChange struct {
	Path    string
	Content string
}

// ParseFileChanges extracts file blocks of the form
//
//	=== file: relative/path ===
//	<content>
//	=== end ===
//
// from agent output. The end marker is optional: without it, content runs
// to the next file marker or end of output. A segment missing the `===`
// that closes the path header is malformed and silently skipped. Leading
// newlines after the header are stripped from content.
func ParseFileChanges(output string) []FileChange {
	var changes []FileChange

	segments := strings.Split(output, fileMarker)
	for _, segment := range segments[1:] {
		header, rest, ok := strings.Cut(segment, "===")
		if !ok {
			continue
		}

		path := strings.TrimSpace(header)
		content := rest
		if before, _, found := strings.Cut(content, endMarker); found {
			content = before
		}
		content = strings.TrimLeft(content, "\n")

		changes = append(changes, FileChange{Path: path, Content: content})
	}
	return changes
}

// SegmentSteps splits a dev plan into steps: every non-blank line is one
// step, in order. No structural parsing beyond that.
func SegmentSteps(plan string) []string {
	var steps []string
	for _, line := range strings.Split(plan, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			steps = append(steps, trimmed)
		}
	}
	return steps
}
