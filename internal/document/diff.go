package document

import (
	"bytes"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff compares the text outlines of two documents line by line. Removed
// lines are prefixed with "-", added lines with "+" and unchanged lines with
// a space. The result is empty when the outlines are equal.
func Diff(before, after *Document) (string, error) {
	var a, b bytes.Buffer
	if err := RenderText(before, &a); err != nil {
		return "", err
	}
	if err := RenderText(after, &b); err != nil {
		return "", err
	}
	if a.String() == b.String() {
		return "", nil
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	ca, cb, lines := dmp.DiffLinesToChars(a.String(), b.String())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix + strings.TrimSuffix(line, "\n") + "\n")
		}
	}
	return sb.String(), nil
}
