package document

import (
	"fmt"
	"io"
	"strings"
)

// RenderText writes doc as a plain-text outline, one block per line.
func RenderText(doc *Document, w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s (%s)\n", doc.Title, doc.Company, doc.Variant)

	for _, b := range doc.Blocks {
		pad := strings.Repeat("  ", b.Indent)
		switch b.Kind {
		case BlockTitle, BlockLabel, BlockCentered:
			sb.WriteString(b.Text + "\n")
		case BlockHeading:
			sb.WriteString("\n# " + b.Text + "\n")
		case BlockSubheading:
			sb.WriteString("## " + b.Text + "\n")
		case BlockParagraph:
			sb.WriteString(pad + b.Text + "\n")
		case BlockBullet:
			sb.WriteString(pad + "- " + b.Text + "\n")
		case BlockField:
			sb.WriteString(pad + strings.TrimSpace(b.Label+" "+b.Text) + "\n")
		case BlockTable:
			writeTable(&sb, b.Table)
		case BlockSpacer:
			sb.WriteString("\n")
		case BlockPageBreak:
			sb.WriteString("\n----\n")
		}
	}
	fmt.Fprintf(&sb, "\n%s\n", doc.Footer)

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

func writeTable(sb *strings.Builder, t *Table) {
	if t == nil {
		return
	}
	titles := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		titles[i] = c.Title
	}
	sb.WriteString("| " + strings.Join(titles, " | ") + " |\n")
	for _, row := range t.Rows {
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
}
