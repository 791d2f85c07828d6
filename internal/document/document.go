// Package document assembles a Written Information Security Plan from a
// stored questionnaire and renders it as PDF or plain text.
//
// Assembly is a pure function of the plan and Options: the same inputs give
// the same Document, and RenderPDF of that Document gives the same bytes.
package document

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mmynk/wispgen/internal/models"
	"github.com/mmynk/wispgen/internal/steps"
)

// Variant selects the document template.
type Variant string

const (
	// VariantComprehensive is the full plan with checklists and inventories.
	VariantComprehensive Variant = "comprehensive"
	// VariantSummary is the shorter narrative plan.
	VariantSummary Variant = "summary"
)

// Variants lists every supported variant.
var Variants = []Variant{VariantComprehensive, VariantSummary}

// ParseVariant maps a name to a Variant. The empty string selects
// VariantComprehensive.
func ParseVariant(name string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(name))) {
	case "", VariantComprehensive:
		return VariantComprehensive, nil
	case VariantSummary:
		return VariantSummary, nil
	}
	return "", fmt.Errorf("unknown document variant %q", name)
}

// Placeholders for missing optional answers.
const (
	NotSpecified = "Not specified"
	BlankLine    = "__________________________________________________"
)

// BlockKind is the layout role of a block.
type BlockKind int

const (
	BlockTitle BlockKind = iota
	BlockLabel
	BlockCentered
	BlockHeading
	BlockSubheading
	BlockParagraph
	BlockBullet
	BlockField
	BlockTable
	BlockSpacer
	BlockPageBreak
)

// Block is one element of the document flow.
type Block struct {
	Kind BlockKind
	Text string

	// Label is the bold prefix of a BlockField.
	Label string

	// Indent is a nesting level for bullets and list lines.
	Indent int

	Table *Table
}

// Column describes one table column. Width is in inches.
type Column struct {
	Title  string
	Width  float64
	Center bool
}

// Table is a bordered grid with a repeating header row.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// Document is an assembled plan ready for rendering.
type Document struct {
	Title       string
	Company     string
	Variant     Variant
	GeneratedAt time.Time
	Footer      string
	Blocks      []Block
}

// Options controls assembly.
type Options struct {
	Variant Variant

	// GeneratedAt is stamped into the document. It is the only input besides
	// the plan, so fixing it makes rendering reproducible.
	GeneratedAt time.Time
}

// RenderError reports a stored plan that cannot be rendered.
type RenderError struct {
	WispID string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render wisp %s: %v", e.WispID, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Assemble builds the document for wisp. Stored answers whose type does not
// match the questionnaire fail with *RenderError; missing answers never do.
func Assemble(wisp *models.Wisp, opts Options) (*Document, error) {
	if wisp == nil {
		return nil, &RenderError{Err: fmt.Errorf("no plan given")}
	}
	if err := steps.CheckAnswers(wisp.Answers); err != nil {
		return nil, &RenderError{WispID: wisp.ID, Err: err}
	}

	variant := opts.Variant
	if variant == "" {
		variant = VariantComprehensive
	}
	at := opts.GeneratedAt
	if at.IsZero() {
		at = time.Now()
	}

	a := answers{Answers: wisp.Answers}
	doc := &Document{
		Title:       "Written Information Security Plan",
		Company:     a.company(),
		Variant:     variant,
		GeneratedAt: at,
	}

	var b builder
	switch variant {
	case VariantComprehensive:
		doc.Footer = rightworksFooter
		comprehensive(&b, a, at)
	case VariantSummary:
		doc.Footer = summaryFooter
		summary(&b, a, wisp, at)
	default:
		return nil, &RenderError{WispID: wisp.ID, Err: fmt.Errorf("unknown document variant %q", variant)}
	}
	doc.Blocks = b.blocks
	return doc, nil
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._ -]+`)

// Filename returns the download name for a plan's PDF.
func Filename(companyName string) string {
	name := strings.TrimSpace(unsafeFilename.ReplaceAllString(companyName, "_"))
	if name == "" {
		name = "WISP"
	}
	return name + "_WISP.pdf"
}

// answers wraps the plan answers with placeholder-aware accessors.
type answers struct {
	models.Answers
}

func (a answers) company() string {
	if name := a.String("company_name"); name != "" {
		return name
	}
	return "Company Name"
}

// text returns the answer or NotSpecified.
func (a answers) text(name string) string {
	return a.or(name, NotSpecified)
}

func (a answers) or(name, fallback string) string {
	if v := a.String(name); v != "" {
		return v
	}
	return fallback
}

// blank returns the answer or a fill-in line.
func (a answers) blank(name string) string {
	return a.or(name, BlankLine)
}

// label returns the display label of a choice answer.
func (a answers) label(name string) string {
	v := a.String(name)
	if v == "" {
		return NotSpecified
	}
	if f, ok := steps.Lookup(name); ok {
		return f.ChoiceLabel(v)
	}
	return v
}

// date formats a YYYY-MM-DD answer as "January 02, 2006".
func (a answers) date(name string) string {
	v := a.String(name)
	if v == "" {
		return ""
	}
	if t, err := time.Parse(steps.DateLayout, v); err == nil {
		return longDate(t)
	}
	return v
}

func (a answers) yesNo(name string) string {
	return pick(a.Bool(name), "Yes", "No")
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

func longDate(t time.Time) string {
	return t.Format("January 02, 2006")
}

type builder struct {
	blocks []Block
}

func (b *builder) add(kind BlockKind, text string) {
	b.blocks = append(b.blocks, Block{Kind: kind, Text: text})
}

func (b *builder) title(text string)      { b.add(BlockTitle, text) }
func (b *builder) label(text string)      { b.add(BlockLabel, text) }
func (b *builder) centered(text string)   { b.add(BlockCentered, text) }
func (b *builder) heading(text string)    { b.add(BlockHeading, text) }
func (b *builder) subheading(text string) { b.add(BlockSubheading, text) }
func (b *builder) para(text string)       { b.add(BlockParagraph, text) }
func (b *builder) spacer()                { b.add(BlockSpacer, "") }
func (b *builder) pageBreak()             { b.add(BlockPageBreak, "") }

func (b *builder) bullets(items ...string) {
	for _, item := range items {
		b.add(BlockBullet, item)
	}
}

func (b *builder) field(label, value string) {
	b.blocks = append(b.blocks, Block{Kind: BlockField, Label: label, Text: value})
}

func (b *builder) item(indent int, text string) {
	b.blocks = append(b.blocks, Block{Kind: BlockParagraph, Text: text, Indent: indent})
}

func (b *builder) table(t *Table) {
	b.blocks = append(b.blocks, Block{Kind: BlockTable, Table: t})
}
