// Package notebook builds and serializes Jupyter notebook documents whose
// code cells carry plotting source as literal text. Nothing here executes
// a cell; the produced document is re-run by whoever opens it.
package notebook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// CellType distinguishes markdown narration from executable code cells.
type CellType string

const (
	Markdown CellType = "markdown"
	Code     CellType = "code"
)

// Cell is one notebook cell. Source holds the text as newline-terminated
// lines, the way the on-disk format stores it.
type Cell struct {
	Type   CellType
	Source []string
}

// MarkdownCell builds a markdown cell from text.
func MarkdownCell(text string) Cell {
	return Cell{Type: Markdown, Source: lines(text)}
}

// CodeCell builds a code cell with no execution count and no outputs.
func CodeCell(text string) Cell {
	return Cell{Type: Code, Source: lines(text)}
}

// Text reassembles the cell source into one string.
func (c Cell) Text() string {
	return strings.Join(c.Source, "")
}

type markdownCellJSON struct {
	CellType string   `json:"cell_type"`
	Metadata struct{} `json:"metadata"`
	Source   []string `json:"source"`
}

type codeCellJSON struct {
	CellType       string            `json:"cell_type"`
	ExecutionCount *int              `json:"execution_count"`
	Metadata       struct{}          `json:"metadata"`
	Outputs        []json.RawMessage `json:"outputs"`
	Source         []string          `json:"source"`
}

// MarshalJSON writes the nbformat cell shape: markdown cells carry
// cell_type, metadata and source; code cells add a null execution_count
// and an empty outputs list.
func (c Cell) MarshalJSON() ([]byte, error) {
	source := c.Source
	if source == nil {
		source = []string{}
	}

	switch c.Type {
	case Markdown:
		return json.Marshal(markdownCellJSON{
			CellType: string(c.Type),
			Source:   source,
		})
	case Code:
		return json.Marshal(codeCellJSON{
			CellType: string(c.Type),
			Outputs:  []json.RawMessage{},
			Source:   source,
		})
	default:
		return nil, fmt.Errorf("unknown cell type %q", c.Type)
	}
}

// Document is an ordered sequence of cells plus the kernel metadata that
// marks the notebook re-runnable.
type Document struct {
	Cells []Cell
}

type kernelspecJSON struct {
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
	Name        string `json:"name"`
}

type codemirrorModeJSON struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

type languageInfoJSON struct {
	CodemirrorMode    codemirrorModeJSON `json:"codemirror_mode"`
	FileExtension     string             `json:"file_extension"`
	Mimetype          string             `json:"mimetype"`
	Name              string             `json:"name"`
	NBConvertExporter string             `json:"nbconvert_exporter"`
	PygmentsLexer     string             `json:"pygments_lexer"`
	Version           string             `json:"version"`
}

type metadataJSON struct {
	Kernelspec   kernelspecJSON   `json:"kernelspec"`
	LanguageInfo languageInfoJSON `json:"language_info"`
}

type documentJSON struct {
	Cells         []Cell       `json:"cells"`
	Metadata      metadataJSON `json:"metadata"`
	NBFormat      int          `json:"nbformat"`
	NBFormatMinor int          `json:"nbformat_minor"`
}

// Encode writes the document as nbformat 4.4 JSON with two-space
// indentation and HTML escaping off, so the embedded source stays
// readable.
func (d *Document) Encode(w io.Writer) error {
	cells := d.Cells
	if cells == nil {
		cells = []Cell{}
	}

	doc := documentJSON{
		Cells: cells,
		Metadata: metadataJSON{
			Kernelspec: kernelspecJSON{
				DisplayName: "Python 3",
				Language:    "python",
				Name:        "python3",
			},
			LanguageInfo: languageInfoJSON{
				CodemirrorMode:    codemirrorModeJSON{Name: "ipython", Version: 3},
				FileExtension:     ".py",
				Mimetype:          "text/x-python",
				Name:              "python",
				NBConvertExporter: "python",
				PygmentsLexer:     "ipython3",
				Version:           "3.8.10",
			},
		},
		NBFormat:      4,
		NBFormatMinor: 4,
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode notebook: %w", err)
	}

	return nil
}

// Decode parses a serialized notebook back into its ordered cell list.
func Decode(r io.Reader) (*Document, error) {
	var raw struct {
		Cells []struct {
			CellType string   `json:"cell_type"`
			Source   []string `json:"source"`
		} `json:"cells"`
		NBFormat int `json:"nbformat"`
	}

	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode notebook: %w", err)
	}
	if raw.NBFormat != 4 {
		return nil, fmt.Errorf("unsupported nbformat %d", raw.NBFormat)
	}

	doc := &Document{Cells: make([]Cell, len(raw.Cells))}
	for i, cell := range raw.Cells {
		doc.Cells[i] = Cell{
			Type:   CellType(cell.CellType),
			Source: cell.Source,
		}
	}

	return doc, nil
}

// lines splits text into newline-terminated source lines, keeping the
// terminators.
func lines(text string) []string {
	if text == "" {
		return []string{}
	}

	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	return parts
}
