package report

import (
	"strings"
	"time"
)

type BlockKind int

const (
	KindSection BlockKind = iota
	KindRow
	KindTextRow
	KindArrayRow
)

const (
	NotAvailable  = "N/A"
	maxValueRunes = 80
	keptRunes     = 77
)

// Block is one semantic element of a report. Label holds the section title
// for sections.
type Block struct {
	Kind  BlockKind
	Label string
	Value string
	Alt   bool
}

func Section(title string) Block {
	return Block{Kind: KindSection, Label: title}
}

// Row is a single-line label/value pair. Long values are cut with an
// ellipsis and empty ones shown as N/A.
func Row(label, value string, alt bool) Block {
	return Block{Kind: KindRow, Label: label, Value: value, Alt: alt}
}

// TextRow wraps free text. It is dropped from the layout when empty.
func TextRow(label, text string, alt bool) Block {
	return Block{Kind: KindTextRow, Label: label, Value: text, Alt: alt}
}

// ArrayRow joins the selected items, plus the free-text other answer when
// given.
func ArrayRow(label string, items []string, other string, alt bool) Block {
	all := make([]string, 0, len(items)+1)
	all = append(all, items...)
	if other != "" {
		all = append(all, other)
	}

	value := NotAvailable
	if len(all) > 0 {
		value = strings.Join(all, ", ")
	}

	return Block{Kind: KindArrayRow, Label: label, Value: value, Alt: alt}
}

// HeaderLine is one centred line of the first page header, at baseline Y.
type HeaderLine struct {
	Text  string
	Y     float64
	Size  float64
	Bold  bool
	Muted bool
}

type Document struct {
	Filename string
	// Title is used on continuation page headers and as the PDF title.
	Title string
	// Logo replaces the first header line when the logo file can be read.
	Logo   bool
	Header []HeaderLine
	Footer string
	// CreatedAt is stamped into the PDF metadata so repeated renders of a
	// record are identical.
	CreatedAt time.Time
	Blocks    []Block
}

func truncate(value string) string {
	if value == "" {
		return NotAvailable
	}

	runes := []rune(value)
	if len(runes) > maxValueRunes {
		return string(runes[:keptRunes]) + "..."
	}
	return value
}
