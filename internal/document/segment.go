package document

import (
	"regexp"
	"strings"
)

// BlockKind classifies a segmented line.
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindBody
)

func (k BlockKind) String() string {
	if k == KindHeading {
		return "heading"
	}
	return "body"
}

// Block is one typed line of module text, ready for pagination.
type Block struct {
	Kind BlockKind
	Text string
}

// headingPattern matches numeric outline prefixes ("1 ", "2.1 ", "3.1.4 ")
// and chapter lines ("Bab 2", case-insensitive). Module prompts ask the
// generator for exactly this outline style.
var headingPattern = regexp.MustCompile(`^(\d+(\.\d+)*\s+|(?i:bab)\s+\d+)`)

// boldPattern matches markdown-style bold markers for stripping.
var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// Segment classifies module text into an ordered sequence of heading and
// body blocks. It is a line-oriented heuristic, not a parser: each
// non-blank line becomes exactly one block, in source order, and there is
// no notion of nesting beyond what the heading text itself encodes.
// Total for any input; the empty string yields an empty sequence.
func Segment(text string) []Block {
	var blocks []Block

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if headingPattern.MatchString(line) {
			blocks = append(blocks, Block{Kind: KindHeading, Text: line})
			continue
		}

		// The renderer has no bold-markup support; drop the markers.
		line = boldPattern.ReplaceAllString(line, "$1")
		blocks = append(blocks, Block{Kind: KindBody, Text: line})
	}

	return blocks
}
