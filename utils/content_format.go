package utils

import (
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"
)

// BlockKind classifies a rendered line of a whitepaper.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockBullet    BlockKind = "bullet"
	BlockParagraph BlockKind = "paragraph"
	BlockBreak     BlockKind = "break"
)

// Span is a run of paragraph text, optionally emphasized.
type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Block is one display unit produced from one source line.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Level int       `json:"level,omitempty"`
	Text  string    `json:"text,omitempty"`
	Spans []Span    `json:"spans,omitempty"`
}

// RenderOptions selects the display variant of a whitepaper.
type RenderOptions struct {
	// AbstractMode splits the document into a lead abstract and the rest.
	AbstractMode bool
}

// RenderedContent is the display form of a whitepaper.
type RenderedContent struct {
	Blocks   []Block `json:"blocks,omitempty"`
	Abstract []Block `json:"abstract,omitempty"`
	Rest     []Block `json:"rest,omitempty"`
}

const (
	abstractFallbackLimit = 800
	abstractMinCut        = 200
)

var (
	headingPrefixes = []struct {
		marker string
		level  int
	}{
		{"#### ", 4},
		{"### ", 3},
		{"## ", 2},
		{"# ", 1},
	}
	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	abstractTriggers = []string{"abstract", "summary", "vision"}
)

// RenderContent yields one block per line of content, in order. The sequence
// holds no state and can be ranged over any number of times.
func RenderContent(content string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for _, line := range strings.Split(content, "\n") {
			if !yield(renderLine(line)) {
				return
			}
		}
	}
}

// RenderBlocks collects RenderContent into a slice.
func RenderBlocks(content string) []Block {
	blocks := make([]Block, 0, strings.Count(content, "\n")+1)
	for block := range RenderContent(content) {
		blocks = append(blocks, block)
	}
	return blocks
}

// Render builds the display form selected by opts.
func Render(content string, opts RenderOptions) RenderedContent {
	if !opts.AbstractMode {
		return RenderedContent{Blocks: RenderBlocks(content)}
	}
	abstract, rest := SplitAbstract(content)
	rendered := RenderedContent{Abstract: RenderBlocks(abstract)}
	if rest != "" {
		rendered.Rest = RenderBlocks(rest)
	}
	return rendered
}

func renderLine(line string) Block {
	for _, h := range headingPrefixes {
		if strings.HasPrefix(line, h.marker) {
			return Block{Kind: BlockHeading, Level: h.level, Text: strings.Replace(line, h.marker, "", 1)}
		}
	}

	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return Block{Kind: BlockBullet, Text: line[2:]}
	}

	if strings.Contains(line, "**") {
		return Block{Kind: BlockParagraph, Spans: splitBold(line)}
	}

	if strings.TrimSpace(line) == "" {
		return Block{Kind: BlockBreak}
	}

	return Block{Kind: BlockParagraph, Text: line}
}

// splitBold splits line the way a capturing-group regex split does: plain and
// emphasized fragments alternate, starting with plain. An unmatched trailing
// "**" stays in the plain text.
func splitBold(line string) []Span {
	matches := boldPattern.FindAllStringSubmatchIndex(line, -1)
	spans := make([]Span, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		spans = append(spans,
			Span{Text: line[last:m[0]]},
			Span{Text: line[m[2]:m[3]], Bold: true},
		)
		last = m[1]
	}
	return append(spans, Span{Text: line[last:]})
}

// SplitAbstract separates the lead abstract of a whitepaper from the rest.
//
// The abstract starts at the first line mentioning "abstract", "summary" or
// "vision" and runs until the next level 1-3 heading. Documents without such a
// line are cut at the last period inside the first 800 characters, or at 800
// characters when that period falls within the first 200.
func SplitAbstract(content string) (abstract, rest string) {
	lines := strings.Split(content, "\n")

	start := -1
	for i, line := range lines {
		lowered := strings.ToLower(line)
		for _, trigger := range abstractTriggers {
			if strings.Contains(lowered, trigger) {
				start = i
				break
			}
		}
		if start >= 0 {
			break
		}
	}

	if start < 0 {
		return splitAtSentence(content)
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if isSectionHeading(lines[i]) {
			end = i
			break
		}
	}

	abstract = strings.Join(lines[start:end], "\n")
	rest = strings.Join(lines[end:], "\n")
	return abstract, rest
}

func isSectionHeading(line string) bool {
	trimmed := strings.TrimLeft(line, "#")
	depth := len(line) - len(trimmed)
	return depth >= 1 && depth <= 3
}

func splitAtSentence(content string) (string, string) {
	head := runePrefix(content, abstractFallbackLimit)
	cut := len(head)
	if idx := strings.LastIndex(head, "."); idx >= 0 && utf8.RuneCountInString(head[:idx]) > abstractMinCut {
		cut = idx + 1
	}
	return content[:cut], content[cut:]
}

// runePrefix returns the first n runes of s.
func runePrefix(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// TruncateContent shortens content for gallery cards.
func TruncateContent(content string, maxLength int) string {
	if utf8.RuneCountInString(content) <= maxLength {
		return content
	}
	return strings.TrimSpace(runePrefix(content, maxLength)) + "..."
}
