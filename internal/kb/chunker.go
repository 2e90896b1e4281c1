// Package kb loads markdown documents into the vector index.
package kb

import (
	"regexp"
	"strings"
)

// DefaultChunkSize bounds a chunk's character length.
const DefaultChunkSize = 600

var (
	sectionMarkRe = regexp.MustCompile(`\n##\s`)
	paragraphRe   = regexp.MustCompile(`\n\s*\n`)
)

// ChunkText splits markdown into retrieval-sized chunks. Sections under the
// limit stay whole; long sections split on paragraph boundaries; a single
// oversized paragraph is hard split.
func ChunkText(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultChunkSize
	}

	var chunks []string
	for _, section := range splitSections(strings.TrimSpace(text)) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		if len(section) <= maxChars {
			chunks = append(chunks, section)
			continue
		}
		chunks = append(chunks, chunkParagraphs(section, maxChars)...)
	}
	return chunks
}

// splitSections splits on "## " headers, keeping the header with its body.
// Go's regexp has no lookahead, so the marker positions are located first.
func splitSections(text string) []string {
	marks := sectionMarkRe.FindAllStringIndex(text, -1)
	if len(marks) == 0 {
		return []string{text}
	}
	var sections []string
	prev := 0
	for _, m := range marks {
		sections = append(sections, text[prev:m[0]])
		prev = m[0] + 1 // keep the "## " with the next section
	}
	sections = append(sections, text[prev:])
	return sections
}

func chunkParagraphs(section string, maxChars int) []string {
	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n\n"))
			current = nil
			currentLen = 0
		}
	}

	for _, para := range paragraphRe.Split(section, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if currentLen+len(para)+2 <= maxChars {
			current = append(current, para)
			currentLen += len(para) + 2
			continue
		}
		flush()
		if len(para) > maxChars {
			for i := 0; i < len(para); i += maxChars {
				end := i + maxChars
				if end > len(para) {
					end = len(para)
				}
				chunks = append(chunks, para[i:end])
			}
			continue
		}
		current = []string{para}
		currentLen = len(para) + 2
	}
	flush()
	return chunks
}
