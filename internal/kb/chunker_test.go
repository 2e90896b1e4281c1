package kb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextKeepsShortSectionsWhole(t *testing.T) {
	text := "# Visa Rules\n\nIntro paragraph.\n\n## Japan\n\nThai citizens get 15 days visa free.\n\n## Korea\n\nK-ETA required before travel."

	chunks := ChunkText(text, 600)
	require.Len(t, chunks, 3)
	assert.True(t, strings.HasPrefix(chunks[0], "# Visa Rules"))
	assert.True(t, strings.HasPrefix(chunks[1], "## Japan"))
	assert.True(t, strings.HasPrefix(chunks[2], "## Korea"))
}

func TestChunkTextSplitsLongSectionOnParagraphs(t *testing.T) {
	para := strings.Repeat("word ", 30) // ~150 chars
	text := "## Policies\n\n" + para + "\n\n" + para + "\n\n" + para

	chunks := ChunkText(text, 200)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 200)
	}
}

func TestChunkTextHardSplitsOversizedParagraph(t *testing.T) {
	text := strings.Repeat("x", 1500)

	chunks := ChunkText(text, 600)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 600)
	assert.Len(t, chunks[1], 600)
	assert.Len(t, chunks[2], 300)
}

func TestChunkTextEmptyInput(t *testing.T) {
	assert.Empty(t, ChunkText("", 600))
	assert.Empty(t, ChunkText("   \n\n   ", 600))
}

func TestChunkTextDefaultSize(t *testing.T) {
	text := strings.Repeat("y", DefaultChunkSize+10)

	chunks := ChunkText(text, 0)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], DefaultChunkSize)
}

func TestChunkTextNoHeaders(t *testing.T) {
	text := "Just one paragraph, no headers at all."
	chunks := ChunkText(text, 600)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}
