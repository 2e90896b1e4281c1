package kb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Voyago-core-poc-v1/server/internal/llm"
	"github.com/Voyago-core-poc-v1/server/internal/vectorstore"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

// Indexer chunks markdown documents, embeds the chunks in batch, and
// upserts them into the vector index.
type Indexer struct {
	provider  llm.Provider
	store     vectorstore.Store
	chunkSize int
}

func NewIndexer(provider llm.Provider, store vectorstore.Store, chunkSize int) *Indexer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Indexer{provider: provider, store: store, chunkSize: chunkSize}
}

// IndexDirectory loads every .md file under dir into the vector index.
// Returns the number of chunks indexed.
func (ix *Indexer) IndexDirectory(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read knowledge base dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	var docs []vectorstore.Document
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", path, err)
		}
		source := filepath.Base(path)
		stem := strings.TrimSuffix(source, ".md")
		for _, chunk := range ChunkText(string(raw), ix.chunkSize) {
			docs = append(docs, vectorstore.Document{
				ID:      fmt.Sprintf("%s_%d", stem, len(docs)),
				Content: chunk,
				Source:  source,
			})
		}
	}
	if len(docs) == 0 {
		logx.Warn().Str("dir", dir).Msg("no knowledge base chunks found")
		return 0, nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}
	vecs, err := ix.provider.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, err
	}
	for i := range docs {
		docs[i].Embedding = vecs[i]
	}

	if err := ix.store.Upsert(ctx, docs); err != nil {
		return 0, err
	}

	logx.Info().Int("chunks", len(docs)).Int("files", len(paths)).Msg("knowledge base indexed")
	return len(docs), nil
}
