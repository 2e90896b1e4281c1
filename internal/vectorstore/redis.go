package vectorstore

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	errx "github.com/Voyago-core-poc-v1/server/internal/core/error"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

const distanceField = "__dist"

// RedisStore is a RediSearch-backed vector index over hash documents.
// The index is created lazily on first Upsert/Query, once the embedding
// dimension is known.
type RedisStore struct {
	rdb       *redis.Client
	indexName string
	keyPrefix string
}

func NewRedisStore(rdb *redis.Client, indexName, keyPrefix string) *RedisStore {
	return &RedisStore{rdb: rdb, indexName: indexName, keyPrefix: keyPrefix}
}

func (s *RedisStore) key(id string) string {
	return s.keyPrefix + id
}

// ensureIndex creates the search index when it does not exist yet.
func (s *RedisStore) ensureIndex(ctx context.Context, dim int) error {
	if err := s.rdb.FTInfo(ctx, s.indexName).Err(); err == nil {
		return nil
	}

	err := s.rdb.FTCreate(ctx, s.indexName,
		&redis.FTCreateOptions{
			OnHash: true,
			Prefix: []any{s.keyPrefix},
		},
		&redis.FieldSchema{FieldName: "content", FieldType: redis.SearchFieldTypeText},
		&redis.FieldSchema{FieldName: "source", FieldType: redis.SearchFieldTypeTag},
		&redis.FieldSchema{
			FieldName: "embedding",
			FieldType: redis.SearchFieldTypeVector,
			VectorArgs: &redis.FTVectorArgs{
				FlatOptions: &redis.FTFlatOptions{
					Type:           "FLOAT32",
					Dim:            dim,
					DistanceMetric: "COSINE",
				},
			},
		},
	).Err()
	if err != nil {
		logx.Error().Err(err).Str("index", s.indexName).Msg("failed to create vector index")
		return errx.WrapVectorStore(err)
	}

	logx.Info().Str("index", s.indexName).Int("dim", dim).Msg("created vector index")
	return nil
}

func (s *RedisStore) Upsert(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	if err := s.ensureIndex(ctx, len(docs[0].Embedding)); err != nil {
		return err
	}

	pipe := s.rdb.Pipeline()
	for _, d := range docs {
		if len(d.Embedding) == 0 {
			return errx.WrapVectorStore(fmt.Errorf("document %q has no embedding", d.ID))
		}
		pipe.HSet(ctx, s.key(d.ID), map[string]any{
			"content":   d.Content,
			"source":    d.Source,
			"embedding": encodeVector(d.Embedding),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logx.Error().Err(err).Int("docs", len(docs)).Msg("failed to upsert documents")
		return errx.WrapVectorStore(err)
	}

	logx.Debug().Int("docs", len(docs)).Str("index", s.indexName).Msg("upserted documents")
	return nil
}

func (s *RedisStore) Query(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	if topK <= 0 || len(vector) == 0 {
		return nil, nil
	}
	if err := s.ensureIndex(ctx, len(vector)); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("*=>[KNN %d @embedding $vec AS %s]", topK, distanceField)
	res, err := s.rdb.FTSearchWithArgs(ctx, s.indexName, query, &redis.FTSearchOptions{
		Return: []redis.FTSearchReturn{
			{FieldName: "content"},
			{FieldName: "source"},
			{FieldName: distanceField},
		},
		SortBy:         []redis.FTSearchSortBy{{FieldName: distanceField, Asc: true}},
		LimitOffset:    0,
		Limit:          topK,
		DialectVersion: 2,
		Params:         map[string]any{"vec": encodeVector(vector)},
	}).Result()
	if err != nil {
		logx.Error().Err(err).Str("index", s.indexName).Msg("vector query failed")
		return nil, errx.WrapVectorStore(err)
	}

	matches := make([]Match, 0, len(res.Docs))
	for _, doc := range res.Docs {
		m := Match{
			Content: doc.Fields["content"],
			Source:  doc.Fields["source"],
		}
		if raw, ok := doc.Fields[distanceField]; ok {
			if d, perr := strconv.ParseFloat(raw, 64); perr == nil {
				m.Distance = d
			}
		}
		matches = append(matches, m)
	}

	logx.Debug().Int("matches", len(matches)).Str("index", s.indexName).Msg("vector query")
	return matches, nil
}

// Reset drops the index together with all indexed documents.
func (s *RedisStore) Reset(ctx context.Context) error {
	err := s.rdb.FTDropIndexWithArgs(ctx, s.indexName, &redis.FTDropIndexOptions{DeleteDocs: true}).Err()
	if err != nil && err != redis.Nil {
		// A missing index is fine: nothing to drop.
		if isUnknownIndexErr(err) {
			return nil
		}
		return errx.WrapVectorStore(err)
	}
	return nil
}

func isUnknownIndexErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unknown index") || strings.Contains(msg, "no such index")
}

// encodeVector packs float32 components as little-endian bytes, the layout
// RediSearch expects for FLOAT32 vector fields.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeVector is the inverse of encodeVector.
func decodeVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

var _ Store = (*RedisStore)(nil)
