package model

// ================ Config ================
type ConversationConfig struct {
	TTL string `envconfig:"CONVERSATION_TTL" default:"15m"`
	Context struct {
		MaxMessages int `envconfig:"CONVERSATION_CONTEXT_MAX_MESSAGES" default:"6"`
	}
}

type GenerationModelConfig struct {
	Model          string  `envconfig:"GENERATION_MODEL" default:"gemini-2.5-flash"`
	EmbeddingModel string  `envconfig:"EMBEDDING_MODEL" default:"gemini-embedding-001"`
	MaxTokens      int     `envconfig:"GENERATION_MAX_TOKENS" default:"2048"`
	Temperature    float32 `envconfig:"GENERATION_TEMPERATURE" default:"0.7"`
}

type SearchConfig struct {
	CatalogPath string `envconfig:"FLIGHT_CATALOG_PATH" default:"data/flights.json"`
	MaxResults  int    `envconfig:"SEARCH_MAX_RESULTS" default:"5"`
}

type RAGConfig struct {
	TopK      int    `envconfig:"RAG_TOP_K" default:"3"`
	ChunkSize int    `envconfig:"RAG_CHUNK_SIZE" default:"600"`
	IndexName string `envconfig:"RAG_INDEX_NAME" default:"travel_knowledge_base"`
	KeyPrefix string `envconfig:"RAG_KEY_PREFIX" default:"kb:doc:"`
}
