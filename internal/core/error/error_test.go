package errx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	underlying := errors.New("connection refused")
	e := New(underlying, http.StatusBadGateway, RedisErrorMessage)

	assert.Equal(t, "redis operation failed: connection refused", e.Error())
	assert.Equal(t, http.StatusBadGateway, e.Status)

	assert.Equal(t, RedisErrorMessage, New(nil, http.StatusBadGateway, RedisErrorMessage).Error())
}

func TestErrorUnwrapChain(t *testing.T) {
	underlying := errors.New("boom")
	wrapped := fmt.Errorf("stage: %w", New(underlying, http.StatusInternalServerError, SystemErrorMessage))

	assert.True(t, errors.Is(wrapped, underlying))

	var e *Error
	require.True(t, errors.As(wrapped, &e))
	assert.Equal(t, SystemErrorMessage, e.Message)
}

func TestWrapRedis(t *testing.T) {
	assert.Nil(t, WrapRedis(nil))

	e := WrapRedis(redis.Nil)
	require.NotNil(t, e)
	assert.Equal(t, http.StatusNotFound, e.Status)
	assert.Equal(t, RedisNotFoundMessage, e.Message)

	e = WrapRedis(errors.New("timeout"))
	require.NotNil(t, e)
	assert.Equal(t, http.StatusBadGateway, e.Status)
	assert.Equal(t, RedisErrorMessage, e.Message)
}

func TestWrapLLMAndVectorStore(t *testing.T) {
	assert.Nil(t, WrapLLM(nil))
	assert.Nil(t, WrapVectorStore(nil))

	e := WrapLLM(errors.New("quota exceeded"))
	require.NotNil(t, e)
	assert.Equal(t, LLMErrorMessage, e.Message)

	e = WrapVectorStore(errors.New("index gone"))
	require.NotNil(t, e)
	assert.Equal(t, VectorStoreErrorMessage, e.Message)
}
