package errx

import "net/http"

// WrapLLM maps model provider errors (generation, embedding) to the unified Error type.
func WrapLLM(err error) *Error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, LLMErrorMessage)
}

// WrapVectorStore maps vector index errors to the unified Error type.
func WrapVectorStore(err error) *Error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, VectorStoreErrorMessage)
}
