package intent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeGemini(t *testing.T, status int, modelText string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"), r.URL.Path)

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req, "systemInstruction")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"bad request","status":"INVALID_ARGUMENT"}}`))
			return
		}
		body := map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": modelText}},
					},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestGeminiClassifier(t *testing.T) {
	ts := fakeGemini(t, http.StatusOK, `{"intent":"contribute","parameters":{"projectName":"Project Alpha","amount":0.5}}`)

	c, err := NewGeminiClassifier(context.Background(), GeminiOptions{APIKey: "test", BaseURL: ts.URL})
	require.NoError(t, err)
	assert.Equal(t, "gemini:gemini-2.5-flash", c.Name())

	res, err := c.Classify(context.Background(), "i'd like to donate 0.5 eth to alpha")
	require.NoError(t, err)
	assert.Equal(t, KindContribute, res.Kind)
	assert.Equal(t, "Project Alpha", res.Params.ProjectName)
	require.NotNil(t, res.Params.Amount)
	assert.Equal(t, "0.5", res.Params.Amount.String())
}

func TestGeminiClassifierFailures(t *testing.T) {
	t.Run("error status", func(t *testing.T) {
		ts := fakeGemini(t, http.StatusBadRequest, "")
		c, err := NewGeminiClassifier(context.Background(), GeminiOptions{APIKey: "test", BaseURL: ts.URL})
		require.NoError(t, err)

		_, err = c.Classify(context.Background(), "hello")
		assert.ErrorIs(t, err, ErrClassifierFailure)
	})

	t.Run("unparseable text", func(t *testing.T) {
		ts := fakeGemini(t, http.StatusOK, "sure, here you go")
		c, err := NewGeminiClassifier(context.Background(), GeminiOptions{APIKey: "test", BaseURL: ts.URL})
		require.NoError(t, err)

		_, err = c.Classify(context.Background(), "hello")
		assert.ErrorIs(t, err, ErrClassifierFailure)
	})
}

func TestNewGeminiClassifierRequiresKey(t *testing.T) {
	_, err := NewGeminiClassifier(context.Background(), GeminiOptions{})
	assert.Error(t, err)
}
