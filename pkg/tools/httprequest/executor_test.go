package httprequest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, config map[string]any) (map[string]map[string]any, error) {
	t.Helper()

	executor, err := NewFactoryWithClient(http.DefaultClient).Create(context.Background())
	require.NoError(t, err)

	return executor.Execute(context.Background(), config, nil)
}

func TestExecute_SuccessRoutesToSuccessPort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	outputs, err := execute(t, map[string]any{
		"url":    server.URL,
		"method": "post",
		"body":   `{"name": "Ada"}`,
	})
	require.NoError(t, err)

	record, ok := outputs[OutputPortSuccess]
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, record["status_code"])
	assert.Equal(t, `{"ok": true}`, record["body"])
	assert.Equal(t, map[string]any{"ok": true}, record["json"])

	_, ok = outputs[OutputPortError]
	assert.False(t, ok, "success must not also fire the error port")
}

func TestExecute_ServerErrorRoutesToErrorPort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	outputs, err := execute(t, map[string]any{"url": server.URL})
	require.NoError(t, err, "HTTP-level failures branch, they are not execution errors")

	record, ok := outputs[OutputPortError]
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, record["status_code"])
}

func TestExecute_TransportErrorRoutesToErrorPort(t *testing.T) {
	outputs, err := execute(t, map[string]any{"url": "http://127.0.0.1:1"})
	require.NoError(t, err)

	record, ok := outputs[OutputPortError]
	require.True(t, ok)
	assert.Equal(t, 0, record["status_code"])
	assert.NotEmpty(t, record["error"])
}

func TestExecute_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	outputs, err := execute(t, map[string]any{
		"url":     server.URL,
		"headers": map[string]any{"X-Api-Key": "secret"},
	})
	require.NoError(t, err)

	_, ok := outputs[OutputPortSuccess]
	assert.True(t, ok)
}

func TestExecute_MalformedConfigIsAnError(t *testing.T) {
	_, err := execute(t, map[string]any{})
	require.Error(t, err, "missing url")

	_, err = execute(t, map[string]any{"url": "http://example.com", "method": "TELEPORT"})
	require.Error(t, err, "invalid method")
}

func TestExecute_CancellationAbortsInsteadOfBranching(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	executor, err := NewFactory().Create(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = executor.Execute(ctx, map[string]any{"url": server.URL}, nil)
	require.ErrorIs(t, err, context.Canceled)
}
