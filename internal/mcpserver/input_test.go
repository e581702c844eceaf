package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSpecInput_ResolveFile(t *testing.T) {
	validatorCache.reset()
	input := specInput{File: writeDocument(t, usersDocument)}
	v, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://api.example.com"}, v.Document().ServerURLs())
}

func TestSpecInput_ResolveContent(t *testing.T) {
	validatorCache.reset()
	v, err := specInput{Content: usersDocument}.resolve(context.Background())
	require.NoError(t, err)
	assert.Contains(t, v.Document().Paths, "/users")
	assert.Same(t, formatRegistry, v.Formats())
}

func TestSpecInput_ResolveURL(t *testing.T) {
	validatorCache.reset()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(usersDocument))
	}))
	defer srv.Close()

	saved := httpClient
	httpClient = srv.Client
	t.Cleanup(func() { httpClient = saved })

	v, err := specInput{URL: srv.URL + "/openapi.json"}.resolve(context.Background())
	require.NoError(t, err)
	assert.Contains(t, v.Document().Paths, "/users")
}

func TestSpecInput_ResolveNoneProvided(t *testing.T) {
	_, err := specInput{}.resolve(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content must be provided")
}

func TestSpecInput_ResolveMultipleProvided(t *testing.T) {
	_, err := specInput{File: "foo.yaml", Content: "bar"}.resolve(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content must be provided")
}

func TestSpecInput_ResolveFileNotFound(t *testing.T) {
	validatorCache.reset()
	_, err := specInput{File: "/nonexistent/path.yaml"}.resolve(context.Background())
	assert.Error(t, err)
}

func TestSpecInput_InlineTooLarge(t *testing.T) {
	saved := cfg.MaxInlineSize
	cfg.MaxInlineSize = 8
	t.Cleanup(func() { cfg.MaxInlineSize = saved })

	_, err := specInput{Content: usersDocument}.resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OASGUARD_MAX_INLINE_SIZE")
}

func TestValidatorCache_HitOnSameFile(t *testing.T) {
	validatorCache.reset()
	input := specInput{File: writeDocument(t, usersDocument)}

	v1, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, validatorCache.size())

	v2, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Same(t, v1, v2, "expected same pointer from cache hit")
}

func TestValidatorCache_MissOnModifiedFile(t *testing.T) {
	validatorCache.reset()
	path := writeDocument(t, `{"servers": [{"url": "https://v1.example.com"}], "paths": {}}`)
	input := specInput{File: path}

	v1, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://v1.example.com"}, v1.Document().ServerURLs())

	require.NoError(t, os.WriteFile(path, []byte(`{"servers": [{"url": "https://v2.example.com"}], "paths": {}}`), 0o644))
	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	v2, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, v1, v2)
	assert.Equal(t, []string{"https://v2.example.com"}, v2.Document().ServerURLs())
}

func TestValidatorCache_LRUEviction(t *testing.T) {
	validatorCache.reset()

	var firstKey string
	for i := range 11 {
		content := `{"servers": [{"url": "https://` + string(rune('a'+i)) + `.example.com"}], "paths": {}}`
		if i == 0 {
			firstKey = makeCacheKey(specInput{Content: content})
		}
		_, err := specInput{Content: content}.resolve(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, 10, validatorCache.size())
	assert.Nil(t, validatorCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestValidatorCache_Sweep(t *testing.T) {
	validatorCache.reset()
	v, err := specInput{Content: usersDocument}.resolve(context.Background())
	require.NoError(t, err)

	validatorCache.putWithTTL("expired", v, -time.Second)
	assert.Equal(t, 2, validatorCache.size())

	validatorCache.sweep()
	assert.Equal(t, 1, validatorCache.size())
	assert.Nil(t, validatorCache.get("expired"))
}

func TestValidatorCache_SweeperStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	validatorCache.startSweeper(ctx, time.Millisecond)
	assert.True(t, validatorCache.sweeperStarted.Load())
	cancel()
	assert.Eventually(t, func() bool { return !validatorCache.sweeperStarted.Load() }, time.Second, time.Millisecond)
}
