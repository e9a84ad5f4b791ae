//go:build staging

package staging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	stagingURL string
	stagingKey string
	crateID    string
	client     *http.Client
)

func TestMain(m *testing.M) {
	stagingURL = envOr("API_URL", "http://localhost:8080")
	stagingKey = envOr("API_KEY", "test-api-key")
	// a crate known to exist on the target deployment
	crateID = envOr("STAGING_CRATE", "vote")

	client = &http.Client{Timeout: 10 * time.Second}

	os.Exit(m.Run())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// makeRequest sends an authenticated JSON request and returns the status and body
func makeRequest(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, fmt.Sprintf("%s%s", stagingURL, path), bodyReader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-API-Key", stagingKey)

	resp, err := client.Do(req)
	require.NoError(t, err, "request to %s", path)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBody
}
