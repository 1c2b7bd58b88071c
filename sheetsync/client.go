package sheetsync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// sheetClient fetches published-CSV exports. Google serves them from a
// redirecting endpoint, so the client follows redirects and only checks
// the final status.
type sheetClient struct {
	http *http.Client
}

func newSheetClient() *sheetClient {
	timeout := 30
	if v := strings.TrimSpace(os.Getenv("SHEET_FETCH_TIMEOUT_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}
	return &sheetClient{
		http: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

func (c *sheetClient) fetchCSV(ctx context.Context, url string) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("sheet url is empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sheet fetch error %d: %s", resp.StatusCode, strings.TrimSpace(firstLine(body)))
	}
	return body, nil
}

func firstLine(b []byte) string {
	s := string(b)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
