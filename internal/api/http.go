package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/booksadda/storefront/internal/errors"
)

func (c *Client) doJSON(ctx context.Context, operation, method, path string, body any, wantStatus int, target any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.NewServiceError(operation, 0, "encode request: "+err.Error())
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.NewServiceError(operation, 0, err.Error())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewServiceError(operation, 0, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.NewServiceError(operation, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.NewServiceError(operation, 0, "decode response: "+err.Error())
	}
	return nil
}
