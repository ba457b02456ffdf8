// Package kiwi talks to a Kiwi morphological analyzer sidecar over HTTP.
//
// The sidecar exposes:
//
//	POST /tokenize {"text": "..."} -> {"tokens": [{"form", "tag", "start", "len"}]}
//	GET  /health                   -> 200 when the model is loaded
//
// Offsets are rune positions in the submitted text.
package kiwi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/hangyeol/internal/domain"
)

const maxErrorBody = 512

// Client implements the tokenizer interface against a Kiwi sidecar.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// New creates a client for baseURL. httpClient should come from
// httpclient.New so transient sidecar failures are retried.
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     logger.With("adapter", "kiwi"),
	}
}

type tokenizeRequest struct {
	Text string `json:"text"`
}

type tokenizeResponse struct {
	Tokens []wireToken `json:"tokens"`
}

type wireToken struct {
	Form  string `json:"form"`
	Tag   string `json:"tag"`
	Start int    `json:"start"`
	Len   int    `json:"len"`
}

// Tokenize splits text into morphemes with POS tags and rune offsets.
func (c *Client) Tokenize(ctx context.Context, text string) ([]domain.Token, error) {
	body, err := json.Marshal(tokenizeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal tokenize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tokenize", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build tokenize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenizerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: status %d: %s", domain.ErrTokenizerUnavailable, resp.StatusCode, bytes.TrimSpace(msg))
		}
		return nil, fmt.Errorf("tokenize: status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out tokenizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode tokenize response: %w", err)
	}

	tokens := make([]domain.Token, 0, len(out.Tokens))
	for _, t := range out.Tokens {
		tokens = append(tokens, domain.Token{Form: t.Form, Tag: t.Tag, Start: t.Start, Len: t.Len})
	}
	c.log.DebugContext(ctx, "tokenized", slog.Int("runes", len([]rune(text))), slog.Int("tokens", len(tokens)))
	return tokens, nil
}

// Ping reports whether the sidecar is up and has its model loaded.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTokenizerUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", domain.ErrTokenizerUnavailable, resp.StatusCode)
	}
	return nil
}
