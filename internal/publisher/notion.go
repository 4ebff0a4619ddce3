// Package publisher mirrors the latest report images onto a Notion page.
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const notionVersion = "2022-06-28"

// Client is a minimal Notion REST API client covering the three block
// operations the publisher needs.
type Client struct {
	Token   string
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client with optional proxy support.
func NewClient(token, proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		Token:   token,
		BaseURL: "https://api.notion.com/v1",
		HTTP: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// Block is the id/type pair of one page child, enough to decide deletion.
type Block struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// ListChildren pages through every child block of the page.
func (c *Client) ListChildren(ctx context.Context, pageID string) ([]Block, error) {
	var all []Block
	cursor := ""
	for {
		path := fmt.Sprintf("/blocks/%s/children?page_size=100", pageID)
		if cursor != "" {
			path += "&start_cursor=" + url.QueryEscape(cursor)
		}
		var page struct {
			Results    []Block `json:"results"`
			HasMore    bool    `json:"has_more"`
			NextCursor string  `json:"next_cursor"`
		}
		if err := c.do(ctx, "GET", path, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if !page.HasMore || page.NextCursor == "" {
			return all, nil
		}
		cursor = page.NextCursor
	}
}

// DeleteBlock archives one block.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) error {
	return c.do(ctx, "DELETE", "/blocks/"+blockID, nil, nil)
}

// ClearPage removes every block from the page except nested pages and
// databases.
func (c *Client) ClearPage(ctx context.Context, pageID string) error {
	children, err := c.ListChildren(ctx, pageID)
	if err != nil {
		return fmt.Errorf("list children: %w", err)
	}
	for _, b := range children {
		if b.Type == "child_page" || b.Type == "child_database" {
			continue
		}
		if err := c.DeleteBlock(ctx, b.ID); err != nil {
			return fmt.Errorf("delete block %s: %w", b.ID, err)
		}
	}
	return nil
}

// AppendChildren appends blocks to the page in one call.
func (c *Client) AppendChildren(ctx context.Context, pageID string, blocks []map[string]interface{}) error {
	payload := map[string]interface{}{"children": blocks}
	return c.do(ctx, "PATCH", "/blocks/"+pageID+"/children", payload, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Notion-Version", notionVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("notion %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("notion read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notion API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("notion decode: %w", err)
		}
	}
	return nil
}
