// Package wix is a minimal wrapper around the Wix Data REST API.
// It is intentionally light—just the one query our repositories require.
package wix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kovaldeepai/server/internal/models"
)

const defaultBaseURL = "https://www.wixapis.com/wix-data/v2"

// Client queries dive logs mirrored in a Wix Data collection.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	siteID  string
}

// NewClient returns a ready-to-use Wix Data client. apiKey and siteID come
// from the Wix dashboard; requests fail with 401/428 when they are wrong.
func NewClient(apiKey, siteID string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		siteID:  siteID,
	}
}

// queryRequest is the subset of the Wix Data query payload we use.
type queryRequest struct {
	DataCollectionID string `json:"dataCollectionId"`
	Query            struct {
		Filter map[string]interface{} `json:"filter"`
		Sort   []map[string]string    `json:"sort,omitempty"`
		Paging struct {
			Limit int `json:"limit"`
		} `json:"paging"`
	} `json:"query"`
}

// dataItem wraps a single collection row.
type dataItem struct {
	ID   string `json:"id"`
	Data struct {
		UserID       string    `json:"userId"`
		Date         time.Time `json:"diveDate"`
		Discipline   string    `json:"discipline"`
		Location     string    `json:"location"`
		TargetDepth  float64   `json:"targetDepth"`
		ReachedDepth float64   `json:"reachedDepth"`
		TotalSeconds int       `json:"totalSeconds"`
		Squeeze      bool      `json:"squeeze"`
		Blackout     bool      `json:"blackout"`
		Notes        string    `json:"notes"`
	} `json:"data"`
}

// QueryDiveLogs fetches up to limit dive logs for a member, newest first.
func (c *Client) QueryDiveLogs(ctx context.Context, userID string, limit int) ([]models.DiveLog, error) {
	q := queryRequest{DataCollectionID: "DiveLogs"}
	q.Query.Filter = map[string]interface{}{"userId": userID}
	q.Query.Sort = []map[string]string{{"fieldName": "diveDate", "order": "DESC"}}
	q.Query.Paging.Limit = limit

	body, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/items/query", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.addHeaders(req)

	var out struct {
		DataItems []dataItem `json:"dataItems"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	dives := make([]models.DiveLog, 0, len(out.DataItems))
	for _, item := range out.DataItems {
		d := item.Data
		dives = append(dives, models.DiveLog{
			UserID:       d.UserID,
			Date:         d.Date,
			Discipline:   d.Discipline,
			Location:     d.Location,
			TargetDepth:  d.TargetDepth,
			ReachedDepth: d.ReachedDepth,
			TotalSeconds: d.TotalSeconds,
			Squeeze:      d.Squeeze,
			Blackout:     d.Blackout,
			Notes:        d.Notes,
		})
	}
	return dives, nil
}

// addHeaders sets authentication and content headers.
func (c *Client) addHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("wix-site-id", c.siteID)
	req.Header.Set("User-Agent", "koval-deep-ai-api")
}

// do executes the HTTP request and decodes JSON into v.
func (c *Client) do(req *http.Request, v interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("wix: unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
