package contentapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/frabrice/insightium/internal/models"
)

// ErrUnavailable is the single failure condition the gateway reports for
// the upstream Content API. Network errors, non-2xx statuses and
// success:false envelopes all collapse into it; callers that care about
// the cause can read the wrapped detail.
var ErrUnavailable = errors.New("content API unavailable")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func collectionPath(kind models.Kind) string {
	switch kind {
	case models.KindArticle:
		return "articles"
	case models.KindVideo:
		return "videos"
	case models.KindTVShow:
		return "tv-shows"
	case models.KindPodcast:
		return "podcasts"
	}
	return string(kind)
}

// ListItems fetches one page of a collection.
func (c *Client) ListItems(ctx context.Context, kind models.Kind, page int) (*models.ItemPage, error) {
	url := fmt.Sprintf("%s/api/%s?page=%d", c.baseURL, collectionPath(kind), page)

	data, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var itemPage models.ItemPage
	if err := json.Unmarshal(data, &itemPage); err != nil {
		return nil, fmt.Errorf("%w: decoding %s page: %v", ErrUnavailable, kind, err)
	}
	for i := range itemPage.Items {
		itemPage.Items[i].Kind = kind
	}
	return &itemPage, nil
}

// GetItem fetches a single item by ID.
func (c *Client) GetItem(ctx context.Context, kind models.Kind, id string) (*models.MediaItem, error) {
	url := fmt.Sprintf("%s/api/%s/%s", c.baseURL, collectionPath(kind), id)

	data, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var item models.MediaItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("%w: decoding %s item: %v", ErrUnavailable, kind, err)
	}
	item.Kind = kind
	return &item, nil
}

// FetchKind walks every page of a collection and returns all items.
func (c *Client) FetchKind(ctx context.Context, kind models.Kind) ([]models.MediaItem, error) {
	var items []models.MediaItem

	page := 1
	for {
		itemPage, err := c.ListItems(ctx, kind, page)
		if err != nil {
			return nil, err
		}
		items = append(items, itemPage.Items...)

		if !itemPage.Pagination.HasMore || len(itemPage.Items) == 0 {
			break
		}
		page++
		if itemPage.Pagination.TotalPages > 0 && page > itemPage.Pagination.TotalPages {
			break
		}
	}

	return items, nil
}

// get performs one request and unwraps the response envelope.
func (c *Client) get(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var envelope models.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding envelope: %v", ErrUnavailable, err)
	}
	// Single-item lookups come back as a bare {data: ...} without the
	// success flag, so only an envelope with no data at all is a failure.
	if !envelope.Success && envelope.Data == nil {
		if envelope.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, envelope.Message)
		}
		return nil, ErrUnavailable
	}

	return envelope.Data, nil
}
