package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"catalogscraper/internal/config"
)

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Client fetches list pages and product details from the catalog API.
// A rate limiter enforces the minimum delay between consecutive requests
// regardless of which endpoint is hit.
type Client struct {
	baseURL        string
	city           string
	collection     string
	collectionName string
	cityID         string
	pincode        string
	limiter        *rate.Limiter
}

func NewClient(cfg *config.Config) *Client {
	delay := cfg.RequestDelay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	return &Client{
		baseURL:        cfg.BaseURL,
		city:           cfg.City,
		collection:     cfg.Collection,
		collectionName: cfg.CollectionName,
		cityID:         cfg.CityID,
		pincode:        cfg.Pincode,
		limiter:        rate.NewLimiter(rate.Every(delay), 1),
	}
}

// get performs one paced GET against the catalog API and returns the raw body.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Origin", "https://www.furlenco.com")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")
	req.Header.Set("moriarty", "web-1.0")
	req.Header.Set("x-city-id", c.cityID)
	req.Header.Set("x-pincode", c.pincode)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d for %s", ErrTransport, resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return body, nil
}

// FetchListPage fetches one page of the catalog list.
func (c *Client) FetchListPage(ctx context.Context, page int) ([]ListProduct, error) {
	params := url.Values{}
	params.Set("collectionType", "CATEGORY_RENT")
	params.Set("city", c.city)
	params.Set("collection", c.collection)
	params.Set("collectionName", c.collectionName)
	params.Set("page", fmt.Sprintf("%d", page))

	rawURL := fmt.Sprintf("%s/api/v1/catalogue/products?%s", c.baseURL, params.Encode())

	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if !gjson.GetBytes(body, "data.products").Exists() {
		return nil, fmt.Errorf("%w: missing data.products in list response", ErrSchema)
	}

	var result listResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return result.Data.Products, nil
}

// FetchAllListPages walks the catalog list page by page until a page comes
// back empty, which signals the list is exhausted.
func (c *Client) FetchAllListPages(ctx context.Context) ([]ListProduct, error) {
	var all []ListProduct
	for page := 0; ; page++ {
		products, err := c.FetchListPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			return all, nil
		}
		all = append(all, products...)
	}
}

// FetchDetail fetches the detail record for a single product by permalink.
func (c *Client) FetchDetail(ctx context.Context, permalink string) (*ProductDetail, error) {
	rawURL := fmt.Sprintf("%s/api/v1/catalogue/products/%s", c.baseURL, url.PathEscape(permalink))

	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if !gjson.GetBytes(body, "data").Exists() {
		return nil, fmt.Errorf("%w: missing data in detail response for %s", ErrSchema, permalink)
	}

	var result detailResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return &result.Data, nil
}
