package ksi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://www.ksi.is"

// Client fetches raw HTML from the KSÍ site. Retries and timeouts live here;
// the extraction code never performs I/O.
type Client interface {
	BaseURL() string
	FetchIndex(ctx context.Context, season int) (string, error)
	FetchCompetition(ctx context.Context, motnumer string) (string, error)
}

type client struct {
	baseURL string
	http    *resty.Client
}

func New() (Client, error) {
	return NewForTest(DefaultBaseURL), nil
}

// NewForTest returns a client pointed at the given base URL instead of the
// real KSÍ site.
func NewForTest(baseURL string) Client {
	r := resty.New().
		SetTimeout(25 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1500 * time.Millisecond).
		SetRetryMaxWaitTime(10 * time.Second).
		SetHeader("User-Agent", "iceland-db/1.0 (fixtures ingestion)").
		SetHeader("Accept-Language", "is,en;q=0.8")

	return &client{
		baseURL: baseURL,
		http:    r,
	}
}

func (c *client) BaseURL() string {
	return c.baseURL
}

// IndexURL builds the competition listing URL for a season. Extraction relies
// on motnumer links in the HTML, so if KSÍ changes its paths only this needs
// updating.
func IndexURL(baseURL string, season int) string {
	return fmt.Sprintf("%s/mot/?year=%d", baseURL, season)
}

// CompetitionURL builds the page URL for a single competition.
func CompetitionURL(baseURL, motnumer string) string {
	return fmt.Sprintf("%s/mot/stakt-mot/?motnumer=%s", baseURL, motnumer)
}

func (c *client) FetchIndex(ctx context.Context, season int) (string, error) {
	return c.get(ctx, IndexURL(c.baseURL, season))
}

func (c *client) FetchCompetition(ctx context.Context, motnumer string) (string, error) {
	return c.get(ctx, CompetitionURL(c.baseURL, motnumer))
}

func (c *client) get(ctx context.Context, url string) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("error fetching %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d fetching %s", resp.StatusCode(), url)
	}
	return resp.String(), nil
}
