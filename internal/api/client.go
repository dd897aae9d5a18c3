package api

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

const (
	ActualBaseURL    = "http://mobil.bvg.de/IstAbfahrtzeiten/index/mobil"
	ScheduledBaseURL = "http://mobil.bvg.de/Fahrinfo/bin/stboard.bin/dox"

	DefaultTimeout = 15 * time.Second

	berlinTZ = "Europe/Berlin"
)

// Location is the time zone of the times printed on BVG pages.
var Location = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation(berlinTZ)
	if err != nil {
		return time.Local
	}
	return loc
}

func berlinNow() time.Time {
	return time.Now().In(Location)
}

// Client fetches departure pages from the BVG mobile site.
type Client struct {
	httpClient   *http.Client
	actualURL    string
	scheduledURL string
	clock        func() time.Time
}

// ClientOptions overrides the defaults of NewClient. Zero values keep the default.
type ClientOptions struct {
	Timeout      time.Duration
	ActualURL    string
	ScheduledURL string
}

// NewClient creates a new BVG client.
func NewClient() *Client {
	return NewClientWithOptions(ClientOptions{})
}

// NewClientWithTimeout creates a client with a custom timeout.
func NewClientWithTimeout(timeout time.Duration) *Client {
	return NewClientWithOptions(ClientOptions{Timeout: timeout})
}

// NewClientWithOptions creates a client with custom endpoints and timeout.
func NewClientWithOptions(opts ClientOptions) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		actualURL:    ActualBaseURL,
		scheduledURL: ScheduledBaseURL,
		clock:        berlinNow,
	}
	if opts.Timeout > 0 {
		c.httpClient.Timeout = opts.Timeout
	}
	if opts.ActualURL != "" {
		c.actualURL = opts.ActualURL
	}
	if opts.ScheduledURL != "" {
		c.scheduledURL = opts.ScheduledURL
	}
	return c
}

func (c *Client) get(ctx context.Context, baseURL string, params url.Values) (*goquery.Document, error) {
	rawURL := baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Accept-Encoding", "gzip")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Str("latency", time.Since(start).String()).
		Msg("Fetched BVG page")

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gr.Close()
		reader = gr
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(reader, 512))
		return nil, fmt.Errorf("BVG returned %d: %s", resp.StatusCode, string(body))
	}

	utf8Reader, err := charset.NewReader(reader, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return doc, nil
}

// encodeStation converts a station name to the ISO-8859-1 bytes the site expects.
func encodeStation(station string) (string, error) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(station)
	if err != nil {
		return "", fmt.Errorf("station %q is not representable in ISO-8859-1: %w", station, err)
	}
	return encoded, nil
}
