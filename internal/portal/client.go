// Package portal fetches documents from the university course portal. All
// requests are plain GETs; callers decide whether a failed fetch is fatal or
// just skips the current item.
package portal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vucat/internal/config"
)

type Client struct {
	cfg config.Config
	// sectionClient carries a short timeout to bound the long id scan; the
	// search and detail fetches use the default client with no deadline.
	sectionClient *http.Client
	searchClient  *http.Client
	limiter       *RateLimiter
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:           cfg,
		sectionClient: &http.Client{Timeout: time.Duration(cfg.SectionTimeoutMs) * time.Millisecond},
		searchClient:  &http.Client{},
		limiter:       NewRateLimiter(time.Duration(cfg.RequestDelayMs) * time.Millisecond),
	}
}

// SectionDetail fetches the detail page for one class section number.
func (c *Client) SectionDetail(ctx context.Context, classNumber int) (string, error) {
	c.limiter.WaitTurn()
	return c.fetch(ctx, c.sectionClient, "GetClassSectionDetail.action", map[string]string{
		"classNumber":         strconv.Itoa(classNumber),
		"termCode":            c.cfg.TermCode,
		"hideAddToCartButton": "false",
	})
}

// SearchCourses fetches the search-results page for a free-text subject
// query. The server decides what matches; filtering happens downstream.
func (c *Client) SearchCourses(ctx context.Context, keywords string) (string, error) {
	return c.fetch(ctx, c.searchClient, "SearchCoursesExecute!search.action", map[string]string{
		"keywords": keywords,
	})
}

// CourseDetail fetches the detail page for one course id and offer number.
func (c *Client) CourseDetail(ctx context.Context, courseID, offerNumber string) (string, error) {
	return c.fetch(ctx, c.searchClient, "GetCourseDetail.action", map[string]string{
		"id":          courseID,
		"offerNumber": offerNumber,
	})
}

func (c *Client) fetch(ctx context.Context, httpClient *http.Client, endpoint string, params map[string]string) (string, error) {
	baseURL := strings.TrimRight(c.cfg.PortalBaseURL, "/") + "/"
	u, err := url.Parse(baseURL + endpoint)
	if err != nil {
		return "", err
	}

	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("portal status %d for %s", resp.StatusCode, endpoint)
	}

	return string(body), nil
}
