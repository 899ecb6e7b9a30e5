package pdga

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL  = "https://www.pdga.com"
	DefaultDivision = "MPO"
	DefaultTimeout  = 15 * time.Second

	// PDGA serves an empty shell to clients without a browser user agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Client defines the interface for fetching tournament results from PDGA
type Client interface {
	// FindEvent resolves a tournament name or numeric event ID to an event page
	FindEvent(nameOrID string) (*EventRef, error)

	// FetchResults scrapes one division's finishers from an event page
	FetchResults(ref *EventRef, division string) ([]ResultRow, error)
}

// HTTPClient implements the Client interface by scraping pdga.com
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewHTTPClient creates a new scraping client. An empty baseURL selects the
// live PDGA site.
func NewHTTPClient(baseURL string, logger *logrus.Logger) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}
}

var (
	numericQueryPattern  = regexp.MustCompile(`^\d+$`)
	eventHrefPattern     = regexp.MustCompile(`/tour/event/(\d+)`)
	embeddedEventPattern = regexp.MustCompile(`event[/_](\d{5,})`)
)

// fetchDocument performs an HTTP GET and parses the response as HTML
func (c *HTTPClient) fetchDocument(pageURL string) (*goquery.Document, error) {
	c.logger.WithField("url", pageURL).Debug("Fetching PDGA page")

	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("HTTP request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"url":         pageURL,
		}).Error("PDGA request failed")

		return nil, &PDGAError{
			Type:       "api_error",
			Message:    fmt.Sprintf("PDGA request failed with status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		c.logger.WithError(err).Error("Failed to parse page HTML")
		return nil, &PDGAError{
			Type:    "parse_error",
			Message: fmt.Sprintf("failed to parse page: %v", err),
		}
	}

	c.logger.Debug("PDGA page fetched successfully")
	return doc, nil
}

func (c *HTTPClient) eventURL(eventID string) string {
	return fmt.Sprintf("%s/tour/event/%s", c.baseURL, eventID)
}

// FindEvent resolves a tournament to its event page. A numeric query is
// treated as an event ID directly; anything else goes through the tour
// search, taking the first event link. A query with no hits returns an
// error wrapping ErrNotFound.
func (c *HTTPClient) FindEvent(nameOrID string) (*EventRef, error) {
	query := strings.TrimSpace(nameOrID)
	if query == "" {
		return nil, fmt.Errorf("empty tournament query: %w", ErrNotFound)
	}

	if numericQueryPattern.MatchString(query) {
		return &EventRef{EventID: query, URL: c.eventURL(query)}, nil
	}

	params := url.Values{
		"title":        {query},
		"OfficialName": {query},
	}
	searchURL := fmt.Sprintf("%s/tour/search?%s", c.baseURL, params.Encode())

	c.logger.WithField("query", query).Info("Searching PDGA for tournament")

	doc, err := c.fetchDocument(searchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to search for %q: %w", query, err)
	}

	var eventID string
	doc.Find("a[href]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if m := eventHrefPattern.FindStringSubmatch(href); m != nil {
			eventID = m[1]
			return false
		}
		return true
	})

	// Some search layouts only carry the ID in embedded markup.
	if eventID == "" {
		if body, err := doc.Html(); err == nil {
			if m := embeddedEventPattern.FindStringSubmatch(body); m != nil {
				eventID = m[1]
			}
		}
	}

	if eventID == "" {
		c.logger.WithField("query", query).Warn("No PDGA event matched search")
		return nil, fmt.Errorf("tournament %q: %w", query, ErrNotFound)
	}

	c.logger.WithFields(logrus.Fields{
		"query":    query,
		"event_id": eventID,
	}).Info("Resolved PDGA event")

	return &EventRef{EventID: eventID, Name: query, URL: c.eventURL(eventID)}, nil
}

// FetchResults scrapes the division's finisher rows from the event page.
// When the page carries a title, ref.Name is updated to the official
// tournament name. Malformed rows are skipped; an event page without the
// division or its results table is an error.
func (c *HTTPClient) FetchResults(ref *EventRef, division string) ([]ResultRow, error) {
	if division == "" {
		division = DefaultDivision
	}

	c.logger.WithFields(logrus.Fields{
		"event_id": ref.EventID,
		"division": division,
	}).Info("Fetching tournament results")

	doc, err := c.fetchDocument(ref.URL)
	if err != nil {
		var perr *PDGAError
		if errors.As(err, &perr) {
			perr.EventID = ref.EventID
		}
		return nil, fmt.Errorf("failed to fetch event %s: %w", ref.EventID, err)
	}

	if name := pageTitle(doc); name != "" {
		ref.Name = name
	}

	rows, err := parseDivisionResults(doc, division)
	if err != nil {
		var perr *PDGAError
		if errors.As(err, &perr) {
			perr.EventID = ref.EventID
		}
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"event_id": ref.EventID,
		"division": division,
		"players":  len(rows),
	}).Info("Parsed tournament results")

	return rows, nil
}
