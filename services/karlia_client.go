package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"ledquote/config"
	"ledquote/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// maxResponseSize bounds how much of a CRM answer is read into memory.
const maxResponseSize = 4 << 20

// EmptyContactList is what the relay answers for an empty or too short query.
var EmptyContactList = []byte(`{"items":[]}`)

// KarliaClient talks to the KARLIA contacts API with a static bearer token.
// It keeps no state between calls and is safe for concurrent use.
type KarliaClient struct {
	baseURL        string
	limit          int
	minQueryLength int
	configured     bool
	httpClient     *http.Client
}

// NewKarliaClient builds a client from the CRM settings. A missing API key
// is not an error here; calls then fail with ErrNotConfigured.
func NewKarliaClient(cfg config.Karlia) *KarliaClient {
	return newKarliaClient(cfg, http.DefaultClient)
}

func newKarliaClient(cfg config.Karlia, base *http.Client) *KarliaClient {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.APIKey,
		TokenType:   "Bearer",
	}))
	httpClient.Timeout = cfg.Timeout

	limit := cfg.SearchLimit
	if limit < 1 {
		limit = config.DefaultSearchLimit
	}
	minLen := cfg.MinQueryLength
	if minLen < 1 {
		minLen = config.DefaultMinQueryLength
	}
	return &KarliaClient{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		limit:          limit,
		minQueryLength: minLen,
		configured:     cfg.APIKey != "",
		httpClient:     httpClient,
	}
}

func (k *KarliaClient) MinQueryLength() int { return k.minQueryLength }

// Searchable reports whether query is long enough to be sent upstream.
func (k *KarliaClient) Searchable(query string) bool {
	q := strings.TrimSpace(query)
	return q != "" && utf8.RuneCountInString(q) >= k.minQueryLength
}

// SearchContacts returns the normalized contacts matching query. Queries
// below the minimum length return an empty list without any network call.
func (k *KarliaClient) SearchContacts(ctx context.Context, query string) ([]models.Contact, error) {
	if !k.Searchable(query) {
		return []models.Contact{}, nil
	}
	body, err := k.SearchRaw(ctx, query)
	if err != nil {
		return nil, err
	}
	return NormalizeContactList(body)
}

// SearchRaw performs the upstream search and returns the answer body
// untouched. It does not apply the minimum query length.
func (k *KarliaClient) SearchRaw(ctx context.Context, query string) ([]byte, error) {
	params := url.Values{}
	params.Set("q", strings.TrimSpace(query))
	params.Set("limit", strconv.Itoa(k.limit))
	body, err := k.get(ctx, "search contacts", "/contacts?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: search answer is not JSON", ErrMalformedResponse)
	}
	return body, nil
}

// GetContact fetches one contact by its CRM id.
func (k *KarliaClient) GetContact(ctx context.Context, id string) (models.Contact, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Contact{}, invalidInput("contact id is required")
	}
	body, err := k.get(ctx, "get contact", "/contacts/"+url.PathEscape(id))
	if err != nil {
		return models.Contact{}, err
	}
	return NormalizeContactDetail(body)
}

// Ping checks connectivity and credentials with a one-item listing.
func (k *KarliaClient) Ping(ctx context.Context) error {
	_, err := k.get(ctx, "ping", "/contacts?limit=1")
	return err
}

func (k *KarliaClient) get(ctx context.Context, op, path string) ([]byte, error) {
	if !k.configured {
		return nil, ErrNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.baseURL+path, nil)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := k.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	log.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("KARLIA request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
