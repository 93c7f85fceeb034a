package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/itchyny/gojq"
	"github.com/rs/zerolog/log"

	"shoctl/internal/core/domain"
	"shoctl/internal/ports"
)

var _ ports.RegistryClient = (*HTTPRegistry)(nil)

var (
	tokenQuery = mustParse(".token")
	tagsQuery  = mustParse(".tags")
)

func mustParse(src string) *gojq.Query {
	query, err := gojq.Parse(src)
	if err != nil {
		panic(err)
	}
	return query
}

// HTTPRegistry resolves chart versions over the registry HTTP API: a
// pull-scoped token from the /token endpoint, then /v2/<repo>/tags/list.
type HTTPRegistry struct {
	client *http.Client
	// scheme is overridable for tests against httptest servers.
	scheme string
}

func ProvideHTTPRegistry() *HTTPRegistry {
	return &HTTPRegistry{
		client: &http.Client{Timeout: 30 * time.Second},
		scheme: "https",
	}
}

// NewHTTPRegistry builds a registry client with a custom HTTP client and
// scheme, used by tests.
func NewHTTPRegistry(client *http.Client, scheme string) *HTTPRegistry {
	return &HTTPRegistry{client: client, scheme: scheme}
}

// PullToken requests a pull-scoped bearer token for the repository.
func (r *HTTPRegistry) PullToken(ctx context.Context, host, repository string) (string, error) {
	endpoint := fmt.Sprintf("%s://%s/token?service=%s&scope=repository:%s:pull",
		r.scheme, host, url.QueryEscape(host), url.QueryEscape(repository))

	body, err := r.get(ctx, endpoint, "")
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}

	token, err := extractString(body, tokenQuery)
	if err != nil || token == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrTokenUnavailable, host)
	}
	return token, nil
}

// ListTags returns every tag of the repository.
func (r *HTTPRegistry) ListTags(ctx context.Context, host, repository, token string) ([]string, error) {
	endpoint := fmt.Sprintf("%s://%s/v2/%s/tags/list", r.scheme, host, repository)

	body, err := r.get(ctx, endpoint, token)
	if err != nil {
		return nil, fmt.Errorf("tag listing failed: %w", err)
	}

	tags, err := extractStrings(body, tagsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tag listing from %s: %w", host, err)
	}
	log.Debug().Str("repository", repository).Int("tags", len(tags)).Msg("listed registry tags")
	return tags, nil
}

func (r *HTTPRegistry) get(ctx context.Context, endpoint, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func extractString(body []byte, query *gojq.Query) (string, error) {
	value, err := runQuery(body, query)
	if err != nil {
		return "", err
	}
	s, _ := value.(string)
	return s, nil
}

func extractStrings(body []byte, query *gojq.Query) ([]string, error) {
	value, err := runQuery(body, query)
	if err != nil {
		return nil, err
	}
	items, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an array, got %T", value)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func runQuery(body []byte, query *gojq.Query) (interface{}, error) {
	var document interface{}
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	iter := query.Run(document)
	value, ok := iter.Next()
	if !ok {
		return nil, nil
	}
	if err, isErr := value.(error); isErr {
		return nil, err
	}
	return value, nil
}
