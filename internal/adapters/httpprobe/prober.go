package httpprobe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shoctl/internal/ports"
)

var _ ports.EndpointProber = (*Prober)(nil)

// Prober checks endpoint reachability with a HEAD request. Only 2xx and
// 3xx responses count as reachable; the console may answer a redirect to
// its login page before it is fully configured.
type Prober struct {
	client *http.Client
}

func ProvideProber() *Prober {
	return &Prober{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Prober) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("endpoint answered with status %d", resp.StatusCode)
	}
	return nil
}
