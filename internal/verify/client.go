package verify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/molscan/molscan/internal/cache"
	"github.com/molscan/molscan/internal/model"
	"github.com/molscan/molscan/internal/util"
	"golang.org/x/time/rate"
)

// Client resolves a candidate notation to its canonical form. An empty
// result or an error both mean "no canonical form available".
type Client interface {
	Lookup(ctx context.Context, candidate string) (string, error)
}

// PubChemClient implements Client against the PubChem PUG REST API
type PubChemClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxBytes   int64
	limiter    *rate.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewPubChemClient creates a new PubChem lookup client. The cache is
// optional; pass nil to disable lookup memoization.
func NewPubChemClient(cfg model.VerifyConfig, httpCfg model.HTTPConfig, c cache.Cache, cacheTTL time.Duration) *PubChemClient {
	ratePerSec := cfg.RatePerSec
	if ratePerSec <= 0 {
		ratePerSec = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(ratePerSec)
	}

	return &PubChemClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: httpCfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		limiter:   rate.NewLimiter(rate.Limit(ratePerSec), burst),
		cache:     c,
		cacheTTL:  cacheTTL,
	}
}

// Lookup asks PubChem for the canonical SMILES of a candidate notation.
// Results are memoized in the injected cache so repeated scans of the same
// text do not re-query the service.
func (p *PubChemClient) Lookup(ctx context.Context, candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", fmt.Errorf("empty candidate")
	}

	key := cache.Key("lookup", candidate)
	if p.cache != nil {
		if val, found := p.cache.Get(key); found {
			return string(val), nil
		}
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	lookupURL := fmt.Sprintf("%s/compound/smiles/%s/property/CanonicalSMILES/TXT",
		p.baseURL, url.PathEscape(candidate))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/plain")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	// The TXT endpoint returns one canonical SMILES per line; only the
	// first line matters for a single-structure lookup.
	scanner := bufio.NewScanner(io.LimitReader(resp.Body, p.maxBytes))
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read body: %w", err)
		}
		return "", nil
	}
	canonical := strings.TrimSpace(scanner.Text())

	if p.cache != nil && canonical != "" {
		_ = p.cache.Set(key, []byte(canonical), p.cacheTTL)
	}

	return canonical, nil
}
