package out

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"pagepulse/internal/modules/analysis/domain"
	analysisout "pagepulse/internal/modules/analysis/port/out"
	apperrors "pagepulse/internal/platform/errors"
)

// pagespeedResponse mirrors the slice of the PageSpeed Insights v5 response
// this pipeline reads. Pointer fields mark absence so the builder can tell a
// missing score from a zero one.
type pagespeedResponse struct {
	LighthouseResult *struct {
		Categories struct {
			Performance *struct {
				Score *float64 `json:"score"`
			} `json:"performance"`
		} `json:"categories"`
		Audits map[string]struct {
			DisplayValue *string `json:"displayValue"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

type PageSpeedClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewPageSpeedClient(endpoint, apiKey string, timeout time.Duration) analysisout.AuditProvider {
	return &PageSpeedClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *PageSpeedClient) Audit(ctx context.Context, pageURL string, strategy domain.Strategy) (domain.RawAudit, error) {
	// The credential is only needed here, so history-only commands keep
	// working without one.
	if strings.TrimSpace(c.apiKey) == "" {
		return domain.RawAudit{}, apperrors.ErrMissingAPIKey
	}

	query := url.Values{}
	query.Set("url", pageURL)
	query.Set("strategy", string(strategy))
	query.Set("key", c.apiKey)
	query.Set("category", "performance")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return domain.RawAudit{}, fmt.Errorf("%w: %v", domain.ErrProviderRequest, err)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logrus.WithField("url", pageURL).Warnf("pagespeed request failed: %v", err)
		return domain.RawAudit{}, fmt.Errorf("%w: %v", domain.ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"url":      pageURL,
		"strategy": strategy,
		"status":   resp.StatusCode,
		"took":     time.Since(started).Round(time.Millisecond),
	}).Debug("pagespeed audit")

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body so the error names the failure mode.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return domain.RawAudit{}, fmt.Errorf("%w: status %d: %s", domain.ErrProviderRequest, resp.StatusCode, snippet)
	}

	var payload pagespeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.RawAudit{}, fmt.Errorf("%w: decode: %v", domain.ErrMalformedResponse, err)
	}
	return toRawAudit(payload), nil
}

func toRawAudit(payload pagespeedResponse) domain.RawAudit {
	raw := domain.RawAudit{Audits: map[string]string{}}
	if payload.LighthouseResult == nil {
		return raw
	}
	if perf := payload.LighthouseResult.Categories.Performance; perf != nil {
		raw.Score = perf.Score
	}
	for id, audit := range payload.LighthouseResult.Audits {
		if audit.DisplayValue != nil {
			raw.Audits[id] = *audit.DisplayValue
		}
	}
	return raw
}
