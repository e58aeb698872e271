package sheets

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultFetchTimeout = 30 * time.Second

// proxyEnvelope is the JSON response shape of the CORS-bypass proxy; the raw
// CSV text rides in the contents field.
type proxyEnvelope struct {
	Contents string `json:"contents"`
}

// client implements service.SheetFetcher against an allorigins-style proxy.
type client struct {
	proxyEndpoint   string
	defaultSheetURL string
	httpClient      *http.Client
	logger          *slog.Logger
}

// NewClient creates a sheet fetcher from the import configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) (service.SheetFetcher, error) {
	importCfg := cfg.Import
	if importCfg == nil || importCfg.ProxyEndpoint == "" {
		return nil, errors.New("import proxy endpoint is not configured")
	}

	timeout := importCfg.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	return &client{
		proxyEndpoint:   importCfg.ProxyEndpoint,
		defaultSheetURL: importCfg.SheetURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}, nil
}

// FetchCSV downloads the published CSV export through the proxy.
func (c *client) FetchCSV(ctx context.Context, sheetURL string) (string, error) {
	if sheetURL == "" {
		sheetURL = c.defaultSheetURL
	}
	if sheetURL == "" {
		return "", errors.New("no sheet URL given and no default configured")
	}

	requestURL := c.proxyEndpoint + url.QueryEscape(sheetURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", errors.WithStack(err)
	}

	c.logger.Info("Fetching sheet through proxy",
		slog.String("sheet_url", sheetURL),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "proxy request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", errors.Errorf("proxy returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read proxy response")
	}

	var envelope proxyEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", errors.Wrap(err, "failed to decode proxy envelope")
	}

	if envelope.Contents == "" {
		return "", errors.New("proxy envelope carried no contents")
	}

	return envelope.Contents, nil
}
