package config

import (
	"crypto/tls"
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// clientConfig tunes the outbound HTTP client of a single vendor or service.
type clientConfig struct {
	Proxy    string        `yaml:"proxy"`
	Timeout  time.Duration `yaml:"timeout"`
	Insecure bool          `yaml:"insecure"`
}

const (
	synthesisTimeout  = time.Minute
	extractionTimeout = 5 * time.Minute

	// the catalog has a static fallback, so give up early
	catalogTimeout = 5 * time.Second
)

func (cfg clientConfig) httpClient(timeout time.Duration) (*http.Client, error) {
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)

		if err != nil {
			return nil, err
		}

		if proxyURL.Scheme == "" || proxyURL.Host == "" {
			return nil, errors.New("invalid proxy url: " + cfg.Proxy)
		}

		tr.Proxy = http.ProxyURL(proxyURL)
	}

	if cfg.Insecure {
		tr.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Transport: otelhttp.NewTransport(tr),
		Timeout:   timeout,
	}, nil
}
