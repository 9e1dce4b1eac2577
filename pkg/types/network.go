package types

import (
	"fmt"
	"net/url"
)

// NetworkConfig holds the parameters a network manager is built from.
type NetworkConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
}

// Validate checks that BaseURL is an absolute http or https URL with a host.
// It returns ErrBaseURLEmpty or ErrBaseURLInvalid on failure.
func (c NetworkConfig) Validate() error {
	_, err := c.ParseBaseURL()
	return err
}

// ParseBaseURL validates BaseURL and returns it parsed.
func (c NetworkConfig) ParseBaseURL() (*url.URL, error) {
	if c.BaseURL == "" {
		return nil, ErrBaseURLEmpty
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBaseURLInvalid, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q", ErrBaseURLInvalid, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrBaseURLInvalid)
	}
	return u, nil
}
