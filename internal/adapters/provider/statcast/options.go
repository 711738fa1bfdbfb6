package statcast

import "github.com/okian/pitchcard/internal/adapters/provider"

// Option configures a Client.
type Option func(*Client, *[]provider.Option)

// WithRegularSeasonOnly keeps only regular season games.
func WithRegularSeasonOnly(on bool) Option {
	return func(c *Client, _ *[]provider.Option) {
		c.regularSeasonOnly = on
	}
}

// WithHTTP passes options to the underlying HTTP client.
func WithHTTP(opts ...provider.Option) Option {
	return func(_ *Client, p *[]provider.Option) {
		*p = append(*p, opts...)
	}
}
