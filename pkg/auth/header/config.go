package header

// WithUserHeader overrides the default X-Forwarded-User header.
func WithUserHeader(val string) Option {
	return func(p *Provider) {
		p.userHeader = val
	}
}

// WithEmailHeader overrides the default X-Forwarded-Email header.
func WithEmailHeader(val string) Option {
	return func(p *Provider) {
		p.emailHeader = val
	}
}
