package extractor

import (
	"context"

	"github.com/adrianliechti/narrator/pkg/provider"
)

type Provider interface {
	Extract(ctx context.Context, file File, options *ExtractOptions) (*Document, error)
}

// Capability is implemented by providers that only handle some content
// types, or depend on something that may be missing at runtime.
type Capability interface {
	Supports(contentType string) bool
}

// Supports reports whether p can be tried for contentType.
// Providers without a Capability are always tried.
func Supports(p Provider, contentType string) bool {
	if c, ok := p.(Capability); ok {
		return c.Supports(contentType)
	}

	return true
}

type File = provider.File

type ExtractOptions struct {
}

type Document struct {
	Text string

	Pages int
}
