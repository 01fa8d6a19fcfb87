package ports

import "context"

// DependencyScanPort lists the headers an umbrella header transitively
// includes, in first-seen order.
type DependencyScanPort interface {
	ScanHeaders(ctx context.Context, cflags []string, umbrella string) ([]string, error)
}

// HeaderSourcePort reads header content.
type HeaderSourcePort interface {
	ReadHeader(path string) ([]byte, error)
}
