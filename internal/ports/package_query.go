package ports

import "context"

// PackageQueryPort answers pkg-config style questions about a package.
type PackageQueryPort interface {
	CompilerFlags(ctx context.Context, pkg string) ([]string, error)
	StaticLinkFlags(ctx context.Context, pkg string) ([]string, error)
	ModVersion(ctx context.Context, pkg string) (string, error)
}
