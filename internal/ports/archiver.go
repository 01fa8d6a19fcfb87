package ports

import "context"

// ArchiverPort creates output from the concatenated membership of inputs,
// in input order.
type ArchiverPort interface {
	Merge(ctx context.Context, output string, inputs []string) error
}
