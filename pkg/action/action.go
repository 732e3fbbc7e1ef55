// Package action implements the per-verb batch handlers that sit at the
// end of the pipeline: print, exec, delete, download, copy, move, tags,
// lstags, public, restore, and change-storage-class (spec §4.6).
//
// Every handler is built against a Context and returns a pipeline.Action,
// so pipeline.Run can fold batches straight into it while still
// accumulating Stats.
package action

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/3leaps/s3find/pkg/provider"
)

// Context carries the dependencies shared by every handler: the backing
// provider, the source bucket, the region (for public-URL rendering),
// and where status lines are written.
type Context struct {
	Provider provider.Provider
	Bucket   string
	Region   string
	Stdout   io.Writer
	Logger   *zap.Logger
}

// requireCapability type-asserts the Context's Provider to T, returning
// a descriptive error if the provider does not implement it.
func requireCapability[T any](c *Context, name string) (T, error) {
	var zero T
	v, ok := c.Provider.(T)
	if !ok {
		return zero, fmt.Errorf("provider does not support %s", name)
	}
	return v, nil
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout, format, args...)
}
