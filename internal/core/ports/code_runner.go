package ports

import (
	"context"
	"time"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
)

// CodeRunner executes a user-authored script against an input path set in
// an isolated scope. Implementations must enforce the timeout, convert
// panics into errors, and treat malformed return values as an empty path
// set plus an error. A runaway script fails its node only, never the
// process.
type CodeRunner interface {
	Run(ctx context.Context, src string, input domain.PathSet, timeout time.Duration) (domain.PathSet, error)
}
