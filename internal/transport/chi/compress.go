package chi

import (
	"fmt"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// CompressMiddleware gzips responses of at least minSize bytes for clients
// that accept gzip.
func CompressMiddleware(minSize int) (func(http.Handler) http.Handler, error) {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(minSize))
	if err != nil {
		return nil, fmt.Errorf("gzip wrapper: %w", err)
	}
	return func(next http.Handler) http.Handler {
		return wrap(next)
	}, nil
}
