package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/ministry"
)

// Copy writes every content document found in src to dst and returns the
// names copied. Documents src has never stored are skipped.
func Copy(ctx context.Context, dst, src ministry.DocumentStore) ([]string, error) {
	var copied []string
	for _, name := range ministry.Documents {
		var body json.RawMessage
		if err := src.ReadDocument(ctx, name, &body); ministry.ErrorCode(err) == ministry.ENOTFOUND {
			continue
		} else if err != nil {
			return copied, fmt.Errorf("read %s: %w", name, err)
		}
		if err := dst.WriteDocument(ctx, name, body); err != nil {
			return copied, fmt.Errorf("write %s: %w", name, err)
		}
		copied = append(copied, name)
	}
	return copied, nil
}
