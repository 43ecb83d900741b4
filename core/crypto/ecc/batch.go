package ecc

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchItem is one signature to check in VerifyBatch.
type BatchItem struct {
	PublicKey []byte // encoded public key; the curve is detected from it
	Hash      []byte
	Signature []byte // raw r || s
}

// BatchResult is the outcome of one BatchItem. Err is set for malformed
// input; a well-formed but wrong signature has Valid false and no Err.
type BatchResult struct {
	Valid bool
	Err   error
}

// VerifyBatch checks items concurrently. Results are positional. The only
// error returned is the context's, when it is cancelled before all items
// have been checked.
func VerifyBatch(ctx context.Context, items []BatchItem) ([]BatchResult, error) {
	results := make([]BatchResult, len(items))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i := range items {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = VerifyItem(items[i])
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// VerifyItem checks a single BatchItem.
func VerifyItem(item BatchItem) BatchResult {
	id, err := detectPublicKey(item.PublicKey)
	if err != nil {
		return BatchResult{Err: err}
	}

	x, err := New(id)
	if err != nil {
		return BatchResult{Err: err}
	}
	if err := x.SetPublicKey(item.PublicKey); err != nil {
		return BatchResult{Err: err}
	}

	ok, err := x.VerifyBytes(item.Signature, item.Hash)
	return BatchResult{Valid: ok, Err: err}
}
