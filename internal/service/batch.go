package service

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kochabx/eckit/core/crypto/ecc"
	"github.com/kochabx/eckit/errors"
	"github.com/kochabx/eckit/transport/http"
)

// VerifyBatch godoc
//
//	@Summary		Verify many ECDSA signatures
//	@Description	Items are checked on a bounded worker pool; results keep the request order
//	@Tags			ecc
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BatchVerifyRequest	true	"items to verify"
//	@Success		200		{object}	http.Response[BatchVerifyResponse]
//	@Failure		400		{object}	http.Response[any]
//	@Router			/v1/verify/batch [post]
func (s *Service) VerifyBatch(c *gin.Context) {
	var req BatchVerifyRequest
	if !bind(c, &req) {
		return
	}
	if len(req.Items) > s.maxItems {
		http.GinError(c, errors.BadRequest("batch holds %d items, limit is %d", len(req.Items), s.maxItems).
			WithReason(ReasonTooManyItems))
		return
	}

	start := time.Now()
	results, err := s.verifyAll(c.Request.Context(), req.Items)
	if err != nil {
		s.fail(c, "verify_batch", ecc.None, start, err)
		return
	}
	s.metrics.ObserveOperation("verify_batch", "mixed", start, nil)

	resp := BatchVerifyResponse{Total: len(results), Results: results}
	for _, r := range results {
		if r.Valid {
			resp.Valid++
		}
	}
	http.GinJSON(c, resp)
}

// verifyAll 在协程池上逐条验签, ctx 取消后不再提交新任务
func (s *Service) verifyAll(ctx context.Context, items []VerifyRequest) ([]BatchVerifyResult, error) {
	results := make([]BatchVerifyResult, len(items))

	var wg sync.WaitGroup
	for i := range items {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, errors.RequestTimeout("batch verify canceled").WithCause(err)
		}

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			results[i] = s.verifyOne(items[i])
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, errors.ServiceUnavailable("batch verify pool: %v", err).WithCause(err)
		}
	}
	wg.Wait()

	return results, nil
}

func (s *Service) verifyOne(req VerifyRequest) BatchVerifyResult {
	item, curve, err := batchItem(req)
	if err == nil {
		res := ecc.VerifyItem(item)
		if res.Err == nil {
			s.metrics.CountOperation("verify", curve.String(), validLabel(res.Valid))
			return BatchVerifyResult{Valid: res.Valid}
		}
		err = res.Err
	}

	s.metrics.CountOperation("verify", curve.String(), "error")
	e := errors.FromError(err)
	return BatchVerifyResult{Reason: e.Reason, Error: e.Message}
}
