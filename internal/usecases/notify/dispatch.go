package notify

import (
	"context"
	"sync"
	"time"

	"github.com/medeiros-dev/notify-gateway/internal/domain"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/push"
	"github.com/medeiros-dev/notify-gateway/internal/observability/metrics"
	"github.com/medeiros-dev/notify-gateway/pkg/logger"
	"go.uber.org/zap"
)

// sendOutcome is the per-token result of one delivery attempt. A failed
// delivery is an outcome, never an error that could abort siblings.
type sendOutcome struct {
	Token     string
	MessageID string
	Err       error
}

// BatchResult aggregates a dispatch batch. Sent <= Total always holds;
// Total is the number of tokens attempted.
type BatchResult struct {
	Sent  int
	Total int
}

// dispatch sends msg to every token concurrently and joins all outcomes
// before returning. Individual provider failures are logged and counted;
// they are never retried and never surfaced past the aggregate.
func (u *notifyUseCase) dispatch(ctx context.Context, kind domain.EventKind, msg push.Message, tokens []string) BatchResult {
	if len(tokens) == 0 {
		return BatchResult{}
	}

	start := time.Now()
	outcomes := make([]sendOutcome, len(tokens))

	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			id, err := u.push.Send(ctx, msg, token)
			outcomes[i] = sendOutcome{Token: token, MessageID: id, Err: err}
		}(i, token)
	}
	wg.Wait()
	metrics.ObserveDispatchDuration(string(kind), start)

	result := BatchResult{Total: len(tokens)}
	for _, out := range outcomes {
		if out.Err != nil {
			metrics.PushesTotal.WithLabelValues(string(kind), "error").Inc()
			logger.L().Warn("Push delivery failed",
				zap.String("eventType", string(kind)),
				zap.String("traceID", logger.TraceIDFromContext(ctx)),
				zap.Error(out.Err),
			)
			continue
		}
		metrics.PushesTotal.WithLabelValues(string(kind), "success").Inc()
		result.Sent++
	}
	return result
}

// resolveTokens looks up delivery addresses for a batch of recipients
// concurrently. "Known but no address" is a silent skip; "unknown identity"
// is a data-consistency problem that is logged and skipped so the rest of
// the batch proceeds.
func (u *notifyUseCase) resolveTokens(ctx context.Context, recipients []string) []string {
	if len(recipients) == 0 {
		return nil
	}

	type lookup struct {
		token string
		ok    bool
	}
	results := make([]lookup, len(recipients))

	var wg sync.WaitGroup
	for i, id := range recipients {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			entry, err := u.directory.Resolve(ctx, id)
			if err != nil {
				logger.L().Error("Directory lookup failed",
					zap.String("recipientId", id),
					zap.String("traceID", logger.TraceIDFromContext(ctx)),
					zap.Error(err),
				)
				return
			}
			if !entry.Exists {
				logger.L().Error("Recipient missing from directory",
					zap.String("recipientId", id),
					zap.String("traceID", logger.TraceIDFromContext(ctx)),
				)
				return
			}
			if entry.Token == "" {
				return
			}
			results[i] = lookup{token: entry.Token, ok: true}
		}(i, id)
	}
	wg.Wait()

	tokens := make([]string, 0, len(recipients))
	for _, r := range results {
		if r.ok {
			tokens = append(tokens, r.token)
		}
	}
	return tokens
}

// persistAll writes one record per recipient concurrently and returns how
// many writes succeeded. A failed write is logged and skipped; it never
// aborts sibling writes and never fails the request.
func (u *notifyUseCase) persistAll(ctx context.Context, kind domain.EventKind, msg push.Message, recipients []string) int {
	if len(recipients) == 0 {
		return 0
	}

	saved := make([]bool, len(recipients))

	var wg sync.WaitGroup
	for i, id := range recipients {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			record := domain.Record{
				ID:          u.newID(),
				RecipientID: id,
				Type:        kind,
				Title:       msg.Title,
				Body:        msg.Body,
				Data:        msg.Data,
				Read:        false,
				CreatedAt:   time.Now().UTC(),
			}
			if _, err := u.store.Append(ctx, record); err != nil {
				metrics.RecordsPersistedTotal.WithLabelValues("error").Inc()
				logger.L().Warn("Notification record write failed",
					zap.String("recipientId", id),
					zap.String("eventType", string(kind)),
					zap.String("traceID", logger.TraceIDFromContext(ctx)),
					zap.Error(err),
				)
				return
			}
			metrics.RecordsPersistedTotal.WithLabelValues("success").Inc()
			saved[i] = true
		}(i, id)
	}
	wg.Wait()

	count := 0
	for _, ok := range saved {
		if ok {
			count++
		}
	}
	return count
}
