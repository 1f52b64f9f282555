package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/medeiros-dev/notify-gateway/internal/domain"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/directory"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/push"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/social"
	"github.com/medeiros-dev/notify-gateway/internal/domain/port/store"
	"github.com/medeiros-dev/notify-gateway/internal/observability/metrics"
	"github.com/medeiros-dev/notify-gateway/internal/observability/tracing"
	"github.com/medeiros-dev/notify-gateway/pkg/logger"
	"go.uber.org/zap"
)

// UseCase is the notification fan-out engine: recipient resolution, mute
// filtering, payload construction, concurrent dispatch and dual-channel
// persistence.
type UseCase interface {
	// Direct relays an operator-supplied alert to one recipient.
	Direct(ctx context.Context, ev domain.DirectSend) (DirectOutputDTO, error)
	// Message fans a chat message out to every conversation member except
	// the sender, honoring per-member mutes on the push channel only.
	Message(ctx context.Context, ev domain.NewMessage) (MessageOutputDTO, error)
	// Broadcast fans a new post out to the author's followers.
	Broadcast(ctx context.Context, ev domain.NewPost) (BroadcastOutputDTO, error)
	// Single handles the one-recipient social events, short-circuiting
	// self-actions before any collaborator is touched.
	Single(ctx context.Context, ev domain.Event) (SingleOutputDTO, error)
}

type notifyUseCase struct {
	directory directory.Directory
	push      push.Sender
	store     store.RecordStore
	social    social.Graph
	newID     func() string
}

func NewUseCase(dir directory.Directory, sender push.Sender, recordStore store.RecordStore, graph social.Graph) UseCase {
	return &notifyUseCase{
		directory: dir,
		push:      sender,
		store:     recordStore,
		social:    graph,
		newID:     uuid.NewString,
	}
}

func (u *notifyUseCase) Direct(ctx context.Context, ev domain.DirectSend) (DirectOutputDTO, error) {
	ctx, span := tracing.Tracer.Start(ctx, "NotifyUseCase.Direct")
	defer span.End()

	messageID, err := u.notifyOne(ctx, ev, ev.RecipientID)
	if err != nil {
		return DirectOutputDTO{}, err
	}
	return DirectOutputDTO{Success: true, MessageID: messageID, RecipientID: ev.RecipientID}, nil
}

func (u *notifyUseCase) Message(ctx context.Context, ev domain.NewMessage) (MessageOutputDTO, error) {
	ctx, span := tracing.Tracer.Start(ctx, "NotifyUseCase.Message")
	defer span.End()

	conv, err := u.social.Conversation(ctx, ev.ChatID)
	if err != nil {
		return MessageOutputDTO{}, fmt.Errorf("resolving conversation %s: %w", ev.ChatID, err)
	}

	recipients := exclude(conv.Members, ev.SenderID)

	// The split invariant of the message path: muted members stay in the
	// persistence subset and leave the push-eligible subset.
	pushEligible := make([]string, 0, len(recipients))
	mutedCount := 0
	for _, id := range recipients {
		if conv.Muted[id] {
			mutedCount++
			metrics.MutedSkippedTotal.Inc()
			continue
		}
		pushEligible = append(pushEligible, id)
	}

	msg := BuildMessage(ev)

	// Dispatch and persistence share the resolved recipient set but run
	// independently: neither failure blocks the other.
	var (
		batch BatchResult
		saved int
		wg    sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		tokens := u.resolveTokens(ctx, pushEligible)
		batch = u.dispatch(ctx, ev.Kind(), msg, tokens)
	}()
	go func() {
		defer wg.Done()
		saved = u.persistAll(ctx, ev.Kind(), msg, recipients)
	}()
	wg.Wait()

	logger.L().Info("Message notification fan-out complete",
		zap.String("chatId", ev.ChatID),
		zap.Int("sent", batch.Sent),
		zap.Int("total", batch.Total),
		zap.Int("saved", saved),
		zap.Int("mutedCount", mutedCount),
		zap.String("traceID", logger.TraceIDFromContext(ctx)),
	)

	return MessageOutputDTO{
		Success:    true,
		Sent:       batch.Sent,
		Total:      batch.Total,
		Saved:      saved,
		MutedCount: mutedCount,
	}, nil
}

func (u *notifyUseCase) Broadcast(ctx context.Context, ev domain.NewPost) (BroadcastOutputDTO, error) {
	ctx, span := tracing.Tracer.Start(ctx, "NotifyUseCase.Broadcast")
	defer span.End()

	followers, err := u.social.Followers(ctx, ev.UserID)
	if err != nil {
		return BroadcastOutputDTO{}, fmt.Errorf("resolving followers of %s: %w", ev.UserID, err)
	}

	recipients := exclude(followers, ev.UserID)
	if len(recipients) == 0 {
		return BroadcastOutputDTO{Success: true}, nil
	}

	msg := BuildMessage(ev)

	var (
		batch BatchResult
		wg    sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		tokens := u.resolveTokens(ctx, recipients)
		batch = u.dispatch(ctx, ev.Kind(), msg, tokens)
	}()
	go func() {
		defer wg.Done()
		u.persistAll(ctx, ev.Kind(), msg, recipients)
	}()
	wg.Wait()

	return BroadcastOutputDTO{Success: true, Sent: batch.Sent, Total: batch.Total}, nil
}

func (u *notifyUseCase) Single(ctx context.Context, ev domain.Event) (SingleOutputDTO, error) {
	ctx, span := tracing.Tracer.Start(ctx, "NotifyUseCase.Single")
	defer span.End()

	target, actor := singleTarget(ev)
	if actor != "" && actor == target {
		// Self-action: nothing to notify, no collaborator calls.
		return SingleOutputDTO{ShortCircuited: true}, nil
	}

	messageID, err := u.notifyOne(ctx, ev, target)
	if err != nil {
		return SingleOutputDTO{}, err
	}
	return SingleOutputDTO{MessageID: messageID}, nil
}

// notifyOne runs the single-recipient path: resolve, persist the durable
// record, then push. The record is written once the recipient is known to
// exist, regardless of token presence or push outcome.
func (u *notifyUseCase) notifyOne(ctx context.Context, ev domain.Event, recipientID string) (string, error) {
	entry, err := u.directory.Resolve(ctx, recipientID)
	if err != nil {
		return "", fmt.Errorf("resolving recipient %s: %w", recipientID, err)
	}
	if !entry.Exists {
		return "", fmt.Errorf("recipient %s: %w", recipientID, domain.ErrNotFound)
	}

	msg := BuildMessage(ev)
	u.persistAll(ctx, ev.Kind(), msg, []string{recipientID})

	if entry.Token == "" {
		return "", domain.ErrNoDeliveryAddress
	}

	messageID, err := u.push.Send(ctx, msg, entry.Token)
	if err != nil {
		// Provider failures are counted, not propagated.
		metrics.PushesTotal.WithLabelValues(string(ev.Kind()), "error").Inc()
		logger.L().Warn("Push delivery failed",
			zap.String("recipientId", recipientID),
			zap.String("eventType", string(ev.Kind())),
			zap.String("traceID", logger.TraceIDFromContext(ctx)),
			zap.Error(err),
		)
		return "", nil
	}
	metrics.PushesTotal.WithLabelValues(string(ev.Kind()), "success").Inc()
	return messageID, nil
}

// singleTarget maps a single-recipient event to its recipient and, for
// events where a self-action is possible, the acting identity.
func singleTarget(ev domain.Event) (target, actor string) {
	switch e := ev.(type) {
	case domain.DirectSend:
		return e.RecipientID, ""
	case domain.FriendRequest:
		return e.RecipientID, ""
	case domain.FriendAccept:
		return e.RecipientID, ""
	case domain.GroupInvite:
		return e.RecipientID, ""
	case domain.PostComment:
		return e.OwnerID, e.ActorID
	case domain.PostReaction:
		return e.OwnerID, e.ActorID
	case domain.PostShare:
		return e.OwnerID, e.ActorID
	case domain.CommentReply:
		return e.OwnerID, e.ActorID
	case domain.CommentLike:
		return e.OwnerID, e.ActorID
	case domain.Mention:
		return e.RecipientID, e.MentionerID
	default:
		return "", ""
	}
}

func exclude(ids []string, excluded string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != excluded {
			out = append(out, id)
		}
	}
	return out
}
