package events

import (
	"context"
	"time"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/cache"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/config"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/errors"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/telemetry"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("jobmarket/events")

// ReloadSubject carries cache-invalidation broadcasts between
// dashboard instances.
const ReloadSubject = "datasets.reload"

// Bus wraps the NATS connection used for reload fan-out. A nil Bus is
// valid and means eventing is disabled (no NATS_URL configured);
// publishing through it is a no-op.
type Bus struct {
	nc     *nats.Conn
	logger *zap.Logger
}

func Connect(cfg *config.Config, logger *zap.Logger) (*Bus, error) {
	if cfg.NATSURL == "" {
		logger.Info("NATS not configured, reload fan-out disabled")
		return nil, nil
	}

	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("jobmarket-dashboard"),
		nats.RetryOnFailedConnect(true),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}
	nc, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, errors.Unavailable("connecting to NATS", err)
	}

	return &Bus{nc: nc, logger: logger}, nil
}

// PublishReload asks every subscribed instance to drop its memoized
// datasets and response cache.
func (b *Bus) PublishReload(ctx context.Context) error {
	if b == nil {
		return nil
	}

	_, span := tracer.Start(ctx, "PublishReload")
	defer span.End()
	span.SetAttributes(telemetry.String("nats.subject", ReloadSubject))

	if err := b.nc.Publish(ReloadSubject, nil); err != nil {
		span.RecordError(err)
		return errors.Internal("publishing reload event", err)
	}

	b.logger.Debug("published reload event", zap.String("subject", ReloadSubject))
	return nil
}

func (b *Bus) Close() {
	if b != nil && b.nc != nil {
		b.nc.Close()
	}
}

// Handler invalidates local state when a reload broadcast arrives.
type Handler struct {
	logger *zap.Logger
	bus    *Bus
	store  *dataset.Store
	cache  cache.Cache
	sub    *nats.Subscription
}

func NewHandler(logger *zap.Logger, bus *Bus, store *dataset.Store, c cache.Cache) *Handler {
	return &Handler{
		logger: logger,
		bus:    bus,
		store:  store,
		cache:  c,
	}
}

// RegisterSubscriptions subscribes to the reload subject for the life
// of the fx app. Every instance receives the broadcast, so this is a
// plain subscription rather than a queue group.
func (h *Handler) RegisterSubscriptions(lc fx.Lifecycle) error {
	if h.bus == nil {
		return nil
	}

	sub, err := h.bus.nc.Subscribe(ReloadSubject, h.handleReload)
	if err != nil {
		return errors.Internal("subscribing to reload subject", err)
	}
	h.sub = sub
	h.logger.Info("registered NATS subscriptions", zap.String("subject", ReloadSubject))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return h.sub.Unsubscribe()
		},
	})
	return nil
}

func (h *Handler) handleReload(msg *nats.Msg) {
	ctx, span := tracer.Start(context.Background(), "handleReload")
	defer span.End()

	h.store.Invalidate()
	if err := h.cache.Clear(ctx); err != nil {
		span.RecordError(err)
		h.logger.Warn("failed to clear response cache on reload", zap.Error(err))
	}
	h.logger.Info("datasets invalidated via reload event", zap.String("subject", msg.Subject))
}
