package order

import (
	"context"
	"errors"
	"time"

	"foodcourt-be/internal/cart"
	"foodcourt-be/internal/gateway"
	"foodcourt-be/internal/logger"
	"foodcourt-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultCallTimeout = 10 * time.Second

type Service interface {
	// PlaceOrder turns the cart into an order for customerID. The ordered
	// quantities leave the cart if and only if the order insert succeeds.
	PlaceOrder(ctx context.Context, store *cart.Store, customerID string) Outcome
	Stats() Stats
}

type Stats struct {
	Attempts  uint64            `json:"attempts"`
	Succeeded uint64            `json:"succeeded"`
	Shared    uint64            `json:"shared"`
	Failed    map[string]uint64 `json:"failed"`
}

type Option func(*service)

// WithCallTimeout bounds every individual gateway call.
func WithCallTimeout(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithObserver receives every state an attempt enters.
func WithObserver(fn func(State)) Option {
	return func(s *service) {
		s.observe = fn
	}
}

func withClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

type service struct {
	gw       gateway.Gateway
	timeout  time.Duration
	observe  func(State)
	now      func() time.Time
	inflight singleflight.Group

	attempts  metrics.Counter
	succeeded metrics.Counter
	shared    metrics.Counter
	failed    metrics.LabeledCounter
}

func NewService(gw gateway.Gateway, opts ...Option) Service {
	s := &service{
		gw:      gw,
		timeout: DefaultCallTimeout,
		observe: func(State) {},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder collapses concurrent calls for the same customer: a caller that
// arrives while an attempt is in flight gets that attempt's outcome. The shared
// attempt ignores cancellation of whichever caller started it. It still honors
// that caller's deadline and the per-call timeout.
func (s *service) PlaceOrder(ctx context.Context, store *cart.Store, customerID string) Outcome {
	v, _, shared := s.inflight.Do(customerID, func() (interface{}, error) {
		actx, cancel := detach(ctx)
		defer cancel()
		return s.placeOrder(actx, store, customerID), nil
	})

	out := v.(Outcome)
	out.Shared = shared
	if shared {
		s.shared.Inc()
	}
	return out
}

// detach keeps the values and deadline of ctx but not its cancellation.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	out := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(out, deadline)
	}
	return out, func() {}
}

func (s *service) Stats() Stats {
	failed := make(map[string]uint64)
	for _, label := range s.failed.Labels() {
		failed[label] = s.failed.Load(label)
	}
	return Stats{
		Attempts:  s.attempts.Load(),
		Succeeded: s.succeeded.Load(),
		Shared:    s.shared.Load(),
		Failed:    failed,
	}
}

// attempt carries data between the steps of one checkout.
type attempt struct {
	customerID string
	items      []cart.LineItem
	vendor     Vendor
	profile    Profile
	order      *Order
}

type step struct {
	state State
	run   func(ctx context.Context, a *attempt) *failure
}

func (s *service) steps() []step {
	return []step{
		{StateValidating, s.validate},
		{StateResolvingVendor, s.resolveVendor},
		{StateResolvingProfile, s.resolveProfile},
		{StateSubmitting, s.submit},
	}
}

func (s *service) placeOrder(ctx context.Context, store *cart.Store, customerID string) Outcome {
	log := logger.For(ctx, "service", "PlaceOrder").With(zap.String("customer_id", customerID))
	timer := metrics.StartTimer()
	s.attempts.Inc()

	a := &attempt{
		customerID: customerID,
		items:      store.Items(),
	}

	for _, st := range s.steps() {
		s.enter(log, st.state)

		if f := st.run(ctx, a); f != nil {
			s.enter(log, StateFailed)
			s.failed.Inc(string(f.kind))

			log.Warn("checkout failed",
				zap.String("state", st.state.String()),
				zap.String("kind", string(f.kind)),
				zap.String("reason", f.message),
				zap.Error(f.err),
				zap.Duration("duration", timer.Duration()),
			)

			s.enter(log, StateIdle)
			return f.outcome()
		}
	}

	store.RemoveOrdered(a.items)
	s.enter(log, StateSucceeded)
	s.succeeded.Inc()

	log.Info("order placed",
		zap.String("order_id", a.order.ID),
		zap.String("vendor_id", a.order.VendorID),
		zap.String("total_price", a.order.TotalPrice.String()),
		zap.Int("item_count", len(a.order.Items)),
		zap.Duration("duration", timer.Duration()),
	)

	return Outcome{
		Success: true,
		Message: MsgOrderPlaced,
		OrderID: a.order.ID,
	}
}

func (s *service) enter(log *zap.Logger, st State) {
	log.Debug("checkout state", zap.String("state", st.String()))
	s.observe(st)
}

// validate runs the local checks. It never touches the gateway.
func (s *service) validate(_ context.Context, a *attempt) *failure {
	if len(a.items) == 0 {
		return fail(KindEmptyCart, MsgEmptyCart)
	}

	if !ValidCustomerID(a.customerID) {
		return fail(KindInvalidIdentifier, MsgInvalidID)
	}

	if len(cart.VendorIDs(a.items)) > 1 {
		return fail(KindMixedVendor, MsgMixedVendor)
	}

	return nil
}

func (s *service) resolveVendor(ctx context.Context, a *attempt) *failure {
	vendorID := a.items[0].VendorID

	rec, err := s.call(ctx, func(ctx context.Context) (gateway.Record, error) {
		return s.gw.SelectOne(ctx, tableVendors, gateway.Eq("id", vendorID))
	})
	if err != nil {
		return gatewayFailure(StateResolvingVendor, err)
	}
	if rec == nil {
		return vendorNotFound(vendorID)
	}

	v := vendorFromRecord(rec)
	if !v.Active() {
		return vendorInactive(v)
	}

	a.vendor = v
	return nil
}

func (s *service) resolveProfile(ctx context.Context, a *attempt) *failure {
	rec, err := s.call(ctx, func(ctx context.Context) (gateway.Record, error) {
		return s.gw.SelectOne(ctx, tableProfiles, gateway.Eq("id", a.customerID))
	})
	if err != nil {
		return gatewayFailure(StateResolvingProfile, err)
	}
	if rec == nil {
		return fail(KindProfileMissing, MsgProfileNotFound)
	}

	p := profileFromRecord(rec)
	if missing := p.MissingFields(); len(missing) > 0 {
		return profileIncomplete(missing)
	}

	a.profile = p
	return nil
}

func (s *service) submit(ctx context.Context, a *attempt) *failure {
	o := &Order{
		ID:              uuid.New().String(),
		CustomerID:      a.customerID,
		VendorID:        a.vendor.ID,
		Items:           a.items,
		TotalPrice:      cart.Total(a.items),
		Status:          StatusPending,
		CustomerName:    a.profile.FullName,
		CustomerPhone:   a.profile.Phone,
		DeliveryAddress: a.profile.DeliveryAddress,
		DeliveryNotes:   a.profile.DeliveryNotes,
		CreatedAt:       s.now().UTC(),
	}

	rec, err := orderToRecord(o)
	if err != nil {
		f := fail(KindGatewayError, err.Error())
		f.err = err
		return f
	}

	stored, err := s.call(ctx, func(ctx context.Context) (gateway.Record, error) {
		return s.gw.Insert(ctx, tableOrders, rec)
	})
	if err != nil {
		return gatewayFailure(StateSubmitting, err)
	}

	if id := stored.String("id"); id != "" {
		o.ID = id
	}
	a.order = o
	return nil
}

// call runs fn under the per-call timeout. It returns when the deadline
// passes even if fn does not honour its context.
func (s *service) call(
	ctx context.Context,
	fn func(ctx context.Context) (gateway.Record, error),
) (gateway.Record, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		rec gateway.Record
		err error
	}
	done := make(chan result, 1)

	go func() {
		rec, err := fn(cctx)
		done <- result{rec: rec, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(cctx.Err(), context.DeadlineExceeded) {
			return nil, ErrGatewayTimeout
		}
		return r.rec, r.err
	case <-cctx.Done():
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			return nil, ErrGatewayTimeout
		}
		return nil, ErrGatewayCanceled
	}
}
