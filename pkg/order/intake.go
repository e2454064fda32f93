package order

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"foodorder/pkg/logger"
	"foodorder/pkg/otel"
)

// Validate checks that p has line items and a complete customer record.
// It returns p unchanged on success.
func Validate(p *Payload) (Payload, error) {
	if p == nil || len(p.Items) == 0 {
		return Payload{}, ErrMissingItems
	}

	c := p.Customer
	if c == nil ||
		blank(c.Email) || !strings.Contains(c.Email, "@") ||
		blank(c.Name) ||
		blank(c.Street) ||
		blank(c.PostalCode) ||
		blank(c.City) {
		return Payload{}, ErrMissingCustomerFields
	}

	return *p, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Intake validates orders and appends them to a Store. It is the only
// writer of the store; every read-modify-write runs under its lock.
type Intake struct {
	mu     sync.Mutex
	store  Store
	locker Locker
	newID  func() string
	log    *logger.Logger
}

// Option configures an Intake.
type Option func(*Intake)

// WithLocker adds a cross-process lock around each read-modify-write.
func WithLocker(l Locker) Option {
	return func(in *Intake) { in.locker = l }
}

// WithIDFunc replaces the UUID generator.
func WithIDFunc(fn func() string) Option {
	return func(in *Intake) { in.newID = fn }
}

// NewIntake returns an Intake persisting to store.
func NewIntake(store Store, log *logger.Logger, opts ...Option) *Intake {
	in := &Intake{
		store: store,
		log:   log,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Submit validates p and persists it. Invalid payloads never reach the store.
func (in *Intake) Submit(ctx context.Context, p *Payload) (Order, error) {
	valid, err := Validate(p)
	if err != nil {
		in.log.Info(ctx, "order rejected", "reason", err.Error())
		return Order{}, err
	}
	return in.Persist(ctx, valid)
}

// Persist assigns an id to p and appends it to the store.
func (in *Intake) Persist(ctx context.Context, p Payload) (Order, error) {
	ctx, span := otel.AddSpan(ctx, "order.persist")
	defer span.End()

	o := Order{ID: in.newID(), Items: p.Items, Customer: p.Customer, Extra: orderExtra(p.Extra)}
	span.SetAttributes(attribute.String("order.id", o.ID))

	err := in.critical(ctx, func(ctx context.Context) error {
		orders, err := in.store.Load(ctx)
		if err != nil {
			return &StorageError{Op: ReadFailure, Err: err}
		}

		orders = append(orders, o)

		if err := in.store.Save(ctx, orders); err != nil {
			return &StorageError{Op: WriteFailure, Err: err}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist order")
		return Order{}, err
	}

	in.log.Info(ctx, "order created", "id", o.ID, "items", len(o.Items))
	return o, nil
}

// Orders returns the stored orders in insertion order.
func (in *Intake) Orders(ctx context.Context) ([]Order, error) {
	ctx, span := otel.AddSpan(ctx, "order.list")
	defer span.End()

	var orders []Order
	err := in.critical(ctx, func(ctx context.Context) error {
		var err error
		orders, err = in.store.Load(ctx)
		if err != nil {
			return &StorageError{Op: ReadFailure, Err: err}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list orders")
		return nil, err
	}
	return orders, nil
}

func (in *Intake) critical(ctx context.Context, fn func(context.Context) error) error {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.locker != nil {
		unlock, lerr := in.locker.Lock(ctx)
		if lerr != nil {
			return &StorageError{Op: ReadFailure, Err: lerr}
		}
		defer func() {
			// fn has already run; a lost lock means another writer may
			// have overlapped it.
			if uerr := unlock(context.WithoutCancel(ctx)); uerr != nil {
				in.log.Error(ctx, "release order store lock", "error", uerr)
			}
		}()
	}

	return fn(ctx)
}
