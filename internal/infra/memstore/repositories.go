package memstore

import (
	"bytes"
	"cmp"
	"context"
	"slices"

	"ticketing-engine/internal/domain/activity"
	"ticketing-engine/internal/domain/order"
	"ticketing-engine/internal/domain/refund"
	"ticketing-engine/internal/domain/timeslot"
	"ticketing-engine/internal/infra"
	"ticketing-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

type activityRepo struct{ tx *memTx }

func (r activityRepo) Create(_ context.Context, a *activity.Activity) error {
	if err := r.tx.writable("activity"); err != nil {
		return err
	}
	if r.tx.activities.has(a.ID()) {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindDuplicateKey, "activity already exists", nil)
	}
	r.tx.activities.put(a.ID(), a)
	return nil
}

func (r activityRepo) Update(_ context.Context, a *activity.Activity) error {
	if err := r.tx.writable("activity"); err != nil {
		return err
	}
	if !r.tx.activities.has(a.ID()) {
		return r.tx.notFound("activity")
	}
	r.tx.activities.put(a.ID(), a)
	return nil
}

func (r activityRepo) FindByID(_ context.Context, id uuid.UUID) (*activity.Activity, error) {
	a, ok := r.tx.activities.get(id)
	if !ok {
		return nil, r.tx.notFound("activity")
	}
	return a, nil
}

func (r activityRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	return r.FindByID(ctx, id)
}

func (r activityRepo) List(_ context.Context, filter shared.ActivityFilter) ([]*activity.Activity, error) {
	all := r.tx.activities.all()
	out := all[:0]
	for _, a := range all {
		if filter.Status != nil && a.Status() != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *activity.Activity) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return compareIDs(a.ID(), b.ID())
	})
	return page(out, filter.Limit, filter.Offset), nil
}

type timeslotRepo struct{ tx *memTx }

func (r timeslotRepo) Create(_ context.Context, ts *timeslot.Timeslot) error {
	if err := r.tx.writable("timeslot"); err != nil {
		return err
	}
	if !r.tx.activities.has(ts.ActivityID()) {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindForeignKeyViolated, "timeslot references unknown activity", nil)
	}
	if r.tx.timeslots.has(ts.ID()) {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindDuplicateKey, "timeslot already exists", nil)
	}
	r.tx.timeslots.put(ts.ID(), ts)
	return nil
}

func (r timeslotRepo) Update(_ context.Context, ts *timeslot.Timeslot) error {
	if err := r.tx.writable("timeslot"); err != nil {
		return err
	}
	if !r.tx.timeslots.has(ts.ID()) {
		return r.tx.notFound("timeslot")
	}
	r.tx.timeslots.put(ts.ID(), ts)
	return nil
}

func (r timeslotRepo) FindByID(_ context.Context, id uuid.UUID) (*timeslot.Timeslot, error) {
	ts, ok := r.tx.timeslots.get(id)
	if !ok {
		return nil, r.tx.notFound("timeslot")
	}
	return ts, nil
}

func (r timeslotRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*timeslot.Timeslot, error) {
	return r.FindByID(ctx, id)
}

func (r timeslotRepo) ListByActivity(_ context.Context, activityID uuid.UUID) ([]*timeslot.Timeslot, error) {
	var out []*timeslot.Timeslot
	for _, ts := range r.tx.timeslots.all() {
		if ts.BelongsTo(activityID) {
			out = append(out, ts)
		}
	}
	slices.SortFunc(out, func(a, b *timeslot.Timeslot) int {
		if c := a.Window().Start().Compare(b.Window().Start()); c != 0 {
			return c
		}
		return compareIDs(a.ID(), b.ID())
	})
	return out, nil
}

type seatRepo struct{ tx *memTx }

func (r seatRepo) CreateBatch(_ context.Context, seats []*timeslot.Seat) error {
	if err := r.tx.writable("seats"); err != nil {
		return err
	}
	type key struct {
		timeslotID uuid.UUID
		pos        timeslot.Position
	}
	taken := map[key]struct{}{}
	for _, s := range r.tx.seats.all() {
		taken[key{s.TimeslotID(), s.Position()}] = struct{}{}
	}
	for _, s := range seats {
		if !r.tx.timeslots.has(s.TimeslotID()) {
			return infra.WrapRepoErr(r.tx.store.logger, infra.KindForeignKeyViolated, "seat references unknown timeslot", nil)
		}
		k := key{s.TimeslotID(), s.Position()}
		if _, dup := taken[k]; dup || r.tx.seats.has(s.ID()) {
			return infra.WrapRepoErr(r.tx.store.logger, infra.KindDuplicateKey, "seat already exists", nil)
		}
		taken[k] = struct{}{}
	}
	for _, s := range seats {
		r.tx.seats.put(s.ID(), s)
	}
	return nil
}

func (r seatRepo) UpdateStatuses(_ context.Context, seats []*timeslot.Seat) error {
	if err := r.tx.writable("seats"); err != nil {
		return err
	}
	for _, s := range seats {
		if !r.tx.seats.has(s.ID()) {
			return r.tx.notFound("seat")
		}
	}
	for _, s := range seats {
		r.tx.seats.put(s.ID(), s)
	}
	return nil
}

func (r seatRepo) FindForUpdate(_ context.Context, timeslotID uuid.UUID, ids []uuid.UUID) ([]*timeslot.Seat, error) {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, compareIDs)
	sorted = slices.Compact(sorted)

	out := make([]*timeslot.Seat, 0, len(sorted))
	for _, id := range sorted {
		s, ok := r.tx.seats.get(id)
		if !ok || s.TimeslotID() != timeslotID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r seatRepo) ListByTimeslot(_ context.Context, timeslotID uuid.UUID) ([]*timeslot.Seat, error) {
	var out []*timeslot.Seat
	for _, s := range r.tx.seats.all() {
		if s.TimeslotID() == timeslotID {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b *timeslot.Seat) int {
		pa, pb := a.Position(), b.Position()
		return cmp.Or(
			cmp.Compare(pa.Area, pb.Area),
			cmp.Compare(pa.Row, pb.Row),
			cmp.Compare(pa.Number, pb.Number),
		)
	})
	return out, nil
}

type orderRepo struct{ tx *memTx }

func (r orderRepo) Create(_ context.Context, o *order.Order) error {
	if err := r.tx.writable("order"); err != nil {
		return err
	}
	if !r.tx.timeslots.has(o.TimeslotID()) || !r.tx.activities.has(o.ActivityID()) {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindForeignKeyViolated, "order references unknown activity or timeslot", nil)
	}
	if r.tx.orders.has(o.ID()) {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindDuplicateKey, "order already exists", nil)
	}
	r.tx.orders.put(o.ID(), o)
	return nil
}

func (r orderRepo) Update(_ context.Context, o *order.Order) error {
	if err := r.tx.writable("order"); err != nil {
		return err
	}
	if !r.tx.orders.has(o.ID()) {
		return r.tx.notFound("order")
	}
	r.tx.orders.put(o.ID(), o)
	return nil
}

func (r orderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.tx.orders.get(id)
	if !ok {
		return nil, r.tx.notFound("order")
	}
	return o, nil
}

func (r orderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.FindByID(ctx, id)
}

type refundRepo struct{ tx *memTx }

func (r refundRepo) Create(_ context.Context, rf *refund.Refund) error {
	if err := r.tx.writable("refund"); err != nil {
		return err
	}
	if !r.tx.orders.has(rf.OrderID()) {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindForeignKeyViolated, "refund references unknown order", nil)
	}
	if r.tx.refunds.has(rf.ID()) {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindDuplicateKey, "refund already exists", nil)
	}
	r.tx.refunds.put(rf.ID(), rf)
	return nil
}

func (r refundRepo) Update(_ context.Context, rf *refund.Refund) error {
	if err := r.tx.writable("refund"); err != nil {
		return err
	}
	if !r.tx.refunds.has(rf.ID()) {
		return r.tx.notFound("refund")
	}
	r.tx.refunds.put(rf.ID(), rf)
	return nil
}

func (r refundRepo) FindByID(_ context.Context, id uuid.UUID) (*refund.Refund, error) {
	rf, ok := r.tx.refunds.get(id)
	if !ok {
		return nil, r.tx.notFound("refund")
	}
	return rf, nil
}

func (r refundRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*refund.Refund, error) {
	return r.FindByID(ctx, id)
}

func (r refundRepo) List(_ context.Context, filter shared.RefundFilter) ([]*refund.Refund, error) {
	var out []*refund.Refund
	for _, rf := range r.tx.refunds.all() {
		if filter.OrderID != nil && rf.OrderID() != *filter.OrderID {
			continue
		}
		if filter.Status != nil && rf.Status() != *filter.Status {
			continue
		}
		out = append(out, rf)
	}
	slices.SortFunc(out, func(a, b *refund.Refund) int {
		if c := a.RequestedAt().Compare(b.RequestedAt()); c != 0 {
			return c
		}
		return compareIDs(a.ID(), b.ID())
	})
	return page(out, filter.Limit, filter.Offset), nil
}
