package errs

// Kind is a business or infrastructure failure category with a stable code.
// Kinds are sentinels: compare with Is, or resolve an arbitrary error with KindOf.
type Kind struct {
	code    string
	message string
}

func newKind(code, message string) *Kind {
	k := &Kind{code: code, message: message}
	registry = append(registry, k)
	return k
}

func (k *Kind) Error() string   { return k.message }
func (k *Kind) Code() string    { return k.code }
func (k *Kind) Message() string { return k.message }

var registry []*Kind

var (
	// Inventory
	ErrActivityUnavailable   = newKind("ActivityUnavailable", "activity is not available for ordering")
	ErrTimeslotUnavailable   = newKind("TimeslotUnavailable", "timeslot is not available for ordering")
	ErrTimeslotMismatch      = newKind("TimeslotMismatch", "items must reference the order timeslot")
	ErrNoCapacityModel       = newKind("NoCapacityModel", "timeslot has no capacity for non-seat orders")
	ErrCapacityExceeded      = newKind("CapacityExceeded", "not enough remaining capacity")
	ErrSeatUnavailable       = newKind("SeatUnavailable", "some seats are not available")
	ErrSeatNotFound          = newKind("SeatNotFound", "some seats were not found")
	ErrInvalidSeatQuantity   = newKind("InvalidSeatQuantity", "seat-based items must have quantity 1")
	ErrInvalidSeatTransition = newKind("InvalidSeatTransition", "seat cannot move to the requested status")
	ErrInvalidTimeWindow     = newKind("InvalidTimeWindow", "start time must be before end time")
	ErrInvalidActivityState  = newKind("InvalidActivityState", "activity cannot move to the requested status")

	// Orders and refunds
	ErrEmptyOrder         = newKind("EmptyOrder", "order must contain at least one item")
	ErrInvalidOrderState  = newKind("InvalidOrderState", "order status does not allow this operation")
	ErrInvalidAmount      = newKind("InvalidAmount", "amount is out of the allowed range")
	ErrRefundExceedsTotal = newKind("RefundExceedsTotal", "refunded amount would exceed the order total")
	ErrInvalidRefundState = newKind("InvalidRefundState", "refund status does not allow this operation")
	ErrInvalidQuantity    = newKind("InvalidQuantity", "quantity must be positive")
	ErrInvalidUnitPrice   = newKind("InvalidUnitPrice", "unit price cannot be negative")

	// Lookups
	ErrActivityNotFound = newKind("ActivityNotFound", "activity not found")
	ErrTimeslotNotFound = newKind("TimeslotNotFound", "timeslot not found")
	ErrOrderNotFound    = newKind("OrderNotFound", "order not found")
	ErrRefundNotFound   = newKind("RefundNotFound", "refund not found")

	// ErrValidation groups field-level validation failures; the wrapped message is the detail.
	ErrValidation = newKind("ValidationFailed", "request failed validation")

	// ErrNotFound is the storage-level miss; usecases translate it into a specific kind.
	ErrNotFound = newKind("NotFound", "entity not found")
	// ErrTransient marks storage faults the caller may retry.
	ErrTransient = newKind("Transient", "temporary storage failure, retry later")
)

// Validation creates a sentinel error classified as ErrValidation.
func Validation(msg string) error {
	return Mark(New(msg), ErrValidation)
}

// KindOf returns the first registered kind found in err's chain.
func KindOf(err error) (*Kind, bool) {
	if err == nil {
		return nil, false
	}
	for _, k := range registry {
		if Is(err, k) {
			return k, true
		}
	}
	return nil, false
}
