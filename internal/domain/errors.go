package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNoActiveCart indicates the session has no pending order to act on.
	ErrNoActiveCart = errors.New("no active cart")
	// ErrInvalidSession indicates the caller lacks the session state a
	// checkout step requires (live cart and/or signed-in user).
	ErrInvalidSession = errors.New("invalid session")
	// ErrInvalidOption indicates a user-correctable order option, such as a
	// non-positive registration period.
	ErrInvalidOption = errors.New("invalid order option")
)

// VoucherRejectReason enumerates why a voucher code was not applied.
type VoucherRejectReason string

const (
	VoucherNotFound      VoucherRejectReason = "not_found"
	VoucherExpired       VoucherRejectReason = "expired"
	VoucherNotApplicable VoucherRejectReason = "not_applicable"
)

// VoucherRejection is a non-fatal validation failure: the order keeps its
// no-discount pricing and the caller informs the user.
type VoucherRejection struct {
	Code   string
	Reason VoucherRejectReason
}

func (r *VoucherRejection) Error() string {
	switch r.Reason {
	case VoucherExpired:
		return "voucher has expired"
	case VoucherNotApplicable:
		return "voucher does not apply to this order"
	default:
		return "voucher code not found"
	}
}
