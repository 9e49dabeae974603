package booking

import "errors"

var ErrInvalidStatus = errors.New("invalid booking status")

// Status is the payment lifecycle state of a booking. All terminal
// states are reached only through the orchestrator; rows are never
// deleted.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusSuccess, StatusFailed, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Settleable reports whether a verify call may still move the booking
// forward. Terminal states are settled truth and must not be revisited.
func (s Status) Settleable() bool {
	return s == StatusPending || s == StatusProcessing
}

func (s Status) Cancellable() bool {
	return s == StatusPending || s == StatusProcessing
}
