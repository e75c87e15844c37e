package order

import "errors"

// Status is the order lifecycle state. An order is either waiting to be
// fulfilled or done; soft deletion is tracked separately on DeletedAt.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusDone    Status = "DONE"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusDone:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
