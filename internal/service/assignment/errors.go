package assignment

import "errors"

var (
	ErrInvalidOrderID   = errors.New("invalid order id")
	ErrInvalidDriverID  = errors.New("invalid driver id")
	ErrInvalidCompanyID = errors.New("invalid company id")

	ErrOrderNotFound     = errors.New("order not found")
	ErrDriverNotFound    = errors.New("driver not found")
	ErrDriverInactive    = errors.New("driver is inactive")
	ErrInvalidOrderState = errors.New("invalid order state")

	ErrQueueEmpty = errors.New("no queued orders for driver")
)
