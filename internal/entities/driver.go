package entities

import (
	"time"
)

type Driver struct {
	ID          int64
	CompanyID   int64
	Name        string
	IsActive    bool
	IsAvailable bool
	Status      DriverStatusType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Busy возвращает true если водителю нельзя сразу предложить доставку.
// Инвариант: IsAvailable=true влечет Status=available, обратное не обязательно
// выполняется в коротком окне между claim и подтверждением.
func (d *Driver) Busy() bool {
	return d.Status == DriverInDelivery || !d.IsAvailable
}

type DriverStatusType string

const (
	DriverAvailable         DriverStatusType = "available"
	DriverPendingAcceptance DriverStatusType = "pending_acceptance"
	DriverInDelivery        DriverStatusType = "in_delivery"
)

func (t DriverStatusType) String() string {
	return string(t)
}

type DriverModify struct {
	ID          *int64
	CompanyID   *int64
	Name        *string
	IsActive    *bool
	IsAvailable *bool
	Status      *DriverStatusType
}
