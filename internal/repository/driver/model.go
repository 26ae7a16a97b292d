package driver

import "time"

type DriverDB struct {
	ID          int64
	CompanyID   int64
	Name        string
	IsActive    bool
	IsAvailable bool
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
