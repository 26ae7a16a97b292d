package order

import "time"

type OrderDB struct {
	ID               string
	CompanyID        int64
	Status           string
	AssignedDriverID *int64
	QueuePosition    *int32
	Address          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type OrderModifyDB struct {
	ID               *string
	CompanyID        *int64
	Status           *string
	AssignedDriverID *int64
	QueuePosition    *int32
}
