package order

import (
	"github.com/AlekSi/pointer"
	"dispatch/internal/entities"
)

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}
	return &entities.Order{
		ID:               o.ID,
		CompanyID:        o.CompanyID,
		Status:           entities.OrderStatusType(o.Status),
		AssignedDriverID: o.AssignedDriverID,
		QueuePosition:    o.QueuePosition,
		Address:          o.Address,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func FromDomainModify(o *entities.OrderModify) *OrderModifyDB {
	if o == nil {
		return nil
	}
	orderModifyDB := &OrderModifyDB{}

	if o.ID != nil {
		orderModifyDB.ID = o.ID
	}
	if o.CompanyID != nil {
		orderModifyDB.CompanyID = o.CompanyID
	}
	if o.Status != nil {
		orderModifyDB.Status = pointer.To(o.Status.String())
	}
	if o.AssignedDriverID != nil {
		orderModifyDB.AssignedDriverID = o.AssignedDriverID
	}
	if o.QueuePosition != nil {
		orderModifyDB.QueuePosition = o.QueuePosition
	}

	return orderModifyDB
}
