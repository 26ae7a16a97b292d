package driver

import "dispatch/internal/entities"

func ToDomain(d *DriverDB) *entities.Driver {
	if d == nil {
		return nil
	}
	return &entities.Driver{
		ID:          d.ID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		IsActive:    d.IsActive,
		IsAvailable: d.IsAvailable,
		Status:      entities.DriverStatusType(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
