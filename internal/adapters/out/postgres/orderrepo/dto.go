// Package orderrepo maps the orders table to the order model and implements the
// conditional assignment write used by the assignment flow.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the subset of the orders table this service reads and writes.
// A NULL delivery_status is the "unset" delivery status.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status            string     `gorm:"type:varchar(32);not null;index"`
	DeliveryStatus    *string    `gorm:"type:varchar(32);index"`
	DeliveryPartnerID *uuid.UUID `gorm:"type:uuid;index"`
	Address           AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	TotalPrice        float64    `gorm:"type:numeric(12,2);not null;default:0"`
	UpdatedAt         time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the embedded delivery address. Coordinates are nullable.
type AddressDTO struct {
	City      string   `gorm:"type:varchar(128)"`
	State     string   `gorm:"type:varchar(128)"`
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.DeliveryPartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.DeliveryPartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	var deliveryStatus order.DeliveryStatus
	if dto.DeliveryStatus != nil {
		deliveryStatus = order.DeliveryStatus(*dto.DeliveryStatus)
	}

	address := order.NewDeliveryAddress(
		kernel.NewLocality(dto.Address.City, dto.Address.State),
		kernel.RestoreCoordinates(dto.Address.Latitude, dto.Address.Longitude),
	)

	return order.RestoreOrder(id, order.Status(dto.Status), deliveryStatus, partnerID, address, dto.TotalPrice)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
