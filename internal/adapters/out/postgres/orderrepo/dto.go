// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and their
// database representation.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by driver and status for the driver order list and janitor queries.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid"`
	RestaurantID    uuid.UUID  `gorm:"type:uuid;index"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index"`
	CustomerContact string
	Items           []ItemDTO `gorm:"serializer:json"`
	Street          string
	Latitude        float64
	Longitude       float64
	PaymentMethod   string
	DeliveryFee     int64
	TotalAmount     int64
	Instructions    string
	Status          string `gorm:"index"`
	CreatedAt       time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line inside the JSON items column.
type ItemDTO struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			Name:           item.Name(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		RestaurantID:    aggregate.RestaurantID().Bytes(),
		DriverID:        driverID,
		CustomerContact: aggregate.CustomerContact(),
		Items:           items,
		Street:          aggregate.Address().Street(),
		Latitude:        aggregate.Address().Location().Latitude(),
		Longitude:       aggregate.Address().Location().Longitude(),
		PaymentMethod:   aggregate.PaymentMethod(),
		DeliveryFee:     aggregate.DeliveryFee(),
		TotalAmount:     aggregate.TotalAmount(),
		Instructions:    aggregate.Instructions(),
		Status:          aggregate.Status().String(),
		CreatedAt:       aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO back to an order aggregate using
// RestoreOrder, which re-validates status and driver consistency.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPriceCents)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	location, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(dto.Street, location)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, customerID, restaurantID, dto.CustomerContact,
		items, address, dto.PaymentMethod, dto.DeliveryFee, dto.Instructions,
		dto.CreatedAt, status, driverID)
}
