package order

import "dispatch/internal/core/domain/model/kernel"

// DeliveryAddress is the geocoded destination of an order. Coordinates may be unknown.
type DeliveryAddress struct {
	locality    kernel.Locality
	coordinates kernel.Coordinates
}

// NewDeliveryAddress creates an address. Pass kernel.Coordinates{} when the address is not geocoded.
func NewDeliveryAddress(locality kernel.Locality, coordinates kernel.Coordinates) DeliveryAddress {
	return DeliveryAddress{locality: locality, coordinates: coordinates}
}

func (a DeliveryAddress) Locality() kernel.Locality {
	return a.locality
}

func (a DeliveryAddress) Coordinates() kernel.Coordinates {
	return a.coordinates
}
