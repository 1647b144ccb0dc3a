package service

import "errors"

var (
	// ErrInvalidShipmentID is returned when the shipment ID is empty.
	ErrInvalidShipmentID = errors.New("invalid shipment id")

	// ErrInvalidDistance is returned when distance is negative or not a number.
	ErrInvalidDistance = errors.New("invalid distance")

	// ErrInvalidWeight is returned when cargo weight is negative or not a number.
	ErrInvalidWeight = errors.New("invalid cargo weight")

	// ErrInvalidEquipment is returned when the equipment type is unknown.
	ErrInvalidEquipment = errors.New("invalid equipment type")

	// ErrInvalidStrategy is returned when the pricing strategy is unknown.
	ErrInvalidStrategy = errors.New("invalid pricing strategy")

	// ErrInvalidMargin is returned when the target margin percentage is negative.
	ErrInvalidMargin = errors.New("invalid target margin")
)
