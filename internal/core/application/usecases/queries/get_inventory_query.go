package queries

import (
	"errors"
	"time"

	"lms/internal/core/domain/model/inventory"
	"lms/internal/pkg/guard"
)

var (
	ErrGetInventoryQueryIsNotConstructed = errors.New(
		"GetInventoryQuery must be created via NewGetInventoryQuery constructor",
	)
)

// GetInventoryQuery retrieves warehouse inventory units, optionally filtered
// by order number and unit status. Both filters are optional; an empty query
// lists everything that is not in a terminal state.
type GetInventoryQuery struct { //nolint:recvcheck //using for validation
	orderNumber string
	status      inventory.UnitStatus
	hasStatus   bool

	guard guard.ConstructorGuard
}

// NewGetInventoryQuery creates an inventory listing query. The status filter
// is given by its canonical name; an empty string means no status filter.
func NewGetInventoryQuery(orderNumber string, status string) (GetInventoryQuery, error) {
	inventoryQuery := GetInventoryQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}

	if status != "" {
		parsed, err := inventory.UnitStatusFromString(status)
		if err != nil {
			return GetInventoryQuery{}, err
		}
		inventoryQuery.status = parsed
		inventoryQuery.hasStatus = true
	}

	return inventoryQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetInventoryQueryIsNotConstructed if validation fails.
func (q GetInventoryQuery) Validate() error {
	return q.guard.Validate(ErrGetInventoryQueryIsNotConstructed)
}

// OrderNumber returns the order filter, empty when unfiltered.
func (q GetInventoryQuery) OrderNumber() string {
	return q.orderNumber
}

// Status returns the status filter; meaningful only when HasStatus is true.
func (q GetInventoryQuery) Status() inventory.UnitStatus {
	return q.status
}

// HasStatus reports whether a status filter was supplied.
func (q GetInventoryQuery) HasStatus() bool {
	return q.hasStatus
}

// GetInventoryQueryResponse is one inventory unit in the listing read model.
// WarehouseCode is empty for units not yet scanned into a warehouse.
type GetInventoryQueryResponse struct {
	InventoryCode string
	LabelCode     string
	OrderNumber   string
	WarehouseCode string
	Status        string
	NextAction    string
	Location      string
	WeightKg      float64
	CBM           float64
	ReceivedAt    *time.Time
}
