package queries

import (
	"context"
	"time"

	"lms/internal/core/domain/model/inventory"

	"gorm.io/gorm"
)

// GetInventoryQueryHandler lists inventory units for warehouse staff.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetInventoryQueryHandler struct {
	db *gorm.DB
}

// NewGetInventoryQueryHandler creates a handler for inventory listing queries.
func NewGetInventoryQueryHandler(db *gorm.DB) GetInventoryQueryHandler {
	return GetInventoryQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by order number, then by
// inventory code, so units of one order group together on screen. Terminal
// units are included only when explicitly asked for by status.
func (h GetInventoryQueryHandler) Handle(
	ctx context.Context,
	query GetInventoryQuery,
) ([]GetInventoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			u.inventory_code,
			u.label_code,
			o.order_number,
			COALESCE(w.code, ''),
			u.status,
			u.location,
			u.weight_kg,
			u.cbm,
			u.received_at
		FROM inventory_units u
		JOIN orders o ON o.id = u.order_id
		LEFT JOIN warehouses w ON w.id = u.warehouse_id
	`

	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if query.OrderNumber() != "" {
		conditions = append(conditions, "o.order_number = ?")
		args = append(args, query.OrderNumber())
	}

	if query.HasStatus() {
		conditions = append(conditions, "u.status = ?")
		args = append(args, int(query.Status()))
	} else {
		conditions = append(conditions, "u.status NOT IN (?, ?)")
		args = append(args, int(inventory.UnitShipped), int(inventory.UnitConsumed))
	}

	for i, condition := range conditions {
		if i == 0 {
			sql += " WHERE " + condition
		} else {
			sql += " AND " + condition
		}
	}
	sql += " ORDER BY o.order_number, u.inventory_code"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := make([]GetInventoryQueryResponse, 0)
	for rows.Next() {
		var (
			unit        GetInventoryQueryResponse
			statusValue int
			receivedAt  *time.Time
		)

		if err = rows.Scan(
			&unit.InventoryCode,
			&unit.LabelCode,
			&unit.OrderNumber,
			&unit.WarehouseCode,
			&statusValue,
			&unit.Location,
			&unit.WeightKg,
			&unit.CBM,
			&receivedAt,
		); err != nil {
			return nil, err
		}

		status := inventory.UnitStatus(statusValue)
		unit.Status = status.String()
		unit.NextAction = status.NextAction()
		unit.ReceivedAt = receivedAt
		units = append(units, unit)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return units, nil
}
