// Package inventory implements warehouse-side domain entities: the
// InventoryUnit state machine for physical boxes, immutable ScanEvent
// records, and the capacity-bounded Warehouse.
//
// An InventoryUnit exists one-per-physical-box once the box is warehoused.
// Units advance PENDING -> RECEIVED -> INSPECTED -> READY_TO_SHIP -> SHIPPED,
// with HELD and DAMAGED side branches and CONSUMED as the terminal state of
// units merged away by consolidation. Units reference their Order and
// Warehouse by identifier only; they are not owned by either.
package inventory
