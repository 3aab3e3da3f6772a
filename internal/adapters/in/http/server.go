// Package http wires the application use cases to echo routes.
// Requests are mapped into commands and queries, domain errors into
// stable HTTP status codes and machine-readable error codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"lms/internal/core/application/usecases/commands"
	"lms/internal/core/application/usecases/queries"
	"lms/internal/core/domain/model/billing"
	"lms/internal/core/domain/model/inventory"
	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/core/domain/services"
	"lms/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"

	roleAdmin = "admin"

	defaultActor = "anonymous"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	updateOrderStatus       commands.UpdateOrderStatusCommandHandler
	updateOrderBoxesHandler commands.UpdateOrderBoxesCommandHandler
	processScanHandler      commands.ProcessScanCommandHandler
	batchProcessHandler     commands.BatchProcessCommandHandler
	consolidateHandler      commands.ConsolidateCommandHandler
	issueInvoiceHandler     commands.IssueInvoiceCommandHandler
	recordPaymentHandler    commands.RecordPaymentCommandHandler

	// Query handlers
	getTrackingHandler  queries.GetTrackingQueryHandler
	getInventoryHandler queries.GetInventoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatus commands.UpdateOrderStatusCommandHandler,
	updateOrderBoxesHandler commands.UpdateOrderBoxesCommandHandler,
	processScanHandler commands.ProcessScanCommandHandler,
	batchProcessHandler commands.BatchProcessCommandHandler,
	consolidateHandler commands.ConsolidateCommandHandler,
	issueInvoiceHandler commands.IssueInvoiceCommandHandler,
	recordPaymentHandler commands.RecordPaymentCommandHandler,
	getTrackingHandler queries.GetTrackingQueryHandler,
	getInventoryHandler queries.GetInventoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		updateOrderStatus:       updateOrderStatus,
		updateOrderBoxesHandler: updateOrderBoxesHandler,
		processScanHandler:      processScanHandler,
		batchProcessHandler:     batchProcessHandler,
		consolidateHandler:      consolidateHandler,
		issueInvoiceHandler:     issueInvoiceHandler,
		recordPaymentHandler:    recordPaymentHandler,
		getTrackingHandler:      getTrackingHandler,
		getInventoryHandler:     getInventoryHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
// The tracking endpoint is public; every other route expects the identity
// headers set by the gateway.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/api/orders", s.CreateOrder)
	e.PATCH("/api/orders/:orderNumber/status", s.UpdateOrderStatus)
	e.PUT("/api/orders/:orderNumber/boxes", s.UpdateOrderBoxes)

	e.POST("/api/warehouse/scan", s.ProcessScan)
	e.POST("/api/warehouse/batch", s.BatchProcess)
	e.POST("/api/warehouse/mixbox", s.Consolidate)
	e.GET("/api/warehouse/inventory", s.GetInventory)

	e.GET("/api/tracking/:orderNumber", s.GetTracking)

	e.POST("/api/billing/:orderNumber/invoices", s.IssueInvoice)
	e.POST("/api/billing/invoices/:invoiceNumber/payments", s.RecordPayment)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain errors onto HTTP status codes. Internal errors are
// logged with the request context and surfaced generically.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	code := "INTERNAL"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		status, code = http.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
		var transitionErr *errs.InvalidTransitionError
		if errors.As(err, &transitionErr) {
			code = transitionErr.Code()
		}
	case errors.Is(err, errs.ErrDuplicateResource):
		status = http.StatusConflict
		var duplicateErr *errs.DuplicateResourceError
		if errors.As(err, &duplicateErr) {
			code = duplicateErr.Code()
		}
	case errors.Is(err, errs.ErrCapacityExceeded):
		status = http.StatusConflict
		var capacityErr *errs.CapacityExceededError
		if errors.As(err, &capacityErr) {
			code = capacityErr.Code()
		}
	case errors.Is(err, errs.ErrConcurrencyConflict):
		status = http.StatusConflict
		var conflictErr *errs.ConcurrencyConflictError
		if errors.As(err, &conflictErr) {
			code = conflictErr.Code()
		}
	}

	if status == http.StatusInternalServerError {
		ctx.Logger().Errorf("request %s %s failed: %v",
			ctx.Request().Method, ctx.Request().URL.Path, err)
		return ctx.JSON(status, errorResponse{Code: code, Message: "internal error"})
	}

	return ctx.JSON(status, errorResponse{Code: code, Message: err.Error()})
}

// actor returns the caller identity from the gateway headers.
func actor(ctx echo.Context) string {
	if id := ctx.Request().Header.Get(headerUserID); id != "" {
		return id
	}
	return defaultActor
}

// isAdmin reports whether the caller carries the administrator role.
func isAdmin(ctx echo.Context) bool {
	return ctx.Request().Header.Get(headerUserRole) == roleAdmin
}

type recipientRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type boxRequest struct {
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
	DepthCm  float64 `json:"depth_cm"`
	WeightKg float64 `json:"weight_kg"`
}

type itemRequest struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitValue   float64 `json:"unit_value"`
	Currency    string  `json:"currency"`
	HSCode      string  `json:"hs_code"`
}

type createOrderRequest struct {
	MemberCode     string           `json:"member_code"`
	Recipient      recipientRequest `json:"recipient"`
	ShippingMethod string           `json:"shipping_method"`
	Boxes          []boxRequest     `json:"boxes"`
	Items          []itemRequest    `json:"items"`
}

type warningResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type createOrderResponse struct {
	OrderID                string            `json:"order_id"`
	OrderNumber            string            `json:"order_number"`
	Status                 string            `json:"status"`
	ShippingMethod         string            `json:"shipping_method"`
	TotalCBM               float64           `json:"total_cbm"`
	TotalWeight            float64           `json:"total_weight"`
	TotalDeclaredValue     float64           `json:"total_declared_value"`
	RequiresExtraRecipient bool              `json:"requires_extra_recipient"`
	NoMemberCode           bool              `json:"no_member_code"`
	Warnings               []warningResponse `json:"warnings"`
	BoxLabels              []string          `json:"box_labels"`
}

// CreateOrder handles POST /api/orders - registers a new shipment order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request createOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid request body",
		})
	}

	recipient, err := order.NewRecipient(
		request.Recipient.Name,
		request.Recipient.Phone,
		request.Recipient.Address,
		request.Recipient.PostalCode,
		request.Recipient.Country,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	// The customer's requested method defaults to sea freight; business
	// rules may still force air.
	requestedMethod := order.Sea
	if request.ShippingMethod != "" {
		requestedMethod, err = order.MethodFromString(request.ShippingMethod)
		if err != nil {
			return writeError(ctx, err)
		}
	}

	boxes := make([]commands.BoxInput, len(request.Boxes))
	for i, box := range request.Boxes {
		boxes[i] = commands.BoxInput{
			WidthCm:  box.WidthCm,
			HeightCm: box.HeightCm,
			DepthCm:  box.DepthCm,
			WeightKg: box.WeightKg,
		}
	}

	items := make([]commands.ItemInput, len(request.Items))
	for i, item := range request.Items {
		items[i] = commands.ItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitValue:   item.UnitValue,
			Currency:    item.Currency,
			HSCode:      item.HSCode,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		request.MemberCode,
		recipient,
		requestedMethod,
		boxes,
		items,
		actor(ctx),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{
		OrderID:                result.OrderID,
		OrderNumber:            result.OrderNumber,
		Status:                 result.Status,
		ShippingMethod:         result.ShippingMethod,
		TotalCBM:               result.TotalCBM,
		TotalWeight:            result.TotalWeight,
		TotalDeclaredValue:     result.TotalDeclaredValue,
		RequiresExtraRecipient: result.RequiresExtraRecipient,
		NoMemberCode:           result.NoMemberCode,
		Warnings:               toWarningResponses(result.Warnings),
		BoxLabels:              result.BoxLabels,
	})
}

type updateOrderStatusRequest struct {
	Status     string `json:"status"`
	Reason     string `json:"reason"`
	Corrective bool   `json:"corrective"`
}

type updateOrderStatusResponse struct {
	OrderNumber    string `json:"order_number"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	Stage          int    `json:"stage"`
	Changed        bool   `json:"changed"`
}

// UpdateOrderStatus handles PATCH /api/orders/:orderNumber/status.
// Corrective moves are honored only for administrator callers.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var request updateOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid request body",
		})
	}

	newStatus, err := order.StatusFromString(request.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	corrective := request.Corrective && isAdmin(ctx)

	cmd, err := commands.NewUpdateOrderStatusCommand(
		ctx.Param("orderNumber"),
		newStatus,
		request.Reason,
		actor(ctx),
		corrective,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.updateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, updateOrderStatusResponse{
		OrderNumber:    result.OrderNumber,
		PreviousStatus: result.PreviousStatus,
		NewStatus:      result.NewStatus,
		Stage:          result.Stage,
		Changed:        result.Changed,
	})
}

type boxMeasurementRequest struct {
	LabelCode string  `json:"label_code"`
	WidthCm   float64 `json:"width_cm"`
	HeightCm  float64 `json:"height_cm"`
	DepthCm   float64 `json:"depth_cm"`
}

type updateOrderBoxesRequest struct {
	Boxes []boxMeasurementRequest `json:"boxes"`
}

type updateOrderBoxesResponse struct {
	OrderNumber            string            `json:"order_number"`
	TotalCBM               float64           `json:"total_cbm"`
	TotalWeight            float64           `json:"total_weight"`
	ShippingMethod         string            `json:"shipping_method"`
	RequiresExtraRecipient bool              `json:"requires_extra_recipient"`
	Warnings               []warningResponse `json:"warnings"`
	RecalculatedInvoices   []string          `json:"recalculated_invoices"`
}

// UpdateOrderBoxes handles PUT /api/orders/:orderNumber/boxes - corrects
// box measurements and recomputes totals, method and open invoices.
func (s *Server) UpdateOrderBoxes(ctx echo.Context) error {
	var request updateOrderBoxesRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid request body",
		})
	}

	measurements := make([]commands.BoxMeasurement, len(request.Boxes))
	for i, box := range request.Boxes {
		measurements[i] = commands.BoxMeasurement{
			LabelCode: box.LabelCode,
			WidthCm:   box.WidthCm,
			HeightCm:  box.HeightCm,
			DepthCm:   box.DepthCm,
		}
	}

	cmd, err := commands.NewUpdateOrderBoxesCommand(
		ctx.Param("orderNumber"),
		measurements,
		actor(ctx),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.updateOrderBoxesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, updateOrderBoxesResponse{
		OrderNumber:            result.OrderNumber,
		TotalCBM:               result.TotalCBM,
		TotalWeight:            result.TotalWeight,
		ShippingMethod:         result.ShippingMethod,
		RequiresExtraRecipient: result.RequiresExtraRecipient,
		Warnings:               toWarningResponses(result.Warnings),
		RecalculatedInvoices:   result.RecalculatedInvoices,
	})
}

type processScanRequest struct {
	LabelCode   string   `json:"label_code"`
	ScanType    string   `json:"scan_type"`
	WarehouseID string   `json:"warehouse_id"`
	Location    string   `json:"location"`
	Note        string   `json:"note"`
	PhotoURLs   []string `json:"photo_urls"`
}

type processScanResponse struct {
	ScanCode    string `json:"scan_code"`
	LabelCode   string `json:"label_code"`
	UnitStatus  string `json:"unit_status"`
	OrderNumber string `json:"order_number"`
	OrderStatus string `json:"order_status"`
	NextAction  string `json:"next_action"`
}

// ProcessScan handles POST /api/warehouse/scan - applies one scan to a unit.
func (s *Server) ProcessScan(ctx echo.Context) error {
	var request processScanRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid request body",
		})
	}

	scanType, err := inventory.ScanTypeFromString(request.ScanType)
	if err != nil {
		return writeError(ctx, err)
	}

	warehouseID, err := parseOptionalUUID(request.WarehouseID, "warehouseId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewProcessScanCommand(
		request.LabelCode,
		scanType,
		warehouseID,
		request.Location,
		request.Note,
		request.PhotoURLs,
		actor(ctx),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.processScanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, processScanResponse{
		ScanCode:    result.ScanCode,
		LabelCode:   result.LabelCode,
		UnitStatus:  result.UnitStatus,
		OrderNumber: result.OrderNumber,
		OrderStatus: result.OrderStatus,
		NextAction:  result.NextAction,
	})
}

type batchProcessRequest struct {
	Action      string   `json:"action"`
	LabelCodes  []string `json:"label_codes"`
	WarehouseID string   `json:"warehouse_id"`
	Location    string   `json:"location"`
}

type batchItemResponse struct {
	LabelCode  string `json:"label_code"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	UnitStatus string `json:"unit_status,omitempty"`
	NextAction string `json:"next_action,omitempty"`
}

type batchProcessResponse struct {
	Processed     int                 `json:"processed"`
	Failed        int                 `json:"failed"`
	TotalCBM      float64             `json:"total_cbm"`
	TotalWeight   float64             `json:"total_weight"`
	EstimatedCost float64             `json:"estimated_cost"`
	Items         []batchItemResponse `json:"items"`
}

// BatchProcess handles POST /api/warehouse/batch - applies one scan action
// to many labels, reporting per-label outcomes.
func (s *Server) BatchProcess(ctx echo.Context) error {
	var request batchProcessRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid request body",
		})
	}

	action, err := inventory.ScanTypeFromString(request.Action)
	if err != nil {
		return writeError(ctx, err)
	}

	warehouseID, err := parseOptionalUUID(request.WarehouseID, "warehouseId")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewBatchProcessCommand(
		action,
		request.LabelCodes,
		warehouseID,
		request.Location,
		actor(ctx),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.batchProcessHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]batchItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = batchItemResponse{
			LabelCode:  item.LabelCode,
			Status:     item.Status,
			Reason:     item.Reason,
			UnitStatus: item.UnitStatus,
			NextAction: item.NextAction,
		}
	}

	return ctx.JSON(http.StatusOK, batchProcessResponse{
		Processed:     result.Processed,
		Failed:        result.Failed,
		TotalCBM:      result.TotalCBM,
		TotalWeight:   result.TotalWeight,
		EstimatedCost: result.EstimatedCost,
		Items:         items,
	})
}

type consolidateRequest struct {
	LabelCodes []string `json:"label_codes"`
	WidthCm    float64  `json:"width_cm"`
	HeightCm   float64  `json:"height_cm"`
	DepthCm    float64  `json:"depth_cm"`
	Location   string   `json:"location"`
	Note       string   `json:"note"`
}

type consolidateResponse struct {
	LabelCode      string   `json:"label_code"`
	InventoryCode  string   `json:"inventory_code"`
	CBM            float64  `json:"cbm"`
	WeightKg       float64  `json:"weight_kg"`
	ConsumedLabels []string `json:"consumed_labels"`
}

// Consolidate handles POST /api/warehouse/mixbox - merges stored units of
// one order into a single mixbox.
func (s *Server) Consolidate(ctx echo.Context) error {
	var request consolidateRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewConsolidateCommand(
		request.LabelCodes,
		request.WidthCm,
		request.HeightCm,
		request.DepthCm,
		request.Location,
		request.Note,
		actor(ctx),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.consolidateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, consolidateResponse{
		LabelCode:      result.LabelCode,
		InventoryCode:  result.InventoryCode,
		CBM:            result.CBM,
		WeightKg:       result.WeightKg,
		ConsumedLabels: result.ConsumedLabels,
	})
}

type inventoryItemResponse struct {
	InventoryCode string     `json:"inventory_code"`
	LabelCode     string     `json:"label_code"`
	OrderNumber   string     `json:"order_number"`
	WarehouseCode string     `json:"warehouse_code,omitempty"`
	Status        string     `json:"status"`
	NextAction    string     `json:"next_action"`
	Location      string     `json:"location,omitempty"`
	WeightKg      float64    `json:"weight_kg"`
	CBM           float64    `json:"cbm"`
	ReceivedAt    *time.Time `json:"received_at,omitempty"`
}

// GetInventory handles GET /api/warehouse/inventory - lists inventory units,
// optionally filtered by order number and status.
func (s *Server) GetInventory(ctx echo.Context) error {
	query, err := queries.NewGetInventoryQuery(
		ctx.QueryParam("orderNumber"),
		ctx.QueryParam("status"),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	units, err := s.getInventoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]inventoryItemResponse, len(units))
	for i, unit := range units {
		response[i] = inventoryItemResponse{
			InventoryCode: unit.InventoryCode,
			LabelCode:     unit.LabelCode,
			OrderNumber:   unit.OrderNumber,
			WarehouseCode: unit.WarehouseCode,
			Status:        unit.Status,
			NextAction:    unit.NextAction,
			Location:      unit.Location,
			WeightKg:      unit.WeightKg,
			CBM:           unit.CBM,
			ReceivedAt:    unit.ReceivedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type timelineEntryResponse struct {
	StatusCode  string    `json:"status_code"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Milestone   bool      `json:"milestone"`
	Synthetic   bool      `json:"synthetic"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type trackingResponse struct {
	OrderNumber   string                  `json:"order_number"`
	Status        string                  `json:"status"`
	LegacyStatus  string                  `json:"legacy_status"`
	Stage         int                     `json:"stage"`
	LastUpdatedAt time.Time               `json:"last_updated_at"`
	Entries       []timelineEntryResponse `json:"entries"`
}

// GetTracking handles GET /api/tracking/:orderNumber - the public timeline.
func (s *Server) GetTracking(ctx echo.Context) error {
	query, err := queries.NewGetTrackingQuery(ctx.Param("orderNumber"))
	if err != nil {
		return writeError(ctx, err)
	}

	timeline, err := s.getTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	entries := make([]timelineEntryResponse, len(timeline.Entries))
	for i, entry := range timeline.Entries {
		entries[i] = timelineEntryResponse{
			StatusCode:  entry.StatusCode,
			Description: entry.Description,
			Location:    entry.Location,
			Milestone:   entry.Milestone,
			Synthetic:   entry.Synthetic,
			OccurredAt:  entry.OccurredAt,
		}
	}

	return ctx.JSON(http.StatusOK, trackingResponse{
		OrderNumber:   timeline.OrderNumber,
		Status:        timeline.Status,
		LegacyStatus:  timeline.LegacyStatus,
		Stage:         timeline.Stage,
		LastUpdatedAt: timeline.LastUpdatedAt,
		Entries:       entries,
	})
}

type feesRequest struct {
	Shipping      float64 `json:"shipping"`
	LocalDelivery float64 `json:"local_delivery"`
	Repacking     float64 `json:"repacking"`
	Handling      float64 `json:"handling"`
	Insurance     float64 `json:"insurance"`
	Customs       float64 `json:"customs"`
}

type issueInvoiceRequest struct {
	InvoiceType string      `json:"invoice_type"`
	Currency    string      `json:"currency"`
	Fees        feesRequest `json:"fees"`
	DueDate     string      `json:"due_date"`
}

type issueInvoiceResponse struct {
	InvoiceID     string    `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	InvoiceType   string    `json:"invoice_type"`
	Status        string    `json:"status"`
	Subtotal      float64   `json:"subtotal"`
	Tax           float64   `json:"tax"`
	Total         float64   `json:"total"`
	DueDate       time.Time `json:"due_date"`
	Superseded    []string  `json:"superseded"`
}

// IssueInvoice handles POST /api/billing/:orderNumber/invoices - issues an
// invoice from a fee schedule, superseding any open invoice of the order.
func (s *Server) IssueInvoice(ctx echo.Context) error {
	var request issueInvoiceRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid request body",
		})
	}

	invoiceType, err := billing.InvoiceTypeFromString(request.InvoiceType)
	if err != nil {
		return writeError(ctx, err)
	}

	dueDate, err := parseDueDate(request.DueDate)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewIssueInvoiceCommand(
		ctx.Param("orderNumber"),
		invoiceType,
		request.Currency,
		billing.Fees{
			Shipping:      request.Fees.Shipping,
			LocalDelivery: request.Fees.LocalDelivery,
			Repacking:     request.Fees.Repacking,
			Handling:      request.Fees.Handling,
			Insurance:     request.Fees.Insurance,
			Customs:       request.Fees.Customs,
		},
		dueDate,
		actor(ctx),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.issueInvoiceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, issueInvoiceResponse{
		InvoiceID:     result.InvoiceID,
		InvoiceNumber: result.InvoiceNumber,
		InvoiceType:   result.InvoiceType,
		Status:        result.Status,
		Subtotal:      result.Subtotal,
		Tax:           result.Tax,
		Total:         result.Total,
		DueDate:       result.DueDate,
		Superseded:    result.Superseded,
	})
}

type recordPaymentRequest struct {
	Amount float64 `json:"amount"`
}

type recordPaymentResponse struct {
	InvoiceNumber string  `json:"invoice_number"`
	Status        string  `json:"status"`
	Paid          float64 `json:"paid"`
	Balance       float64 `json:"balance"`
	FullyPaid     bool    `json:"fully_paid"`
}

// RecordPayment handles POST /api/billing/invoices/:invoiceNumber/payments.
func (s *Server) RecordPayment(ctx echo.Context) error {
	var request recordPaymentRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    "BAD_REQUEST",
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewRecordPaymentCommand(
		ctx.Param("invoiceNumber"),
		request.Amount,
		actor(ctx),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, recordPaymentResponse{
		InvoiceNumber: result.InvoiceNumber,
		Status:        result.Status,
		Paid:          result.Paid,
		Balance:       result.Balance,
		FullyPaid:     result.FullyPaid,
	})
}

func toWarningResponses(warnings []services.Warning) []warningResponse {
	response := make([]warningResponse, len(warnings))
	for i, warning := range warnings {
		response[i] = warningResponse{Code: warning.Code, Message: warning.Message}
	}
	return response
}

// parseOptionalUUID parses an optional UUID parameter, returning nil when absent.
func parseOptionalUUID(value, paramName string) (*kernel.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return &id, nil
}

// parseDueDate accepts either a date or a full RFC 3339 timestamp.
func parseDueDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errs.NewValueIsRequiredError("dueDate")
	}
	if dueDate, err := time.Parse("2006-01-02", value); err == nil {
		return dueDate, nil
	}
	dueDate, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("dueDate", err)
	}
	return dueDate, nil
}
