package commands

import (
	"context"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/ports"
)

// Rate card for the batch cost estimate, in THB. The estimate is the
// greater of the volumetric and the weight-based price.
const (
	RatePerCBM = 120000.0
	RatePerKg  = 8000.0
)

// BatchItemResult is the outcome for a single label within a batch.
// Status is "success" or "failed"; failures carry the reason.
type BatchItemResult struct {
	LabelCode  string
	Status     string
	Reason     string
	UnitStatus string
	NextAction string
}

// BatchProcessResult aggregates the per-label outcomes with totals over
// the successfully processed units and a rough shipping cost estimate.
type BatchProcessResult struct {
	Processed     int
	Failed        int
	TotalCBM      float64
	TotalWeight   float64
	EstimatedCost float64
	Items         []BatchItemResult
}

// BatchProcessCommandHandler applies one scan action to many labels.
// Each label is processed independently in its own transaction: a failure
// on one label never rolls back the others.
type BatchProcessCommandHandler struct {
	scanHandler ProcessScanCommandHandler
	uowFactory  WarehouseUoWFactory
}

// NewBatchProcessCommandHandler creates a handler for batch processing.
func NewBatchProcessCommandHandler(
	uowFactory WarehouseUoWFactory,
	notifier ports.MilestoneNotifier,
) BatchProcessCommandHandler {
	return BatchProcessCommandHandler{
		scanHandler: NewProcessScanCommandHandler(uowFactory, notifier),
		uowFactory:  uowFactory,
	}
}

// Handle processes the batch label by label and returns the aggregate
// summary. Totals and the cost estimate cover successful labels only.
func (h *BatchProcessCommandHandler) Handle(
	ctx context.Context,
	cmd BatchProcessCommand,
) (BatchProcessResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchProcessResult{}, err
	}

	result := BatchProcessResult{
		Items: make([]BatchItemResult, 0, len(cmd.LabelCodes())),
	}

	for _, labelCode := range cmd.LabelCodes() {
		item := h.processLabel(ctx, cmd, labelCode)
		result.Items = append(result.Items, item)

		if item.Status != "success" {
			result.Failed++
			continue
		}
		result.Processed++

		cbm, weight, err := h.unitTotals(ctx, labelCode)
		if err == nil {
			result.TotalCBM += cbm
			result.TotalWeight += weight
		}
	}

	result.EstimatedCost = estimateCost(result.TotalCBM, result.TotalWeight)

	return result, nil
}

func (h *BatchProcessCommandHandler) processLabel(
	ctx context.Context,
	cmd BatchProcessCommand,
	labelCode string,
) BatchItemResult {
	scanCommand, err := NewProcessScanCommand(
		labelCode,
		cmd.Action(),
		cmd.WarehouseID(),
		cmd.Location(),
		"",
		nil,
		cmd.Actor(),
	)
	if err != nil {
		return BatchItemResult{LabelCode: labelCode, Status: "failed", Reason: err.Error()}
	}

	scanResult, err := h.scanHandler.Handle(ctx, scanCommand)
	if err != nil {
		return BatchItemResult{LabelCode: labelCode, Status: "failed", Reason: err.Error()}
	}

	return BatchItemResult{
		LabelCode:  labelCode,
		Status:     "success",
		UnitStatus: scanResult.UnitStatus,
		NextAction: scanResult.NextAction,
	}
}

// unitTotals reads back the processed unit's measurements for the summary.
func (h *BatchProcessCommandHandler) unitTotals(
	ctx context.Context,
	labelCode string,
) (float64, float64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	unit, err := uow.InventoryRepository().GetByLabelCode(ctx, labelCode)
	if err != nil {
		return 0, 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, 0, err
	}

	return unit.CBM(), unit.WeightKg(), nil
}

// estimateCost prices a consignment as the larger of its volumetric and
// weight-based charge.
func estimateCost(totalCBM, totalWeightKg float64) float64 {
	volumetric := totalCBM * RatePerCBM
	byWeight := totalWeightKg * RatePerKg

	cost := volumetric
	if byWeight > cost {
		cost = byWeight
	}

	return kernel.RoundHalfUp(cost, 2)
}
