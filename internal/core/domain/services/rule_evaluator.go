package services

import (
	"fmt"

	"lms/internal/core/domain/model/kernel"
	"lms/internal/core/domain/model/order"
	"lms/internal/pkg/errs"
)

const (
	// CBMThresholdAir is the total volume in cubic meters above which the
	// shipping method is forced to air. The comparison is strict: exactly
	// 29.0 does not trigger the override.
	CBMThresholdAir = 29.0

	// DeclaredValueThresholdTHB is the total declared value above which
	// extra recipient information is required for customs. Strict
	// greater-than, not greater-or-equal.
	DeclaredValueThresholdTHB = 1500.0
)

// Warning codes carried alongside the human-readable warning messages so
// clients can react programmatically.
const (
	WarningCBMExceeded        = "CBM_EXCEEDED"
	WarningAmountExceeded     = "AMOUNT_EXCEEDED_THB_1500"
	WarningMemberCodeRequired = "MEMBER_CODE_REQUIRED"
)

// Warning is one triggered business rule, with a stable code and a message
// for display to the submitter.
type Warning struct {
	Code    string
	Message string
}

// EvaluationResult carries the complete outcome of a rule evaluation:
// computed totals, the resolved shipping method, both compliance flags and
// one warning per triggered rule.
type EvaluationResult struct {
	TotalCBM           float64
	TotalWeight        float64
	TotalDeclaredValue float64

	Method                 order.Method
	RequiresExtraRecipient bool
	NoMemberCode           bool

	Warnings []Warning
}

// RuleEvaluator is a pure domain service that computes an order's volumes,
// compliance flags and resolved shipping method from its boxes and items.
//
// The evaluator is idempotent and side-effect free: it is called at order
// creation and again on any later edit that changes boxes, items or declared
// value, each time fully recomputing rather than incrementally patching.
//
// Business rules:
//   - Total CBM strictly above CBMThresholdAir forces the air method; this
//     is a hard override, not a suggestion
//   - Total declared value strictly above DeclaredValueThresholdTHB sets
//     the requiresExtraRecipient compliance flag
//   - An absent or empty membership code sets the noMemberCode flag
type RuleEvaluator struct{}

// NewRuleEvaluator creates a new RuleEvaluator instance.
func NewRuleEvaluator() RuleEvaluator {
	return RuleEvaluator{}
}

// Evaluate computes totals, flags and the resolved shipping method.
// At least one box is required; boxes and items must be properly
// constructed, which guarantees positive dimensions and weights.
func (e RuleEvaluator) Evaluate(
	boxes []*order.Box,
	items []*order.Item,
	memberCode string,
	requestedMethod order.Method,
) (EvaluationResult, error) {
	if len(boxes) == 0 {
		return EvaluationResult{}, errs.NewValueIsRequiredError("boxes")
	}
	if err := requestedMethod.Validate(); err != nil {
		return EvaluationResult{}, err
	}

	var cbm, weight float64
	for _, box := range boxes {
		if err := box.Validate(); err != nil {
			return EvaluationResult{}, err
		}
		cbm += box.CBM()
		weight += box.WeightKg()
	}

	var declared float64
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return EvaluationResult{}, err
		}
		declared += item.TotalValue()
	}

	result := EvaluationResult{
		TotalCBM:           kernel.RoundHalfUp(cbm, kernel.CBMPrecision),
		TotalWeight:        kernel.RoundHalfUp(weight, 3),
		TotalDeclaredValue: kernel.RoundHalfUp(declared, 2),
		Method:             requestedMethod,
		NoMemberCode:       memberCode == "",
	}

	if result.TotalCBM > CBMThresholdAir {
		result.Method = order.Air
		result.Warnings = append(result.Warnings, Warning{
			Code: WarningCBMExceeded,
			Message: fmt.Sprintf(
				"total CBM %.6f m3 exceeds the %.1f m3 threshold, shipping method switched to AIR",
				result.TotalCBM, CBMThresholdAir),
		})
	}

	if result.TotalDeclaredValue > DeclaredValueThresholdTHB {
		result.RequiresExtraRecipient = true
		result.Warnings = append(result.Warnings, Warning{
			Code: WarningAmountExceeded,
			Message: fmt.Sprintf(
				"total declared value %.2f THB exceeds %.0f THB, extra recipient information is required",
				result.TotalDeclaredValue, DeclaredValueThresholdTHB),
		})
	}

	if result.NoMemberCode {
		result.Warnings = append(result.Warnings, Warning{
			Code:    WarningMemberCodeRequired,
			Message: "member code is missing, the shipment may be delayed",
		})
	}

	return result, nil
}
