// Package billing implements the Invoice aggregate: fee line items, the 7%
// tax computation, payment tracking and the invoice status lifecycle.
//
// Monetary invariants are enforced at every mutation site: total is always
// subtotal plus tax, balance is always total minus paid, and any change to
// the fee inputs recomputes the derived amounts synchronously. An order may
// carry several invoices (proforma, additional charges, final); only the most
// recent non-superseded one governs payment-status reporting.
package billing
