// Package reconcile implements invoice-to-PO matching with an optional goods
// receipt for three-way verification. Rules run in a fixed order and are
// downgrade-only: a later rule can worsen the match status and lower the
// confidence but never restore them.
package reconcile

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/visionflow/internal/model"
)

// AmountTolerance is the largest PO/invoice total difference still treated
// as equal.
const AmountTolerance = 0.01

type outcome struct {
	status        model.MatchStatus
	confidence    float64
	discrepancies []string
}

// downgrade applies a rule result. Status only moves toward MISMATCH and
// confidence only drops.
func (o *outcome) downgrade(status model.MatchStatus, confidence float64, discrepancies ...string) {
	if status.WorseThan(o.status) {
		o.status = status
	}
	if confidence < o.confidence {
		o.confidence = confidence
	}
	o.discrepancies = append(o.discrepancies, discrepancies...)
}

type rule struct {
	name  string
	apply func(o *outcome, po model.PurchaseOrder, inv model.Invoice, receipt *model.Receipt)
}

var rules = []rule{
	{"total_amount", checkTotals},
	{"line_item_presence", checkItemPresence},
	{"line_item_quantity", checkQuantities},
	{"receipt_cross_check", checkReceipt},
}

// ThreeWayMatch reconciles an invoice against a PO, and against a goods
// receipt when one is supplied. A nil receipt yields a two-way match. A rule
// that panics contributes nothing; the remaining rules still run.
func ThreeWayMatch(po model.PurchaseOrder, inv model.Invoice, receipt *model.Receipt) model.MatchResult {
	o := &outcome{status: model.Matched, confidence: 1.0, discrepancies: []string{}}

	for _, r := range rules {
		runRule(o, r, po, inv, receipt)
	}

	return model.MatchResult{
		MatchStatus:     o.status,
		PONumber:        po.PONumber,
		InvoiceNumber:   inv.InvoiceNumber,
		Discrepancies:   o.discrepancies,
		MatchConfidence: o.confidence,
		Timestamp:       time.Now().UTC(),
	}
}

func runRule(o *outcome, r rule, po model.PurchaseOrder, inv model.Invoice, receipt *model.Receipt) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("reconcile: rule panicked, skipping",
				zap.String("rule", r.name),
				zap.Any("panic", rec))
		}
	}()
	r.apply(o, po, inv, receipt)
}

func checkTotals(o *outcome, po model.PurchaseOrder, inv model.Invoice, _ *model.Receipt) {
	if math.Abs(po.TotalAmount-inv.TotalAmount) > AmountTolerance {
		o.downgrade(model.Mismatch, 0.3, fmt.Sprintf(
			"Total amount mismatch: PO total %.2f vs invoice total %.2f",
			po.TotalAmount, inv.TotalAmount))
	}
}

// checkItemPresence and checkQuantities only apply when both sides carry
// items; the unknown-PO fallback synthesizes an empty item list and must not
// downgrade an otherwise matching invoice.
func checkItemPresence(o *outcome, po model.PurchaseOrder, inv model.Invoice, _ *model.Receipt) {
	if len(po.LineItems) == 0 || len(inv.LineItems) == 0 {
		return
	}
	poItems := itemIndex(po.LineItems)
	invItems := itemIndex(inv.LineItems)

	for _, item := range inv.LineItems {
		key := itemKey(item.Description)
		if key == "" {
			continue
		}
		if _, ok := poItems[key]; !ok {
			o.downgrade(model.PartialMatch, 0.6, fmt.Sprintf(
				"Invoice item not on PO: %s", item.Description))
		}
	}
	for _, item := range po.LineItems {
		key := itemKey(item.Description)
		if key == "" {
			continue
		}
		if _, ok := invItems[key]; !ok {
			o.downgrade(model.PartialMatch, 0.6, fmt.Sprintf(
				"PO item missing from invoice: %s", item.Description))
		}
	}
}

func checkQuantities(o *outcome, po model.PurchaseOrder, inv model.Invoice, _ *model.Receipt) {
	if len(po.LineItems) == 0 || len(inv.LineItems) == 0 {
		return
	}
	poItems := itemIndex(po.LineItems)
	for _, item := range inv.LineItems {
		poItem, ok := poItems[itemKey(item.Description)]
		if !ok {
			continue
		}
		if poItem.Quantity != item.Quantity {
			o.downgrade(model.PartialMatch, 0.7, fmt.Sprintf(
				"Quantity mismatch for %s: PO has %d, invoice has %d",
				item.Description, poItem.Quantity, item.Quantity))
		}
	}
}

// checkReceipt verifies every invoiced item was received. Received quantities
// are advisory only and do not affect the match.
func checkReceipt(o *outcome, _ model.PurchaseOrder, inv model.Invoice, receipt *model.Receipt) {
	if receipt == nil {
		return
	}
	received := make(map[string]struct{}, len(receipt.ReceivedItems))
	for _, item := range receipt.ReceivedItems {
		if key := itemKey(item.Description); key != "" {
			received[key] = struct{}{}
		}
	}
	for _, item := range inv.LineItems {
		key := itemKey(item.Description)
		if key == "" {
			continue
		}
		if _, ok := received[key]; !ok {
			o.downgrade(model.PartialMatch, 0.5, fmt.Sprintf(
				"Invoiced item not on goods receipt: %s", item.Description))
		}
	}
}

func itemIndex(items []model.LineItem) map[string]model.LineItem {
	out := make(map[string]model.LineItem, len(items))
	for _, item := range items {
		if key := itemKey(item.Description); key != "" {
			out[key] = item
		}
	}
	return out
}

func itemKey(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}
