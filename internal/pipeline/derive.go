package pipeline

import (
	"strconv"
	"strings"
	"time"

	"dealertrack/internal/classifier"
	"dealertrack/internal/normalize"
)

// UnassignedExecutive marks a salesperson with no executive mapping.
const UnassignedExecutive = "Sin asignar"

// derive fills the computed fields of a record in place: executive
// assignment, folder location, date defaults and formatting, pending
// balance and class. Deterministic given the mapping and "now".
func derive(r *Record, secondary secondaryIndex, executives map[string]string, now time.Time) {
	salesperson := strings.TrimSpace(r.Salesperson)
	if salesperson != "" {
		if executive, ok := executives[salesperson]; ok {
			r.Executive = executive
		} else {
			r.Executive = UnassignedExecutive
		}
	}

	if strings.TrimSpace(r.Operation) != "" {
		r.FolderLocation = secondary.location(r.Operation)
	} else {
		r.FolderLocation = NoFolderLocation
	}

	if strings.TrimSpace(r.DispatchEstimate) == "" {
		r.DispatchEstimate = normalize.DefaultDispatchDate(now)
	}
	r.DispatchEstimate = normalize.FormatDate(r.DispatchEstimate)
	r.DeliveryEstimate = normalize.DeliveryEstimate(r.DispatchEstimate)
	r.ReceptionDate = normalize.FormatDate(r.ReceptionDate)
	r.LoadDate = normalize.FormatDate(r.LoadDate)
	r.AssignmentDate = normalize.FormatDate(r.AssignmentDate)
	r.SaleDate = normalize.FormatDate(r.SaleDate)
	r.FinanceDeliveryDate = normalize.FormatDate(r.FinanceDeliveryDate)

	totalPrice := numericValue(r.TotalPrice)
	downPayment := numericValue(r.DownPayment)
	tradeIn := numericValue(r.TradeInCredit)
	bankCredit := numericValue(r.BankCredit)

	// Empty stays distinct from an actual zero balance.
	pending := totalPrice - downPayment - tradeIn - bankCredit
	if pending != 0 {
		r.PendingBalance = strconv.FormatFloat(pending, 'f', 2, 64)
	} else {
		r.PendingBalance = ""
	}

	r.Class = string(classifier.Classify(downPayment, tradeIn, bankCredit))
}

// numericValue reads an already-cleaned amount cell, zero when empty.
func numericValue(s string) float64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// dayCount reads an elapsed-day counter cell, zero when blank or not a
// number, never negative.
func dayCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
