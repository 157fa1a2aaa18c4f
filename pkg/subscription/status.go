package subscription

import (
	"strings"
	"time"

	"dailymeet_backend/internal/model"
)

// Plan kovaları
const (
	PlanDaily     = "daily"
	PlanMonthly   = "monthly"
	PlanUnlimited = "unlimited"
)

// adminGrantedStatuses admin tarafından verilen aboneliklerin rezerve
// ödeme durumları. Bu kayıtlar tarih filtrelerinden bağımsız olarak
// her zaman geçerli sayılır.
var adminGrantedStatuses = []string{
	model.PaymentAdminAdded,
	model.PaymentAdminCreated,
}

// invalidPaymentStatuses gelire dahil edilmeyen ödeme durumları.
var invalidPaymentStatuses = map[string]bool{
	"failed":    true,
	"cancelled": true,
	"canceled":  true,
	"pending":   true,
	"initiated": true,
}

func AdminGrantedStatuses() []string {
	out := make([]string, len(adminGrantedStatuses))
	copy(out, adminGrantedStatuses)
	return out
}

func IsAdminGranted(paymentStatus string) bool {
	s := strings.ToLower(strings.TrimSpace(paymentStatus))
	for _, a := range adminGrantedStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// IsValidPayment bir aboneliğin gelire sayılıp sayılmayacağını belirler.
// Tek doğruluk kaynağı budur; durum listesini başka yerde tekrarlamayın.
func IsValidPayment(paymentStatus string) bool {
	return !invalidPaymentStatuses[strings.ToLower(strings.TrimSpace(paymentStatus))]
}

// PaidStatuses "paid" filtresinin kabul ettiği ödeme durumları.
func PaidStatuses() []string {
	return append([]string{
		model.PaymentCompleted,
		model.PaymentPaid,
		model.PaymentSuccess,
	}, adminGrantedStatuses...)
}

// PendingStatuses "pending" filtresinin kabul ettiği ödeme durumları.
func PendingStatuses() []string {
	return []string{
		model.PaymentPending,
		model.PaymentInitiated,
		model.PaymentFailed,
	}
}

// NormalizePlan plan etiketini üç kovadan birine indirger ve kaç koltuk
// saydığını döner. Aile/combo aylık planlar iki aylık koltuk olarak
// faturalandığı için 2 döner.
func NormalizePlan(planType string) (bucket string, seats int) {
	p := strings.ToLower(strings.TrimSpace(planType))

	if strings.Contains(p, "family") || strings.Contains(p, "combo") {
		return PlanMonthly, 2
	}
	if strings.Contains(p, "unlimit") {
		return PlanUnlimited, 1
	}
	if strings.Contains(p, "month") {
		return PlanMonthly, 1
	}
	return PlanDaily, 1
}

// IntervalsOverlap yarı açık aralık semantiğiyle çakışma kontrolü yapar:
// [newStart, newEnd) ile [existingStart, existingEnd) ancak
// newStart < existingEnd && newEnd > existingStart ise çakışır.
// Bitişik aralıklar (birinin bitişi diğerinin başlangıcı) çakışma sayılmaz.
func IntervalsOverlap(newStart, newEnd, existingStart, existingEnd time.Time) bool {
	return newStart.Before(existingEnd) && newEnd.After(existingStart)
}
