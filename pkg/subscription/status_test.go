package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPayment(t *testing.T) {
	invalid := []string{"failed", "cancelled", "canceled", "pending", "initiated", "FAILED", " pending "}
	for _, s := range invalid {
		assert.False(t, IsValidPayment(s), "status %q should not count toward revenue", s)
	}

	valid := []string{"completed", "paid", "success", "admin-added", "admin-created", "refund-requested"}
	for _, s := range valid {
		assert.True(t, IsValidPayment(s), "status %q should count toward revenue", s)
	}
}

func TestIsAdminGranted(t *testing.T) {
	assert.True(t, IsAdminGranted("admin-added"))
	assert.True(t, IsAdminGranted("admin-created"))
	assert.True(t, IsAdminGranted("ADMIN-ADDED"))
	assert.False(t, IsAdminGranted("completed"))
	assert.False(t, IsAdminGranted(""))
}

func TestNormalizePlan(t *testing.T) {
	cases := []struct {
		plan   string
		bucket string
		seats  int
	}{
		{"daily", PlanDaily, 1},
		{"Daily Pass", PlanDaily, 1},
		{"monthly", PlanMonthly, 1},
		{"Monthly-Standard", PlanMonthly, 1},
		{"family-monthly", PlanMonthly, 2},
		{"Combo Monthly", PlanMonthly, 2},
		{"unlimited", PlanUnlimited, 1},
		{"Unlimited Access", PlanUnlimited, 1},
		{"something-else", PlanDaily, 1},
	}

	for _, tc := range cases {
		bucket, seats := NormalizePlan(tc.plan)
		assert.Equal(t, tc.bucket, bucket, "plan %q", tc.plan)
		assert.Equal(t, tc.seats, seats, "plan %q", tc.plan)
	}
}

func TestIntervalsOverlap(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
	}

	// Mevcut abonelik 1-2 Haziran, yeni istek 3-4 Haziran: çakışma yok.
	assert.False(t, IntervalsOverlap(day(3), day(4), day(1), day(2)))

	// Bitişik aralıklar yarı açık semantikte çakışmaz.
	assert.False(t, IntervalsOverlap(day(2), day(3), day(1), day(2)))

	assert.True(t, IntervalsOverlap(day(1), day(3), day(2), day(4)))
	assert.True(t, IntervalsOverlap(day(2), day(4), day(1), day(3)))
	assert.True(t, IntervalsOverlap(day(1), day(10), day(3), day(4)))
	assert.True(t, IntervalsOverlap(day(3), day(4), day(1), day(10)))
}

func TestPaidAndPendingStatuses(t *testing.T) {
	paid := PaidStatuses()
	assert.ElementsMatch(t, []string{"completed", "paid", "success", "admin-added", "admin-created"}, paid)

	pending := PendingStatuses()
	assert.ElementsMatch(t, []string{"pending", "initiated", "failed"}, pending)
}
