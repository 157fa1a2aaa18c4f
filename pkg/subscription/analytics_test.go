package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailymeet_backend/internal/model"
)

func TestAggregatePlanAndRevenueScenario(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	jan5 := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	subs := []model.Subscription{
		{
			PlanType:      "family-monthly",
			Price:         4499,
			PaymentStatus: "completed",
			StartDate:     jan5,
			EndDate:       jan5.AddDate(0, 1, 0),
		},
		{
			PlanType:      "daily",
			Price:         299,
			PaymentStatus: "pending",
			StartDate:     jan5,
			EndDate:       jan5.AddDate(0, 0, 1),
		},
	}

	s := Aggregate(subs, start, end, end)

	assert.Equal(t, 2, s.SubscriptionsByPlan[PlanMonthly], "family plan counts as two monthly seats")
	assert.Equal(t, float64(4499), s.RevenueByPlan[PlanMonthly])
	assert.Equal(t, 1, s.SubscriptionsByPlan[PlanDaily])
	assert.Equal(t, float64(0), s.RevenueByPlan[PlanDaily], "pending payment is excluded from revenue")
	assert.Equal(t, float64(4499), s.RevenueByDay["2024-01-05"])
	assert.Equal(t, 2, s.SubscriptionsByDay["2024-01-05"], "count includes invalid payments")
	assert.Equal(t, float64(4499), s.TotalRevenue)
}

func TestAggregateDailySeriesHasOneEntryPerDay(t *testing.T) {
	start := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	s := Aggregate(nil, start, end, end)

	expected := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	require.Len(t, s.RevenueByDay, len(expected))
	require.Len(t, s.SubscriptionsByDay, len(expected))
	for _, key := range expected {
		_, ok := s.RevenueByDay[key]
		assert.True(t, ok, "missing day %s", key)
		assert.GreaterOrEqual(t, s.SubscriptionsByDay[key], 0)
	}
}

func TestAggregateRevenueExcludesInvalidPayments(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	subs := []model.Subscription{
		{PlanType: "daily", Price: 100, PaymentStatus: "failed", StartDate: day, EndDate: day},
		{PlanType: "daily", Price: 100, PaymentStatus: "cancelled", StartDate: day, EndDate: day},
		{PlanType: "daily", Price: 100, PaymentStatus: "canceled", StartDate: day, EndDate: day},
		{PlanType: "daily", Price: 100, PaymentStatus: "pending", StartDate: day, EndDate: day},
		{PlanType: "daily", Price: 100, PaymentStatus: "initiated", StartDate: day, EndDate: day},
		{PlanType: "monthly", Price: 500, PaymentStatus: "completed", StartDate: day, EndDate: day.AddDate(0, 1, 0)},
		{PlanType: "unlimited", Price: 0, PaymentStatus: "admin-added", StartDate: day, EndDate: day.AddDate(10, 0, 0)},
	}

	s := Aggregate(subs, day, day, day)

	assert.Equal(t, float64(500), s.TotalRevenue, "only valid payments count, admin grants at price 0 included")
	assert.Equal(t, 7, s.SubscriptionsByDay["2024-05-01"])
}

func TestAggregateStatusBreakdown(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	subs := []model.Subscription{
		{PlanType: "daily", Price: 100, DurationDays: 1, PaymentStatus: "completed", StartDate: day, EndDate: day},
		{PlanType: "daily", Price: 150, DurationDays: 1, PaymentStatus: "completed", StartDate: day, EndDate: day},
		{PlanType: "monthly", Price: 900, DurationDays: 30, PaymentStatus: "failed", StartDate: day, EndDate: day},
	}

	s := Aggregate(subs, day, day, day)

	completed := s.ByPaymentStatus["completed"]
	assert.Equal(t, 2, completed.Count)
	assert.Equal(t, float64(250), completed.Revenue)
	assert.Equal(t, 2, completed.DurationDays)

	failed := s.ByPaymentStatus["failed"]
	assert.Equal(t, 1, failed.Count)
	assert.Equal(t, float64(900), failed.Revenue, "raw breakdown sums price regardless of validity")
	assert.Equal(t, 30, failed.DurationDays)
}

func TestAggregateActiveExpiredUpcoming(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	subs := []model.Subscription{
		// Şu an aktif
		{Status: model.SubStatusActive, StartDate: now.AddDate(0, 0, -5), EndDate: now.AddDate(0, 0, 5)},
		// Bitişi geçmişte
		{Status: model.SubStatusActive, StartDate: now.AddDate(0, -2, 0), EndDate: now.AddDate(0, -1, 0)},
		// Durumu expired
		{Status: model.SubStatusExpired, StartDate: now.AddDate(0, -2, 0), EndDate: now.AddDate(0, 1, 0)},
		// Gelecekte başlıyor
		{Status: model.SubStatusActive, StartDate: now.AddDate(0, 0, 3), EndDate: now.AddDate(0, 1, 0)},
	}

	s := Aggregate(subs, now, now, now)

	assert.Equal(t, 1, s.ActiveCount)
	assert.Equal(t, 2, s.ExpiredCount)
	assert.Equal(t, 1, s.UpcomingCount)
}
