package subscription

import (
	"time"

	"dailymeet_backend/internal/model"
)

const dayFormat = "2006-01-02"

// StatusBreakdown ham ödeme durumu başına toplamlar.
type StatusBreakdown struct {
	Count        int     `json:"count"`
	Revenue      float64 `json:"revenue"`
	DurationDays int     `json:"duration_days"`
}

// Summary bir abonelik kümesinin türetilmiş özetidir. Hiçbir zaman
// veritabanına yazılmaz; her istekte yeniden hesaplanır.
type Summary struct {
	TotalSubscriptions  int                        `json:"total_subscriptions"`
	TotalRevenue        float64                    `json:"total_revenue"`
	SubscriptionsByPlan map[string]int             `json:"subscriptions_by_plan"`
	RevenueByPlan       map[string]float64         `json:"revenue_by_plan"`
	RevenueByDay        map[string]float64         `json:"revenue_by_day"`
	SubscriptionsByDay  map[string]int             `json:"subscriptions_by_day"`
	ByPaymentStatus     map[string]StatusBreakdown `json:"by_payment_status"`
	ActiveCount         int                        `json:"active_count"`
	ExpiredCount        int                        `json:"expired_count"`
	UpcomingCount       int                        `json:"upcoming_count"`
}

// Aggregate abonelik koleksiyonunu gün, plan ve ödeme durumu bazında
// toplamlar halinde katlar. Saf fonksiyondur: I/O yapmaz, girdilerini
// değiştirmez; sonuç girdiler ve now parametresiyle deterministiktir.
func Aggregate(subs []model.Subscription, rangeStart, rangeEnd, now time.Time) Summary {
	s := Summary{
		TotalSubscriptions:  len(subs),
		SubscriptionsByPlan: map[string]int{PlanDaily: 0, PlanMonthly: 0, PlanUnlimited: 0},
		RevenueByPlan:       map[string]float64{PlanDaily: 0, PlanMonthly: 0, PlanUnlimited: 0},
		RevenueByDay:        map[string]float64{},
		SubscriptionsByDay:  map[string]int{},
		ByPaymentStatus:     map[string]StatusBreakdown{},
	}

	for _, sub := range subs {
		bucket, seats := NormalizePlan(sub.PlanType)
		s.SubscriptionsByPlan[bucket] += seats

		if IsValidPayment(sub.PaymentStatus) {
			s.TotalRevenue += sub.Price
			s.RevenueByPlan[bucket] += sub.Price
		}

		b := s.ByPaymentStatus[sub.PaymentStatus]
		b.Count++
		b.Revenue += sub.Price
		b.DurationDays += sub.DurationDays
		s.ByPaymentStatus[sub.PaymentStatus] = b

		if sub.Status == model.SubStatusActive && !now.Before(sub.StartDate) && !now.After(sub.EndDate) {
			s.ActiveCount++
		}
		if sub.EndDate.Before(now) || sub.Status == model.SubStatusExpired {
			s.ExpiredCount++
		}
		if sub.Status == model.SubStatusActive && sub.StartDate.After(now) {
			s.UpcomingCount++
		}
	}

	// Günlük seri: aralık gün gün yürünür, her takvim günü için tam bir
	// kayıt üretilir (boşluk ya da tekrar yok).
	start := truncateToDay(rangeStart)
	end := truncateToDay(rangeEnd)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayFormat)
		revenue := 0.0
		count := 0
		for _, sub := range subs {
			if sub.StartDate.Format(dayFormat) != key {
				continue
			}
			count++
			if IsValidPayment(sub.PaymentStatus) {
				revenue += sub.Price
			}
		}
		s.RevenueByDay[key] = revenue
		s.SubscriptionsByDay[key] = count
	}

	return s
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
