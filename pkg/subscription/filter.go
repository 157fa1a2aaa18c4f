package subscription

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"dailymeet_backend/internal/model"
)

type PaymentFilter string

const (
	FilterAll     PaymentFilter = "all"
	FilterPaid    PaymentFilter = "paid"
	FilterPending PaymentFilter = "pending"
)

// ParsePaymentFilter query parametresini filtreye çevirir, boş değer "all" sayılır.
func ParsePaymentFilter(s string) (PaymentFilter, error) {
	switch PaymentFilter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPaid:
		return FilterPaid, nil
	case FilterPending:
		return FilterPending, nil
	default:
		return "", fmt.Errorf("invalid payment filter: %q", s)
	}
}

// SelectSubscriptions [start, end] aralığına denk gelen abonelikleri seçer.
// Bir abonelik şu durumlarda eşleşir: başlangıcı aralıkta, bitişi aralıkta,
// aralığı tamamen kapsıyor, ya da ödeme durumu admin rezerve durumlarından
// biri (bu durumda tarihten bağımsız her zaman eşleşir).
func SelectSubscriptions(db *gorm.DB, start, end time.Time, filter PaymentFilter) ([]model.Subscription, error) {
	var subs []model.Subscription

	window := db.
		Where("start_date BETWEEN ? AND ?", start, end).
		Or("end_date BETWEEN ? AND ?", start, end).
		Or("start_date <= ? AND end_date >= ?", start, end).
		Or("payment_status IN ?", adminGrantedStatuses)

	q := db.Model(&model.Subscription{}).Preload("User").Where(window)

	switch filter {
	case FilterPaid:
		q = q.Where("payment_status IN ?", PaidStatuses())
	case FilterPending:
		q = q.Where("payment_status IN ?", PendingStatuses())
	}

	// En yeni abonelik önce; sıralama sadece görüntüleme kolaylığı için.
	if err := q.Order("start_date DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// HasOverlappingSubscription kullanıcının istenen pencereyle çakışan aktif
// veya bekleyen bir aboneliği olup olmadığını kontrol eder. Karşılaştırma
// IntervalsOverlap ile aynı yarı açık semantiği kullanır.
func HasOverlappingSubscription(db *gorm.DB, userID uint, newStart, newEnd time.Time) (bool, error) {
	var count int64
	err := db.Model(&model.Subscription{}).
		Where("user_id = ?", userID).
		Where("status IN ?", []string{model.SubStatusActive, model.SubStatusPending}).
		Where("start_date < ? AND end_date > ?", newEnd, newStart).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
