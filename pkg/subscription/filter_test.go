package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dailymeet_backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Subscription{}, &model.Meeting{}))
	return db
}

func TestSelectSubscriptionsWindowOverlap(t *testing.T) {
	db := newTestDB(t)

	user := model.User{Name: "Test", Email: "window@example.com"}
	require.NoError(t, db.Create(&user).Error)

	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
	}

	subs := []model.Subscription{
		// Başlangıcı aralıkta
		{UserID: user.ID, PlanType: "daily", StartDate: day(10), EndDate: day(11), PaymentStatus: "completed"},
		// Bitişi aralıkta
		{UserID: user.ID, PlanType: "daily", StartDate: day(5), EndDate: day(10), PaymentStatus: "completed"},
		// Aralığı tamamen kapsıyor
		{UserID: user.ID, PlanType: "monthly", StartDate: day(1), EndDate: day(30), PaymentStatus: "completed"},
		// Tamamen aralık dışı
		{UserID: user.ID, PlanType: "daily", StartDate: day(20), EndDate: day(21), PaymentStatus: "completed"},
	}
	for i := range subs {
		require.NoError(t, db.Create(&subs[i]).Error)
	}

	got, err := SelectSubscriptions(db, day(9), day(12), FilterAll)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSelectSubscriptionsAdminIgnoresDateRange(t *testing.T) {
	db := newTestDB(t)

	user := model.User{Name: "Admin Member", Email: "granted@example.com"}
	require.NoError(t, db.Create(&user).Error)

	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	sub := model.Subscription{
		UserID:        user.ID,
		PlanType:      "unlimited",
		StartDate:     past,
		EndDate:       past.AddDate(0, 0, 1),
		Status:        model.SubStatusActive,
		PaymentStatus: model.PaymentAdminAdded,
	}
	require.NoError(t, db.Create(&sub).Error)

	// Sorgu aralığı abonelik aralığıyla hiç kesişmiyor.
	start := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	got, err := SelectSubscriptions(db, start, start.AddDate(0, 0, 7), FilterAll)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.PaymentAdminAdded, got[0].PaymentStatus)

	// Paid filtresi admin kayıtlarını da kabul eder.
	got, err = SelectSubscriptions(db, start, start.AddDate(0, 0, 7), FilterPaid)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Pending filtresi admin kayıtlarını dışlar.
	got, err = SelectSubscriptions(db, start, start.AddDate(0, 0, 7), FilterPending)
	require.NoError(t, err)
	assert.Len(t, got, 0)
}

func TestSelectSubscriptionsPaymentFilters(t *testing.T) {
	db := newTestDB(t)

	user := model.User{Name: "Filters", Email: "filters@example.com"}
	require.NoError(t, db.Create(&user).Error)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	statuses := []string{"completed", "paid", "success", "pending", "initiated", "failed"}
	for _, s := range statuses {
		sub := model.Subscription{
			UserID:        user.ID,
			PlanType:      "daily",
			StartDate:     day,
			EndDate:       day.AddDate(0, 0, 1),
			PaymentStatus: s,
		}
		require.NoError(t, db.Create(&sub).Error)
	}

	paid, err := SelectSubscriptions(db, day, day.AddDate(0, 0, 1), FilterPaid)
	require.NoError(t, err)
	assert.Len(t, paid, 3)

	pending, err := SelectSubscriptions(db, day, day.AddDate(0, 0, 1), FilterPending)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	all, err := SelectSubscriptions(db, day, day.AddDate(0, 0, 1), FilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestSelectSubscriptionsOrderedByStartDateDesc(t *testing.T) {
	db := newTestDB(t)

	user := model.User{Name: "Order", Email: "order@example.com"}
	require.NoError(t, db.Create(&user).Error)

	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		sub := model.Subscription{
			UserID:        user.ID,
			PlanType:      "daily",
			StartDate:     base.AddDate(0, 0, i),
			EndDate:       base.AddDate(0, 0, i+1),
			PaymentStatus: "completed",
		}
		require.NoError(t, db.Create(&sub).Error)
	}

	got, err := SelectSubscriptions(db, base, base.AddDate(0, 0, 10), FilterAll)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].StartDate.After(got[1].StartDate))
	assert.True(t, got[1].StartDate.After(got[2].StartDate))
}

func TestHasOverlappingSubscription(t *testing.T) {
	db := newTestDB(t)

	user := model.User{Name: "Overlap", Email: "overlap@example.com"}
	require.NoError(t, db.Create(&user).Error)

	day := func(d int) time.Time {
		return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
	}

	sub := model.Subscription{
		UserID:        user.ID,
		PlanType:      "daily",
		StartDate:     day(1),
		EndDate:       day(2),
		Status:        model.SubStatusActive,
		PaymentStatus: "completed",
	}
	require.NoError(t, db.Create(&sub).Error)

	// 3-4 Haziran isteği 1-2 Haziran aboneliğiyle çakışmaz.
	overlap, err := HasOverlappingSubscription(db, user.ID, day(3), day(4))
	require.NoError(t, err)
	assert.False(t, overlap)

	overlap, err = HasOverlappingSubscription(db, user.ID, day(1), day(3))
	require.NoError(t, err)
	assert.True(t, overlap)

	// İptal edilmiş abonelik çakışma sayılmaz.
	require.NoError(t, db.Model(&sub).Update("status", model.SubStatusCancelled).Error)
	overlap, err = HasOverlappingSubscription(db, user.ID, day(1), day(3))
	require.NoError(t, err)
	assert.False(t, overlap)
}
