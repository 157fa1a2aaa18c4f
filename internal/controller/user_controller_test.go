package controller

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailymeet_backend/internal/model"
)

func TestBuildUsersCSV(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	users := []model.User{
		{
			Name:  "Asha Verma",
			Email: "asha@example.com",
			Phone: "+911234500001",
			Subscriptions: []model.Subscription{
				{
					PlanType:      "monthly",
					Status:        model.SubStatusActive,
					PaymentStatus: "completed",
					StartDate:     start,
					EndDate:       start.AddDate(0, 1, 0),
					Price:         2499,
				},
			},
		},
		{
			Name:  "No Subs",
			Email: "empty@example.com",
		},
	}

	data, err := BuildUsersCSV(users)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per user")

	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "plan_type", records[0][5])

	assert.Equal(t, "asha@example.com", records[1][2])
	assert.Equal(t, "monthly", records[1][5])
	assert.Equal(t, "2499.00", records[1][10])

	assert.Equal(t, "empty@example.com", records[2][2])
	assert.Equal(t, "", records[2][5], "users without subscriptions leave plan columns blank")
}

func TestBuildUsersCSVPicksLatestSubscription(t *testing.T) {
	old := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	users := []model.User{
		{
			Name:  "Two Subs",
			Email: "two@example.com",
			Subscriptions: []model.Subscription{
				{PlanType: "daily", StartDate: old, EndDate: old.AddDate(0, 0, 1)},
				{PlanType: "monthly", StartDate: recent, EndDate: recent.AddDate(0, 1, 0)},
			},
		},
	}

	data, err := BuildUsersCSV(users)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "monthly", records[1][5])
}
