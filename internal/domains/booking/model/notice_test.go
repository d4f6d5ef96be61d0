package model_test

import (
	"testing"
	"time"

	"cowork/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
)

func TestNotice_InNotice(t *testing.T) {
	submitted := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	notice := model.Notice{SubmittedDate: submitted, PeriodDays: 30}

	tests := []struct {
		name string
		day  int
		want bool
	}{
		{name: "day zero", day: 0, want: true},
		{name: "day fifteen", day: 15, want: true},
		{name: "last day", day: 29, want: true},
		{name: "expiry day", day: 30, want: false},
		{name: "after expiry", day: 45, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, notice.InNotice(submitted.AddDate(0, 0, tt.day)))
		})
	}
}

func TestNotice_DaysRemaining(t *testing.T) {
	submitted := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	notice := model.Notice{SubmittedDate: submitted, PeriodDays: 30}

	assert.Equal(t, 30, notice.DaysRemaining(submitted))
	assert.Equal(t, 30, notice.DaysRemaining(submitted.Add(time.Hour)))
	assert.Equal(t, 1, notice.DaysRemaining(submitted.AddDate(0, 0, 29)))
	assert.Equal(t, 0, notice.DaysRemaining(submitted.AddDate(0, 0, 30)))
	assert.Equal(t, 0, notice.DaysRemaining(submitted.AddDate(0, 0, 90)))

	previous := notice.DaysRemaining(submitted)
	for hour := 1; hour <= 40*24; hour += 7 {
		current := notice.DaysRemaining(submitted.Add(time.Duration(hour) * time.Hour))

		assert.GreaterOrEqual(t, current, 0)
		assert.LessOrEqual(t, current, previous)

		previous = current
	}
}

func TestBooking_Notice(t *testing.T) {
	submitted := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)

	_, ok := model.Booking{Status: model.StatusConfirm}.Notice()
	assert.False(t, ok)

	notice, ok := model.Booking{
		Status:              model.StatusNoticeGiven,
		NoticeGiven:         true,
		NoticeSubmittedDate: &submitted,
		NoticePeriodDays:    10,
	}.Notice()

	assert.True(t, ok)
	assert.Equal(t, submitted.AddDate(0, 0, 10), notice.ExpireDate())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input  string
		want   model.Status
		wantOK bool
	}{
		{input: "confirm", want: model.StatusConfirm, wantOK: true},
		{input: "Confirmed", want: model.StatusConfirm, wantOK: true},
		{input: " reject ", want: model.StatusRejected, wantOK: true},
		{input: "Rejected", want: model.StatusRejected, wantOK: true},
		{input: "Notice Given", want: model.StatusNoticeGiven, wantOK: true},
		{input: "done", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := model.ParseStatus(tt.input)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
