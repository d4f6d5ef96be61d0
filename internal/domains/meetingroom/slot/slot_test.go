package slot_test

import (
	"testing"
	"time"

	"cowork/internal/domains/meetingroom/slot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "morning", input: "09:00 AM", want: "09:00"},
		{name: "evening", input: "06:30 PM", want: "18:30"},
		{name: "noon", input: "12:00 PM", want: "12:00"},
		{name: "midnight", input: "12:15 AM", want: "00:15"},
		{name: "lower case without space", input: "6:30pm", want: "18:30"},
		{name: "already 24 hour", input: "18:30", want: "18:30"},
		{name: "out of range", input: "13:00 PM", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := slot.To24Hour(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, slot.ErrInvalidClock)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_DefaultHours(t *testing.T) {
	slots, err := slot.Generate(slot.DefaultOpen, slot.DefaultClose, slot.MemberMinutes)
	require.NoError(t, err)

	require.Len(t, slots, 19)
	assert.Equal(t, "09:00 - 09:30", slots[0])
	assert.Equal(t, "18:00 - 18:30", slots[len(slots)-1])
}

func TestGenerate_SlotsStayInsideOpeningHours(t *testing.T) {
	tests := []struct {
		name      string
		openTime  string
		closeTime string
		minutes   int
		wantLen   int
	}{
		{name: "member grid", openTime: "09:00 AM", closeTime: "06:30 PM", minutes: 30, wantLen: 19},
		{name: "non member grid", openTime: "09:00 AM", closeTime: "06:00 PM", minutes: 60, wantLen: 9},
		{name: "hour slots drop the half hour tail", openTime: "09:00 AM", closeTime: "06:30 PM", minutes: 60, wantLen: 9},
		{name: "close before open", openTime: "06:00 PM", closeTime: "09:00 AM", minutes: 30, wantLen: 0},
		{name: "odd length", openTime: "10:00", closeTime: "11:00", minutes: 45, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := slot.Generate(tt.openTime, tt.closeTime, tt.minutes)
			require.NoError(t, err)
			assert.Len(t, slots, tt.wantLen)

			open, _ := slot.To24Hour(tt.openTime)
			closing, _ := slot.To24Hour(tt.closeTime)

			for _, value := range slots {
				interval, err := slot.Parse(value)
				require.NoError(t, err)

				assert.Equal(t, tt.minutes, interval.Minutes())
				assert.GreaterOrEqual(t, interval.String()[:5], open)
				assert.LessOrEqual(t, interval.String()[8:], closing)
			}
		})
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	_, err := slot.Generate("09:00 AM", "06:30 PM", 0)
	assert.ErrorIs(t, err, slot.ErrInvalidDuration)

	_, err = slot.Generate("nine", "06:30 PM", 30)
	assert.ErrorIs(t, err, slot.ErrInvalidClock)
}

func TestParse(t *testing.T) {
	interval, err := slot.Parse("09:00-09:30")
	require.NoError(t, err)
	assert.Equal(t, slot.Interval{Start: 540, End: 570}, interval)

	interval, err = slot.Parse(" 17:00 -  18:00 ")
	require.NoError(t, err)
	assert.Equal(t, "17:00 - 18:00", interval.String())

	_, err = slot.Parse("10:00 - 09:00")
	assert.ErrorIs(t, err, slot.ErrInvalidSlot)

	_, err = slot.Parse("morning")
	assert.ErrorIs(t, err, slot.ErrInvalidSlot)
}

func TestPartition(t *testing.T) {
	candidates, err := slot.Generate(slot.DefaultOpen, slot.DefaultClose, slot.MemberMinutes)
	require.NoError(t, err)

	tests := []struct {
		name         string
		reservations []slot.Reservation
		wantBooked   []string
	}{
		{
			name:       "nothing booked",
			wantBooked: []string{},
		},
		{
			name: "exact slot booked without spaces",
			reservations: []slot.Reservation{
				{Slots: []string{"09:00-09:30"}},
			},
			wantBooked: []string{"09:00 - 09:30"},
		},
		{
			name: "hour booking blocks both halves",
			reservations: []slot.Reservation{
				{Slots: []string{"10:00 - 11:00"}},
			},
			wantBooked: []string{"10:00 - 10:30", "10:30 - 11:00"},
		},
		{
			name: "whole day blocks everything",
			reservations: []slot.Reservation{
				{WholeDay: true},
			},
			wantBooked: candidates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			available, booked := slot.Partition(candidates, tt.reservations)

			assert.Equal(t, tt.wantBooked, booked)
			assert.Len(t, available, len(candidates)-len(booked))

			seen := map[string]int{}
			for _, value := range available {
				seen[slot.Normalize(value)]++
			}

			for _, value := range booked {
				seen[slot.Normalize(value)]++
			}

			assert.Len(t, seen, len(candidates))

			for _, count := range seen {
				assert.Equal(t, 1, count)
			}
		})
	}
}

func TestConflicts(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		wholeDay  bool
		existing  []slot.Reservation
		want      []string
	}{
		{
			name:      "free day",
			requested: []string{"09:00 - 10:00"},
			want:      nil,
		},
		{
			name:      "overlapping hour",
			requested: []string{"09:00 - 10:00", "11:00 - 12:00"},
			existing:  []slot.Reservation{{Slots: []string{"09:30 - 10:00"}}},
			want:      []string{"09:00 - 10:00"},
		},
		{
			name:      "adjacent slots do not collide",
			requested: []string{"10:00 - 10:30"},
			existing:  []slot.Reservation{{Slots: []string{"09:30 - 10:00"}}},
			want:      nil,
		},
		{
			name:      "hourly against whole day",
			requested: []string{"15:00 - 16:00"},
			existing:  []slot.Reservation{{WholeDay: true}},
			want:      []string{"15:00 - 16:00"},
		},
		{
			name:     "whole day against hourly",
			wholeDay: true,
			existing: []slot.Reservation{{Slots: []string{"12:00 - 13:00"}}},
			want:     []string{"12:00 - 13:00"},
		},
		{
			name:     "whole day against whole day",
			wholeDay: true,
			existing: []slot.Reservation{{WholeDay: true}},
			want:     []string{"Whole Day"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slot.Conflicts(tt.requested, tt.wholeDay, tt.existing))
		})
	}
}

func TestOnGrid(t *testing.T) {
	assert.True(t, slot.OnGrid("09:30-10:00", slot.DefaultOpen, slot.DefaultClose, slot.MemberMinutes))
	assert.False(t, slot.OnGrid("09:15 - 09:45", slot.DefaultOpen, slot.DefaultClose, slot.MemberMinutes))
	assert.False(t, slot.OnGrid("18:00 - 19:00", slot.DefaultOpen, slot.NonMemberClose, slot.NonMemberMinutes))
}

func TestMonth(t *testing.T) {
	booked := map[string]struct{}{
		"2024-02-10": {},
		"2024-02-29": {},
		"2024-03-01": {},
	}

	free, taken := slot.Month(2024, time.February, booked)

	assert.Equal(t, []string{"2024-02-10", "2024-02-29"}, taken)
	assert.Len(t, free, 27)
	assert.Equal(t, "2024-02-01", free[0])
	assert.NotContains(t, free, "2024-02-10")
}
