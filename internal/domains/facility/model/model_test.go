package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"venue/internal/domains/facility/model"
	"venue/shared/constant"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestRateTable_SeasonRate(t *testing.T) {
	rates := model.RateTable{RatePeak: 12000, RateOffPeak: 9000}

	assert.Equal(t, 12000.0, rates.SeasonRate(constant.SeasonPeak))
	assert.Equal(t, 9000.0, rates.SeasonRate(constant.SeasonOffPeak))
	assert.Equal(t, 12000.0, rates.SeasonRate("unknown"), "unknown season falls back to peak")
}

func TestRateTable_RoleRate(t *testing.T) {
	tests := []struct {
		name  string
		rates model.RateTable
		role  string
		want  float64
	}{
		{
			name:  "employee uses its override",
			rates: model.RateTable{RatePeak: 12000, RateOffPeak: 9000, RateEmployee: floatPtr(6000)},
			role:  constant.RoleEmployee,
			want:  6000,
		},
		{
			name:  "employee falls back to peak",
			rates: model.RateTable{RatePeak: 12000, RateOffPeak: 9000},
			role:  constant.RoleEmployee,
			want:  12000,
		},
		{
			name:  "student uses its override",
			rates: model.RateTable{RatePeak: 12000, RateOffPeak: 9000, RateStudent: floatPtr(4000)},
			role:  constant.RoleStudent,
			want:  4000,
		},
		{
			name:  "student falls back to off-peak",
			rates: model.RateTable{RatePeak: 12000, RateOffPeak: 9000},
			role:  constant.RoleStudent,
			want:  9000,
		},
		{
			name:  "outsider uses its override",
			rates: model.RateTable{RatePeak: 12000, RateOffPeak: 9000, RateOutsider: floatPtr(15000)},
			role:  constant.RoleOutsider,
			want:  15000,
		},
		{
			name:  "outsider falls back to peak",
			rates: model.RateTable{RatePeak: 12000, RateOffPeak: 9000},
			role:  constant.RoleOutsider,
			want:  12000,
		},
		{
			name:  "unknown role treated as outsider",
			rates: model.RateTable{RatePeak: 12000, RateOffPeak: 9000, RateOutsider: floatPtr(15000)},
			role:  "visitor",
			want:  15000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rates.RoleRate(tt.role))
		})
	}
}

func TestRateTable_PriceFor(t *testing.T) {
	tests := []struct {
		name   string
		rates  model.RateTable
		role   string
		season string
		want   float64
	}{
		{
			name:   "role override wins over season",
			rates:  model.RateTable{RatePeak: 12000, RateOffPeak: 9000, RateStudent: floatPtr(4000)},
			role:   constant.RoleStudent,
			season: constant.SeasonPeak,
			want:   4000,
		},
		{
			name:   "no override uses season rate",
			rates:  model.RateTable{RatePeak: 12000, RateOffPeak: 9000},
			role:   constant.RoleStudent,
			season: constant.SeasonOffPeak,
			want:   9000,
		},
		{
			name:   "outsider without override in peak",
			rates:  model.RateTable{RatePeak: 12000, RateOffPeak: 9000},
			role:   constant.RoleOutsider,
			season: constant.SeasonPeak,
			want:   12000,
		},
		{
			name:   "zero rates resolve without panicking",
			rates:  model.RateTable{},
			role:   constant.RoleEmployee,
			season: constant.SeasonOffPeak,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rates.PriceFor(tt.role, tt.season))
		})
	}
}
