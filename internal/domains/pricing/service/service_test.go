package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"venue/config"
	"venue/infras/otel/mocks"
	facilityMocks "venue/internal/domains/facility/mocks"
	facilityModel "venue/internal/domains/facility/model"
	"venue/internal/domains/pricing/model/dto"
	"venue/internal/domains/pricing/service"
	"venue/shared/constant"
	"venue/shared/failure"
)

func floatPtr(v float64) *float64 {
	return &v
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Booking.CleaningCharge = 500
	cfg.Booking.SecurityDeposit = 2000

	return cfg
}

func TestComputeCost(t *testing.T) {
	rates := facilityModel.RateTable{RatePeak: 8000, RateOffPeak: 6000}

	tests := []struct {
		name      string
		role      string
		startHour int
		endHour   int
		want      float64
	}{
		{
			name:      "full day outsider",
			role:      constant.RoleOutsider,
			startHour: 9,
			endHour:   17,
			want:      10500, // 8000/8 * 8 + 500 + 2000
		},
		{
			name:      "single hour student uses off-peak fallback",
			role:      constant.RoleStudent,
			startHour: 10,
			endHour:   11,
			want:      3250, // 6000/8 * 1 + 500 + 2000
		},
		{
			name:      "zero duration costs nothing",
			role:      constant.RoleOutsider,
			startHour: 12,
			endHour:   12,
			want:      0,
		},
		{
			name:      "inverted range costs nothing",
			role:      constant.RoleOutsider,
			startHour: 15,
			endHour:   10,
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.ComputeCost(rates, tt.role, tt.startHour, tt.endHour, 500, 2000)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeCost_RoundsToWholeUnit(t *testing.T) {
	// 1000/8 = 125 per hour; 3 hours = 375; +2500 = 2875, no fraction.
	// 1001/8 = 125.125; 3 hours = 375.375; +2500 = 2875.375 -> 2875.
	rates := facilityModel.RateTable{RatePeak: 1001, RateOffPeak: 1001}

	got := service.ComputeCost(rates, constant.RoleOutsider, 9, 12, 500, 2000)
	assert.Equal(t, 2875.0, got)
}

func TestPricingService_Quote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFacilityRepo := facilityMocks.NewMockFacility(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockFacilityRepo, testConfig(), mockOtel)

	facility := facilityModel.Facility{
		ID:   "facility-1",
		Name: "Main Auditorium",
		RateTable: facilityModel.RateTable{
			RatePeak:     8000,
			RateOffPeak:  6000,
			RateOutsider: floatPtr(8000),
		},
	}

	tests := []struct {
		name      string
		req       dto.QuoteRequest
		role      string
		setupMock func()
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.QuoteResponse)
	}{
		{
			name: "outsider full day",
			req:  dto.QuoteRequest{FacilityID: "facility-1", StartTime: "09:00", EndTime: "17:00"},
			role: constant.RoleOutsider,
			setupMock: func() {
				mockFacilityRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(facility, nil)
			},
			check: func(t *testing.T, res dto.QuoteResponse) {
				assert.True(t, res.Complete)
				assert.Equal(t, 8, res.DurationHours)
				assert.Equal(t, 1000.0, res.HourlyRate)
				assert.Equal(t, 10500.0, res.TotalCost)
			},
		},
		{
			name: "inverted range yields incomplete zero-cost quote",
			req:  dto.QuoteRequest{FacilityID: "facility-1", StartTime: "17:00", EndTime: "09:00"},
			role: constant.RoleOutsider,
			setupMock: func() {
				mockFacilityRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(facility, nil)
			},
			check: func(t *testing.T, res dto.QuoteResponse) {
				assert.False(t, res.Complete)
				assert.Zero(t, res.TotalCost)
				assert.Zero(t, res.DurationHours)
			},
		},
		{
			name: "unknown facility",
			req:  dto.QuoteRequest{FacilityID: "missing", StartTime: "09:00", EndTime: "10:00"},
			role: constant.RoleOutsider,
			setupMock: func() {
				mockFacilityRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(facilityModel.Facility{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:      "malformed time slot",
			req:       dto.QuoteRequest{FacilityID: "facility-1", StartTime: "half past nine", EndTime: "10:00"},
			role:      constant.RoleOutsider,
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyRequesterRole, tt.role)
			res, err := svc.Quote(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestPricingService_Quote_Deterministic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFacilityRepo := facilityMocks.NewMockFacility(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockFacilityRepo, testConfig(), mockOtel)

	facility := facilityModel.Facility{
		ID:        "facility-1",
		RateTable: facilityModel.RateTable{RatePeak: 8000, RateOffPeak: 6000},
	}

	mockFacilityRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(facility, nil).
		Times(2)

	ctx := context.WithValue(context.Background(), constant.ContextKeyRequesterRole, constant.RoleEmployee)
	req := dto.QuoteRequest{FacilityID: "facility-1", StartTime: "10:00", EndTime: "14:00"}

	first, err := svc.Quote(ctx, req)
	assert.NoError(t, err)

	second, err := svc.Quote(ctx, req)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}
