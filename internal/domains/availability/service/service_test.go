package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"venue/config"
	"venue/infras/otel/mocks"
	availabilityMocks "venue/internal/domains/availability/mocks"
	"venue/internal/domains/availability/model"
	"venue/internal/domains/availability/service"
	facilityMocks "venue/internal/domains/facility/mocks"
	cacheMocks "venue/shared/cache/mocks"
	"venue/shared/constant"
	"venue/shared/failure"
	"venue/shared/timezone"
)

type availabilityMockSet struct {
	repo         *availabilityMocks.MockAvailability
	facilityRepo *facilityMocks.MockFacility
	cache        *cacheMocks.MockRedisCache
}

func newAvailabilityService(t *testing.T) (service.Availability, availabilityMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	set := availabilityMockSet{
		repo:         availabilityMocks.NewMockAvailability(ctrl),
		facilityRepo: facilityMocks.NewMockFacility(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	set.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError).AnyTimes()
	set.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(set.repo, set.facilityRepo, cfg, set.cache, mocks.NewOtel())

	return svc, set
}

func slotOn(date time.Time, status string) model.Slot {
	return model.Slot{
		ID:         "slot-" + date.Format(constant.DayFormat),
		FacilityID: "facility-1",
		SlotDate:   date,
		Status:     status,
	}
}

func TestAvailabilityService_StatusOf(t *testing.T) {
	tests := []struct {
		name string
		slot model.Slot
		want string
	}{
		{
			name: "absent row is available",
			slot: model.Slot{},
			want: model.StatusAvailable,
		},
		{
			name: "pending row",
			slot: model.Slot{ID: "slot-1", Status: model.StatusPending},
			want: model.StatusPending,
		},
		{
			name: "booked row",
			slot: model.Slot{ID: "slot-1", Status: model.StatusBooked},
			want: model.StatusBooked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newAvailabilityService(t)

			set.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.slot, nil)

			status, err := svc.StatusOf(context.Background(), "facility-1", timezone.Today())

			assert.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestAvailabilityService_IsBookable(t *testing.T) {
	tomorrow := timezone.Today().AddDate(0, 0, 1).Format(constant.DayFormat)
	today := timezone.Today().Format(constant.DayFormat)
	yesterday := timezone.Today().AddDate(0, 0, -1).Format(constant.DayFormat)

	tests := []struct {
		name     string
		date     string
		slot     model.Slot
		bookable bool
	}{
		{
			name:     "future available date is bookable",
			date:     tomorrow,
			slot:     model.Slot{},
			bookable: true,
		},
		{
			name:     "future pending date stays bookable",
			date:     tomorrow,
			slot:     model.Slot{ID: "slot-1", Status: model.StatusPending},
			bookable: true,
		},
		{
			name:     "future booked date is not bookable",
			date:     tomorrow,
			slot:     model.Slot{ID: "slot-1", Status: model.StatusBooked},
			bookable: false,
		},
		{
			name:     "today is excluded",
			date:     today,
			slot:     model.Slot{},
			bookable: false,
		},
		{
			name:     "past date is not bookable",
			date:     yesterday,
			slot:     model.Slot{},
			bookable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newAvailabilityService(t)

			set.facilityRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(true, nil)

			set.repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.slot, nil)

			res, err := svc.IsBookable(context.Background(), "facility-1", tt.date)

			assert.NoError(t, err)
			assert.Equal(t, tt.bookable, res.Bookable)
		})
	}
}

func TestAvailabilityService_IsBookable_UnknownFacility(t *testing.T) {
	svc, set := newAvailabilityService(t)

	set.facilityRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(false, nil)

	_, err := svc.IsBookable(context.Background(), "missing", timezone.Today().Format(constant.DayFormat))

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestAvailabilityService_IsBookable_InvalidDate(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	_, err := svc.IsBookable(context.Background(), "facility-1", "next tuesday")

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestAvailabilityService_Calendar_PastMonthOutranksSlots(t *testing.T) {
	svc, set := newAvailabilityService(t)

	bookedDay, err := timezone.Parse(constant.DayFormat, "2020-01-15")
	assert.NoError(t, err)

	set.facilityRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	set.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Slot{slotOn(bookedDay, model.StatusBooked)}, nil)

	res, err := svc.Calendar(context.Background(), "facility-1", "2020-01")

	assert.NoError(t, err)
	assert.Len(t, res.Days, 31)

	for _, day := range res.Days {
		assert.Equal(t, model.DayPast, day.Status, "day %s", day.Date)
	}
}

func TestAvailabilityService_Calendar_FutureMonthClassification(t *testing.T) {
	svc, set := newAvailabilityService(t)

	firstOfMonth := timezone.Today().AddDate(0, 1, 0)
	firstOfMonth = time.Date(firstOfMonth.Year(), firstOfMonth.Month(), 1, 0, 0, 0, 0, firstOfMonth.Location())
	month := firstOfMonth.Format(constant.MonthFormat)

	bookedDay := firstOfMonth.AddDate(0, 0, 4)
	pendingDay := firstOfMonth.AddDate(0, 0, 9)

	set.facilityRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	set.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Slot{
			slotOn(bookedDay, model.StatusBooked),
			slotOn(pendingDay, model.StatusPending),
		}, nil)

	res, err := svc.Calendar(context.Background(), "facility-1", month)

	assert.NoError(t, err)

	byDate := map[string]string{}
	for _, day := range res.Days {
		byDate[day.Date] = day.Status
	}

	assert.Equal(t, model.DayBooked, byDate[bookedDay.Format(constant.DayFormat)])
	assert.Equal(t, model.DayPending, byDate[pendingDay.Format(constant.DayFormat)])
	assert.Equal(t, model.DayAvailable, byDate[firstOfMonth.Format(constant.DayFormat)])
}

func TestAvailabilityService_Calendar_InvalidMonth(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	_, err := svc.Calendar(context.Background(), "facility-1", "January 2026")

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
