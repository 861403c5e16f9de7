package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"venue/internal/domains/facility/model"
	"venue/internal/domains/facility/model/dto"
	"venue/shared/constant"
	gDto "venue/shared/dto"
)

func priceFields(filter gDto.FilterGroup) []string {
	fields := []string{}

	for _, raw := range filter.Filters {
		f, ok := raw.(gDto.Filter)
		if !ok {
			continue
		}

		if f.ArgName == "min_price" || f.ArgName == "max_price" {
			fields = append(fields, f.Field)
		}
	}

	return fields
}

func TestListFacilitiesCriteria_ToFilter(t *testing.T) {
	minPrice := 1000.0
	maxPrice := 9000.0

	t.Run("empty criteria builds no filters", func(t *testing.T) {
		filter := dto.ListFacilitiesCriteria{}.ToFilter()

		assert.Empty(t, filter.Filters)
	})

	t.Run("price bounds default to the peak rate column", func(t *testing.T) {
		criteria := dto.ListFacilitiesCriteria{MinPrice: &minPrice, MaxPrice: &maxPrice}

		fields := priceFields(criteria.ToFilter())

		assert.Equal(t, []string{model.FieldRatePeak, model.FieldRatePeak}, fields)
	})

	t.Run("off-peak season compares the off-peak rate column", func(t *testing.T) {
		criteria := dto.ListFacilitiesCriteria{
			MinPrice: &minPrice,
			Season:   constant.SeasonOffPeak,
		}

		fields := priceFields(criteria.ToFilter())

		assert.Equal(t, []string{model.FieldRateOffPeak}, fields)
	})

	t.Run("type and capacity become filters", func(t *testing.T) {
		criteria := dto.ListFacilitiesCriteria{
			Type:        model.TypeSports,
			MinCapacity: 50,
		}

		filter := criteria.ToFilter()

		assert.Len(t, filter.Filters, 2)
	})
}

func TestCreateFacilityRequest_ToModel(t *testing.T) {
	req := dto.CreateFacilityRequest{
		Name:        "Sports Complex",
		Type:        model.TypeSports,
		Capacity:    120,
		RatePeak:    5000,
		RateOffPeak: 3500,
	}

	mod := req.ToModel("employee", "http://cdn/image.png", "http://cdn/chart.pdf")

	assert.NotEmpty(t, mod.ID)
	assert.True(t, mod.Active, "active defaults to true when unset")
	assert.Equal(t, "http://cdn/image.png", mod.Image)
	assert.Equal(t, "http://cdn/chart.pdf", mod.RateChart)
	assert.Equal(t, "employee", mod.CreatedBy)
	assert.Equal(t, 5000.0, mod.RatePeak)
}
