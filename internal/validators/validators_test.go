package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validRideCreate() RideCreateRequest {
	return RideCreateRequest{
		FromLocation:   "Chisinau",
		ToLocation:     "Balti",
		TravelDate:     "2030-06-01",
		DepartureTime:  "08:45",
		AvailableSeats: 3,
		Price:          100,
		Description:    "Leaving from the central station",
	}
}

func TestValidateRideCreate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validRideCreate()
		assert.Empty(t, ValidateRideCreate(&req))
	})

	cases := []struct {
		name   string
		mutate func(*RideCreateRequest)
		field  string
	}{
		{"missing origin", func(r *RideCreateRequest) { r.FromLocation = "" }, "FromLocation"},
		{"missing destination", func(r *RideCreateRequest) { r.ToLocation = "" }, "ToLocation"},
		{"wrong date format", func(r *RideCreateRequest) { r.TravelDate = "01/06/2030" }, "TravelDate"},
		{"wrong clock format", func(r *RideCreateRequest) { r.DepartureTime = "8am" }, "DepartureTime"},
		{"hour out of range", func(r *RideCreateRequest) { r.DepartureTime = "24:00" }, "DepartureTime"},
		{"negative seats", func(r *RideCreateRequest) { r.AvailableSeats = -1 }, "AvailableSeats"},
		{"negative price", func(r *RideCreateRequest) { r.Price = -5 }, "Price"},
		{"description too long", func(r *RideCreateRequest) { r.Description = strings.Repeat("x", 1001) }, "Description"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRideCreate()
			tc.mutate(&req)

			errs := ValidateRideCreate(&req)
			require.NotEmpty(t, errs)
			assert.Contains(t, errs.Details(), tc.field)
		})
	}
}

func TestValidateRatingSubmit(t *testing.T) {
	valid := RatingSubmitRequest{
		RatedUserID: primitive.NewObjectID().Hex(),
		Score:       4,
		Comment:     "Friendly driver",
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := valid
		assert.Empty(t, ValidateRatingSubmit(&req))
	})

	t.Run("score bounds", func(t *testing.T) {
		for _, score := range []int{-1, 6, 100} {
			req := valid
			req.Score = score

			errs := ValidateRatingSubmit(&req)
			require.NotEmpty(t, errs, "score %d", score)
			assert.Contains(t, errs.Details(), "Score")
		}
	})

	t.Run("malformed user ID", func(t *testing.T) {
		req := valid
		req.RatedUserID = "not-an-id"

		errs := ValidateRatingSubmit(&req)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs.Details(), "RatedUserID")
	})

	t.Run("comment is optional but capped", func(t *testing.T) {
		req := valid
		req.Comment = ""
		assert.Empty(t, ValidateRatingSubmit(&req))

		req.Comment = strings.Repeat("x", 501)
		errs := ValidateRatingSubmit(&req)
		require.NotEmpty(t, errs)
		assert.Contains(t, errs.Details(), "Comment")
	})
}
