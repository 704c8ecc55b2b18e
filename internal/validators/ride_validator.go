package validators

import "regexp"

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

type RideCreateRequest struct {
	FromLocation   string  `json:"from_location" validate:"required,max=255"`
	ToLocation     string  `json:"to_location" validate:"required,max=255"`
	TravelDate     string  `json:"travel_date" validate:"required,calendar_date"`
	DepartureTime  string  `json:"departure_time" validate:"required,clock_time"`
	AvailableSeats int     `json:"available_seats" validate:"min=0"`
	Price          float64 `json:"price" validate:"min=0"`
	Description    string  `json:"description" validate:"max=1000"`
}

func ValidateRideCreate(req *RideCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}
