package validators

type RatingSubmitRequest struct {
	RatedUserID string `json:"rated_user_id" validate:"required,object_id"`
	Score       int    `json:"score" validate:"required,rating_value"`
	Comment     string `json:"comment" validate:"omitempty,max=500"`
}

func ValidateRatingSubmit(req *RatingSubmitRequest) ValidationErrors {
	return ValidateStruct(req)
}
