package models

// Requests for the booking/recommendation HTTP endpoints. Defined in domain
// for consistency and reuse.

type TrustScoreRequest struct {
	SitterID string `param:"id" json:"sitter_id" validate:"required"`
}

type AvailabilityRequest struct {
	SitterID string `param:"id" json:"sitter_id" validate:"required"`
	From     string `query:"from" json:"from" validate:"required"`
	To       string `query:"to" json:"to" validate:"required"`
}

type SlotSuggestRequest struct {
	PetID         string  `json:"pet_id" validate:"required"`
	SitterID      string  `json:"sitter_id" validate:"required"`
	Days          int     `json:"days" default:"7" validate:"gte=1,lte=30"`
	PreferredTime string  `json:"preferred_time" default:"flexible" validate:"oneof=morning afternoon evening flexible"`
	DurationHours float64 `json:"duration_hours" default:"8" validate:"gte=1,lte=24"`
}

type RecommendCandidate struct {
	SitterID      string  `json:"sitter_id" validate:"required"`
	Compatibility float64 `json:"compatibility" validate:"gte=0,lte=1"`
}

type RecommendRequest struct {
	PetID         string               `json:"pet_id" validate:"required"`
	OwnerID       string               `json:"owner_id" validate:"required"`
	Candidates    []RecommendCandidate `json:"candidates" validate:"dive"`
	Limit         int                  `json:"limit" default:"5" validate:"gte=1,lte=50"`
	PreferredTime string               `json:"preferred_time" default:"flexible" validate:"oneof=morning afternoon evening flexible"`
	DurationHours float64              `json:"duration_hours" default:"8" validate:"gte=1,lte=24"`
}

type CreateBookingRequest struct {
	OwnerID             string   `json:"owner_id" validate:"required"`
	SitterID            string   `json:"sitter_id" validate:"required"`
	PetIDs              []string `json:"pet_ids" validate:"required,min=1"`
	StartTime           string   `json:"start_time" validate:"required"`
	EndTime             string   `json:"end_time" validate:"required"`
	HourlyRate          float64  `json:"hourly_rate" validate:"gte=0"`
	SpecialInstructions string   `json:"special_instructions"`
	ApplyDiscount       bool     `json:"apply_discount"`
}

type UpdateStatusRequest struct {
	BookingID string `param:"id" json:"booking_id" validate:"required"`
	ActorID   string `json:"actor_id" validate:"required"`
	ActorRole string `json:"actor_role" validate:"oneof=owner sitter admin"`
	Status    string `json:"status" validate:"oneof=PENDING CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
}
