package dtos

import (
	internal_utils "github.com/newsroom/mono-repo/backend/services/admin-service/internal/utils"
	go_dtos "github.com/newsroom/mono-repo/backend/shared/go-dtos"
)

type HealthCheckResponse struct {
	Status string `json:"status"`
}

// Paged wraps one page of a listing.
type Paged[T any] struct {
	Data     []T `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

type ConfirmationResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ChoiceField describes one select field of the article form.
type ChoiceField struct {
	Choices []internal_utils.Choice `json:"choices"`
	Initial string                  `json:"initial"`
}

type FormChoices struct {
	PrimaryImageSize   ChoiceField `json:"primary_image_size"`
	SummaryImageSize   ChoiceField `json:"summary_image_size"`
	FacebookSendStatus ChoiceField `json:"facebook_send_status"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Editor      go_dtos.Editor `json:"editor"`
	AccessToken string         `json:"access_token"`
	ExpiresIn   int64          `json:"expires_in"`
}
