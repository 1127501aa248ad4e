package services

import (
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	internal_utils "github.com/newsroom/mono-repo/backend/services/admin-service/internal/utils"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// ChoicesService serves the option lists of the article form's select fields.
type ChoicesService struct {
	imageSizes *internal_utils.ImageSizes
}

func NewChoicesService(imageSizes *internal_utils.ImageSizes) *ChoicesService {
	return &ChoicesService{imageSizes: imageSizes}
}

func (s *ChoicesService) ImageSizes() []internal_utils.Choice {
	return s.imageSizes.Choices()
}

func (s *ChoicesService) ValidImageSize(key string) bool {
	return s.imageSizes.Valid(key)
}

// ScheduleResults lists the social-media send states, labelled as stored.
func (s *ChoicesService) ScheduleResults() []internal_utils.Choice {
	out := make([]internal_utils.Choice, 0, len(models.ScheduleResults))
	for _, r := range models.ScheduleResults {
		out = append(out, internal_utils.Choice{Key: string(r), Label: string(r)})
	}
	return out
}

func (s *ChoicesService) FormChoices() dtos.FormChoices {
	sizes := s.ImageSizes()
	return dtos.FormChoices{
		PrimaryImageSize:   dtos.ChoiceField{Choices: sizes, Initial: utils.DefaultPrimaryImageSize},
		SummaryImageSize:   dtos.ChoiceField{Choices: sizes, Initial: utils.DefaultSummaryImageSize},
		FacebookSendStatus: dtos.ChoiceField{Choices: s.ScheduleResults(), Initial: string(models.ScheduleScheduled)},
	}
}
