package dto

import (
	"time"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
)

type EventResp struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Summary     *string    `json:"summary"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	PhotoURL    *string    `json:"photoUrl"`
	City        string     `json:"city"`
	Region      string     `json:"region"`
	Modality    string     `json:"modality"`
	Pricing     string     `json:"pricing"`
	Category    string     `json:"category"`
}

func ToEventResp(e *domain.Event) EventResp {
	return EventResp{
		ID:          e.ID,
		Name:        e.Name,
		Summary:     e.Summary,
		Description: e.Description,
		StartDate:   e.StartDate.UTC(),
		EndDate:     utcPtr(e.EndDate),
		PhotoURL:    e.PhotoURL,
		City:        e.City,
		Region:      e.Region,
		Modality:    string(e.Modality),
		Pricing:     string(e.Pricing),
		Category:    e.Category,
	}
}

// ToEventResps never returns nil so an empty page encodes as [].
func ToEventResps(items []*domain.Event) []EventResp {
	out := make([]EventResp, 0, len(items))
	for _, e := range items {
		if e == nil {
			continue
		}
		out = append(out, ToEventResp(e))
	}
	return out
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
