package domain

import (
	"time"
)

// EventModality is stored in event.event_type.
type EventModality string

const (
	ModalityInPerson EventModality = "presencial"
	ModalityOnline   EventModality = "online"
	ModalityHybrid   EventModality = "hibrido"
)

func (m EventModality) Valid() bool {
	return m == ModalityInPerson || m == ModalityOnline || m == ModalityHybrid
}

// PricingModality is stored in event.pricing_type.
type PricingModality string

const (
	PricingFree PricingModality = "gratis"
	PricingPaid PricingModality = "pago"
)

func (p PricingModality) Valid() bool {
	return p == PricingFree || p == PricingPaid
}

// Event is read-only for this service. Name, Description, City, Region and
// StartDate are never null in storage.
type Event struct {
	ID          string
	Name        string
	Summary     *string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	PhotoURL    *string
	City        string
	Region      string
	Modality    EventModality
	Pricing     PricingModality
	Category    string
}

// EventView and EventRegistration are only ever counted per event.
type EventView struct {
	ID       string
	EventID  string
	ViewedAt time.Time
}

type EventRegistration struct {
	ID           string
	EventID      string
	RegisteredAt time.Time
	Status       string
	PaymentID    *string
}

// Registrations weigh twice as much as views in the popularity score.
const RegistrationWeight = 2

func PopularityScore(views, registrations int) int {
	return views + RegistrationWeight*registrations
}
