package models

import "groovava/tickets"

// Event mirrors the events collection. Price carries the raw persisted
// blob; Tiers and PriceSummary are derived from it via the tickets package.
type Event struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Location     string         `json:"location"`
	Venue        string         `json:"venue"`
	Date         string         `json:"date"`
	Time         string         `json:"time,omitempty"`
	Organizer    string         `json:"organizer,omitempty"`
	Category     string         `json:"category"`
	Image        string         `json:"image,omitempty"`
	Price        string         `json:"price,omitempty"`
	PriceSummary string         `json:"price_summary"`
	Tiers        []tickets.Tier `json:"tiers,omitempty"`
	CreatorID    string         `json:"creator_id,omitempty"`
	Created      string         `json:"created,omitempty"`
}
