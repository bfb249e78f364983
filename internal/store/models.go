package store

import "time"

// Collection statuses and had-details mirror the journal vocabulary: a bottle
// is either still owned or gone for a recorded reason.
const (
	StatusHave = "have"
	StatusHad  = "had"
)

var hadDetailValues = map[string]struct{}{
	"emptied": {},
	"sold":    {},
	"gifted":  {},
	"lost":    {},
}

// CollectionItem is one owned (or formerly owned) fragrance.
type CollectionItem struct {
	ID           int64
	FragranceID  int64
	House        string
	Name         string
	IsDecant     bool
	Status       string
	HadDetails   string
	AcquiredDate string
	GoneDate     string
	CreatedAt    time.Time
}

// NewLog is the input for creating one usage log.
//
// Empty strings and zero values mean "not recorded" for the optional fields.
// MarkGone additionally flips the collection row to had/emptied with the log
// date as the gone date, mirroring the last-wearing-of-an-empty-bottle flow.
type NewLog struct {
	FragranceID     int64
	UserFragranceID int64
	LogDate         string // YYYY-MM-DD
	TimeOfDay       string
	Weather         string
	Enjoyment       int
	Notes           string
	MarkGone        bool
}

// LogRow is one persisted usage log joined with its fragrance.
type LogRow struct {
	ID                int64
	LogDate           string
	FragranceFullName string
	UserFragranceID   int64
	TimeOfDay         string
	Weather           string
	Enjoyment         int
	Notes             string
}

// MostWornRow aggregates logs per fragrance.
type MostWornRow struct {
	FragranceFullName string
	WearCount         int
	LastWorn          string
	AvgEnjoyment      float64
}

// UsageStats summarizes the whole log history.
type UsageStats struct {
	TotalLogs          int
	DistinctFragrances int
	FirstLogDate       string
	LastLogDate        string
	MostWorn           []MostWornRow
	ByTimeOfDay        map[string]int
	ByWeather          map[string]int
}
