package dto

// OverviewResponse is the dashboard headline counts.
type OverviewResponse struct {
	MediaCount       int64 `json:"mediaCount"`
	ParticipantCount int64 `json:"participantCount"`
}

// MonthlyCountResponse is one bucket of the media-per-month graph.
type MonthlyCountResponse struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}
