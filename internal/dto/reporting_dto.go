package dto

// ReportFilterParams defines the shared query parameters of document reports.
// Dates use the YYYY-MM-DD layout.
type ReportFilterParams struct {
	DueFrom string `form:"dueFrom"`
	DueTo   string `form:"dueTo"`
	Status  string `form:"status"`
	PartyID string `form:"partyID"`
}

// UpcomingParams defines the look-ahead window of the upcoming report.
type UpcomingParams struct {
	Days int `form:"days,default=30" binding:"min=1,max=366"`
}

// MonthlyParams selects the year of the monthly due report. Zero means the current year.
type MonthlyParams struct {
	Year int `form:"year" binding:"omitempty,min=1900,max=3000"`
}
