package store

// ActivityRecord is one logged user action. ActivityDate is a calendar date
// ("2006-01-02"), not a timestamp; several records may share a date.
type ActivityRecord struct {
	ID           int32
	UserID       int32
	ActivityType string
	ActivityDate string
	Metadata     string // JSON string
	CreatedTs    int64
}

type FindActivityRecord struct {
	UserID       *int32
	ActivityType *string
	// ActivityDateGte and ActivityDateLt bound the calendar-date range,
	// inclusive and exclusive respectively.
	ActivityDateGte *string
	ActivityDateLt  *string
}

type DeleteActivityRecord struct {
	UserID *int32
}
