package event_bus

import "cloud.google.com/go/civil"

// PlanDaySaved is published after a day's meals and note are committed.
type PlanDaySaved struct {
	MemberId string
	Date     civil.Date
}

// PlanWeekCopied is published after a week was duplicated into the next one.
type PlanWeekCopied struct {
	MemberId        string
	SourceWeekStart civil.Date
	TargetWeekStart civil.Date
	CopiedCount     int
}
