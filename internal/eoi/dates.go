package eoi

import "time"

// DayOffsets configures how far each key date sits from the publication
// date, in days. Values come from config so regulation changes do not need
// a code change.
type DayOffsets struct {
	Submission      int
	ProvisionalList int
	Objection       int
	FinalList       int
}

type KeyDates struct {
	SubmissionDeadline   time.Time
	ProvisionalListDate  time.Time
	ObjectionWindowClose time.Time
	FinalListDate        time.Time
}

// ComputeKeyDates derives the invitation timetable from the publication
// date. Pure date arithmetic; callers persist the result.
func ComputeKeyDates(publication time.Time, off DayOffsets) KeyDates {
	return KeyDates{
		SubmissionDeadline:   publication.AddDate(0, 0, off.Submission),
		ProvisionalListDate:  publication.AddDate(0, 0, off.ProvisionalList),
		ObjectionWindowClose: publication.AddDate(0, 0, off.Objection),
		FinalListDate:        publication.AddDate(0, 0, off.FinalList),
	}
}
