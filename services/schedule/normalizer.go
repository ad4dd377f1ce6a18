package schedule

import (
	"time"

	"skischool/models"
	"skischool/utils"
)

// Hours is a school's opening range, used to bound full-day NWD blocks.
type Hours struct {
	Opening time.Duration
	Closing time.Duration
}

// ParseHours parses opening and closing clock values.
func ParseHours(opening, closing string) (Hours, error) {
	o, err := utils.ParseClock(opening)
	if err != nil {
		return Hours{}, newMalformedTimeError("opening_time", opening, err)
	}
	c, err := utils.ParseClock(closing)
	if err != nil {
		return Hours{}, newMalformedTimeError("closing_time", closing, err)
	}
	if c <= o {
		return Hours{}, ErrInvalidInterval
	}
	return Hours{Opening: o, Closing: c}, nil
}

// HoursFor returns the school's own hours, or fallback when the school is
// unknown or does not configure them.
func HoursFor(school *models.School, fallback Hours) (Hours, error) {
	if school == nil || school.OpeningTime == "" || school.ClosingTime == "" {
		return fallback, nil
	}
	return ParseHours(school.OpeningTime, school.ClosingTime)
}

// Normalizer converts raw commitment rows into intervals. It is the only
// place that knows the persistence row shapes.
type Normalizer struct {
	Hours Hours
}

// PrivateBooking converts one lesson line. end = start + duration unless an
// explicit end time is stored.
func (n Normalizer) PrivateBooking(b models.PrivateBooking) (Interval, error) {
	if b.ID == "" {
		return Interval{}, NewMissingDataError("private booking line without id on %s", b.Date)
	}
	start, end, err := placeOnDay(b.Date, b.StartTime, b.EndTime, b.Duration)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(start, end, models.KindPrivate, b.ID)
}

// CollectiveSession converts one subgroup date. All sessions of a subgroup
// share the subgroup as owner.
func (n Normalizer) CollectiveSession(s models.CollectiveSession) (Interval, error) {
	if s.SubgroupID == "" {
		return Interval{}, NewMissingDataError("collective session %s has no subgroup", s.ID)
	}
	start, end, err := placeOnDay(s.Date, s.StartTime, s.EndTime, s.Duration)
	if err != nil {
		return Interval{}, err
	}
	iv, err := NewInterval(start, end, models.KindCollective, s.SubgroupID)
	if err != nil {
		return Interval{}, err
	}
	return iv.InFamily(s.CourseID, s.CourseGroupID), nil
}

// NwdBlock converts a block into one day-bounded interval per calendar day it covers.
// Full-day blocks span the school's opening hours.
func (n Normalizer) NwdBlock(b models.NwdBlock) ([]Interval, error) {
	if b.StartDate == "" {
		return nil, ErrIncompleteRow
	}
	first, err := utils.ParseDate(b.StartDate)
	if err != nil {
		return nil, newMalformedTimeError("start_date", b.StartDate, err)
	}
	last := first
	if b.EndDate != "" {
		last, err = utils.ParseDate(b.EndDate)
		if err != nil {
			return nil, newMalformedTimeError("end_date", b.EndDate, err)
		}
	}
	if last.Before(first) {
		return nil, ErrIncompleteRow
	}

	from, to, err := n.blockClock(b)
	if err != nil {
		return nil, err
	}

	var out []Interval
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		iv, err := NewInterval(utils.At(day, from), utils.At(day, to), models.KindNWD, b.ID)
		if err != nil {
			return nil, ErrIncompleteRow
		}
		out = append(out, iv)
	}
	return out, nil
}

// blockClock returns the single-day time range of a block.
func (n Normalizer) blockClock(b models.NwdBlock) (time.Duration, time.Duration, error) {
	if b.FullDay {
		return n.Hours.Opening, n.Hours.Closing, nil
	}
	if b.StartTime == "" || b.EndTime == "" {
		return 0, 0, ErrIncompleteRow
	}
	from, err := utils.ParseClock(b.StartTime)
	if err != nil {
		return 0, 0, newMalformedTimeError("start_time", b.StartTime, err)
	}
	to, err := utils.ParseClock(b.EndTime)
	if err != nil {
		return 0, 0, newMalformedTimeError("end_time", b.EndTime, err)
	}
	return from, to, nil
}

// placeOnDay resolves date + start and either an explicit end or a duration.
func placeOnDay(date, startTime, endTime, duration string) (time.Time, time.Time, error) {
	if date == "" || startTime == "" || (endTime == "" && duration == "") {
		return time.Time{}, time.Time{}, ErrIncompleteRow
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, newMalformedTimeError("date", date, err)
	}
	from, err := utils.ParseClock(startTime)
	if err != nil {
		return time.Time{}, time.Time{}, newMalformedTimeError("start_time", startTime, err)
	}
	start := utils.At(day, from)

	if endTime != "" {
		to, err := utils.ParseClock(endTime)
		if err != nil {
			return time.Time{}, time.Time{}, newMalformedTimeError("end_time", endTime, err)
		}
		end := utils.At(day, to)
		if !start.Before(end) {
			return time.Time{}, time.Time{}, ErrIncompleteRow
		}
		return start, end, nil
	}

	d, err := utils.ParseClockDuration(duration)
	if err != nil {
		return time.Time{}, time.Time{}, newMalformedTimeError("duration", duration, err)
	}
	if d <= 0 {
		return time.Time{}, time.Time{}, ErrIncompleteRow
	}
	return start, start.Add(d), nil
}
