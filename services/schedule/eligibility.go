package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skischool/models"
	"skischool/utils"
)

// adultAge is the age from which a client counts as an adult.
const adultAge = 18

// EligibilityFilter narrows a candidate list to the monitors who can teach a lesson.
type EligibilityFilter struct {
	Calculator *Calculator
}

// lessonWindow is a LessonSlot with its values parsed.
type lessonWindow struct {
	date     time.Time
	start    time.Duration
	duration time.Duration
}

// Filter applies the language, adult, exact degree, minimum degree and
// availability checks in that order. Survivors keep their input order.
func (f *EligibilityFilter) Filter(ctx context.Context, candidates []models.MonitorCandidate, q models.EligibilityQuery) ([]models.MonitorCandidate, error) {
	lessons, err := parseLessons(q)
	if err != nil {
		return nil, err
	}
	var hourMin, hourMax time.Duration
	if q.Flexible() {
		if hourMin, err = utils.ParseClock(q.HourMin); err != nil {
			return nil, newMalformedTimeError("hour_min", q.HourMin, err)
		}
		if hourMax, err = utils.ParseClock(q.HourMax); err != nil {
			return nil, newMalformedTimeError("hour_max", q.HourMax, err)
		}
	}
	scope := scopeFor(q.SchoolID)

	out := make([]models.MonitorCandidate, 0, len(candidates))
	for _, m := range candidates {
		if !SpeaksClientLanguage(m, q.ClientLanguages) ||
			!AcceptsClientAge(m, q.ClientAge) ||
			!HasExactDegree(m, q.SportID, q.DegreeID) ||
			!ExceedsMinDegree(m, q.SportID, q.MinDegreeID) {
			continue
		}

		free := true
		for _, l := range lessons {
			ok, err := f.lessonFree(ctx, m.ID, l, q, hourMin, hourMax, scope)
			if err != nil {
				return nil, fmt.Errorf("availability of monitor %s: %w", m.ID, err)
			}
			if !ok {
				free = false
				break
			}
		}
		if free {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *EligibilityFilter) lessonFree(
	ctx context.Context,
	monitorID string,
	l lessonWindow,
	q models.EligibilityQuery,
	hourMin, hourMax time.Duration,
	scope *models.School,
) (bool, error) {
	subject := models.Subject{ID: monitorID, Role: models.RoleMonitor}
	if q.Flexible() {
		_, ok, err := f.Calculator.FindFlexibleSlot(ctx, subject, scope, l.date, hourMin, hourMax, l.duration, q.Exclude, "")
		return ok, err
	}

	start := utils.At(l.date, l.start)
	window, err := Window(start, start.Add(l.duration))
	if err != nil {
		return false, err
	}
	if q.Exclude != nil {
		window = window.Owned(*q.Exclude)
	}
	res, err := f.Calculator.IsFree(ctx, subject, window, scope)
	if err != nil {
		return false, err
	}
	return res.Free, nil
}

// SpeaksClientLanguage passes when the client declares no language or the
// monitor shares one of its (up to three) languages.
func SpeaksClientLanguage(m models.MonitorCandidate, clientLanguages []string) bool {
	if len(clientLanguages) == 0 {
		return true
	}
	langs := m.Languages
	if len(langs) > 3 {
		langs = langs[:3]
	}
	for _, want := range clientLanguages {
		for _, have := range langs {
			if want != "" && strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

// AcceptsClientAge rejects adult clients for monitors not allowed to teach adults.
func AcceptsClientAge(m models.MonitorCandidate, clientAge *int) bool {
	if clientAge == nil || *clientAge < adultAge {
		return true
	}
	return m.AllowAdults
}

// HasExactDegree passes when no degree is requested, or the monitor's current
// degree or one of its authorized degrees equals it.
func HasExactDegree(m models.MonitorCandidate, sportID string, degreeID *int) bool {
	if degreeID == nil {
		return true
	}
	for _, d := range monitorDegrees(m, sportID) {
		if d == *degreeID {
			return true
		}
	}
	return false
}

// ExceedsMinDegree passes when no minimum is requested, or one of the
// monitor's degrees is strictly above it.
func ExceedsMinDegree(m models.MonitorCandidate, sportID string, minDegreeID *int) bool {
	if minDegreeID == nil {
		return true
	}
	for _, d := range monitorDegrees(m, sportID) {
		if d > *minDegreeID {
			return true
		}
	}
	return false
}

// monitorDegrees lists the current degree plus the authorized degrees that
// apply to sportID. Authorizations without a sport apply to every sport.
func monitorDegrees(m models.MonitorCandidate, sportID string) []int {
	degrees := make([]int, 0, len(m.AuthorizedDegrees)+1)
	if m.CurrentDegreeID != 0 {
		degrees = append(degrees, m.CurrentDegreeID)
	}
	for _, a := range m.AuthorizedDegrees {
		if sportID == "" || a.SportID == "" || a.SportID == sportID {
			degrees = append(degrees, a.DegreeID)
		}
	}
	return degrees
}

func parseLessons(q models.EligibilityQuery) ([]lessonWindow, error) {
	out := make([]lessonWindow, 0, len(q.Slots))
	for _, s := range q.Slots {
		day, err := utils.ParseDate(s.Date)
		if err != nil {
			return nil, newMalformedTimeError("date", s.Date, err)
		}
		d, err := utils.ParseClockDuration(s.Duration)
		if err != nil {
			return nil, newMalformedTimeError("duration", s.Duration, err)
		}
		l := lessonWindow{date: day, duration: d}
		if !q.Flexible() {
			if s.StartTime == "" {
				return nil, newMalformedTimeError("start_time", s.StartTime, errors.New("start time is required without an hour window"))
			}
			if l.start, err = utils.ParseClock(s.StartTime); err != nil {
				return nil, newMalformedTimeError("start_time", s.StartTime, err)
			}
		}
		out = append(out, l)
	}
	return out, nil
}

// scopeFor restricts a query to one school; an empty id means every school.
func scopeFor(schoolID string) *models.School {
	if schoolID == "" {
		return nil
	}
	return &models.School{ID: schoolID}
}
