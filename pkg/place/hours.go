package place

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jvigneron-hub/gistools/pkg/gmaps"
)

// applyOpeningHours decodes the weekly schedule when the payload
// carries one. A malformed schedule is dropped whole and logged; the
// seven weekday fields then stay empty.
func applyOpeningHours(rec *Record, res *gmaps.PlaceResult) {
	if res.OpeningHours == nil || len(res.OpeningHours.Periods) == 0 {
		return
	}
	week, err := weekSchedule(res.OpeningHours.Periods)
	if err != nil {
		zap.L().Debug("place: dropping malformed opening hours",
			zap.String("place_id", res.PlaceID),
			zap.Error(err),
		)
		return
	}
	days := rec.weekdays()
	for i := range week {
		*days[i] = week[i]
	}
}

// weekSchedule renders opening periods as seven "HH:MM-HH:MM" strings,
// Monday first. Several periods on the same day are joined with "|".
func weekSchedule(periods []gmaps.OpeningPeriod) ([7]string, error) {
	var week [7]string
	for _, p := range periods {
		if p.Open == nil || p.Close == nil {
			return week, eris.New("place: opening period missing open or close time")
		}
		idx, err := weekdayIndex(p.Open.Day)
		if err != nil {
			return week, err
		}
		opens, err := clockTime(p.Open.Time)
		if err != nil {
			return week, err
		}
		closes, err := clockTime(p.Close.Time)
		if err != nil {
			return week, err
		}
		window := opens + "-" + closes
		if week[idx] != "" {
			week[idx] += "|" + window
		} else {
			week[idx] = window
		}
	}
	return week, nil
}

// weekdayIndex maps the API day number (0 = Sunday through 6 =
// Saturday, 7 tolerated as Sunday) onto a Monday-first index.
func weekdayIndex(day int) (int, error) {
	switch {
	case day == 0 || day == 7:
		return 6, nil
	case day >= 1 && day <= 6:
		return day - 1, nil
	default:
		return 0, eris.Errorf("place: opening period day %d out of range", day)
	}
}

// clockTime renders the API's HHMM wall time as HH:MM.
func clockTime(hhmm string) (string, error) {
	if len(hhmm) < 4 {
		return "", eris.Errorf("place: malformed wall time %q", hhmm)
	}
	return hhmm[:2] + ":" + hhmm[len(hhmm)-2:], nil
}
