package engine

// adjustmentEffects is the folded result of a day's adjustments over the
// resolved shift window. Second fields use -1 for "absent".
type adjustmentEffects struct {
	shiftStartSec int
	shiftEndSec   int

	missionStartSec int
	missionEndSec   int

	suppressPenalties bool
	halfDayExcused    bool

	firstStampSec int
	lastStampSec  int
}

// computeAdjustments folds permissions, half-day leave and missions into the
// effective working window. checkInSec/checkOutSec are the day's punch
// seconds, -1 when missing.
func computeAdjustments(win ShiftWindow, adjs []Adjustment, checkInSec, checkOutSec int) adjustmentEffects {
	nominalStart := parseClockSeconds(win.Start)
	nominalEnd := parseClockSeconds(win.End)

	eff := adjustmentEffects{
		shiftStartSec:   nominalStart,
		shiftEndSec:     nominalEnd,
		missionStartSec: -1,
		missionEndSec:   -1,
		firstStampSec:   -1,
		lastStampSec:    -1,
	}

	for _, a := range adjs {
		from := parseClockSeconds(a.FromTime)
		to := parseClockSeconds(a.ToTime)

		switch a.Type {
		case AdjMorningPermission:
			eff.shiftStartSec += to - from
		case AdjEveningPermission:
			eff.shiftEndSec -= to - from
		case AdjHalfDayLeave:
			if from == nominalStart {
				eff.shiftStartSec = to
				eff.halfDayExcused = true
			}
			if to == nominalEnd {
				eff.shiftEndSec = from
				eff.halfDayExcused = true
			}
		case AdjMission:
			if eff.missionStartSec < 0 || from < eff.missionStartSec {
				eff.missionStartSec = from
			}
			if to > eff.missionEndSec {
				eff.missionEndSec = to
			}
			eff.suppressPenalties = true
		}
	}

	// First/last stamp fold the mission window in with the punches; used as
	// the total-hours span when a mission widens the working day.
	eff.firstStampSec = minStamp(checkInSec, eff.missionStartSec)
	eff.lastStampSec = maxStamp(checkOutSec, eff.missionEndSec)
	return eff
}

func minStamp(a, b int) int {
	switch {
	case a < 0:
		return b
	case b < 0:
		return a
	case a < b:
		return a
	default:
		return b
	}
}

func maxStamp(a, b int) int {
	if a > b {
		return a
	}
	return b
}
