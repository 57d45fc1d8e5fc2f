package engine

import (
	"fmt"
	"sort"
	"time"
)

// punchStamp is a punch pinned to a bucket day. seconds is relative to that
// day's local midnight and exceeds 86400 for checkouts reassigned from the
// following calendar day, so ordering and hour math stay monotonic.
type punchStamp struct {
	at      time.Time
	seconds int
}

type dayBucket struct {
	stamps []punchStamp
	notes  []string
}

func (b *dayBucket) sortStamps() {
	sort.SliceStable(b.stamps, func(i, j int) bool {
		return b.stamps[i].seconds < b.stamps[j].seconds
	})
}

// punchPartition maps normalized employee code → local day (UTC midnight) →
// bucket.
type punchPartition map[string]map[time.Time]*dayBucket

func (p punchPartition) bucket(code string, day time.Time) *dayBucket {
	days := p[code]
	if days == nil {
		return nil
	}
	return days[day]
}

// arrivalWindow is the local-hour range in which a same-day check-in is
// expected, keyed by the employee's shift-start hour.
func arrivalWindow(startHour int) (lo, hi int) {
	switch startHour {
	case 7:
		return 4, 10
	case 8:
		return 5, 11
	default:
		return 6, 12
	}
}

const (
	overnightHourMax   = 5 // punches at local hour [0,5] are overnight candidates
	earlyEdgeStartSecs = 4*3600 + 30*60
	earlyEdgeEndSecs   = 5 * 3600
)

// partitionPunches buckets each employee's punches by local calendar day,
// then walks days chronologically reassigning post-midnight punches that
// really belong to the previous day's checkout. The forward order is load
// bearing: each decision reads the previous day's bucket as already mutated
// by earlier moves.
func partitionPunches(punches []Punch, employees []Employee, offsetMinutes int) punchPartition {
	byCode := make(map[string]Employee, len(employees))
	for _, e := range employees {
		byCode[NormalizeCode(e.Code)] = e
	}

	part := make(punchPartition)
	for _, p := range punches {
		code := NormalizeCode(p.EmployeeCode)
		if _, known := byCode[code]; !known {
			continue
		}
		lt := NewLocalTime(p.At, offsetMinutes)
		days := part[code]
		if days == nil {
			days = make(map[time.Time]*dayBucket)
			part[code] = days
		}
		b := days[lt.Day]
		if b == nil {
			b = &dayBucket{}
			days[lt.Day] = b
		}
		b.stamps = append(b.stamps, punchStamp{at: p.At, seconds: lt.Seconds})
	}

	for code, days := range part {
		for _, b := range days {
			b.sortStamps()
		}
		reassignOvernight(days, byCode[code])
	}
	return part
}

func reassignOvernight(days map[time.Time]*dayBucket, emp Employee) {
	ordered := make([]time.Time, 0, len(days))
	for d := range days {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	startHour := shiftStartHour(emp)
	lo, hi := arrivalWindow(startHour)

	for _, day := range ordered {
		bucket := days[day]
		prev := days[day.AddDate(0, 0, -1)]

		stamps := make([]punchStamp, len(bucket.stamps))
		copy(stamps, bucket.stamps)
		kept := make([]punchStamp, 0, len(stamps))
		for i, st := range stamps {
			if st.seconds >= (overnightHourMax+1)*3600 {
				kept = append(kept, st)
				continue
			}
			// Reassignment needs an open day behind it: no punches on D-1
			// means there is no check-in this could close.
			if prev == nil || len(prev.stamps) == 0 {
				kept = append(kept, st)
				continue
			}

			prevHasCheckout := len(prev.stamps) >= 2
			hasNormalArrival := false
			for j, other := range stamps {
				if j == i {
					continue
				}
				if other.seconds >= lo*3600 && other.seconds <= hi*3600 {
					hasNormalArrival = true
					break
				}
			}

			// A 04:30-05:00 punch on an early shift is a legitimate arrival,
			// not a late checkout, as long as D has no other arrival punch.
			earlyShiftEdge := startHour <= 7 &&
				st.seconds >= earlyEdgeStartSecs && st.seconds <= earlyEdgeEndSecs
			if !prevHasCheckout && earlyShiftEdge && !hasNormalArrival {
				kept = append(kept, st)
				continue
			}

			if !prevHasCheckout || hasNormalArrival {
				prev.stamps = append(prev.stamps, punchStamp{
					at:      st.at,
					seconds: st.seconds + secondsPerDay,
				})
				prev.sortStamps()
				prev.notes = append(prev.notes, fmt.Sprintf(
					"خروج بعد منتصف الليل %s (%s)",
					formatClock(st.seconds), dateKey(day),
				))
				continue
			}
			kept = append(kept, st)
		}
		bucket.stamps = kept
	}
}
