package zipwire

import "time"

// DOS timestamps cover 1980 through 2107 with 7 bits of year.
const (
	dosEpochYear = 1980
	dosMaxYear   = dosEpochYear + 127
)

// DosSaturated is returned for times past the representable range.
const DosSaturated uint32 = 0xFFFFFFFF

// DosDateTime packs t into the 32-bit MS-DOS date/time pair carried in
// ZIP headers: date in the high 16 bits, time in the low 16.
//
// Calendar fields are taken in the process-local timezone, matching what
// common zip tools record, so the same instant can encode differently on
// machines in different zones. Seconds have 2-second resolution. Times
// before 1980 floor to 0 and times past 2107 saturate to DosSaturated.
func DosDateTime(t time.Time) uint32 {
	t = t.Local()
	year := t.Year()
	if year < dosEpochYear {
		return 0
	}
	if year > dosMaxYear {
		return DosSaturated
	}
	date := uint32(year-dosEpochYear)<<9 | uint32(t.Month())<<5 | uint32(t.Day())
	clock := uint32(t.Hour())<<11 | uint32(t.Minute())<<5 | uint32(t.Second())>>1
	return date<<16 | clock
}
