package document

import (
	"math/rand/v2"
	"time"

	"github.com/kbukum/visitnote/internal/extraction"
)

// Display formats.
const (
	DateLayout = "Jan 02, 2006"
	TimeLayout = "03:04 PM"
)

// Patient numbers are ten digits.
const (
	MinPatientNumber int64 = 1000000000
	MaxPatientNumber int64 = 9999999999
)

// Record is everything printed on the document.
type Record struct {
	Result *extraction.Result

	// Date is the visit date, today.
	Date string
	// Time is the printed visit time. It is fixed.
	Time string

	FollowUp      time.Time
	FollowUpDate  string
	FollowUpTime  string
	PatientNumber int64
}

// NewRecord fabricates the follow-up appointment (1 to 7 days after now,
// between 08:00 and 17:59) and the patient number for r.
func NewRecord(r *extraction.Result, now time.Time, rng *rand.Rand) *Record {
	if r == nil {
		r = &extraction.Result{}
	}
	day := now.AddDate(0, 0, 1+rng.IntN(7))
	followUp := time.Date(day.Year(), day.Month(), day.Day(), 8+rng.IntN(10), rng.IntN(60), 0, 0, now.Location())

	return &Record{
		Result:        r,
		Date:          now.Format(DateLayout),
		Time:          "10:00 AM",
		FollowUp:      followUp,
		FollowUpDate:  followUp.Format(DateLayout),
		FollowUpTime:  followUp.Format(TimeLayout),
		PatientNumber: MinPatientNumber + rng.Int64N(MaxPatientNumber-MinPatientNumber+1),
	}
}
