package notepainter

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// FormatDuration formats a duration for humans, with at most two units, e.g.
// "1 s 500 ms".
func FormatDuration(d time.Duration) string {
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}

// FormatBytes formats a file size for humans, e.g. "88 kB".
func FormatBytes(n int) string {
	return humanize.Bytes(uint64(max(n, 0)))
}

// WavSize returns the size of the file Wav writes for a buffer of the given
// number of samples.
func WavSize(samples int) int {
	return 44 + 2*samples
}
