package domain

import (
	"fmt"
	"time"
)

// UsageSnapshot is a live upload/download reading in megabytes.
type UsageSnapshot struct {
	DownloadMB float64
	UploadMB   float64
}

func (u UsageSnapshot) TotalMB() float64 {
	return u.DownloadMB + u.UploadMB
}

// CapPercent reports how much of a data cap the snapshot consumes.
// A cap of zero means unlimited and always reports 0.
func (u UsageSnapshot) CapPercent(capMB int64) float64 {
	if capMB <= 0 {
		return 0
	}
	percent := u.TotalMB() / float64(capMB) * 100
	if percent > 100 {
		return 100
	}
	return percent
}

// UsageSample is one dated entry of the historical series.
type UsageSample struct {
	Date time.Time
	UsageSnapshot
}

func FormatMB(mb float64) string {
	if mb < 1024 {
		return fmt.Sprintf("%.0f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", mb/1024)
}
