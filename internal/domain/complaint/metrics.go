package complaint

import (
	"time"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
)

type Metrics struct {
	ComplaintID     string
	Status          entity.ComplaintStatus
	MinutesInStatus int64
	MinutesTotal    int64
}

// ComputeMetrics floors elapsed time to whole minutes.
func ComputeMetrics(c *entity.Complaint, now time.Time) Metrics {
	return Metrics{
		ComplaintID:     c.ID,
		Status:          c.Status,
		MinutesInStatus: minutesBetween(c.StatusUpdatedAt, now),
		MinutesTotal:    minutesBetween(c.CreatedAt, now),
	}
}

func minutesBetween(from, to time.Time) int64 {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int64(d / time.Minute)
}
