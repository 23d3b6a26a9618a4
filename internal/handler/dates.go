package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// parseDateRangeQuery reads optional start_date/end_date query params
// (YYYY-MM-DD). No start date means today; no end date closes the range at
// the start date.
func parseDateRangeQuery(c *gin.Context) (time.Time, time.Time, error) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	now := time.Now()
	if startDate == "" {
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.Add(24*time.Hour - time.Nanosecond), nil
	}

	start, err := time.ParseInLocation("2006-01-02", startDate, now.Location())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be YYYY-MM-DD")
	}

	endDay := start
	if endDate != "" {
		endDay, err = time.ParseInLocation("2006-01-02", endDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end_date must be YYYY-MM-DD")
		}
	}

	end := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), 0, 0, 0, 0, now.Location()).
		Add(24*time.Hour - time.Nanosecond)
	return start, end, nil
}
