package domain

import (
	"sort"
	"time"
)

// queueSortKey returns the (date, time) pair used for FIFO ordering.
// Dates are ISO YYYY-MM-DD and times HH:MM, so plain string comparison is
// chronological.
func queueSortKey(lead Lead) (string, string) {
	date := lead.QueuedDate
	if date == "" {
		date = lead.CreatedDate
	}
	t := lead.QueuedTime
	if t == "" {
		t = lead.CreatedTime
	}
	if t == "" {
		t = "00:00"
	}
	return date, t
}

// QueuePosition derives the 1-based FIFO position of the lead with the given
// id among all queued leads. Returns 0 when the lead is not in the queue
// subset. The rank is never stored: recomputing on every read means queue
// mutations elsewhere are reflected immediately.
func QueuePosition(leads []Lead, id string) int {
	queued := make([]Lead, 0, len(leads))
	for _, l := range leads {
		if l.Status == StatusQueue {
			queued = append(queued, l)
		}
	}

	sort.SliceStable(queued, func(i, j int) bool {
		di, ti := queueSortKey(queued[i])
		dj, tj := queueSortKey(queued[j])
		if di != dj {
			return di < dj
		}
		return ti < tj
	})

	for i, l := range queued {
		if l.ID == id {
			return i + 1
		}
	}
	return 0
}

// DaysInQueue returns how many days the lead has been waiting, rounded up.
// Falls back to the creation date when no queue date is set; returns 0 when
// neither is available or the date does not parse.
func DaysInQueue(lead Lead, now time.Time) int {
	date := lead.QueuedDate
	if date == "" {
		date = lead.CreatedDate
	}
	if date == "" {
		return 0
	}

	queuedAt, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0
	}

	elapsed := now.Sub(queuedAt)
	if elapsed <= 0 {
		return 0
	}

	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) != 0 {
		days++
	}
	return days
}
