package service

import (
	"time"

	"triage-chat/internal/model"
)

// GroupByDay partitions messages by calendar day in loc, keeping list order.
// Day labels are formatted with layout. A day that reappears after another
// day starts a new group, so separators always follow the thread.
func GroupByDay(messages []model.ChatMessage, loc *time.Location, layout string) []model.DayGroup {
	if loc == nil {
		loc = time.Local
	}
	groups := make([]model.DayGroup, 0)
	for _, m := range messages {
		day := m.Timestamp.In(loc).Format(layout)
		if n := len(groups); n > 0 && groups[n-1].Day == day {
			groups[n-1].Messages = append(groups[n-1].Messages, m)
			continue
		}
		groups = append(groups, model.DayGroup{Day: day, Messages: []model.ChatMessage{m}})
	}
	return groups
}
