package scheduler

import "github.com/rhyrak/lecture-scheduler/pkg/model"

// Configuration holds the allocation policy constants.
type Configuration struct {
	DaytimeWindow    model.Interval
	WeekendWindow    model.Interval
	EveningWindow    model.Interval
	Breaks           []model.Interval
	SlotStep         int         // minutes between candidate start times
	OverflowAfter    model.Clock // sessions ending later than this go ONLINE
	RegularDailyCap  int
	ExtendedDailyCap int // weekend and evening sections
	FallbackReason   string
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		DaytimeWindow: model.Interval{Start: model.At(8, 0), End: model.At(18, 0)},
		WeekendWindow: model.Interval{Start: model.At(8, 0), End: model.At(21, 0)},
		EveningWindow: model.Interval{Start: model.At(17, 0), End: model.At(22, 0)},
		Breaks: []model.Interval{
			{Start: model.At(12, 0), End: model.At(13, 0)},
			{Start: model.At(18, 0), End: model.At(18, 30)},
		},
		SlotStep:         10,
		OverflowAfter:    model.At(21, 0),
		RegularDailyCap:  3,
		ExtendedDailyCap: 10,
		FallbackReason:   "No available slot found for SKS and lecturer time",
	}
}

func inBreak(breaks []model.Interval, iv model.Interval) bool {
	for _, b := range breaks {
		if iv.Overlaps(b) {
			return true
		}
	}
	return false
}
