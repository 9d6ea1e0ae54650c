package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rhyrak/lecture-scheduler/pkg/model"
)

func TestPolicyAllowedDays(t *testing.T) {
	p := NewPolicy(NewDefaultConfiguration())

	assert.Equal(t, []model.Day{model.Saturday}, p.AllowedDays("TI21B"))
	assert.Equal(t, []model.Day{model.Sunday}, p.AllowedDays("TI21C"))
	assert.Equal(t, model.Week, p.AllowedDays("TI21A"))
	assert.Equal(t, []model.Day{model.Saturday}, p.AllowedDays("BC01"), "B is checked before C")
}

func TestPolicyWindow(t *testing.T) {
	cfg := NewDefaultConfiguration()
	p := NewPolicy(cfg)

	assert.Equal(t, cfg.EveningWindow, p.Window("DK04M"))
	assert.Equal(t, cfg.WeekendWindow, p.Window("TI21B"))
	assert.Equal(t, cfg.WeekendWindow, p.Window("TI21C"))
	assert.Equal(t, cfg.DaytimeWindow, p.Window("TI21A"))
	assert.Equal(t, cfg.EveningWindow, p.Window("TI21BM"), "evening wins over weekend")
}

func TestPolicyDailyCap(t *testing.T) {
	p := NewPolicy(NewDefaultConfiguration())

	assert.Equal(t, 3, p.DailyCap("TI21A"))
	assert.Equal(t, 10, p.DailyCap("TI21B"))
	assert.Equal(t, 10, p.DailyCap("TI21C"))
	assert.Equal(t, 10, p.DailyCap("DK04M"))
}

func TestPolicyEligibleDaysKeepsRequestedOrder(t *testing.T) {
	p := NewPolicy(NewDefaultConfiguration())

	assert.Equal(t, []model.Day{model.Friday, model.Monday},
		p.EligibleDays("TI21A", []model.Day{model.Friday, model.Monday}))
	assert.Equal(t, []model.Day{model.Saturday},
		p.EligibleDays("TI21B", []model.Day{model.Monday, model.Saturday}))
	assert.Empty(t, p.EligibleDays("TI21C", []model.Day{model.Monday}))
	assert.Empty(t, p.EligibleDays("TI21A", []model.Day{"SENIN"}))
}
