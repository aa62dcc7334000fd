package control

import (
	"context"
	"fmt"

	"gridlearn/internal/district"
)

// HourScheduleController is a fixed hour-indexed policy: charge the battery
// overnight when the grid is cheap and quiet, discharge through the daytime
// and evening peak. Entries are capacity fractions per hour.
type HourScheduleController struct {
	schedule    [24]float64
	hourIndexes [][2]int
	buildings   int
}

// DefaultHourSchedule charges between 22:00 and 06:00 and discharges between
// 07:00 and 21:00, sized so a full overnight charge drains over the day.
func DefaultHourSchedule() [24]float64 {
	var schedule [24]float64
	for hour := 0; hour < 24; hour++ {
		switch {
		case hour >= 22 || hour <= 6:
			schedule[hour] = 1.0 / 9.0
		default:
			schedule[hour] = -1.0 / 15.0
		}
	}
	return schedule
}

func NewHourScheduleController(env *district.District, schedule [24]float64) (*HourScheduleController, error) {
	hourIndexes, err := observationIndex(env, "hour")
	if err != nil {
		return nil, fmt.Errorf("hour schedule controller: %w", err)
	}
	return &HourScheduleController{
		schedule:    schedule,
		hourIndexes: hourIndexes,
		buildings:   len(env.Buildings()),
	}, nil
}

func (c *HourScheduleController) ID() string { return "hour-schedule" }

func (c *HourScheduleController) Predict(ctx context.Context, observations [][]float64) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	actions := make([][]float64, c.buildings)
	for i := 0; i < c.buildings; i++ {
		entity, offset := c.hourIndexes[i][0], c.hourIndexes[i][1]
		if entity >= len(observations) || offset >= len(observations[entity]) {
			return nil, fmt.Errorf("hour schedule controller: observation shape mismatch")
		}
		hour := int(observations[entity][offset])
		if hour < 0 || hour > 23 {
			return nil, fmt.Errorf("hour schedule controller: hour out of range: %d", hour)
		}
		actions[i] = []float64{c.schedule[hour]}
	}
	return actions, nil
}
