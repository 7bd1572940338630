// Package simulate produces synthetic pond readings with daily feeding,
// photosynthesis and tidal cycles plus occasional anomalies.
package simulate

import (
	"math"
	"math/rand"
	"time"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/domain"
)

const (
	baselineTemp         = 27.5
	baselineDO           = 7.0
	baselinePH           = 8.0
	baselineAmmonia      = 0.15
	baselineTurbidity    = 15.0
	baselineActivity     = 0.8
	baselineCurrentSpeed = 0.5
)

// Generator walks hour by hour from a start time. Not safe for concurrent use.
type Generator struct {
	farmID string
	start  time.Time
	days   int
	rng    *rand.Rand
	hour   int
}

// NewGenerator starts at start; days sets the period of the seasonal drift.
func NewGenerator(farmID string, start time.Time, days int, seed int64) *Generator {
	if days <= 0 {
		days = 30
	}
	return &Generator{farmID: farmID, start: start, days: days, rng: rand.New(rand.NewSource(seed))}
}

// Next returns the reading for the next hour.
func (g *Generator) Next() domain.Reading {
	hour := g.hour
	g.hour++

	ts := g.start.Add(time.Duration(hour) * time.Hour)
	timeOfDay := ts.Hour()
	progress := float64(hour%(g.days*24)) / float64(g.days*24)

	temp := g.temperature(hour, timeOfDay, progress)
	feeding := g.feedingRate(timeOfDay)
	current := g.currentSpeed(timeOfDay)
	turbidity := g.turbidity(feeding, hour)
	ammonia := g.ammonia(feeding, turbidity, hour)
	do := g.dissolvedOxygen(temp, turbidity, current, timeOfDay)
	ph := g.ph(ammonia, do, hour)
	activity := g.activity(do, ph, temp, timeOfDay)

	return domain.Reading{
		FarmID:          g.farmID,
		Timestamp:       ts,
		TemperatureC:    round(temp, 2),
		DissolvedOxygen: round(do, 2),
		PH:              round(ph, 2),
		Ammonia:         round(ammonia, 3),
		Turbidity:       round(turbidity, 2),
		FeedingRate:     round(feeding, 2),
		FishActivity:    round(activity, 2),
		CurrentSpeed:    round(current, 2),
	}
}

// Series returns the next n readings.
func (g *Generator) Series(n int) []domain.Reading {
	out := make([]domain.Reading, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

func (g *Generator) noise(width float64) float64 {
	return (g.rng.Float64() - 0.5) * width
}

func (g *Generator) temperature(hour, timeOfDay int, progress float64) float64 {
	daily := math.Sin(float64(timeOfDay)/24*2*math.Pi) * 2
	seasonal := math.Sin(progress*2*math.Pi) * 3
	anomaly := 0.0
	if hour%120 == 0 {
		anomaly = -4
		if g.rng.Float64() > 0.5 {
			anomaly = 5
		}
	}
	return baselineTemp + daily + seasonal + g.noise(1.5) + anomaly
}

func (g *Generator) dissolvedOxygen(temp, turbidity, current float64, timeOfDay int) float64 {
	photosynthesis := -0.3
	if timeOfDay >= 6 && timeOfDay <= 18 {
		photosynthesis = 0.5
	}
	v := baselineDO + (30-temp)*0.15 + (25-turbidity)*0.05 + (current-0.5)*2 + photosynthesis + g.noise(0.4)
	return math.Max(3, v)
}

func (g *Generator) ph(ammonia, do float64, hour int) float64 {
	ammoniaEffect := 0.0
	if ammonia > 0.3 {
		ammoniaEffect = -0.3
	}
	drift := math.Sin(float64(hour)/24*2*math.Pi) * 0.2
	anomaly := 0.0
	if hour%150 == 0 {
		anomaly = 0.5
		if g.rng.Float64() > 0.5 {
			anomaly = -1.5
		}
	}
	return baselinePH + ammoniaEffect + (do-7)*0.05 + drift + g.noise(0.15) + anomaly
}

func (g *Generator) ammonia(feeding, turbidity float64, hour int) float64 {
	accumulation := math.Sin(float64(hour%168)/168*2*math.Pi) * 0.1
	spike := 0.0
	if hour%100 == 0 && g.rng.Float64() > 0.7 {
		spike = 0.4
	}
	v := baselineAmmonia + (feeding-250)*0.0008 + (turbidity-15)*0.003 + accumulation + g.rng.Float64()*0.05 + spike
	return math.Max(0, v)
}

func (g *Generator) turbidity(feeding float64, hour int) float64 {
	settling := -math.Min(float64(hour%24)*0.3, 3)
	waste := 0.0
	if hour%80 == 0 && g.rng.Float64() > 0.6 {
		waste = 15
	}
	return math.Max(0, baselineTurbidity+(feeding-250)*0.04+settling+g.noise(3)+waste)
}

func (g *Generator) feedingRate(timeOfDay int) float64 {
	switch {
	case timeOfDay >= 6 && timeOfDay < 8:
		return 300 + g.noise(50)
	case timeOfDay >= 12 && timeOfDay < 14:
		return 320 + g.noise(60)
	case timeOfDay >= 18 && timeOfDay < 20:
		return 280 + g.noise(50)
	}
	return 50 + g.rng.Float64()*30
}

func (g *Generator) activity(do, ph, temp float64, timeOfDay int) float64 {
	v := baselineActivity + g.noise(0.1)
	if do < 5.5 {
		v -= 0.3
	}
	if ph < 7.0 || ph > 8.8 {
		v -= 0.2
	}
	if temp < 24 || temp > 32 {
		v -= 0.15
	}
	if timeOfDay < 6 || timeOfDay > 20 {
		v -= 0.2
	}
	return math.Max(0.2, math.Min(1.0, v))
}

func (g *Generator) currentSpeed(timeOfDay int) float64 {
	tidal := math.Sin(float64(timeOfDay)/12*2*math.Pi) * 0.15
	return math.Max(0.1, baselineCurrentSpeed+tidal+g.noise(0.1))
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
