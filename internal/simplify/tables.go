package simplify

import "github.com/readlite/readlite/internal/types"

// maxRetries is the retry budget after the first attempt: three total
// attempts (0, 1, 2).
const maxRetries = 2

// temperatureTable anchors the sampling temperature for attempts 0, 1 and 2
// per (era, level). Temperatures decrease as the level rises (proficient
// readers need less aggressive rewriting) and as the era becomes more archaic
// (modernization benefits from steadier output). Attempts beyond the last
// anchor reuse it.
var temperatureTable = map[types.Era]map[types.CEFRLevel][3]float64{
	types.EraModern: {
		types.LevelA1: {0.70, 0.60, 0.50},
		types.LevelA2: {0.65, 0.55, 0.45},
		types.LevelB1: {0.60, 0.50, 0.40},
		types.LevelB2: {0.50, 0.40, 0.35},
		types.LevelC1: {0.40, 0.35, 0.30},
		types.LevelC2: {0.30, 0.25, 0.20},
	},
	types.EraAmerican19c: {
		types.LevelA1: {0.65, 0.55, 0.45},
		types.LevelA2: {0.60, 0.50, 0.40},
		types.LevelB1: {0.55, 0.45, 0.35},
		types.LevelB2: {0.45, 0.38, 0.30},
		types.LevelC1: {0.35, 0.30, 0.25},
		types.LevelC2: {0.28, 0.24, 0.20},
	},
	types.EraVictorian: {
		types.LevelA1: {0.60, 0.50, 0.40},
		types.LevelA2: {0.55, 0.45, 0.38},
		types.LevelB1: {0.50, 0.42, 0.35},
		types.LevelB2: {0.42, 0.35, 0.30},
		types.LevelC1: {0.32, 0.28, 0.24},
		types.LevelC2: {0.25, 0.22, 0.20},
	},
	types.EraEarlyModern: {
		types.LevelA1: {0.55, 0.45, 0.38},
		types.LevelA2: {0.50, 0.42, 0.35},
		types.LevelB1: {0.45, 0.38, 0.32},
		types.LevelB2: {0.38, 0.32, 0.28},
		types.LevelC1: {0.30, 0.26, 0.22},
		types.LevelC2: {0.24, 0.21, 0.18},
	},
}

// baseThreshold is the similarity floor per era before level adjustment.
// Modern text must stay close to the original; archaic text is expected to
// diverge (and archaic eras bypass the gate anyway; these values only matter
// if the bypass rule ever changes).
var baseThreshold = map[types.Era]float64{
	types.EraModern:      0.75,
	types.EraAmerican19c: 0.60,
	types.EraVictorian:   0.60,
	types.EraEarlyModern: 0.55,
}

// levelAdjustment scales the base threshold. Low-proficiency levels tolerate
// more divergence from the original.
var levelAdjustment = map[types.CEFRLevel]float64{
	types.LevelA1: 0.80,
	types.LevelA2: 0.85,
	types.LevelB1: 0.90,
	types.LevelB2: 1.00,
	types.LevelC1: 1.00,
	types.LevelC2: 1.00,
}

// TemperatureFor returns the sampling temperature for an attempt number.
// Attempts past the schedule reuse the last anchor.
func TemperatureFor(era types.Era, level types.CEFRLevel, attempt int) float64 {
	schedule, ok := temperatureTable[era]
	if !ok {
		schedule = temperatureTable[types.EraModern]
	}
	anchors, ok := schedule[level]
	if !ok {
		anchors = schedule[types.LevelB1]
	}
	if attempt < 0 {
		attempt = 0
	}
	if attempt > len(anchors)-1 {
		attempt = len(anchors) - 1
	}
	return anchors[attempt]
}

// ThresholdFor returns the effective similarity threshold for an (era, level)
// pair.
func ThresholdFor(era types.Era, level types.CEFRLevel) float64 {
	base, ok := baseThreshold[era]
	if !ok {
		base = baseThreshold[types.EraModern]
	}
	adj, ok := levelAdjustment[level]
	if !ok {
		adj = 1.0
	}
	return base * adj
}
