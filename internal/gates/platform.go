package gates

import (
	"context"
	"fmt"
	"strings"

	"greenlight/internal/config"
)

// PlatformGate checks the rendered output against the target platform's
// format, duration, and aspect ratio constraints.
type PlatformGate struct {
	targets map[string]config.PlatformTarget
}

// NewPlatformGate builds the platform gate against the configured targets.
func NewPlatformGate(targets map[string]config.PlatformTarget) *PlatformGate {
	return &PlatformGate{targets: targets}
}

func (g *PlatformGate) ID() ID { return GatePlatform }

func (g *PlatformGate) Evaluate(_ context.Context, snap *Snapshot) (Outcome, error) {
	platform := strings.ToLower(strings.TrimSpace(snap.Render.Platform))
	if platform == "" {
		return Outcome{Measured: 0, Details: []string{"production declares no target platform"}}, nil
	}
	target, ok := g.targets[platform]
	if !ok {
		return Outcome{Measured: 0, Details: []string{fmt.Sprintf("no platform target configured for %q", platform)}}, nil
	}

	var details []string
	passed := 0
	const checks = 3

	formatOK := false
	for _, format := range target.Formats {
		if strings.EqualFold(format, snap.Render.Format) {
			formatOK = true
			break
		}
	}
	if formatOK {
		passed++
	} else {
		details = append(details, fmt.Sprintf("format %q is not accepted by %s (allowed: %s)", snap.Render.Format, platform, strings.Join(target.Formats, ", ")))
	}

	duration := snap.Render.DurationSeconds
	if duration >= target.MinSeconds && (target.MaxSeconds <= 0 || duration <= target.MaxSeconds) {
		passed++
	} else {
		details = append(details, fmt.Sprintf("duration %.1fs is outside the %s window [%.0fs, %.0fs]", duration, platform, target.MinSeconds, target.MaxSeconds))
	}

	if target.AspectRatio == "" || snap.Render.AspectRatio() == target.AspectRatio {
		passed++
	} else {
		details = append(details, fmt.Sprintf("aspect ratio %s does not match the %s requirement %s", snap.Render.AspectRatio(), platform, target.AspectRatio))
	}

	return Outcome{Measured: 100 * float64(passed) / float64(checks), Details: details}, nil
}
