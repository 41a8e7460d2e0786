package gates

import (
	"context"
	"fmt"
	"strings"

	"greenlight/internal/config"
	"greenlight/internal/production"
)

// BrandGate checks that visual and voice assets conform to the brand
// guideline configuration: palette membership, voice roster membership, and
// asset naming.
type BrandGate struct {
	brand config.Brand
}

// NewBrandGate builds the brand gate against the configured brand kit.
func NewBrandGate(brand config.Brand) *BrandGate {
	return &BrandGate{brand: brand}
}

func (g *BrandGate) ID() ID { return GateBrand }

func (g *BrandGate) Evaluate(_ context.Context, snap *Snapshot) (Outcome, error) {
	if len(snap.Assets) == 0 {
		return Outcome{Measured: 100, Details: []string{"no assets attached; nothing to check against brand kit"}}, nil
	}

	palette := make(map[string]struct{}, len(g.brand.Palette))
	for _, color := range g.brand.Palette {
		palette[strings.ToUpper(color)] = struct{}{}
	}
	roster := make(map[string]struct{}, len(g.brand.VoiceRoster))
	for _, voice := range g.brand.VoiceRoster {
		roster[strings.ToLower(voice)] = struct{}{}
	}

	var details []string
	conforming := 0
	for _, asset := range snap.Assets {
		ok := true
		if g.brand.AssetPrefix != "" && !strings.HasPrefix(asset.Name, g.brand.AssetPrefix) {
			details = append(details, fmt.Sprintf("asset %s does not follow naming prefix %q", asset.ID, g.brand.AssetPrefix))
			ok = false
		}
		switch asset.Kind {
		case production.AssetVisual:
			for _, color := range asset.PaletteColors {
				if _, found := palette[strings.ToUpper(strings.TrimSpace(color))]; !found {
					details = append(details, fmt.Sprintf("asset %s uses off-palette color %s", asset.ID, color))
					ok = false
				}
			}
		case production.AssetVoice:
			if _, found := roster[strings.ToLower(strings.TrimSpace(asset.Voice))]; !found {
				details = append(details, fmt.Sprintf("asset %s uses voice %q outside the roster", asset.ID, asset.Voice))
				ok = false
			}
		}
		if ok {
			conforming++
		}
	}

	return Outcome{Measured: 100 * float64(conforming) / float64(len(snap.Assets)), Details: details}, nil
}
