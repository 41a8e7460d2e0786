package config

const (
	defaultDataDir        = "~/.local/share/greenlight"
	defaultLogDir         = "~/.local/share/greenlight/logs"
	defaultKnowledgePath  = "~/.local/share/greenlight/knowledge.json"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultGateTimeout    = 10
	defaultGateAttempts   = 3
	defaultBackoffMillis  = 250
	defaultMaxAssetUses   = 5
	defaultNotifyTimeout  = 10
	defaultSoftGateWeight = 1.0
	defaultStrictWeight   = 3.0
)

func defaultGate(weight float64) GateSettings {
	return GateSettings{
		WarnThreshold:  80,
		FailThreshold:  50,
		Weight:         weight,
		TimeoutSeconds: defaultGateTimeout,
		MaxAttempts:    defaultGateAttempts,
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:       defaultDataDir,
			LogDir:        defaultLogDir,
			KnowledgePath: defaultKnowledgePath,
		},
		Gates: Gates{
			Truth:         defaultGate(2.0),
			Safety:        defaultGate(defaultStrictWeight),
			Brand:         defaultGate(defaultSoftGateWeight),
			Platform:      defaultGate(defaultSoftGateWeight),
			ReuseRisk:     defaultGate(defaultSoftGateWeight),
			VisualRole:    defaultGate(defaultStrictWeight),
			FinalQA:       defaultGate(defaultSoftGateWeight),
			BackoffMillis: defaultBackoffMillis,
		},
		Brand: Brand{
			Palette:     []string{"#0B1F3A", "#F2A900", "#FFFFFF"},
			VoiceRoster: []string{"aria", "marcus"},
			AssetPrefix: "gl-",
		},
		Platforms: map[string]PlatformTarget{
			"youtube": {
				Formats:     []string{"mp4", "webm"},
				MinSeconds:  30,
				MaxSeconds:  900,
				AspectRatio: "16:9",
			},
			"shorts": {
				Formats:     []string{"mp4"},
				MinSeconds:  5,
				MaxSeconds:  60,
				AspectRatio: "9:16",
			},
		},
		ReuseRisk: ReuseRisk{
			MaxAssetUses: defaultMaxAssetUses,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			GateRuns:       true,
			Overrides:      true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
