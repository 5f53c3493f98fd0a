package config

const (
	defaultConfigPath         = "~/.config/talkmatch/config.toml"
	defaultDatabasePath       = "~/.local/share/talkmatch/talkmatch.db"
	defaultLogDir             = "~/.local/share/talkmatch/logs"
	defaultOverridesPath      = "~/.config/talkmatch/overrides.yaml"
	defaultMinReleaseDate     = "2019-11-01"
	defaultPresenterOverlap   = 0.7
	defaultPersistConcurrency = 8
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

func defaultSlideStages() []string {
	return []string{"AWS Stage"}
}

func defaultExcludedStages() []string {
	return []string{
		"Roundtables",
		"Pink Street",
		"Registration",
		"Waterfront",
		"Away from the stage",
		"LX Factory",
		"Taxi drop off%",
		"Train station%",
		"Workshop _",
		"% FIL _",
		"% PAV _",
	}
}

func defaultExcludedTitles() []string {
	return []string{
		"Featured venue: %",
		"ATM %",
		"Food Truck %",
		"Night Summit %",
		"Workshop %",
		"Bus and Tram Station %",
		"Lunch break",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Database:  defaultDatabasePath,
			LogDir:    defaultLogDir,
			Overrides: defaultOverridesPath,
		},
		Matching: Matching{
			MinReleaseDate:     defaultMinReleaseDate,
			PresenterOverlap:   defaultPresenterOverlap,
			PersistConcurrency: defaultPersistConcurrency,
		},
		Slides: Slides{
			Stages: defaultSlideStages(),
		},
		Report: Report{
			ExcludedStages: defaultExcludedStages(),
			ExcludedTitles: defaultExcludedTitles(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
