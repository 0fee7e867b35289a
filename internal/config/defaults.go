package config

// DefaultBackupSuffix is appended to a file name when writing its backup.
const DefaultBackupSuffix = ".backup"

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Backup: BackupConfig{
			Enabled: true,
			Suffix:  DefaultBackupSuffix,
		},
		Banners: BannersConfig{
			TypeLabel:     "TYPE DEFINITIONS",
			FunctionLabel: "FUNCTION DEFINITIONS (ordered by dependencies)",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Backup = mergeBackupConfig(loaded.Backup, defaults.Backup)
	result.Banners = mergeBannersConfig(loaded.Banners, defaults.Banners)
	result.Output = mergeOutputConfig(loaded.Output, defaults.Output)

	return result
}

func mergeBackupConfig(loaded, defaults BackupConfig) BackupConfig {
	result := BackupConfig{}

	// Enabled: YAML unmarshals a missing bool as false, so an explicit
	// suffix without enabled:true would silently disable backups. Treat
	// the zero struct as unset and keep the default.
	if loaded == (BackupConfig{}) {
		result.Enabled = defaults.Enabled
	} else {
		result.Enabled = loaded.Enabled
	}

	if loaded.Suffix != "" {
		result.Suffix = loaded.Suffix
	} else {
		result.Suffix = defaults.Suffix
	}

	return result
}

func mergeBannersConfig(loaded, defaults BannersConfig) BannersConfig {
	result := BannersConfig{}

	if loaded.TypeLabel != "" {
		result.TypeLabel = loaded.TypeLabel
	} else {
		result.TypeLabel = defaults.TypeLabel
	}

	if loaded.FunctionLabel != "" {
		result.FunctionLabel = loaded.FunctionLabel
	} else {
		result.FunctionLabel = defaults.FunctionLabel
	}

	return result
}

func mergeOutputConfig(loaded, defaults OutputConfig) OutputConfig {
	result := OutputConfig{}

	if loaded.DefaultFormat != "" {
		result.DefaultFormat = loaded.DefaultFormat
	} else {
		result.DefaultFormat = defaults.DefaultFormat
	}

	return result
}

// ValidFormats lists the valid values for report output format
var ValidFormats = []string{"text", "yaml", "json"}

// IsValidFormat checks if the given format value is valid
func IsValidFormat(format string) bool {
	for _, valid := range ValidFormats {
		if format == valid {
			return true
		}
	}
	return false
}
