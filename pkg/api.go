package dirchecksums

// This file defines the public API and documents usage patterns

// InitDebugFlags initialises debug flags - for CLI compatibility
func InitDebugFlags(flagsStr string) {
	if flagsStr != "" {
		SetDebugFlags(flagsStr)
	}
}

// LogDebugFlags logs the current debug flag status - for CLI compatibility
func LogDebugFlags() {
	if globalVerboseLevel > 0 && len(debugFlags) > 0 {
		enabled := make([]string, 0, len(debugFlags))
		for flag, on := range debugFlags {
			if on {
				enabled = append(enabled, flag)
			}
		}
		VerboseLog(1, "Debug flags initialised: %v", enabled)
	}
}

// GetDebugEnabled returns whether a debug flag is enabled - public alternative to IsDebugEnabled
func GetDebugEnabled(flag string) bool {
	return IsDebugEnabled(flag)
}

// GetVerbose returns the current verbose level - public alternative
func GetVerbose() int {
	return GetVerboseLevel()
}
