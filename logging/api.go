package logging

// logger is a global reference to the shared Logger.  It displays everything
// until Initialize is called.
var logger = newLogger(LogLevelVerbose)

// Initialize initializes the global logger with the provided log level
func Initialize(loglevelname string) {
	logger = newLogger(LogLevelFromName(loglevelname))
}

// LogLevelFromName converts a log level name to its enumerated value.
func LogLevelFromName(loglevelname string) int {
	switch loglevelname {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		return LogLevelVerbose
	}
}

// ShouldProceed indicates whether or not any errors have been logged.
func ShouldProceed() bool {
	logger.m.Lock()
	defer logger.m.Unlock()

	return logger.errorCount == 0
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// LogConfigError logs an error related to the command line or project
// configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogBuildError logs an error that stopped a build step
func LogBuildError(kind string, err error) {
	logger.handleMsg(&BuildError{Kind: kind, Err: err})
}

// LogBuildWarning logs a warning in the build process
func LogBuildWarning(kind, warning string) {
	logger.handleMsg(&BuildWarning{Kind: kind, Message: warning})
}

// LogInfo displays an informational message when running verbosely
func LogInfo(tag, msg string) {
	if logger.LogLevel == LogLevelVerbose {
		logger.m.Lock()
		defer logger.m.Unlock()

		PrintInfoMessage(tag, msg)
	}
}

// LogToolOutput displays the captured output of an external tool verbatim.  It
// is shown at every level except silent since it usually explains a failure.
func LogToolOutput(text string) {
	if logger.LogLevel > LogLevelSilent && text != "" {
		logger.m.Lock()
		defer logger.m.Unlock()

		printToolOutput(text)
	}
}

// LogFatal logs an error that should never happen: ie. this tool did something
// it wasn't supposed to.
func LogFatal(message string) {
	logger.m.Lock()
	defer logger.m.Unlock()

	logger.errorCount++
	if logger.LogLevel > LogLevelSilent {
		displayFatalError(message)
	}
}

// BeginPhase displays a spinner for a long running phase of the build
func BeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// EndPhase ends the current phase, marking it as succeeded or failed
func EndPhase(success bool) {
	if logger.LogLevel == LogLevelVerbose {
		displayEndPhase(success)
	}
}

// ReportFinished displays all buffered warnings followed by the concluding
// message of the run.
func ReportFinished() {
	logger.m.Lock()
	defer logger.m.Unlock()

	if logger.LogLevel >= LogLevelWarning {
		for _, warning := range logger.warnings {
			warning.display()
		}
	}

	if logger.LogLevel > LogLevelSilent {
		displayFinished(logger.errorCount == 0, logger.errorCount, len(logger.warnings))
	}
}
