package logging

// LogMessage is a message that can be displayed by the logger.
type LogMessage interface {
	display()
	isError() bool
}

// ConfigError is an error in the command line or the project configuration.
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool {
	return true
}

// BuildError is an error raised while running a build step: a tool failing,
// an unrecognized link command, an output file that could not be written.
type BuildError struct {
	Kind string
	Err  error
}

func (be *BuildError) isError() bool {
	return true
}

// BuildWarning is a non-fatal problem noticed while running a build step.
type BuildWarning struct {
	Kind    string
	Message string
}

func (bw *BuildWarning) isError() bool {
	return false
}
