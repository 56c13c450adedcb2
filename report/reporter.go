package report

import "sync"

// Diagnostic represents a single retained compilation error or warning.
type Diagnostic struct {
	// The absolute path to the erroneous source file.
	AbsPath string

	// The representative (display) path to the erroneous source file.
	ReprPath string

	// The span over which the diagnostic occurs.  May be nil if the diagnostic
	// has no position information.
	Span *TextSpan

	// The diagnostic message.
	Message string

	// Whether the diagnostic is an error as opposed to a warning.
	IsError bool
}

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during program execution.  The reporter respects the set
// log level and is synchronized: its methods can be safely called from multiple
// goroutines.  All compile errors and warnings are retained so that later
// phases (and tests) can inspect what was reported.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors reported so far.
	errorCount int

	// The retained compile errors and warnings in reporting order.
	diagnostics []*Diagnostic
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// rep is the global reporter instance.
var rep *Reporter

// InitReporter initializes the global error reporter to the given log level.
// Any previously retained diagnostics are discarded.
func InitReporter(logLevel int) {
	rep = &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
	}
}

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount > 0
}

// ErrorCount returns the number of errors reported so far.
func ErrorCount() int {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount
}

// Diagnostics returns the retained compile errors and warnings in the order
// they were reported.
func Diagnostics() []*Diagnostic {
	rep.m.Lock()
	defer rep.m.Unlock()

	diags := make([]*Diagnostic, len(rep.diagnostics))
	copy(diags, rep.diagnostics)
	return diags
}
