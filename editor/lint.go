package editor

type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Diagnostic is one linter finding.
type Diagnostic struct {
	Row      int
	Col      int
	Severity Severity
	Message  string
}

// Linter inspects the whole document. It runs after every text change and
// after every reconfiguration.
type Linter func(text string) []Diagnostic
