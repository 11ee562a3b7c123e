package resourceagent

import (
	"errors"
	"fmt"

	"github.com/bgdnvk/pcmkctl/internal/reports"
)

// ErrorToReport turns a pipeline error into a report item of the given
// severity.
func ErrorToReport(err error, severity reports.Severity) reports.Item {
	code := reports.CodeUnableToGetAgentMetadata

	var (
		unsupported *UnsupportedOcfVersionError
		invalidName *InvalidAgentNameError
		foundNone   *AgentNameGuessFoundNoneError
		foundMore   *AgentNameGuessFoundMoreThanOneError
	)
	switch {
	case errors.As(err, &unsupported):
		code = reports.CodeAgentImplementsUnsupportedOcfVersion
	case errors.As(err, &invalidName):
		code = reports.CodeInvalidResourceAgentName
	case errors.As(err, &foundNone):
		code = reports.CodeAgentNameGuessFoundNone
	case errors.As(err, &foundMore):
		code = reports.CodeAgentNameGuessFoundMoreThanOne
	}
	return reports.Item{Severity: severity, Code: code, Message: err.Error()}
}

// GuessedReport tells the user which agent was picked for a bare type.
func GuessedReport(search string, name AgentName) reports.Item {
	return reports.Item{
		Severity: reports.Info(),
		Code:     reports.CodeAgentNameGuessed,
		Message:  fmt.Sprintf("Assumed agent name '%s' (deduced from '%s')", name.FullName(), search),
	}
}
