package pacemaker

import (
	"fmt"
	"strings"
)

// CommandError is returned when a listing command exits with an error.
type CommandError struct {
	Args   []string
	Output string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("crm_resource %s failed: %s", strings.Join(e.Args, " "), e.Output)
}
