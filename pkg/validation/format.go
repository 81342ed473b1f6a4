// Package validation produces advisory checks. Deal checks only ever warn;
// the engine computes every deal regardless.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/flip-forecast/pkg/constants"
)

var outputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatYAML,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, supported := range outputFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %q", strings.Join(outputFormats, ", "), format)
}
