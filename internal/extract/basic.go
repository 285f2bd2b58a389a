package extract

import (
	"strings"

	"github.com/StinkyLord/rosettabom/internal/model"
)

// Basic splits "name-version" on '-'. The last segment is the version and the
// rest, re-joined with '-', is the component.
func Basic(input string) model.Identifier {
	parts := strings.Split(input, "-")
	last := len(parts) - 1
	return model.Identifier{
		Component:     strings.Join(parts[:last], "-"),
		Version:       parts[last],
		Format:        model.FormatBasic,
		OriginalInput: input,
	}
}
