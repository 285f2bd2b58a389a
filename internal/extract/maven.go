package extract

import (
	"strings"

	"github.com/StinkyLord/rosettabom/internal/model"
)

// Maven reads a group:artifact:version coordinate. The version is the last
// segment, the artifact the second-to-last and the groupId the first.
func Maven(input string) model.Identifier {
	parts := strings.Split(input, ":")
	n := len(parts)

	id := model.Identifier{
		Version:       parts[n-1],
		Format:        model.FormatMaven,
		OriginalInput: input,
		Extras:        map[string]string{model.ExtraGroupID: parts[0]},
	}
	if n >= 2 {
		id.Component = parts[n-2]
	}
	return id
}
