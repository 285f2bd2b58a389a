package extract

import (
	"strings"

	"github.com/StinkyLord/rosettabom/internal/model"
)

// PURL reads "pkg:<type>/<namespace>/<name>@<version>".
//
// The last '/' segment holds name@version. The ecosystem is the text after
// "pkg:" in the first segment, and the namespace is the second-to-last
// segment when there are more than two segments.
func PURL(input string) model.Identifier {
	parts := strings.Split(input, "/")
	n := len(parts)

	nameVersion := strings.Split(parts[n-1], "@")
	id := model.Identifier{
		Component:     nameVersion[0],
		Format:        model.FormatPURL,
		OriginalInput: input,
		Extras:        map[string]string{},
	}
	if len(nameVersion) > 1 {
		id.Version = nameVersion[1]
	}

	if scheme := strings.Split(parts[0], ":"); len(scheme) > 1 {
		id.Extras[model.ExtraEcosystem] = scheme[1]
	}
	if n > 2 {
		id.Extras[model.ExtraNamespace] = parts[n-2]
	}
	return id
}
