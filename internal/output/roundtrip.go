package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// RoundTripReport renders a human-readable comparison of an identifier and
// its reconstruction: deleted characters in red, inserted ones in green.
type RoundTripReport struct {
	ColorEnabled bool
}

// Write prints the original, the reconstruction, an inline diff and the
// similarity score.
func (r RoundTripReport) Write(w io.Writer, original, decoded string, tokens []string, similarity float64) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Original:  %q\n", original)
	fmt.Fprintf(&b, "Tokens:    [%s]\n", strings.Join(tokens, ", "))
	fmt.Fprintf(&b, "Decoded:   %q\n", decoded)

	if original == decoded {
		fmt.Fprintf(&b, "Success:   %s (%.1f%% similar)\n", r.colorize("yes", color.FgGreen), similarity*100)
	} else {
		fmt.Fprintf(&b, "Success:   %s (%.1f%% similar)\n", r.colorize("no", color.FgRed), similarity*100)
		fmt.Fprintf(&b, "Diff:      %s\n", r.inlineDiff(original, decoded))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r RoundTripReport) inlineDiff(original, decoded string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(original, decoded, false)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(r.colorize("[-"+d.Text+"-]", color.FgRed))
		case diffmatchpatch.DiffInsert:
			b.WriteString(r.colorize("{+"+d.Text+"+}", color.FgGreen))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

func (r RoundTripReport) colorize(s string, attr color.Attribute) string {
	if !r.ColorEnabled {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}
