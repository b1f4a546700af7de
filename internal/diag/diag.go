// Package diag formats Lime's accumulated lex/parse/codegen errors for
// reporting on stderr. Lime's error model is flat strings — no
// structured error kinds, no source spans beyond the line number
// already embedded in a token — so a Diagnostic carries only a
// message and the file it came from.
package diag

import (
	"fmt"
	"strings"
)

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Message string
	File    string
}

// New creates a Diagnostic for message, attributed to file.
func New(message, file string) *Diagnostic {
	return &Diagnostic{Message: message, File: file}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic as a file-prefixed message. When color
// is true, ANSI escapes highlight the message.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		fmt.Fprintf(&sb, "Error in %s: ", d.File)
	} else {
		sb.WriteString("Error: ")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// FormatAll renders every diagnostic in diags, numbering them when
// there is more than one.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(diags))
	for i, d := range diags {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(diags))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FromStrings wraps plain error strings (as produced by the lexer,
// parser, and codegen, which accumulate errors as flat strings) into
// Diagnostics, so they can be rendered through the same
// Format/FormatAll path.
func FromStrings(messages []string, file string) []*Diagnostic {
	diags := make([]*Diagnostic, 0, len(messages))
	for _, msg := range messages {
		diags = append(diags, New(msg, file))
	}
	return diags
}
