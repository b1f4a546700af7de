package diag_test

import (
	"testing"

	"github.com/noahgarrett/limec/internal/diag"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_FormatWithFile(t *testing.T) {
	d := diag.New("undeclared identifier 'z'", "main.lime")
	out := d.Format(false)
	require.Contains(t, out, "Error in main.lime:")
	require.Contains(t, out, "undeclared identifier 'z'")
}

func TestDiagnostic_FormatWithoutFile(t *testing.T) {
	d := diag.New("boom", "")
	require.Contains(t, d.Format(false), "Error: boom")
}

func TestFormatAll_Empty(t *testing.T) {
	require.Equal(t, "", diag.FormatAll(nil, false))
}

func TestFormatAll_Single(t *testing.T) {
	d := diag.New("oops", "f.lime")
	out := diag.FormatAll([]*diag.Diagnostic{d}, false)
	require.NotContains(t, out, "Compilation failed with")
}

func TestFormatAll_Multiple(t *testing.T) {
	d1 := diag.New("first", "f.lime")
	d2 := diag.New("second", "f.lime")
	out := diag.FormatAll([]*diag.Diagnostic{d1, d2}, false)
	require.Contains(t, out, "Compilation failed with 2 error(s)")
	require.Contains(t, out, "[Error 1 of 2]")
	require.Contains(t, out, "[Error 2 of 2]")
}

func TestFromStrings(t *testing.T) {
	diags := diag.FromStrings([]string{"bad token", "missing semicolon"}, "f.lime")
	require.Len(t, diags, 2)
	require.Equal(t, "bad token", diags[0].Message)
}
