package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteVersion(t *testing.T) {
	var buf bytes.Buffer
	writeVersion(&buf)
	out := buf.String()
	if !strings.HasPrefix(out, "PolyVM "+Version+" (") {
		t.Fatalf("unexpected first line: %q", out)
	}
	if !strings.Contains(out, "display:") || !strings.Contains(out, "audio:") {
		t.Fatalf("expected display and audio backends listed:\n%s", out)
	}
}
