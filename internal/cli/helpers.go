// Shared helpers for toybox CLI commands.
package cli

import (
	"strings"
)

// soundBuffer captures what a toy plays, without the trailing newline.
type soundBuffer struct {
	b strings.Builder
}

func (s *soundBuffer) Write(p []byte) (int, error) {
	return s.b.Write(p)
}

func (s *soundBuffer) String() string {
	return strings.TrimRight(s.b.String(), "\n")
}
