// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package gate

import (
	"fmt"
	"strings"
)

// Output markers are fixed so both humans and scripts can find the gate's
// lines in noisy tool output.
const (
	headerMarker = "==> "
	stepMarker   = "--> "
)

// header prints the check's header line. Every check that does observable
// work prints one before any other output.
func (rc *RunContext) header(name string) {
	fmt.Fprintf(rc.Out, "%s%s\n", headerMarker, name)
}

// step prints a sub-step result line.
func (rc *RunContext) step(format string, args ...any) {
	fmt.Fprintf(rc.Out, stepMarker+format+"\n", args...)
}

// replay prints the captured output of a failed command, indented so it
// reads as part of the failing step.
func (rc *RunContext) replay(out string) {
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return
	}
	for line := range strings.SplitSeq(out, "\n") {
		fmt.Fprintf(rc.Out, "    %s\n", line)
	}
}

// progress prints a "[i/n] Running check …" line for an extra command
// check, truncated to the terminal width.
func (rc *RunContext) progress(current, total int, command []string) {
	fmt.Fprintln(rc.Out, progressMessage(current, total, command, rc.Width))
}

// progressMessage formats the progress line. A width of zero means no
// terminal, and the line is returned whole. When the command does not fit,
// it is shortened with an ellipsis if there is room for one, cut plain if
// not, and dropped entirely when even the prefix overflows.
func progressMessage(current, total int, command []string, width int) string {
	prefix := fmt.Sprintf("[%d/%d] Running check ", current, total)
	cmd := strings.Join(command, " ")
	msg := prefix + cmd
	if width <= 0 || len(msg) <= width {
		return msg
	}
	avail := width - len(prefix)
	if avail <= 0 {
		return prefix
	}
	if avail <= 3 {
		return prefix + cmd[:avail]
	}
	return prefix + cmd[:avail-3] + "..."
}
