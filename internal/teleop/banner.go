// ABOUTME: Usage banner listing the key bindings, printed once when the session starts.
// ABOUTME: Rendered with lipgloss; plain text when the output has no color support.

package teleop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerTitle = lipgloss.NewStyle().Bold(true)
	bannerKeys  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#5FAFFF"})
	bannerFaint = lipgloss.NewStyle().Faint(true)
)

var bannerLines = [][2]string{
	{"A,D", "keys to move the quadcopter in X direction."},
	{"W,S", "keys to move the quadcopter in Y direction."},
	{"UP,DOWN", "arrow keys to move the quadcopter in Z direction."},
	{"LEFT,RIGHT", "arrow keys to turn the quadcopter in Z axis."},
	{"SPACE", "key to stop the commands."},
}

// Banner returns the startup usage text for the given scale.
func Banner(scale Scale) string {
	var b strings.Builder

	b.WriteString(bannerTitle.Render("Reading from keyboard"))
	b.WriteString("\n---------------------------\n")
	b.WriteString("Following keys will send continuous commands to quadcopter.\n")
	for _, l := range bannerLines {
		fmt.Fprintf(&b, "Use %s %s\n", bannerKeys.Render(l[0]), l[1])
	}
	b.WriteString(bannerFaint.Render(fmt.Sprintf("scale: linear %g, angular %g", scale.Linear, scale.Angular)))
	b.WriteString("\n")
	return b.String()
}
