// ABOUTME: Pins lipgloss to a dark background before the usage banner is rendered
// ABOUTME: Without it AdaptiveColor would send OSC 11 queries whose replies land in the key stream

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// lipgloss resolves AdaptiveColor by asking the terminal for its
	// background color. The reply arrives on stdin as an escape sequence;
	// with the session reading raw bytes it would be decoded as keys
	// ('A'..'D' included) and published as commands.
	lipgloss.SetHasDarkBackground(true)
}
