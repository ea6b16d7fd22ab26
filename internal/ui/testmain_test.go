package ui

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// TestMain points FANDIAL_HOME at a scratch directory so tests never read
// or write the user's real config, and pins the color profile so rendered
// output does not depend on the terminal running the tests.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "fandial-ui-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("FANDIAL_HOME", dir)
	lipgloss.SetColorProfile(termenv.Ascii)

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}
