package plugin

import (
	"bufio"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	listHeaderName = "Name"
	listSeparator  = "   "
	listHeaderDesc = "Description"
)

// WriteList prints the plugins as a two column table. Names are right
// aligned in a column as wide as the longest name and separated from the
// description by three spaces.
func WriteList(w io.Writer, descriptors []Descriptor) error {
	width := 0
	for _, d := range descriptors {
		if n := lipgloss.Width(d.Name()); n > width {
			width = n
		}
	}

	bw := bufio.NewWriter(w)
	writeRow(bw, width, listHeaderName, listHeaderDesc)
	for _, d := range descriptors {
		writeRow(bw, width, d.Name(), d.Description())
	}
	return bw.Flush()
}

func writeRow(w *bufio.Writer, width int, name, description string) {
	w.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, name))
	w.WriteString(listSeparator)
	w.WriteString(description)
	w.WriteByte('\n')
}
