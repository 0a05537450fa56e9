package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel  = lipgloss.NewStyle().Foreground(colorGray)
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
)

// printTitle prints a section heading.
func printTitle(title string) {
	fmt.Println(styleTitle.Render(title))
}

// printCount prints a labelled count, indented by level.
func printCount(level int, label string, n int) {
	indent := fmt.Sprintf("%*s", 2*level, "")
	fmt.Printf("%s%s %s\n", indent, styleLabel.Render(fmt.Sprintf("%-10s", label+":")), styleNumber.Render(fmt.Sprint(n)))
}

// printDetail prints a muted, indented line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}
