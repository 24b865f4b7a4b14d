package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/flowforge/flowrun/flow"
)

var (
	reportTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	reportKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	reportBox   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// printReport renders metrics as a styled panel, the CLI's "--pretty"
// alternative to the stable key: value format the core otherwise produces.
func printReport(m *flow.Metrics) {
	body := fmt.Sprintf(
		"%s\n%s %d\n%s %d\n%s %d\n%s %.3fs",
		reportTitle.Render("flowrun"),
		reportKey.Render("processes:"), m.NumProcesses(),
		reportKey.Render("dispatches:"), m.Dispatches(),
		reportKey.Render("outputs sent:"), m.OutputsSent(),
		reportKey.Render("elapsed:"), m.Elapsed().Seconds(),
	)
	fmt.Println(reportBox.Render(body))
}
