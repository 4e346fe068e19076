package live

import "github.com/charmbracelet/lipgloss"

// Style palette, pared down from the teacher's internal/viz/styles.go to
// the handful this package's single status view actually renders: a
// header, a label/value pair for the stats line, and the graph frame
// itself.
var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	statusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	statusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	statusStopped = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)
