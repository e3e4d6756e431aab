package dashboard

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/yukikurage/followup-tasks/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	Title       = "Tasks Due Today"
	LoadingText = "Loading tasks..."
	EmptyText   = "No tasks due today!"
	ActionLabel = "Mark Complete"
	dueAtLayout = "15:04"
)

// Headers are the table columns, in order.
var Headers = []string{"Type", "Application ID", "Due At", "Status", "Action"}

// Row is one rendered task.
type Row struct {
	ID            string
	Type          string
	ApplicationID string
	DueAt         string
	Status        string
}

// Cells returns the row's column values, action included.
func (r Row) Cells() []string {
	return []string{r.Type, r.ApplicationID, r.DueAt, r.Status, ActionLabel}
}

// Rows converts tasks for display, showing due times as HH:MM in loc.
func Rows(tasks []models.Task, loc *time.Location) []Row {
	caser := cases.Title(language.Und)
	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		rows[i] = Row{
			ID:            t.ID,
			Type:          caser.String(string(t.Type)),
			ApplicationID: t.ApplicationID,
			DueAt:         t.DueAt.In(loc).Format(dueAtLayout),
			Status:        string(t.Status),
		}
	}
	return rows
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Padding(1, 2)
)

// RenderPlain renders the dashboard once, for non-interactive output.
func RenderPlain(d *Dashboard, loc *time.Location) string {
	if d.Loading() && !d.Loaded() {
		return LoadingText + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(Title))
	b.WriteString("\n")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if d.Empty() {
		b.WriteString(t.String())
		b.WriteString("\n")
		b.WriteString(emptyStyle.Render(EmptyText))
		b.WriteString("\n")
		return b.String()
	}

	for _, r := range Rows(d.Tasks(), loc) {
		t.Row(r.Cells()...)
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}
