package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/yukikurage/followup-tasks/internal/config"
	"github.com/yukikurage/followup-tasks/internal/dashboard"
	"github.com/yukikurage/followup-tasks/internal/dashboard/tui"
	"github.com/yukikurage/followup-tasks/internal/database"
	"github.com/yukikurage/followup-tasks/internal/logging"
	"github.com/yukikurage/followup-tasks/internal/repository"
)

var todayPlain bool

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show tasks due today",
	Long: `Lists non-completed tasks due between 00:00:00 and 23:59:59 local time.

Examples:
  # Interactive view, refreshed at local midnight
  dashboard today

  # Print once and exit
  dashboard today --plain`,
	RunE: runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)

	todayCmd.Flags().BoolVar(&todayPlain, "plain", false, "print today's tasks once and exit")
}

func runToday(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg.Log, cmd.ErrOrStderr(), !todayPlain)
	if err != nil {
		return err
	}
	defer closeLog()

	if !todayPlain {
		// gorm's logger writes to stdout, which belongs to the terminal view.
		cfg.DB.LogLevel = "silent"
	}

	db, err := database.Connect(cfg.DB, logger)
	if err != nil {
		return err
	}

	repo := repository.NewTaskRepository(db, cfg.Store.Timeout)
	d := dashboard.New(repo, time.Now, logger)

	if todayPlain {
		d.Load(cmd.Context())
		_, err := fmt.Fprint(cmd.OutOrStdout(), dashboard.RenderPlain(d, time.Local))
		return err
	}

	var program *tea.Program
	c, err := scheduleRefresh(cfg.Dashboard.RefreshSchedule, func() {
		logger.Debug("scheduled refresh")
		program.Send(tui.RefreshMsg{})
	})
	if err != nil {
		return err
	}
	defer c.Stop()

	model := tui.New(cmd.Context(), d, time.Local)
	return tui.Run(model, func(p *tea.Program) {
		program = p
		c.Start()
	}, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
}

// scheduleRefresh registers fn on a cron schedule evaluated in local time.
// The returned scheduler is not started.
func scheduleRefresh(schedule string, fn func()) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, fn); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return c, nil
}

// openLogger writes to the --log-file when given. Without one, the
// interactive view discards logs and plain mode writes them to stderr.
func openLogger(cfg config.LogConfig, stderr io.Writer, interactive bool) (*slog.Logger, func(), error) {
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return logging.Setup(cfg, f), func() { f.Close() }, nil
	}
	if interactive {
		return logging.Discard(), func() {}, nil
	}
	return logging.Setup(cfg, stderr), func() {}, nil
}
