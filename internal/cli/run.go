package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"hdrbar/internal/config"
	"hdrbar/internal/dataset"
	"hdrbar/internal/events"
	"hdrbar/internal/header"
	"hdrbar/internal/logging"
	"hdrbar/internal/render"
	"hdrbar/internal/rpc"
	"hdrbar/internal/state"
	"hdrbar/internal/ui"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Show the table in an interactive terminal UI",
		Long: `Run opens the table full screen. Drag a separator to resize a column,
drag a title to move it, click to sort, double click a separator to fit the
content, middle click to restore and right click to hide a column.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("run needs a terminal, use print instead")
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
}

func runTUI(ctx context.Context, cfg config.Config) error {
	logger, logCloser, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	logCtx := logging.PackageCtx("cli")

	layouts, err := openLayouts(cfg.Layout, logger)
	if err != nil {
		return err
	}
	defer layouts.Close()

	opts, err := uiOptions(cfg, logger)
	if err != nil {
		return err
	}
	opts.Layouts = layouts
	opts.Snapshot = &ui.Snapshot{}

	model, err := ui.New(opts)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	serverDone := make(chan error, 1)
	if cfg.RPC.Listen != "" {
		remote := ui.NewRemote(opts.Snapshot, program.Send)
		server := rpc.NewServer(rpc.NewService(remote, model.Dispatcher().History()), logger)
		rate := events.NewRateController(cfg.RPC.EventRate)
		model.Dispatcher().Subscribe("rpc", events.Throttle(rate, server.Subscriber()))
		go func() {
			serverDone <- server.ListenAndServe(ctx, cfg.RPC.Listen)
		}()
	} else {
		serverDone <- nil
	}

	logger.InfoContext(logCtx, "starting", "layout", cfg.Layout.Name, "backend", cfg.Layout.Backend)
	_, runErr := program.Run()
	cancel()

	if err := <-serverDone; err != nil {
		logger.ErrorContext(logCtx, "rpc server failed", "error", err)
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// uiOptions converts the configuration into model options
func uiOptions(cfg config.Config, logger *slog.Logger) (ui.Options, error) {
	table, err := loadTable(cfg.Data)
	if err != nil {
		return ui.Options{}, err
	}
	theme, err := render.ThemeByName(cfg.Theme)
	if err != nil {
		return ui.Options{}, err
	}

	hopts := header.DefaultOptions()
	hopts.SeparatorMargin = cfg.Header.SeparatorMargin
	if !cfg.Header.AllowReorder {
		hopts.Style &^= header.AllowReorder
	}

	for _, idx := range cfg.Header.Pinned {
		if idx < 0 || idx >= len(table.Columns) {
			return ui.Options{}, fmt.Errorf("pinned column %d out of range, the table has %d columns", idx, len(table.Columns))
		}
	}

	return ui.Options{
		Table:       table,
		Theme:       theme,
		Header:      hopts,
		MinWidth:    cfg.Header.MinWidth,
		MaxWidth:    cfg.Header.MaxWidth,
		Pinned:      cfg.Header.Pinned,
		DoubleClick: cfg.UI.DoubleClick(),
		Logger:      logger,
	}, nil
}

func loadTable(path string) (*dataset.Table, error) {
	if path == "" {
		return dataset.Demo(), nil
	}
	return dataset.LoadCSV(path)
}

// openLayouts opens the layout store, creating its directory
func openLayouts(cfg config.LayoutConfig, logger *slog.Logger) (*state.Manager, error) {
	if cfg.Path != ":memory:" {
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	store, err := state.Open(cfg.Backend, cfg.Path)
	if err != nil {
		return nil, err
	}
	return state.NewManager(store, cfg.Name, logger), nil
}
