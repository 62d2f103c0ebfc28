package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/strokeserve/internal/cli"
	"github.com/bastiangx/strokeserve/internal/logger"
	"github.com/bastiangx/strokeserve/internal/tui"
	"github.com/bastiangx/strokeserve/internal/utils"
	"github.com/bastiangx/strokeserve/pkg/config"
	"github.com/bastiangx/strokeserve/pkg/server"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// closeStdinOnSignal closes stdin on SIGINT/SIGTERM so blocking readers
// return and the caller can save before exiting.
func closeStdinOnSignal() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		os.Stdin.Close()
	}()
	return ctx, stop
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the msgpack IPC server on stdin/stdout (default)",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
}

func runServeCmd(_ *cobra.Command, _ []string) error {
	setupLogging()
	ctx, stop := closeStdinOnSignal()
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	srv := server.NewServer(a.newSession(), a.store,
		server.WithSaveDebounce(a.cfg.Dict.SaveDebounce()))
	showStartupInfo(a)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func newCliCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cli",
		Short: "Resolve stroke input line by line (debugging)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			setupLogging()
			log.SetReportTimestamp(false)
			ctx, stop := closeStdinOnSignal()
			defer stop()

			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close()
			log.Info(a.dictStatus.String())

			handler := cli.NewInputHandler(a.newSession(), a.cfg.CLI.ShowCodes)
			err = handler.Start()
			a.saveModel(context.Background())
			if err != nil && ctx.Err() == nil {
				return fmt.Errorf("cli error: %w", err)
			}
			return nil
		},
	}
}

func newTyperCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "typer",
		Short: "Interactive terminal input method",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			logger.Quiet()
			if debugMode {
				logger.Setup(true)
			}
			ctx := context.Background()
			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			model := tui.NewModel(a.newSession(), a.store, a.cfg.CLI.ShowCodes)
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("failed to run TUI: %w", err)
			}
			a.saveModel(ctx)
			if text := model.Text(); text != "" {
				fmt.Println(text)
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	var (
		rebuild    bool
		prediction bool
		chinese    bool
		codes      bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging()
			if rebuild {
				if err := config.RebuildConfigFile(); err != nil {
					return fmt.Errorf("failed to rebuild config: %w", err)
				}
			}
			cfg, used, err := config.LoadConfigWithPriority(configPath)
			if err != nil {
				return err
			}

			var predictionPtr, chinesePtr, codesPtr *bool
			if cmd.Flags().Changed("prediction") {
				predictionPtr = &prediction
			}
			if cmd.Flags().Changed("chinese") {
				chinesePtr = &chinese
			}
			if cmd.Flags().Changed("codes") {
				codesPtr = &codes
			}
			if predictionPtr != nil || chinesePtr != nil || codesPtr != nil {
				if err := cfg.Update(used, predictionPtr, chinesePtr, codesPtr); err != nil {
					return fmt.Errorf("failed to update config: %w", err)
				}
			}

			fmt.Printf("config: %s\n", config.GetActiveConfigPath(used))
			fmt.Printf("prediction: %v  chinese: %v  show codes: %v\n",
				cfg.Engine.EnablePrediction, cfg.CLI.ChineseMode, cfg.CLI.ShowCodes)
			return nil
		},
	}
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "overwrite the default config with defaults")
	cmd.Flags().BoolVar(&prediction, "prediction", true, "enable next character prediction")
	cmd.Flags().BoolVar(&chinese, "chinese", true, "start front ends in Chinese mode")
	cmd.Flags().BoolVar(&codes, "codes", true, "show stroke codes next to candidates")
	return cmd
}

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Diagnose data directory resolution",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			setupLogging()
			pr, err := utils.NewPathResolver()
			if err != nil {
				return fmt.Errorf("failed to initialize path resolver: %w", err)
			}
			return toml.NewEncoder(os.Stdout).Encode(pr.DiagnosePathIssues(dataDir))
		},
	}
}
