/*
Package main implements the stroke input server and its debugging front ends.

Note: This is a BETA release. APIs and functionality may rapidly change.

StrokeServe turns sequences of the five basic strokes (u 一, i 丨, o 丿,
j 丶, k 乙) into ranked Chinese candidates. It learns from selections,
predicts the next character and persists what it learned between runs.

# Usage

Start the msgpack IPC server with default settings:

	strokeserve

Use a custom data directory and enable debug logging:

	strokeserve --data /path/to/data -d

Run the line based debugging CLI or the interactive terminal UI:

	strokeserve cli
	strokeserve typer

The data directory holds strokes.txt (word<TAB>code per line), and optionally
phrases.txt and punct_menu.txt. A missing dictionary falls back to the five
basic strokes so the server always starts.

# Configuration

Runtime configuration lives in a TOML file created with defaults on first
run:

	[engine]
	page_size = 9
	prefix_limit = 50
	enable_prediction = true

	[dict]
	main_path = "strokes.txt"
	user_store = "text"

See the config package for every key.

# IPC Protocol

Requests and responses are msgpack maps on stdin and stdout. See the server
package for the message shapes.

	{"id": "r1", "a": "type", "k": "ui"}
*/
package main

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0-beta"
	AppName = "strokeserve"
	gh      = "https://github.com/bastiangx/strokeserve"
)

var (
	configPath string
	dataDir    string
	debugMode  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Stroke code input method engine",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runServeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "data/", "directory containing strokes.txt")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "toggle debug logging")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCliCmd())
	rootCmd.AddCommand(newTyperCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPathsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
