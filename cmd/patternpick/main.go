package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"patternpick/cmd/patternpick/chat"
	"patternpick/internal/catalog"
	"patternpick/internal/config"
	"patternpick/internal/llm"
	"patternpick/internal/logging"
	"patternpick/internal/suggest"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	workspace   string
	patternsDir string
	modelName   string
	jsonOutput  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "patternpick",
	Short: "patternpick - pattern suggestion for prompt catalogs",
	Long: `patternpick watches a catalog of prompt patterns and suggests the best
matches for whatever you are trying to do, using a streaming LLM call with a
strict JSON contract. Responses that break the contract degrade to an empty
suggestion list, never to an error.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// suggestCmd runs a single suggestion cycle and prints the result.
var suggestCmd = &cobra.Command{
	Use:   "suggest [input]",
	Short: "Suggest patterns for an input (reads stdin when no argument)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		app, err := bootstrap()
		if err != nil {
			return err
		}
		defer logging.Sync()

		result, err := app.controller.Suggest(cmd.Context(), input, nil)
		if err != nil {
			return fmt.Errorf("suggestion request failed: %w", err)
		}

		if jsonOutput {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
		}
		if len(result) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no matching patterns")
			return nil
		}
		for _, name := range result {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

// patternsCmd lists the catalog.
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the patterns in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := catalog.NewStore(cfg.Catalog.PatternsDir)
		if err != nil {
			return err
		}
		for _, name := range store.Names() {
			if p, ok := store.Get(name); ok && p.Description != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %s\n", name, p.Description)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage patternpick configuration",
}

// configInitCmd writes a default config file into the workspace.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.yaml into the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := workspace
		if ws == "" {
			ws = config.DefaultWorkspace()
		}
		path := filepath.Join(ws, "config.yaml")
		if err := config.DefaultConfig().Save(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

// app bundles the wired subsystems behind the commands.
type app struct {
	cfg        *config.Config
	store      *catalog.Store
	controller *suggest.Controller
}

func loadConfig() (*config.Config, error) {
	ws := workspace
	if ws == "" {
		ws = config.DefaultWorkspace()
	}
	cfg, err := config.Load(filepath.Join(ws, "config.yaml"))
	if err != nil {
		return nil, err
	}
	if patternsDir != "" {
		cfg.Catalog.PatternsDir = patternsDir
	}
	if modelName != "" {
		cfg.LLM.Model = modelName
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logging.Initialize(ws); err != nil {
		return nil, err
	}
	return cfg, nil
}

func bootstrap() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := catalog.NewStore(cfg.Catalog.PatternsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load pattern catalog: %w", err)
	}
	logging.Boot("catalog: %d patterns from %s", store.Len(), store.Root())

	client, err := llm.NewClient(cfg.LLM, llm.WithTimeout(cfg.GetLLMTimeout()))
	if err != nil {
		return nil, err
	}

	controller := suggest.NewController(client, store, cfg.Suggest.IdentifierCap)
	return &app{cfg: cfg, store: store, controller: controller}, nil
}

func runInteractive() error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer logging.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hot-reload the catalog while the UI runs.
	if a.cfg.Catalog.Watch {
		watcher, werr := catalog.NewWatcher(a.store, a.cfg.GetWatchDebounce(), func() {
			logging.Catalog("catalog reloaded: %d patterns", a.store.Len())
		})
		if werr != nil {
			logging.CatalogWarn("catalog watching disabled: %v", werr)
		} else if werr := watcher.Start(ctx); werr != nil {
			logging.CatalogWarn("catalog watching disabled: %v", werr)
		} else {
			defer watcher.Stop()
		}
	}

	model, err := chat.NewModel(a.cfg, a.store, a.controller)
	if err != nil {
		return err
	}
	p := tea.NewProgram(*model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}

func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		input := strings.TrimSpace(args[0])
		if input == "" {
			return "", fmt.Errorf("input is empty")
		}
		return input, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	input := strings.TrimSpace(string(data))
	if input == "" {
		return "", fmt.Errorf("input is empty")
	}
	return input, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&workspace, "workspace", "", "workspace directory (default ~/.patternpick)")
	rootCmd.PersistentFlags().StringVar(&patternsDir, "patterns", "", "pattern catalog directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "model name (overrides config)")
	suggestCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the suggestion list as JSON")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(suggestCmd, patternsCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
