package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iamvkosarev/codeninja-telegram-bot/config"
	"github.com/iamvkosarev/codeninja-telegram-bot/internal/app"
	"github.com/iamvkosarev/codeninja-telegram-bot/internal/model"
	"github.com/iamvkosarev/codeninja-telegram-bot/pkg/codeimg"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "codeninja",
		Short:         "Telegram coding assistant backed by an OpenAI-compatible model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd(), renderCmd(), versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "codeninja %s (commit: %s)\n", version, commit)
		},
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the bot and poll Telegram for updates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to load .env: %w", err)
			}
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			setupLogger(cfg.Log)

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			err = app.Run(ctx, cfg, log.Logger)
			log.Info().Msg("stopped")
			return err
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to a YAML configuration file; environment overrides it")
	return cmd
}

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file|->",
		Short: "Render a code file to a syntax-highlighted PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, _ := cmd.Flags().GetString("theme")
			out, _ := cmd.Flags().GetString("out")
			fontSize, _ := cmd.Flags().GetFloat64("font-size")

			if _, ok := model.ParseTheme(theme); !ok {
				return fmt.Errorf("unknown theme %q", theme)
			}
			source, err := readSource(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			renderer, err := codeimg.New(codeimg.Options{FontSize: fontSize})
			if err != nil {
				return err
			}
			png, err := renderer.Render(source, theme)
			if err != nil {
				return fmt.Errorf("failed to render %s: %w", args[0], err)
			}
			if err = os.WriteFile(out, png, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, palette %s)\n", out, len(png), model.ResolvePalette(theme))
			return nil
		},
	}
	cmd.Flags().StringP("theme", "t", string(model.ThemeDefault), "Theme: red, blue, pink or default")
	cmd.Flags().StringP("out", "o", "code.png", "Output PNG path")
	cmd.Flags().Float64("font-size", codeimg.DefaultFontSize, "Font size in points")
	return cmd
}

func readSource(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
