package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aiscreen-io/canvasctl/internal/config"
	"github.com/aiscreen-io/canvasctl/internal/constants"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage canvasctl configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var baseURL string
	var deleteStyle string
	var updateStyle string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}
			if deleteStyle != "" {
				cfg.DeleteStyle = config.DeleteStyle(deleteStyle)
			}
			if updateStyle != "" {
				cfg.UpdateStyle = config.UpdateStyle(updateStyle)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			path, err := configPath()
			if err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL (default "+constants.DefaultBaseURL+")")
	cmd.Flags().StringVar(&deleteStyle, "delete-style", "", `How the backend deletes: "path" or "body"`)
	cmd.Flags().StringVar(&updateStyle, "update-style", "", `How the backend updates: "put" or "override"`)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "base_url     = %s\n", cfg.ResolveBaseURL(apiBaseURL))
			fmt.Fprintf(out, "delete_style = %s\n", cfg.DeleteStyle)
			fmt.Fprintf(out, "update_style = %s\n", cfg.UpdateStyle)
			if tokPath, err := tokenPath(); err == nil {
				fmt.Fprintf(out, "token_file   = %s\n", tokPath)
			}
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
