package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aivibe/vibe-tui/client"
	"github.com/aivibe/vibe-tui/config"
)

func newSettingsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the backend's current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.client.GetSettings(cmd.Context())
			if err != nil {
				return errors.New(client.ErrorMessage(err, "Failed to load settings"))
			}
			printSettings(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func newSetCmd(e *env) *cobra.Command {
	var (
		personality string
		provider    string
		memory      bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change personality, provider or memory",
		Long:  "Sends only the flags given; anything omitted keeps its backend value.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var update client.SettingsUpdate
			if cmd.Flags().Changed("personality") {
				update.Personality = &personality
			}
			if cmd.Flags().Changed("provider") {
				update.Provider = &provider
			}
			if cmd.Flags().Changed("memory") {
				update.Memory = &memory
			}
			if update.IsEmpty() {
				return errors.New("nothing to set: pass --personality, --provider or --memory")
			}
			ctx := cmd.Context()
			if _, err := e.client.UpdateSettings(ctx, update); err != nil {
				return errors.New(client.ErrorMessage(err, "Failed to save settings"))
			}
			s, err := e.client.GetSettings(ctx)
			if err != nil {
				return errors.New(client.ErrorMessage(err, "Failed to save settings"))
			}
			printSettings(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringVar(&personality, "personality", "", "Personality name")
	cmd.Flags().StringVar(&provider, "provider", "", "Provider name")
	cmd.Flags().BoolVar(&memory, "memory", false, "Enable conversation memory")
	return cmd
}

func newSayCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "say <text...>",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return errors.New("message is empty")
			}
			resp, err := e.client.Chat(cmd.Context(), text)
			if err != nil {
				return errors.New(client.ErrorMessage(err, "Request failed"))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bot: %s\n", resp.Reply)
			return nil
		},
	}
}

func newConfigCmd(e *env, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the profile's config file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(e.profileDir)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			cfg := config.Defaults()
			if flags.url != "" {
				cfg.BackendURL = flags.url
			}
			if flags.theme != "" {
				cfg.Theme = flags.theme
			}
			if err := config.Save(e.profileDir, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(
		initCmd,
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), config.Path(e.profileDir))
			},
		},
	)
	return cmd
}

func printSettings(w io.Writer, s *client.Settings) {
	if s == nil {
		fmt.Fprintln(w, "No settings available.")
		return
	}
	fmt.Fprintf(w, "personality: %s (%s)\n", s.Current.Personality, strings.Join(s.Personalities, ", "))
	fmt.Fprintf(w, "provider:    %s (%s)\n", s.Current.Provider, strings.Join(s.Providers, ", "))
	fmt.Fprintf(w, "memory:      %t\n", s.Current.Memory)
}

