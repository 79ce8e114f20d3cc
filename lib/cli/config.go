package cli

import (
	"fmt"

	"github.com/ether/etherdelta/lib/settings"
	"github.com/spf13/cobra"
)

func configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and generate configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show every key with its env var, value and default",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				settings.ConfigShow(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "dump",
			Short: "Print the effective configuration as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return settings.ConfigDump(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "env",
			Short: "List the environment variables",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				settings.ConfigEnv(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print the value of one key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return settings.ConfigGet(cmd.OutOrStdout(), args[0])
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Print a settings.json with every default",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return settings.ConfigInit(cmd.OutOrStdout())
			},
		},
	)
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version, revision := settings.BuildInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "etherdelta %s %s\n", version, settings.GitVersion())
			if revision != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "revision %s\n", revision)
			}
		},
	}
}
