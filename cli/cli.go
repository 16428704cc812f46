package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/cmdx"
	"github.com/spf13/cobra"
)

var envHelp = map[string]string{
	"short": "List of supported environment variables",
	"long": heredoc.Doc(`
		Scout reads configuration from a "scout.yaml" file or from environment
		variables prefixed with SCOUT_, e.g.

			SCOUT_CLIENT_BASEURL=http://catalog.internal:8080
			SCOUT_SEARCH_DEBOUNCE_INTERVAL=300ms
			SCOUT_LOG_LEVEL=debug
	`),
}

// New builds the scout root command.
func New(cfg *Config) *cobra.Command {
	cliConfig = cfg

	var rootCmd = &cobra.Command{
		Use:           "scout <command> <subcommand> [flags]",
		Short:         "Incremental entity search for your data catalog",
		Long:          "Type-ahead entity search client for catalog services.",
		SilenceErrors: true,
		SilenceUsage:  false,
		Example: heredoc.Doc(`
		$ scout find
		$ scout search payment
		$ scout config init
		`),
		Annotations: map[string]string{
			"group": "core",
			"help:learn": heredoc.Doc(`
				Use 'scout <command> --help' for info about a command.
			`),
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString(configFlag)
			if cfgFile != "" {
				return LoadConfigFromFlag(cfgFile, cliConfig)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		findCommand(),
		searchCommand(),
		configCommand(cfg),
		versionCmd(),
	)

	// Help topics
	rootCmd.AddCommand(cmdx.SetCompletionCmd("scout"))
	rootCmd.AddCommand(cmdx.SetRefCmd(rootCmd))
	rootCmd.AddCommand(cmdx.SetHelpTopicCmd("environment", envHelp))
	cmdx.SetHelp(rootCmd)

	rootCmd.PersistentFlags().StringP(configFlag, "c", "", "Override config file")

	return rootCmd
}
