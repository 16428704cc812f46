package cli

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/goto/salt/log"
	"github.com/goto/salt/term"
	"github.com/goto/scout/core/search"
	"github.com/goto/scout/internal/client"
	"github.com/goto/scout/internal/tui"
	"github.com/goto/scout/pkg/statsd"
	"github.com/spf13/cobra"
)

func findCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Search the catalog interactively as you type",
		Annotations: map[string]string{
			"group": "core",
		},
		Example: heredoc.Doc(`
			$ scout find
		`),

		RunE: func(cmd *cobra.Command, args []string) error {
			logger := initLogger(cliConfig.LogLevel)

			metrics, err := statsd.Init(logger, cliConfig.StatsD)
			if err != nil {
				return fmt.Errorf("error initializing statsd: %w", err)
			}
			defer metrics.Close()

			updates := make(chan search.State, 64)
			searcher := search.New(cliConfig.Search, search.Deps{
				Catalog:  client.New(cliConfig.Client),
				Reporter: search.NewLogReporter(logger, metrics),
				Logger:   logger,
				Metrics:  metrics,
				OnUpdate: func(st search.State) { updates <- st },
			})
			defer searcher.Close()

			model, err := tea.NewProgram(tui.NewFind(searcher, updates)).Run()
			if err != nil {
				return err
			}

			if committed, ok := model.(tui.Model).Committed(); ok {
				if selected, isEntity := committed.Entity(); isEntity {
					fmt.Println(term.Greenf(prettyPrint(selected)))
				} else {
					fmt.Println(committed.Display())
				}
			}
			return nil
		},
	}
	return cmd
}

func initLogger(logLevel string) *log.Logrus {
	return log.NewLogrus(
		log.LogrusWithLevel(logLevel),
		log.LogrusWithWriter(os.Stderr),
	)
}
