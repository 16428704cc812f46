package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/printer"
	"github.com/goto/salt/term"
	"github.com/goto/scout/core/search"
	"github.com/goto/scout/internal/client"
	"github.com/spf13/cobra"
)

func searchCommand() *cobra.Command {
	var filter string
	var size int
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Query the catalog once and print matching entities",
		Annotations: map[string]string{
			"group": "core",
		},
		Args: cobra.ExactArgs(1),
		Example: heredoc.Doc(`
			$ scout search payment
			$ scout search payment --filter=kind:service --size=5
		`),

		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := printer.Spin("")
			defer spinner.Stop()

			clnt := client.New(cliConfig.Client)
			entities, err := clnt.Search(cmd.Context(), makeSearchRequest(args[0], filter, size))
			if err != nil {
				return err
			}
			spinner.Stop()

			fmt.Println(term.Bluef(prettyPrint(entities)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "--filter=field_key1:val1,key2:val2 gives exact match for values")
	cmd.Flags().IntVarP(&size, "size", "s", 0, "--size=10 maximum size of response query")
	return cmd
}

func makeSearchRequest(text, filter string, size int) search.Request {
	req := search.Request{
		Text:   text,
		Fields: search.DisplayFields,
	}
	if filter != "" {
		req.Filters = makeFilterFromString(filter)
	}
	if size > 0 {
		req.Size = size
	}
	return req
}

func makeFilterFromString(commaSepStr string) map[string][]string {
	m := make(map[string][]string)
	for _, s := range strings.Split(commaSepStr, ",") {
		arr := strings.SplitN(s, ":", 2)
		if len(arr) != 2 {
			continue
		}
		m[arr[0]] = append(m[arr[0]], arr[1])
	}
	return m
}

func prettyPrint(i interface{}) string {
	s, _ := json.MarshalIndent(i, "", "\t")
	return string(s)
}
