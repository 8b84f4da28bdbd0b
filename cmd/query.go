package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milden6/dafsa"
)

var (
	queryDelimiter string
	queryPrefix    bool
	queryPattern   bool
	queryDistance  int
)

var queryCmd = &cobra.Command{
	Use:   "query <automaton> <input>",
	Short: "Query a compacted automaton",
	Long: `Query a compacted automaton built with "dafsa build".

By default the input is checked for exact containment. --prefix checks
for prefix containment, --pattern treats the input as a wildcard pattern
('?' matches one element, '*' any run), and --distance N returns every
sequence within edit distance N.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		arr, err := dafsa.Load(args[0])
		if err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}

		input := tokenizeInput(args[1], queryDelimiter)

		switch {
		case queryPattern:
			matches, err := arr.Search(input)
			if err != nil {
				return err
			}
			printMatches(matches)
		case queryDistance > 0:
			matches, err := arr.SearchWithinDistance(input, queryDistance)
			if err != nil {
				return err
			}
			printMatches(matches)
		case queryPrefix:
			if entry, ok := arr.LookupPrefix(input); ok {
				fmt.Printf("prefix found (weight %d)\n", entry.Weight)
			} else {
				fmt.Println("prefix not found")
			}
		default:
			if entry, ok := arr.Lookup(input); ok {
				fmt.Printf("found (count %d)\n", entry.Weight)
			} else {
				fmt.Println("not found")
			}
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryDelimiter, "delimiter", "", "element delimiter in the input (default: one element per character)")
	queryCmd.Flags().BoolVar(&queryPrefix, "prefix", false, "check prefix containment instead of exact containment")
	queryCmd.Flags().BoolVar(&queryPattern, "pattern", false, "treat the input as a wildcard pattern")
	queryCmd.Flags().IntVar(&queryDistance, "distance", 0, "return sequences within this edit distance")
}

func tokenizeInput(input, delimiter string) []string {
	if delimiter != "" && strings.Contains(input, delimiter) {
		return strings.Split(input, delimiter)
	}
	return dafsa.Tokenize(input)
}

func printMatches(matches []dafsa.Match) {
	for _, m := range matches {
		fmt.Printf("%s (count %d)\n", strings.Join(m.Sequence, ""), m.Count)
	}
	fmt.Printf("%d match(es)\n", len(matches))
}
