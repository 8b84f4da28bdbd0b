package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milden6/dafsa"
)

var (
	dotOutput     string
	dotLabelNodes bool
	dotFromGraph  bool
	gmlOutput     string
)

var statsCmd = &cobra.Command{
	Use:   "stats <automaton>",
	Short: "Print the entry table of a compacted automaton",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arr, err := dafsa.Load(args[0])
		if err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}
		fmt.Println(arr.String())
		fmt.Printf("alphabet: %s\n", strings.Join(arr.Alphabet(), " "))
		return nil
	},
}

var dotCmd = &cobra.Command{
	Use:   "dot <automaton|lexicon>",
	Short: "Emit GraphViz source for an automaton",
	Long: `Emit GraphViz source for an automaton.

The argument is a compacted automaton by default. With --from-lexicon
the argument is a lexicon file; the graph form is rendered instead,
honoring the join-delimiter configuration for condensed display.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := dafsa.DOTOptions{LabelNodes: dotLabelNodes}

		var source string
		if dotFromGraph {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			seqs, err := readLexicon(args[0], cfg.Delimiter)
			if err != nil {
				return err
			}
			var buildOpts []dafsa.Option
			if cfg.JoinDelimiter != "" {
				buildOpts = append(buildOpts, dafsa.JoinTransitions(cfg.JoinDelimiter))
			}
			d, err := dafsa.FromSequences(seqs, buildOpts...)
			if err != nil {
				return err
			}
			source = d.ToDOT(opts)
		} else {
			arr, err := dafsa.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			source = arr.ToDOT(opts)
		}

		return writeOutput(dotOutput, source)
	},
}

var gmlCmd = &cobra.Command{
	Use:   "gml <automaton>",
	Short: "Export a compacted automaton in GML format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arr, err := dafsa.Load(args[0])
		if err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}

		out := os.Stdout
		if gmlOutput != "" {
			f, err := os.Create(gmlOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return arr.WriteGML(out)
	},
}

func init() {
	dotCmd.Flags().StringVarP(&dotOutput, "output", "o", "", "write to file instead of stdout")
	dotCmd.Flags().BoolVar(&dotLabelNodes, "label-nodes", false, "label nodes with their ids")
	dotCmd.Flags().BoolVar(&dotFromGraph, "from-lexicon", false, "build the graph form from a lexicon file")
	gmlCmd.Flags().StringVarP(&gmlOutput, "output", "o", "", "write to file instead of stdout")
}

func writeOutput(path, content string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
