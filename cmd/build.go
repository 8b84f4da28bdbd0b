package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milden6/dafsa"
)

var (
	buildOutput     string
	buildCheck      bool
	buildNoMinimize bool
	buildNoWeights  bool
)

var buildCmd = &cobra.Command{
	Use:   "build <lexicon>",
	Short: "Compile a lexicon file into a compacted automaton",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cfgFile)
		if err != nil {
			return err
		}

		seqs, err := readLexicon(args[0], cfg.Delimiter)
		if err != nil {
			return err
		}

		var opts []dafsa.Option
		if buildNoMinimize || !cfg.minimize() {
			opts = append(opts, dafsa.Minimize(false))
		}
		if buildNoWeights || !cfg.weights() {
			opts = append(opts, dafsa.CollectWeights(false))
		}

		d, err := buildAutomaton(args[0], seqs, opts)
		if err != nil {
			return err
		}

		var arr *dafsa.CompactArray
		if buildCheck {
			arr, err = d.CompactChecked()
			if err != nil {
				return err
			}
		} else {
			arr = d.Compact()
		}

		size, err := arr.Save(buildOutput)
		if err != nil {
			return fmt.Errorf("saving %s: %w", buildOutput, err)
		}

		logger.Info("automaton built",
			zap.String("output", buildOutput),
			zap.Int("sequences", d.NumSequences()),
			zap.Int("nodes", d.NumNodes()),
			zap.Int("edges", d.NumEdges()),
			zap.Int("entries", arr.Len()),
			zap.Int64("bytes", size))
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "out.dafsa", "output file")
	buildCmd.Flags().BoolVar(&buildCheck, "check", false, "verify that the compacted array reproduces the input")
	buildCmd.Flags().BoolVar(&buildNoMinimize, "no-minimize", false, "build a plain trie instead of a minimized automaton")
	buildCmd.Flags().BoolVar(&buildNoWeights, "no-weights", false, "skip the weight collection pass")
}

func readLexicon(path, delimiter string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lexicon %s: %w", path, err)
	}
	defer f.Close()

	seqs, err := dafsa.ReadSequences(f, delimiter)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon %s: %w", path, err)
	}
	return seqs, nil
}

func buildAutomaton(path string, seqs [][]string, opts []dafsa.Option) (*dafsa.DAFSA, error) {
	sorted := make([][]string, len(seqs))
	copy(sorted, seqs)
	slices.SortFunc(sorted, slices.Compare)

	bar := progressbar.NewOptions(len(sorted),
		progressbar.OptionSetDescription(path),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount())

	d := dafsa.New(opts...)
	for _, seq := range sorted {
		if err := d.Add(seq); err != nil {
			return nil, err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Println()

	d.Finish()
	return d, nil
}
