// Command pythia is the front-end driver: it parses Python-family
// source files and reports syntax diagnostics.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/build"
	"github.com/pythia-lang/pythia/internal/diagnostics"
	"github.com/pythia-lang/pythia/internal/lexer"
)

var configPath string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pythia",
		Short:         "Parser front end for Python-family source",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML options file")
	root.AddCommand(newParseCmd(), newTokensCmd(), newCheckCmd(), newWatchCmd())
	return root
}

func loadOptions() (*build.Options, error) {
	if configPath == "" {
		return build.DefaultOptions(), nil
	}
	return build.LoadOptions(configPath)
}

// runBatch parses the given files and renders any diagnostics. It
// returns the results and the total diagnostic count.
func runBatch(files []string) ([]*build.Result, int, error) {
	opts, err := loadOptions()
	if err != nil {
		return nil, 0, err
	}
	diagnostics.SetColor(opts.Color)

	manager, err := build.NewManager(opts)
	if err != nil {
		return nil, 0, err
	}
	for _, f := range files {
		if err := manager.AddFile(f); err != nil {
			return nil, 0, err
		}
	}

	results := manager.ParseAll(context.Background())
	errCount := 0
	for _, r := range results {
		if r.HasErrors() {
			fmt.Print(diagnostics.RenderAll(r.File, r.Diagnostics))
			errCount += len(r.Diagnostics)
		}
	}
	return results, errCount, nil
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse files and dump their syntax trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, errCount, err := runBatch(args)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Printf("== %s\n", r.Source.Path)
				for _, stmt := range r.Module.Body {
					fmt.Printf("%s  %s\n", stmt.GetNode(), stmt)
				}
			}
			if errCount > 0 {
				return fmt.Errorf("%d syntax error(s)", errCount)
			}
			return nil
		},
	}
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Dump the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			lex := lexer.New(string(content))
			for {
				tok := lex.NextToken()
				fmt.Println(tok)
				if tok.Type == lexer.TokenEOF {
					return nil
				}
			}
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Report syntax diagnostics only",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, errCount, err := runBatch(args)
			if err != nil {
				return err
			}
			fmt.Println(diagnostics.Summary(errCount))
			if errCount > 0 {
				return fmt.Errorf("%d syntax error(s)", errCount)
			}
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch DIR",
		Short: "Re-check source files as they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, err := build.Watch(args[0], func(path string) {
				if _, errCount, err := runBatch([]string{path}); err == nil && errCount == 0 {
					fmt.Printf("%s: ok\n", path)
				}
			})
			if err != nil {
				return err
			}
			defer watcher.Close()

			fmt.Printf("watching %s\n", args[0])
			for err := range watcher.Errors() {
				fmt.Fprintln(os.Stderr, err)
			}
			return nil
		},
	}
}
