package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dedup/pkg/errors"
)

//go:embed docs/*.md
var docsFS embed.FS

// loadDocs returns the embedded topics keyed by name.
func loadDocs() (map[string]string, error) {
	entries, err := fs.ReadDir(docsFS, "docs")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to read embedded docs")
	}

	topics := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".md")
		content, err := fs.ReadFile(docsFS, "docs/"+entry.Name())
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to read embedded doc %s", entry.Name())
		}
		topics[name] = string(content)
	}
	return topics, nil
}

// renderMarkdown renders a topic for the terminal, falling back to the
// raw markdown on non-interactive outputs or renderer failure.
func renderMarkdown(content string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return content
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "docs [topic]",
		Short:   MsgDocsShort,
		Long:    MsgDocsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			topics, err := loadDocs()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			names := make([]string, 0, len(topics))
			for name := range topics {
				names = append(names, name)
			}
			sort.Strings(names)
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			topics, err := loadDocs()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				names := make([]string, 0, len(topics))
				for name := range topics {
					names = append(names, name)
				}
				sort.Strings(names)

				fmt.Fprintln(cmd.OutOrStdout(), "Available topics:")
				for _, name := range names {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "\nUse \"dedup docs <topic>\" to read one.")
				return nil
			}

			content, ok := topics[args[0]]
			if !ok {
				return errors.Newf(errors.ErrInvalidInput, "unknown topic %q", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(content))
			return nil
		},
	}
}
