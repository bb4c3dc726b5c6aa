package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/pordosol/pordosol-ls/internal/pordosol"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

type fmtOptions struct {
	write  bool
	diff   bool
	indent int
}

func newFmtCommand(opts *options) *cobra.Command {
	fo := &fmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Re-indent Por Do Sol files",
		Long: "Re-indents the given files from their brace nesting. Without files, stdin is\n" +
			"formatted to stdout. By default formatted sources are printed; use --write to\n" +
			"rewrite files in place or --diff to preview the change.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return formatStream(cmd.InOrStdin(), cmd.OutOrStdout(), fo.indent)
			}
			files, err := expandPatterns(opts.root, args)
			if err != nil {
				return err
			}
			for _, file := range files {
				if err := formatFile(cmd.OutOrStdout(), opts.root, file, fo); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&fo.write, "write", "w", false, "Write the result back to the source file.")
	cmd.Flags().BoolVarP(&fo.diff, "diff", "d", false, "Print a unified diff instead of the formatted source.")
	cmd.Flags().IntVar(&fo.indent, "indent", pordosol.DefaultIndentWidth, "Spaces per nesting level.")
	return cmd
}

func formatStream(r io.Reader, w io.Writer, indent int) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	_, err = io.WriteString(w, pordosol.Format(string(data), indent))
	return err
}

func formatFile(w io.Writer, root, file string, fo *fmtOptions) error {
	info, err := os.Stat(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	original := string(data)
	formatted := pordosol.Format(original, fo.indent)

	if fo.diff {
		text, err := unifiedDiff(displayPath(root, file), original, formatted)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	if fo.write {
		if formatted == original {
			return nil
		}
		if err := os.WriteFile(file, []byte(formatted), info.Mode().Perm()); err != nil {
			return fmt.Errorf("writing %s: %w", file, err)
		}
		commonlog.GetLogger("pordosol.cli").Infof("formatted %s", file)
		return nil
	}
	if !fo.diff {
		_, err = io.WriteString(w, formatted)
	}
	return err
}

// unifiedDiff returns "" when nothing changed.
func unifiedDiff(name, original, formatted string) (string, error) {
	if original == formatted {
		return "", nil
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: name,
		ToFile:   name + " (formatted)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diffing %s: %w", name, err)
	}
	return text, nil
}
