package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pordosol/pordosol-ls/internal/analyzer"
	"github.com/pordosol/pordosol-ls/internal/config"
	"github.com/pordosol/pordosol-ls/internal/pordosol"
	"github.com/pordosol/pordosol-ls/internal/state"
	"github.com/pordosol/pordosol-ls/internal/utils"
	"github.com/spf13/cobra"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [pattern...]",
		Short: "Report diagnostics for Por Do Sol files",
		Long: "Analyses the files matched by the given doublestar patterns (default " + DefaultPattern + ")\n" +
			"and prints one line per diagnostic. Exits with status 1 when any error is found.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config()
			files, err := expandPatterns(opts.root, args)
			if err != nil {
				return err
			}
			errs, err := check(cmd.OutOrStdout(), opts.root, files, cfg.Global)
			if err != nil {
				return err
			}
			if errs > 0 {
				return fmt.Errorf("%d error(s) found", errs)
			}
			return nil
		},
	}
}

// check prints the diagnostics of every file and returns how many of them are
// errors. Settings apply exactly as they would in the editor.
func check(w io.Writer, root string, files []string, settings config.Settings) (int, error) {
	st := state.NewState()
	errs, total := 0, 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return errs, fmt.Errorf("reading %s: %w", file, err)
		}
		abs, err := filepath.Abs(file)
		if err != nil {
			return errs, fmt.Errorf("resolving %s: %w", file, err)
		}
		uri := protocol.DocumentUri(utils.PathToURI(abs))

		st.Open(uri, analyzer.LanguageID, 0, string(data))
		for _, d := range st.Diagnostics(uri, settings) {
			fmt.Fprintf(w, "%s:%d:%d: %s: %s [%s]\n",
				displayPath(root, file), d.Range.Start.Line+1, d.Range.Start.Character+1,
				d.Severity, d.Message, d.Code)
			if d.Severity == pordosol.SeverityError {
				errs++
			}
			total++
		}
		st.Close(uri)
	}
	fmt.Fprintf(w, "%d problem(s) in %d file(s)\n", total, len(files))
	return errs, nil
}

func displayPath(root, file string) string {
	if rel, err := filepath.Rel(root, file); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return file
}
