package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunar-api/internal/almanac"
)

// almanacCommand groups the almanac maintenance subcommands.
func (c *CLI) almanacCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "almanac",
		Short: "Generate and import solar term almanacs",
	}
	cmd.AddCommand(c.almanacGenerateCommand())
	cmd.AddCommand(c.almanacImportCommand())
	cmd.AddCommand(c.almanacStatsCommand())
	return cmd
}

func (c *CLI) almanacGenerateCommand() *cobra.Command {
	var (
		from, to int
		out      string
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Short:   "Compute solar terms and write them as an almanac file",
		Example: "  lunar almanac generate --from 1900 --to 2100 --out almanac.txt",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if to < from {
				return fmt.Errorf("--to %d is before --from %d", to, from)
			}
			logger := loggerFromContext(cmd.Context())

			records := almanac.NewGenerator().Range(from, to)

			var w io.Writer = c.out
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := almanac.WriteRecords(w, records); err != nil {
				return err
			}

			logger.Info("almanac generated", "from", from, "to", to, "records", len(records))
			return nil
		},
	}

	year := c.now().Year()
	cmd.Flags().IntVar(&from, "from", year, "first Gregorian year")
	cmd.Flags().IntVar(&to, "to", year, "last Gregorian year")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) almanacImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "import FILE",
		Short:   "Load an almanac file into the SQLite database",
		Example: "  lunar --db data/almanac.db almanac import almanac.txt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.dbPath == "" {
				return errors.New("import needs --db")
			}

			fs, err := almanac.LoadFile(args[0])
			if err != nil {
				return err
			}
			records := fs.Records()
			if len(records) == 0 {
				return fmt.Errorf("%s has no records", args[0])
			}

			db, err := c.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			run, err := db.InsertSolarTerms(cmd.Context(), args[0], records)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(c.out, "imported %d records from %s (%s)\n", run.Records, args[0], run.ID)
			return err
		},
	}
}

func (c *CLI) almanacStatsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the almanac stored in the SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.dbPath == "" {
				return errors.New("stats needs --db")
			}
			if err := validateFormat(format); err != nil {
				return err
			}

			db, err := c.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := db.GetStats(cmd.Context())
			if err != nil {
				return err
			}

			if format != formatText {
				return writeData(c.out, format, stats)
			}
			_, err = fmt.Fprintf(c.out, "%d terms, %d-%d, %d imports\n",
				stats.Terms, stats.FirstYear, stats.LastYear, stats.Imports)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")
	return cmd
}
