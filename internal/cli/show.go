package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunar-api/internal/calendar"
)

// showCommand prints the chart of a Gregorian date.
func (c *CLI) showCommand() *cobra.Command {
	var (
		hour      string
		reference string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "show [YYYY-MM-DD]",
		Short: "Show the four pillars, lunar date and solar terms of a date",
		Long: `Show the four pillars, lunar date and surrounding solar terms of a
Gregorian date (today when omitted). With --reference, each pillar is
related to the reference stem through the Ten Gods.`,
		Example: `  lunar show 2021-02-13 --time 00 --reference 壬子
  lunar show --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			in := calendar.Input{Time: hour, Reference: reference}
			if len(args) == 1 {
				parts := strings.Split(args[0], "-")
				if len(parts) != 3 {
					return &calendar.ValidationError{Field: "date", Value: args[0], Reason: "want YYYY-MM-DD"}
				}
				in.Year, in.Month, in.Day = parts[0], parts[1], parts[2]
			} else {
				today := calendar.DateOf(c.now(), 0)
				in.Year, in.Month, in.Day = itoa(today.Year), itoa(today.Month), itoa(today.Day)
			}

			engine, cleanup, err := c.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			cal, err := engine.New(cmd.Context(), in)
			if err != nil {
				return err
			}
			return c.writeSnapshot(format, cal.Snapshot())
		},
	}

	cmd.Flags().StringVarP(&hour, "time", "t", "", "hour of day, 00-24 (default: current hour)")
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "reference stem or stem+branch pair for Ten Gods")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")

	return cmd
}

func (c *CLI) writeSnapshot(format string, s calendar.Snapshot) error {
	if format == formatText {
		return renderChart(c.out, s)
	}
	return writeData(c.out, format, s)
}
