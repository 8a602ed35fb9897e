package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// convertCommand converts a lunar date to its Gregorian chart.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		leap      bool
		hour      string
		reference string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "convert YEAR MONTH DAY",
		Short: "Convert a lunar date to the Gregorian calendar",
		Example: `  lunar convert 2020 4 1 --leap
  lunar convert 2019 6 5 --format yaml`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			var parts [3]int
			for i, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return err
				}
				parts[i] = n
			}

			engine, cleanup, err := c.engine(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			cal, err := engine.LunarToSolar(cmd.Context(), parts[0], parts[1], parts[2], leap)
			if err != nil {
				return err
			}
			if err := cal.SetTime(hour); err != nil {
				return err
			}
			if err := cal.SetReference(reference); err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Debug("converted", "lunar", cal.Lunar().String(), "date", cal.Core().Date().String())
			return c.writeSnapshot(format, cal.Snapshot())
		},
	}

	cmd.Flags().BoolVar(&leap, "leap", false, "the month is the year's leap month")
	cmd.Flags().StringVarP(&hour, "time", "t", "", "hour of day, 00-24 (default: current hour)")
	cmd.Flags().StringVarP(&reference, "reference", "r", "", "reference stem or stem+branch pair for Ten Gods")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or yaml")

	return cmd
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
