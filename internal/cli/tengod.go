package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/lunar-api/internal/calendar"
	"github.com/zapponejosh/lunar-api/internal/ganzhi"
)

// tenGodCommand relates two stems directly.
func (c *CLI) tenGodCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "tengod REFERENCE TARGET",
		Short:   "Show the Ten God relating a target stem to a reference stem",
		Example: "  lunar tengod 壬 庚",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseStem("reference", args[0])
			if err != nil {
				return err
			}
			target, err := parseStem("target", args[1])
			if err != nil {
				return err
			}

			god := ganzhi.FindTenGod(ref, target)
			_, err = fmt.Fprintf(c.out, "%s → %s: %s (%s)\n", ref, target, god, god.Short())
			return err
		},
	}
}

func parseStem(field, v string) (ganzhi.Stem, error) {
	stem, ok, err := calendar.ParseReference(v)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &calendar.ValidationError{Field: field, Value: v, Reason: "required"}
	}
	return stem, nil
}
