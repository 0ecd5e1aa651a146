package command

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/calebcase/cbornum/number"
)

var (
	Compare = &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Print -1, 0 or 1 as a is less than, equal to or greater than b.",
		Args:  cobra.ExactArgs(2),
		RunE:  commandCompare,
	}

	Add = &cobra.Command{
		Use:   "add <a> <b>",
		Short: "Print the exact sum of a and b.",
		Args:  cobra.ExactArgs(2),
		RunE:  arithmetic(number.Add),
	}

	Sub = &cobra.Command{
		Use:   "sub <a> <b>",
		Short: "Print the exact difference of a and b.",
		Args:  cobra.ExactArgs(2),
		RunE:  arithmetic(number.Subtract),
	}
)

func operands(args []string) (a, b number.Number, err error) {
	a, err = argument(args[0])
	if err != nil {
		return a, b, err
	}

	b, err = argument(args[1])
	if err != nil {
		return a, b, err
	}

	log.Debug().
		Stringer("a", a.Kind()).
		Stringer("b", b.Kind()).
		Msg("operands")

	return a, b, nil
}

func commandCompare(cmd *cobra.Command, args []string) error {
	a, b, err := operands(args)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), number.Compare(a, b))

	return err
}

func arithmetic(op func(a, b number.Number) (number.Number, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, b, err := operands(args)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd.Name(), err)
		}

		n, err := op(a, b)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd.Name(), err)
		}

		return printNumber(cmd.OutOrStdout(), n)
	}
}
