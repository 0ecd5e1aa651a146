package command

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/calebcase/cbornum/jsontext"
)

var (
	rootArgs = struct {
		Verbose              bool
		PreserveNegativeZero bool
		NoDuplicates         bool
		AllowComments        bool
	}{}

	Root = &cobra.Command{
		Use:   "cbornum",
		Short: "cbornum parses, decodes and converts numbers in CBOR and JSON without losing precision.",
		Long: "`cbornum` reads numbers from JSON text or CBOR data items and prints their kind and exact value.\n\n" +
			"Arguments to compare, add and sub are JSON numbers, or CBOR data items written as cbor:<hex>.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: time.TimeOnly,
			})

			level := zerolog.InfoLevel
			if rootArgs.Verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)
		},
	}
)

func init() {
	flags := Root.PersistentFlags()
	flags.BoolVarP(&rootArgs.Verbose, "verbose", "v", false, "Log debug output to stderr.")
	flags.BoolVar(&rootArgs.PreserveNegativeZero, "preserve-negative-zero", false, "Parse -0 as a negative zero decimal.")
	flags.BoolVar(&rootArgs.NoDuplicates, "no-duplicates", false, "Reject JSON objects with repeated member names.")
	flags.BoolVar(&rootArgs.AllowComments, "allow-comments", false, "Allow //, # and /* */ comments in JSON text.")

	Root.AddCommand(Parse, Decode, Convert, Compare, Add, Sub)
}

func numberOptions() jsontext.NumberOptions {
	return jsontext.NumberOptions{
		PreserveNegativeZero: rootArgs.PreserveNegativeZero,
	}
}

func jsonOptions() jsontext.Options {
	return jsontext.Options{
		NoDuplicates:         rootArgs.NoDuplicates,
		AllowComments:        rootArgs.AllowComments,
		PreserveNegativeZero: rootArgs.PreserveNegativeZero,
	}
}
