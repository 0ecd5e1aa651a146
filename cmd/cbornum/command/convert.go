package command

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/calebcase/cbornum"
	"github.com/calebcase/cbornum/jsontext"
)

var Convert = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert one JSON value, read from file or stdin, to hex encoded CBOR.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  commandConvert,
}

func commandConvert(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()

	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("convert: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()

		r = f
	}

	data, err := cbornum.JSONToCBOR(jsontext.NewReaderSource(r), jsonOptions())
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	log.Debug().Int("bytes", len(data)).Msg("converted")

	_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))

	return err
}
