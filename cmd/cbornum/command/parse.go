package command

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/calebcase/cbornum"
	"github.com/calebcase/cbornum/jsontext"
	"github.com/calebcase/cbornum/number"
)

const cborPrefix = "cbor:"

var (
	Parse = &cobra.Command{
		Use:   "parse <text>",
		Short: "Parse a JSON number and print its kind and canonical text.",
		Args:  cobra.ExactArgs(1),
		RunE:  commandParse,
	}

	Decode = &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode a sequence of hex encoded CBOR data items and print each number.",
		Args:  cobra.ExactArgs(1),
		RunE:  commandDecode,
	}
)

func printNumber(w io.Writer, n number.Number) error {
	_, err := fmt.Fprintf(w, "%s %s\n", n.Kind(), n)

	return err
}

// argument reads a JSON number or a cbor:<hex> data item.
func argument(arg string) (number.Number, error) {
	if strings.HasPrefix(arg, cborPrefix) {
		data, err := hex.DecodeString(strings.TrimPrefix(arg, cborPrefix))
		if err != nil {
			return number.Number{}, fmt.Errorf("%s: %w", arg, err)
		}

		return cbornum.DecodeNumber(data)
	}

	n, ok := jsontext.ParseNumber(arg, numberOptions())
	if !ok {
		return number.Number{}, fmt.Errorf("not a JSON number: %q", arg)
	}

	return n, nil
}

func commandParse(cmd *cobra.Command, args []string) error {
	n, ok := jsontext.ParseNumber(args[0], numberOptions())
	if !ok {
		return fmt.Errorf("parse: not a JSON number: %q", args[0])
	}

	log.Debug().Str("text", args[0]).Stringer("kind", n.Kind()).Msg("parsed")

	return printNumber(cmd.OutOrStdout(), n)
}

func commandDecode(cmd *cobra.Command, args []string) error {
	data, err := hex.DecodeString(strings.TrimPrefix(args[0], cborPrefix))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	d := cbornum.NewDecoder(bytes.NewReader(data))
	for {
		n, err := d.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode: at byte %d: %w", d.Consumed(), err)
		}

		log.Debug().Int("consumed", d.Consumed()).Stringer("kind", n.Kind()).Msg("decoded")

		err = printNumber(cmd.OutOrStdout(), n)
		if err != nil {
			return err
		}
	}
}
