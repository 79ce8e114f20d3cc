package cli

import (
	"fmt"

	"github.com/ether/etherdelta/lib/delta"
	"github.com/ether/etherdelta/lib/producer"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (a *app) diffCommand() *cobra.Command {
	var stats bool
	cmd := &cobra.Command{
		Use:   "diff <base> <target>",
		Short: "Print the verified delta between two local files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			base, err := afero.ReadFile(fs, args[0])
			if err != nil {
				return err
			}
			target, err := afero.ReadFile(fs, args[1])
			if err != nil {
				return err
			}

			ops, checksum, err := producer.ProduceDelta(string(base), string(target))
			if err != nil {
				return err
			}
			body, err := delta.Encode(ops)
			if err != nil {
				return err
			}

			if stats {
				fmt.Fprintf(cmd.ErrOrStderr(), "operations: %d\ninserted: %d\ndelta bytes: %d\ntarget bytes: %d\nchecksum: %s\n",
					len(ops), ops.InsertedLength(), len(body), len(target), checksum)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return err
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "Print sizes and the target checksum to stderr")
	return cmd
}
