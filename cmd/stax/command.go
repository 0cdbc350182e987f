package main

import (
	"context"
	"errors"

	"github.com/andrewpillar/stax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func paramFlag(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("param", "p", nil, "request param as key=value, may be repeated")
}

func flagParams(cmd *cobra.Command) (stax.Params, error) {
	pairs, err := cmd.Flags().GetStringArray("param")

	if err != nil {
		return nil, err
	}
	return parseParams(pairs)
}

func fileFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "read IDs from the file, one per line, - for stdin")
}

func cmdIDs(cmd *cobra.Command, args []string) ([]string, error) {
	file, err := cmd.Flags().GetString("file")

	if err != nil {
		return nil, err
	}

	ids, err := readIDs(args, file, cmd.InOrStdin())

	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, errors.New("no IDs given")
	}
	return ids, nil
}

func printPage(cmd *cobra.Command, p stax.Pagination) {
	cmd.PrintErrf("page %d of %d, %d total\n", p.CurrentPage, p.LastPage, p.Total)
}

// listCmd returns a command that lists a page of resources, filtered by the
// --param flag.
func listCmd[T any](v *viper.Viper, short string, list func(context.Context, *stax.Client, stax.Params) ([]T, stax.Pagination, error), raw func(T) stax.Object) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := flagParams(cmd)

			if err != nil {
				return err
			}

			c, err := newClient(cmd, v)

			if err != nil {
				return err
			}

			items, p, err := list(cmd.Context(), c, params)

			if err != nil {
				return err
			}

			printPage(cmd, p)
			return write(cmd.OutOrStdout(), v, records(items, raw))
		},
	}

	paramFlag(cmd)
	return cmd
}

// getCmd returns a command that retrieves each resource of the given IDs.
// A single resource is written as is, otherwise they are written as a list.
func getCmd[T any](v *viper.Viper, short string, get func(context.Context, *stax.Client, string) (T, error), raw func(T) stax.Object) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>...",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := cmdIDs(cmd, args)

			if err != nil {
				return err
			}

			c, err := newClient(cmd, v)

			if err != nil {
				return err
			}

			items := make([]T, 0, len(ids))

			for _, id := range ids {
				it, err := get(cmd.Context(), c, id)

				if err != nil {
					return err
				}
				items = append(items, it)
			}

			if len(items) == 1 {
				return write(cmd.OutOrStdout(), v, raw(items[0]))
			}
			return write(cmd.OutOrStdout(), v, records(items, raw))
		},
	}

	fileFlag(cmd)
	return cmd
}
