package main

import (
	"github.com/andrewpillar/stax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func transactionRecord(t *stax.Transaction) stax.Object { return t.Raw }

func transactionsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"transaction", "txn"},
		Short:   "Manage transactions",
	}

	cmd.AddCommand(
		getCmd(v, "Get transactions by ID", stax.RetrieveTransaction, transactionRecord),
		transactionsRefundCmd(v),
	)
	return cmd
}

func transactionsRefundCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "refund <id> <total>",
		Short: "Refund part or all of a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd, v)

			if err != nil {
				return err
			}

			t := &stax.Transaction{ID: args[0]}

			refund, err := t.Refund(cmd.Context(), c, stax.Params{
				"total": args[1],
			})

			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), v, refund.Raw)
		},
	}
}
