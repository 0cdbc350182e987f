package main

import (
	"github.com/andrewpillar/stax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func invoiceRecord(inv *stax.Invoice) stax.Object { return inv.Raw }

func invoicesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoices",
		Aliases: []string{"invoice"},
		Short:   "Manage invoices",
	}

	cmd.AddCommand(
		listCmd(v, "List invoices", stax.ListInvoices, invoiceRecord),
		getCmd(v, "Get invoices by ID", stax.RetrieveInvoice, invoiceRecord),
		invoicesPayCmd(v),
	)
	return cmd
}

func invoicesPayCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Pay an invoice with a payment method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			pm, _ := flags.GetString("payment-method")
			amount, _ := flags.GetString("amount")
			key, _ := flags.GetString("idempotency-key")

			if key == "" {
				key = stax.NewIdempotencyKey()
			}

			params := stax.Params{
				"payment_method_id": pm,
				"idempotency_id":    key,
			}

			if amount != "" {
				params["apply_balance"] = amount
			}

			c, err := newClient(cmd, v)

			if err != nil {
				return err
			}

			inv, err := stax.RetrieveInvoice(cmd.Context(), c, args[0])

			if err != nil {
				return err
			}

			if err := inv.Pay(cmd.Context(), c, params); err != nil {
				return err
			}

			cmd.PrintErrf("paid invoice %s, idempotency key %s\n", inv.ID, key)
			return write(cmd.OutOrStdout(), v, inv.Raw)
		},
	}

	flags := cmd.Flags()
	flags.String("payment-method", "", "ID of the payment method to pay with")
	flags.String("amount", "", "amount to pay, defaults to the balance due")
	flags.String("idempotency-key", "", "idempotency key, defaults to a new UUID")

	cmd.MarkFlagRequired("payment-method")
	return cmd
}
