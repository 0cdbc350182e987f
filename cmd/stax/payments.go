package main

import (
	"github.com/andrewpillar/stax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func paymentRecord(p *stax.Payment) stax.Object { return p.Raw }

func paymentsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payments",
		Aliases: []string{"payment"},
		Short:   "Manage payments",
	}

	cmd.AddCommand(
		listCmd(v, "List payments", stax.ListPayments, paymentRecord),
		getCmd(v, "Get payments by ID", stax.RetrievePayment, paymentRecord),
		paymentsCaptureCmd(v),
		paymentsVoidCmd(v),
	)
	return cmd
}

func paymentsCaptureCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture <id>",
		Short: "Capture an authorized payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := flagParams(cmd)

			if err != nil {
				return err
			}

			c, err := newClient(cmd, v)

			if err != nil {
				return err
			}

			p := &stax.Payment{ID: args[0]}

			if err := p.Capture(cmd.Context(), c, params); err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), v, p.Raw)
		},
	}

	paramFlag(cmd)
	return cmd
}

func paymentsVoidCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "void <id>",
		Short: "Void a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd, v)

			if err != nil {
				return err
			}

			p := &stax.Payment{ID: args[0]}

			if err := p.Void(cmd.Context(), c); err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), v, p.Raw)
		},
	}
}
