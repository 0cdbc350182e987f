package main

import (
	"github.com/andrewpillar/stax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func paymentMethodRecord(pm *stax.PaymentMethod) stax.Object { return pm.Raw }

func paymentMethodsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment-methods",
		Aliases: []string{"payment-method", "pm"},
		Short:   "Manage payment methods",
	}

	cmd.AddCommand(
		listCmd(v, "List payment methods", stax.ListPaymentMethods, paymentMethodRecord),
		getCmd(v, "Get payment methods by ID", stax.RetrievePaymentMethod, paymentMethodRecord),
		paymentMethodsSurchargeCmd(v),
	)
	return cmd
}

func paymentMethodsSurchargeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "surcharge <id> <total>",
		Short: "Review the surcharge for charging a total to a payment method",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd, v)

			if err != nil {
				return err
			}

			s, err := stax.ReviewSurcharge(cmd.Context(), c, stax.Params{
				"payment_method_id": args[0],
				"total":             args[1],
			})

			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), v, s.Raw)
		},
	}
}
