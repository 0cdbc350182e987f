package main

import (
	"github.com/andrewpillar/stax"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func customerRecord(cu *stax.Customer) stax.Object { return cu.Raw }

func customersCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customers",
		Aliases: []string{"customer"},
		Short:   "Manage customers",
	}

	cmd.AddCommand(
		listCmd(v, "List customers", stax.ListCustomers, customerRecord),
		getCmd(v, "Get customers by ID", stax.RetrieveCustomer, customerRecord),
		customersCreateCmd(v),
	)
	return cmd
}

func customersCreateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer from the given params",
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

			cu, err := stax.CreateCustomer(cmd.Context(), c, params)

			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), v, cu.Raw)
		},
	}

	paramFlag(cmd)
	return cmd
}
