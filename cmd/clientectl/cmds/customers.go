package cmds

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/cliente-api/internal/client"
	"github.com/zhouzirui/cliente-api/internal/model/customer"
)

func newListCommand(opts *RootOptions) *cobra.Command {
	var q customer.Criteria

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers, optionally filtered by id, name or cpf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client().List(cmd.Context(), q)
			if err != nil {
				return err
			}
			return opts.printCustomers(cmd.OutOrStdout(), items)
		},
	}

	cmd.Flags().StringVar(&q.ID, "id", "", "match id (takes priority)")
	cmd.Flags().StringVar(&q.Name, "name", "", "match name")
	cmd.Flags().StringVar(&q.NationalID, "cpf", "", "match cpf")

	return cmd
}

func newGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client().Get(cmd.Context(), args[0])
			if errors.Is(err, client.ErrNotFound) {
				return fmt.Errorf("customer %q not found", args[0])
			}
			if err != nil {
				return err
			}
			return opts.printCustomers(cmd.OutOrStdout(), []customer.Customer{c})
		},
	}
}

func newCreateCommand(opts *RootOptions) *cobra.Command {
	var c customer.Customer

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Insert a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := opts.client().Insert(cmd.Context(), c)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	bindCustomerFlags(cmd, &c)
	return cmd
}

func newUpdateCommand(opts *RootOptions) *cobra.Command {
	var c customer.Customer

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace name and cpf of an existing customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := opts.client().Update(cmd.Context(), c)
			if errors.Is(err, client.ErrNotModified) {
				return fmt.Errorf("customer %q does not exist", c.ID)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	bindCustomerFlags(cmd, &c)
	return cmd
}

func newDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := opts.client().Delete(cmd.Context(), args[0])
			if errors.Is(err, client.ErrNotModified) {
				return fmt.Errorf("customer %q does not exist", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func bindCustomerFlags(cmd *cobra.Command, c *customer.Customer) {
	cmd.Flags().StringVar(&c.ID, "id", "", "customer id")
	cmd.Flags().StringVar(&c.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&c.NationalID, "cpf", "", "customer cpf")
	_ = cmd.MarkFlagRequired("id")
}
