package main

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yanun0323/errors"
)

func tradeCmds() []*cobra.Command {
	buyCmd := &cobra.Command{
		Use:   "buy <user-id> <symbol> <quantity>",
		Short: "Buy shares at the current quote price",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return errors.Wrapf(err, "quantity %q", args[2])
			}
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.orders.Buy(cmd.Context(), args[0], args[1], quantity)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	sellCmd := &cobra.Command{
		Use:   "sell <user-id> <holding-id>",
		Short: "Sell a whole holding",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			holdingID, err := parseID(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.orders.Sell(cmd.Context(), args[0], holdingID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	completeCmd := &cobra.Command{
		Use:   "complete <order-id>",
		Short: "Settle an open order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.orders.CompleteOrder(cmd.Context(), orderID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel <order-id>",
		Short: "Cancel an open order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.orders.CancelOrder(cmd.Context(), orderID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	ordersCmd := &cobra.Command{
		Use:   "orders <user-id>",
		Short: "List every order of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.orders.Orders(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	closedCmd := &cobra.Command{
		Use:   "closed-orders <user-id>",
		Short: "Report closed orders once and mark them completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.orders.ClosedOrders(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	holdingsCmd := &cobra.Command{
		Use:   "holdings <user-id> [holding-id]",
		Short: "List holdings at current prices",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				if len(args) == 2 {
					holdingID, err := parseID(args[1])
					if err != nil {
						return err
					}
					result, err := a.orders.Holding(cmd.Context(), args[0], holdingID)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), result)
				}

				result, err := a.orders.Holdings(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	return []*cobra.Command{buyCmd, sellCmd, completeCmd, cancelCmd, ordersCmd, closedCmd, holdingsCmd}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "id %q", s)
	}
	return id, nil
}
