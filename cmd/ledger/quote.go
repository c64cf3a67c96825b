package main

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/yanun0323/errors"
)

func quoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Maintain quotes",
	}

	var company string
	createCmd := &cobra.Command{
		Use:   "create <symbol> <price>",
		Short: "List a new symbol",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := decimal.NewFromString(args[1])
			if err != nil {
				return errors.Wrapf(err, "price %q", args[1])
			}
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.quotes.Create(cmd.Context(), args[0], company, price)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	createCmd.Flags().StringVar(&company, "company", "", "Company name")

	getCmd := &cobra.Command{
		Use:   "get <symbol>",
		Short: "Show one quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.quotes.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.quotes.List(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <symbol> <price>",
		Short: "Set a new price",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := decimal.NewFromString(args[1])
			if err != nil {
				return errors.Wrapf(err, "price %q", args[1])
			}
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.quotes.UpdatePrice(cmd.Context(), args[0], price)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	moveCmd := &cobra.Command{
		Use:   "move <symbol> <factor> [shares]",
		Short: "Scale the price by factor and add traded shares",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			factor, err := decimal.NewFromString(args[1])
			if err != nil {
				return errors.Wrapf(err, "factor %q", args[1])
			}
			var shares float64
			if len(args) == 3 {
				if shares, err = strconv.ParseFloat(args[2], 64); err != nil {
					return errors.Wrapf(err, "shares %q", args[2])
				}
			}
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.quotes.UpdatePriceVolume(cmd.Context(), args[0], factor, shares)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd, setCmd, moveCmd)
	return cmd
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the market summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.market.Summary(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
}
