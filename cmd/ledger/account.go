package main

import (
	"tradeledger/internal/account"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func accountCmds() []*cobra.Command {
	var req account.RegisterRequest
	var balance string
	registerCmd := &cobra.Command{
		Use:   "register <user-id>",
		Short: "Create a profile and its account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			open, err := decimal.NewFromString(balance)
			if err != nil {
				return err
			}
			req.UserID = args[0]
			req.OpenBalance = open

			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.accounts.Register(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	registerCmd.Flags().StringVar(&req.FullName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	registerCmd.Flags().StringVar(&req.Address, "address", "", "Postal address")
	registerCmd.Flags().StringVar(&balance, "balance", "10000", "Opening balance")

	loginCmd := &cobra.Command{
		Use:   "login <user-id>",
		Short: "Record a login",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				result, err := a.accounts.Login(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout <user-id>",
		Short: "Record a logout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				return a.accounts.Logout(cmd.Context(), args[0])
			})
		},
	}

	portfolioCmd := &cobra.Command{
		Use:   "portfolio <user-id>",
		Short: "Show balance, holdings value and gain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app) error {
				summary, err := a.accounts.PortfolioSummary(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), summary)
			})
		},
	}

	return []*cobra.Command{registerCmd, loginCmd, logoutCmd, portfolioCmd}
}

func accountRequest(userID string, balance decimal.Decimal) account.RegisterRequest {
	return account.RegisterRequest{
		UserID:      userID,
		FullName:    "Trader " + userID,
		Email:       userID + "@ledger.local",
		OpenBalance: balance,
	}
}
