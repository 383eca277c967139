package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
)

func (a *app) personCommand() *cobra.Command {
	person := &cobra.Command{
		Use:   "person",
		Short: "Manage the people in the group",
	}
	person.AddCommand(&cobra.Command{
		Use:   "add NAME...",
		Short: "Register one or more people",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				p, err := a.ledger.RegisterPerson(cmd.Context(), name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", p.Name)
			}
			return nil
		},
	})
	return person
}

func (a *app) addCommand() *cobra.Command {
	var (
		name, payer, amount, split string
		beneficiaries              []string
		shares, exact              map[string]string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Example: `  splitctl add --name Dinner --payer Alice --amount 90 --for Alice,Bob,Carol
  splitctl add --name Taxi --payer Alice --amount 100 --for Bob,Carol --split shares --share Bob=1,Carol=3
  splitctl add --name Tickets --payer Alice --for Bob,Carol --split exact --exact Bob=30,Carol=70`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := ledger.TransactionInput{
				Name:          name,
				Payer:         payer,
				Beneficiaries: beneficiaries,
				Split:         models.Split{Mode: models.SplitMode(strings.ToLower(split))},
			}

			if amount != "" {
				v, err := parseAmount(amount)
				if err != nil {
					return fmt.Errorf("--amount: %w", err)
				}
				in.Amount = v
			}
			var err error
			if in.Split.Shares, err = parseAmounts(shares); err != nil {
				return fmt.Errorf("--share: %w", err)
			}
			if in.Split.Exact, err = parseAmounts(exact); err != nil {
				return fmt.Errorf("--exact: %w", err)
			}

			tx, err := a.ledger.RecordTransaction(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tx.Description)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "label for the expense")
	flags.StringVar(&payer, "payer", "", "who paid")
	flags.StringVar(&amount, "amount", "", "total paid (derived from --exact for exact splits)")
	flags.StringSliceVar(&beneficiaries, "for", nil, "who shared the expense (comma separated)")
	flags.StringVar(&split, "split", string(models.SplitEqual), "split mode: equal, shares or exact")
	flags.StringToStringVar(&shares, "share", nil, "weights for a shares split, e.g. Bob=1,Carol=3")
	flags.StringToStringVar(&exact, "exact", nil, "amounts for an exact split, e.g. Bob=30,Carol=70")
	_ = cmd.MarkFlagRequired("payer")
	_ = cmd.MarkFlagRequired("for")

	return cmd
}

func (a *app) balancesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show everyone's balance (positive = is owed, negative = owes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range a.ledger.Balances() {
				fmt.Fprintf(w, "%s\t%s\n", p.Name, calculator.FormatAmount(p.Balance))
			}
			return w.Flush()
		},
	}
}

func (a *app) historyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recorded transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, tx := range a.ledger.History() {
				fmt.Fprintln(cmd.OutOrStdout(), tx.Description)
			}
			return nil
		},
	}
}

func (a *app) settleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "settle [DEBTOR CREDITOR]",
		Short: "Show the settlement plan, or record one planned payment",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				tx, err := a.ledger.SettleDebt(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), tx.Description)
				return nil
			}

			settlements := a.ledger.Settlements()
			if len(settlements) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "All settled up")
				return nil
			}
			for _, s := range settlements {
				fmt.Fprintf(cmd.OutOrStdout(), "%s pays %s %s\n", s.Debtor, s.Creditor, calculator.FormatAmount(s.Payment))
			}
			return nil
		},
	}
}

// parseAmount parses a decimal string such as "12.50".
func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return d.InexactFloat64(), nil
}

func parseAmounts(m map[string]string) (map[string]float64, error) {
	if len(m) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(m))
	for name, raw := range m {
		v, err := parseAmount(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}
