package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

// DefaultHistoryLimit matches the billing history page.
const DefaultHistoryLimit = 10

func plansCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List subscription plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plans, err := a.svc.Billing.Plans(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), plans, func(w io.Writer) error {
				tw := newTable(w)
				_ = writeln(tw, "TIER\tNAME\tMONTHLY\tYEARLY\tSAVE")
				for _, p := range plans {
					save := "-"
					if pct := p.YearlySavingsPercent(); pct > 0 {
						save = fmt.Sprintf("%d%%", pct)
					}
					_ = writef(tw, "%s\t%s\t%s\t%s\t%s\n", p.Tier, p.Name,
						model.FormatMoney(p.PriceMonthly, p.Currency),
						model.FormatMoney(p.PriceYearly, p.Currency), save)
				}
				return tw.Flush()
			})
		},
	}
}

func subscriptionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "subscription",
		Short: "Show the current subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSignedIn(); err != nil {
				return err
			}
			sub, err := a.svc.Billing.Subscription(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), sub, func(w io.Writer) error { return writeSubscription(w, sub) })
		},
	}
}

func writeSubscription(w io.Writer, sub *model.Subscription) error {
	renew := "renews"
	if sub.CancelAtPeriodEnd {
		renew = "ends"
	}
	return writef(w, "plan:   %s (%s)\nstatus: %s\ncycle:  %s\n%s:  %s\n",
		orDash(sub.PlanName), orDash(string(sub.Tier)), orDash(string(sub.Status)),
		orDash(string(sub.BillingCycle)), renew, formatDate(sub.CurrentPeriodEnd))
}

func usageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show feature usage for this period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSignedIn(); err != nil {
				return err
			}
			usage, err := a.svc.Billing.Usage(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), usage, func(w io.Writer) error {
				tw := newTable(w)
				_ = writeln(tw, "FEATURE\tUSED\tLIMIT\tRESETS")
				for _, u := range usage {
					_ = writef(tw, "%s\t%d\t%s\t%s\n", u.Feature.Label(), u.Used, formatLimit(u.Limit), formatDate(u.ResetsAt))
				}
				return tw.Flush()
			})
		},
	}
}

func historyCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSignedIn(); err != nil {
				return err
			}
			payments, err := a.svc.Billing.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), payments, func(w io.Writer) error {
				if len(payments) == 0 {
					return writeln(w, "No payments yet.")
				}
				tw := newTable(w)
				_ = writeln(tw, "DATE\tDESCRIPTION\tAMOUNT\tSTATUS\tINVOICE")
				for _, p := range payments {
					created := p.CreatedAt
					_ = writef(tw, "%s\t%s\t%s\t%s\t%s\n", formatDate(&created), orDash(p.Description),
						model.FormatMoney(p.Amount, p.Currency), p.Status, orDash(p.InvoiceURL))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "maximum payments to list")
	return cmd
}

func checkCmd(a *app) *cobra.Command {
	var record bool
	cmd := &cobra.Command{
		Use:   "check <feature>",
		Short: "Check whether a feature is available on your plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignedIn(); err != nil {
				return err
			}
			feature, err := parseFeature(args[0])
			if err != nil {
				return err
			}
			if record {
				if _, err = a.svc.Billing.RecordUsage(cmd.Context(), feature); err != nil {
					return err
				}
			}
			pc, err := a.svc.Billing.CheckPermission(cmd.Context(), feature)
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), pc, func(w io.Writer) error {
				verdict := "allowed"
				if !pc.Allowed {
					verdict = "denied"
				}
				if err := writef(w, "%s: %s (%d of %s used)\n", feature.Label(), verdict, pc.Used, formatLimit(pc.Limit)); err != nil {
					return err
				}
				if pc.Reason != "" {
					return writeln(w, pc.Reason)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&record, "record", false, "record one use before checking")
	return cmd
}

func checkoutCmd(a *app) *cobra.Command {
	var cycle string
	cmd := &cobra.Command{
		Use:   "checkout <plan>",
		Short: "Start checkout for a plan id or tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSignedIn(); err != nil {
				return err
			}
			plans, err := a.svc.Billing.Plans(cmd.Context())
			if err != nil {
				return err
			}
			plan, ok := findPlan(plans, args[0])
			if !ok {
				return fmt.Errorf("no plan named %q", args[0])
			}
			if plan.PriceMonthly == 0 && plan.PriceYearly == 0 {
				return fmt.Errorf("%s is free; nothing to buy", plan.Name)
			}
			base := strings.TrimRight(a.cfg.HTTP.BaseURL, "/")
			cs, err := a.svc.Billing.Checkout(cmd.Context(), model.CheckoutRequest{
				PlanID:       plan.ID,
				BillingCycle: model.ParseBillingCycle(cycle),
				SuccessURL:   base + "/billing?checkout=success",
				CancelURL:    base + "/pricing",
			})
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), cs, func(w io.Writer) error {
				return writef(w, "Open this link to finish checkout:\n%s\n", cs.CheckoutURL)
			})
		},
	}
	cmd.Flags().StringVar(&cycle, "cycle", string(model.CycleMonthly), "billing cycle: monthly or yearly")
	return cmd
}

func findPlan(plans []model.Plan, key string) (model.Plan, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, p := range plans {
		if strings.ToLower(p.ID) == key || string(p.Tier) == key || strings.ToLower(p.Name) == key {
			return p, true
		}
	}
	return model.Plan{}, false
}

func cancelCmd(a *app) *cobra.Command {
	return subscriptionAction(a, "cancel", "Cancel at the end of the current period",
		"Your subscription will end at the close of the current period.", a.cancel)
}

func reactivateCmd(a *app) *cobra.Command {
	return subscriptionAction(a, "reactivate", "Undo a pending cancellation",
		"Your subscription has been reactivated.", a.reactivate)
}

func (a *app) cancel(cmd *cobra.Command) (*model.Subscription, error) {
	return a.svc.Billing.Cancel(cmd.Context())
}

func (a *app) reactivate(cmd *cobra.Command) (*model.Subscription, error) {
	return a.svc.Billing.Reactivate(cmd.Context())
}

func subscriptionAction(
	a *app,
	use, short, done string,
	action func(*cobra.Command) (*model.Subscription, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSignedIn(); err != nil {
				return err
			}
			sub, err := action(cmd)
			if err != nil {
				return err
			}
			return a.emit(printer(cmd), sub, func(w io.Writer) error {
				if err := writeln(w, done); err != nil {
					return err
				}
				return writeSubscription(w, sub)
			})
		},
	}
}

func portalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "portal",
		Short: "Open the billing portal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSignedIn(); err != nil {
				return err
			}
			ps, err := a.svc.Billing.Portal(cmd.Context(), strings.TrimRight(a.cfg.HTTP.BaseURL, "/")+"/billing")
			if err != nil {
				return err
			}
			if ps.URL == "" {
				return errors.New("billing portal returned no link")
			}
			return a.emit(printer(cmd), ps, func(w io.Writer) error { return writeln(w, ps.URL) })
		},
	}
}
