package main

import (
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"unicode"

	"github.com/rgehrsitz/finhealth/internal/config"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/server"
	"github.com/rgehrsitz/finhealth/internal/store"
	"github.com/rgehrsitz/finhealth/internal/tui"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

// flagName converts a form field name to its kebab-case flag
func flagName(field string) string {
	var b strings.Builder
	for _, r := range field {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func netWorthCmd(a *app) *cobra.Command {
	values := make(map[string]*string, len(domain.FieldNames))
	cmd := &cobra.Command{
		Use:   "networth",
		Short: "Calculate net worth, financial ratios and health tier",
		Long: "Totals income, expenses, assets and liabilities, derives the financial ratios\n" +
			"and stores the totals for the other calculators. Amounts accept thousands\n" +
			"separators and an RM prefix; anything unparseable counts as zero.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := make(map[string]string, len(values))
			for field, v := range values {
				form[field] = *v
			}
			in := config.InputsFromForm(form)

			engine, closeFn, err := a.openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := engine.CalculateNetWorth(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.render(cmd, &domain.Report{NetWorth: res})
		},
	}
	for _, field := range domain.FieldNames {
		values[field] = cmd.Flags().String(flagName(field), "", "Amount for "+field)
	}
	return cmd
}

func coverageCmd(a *app) *cobra.Command {
	var term string
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Estimate takaful coverage from the stored income and expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseCoverageTerm(term)
			if err != nil {
				return err
			}
			engine, closeFn, err := a.openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := engine.EstimateCoverage(cmd.Context(), t)
			if err != nil {
				return err
			}
			return a.render(cmd, &domain.Report{Coverage: res})
		},
	}
	cmd.Flags().StringVarP(&term, "term", "t", string(domain.TermTenYear), "Coverage term: 1y, 5y or 10y")
	return cmd
}

func needsCmd(a *app) *cobra.Command {
	var basis, liabilities, education, life string
	cmd := &cobra.Command{
		Use:   "needs",
		Short: "Analyze the protection needs gap",
		Long: "Compares the ten-year coverage figure plus liabilities and education costs\n" +
			"against assets and existing life cover. Run coverage first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := domain.NeedsGapInput{
				Basis:                   domain.CoverageBasis(basis),
				EstimatedChildEducation: config.ParseAmount(education),
				Life:                    config.ParseAmount(life),
			}
			if cmd.Flags().Changed("liabilities") {
				v := config.ParseAmount(liabilities)
				in.ExistingLiabilities = &v
			}

			engine, closeFn, err := a.openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := engine.AnalyzeNeedsGap(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.render(cmd, &domain.Report{NeedsGap: res})
		},
	}
	cmd.Flags().StringVar(&basis, "basis", "", "Coverage basis: income or expenses (default: last used, else income)")
	cmd.Flags().StringVar(&liabilities, "liabilities", "", "Existing liabilities (default: stored total liabilities)")
	cmd.Flags().StringVar(&education, "education", "", "Estimated child education cost")
	cmd.Flags().StringVar(&life, "life", "", "Existing life cover")
	return cmd
}

// retireFlags holds the retirement projector flags
type retireFlags struct {
	currentAge, retirementAge, maxAge int

	salary, expensePct, inflation, retirementReturn string
	existingFund, epfReturn, contribution, growth   string
	sideFunds                                       []string
}

func (f *retireFlags) plan(cmd *cobra.Command) (domain.RetirementPlan, error) {
	p := domain.RetirementPlan{
		CurrentAge:         f.currentAge,
		RetirementAge:      f.retirementAge,
		MaxAge:             f.maxAge,
		CurrentSalary:      config.ParseAmount(f.salary),
		ExpensePct:         config.ParseRate(f.expensePct),
		InflationRate:      config.ParseRate(f.inflation),
		RetirementReturn:   config.ParseRate(f.retirementReturn),
		EPFReturn:          config.ParseRate(f.epfReturn),
		AnnualContribution: config.ParseAmount(f.contribution),
		SalaryGrowth:       config.ParseRate(f.growth),
	}
	if cmd.Flags().Changed("existing-fund") {
		v := config.ParseAmount(f.existingFund)
		p.ExistingFund = &v
	}
	for _, spec := range f.sideFunds {
		sf, err := parseSideFund(spec)
		if err != nil {
			return p, err
		}
		p.SideFunds = append(p.SideFunds, sf)
	}
	return p, nil
}

// parseSideFund reads "name:presentValue:return:contribution"
func parseSideFund(spec string) (domain.SideFund, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 4 {
		return domain.SideFund{}, fmt.Errorf("side fund %q: want name:present-value:return:contribution", spec)
	}
	return domain.SideFund{
		Name:               strings.TrimSpace(parts[0]),
		PresentValue:       config.ParseAmount(parts[1]),
		AnnualReturn:       config.ParseRate(parts[2]),
		AnnualContribution: config.ParseAmount(parts[3]),
	}, nil
}

func retireCmd(a *app) *cobra.Command {
	f := &retireFlags{}
	cmd := &cobra.Command{
		Use:   "retire [worksheet]",
		Short: "Project the retirement fund needed and available",
		Long: "Projects the fund needed at retirement against the EPF balance, EPF\n" +
			"contributions and up to two side funds. Reads the retirement section of a\n" +
			"worksheet when one is given, otherwise the flags. Rates accept 0.05 or 5%.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var plan domain.RetirementPlan
			if len(args) == 1 {
				ws, err := config.NewInputParser().LoadFromFile(args[0])
				if err != nil {
					return err
				}
				if ws.Retirement == nil {
					return fmt.Errorf("worksheet %s has no retirement section", args[0])
				}
				plan = *ws.Retirement
			} else {
				p, err := f.plan(cmd)
				if err != nil {
					return err
				}
				plan = p
			}

			engine, closeFn, err := a.openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			res, err := engine.ProjectRetirement(cmd.Context(), plan)
			if err != nil {
				return err
			}
			return a.render(cmd, &domain.Report{Retirement: res})
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.currentAge, "current-age", 30, "Current age")
	fl.IntVar(&f.retirementAge, "retirement-age", 60, "Retirement age")
	fl.IntVar(&f.maxAge, "max-age", 80, "Age the fund must last to")
	fl.StringVar(&f.salary, "salary", "", "Current annual salary")
	fl.StringVar(&f.expensePct, "expense-pct", "70%", "Share of salary spent each year in retirement")
	fl.StringVar(&f.inflation, "inflation", "3%", "Annual inflation rate")
	fl.StringVar(&f.retirementReturn, "retirement-return", "4%", "Annual return during retirement")
	fl.StringVar(&f.existingFund, "existing-fund", "", "EPF balance today (default: stored retirement fund value)")
	fl.StringVar(&f.epfReturn, "epf-return", "5.5%", "Annual EPF dividend rate")
	fl.StringVar(&f.contribution, "contribution", "", "Annual EPF contribution")
	fl.StringVar(&f.growth, "salary-growth", "3%", "Annual growth of the contribution")
	fl.StringArrayVar(&f.sideFunds, "side-fund", nil, "Side fund as name:present-value:return:contribution (repeatable, max 2)")
	return cmd
}

func planCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan [worksheet]",
		Short: "Run every calculator present in a worksheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			engine, closeFn, err := a.openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := engine.RunWorksheet(cmd.Context(), ws)
			if err != nil {
				return err
			}
			return a.render(cmd, report)
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [worksheet]",
		Short: "Validate a worksheet file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Worksheet %s is valid\n", args[0])
			return nil
		},
	}
}

func snapshotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect or clear the stored snapshot",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the stored totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := a.openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			snap, err := store.LoadSnapshot(cmd.Context(), engine.Store)
			if err != nil {
				return err
			}
			return a.render(cmd, &domain.Report{Snapshot: &snap})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every stored figure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, closeFn, err := a.openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := store.Clear(cmd.Context(), engine.Store); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Snapshot cleared")
			return nil
		},
	})
	return cmd
}

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.settings.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			engine, closeFn, err := a.openEngine(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			return server.New(engine, a.logger).ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (env FINHEALTH_ADDR, default :8080)")
	return cmd
}

func tuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the calculators interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// log lines would tear the alternate screen
			a.logger.SetOutput(io.Discard)

			engine, closeFn, err := a.openEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			p := tea.NewProgram(
				tui.NewModel(cmd.Context(), engine),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}
