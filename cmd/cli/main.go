// Command cli administers a FinTrack database: it registers users, checks
// stored balances against transactions and prints dashboard figures.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amirasaad/fintrack/infra/initializer"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/currency"
	"github.com/amirasaad/fintrack/pkg/domain/transaction"
	ledgersvc "github.com/amirasaad/fintrack/pkg/service/ledger"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [flags]

Commands:
  adduser    [-username u] [-email e] [-password p]
  reconcile  [-fix] [-email e]
  summary    -email e`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, loadApp); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err) //nolint:errcheck
		os.Exit(1)
	}
}

func loadApp() (*app.App, error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return nil, fmt.Errorf("failed to load application configuration: %w", err)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	return app.New(deps, cfg), nil
}

func run(
	ctx context.Context,
	args []string,
	stdin io.Reader,
	stdout, stderr io.Writer,
	newApp func() (*app.App, error),
) error {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage) //nolint:errcheck
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)

	switch cmd {
	case "adduser":
		username := fs.String("username", "", "Username (prompted when empty)")
		email := fs.String("email", "", "Email (prompted when empty)")
		password := fs.String("password", "", "Password (prompted when empty)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		return addUser(ctx, a, bufio.NewReader(stdin), stdin, stdout, *username, *email, *password)
	case "reconcile":
		fix := fs.Bool("fix", false, "Repair the drifted balances")
		email := fs.String("email", "", "Only this user (default: every user)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		return reconcile(ctx, a, stdout, *email, *fix)
	case "summary":
		email := fs.String("email", "", "User email")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *email == "" {
			fs.Usage()
			return fmt.Errorf("%w: summary needs -email", errUsage)
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		return summary(ctx, a, stdout, *email)
	default:
		fmt.Fprintln(stderr, usage) //nolint:errcheck
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func addUser(
	ctx context.Context,
	a *app.App,
	lines *bufio.Reader,
	stdin io.Reader,
	stdout io.Writer,
	username, email, password string,
) error {
	var err error
	if username == "" {
		if username, err = prompt(lines, stdout, "Username: "); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = prompt(lines, stdout, "Email: "); err != nil {
			return err
		}
	}
	if password == "" {
		fmt.Fprint(stdout, "Password: ") //nolint:errcheck
		if password, err = readPassword(stdin, lines); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout) //nolint:errcheck
	}
	u, err := a.UserService.SignUp(ctx, username, email, password, password)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(stdout, "User %s created with ID %s\n", u.Username, u.ID) //nolint:errcheck
	return nil
}

func prompt(lines *bufio.Reader, stdout io.Writer, label string) (string, error) {
	fmt.Fprint(stdout, label) //nolint:errcheck
	line, err := lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo from a terminal and falls back to a plain
// line for pipes and tests.
func readPassword(stdin io.Reader, lines *bufio.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func reconcile(ctx context.Context, a *app.App, stdout io.Writer, email string, fix bool) error {
	var ids []uuid.UUID
	if email != "" {
		u, err := a.UserService.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
		if err != nil {
			return err
		}
		ids = []uuid.UUID{u.ID}
	} else {
		var err error
		if ids, err = a.UserService.ListUserIDs(ctx); err != nil {
			return err
		}
	}

	warn := color.New(color.FgYellow)
	ok := color.New(color.FgGreen)
	total := 0
	for _, id := range ids {
		var (
			drifts []ledgersvc.Drift
			err    error
		)
		if fix {
			drifts, err = a.LedgerService.Repair(ctx, id)
		} else {
			drifts, err = a.LedgerService.Check(ctx, id)
		}
		if err != nil {
			return fmt.Errorf("user %s: %w", id, err)
		}
		for _, d := range drifts {
			warn.Fprintf(stdout, "%s %s (%s): stored %s, expected %s, difference %s\n", //nolint:errcheck
				kindLabel(d.Kind), d.Name, d.ID, d.Stored, d.Expected, d.Difference())
		}
		total += len(drifts)
	}
	switch {
	case total == 0:
		ok.Fprintf(stdout, "All balances match their transactions (%d users)\n", len(ids)) //nolint:errcheck
	case fix:
		ok.Fprintf(stdout, "Repaired %d balances\n", total) //nolint:errcheck
	default:
		warn.Fprintf(stdout, "%d balances drifted; run with -fix to repair\n", total) //nolint:errcheck
	}
	return nil
}

func kindLabel(k transaction.TargetKind) string {
	if k == transaction.TargetCreditCard {
		return "card"
	}
	return "account"
}

func summary(ctx context.Context, a *app.App, stdout io.Writer, email string) error {
	u, err := a.UserService.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	p, err := a.ProfileService.Ensure(ctx, u.ID)
	if err != nil {
		return err
	}
	s, err := a.DashboardService.Summary(ctx, u.ID)
	if err != nil {
		return err
	}
	cur := p.Currency
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	bold.Fprintf(stdout, "%s · %s to %s\n", p.Username, //nolint:errcheck
		s.Period.From.Format("2006-01-02"), s.Period.To.Format("2006-01-02"))
	fmt.Fprintf(stdout, "Total balance:   %s (%d accounts)\n", //nolint:errcheck
		signedMoney(s.TotalBalance, cur), s.AccountCount)
	green.Fprintf(stdout, "Monthly income:  %s\n", currency.Format(s.MonthlyIncome, cur)) //nolint:errcheck
	red.Fprintf(stdout, "Monthly expense: %s\n", currency.Format(s.MonthlyExpense, cur))  //nolint:errcheck
	fmt.Fprintf(stdout, "Cards:           %d, available %s\n", s.ActiveCards,             //nolint:errcheck
		signedMoney(s.TotalAvailable, cur))
	for _, e := range s.Recent {
		line := fmt.Sprintf("  %s  %-24s %-16s %s", e.Date.Format("2006-01-02"), e.Description, e.TargetName,
			currency.Format(e.Amount, cur))
		if e.Type == transaction.Expense {
			red.Fprintln(stdout, line) //nolint:errcheck
		} else {
			green.Fprintln(stdout, line) //nolint:errcheck
		}
	}
	return nil
}

func signedMoney(d decimal.Decimal, c currency.Code) string {
	if d.IsNegative() {
		return "-" + currency.Format(d, c)
	}
	return currency.Format(d, c)
}
