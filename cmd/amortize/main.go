package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/internal/log"
	"github.com/cloud-ru/mcp-amortization-go/internal/report"
)

type options struct {
	terms   calculations.LoanTerms
	period  int
	csv     bool
	compare bool
}

func main() {
	logger := log.New(log.Config{Component: log.ComponentCLI, Output: os.Stderr})

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error("invalid arguments", log.FieldError, err)
		os.Exit(2)
	}

	if err := run(os.Stdout, opts); err != nil {
		logger.Error("amortization failed", log.FieldError, err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var (
		opts  options
		start string
	)

	fs := flag.NewFlagSet("amortize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&start, "start", time.Now().Format("2006-01-02"), "first payment date (YYYY-MM-DD)")
	fs.Float64Var(&opts.terms.AnnualRatePercent, "rate", 0, "annual interest rate, percent")
	fs.IntVar(&opts.terms.TermYears, "years", 30, "loan term in years")
	fs.Float64Var(&opts.terms.Principal, "principal", 0, "original principal")
	fs.Float64Var(&opts.terms.ExtraPayment, "extra", 0, "extra principal paid every period")
	fs.IntVar(&opts.period, "period", 0, "print the interest/principal split of a single period instead of the schedule")
	fs.BoolVar(&opts.csv, "csv", false, "write the schedule as CSV")
	fs.BoolVar(&opts.compare, "compare", false, "compare against the same loan without extra payments")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	date, err := time.Parse("2006-01-02", start)
	if err != nil {
		return options{}, fmt.Errorf("invalid -start %q: %w", start, err)
	}
	opts.terms.StartDate = date
	return opts, nil
}

func run(w io.Writer, opts options) error {
	t := opts.terms

	if opts.period > 0 {
		split, err := calculations.PaymentForPeriod(t.AnnualRatePercent, opts.period, t.TermYears, t.Principal)
		if err != nil {
			return err
		}
		return report.WritePeriodSplit(w, split)
	}

	if opts.compare {
		comparison, err := calculations.CompareExtraPayment(t)
		if err != nil {
			return err
		}
		return report.WriteComparison(w, comparison)
	}

	schedule, err := calculations.Generate(t)
	if err != nil {
		return err
	}
	if opts.csv {
		return report.WriteCSV(w, schedule)
	}
	return report.WriteSummary(w, schedule)
}
