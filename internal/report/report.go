// Package report выводит рассчитанный график платежей в текстовом виде и в CSV.
// Округление до копеек выполняется только здесь.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

const dateLayout = "2006-01-02"

// Columns порядок полей плоской записи периода
var Columns = []string{
	"period_index",
	"date",
	"payment",
	"principal",
	"interest",
	"extra_principal",
	"cumulative_principal",
	"balance",
}

// WriteSummary печатает общую сумму процентов и таблицу периодов
func WriteSummary(w io.Writer, s *calculations.Schedule) error {
	if _, err := fmt.Fprintf(w, "Total Interest Paid: $%s\n", utils.Money(s.TotalInterest())); err != nil {
		return err
	}
	if s.PaidOffEarly() {
		if _, err := fmt.Fprintf(w, "Paid off after %d of %d periods on %s\n",
			s.Len(), s.NominalPeriods, s.PayoffDate().Format(dateLayout)); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Period\tDate\tPayment\tPrincipal\tInterest\tAdditional Principal\tCumulative Principal\tBalance\t")
	for _, p := range s.Periods {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			p.Index,
			p.Date.Format(dateLayout),
			utils.Money(p.Payment),
			utils.Money(p.Principal),
			utils.Money(p.Interest),
			utils.Money(p.ExtraPrincipal),
			utils.Money(p.CumulativePrincipal),
			utils.Money(p.Balance),
		)
	}
	return tw.Flush()
}

// WriteCSV выгружает график как плоские записи с заголовком
func WriteCSV(w io.Writer, s *calculations.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, p := range s.Periods {
		record := []string{
			strconv.Itoa(p.Index),
			p.Date.Format(dateLayout),
			utils.Fixed2(p.Payment),
			utils.Fixed2(p.Principal),
			utils.Fixed2(p.Interest),
			utils.Fixed2(p.ExtraPrincipal),
			utils.Fixed2(p.CumulativePrincipal),
			utils.Fixed2(p.Balance),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePeriodSplit печатает разбивку платежа одного периода
func WritePeriodSplit(w io.Writer, split *calculations.PeriodSplit) error {
	_, err := fmt.Fprintf(w,
		"Period # %d\nInterest Payment: %s\nPrincipal Payment: %s\nTotal Payment: %s\nSplit: %s Interest %s Principal\n",
		split.Period,
		utils.Money(split.Interest),
		utils.Money(split.Principal),
		utils.Money(split.Payment),
		utils.Percent(split.InterestShare),
		utils.Percent(split.PrincipalShare),
	)
	return err
}

// WriteComparison печатает сравнение графиков с досрочными платежами и без них
func WriteComparison(w io.Writer, c *calculations.ExtraPaymentComparison) error {
	_, err := fmt.Fprintf(w,
		"Without additional payments: %d periods, payoff %s, interest $%s\n"+
			"With additional payments:    %d periods, payoff %s, interest $%s\n"+
			"Saved: %d periods, $%s interest\n",
		c.Baseline.Len(), c.BaselinePayoff.Format(dateLayout), utils.Money(c.Baseline.TotalInterest()),
		c.WithExtra.Len(), c.WithExtraPayoff.Format(dateLayout), utils.Money(c.WithExtra.TotalInterest()),
		c.PeriodsSaved, utils.Money(c.InterestSaved),
	)
	return err
}
