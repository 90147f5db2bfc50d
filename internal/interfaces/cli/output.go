package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/jhoicas/consultor-bcra/internal/application/dto"
	"github.com/jhoicas/consultor-bcra/pkg/money"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printValidacion(w io.Writer, v dto.ValidacionDTO) {
	if v.Valid {
		fmt.Fprintf(w, "%s válida (%s)\n", v.Formatted, v.Kind)
		return
	}
	if v.ExpectedDigit != nil {
		fmt.Fprintf(w, "%s inválida: el dígito verificador debería ser %d\n", v.Input, *v.ExpectedDigit)
		return
	}
	fmt.Fprintf(w, "%s inválida: se esperan 11 dígitos\n", v.Input)
}

func printRecords(w io.Writer, records []dto.DebtRecordDTO) {
	tw := newTable(w)
	fmt.Fprintln(tw, "PERÍODO\tENTIDAD\tMONTO\tSITUACIÓN\tREVISIÓN\tPROC. JUDICIAL")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Period, r.Entity, amountText(r.Amount), r.Status.String(), siNo(r.UnderReview), siNo(r.InJudicialProcess))
	}
	_ = tw.Flush()
}

func printDeudas(w io.Writer, d *dto.DeudasDTO) {
	fmt.Fprintf(w, "CUIT %s  %s\n", d.CUIT, d.Denomination)
	if len(d.Records) == 0 {
		fmt.Fprintln(w, "Sin deudas informadas.")
		return
	}
	printRecords(w, d.Records)
	fmt.Fprintf(w, "\nTotal %s: %s (miles)\n", d.LatestPeriod, d.LatestTotalText)
}

func printHistoricas(w io.Writer, h *dto.HistoricasDTO) {
	fmt.Fprintf(w, "CUIT %s  %s\n", h.CUIT, h.Denomination)
	if len(h.Records) == 0 {
		fmt.Fprintln(w, "Sin deudas informadas.")
		return
	}
	printRecords(w, h.Records)

	fmt.Fprintln(w, "\nEvolución (miles de pesos):")
	tw := newTable(w)
	for _, s := range h.Series {
		fmt.Fprintf(tw, "%s\t%s\n", s.Period, money.Thousands(s.Amount))
	}
	_ = tw.Flush()
}

func printCheques(w io.Writer, c *dto.ChequesDTO) {
	if c.Count == 0 {
		fmt.Fprintln(w, "Sin cheques rechazados.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "FECHA\tCAUSAL\tENTIDAD\tNRO\tMONTO\tPAGO\tMULTA")
	for _, ch := range c.Checks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			ch.RejectionDate, ch.Causal, ch.Entity, ch.Number, amountText(ch.Amount), ch.PaymentDate, ch.FineStatus)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%d cheques, total $%s\n", c.Count, money.Group(c.TotalAmount.RoundBank(0).StringFixed(0)))
}

func printHistorial(w io.Writer, h *dto.QueryLogListResponse) {
	if len(h.Items) == 0 {
		fmt.Fprintln(w, "Sin consultas registradas.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "FECHA\tCUIT\tFUENTE\tREGISTROS\tTOTAL\tDENOMINACIÓN")
	for _, q := range h.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n", q.CreatedAt.Format("2006-01-02 15:04"), q.CUIT, q.Source, q.Records, money.Thousands(q.Total), q.Denomination)
	}
	_ = tw.Flush()
}

func amountText(v float64) string {
	return "$" + money.Group(strconv.FormatFloat(v, 'f', 0, 64))
}

func siNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}
