package bcra

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
	"github.com/jhoicas/consultor-bcra/pkg/money"
)

// OthersLabel agrupa las entidades fuera del top N.
const OthersLabel = "Otros"

// TotalsByPeriod suma los montos por período canónico y ordena cronológicamente.
// Los períodos que no se pueden interpretar como YYYY-MM se descartan.
func TotalsByPeriod(records []entity.DebtRecord) []entity.PeriodTotal {
	type acc struct {
		at  time.Time
		sum decimal.Decimal
	}
	byPeriod := make(map[string]*acc)
	for _, r := range records {
		p := NormalizePeriod(r.Period)
		at, err := time.Parse("2006-01", p)
		if err != nil {
			continue
		}
		a, ok := byPeriod[p]
		if !ok {
			a = &acc{at: at}
			byPeriod[p] = a
		}
		a.sum = a.sum.Add(decimal.NewFromFloat(r.Amount))
	}

	out := make([]entity.PeriodTotal, 0, len(byPeriod))
	for p, a := range byPeriod {
		out = append(out, entity.PeriodTotal{
			Period:          p,
			Amount:          a.sum,
			AmountThousands: money.ToThousands(a.sum),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// TopEntities suma por entidad, ordena de mayor a menor y agrupa el resto en "Otros".
// n <= 0 devuelve todas las entidades.
func TopEntities(records []entity.DebtRecord, n int) []entity.EntityTotal {
	sums := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, r := range records {
		if _, ok := sums[r.Entity]; !ok {
			order = append(order, r.Entity)
		}
		sums[r.Entity] = sums[r.Entity].Add(decimal.NewFromFloat(r.Amount))
	}

	all := make([]entity.EntityTotal, 0, len(order))
	for _, name := range order {
		all = append(all, entity.EntityTotal{Entity: name, Amount: sums[name]})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Amount.GreaterThan(all[j].Amount) })

	if n <= 0 || len(all) <= n {
		return all
	}
	others := decimal.Zero
	for _, e := range all[n:] {
		others = others.Add(e.Amount)
	}
	return append(all[:n:n], entity.EntityTotal{Entity: OthersLabel, Amount: others})
}

// LatestPeriod devuelve el mayor período canónico presente, o "" si no hay filas.
func LatestPeriod(records []entity.DebtRecord) string {
	var latest string
	for _, r := range records {
		if p := NormalizePeriod(r.Period); p > latest {
			latest = p
		}
	}
	return latest
}

// FilterPeriod filas del período indicado (comparando en forma canónica).
func FilterPeriod(records []entity.DebtRecord, period string) []entity.DebtRecord {
	want := NormalizePeriod(period)
	out := make([]entity.DebtRecord, 0)
	for _, r := range records {
		if NormalizePeriod(r.Period) == want {
			out = append(out, r)
		}
	}
	return out
}

// DistinctPeriods cantidad de períodos distintos.
func DistinctPeriods(records []entity.DebtRecord) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[NormalizePeriod(r.Period)] = struct{}{}
	}
	return len(seen)
}

// TotalAmount suma de todas las filas.
func TotalAmount(records []entity.DebtRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.Amount))
	}
	return total
}
