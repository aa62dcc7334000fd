package report

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"gridlearn/internal/model"
)

// Table is the pivoted evaluation result: one row per cost function, one
// column per entity. Missing cells are NaN.
type Table struct {
	KPIs     []string
	Entities []string
	Values   [][]float64
}

// Pivot reshapes KPI records into a table. Row and column order follow first
// appearance in the record list, so building columns precede the district.
func Pivot(records []model.KPIRecord) Table {
	var kpis []string
	var entities []string
	kpiIndex := map[string]int{}
	entityIndex := map[string]int{}

	for _, record := range records {
		if _, ok := kpiIndex[record.Name]; !ok {
			kpiIndex[record.Name] = len(kpis)
			kpis = append(kpis, record.Name)
		}
		if _, ok := entityIndex[record.Entity]; !ok {
			entityIndex[record.Entity] = len(entities)
			entities = append(entities, record.Entity)
		}
	}

	values := make([][]float64, len(kpis))
	for i := range values {
		row := make([]float64, len(entities))
		for j := range row {
			row[j] = math.NaN()
		}
		values[i] = row
	}
	for _, record := range records {
		values[kpiIndex[record.Name]][entityIndex[record.Entity]] = record.Value
	}
	return Table{KPIs: kpis, Entities: entities, Values: values}
}

// Format renders the table as aligned text. NaN cells render empty.
func Format(table Table) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprint(w, "cost_function")
	for _, entity := range table.Entities {
		fmt.Fprintf(w, "\t%s", entity)
	}
	fmt.Fprintln(w)

	for i, kpi := range table.KPIs {
		fmt.Fprint(w, kpi)
		for j := range table.Entities {
			value := table.Values[i][j]
			if math.IsNaN(value) {
				fmt.Fprint(w, "\t")
			} else {
				fmt.Fprintf(w, "\t%.4f", value)
			}
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()
	return sb.String()
}
