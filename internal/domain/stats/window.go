package stats

import "time"

// HistogramMonths meses cubiertos por cada histograma byMonth.
const HistogramMonths = 6

const monthLayout = "2006-01"

// monthWindow ventana de meses calendario [mes(now)-5, mes(now)] en la zona horaria de now,
// ordenada del más antiguo al más reciente.
type monthWindow struct {
	keys  []string
	index map[string]int
	loc   *time.Location
}

func newMonthWindow(now time.Time, months int) monthWindow {
	loc := now.Location()
	y, m, _ := now.Date()
	w := monthWindow{
		keys:  make([]string, months),
		index: make(map[string]int, months),
		loc:   loc,
	}
	for i := 0; i < months; i++ {
		// time.Date normaliza meses negativos hacia el año anterior.
		first := time.Date(y, m-time.Month(months-1-i), 1, 0, 0, 0, 0, loc)
		key := first.Format(monthLayout)
		w.keys[i] = key
		w.index[key] = i
	}
	return w
}

// histogram cuenta cuántos instantes caen en cada mes de la ventana; los de fuera se ignoran.
func (w monthWindow) histogram(times []time.Time) []MonthCount {
	out := make([]MonthCount, len(w.keys))
	for i, k := range w.keys {
		out[i] = MonthCount{Month: k}
	}
	for _, t := range times {
		if i, ok := w.index[t.In(w.loc).Format(monthLayout)]; ok {
			out[i].Count++
		}
	}
	return out
}
