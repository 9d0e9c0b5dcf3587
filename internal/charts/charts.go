package charts

import (
	"fmt"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/userboard/userboard/internal/domain/entity"
)

// domainCount is one email-domain grouping bucket.
type domainCount struct {
	Domain string
	Count  int
}

// countByDomain groups rows by EmailDomain. Rows without a domain fall into
// the "(none)" bucket. Output order is count descending, then domain, so the
// same table always renders the same chart.
func countByDomain(rows []entity.DerivedUser) []domainCount {
	counts := map[string]int{}
	for _, r := range rows {
		key := "(none)"
		if r.EmailDomain != nil {
			key = *r.EmailDomain
		}
		counts[key]++
	}
	out := make([]domainCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, domainCount{Domain: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Domain < out[j].Domain
	})
	return out
}

// NameLengthHistogram bins NameLength into up to ten equal-width buckets.
func NameLengthHistogram(rows []entity.DerivedUser) *charts.Bar {
	minLen, maxLen := 0, 0
	for i, r := range rows {
		if i == 0 || r.NameLength < minLen {
			minLen = r.NameLength
		}
		if i == 0 || r.NameLength > maxLen {
			maxLen = r.NameLength
		}
	}
	width := (maxLen-minLen)/10 + 1

	bins := map[int]int{}
	for _, r := range rows {
		bins[(r.NameLength-minLen)/width]++
	}

	labels := make([]string, 0, len(bins))
	data := make([]opts.BarData, 0, len(bins))
	for b := 0; b <= (maxLen-minLen)/width; b++ {
		lo := minLen + b*width
		labels = append(labels, fmt.Sprintf("%d-%d", lo, lo+width-1))
		data = append(data, opts.BarData{Value: bins[b]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Name length distribution"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Name: "characters"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "users"}),
	)
	bar.SetXAxis(labels).AddSeries("users", data)
	return bar
}

// EmailDomainBar is a horizontal bar of user count per email domain.
func EmailDomainBar(rows []entity.DerivedUser) *charts.Bar {
	groups := countByDomain(rows)

	labels := make([]string, 0, len(groups))
	data := make([]opts.BarData, 0, len(groups))
	// Reverse so the largest group renders at the top once axes are flipped.
	for i := len(groups) - 1; i >= 0; i-- {
		labels = append(labels, groups[i].Domain)
		data = append(data, opts.BarData{Value: groups[i].Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Users per email domain"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	bar.SetXAxis(labels).AddSeries("users", data)
	bar.XYReversal()
	return bar
}

// EmailDomainDonut shows the same domain grouping as a donut.
func EmailDomainDonut(rows []entity.DerivedUser) *charts.Pie {
	groups := countByDomain(rows)

	items := make([]opts.PieData, 0, len(groups))
	for _, g := range groups {
		items = append(items, opts.PieData{Name: g.Domain, Value: g.Count})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Email domain share"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	pie.AddSeries("domains", items).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{b}: {c}"}),
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}),
	)
	return pie
}

// UsernameScatter plots UsernameLength against NameLength per user.
func UsernameScatter(rows []entity.DerivedUser) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(rows))
	for _, r := range rows {
		data = append(data, opts.ScatterData{
			Name:       textOf(r.Username),
			Value:      []interface{}{r.UsernameLength, r.NameLength},
			SymbolSize: 12,
		})
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Username length vs name length"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Name: "username_length", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "name_length", Type: "value"}),
	)
	sc.AddSeries("users", data)
	return sc
}

// NameBubbles plots CompanyNameLength against NameLength with the symbol
// sized from NameLength; the point name carries the user id for tooltips.
func NameBubbles(rows []entity.DerivedUser) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(rows))
	for _, r := range rows {
		name := ""
		if r.ID != nil {
			name = fmt.Sprintf("id %d", *r.ID)
		}
		data = append(data, opts.ScatterData{
			Name:       name,
			Value:      []interface{}{r.CompanyNameLength, r.NameLength},
			SymbolSize: 8 + 2*r.NameLength,
		})
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Name bubbles"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Name: "company_name_length", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "name_length", Type: "value"}),
	)
	sc.AddSeries("users", data)
	return sc
}

func textOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
