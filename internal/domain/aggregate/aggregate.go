package aggregate

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
)

// Mode selects how a group's summed metric becomes its reported value.
type Mode string

const (
	ModeTotal      Mode = "total"
	ModePer90      Mode = "per90"
	ModePercentage Mode = "percentage"
)

// DefaultMinutesMetric is the metric summed for per-90 normalization.
const DefaultMinutesMetric = "minutes"

func ParseMode(raw string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeTotal:
		return ModeTotal, true
	case ModePer90, "per_90", "p90":
		return ModePer90, true
	case ModePercentage, "pct", "percent":
		return ModePercentage, true
	default:
		return "", false
	}
}

// Record is one input row: string dimensions to group by and numeric metrics to sum.
type Record struct {
	Dims    map[string]string
	Metrics map[string]float64
}

// Spec describes one aggregation request.
type Spec struct {
	// GroupBy lists the dimensions forming the group key, in order.
	GroupBy []string
	// LabelDim names the dimension used as display label; defaults to the joined key.
	LabelDim string
	Metric   string
	Mode     Mode
	// SuccessMetric is the numerator for ModePercentage; Metric is the denominator.
	SuccessMetric string
	MinutesMetric string
	// Identity lists the dimensions and metrics that make two records the same
	// underlying row. Empty disables de-duplication.
	Identity []string
}

// Row is one aggregated group.
type Row struct {
	Key     []string `json:"key"`
	Label   string   `json:"label"`
	Total   float64  `json:"total"`
	Success float64  `json:"success,omitempty"`
	Minutes float64  `json:"minutes,omitempty"`
	Value   float64  `json:"value"`
	Count   int      `json:"count"`
}

// Aggregate de-duplicates records on spec.Identity, groups them by
// spec.GroupBy in first-seen order and computes each group's value.
func Aggregate(records []Record, spec Spec) ([]Row, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []Row{}, nil
	}

	minutesMetric := spec.MinutesMetric
	if minutesMetric == "" {
		minutesMetric = DefaultMinutesMetric
	}

	unique, err := Dedupe(records, spec.Identity)
	if err != nil {
		return nil, err
	}

	order := make([]string, 0)
	groups := make(map[string]*Row)

	for i, rec := range unique {
		key := make([]string, len(spec.GroupBy))
		for j, dim := range spec.GroupBy {
			v, ok := rec.Dims[dim]
			if !ok {
				return nil, dataset.NewConfigError("group_by", "record %d has no dimension %q", i, dim)
			}
			key[j] = v
		}

		metric, ok := rec.Metrics[spec.Metric]
		if !ok {
			return nil, dataset.NewConfigError("metric", "record %d has no metric %q", i, spec.Metric)
		}

		var success float64
		if spec.Mode == ModePercentage {
			success, ok = rec.Metrics[spec.SuccessMetric]
			if !ok {
				return nil, dataset.NewConfigError("success_metric", "record %d has no metric %q", i, spec.SuccessMetric)
			}
		}

		minutes, hasMinutes := rec.Metrics[minutesMetric]
		if spec.Mode == ModePer90 && !hasMinutes {
			return nil, dataset.NewConfigError("minutes_metric", "record %d has no metric %q", i, minutesMetric)
		}

		groupKey := strings.Join(key, "\x1f")
		g, exists := groups[groupKey]
		if !exists {
			g = &Row{Key: key, Label: labelFor(rec, key, spec.LabelDim)}
			groups[groupKey] = g
			order = append(order, groupKey)
		}
		g.Total += metric
		g.Success += success
		g.Minutes += minutes
		g.Count++
	}

	out := make([]Row, 0, len(order))
	for _, groupKey := range order {
		row := *groups[groupKey]
		switch spec.Mode {
		case ModePer90:
			row.Value = Per90(row.Total, row.Minutes)
		case ModePercentage:
			row.Value = Percentage(row.Success, row.Total)
		default:
			row.Value = finite(row.Total)
		}
		row.Total = finite(row.Total)
		out = append(out, row)
	}

	return out, nil
}

// Dedupe keeps the first record of every distinct identity. It runs once,
// before grouping.
func Dedupe(records []Record, identity []string) ([]Record, error) {
	if len(identity) == 0 {
		return records, nil
	}

	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	var b strings.Builder
	for i, rec := range records {
		b.Reset()
		for _, field := range identity {
			if v, ok := rec.Dims[field]; ok {
				b.WriteString(v)
			} else if m, ok := rec.Metrics[field]; ok {
				b.WriteString(strconv.FormatFloat(m, 'g', -1, 64))
			} else {
				return nil, dataset.NewConfigError("identity", "record %d has no field %q", i, field)
			}
			b.WriteByte(0x1f)
		}

		key := b.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}

	return out, nil
}

// Leaderboard drops zero-valued rows, sorts descending by value (stable, so
// ties keep input order) and keeps the first n rows; n <= 0 keeps all.
func Leaderboard(rows []Row, n int) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.Value == 0 {
			continue
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Per90 normalizes total to a 90-minute rate; 0 when minutes <= 0.
func Per90(total, minutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	return finite(total / minutes * 90)
}

// Percentage returns success/total*100; 0 when total <= 0.
func Percentage(success, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return finite(success / total * 100)
}

// Ratio returns num/den; 0 when den <= 0.
func Ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return finite(num / den)
}

func validateSpec(spec Spec) error {
	if strings.TrimSpace(spec.Metric) == "" {
		return dataset.NewConfigError("metric", "metric is required")
	}
	switch spec.Mode {
	case "", ModeTotal, ModePer90:
	case ModePercentage:
		if strings.TrimSpace(spec.SuccessMetric) == "" {
			return dataset.NewConfigError("success_metric", "success metric is required for percentage mode")
		}
	default:
		return dataset.NewConfigError("mode", "unsupported mode %q", spec.Mode)
	}
	return nil
}

func labelFor(rec Record, key []string, labelDim string) string {
	if labelDim != "" {
		if v, ok := rec.Dims[labelDim]; ok {
			return v
		}
	}
	return strings.Join(key, " / ")
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
