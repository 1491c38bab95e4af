// Package report renders a persisted referral analysis into a downloadable
// Excel workbook. The source payload is the raw model reply, so every
// lookup tolerates missing or oddly-shaped sections.
package report

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/amiralikarma0098/noortoos/internal/store"
)

const (
	sheetSummary  = "خلاصه"
	sheetStatuses = "وضعیت‌ها"
	sheetSubjects = "موضوعات"
	sheetAdvice   = "توصیه‌ها"
)

// knownStatuses fixes the row order for the buckets the summary tracks;
// any other status found in the distribution is appended alphabetically.
var knownStatuses = []string{
	"اتمام کار",
	"بررسی نشده",
	"درحال پیگیری",
	"رویت شده",
	"قبول ارجاع",
}

// BuildReferralWorkbook lays out one workbook for a referral record.
func BuildReferralWorkbook(rec *store.ReferralRecord) (*excelize.File, error) {
	var raw map[string]interface{}
	if rec.FullAnalysis != "" {
		if err := json.Unmarshal([]byte(rec.FullAnalysis), &raw); err != nil {
			return nil, fmt.Errorf("decode stored analysis %d: %w", rec.ID, err)
		}
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetSummary)
	for _, name := range []string{sheetStatuses, sheetSubjects, sheetAdvice} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeSummary(f, rec, raw); err != nil {
		return nil, err
	}
	if err := writeStatuses(f, rec, raw); err != nil {
		return nil, err
	}
	if err := writeSubjects(f, raw); err != nil {
		return nil, err
	}
	if err := writeAdvice(f, raw); err != nil {
		return nil, err
	}

	if idx, err := f.GetSheetIndex(sheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeSummary(f *excelize.File, rec *store.ReferralRecord, raw map[string]interface{}) error {
	insights := section(raw, "comprehensive_insights")

	rows := [][2]interface{}{
		{"نام فایل", rec.FileName},
		{"تاریخ تحلیل", rec.AnalyzedAt.Format("2006-01-02 15:04")},
		{"تعداد کل ارجاعات", rec.Total},
		{"اتمام کار", rec.Completed},
		{"بررسی نشده", rec.Pending},
		{"نرخ تکمیل (%)", rec.CompletionRate},
		{"نرخ معطل (%)", rec.PendingRate},
	}
	if score, ok := insights["workflow_health_score"].(float64); ok {
		rows = append(rows, [2]interface{}{"امتیاز سلامت فرآیند", score})
	}
	if summary, ok := insights["summary_fa"].(string); ok && summary != "" {
		rows = append(rows, [2]interface{}{"خلاصه", summary})
	}

	for i, row := range rows {
		if err := f.SetSheetRow(sheetSummary, fmt.Sprintf("A%d", i+1), &[]interface{}{row[0], row[1]}); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	return nil
}

func writeStatuses(f *excelize.File, rec *store.ReferralRecord, raw map[string]interface{}) error {
	dist := section(section(raw, "status_analysis"), "status_distribution")

	if err := f.SetSheetRow(sheetStatuses, "A1", &[]interface{}{"وضعیت", "تعداد", "درصد"}); err != nil {
		return fmt.Errorf("write status header: %w", err)
	}

	names := append([]string{}, knownStatuses...)
	var extras []string
	for name := range dist {
		known := false
		for _, k := range knownStatuses {
			if k == name {
				known = true
				break
			}
		}
		if !known {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	names = append(names, extras...)

	row := 2
	for _, name := range names {
		count, ok := dist[name].(float64)
		if !ok {
			continue
		}
		percent := 0.0
		if rec.Total > 0 {
			percent = count / float64(rec.Total) * 100
		}
		if err := f.SetSheetRow(sheetStatuses, fmt.Sprintf("A%d", row), &[]interface{}{name, int(count), percent}); err != nil {
			return fmt.Errorf("write status row: %w", err)
		}
		row++
	}
	return nil
}

func writeSubjects(f *excelize.File, raw map[string]interface{}) error {
	if err := f.SetSheetRow(sheetSubjects, "A1", &[]interface{}{"موضوع", "تعداد"}); err != nil {
		return fmt.Errorf("write subject header: %w", err)
	}

	subjects, _ := section(raw, "subject_analysis")["unique_subjects"].([]interface{})
	row := 2
	for _, entry := range subjects {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := m["subject"].(string)
		count, _ := m["count"].(float64)
		if name == "" {
			continue
		}
		if err := f.SetSheetRow(sheetSubjects, fmt.Sprintf("A%d", row), &[]interface{}{name, int(count)}); err != nil {
			return fmt.Errorf("write subject row: %w", err)
		}
		row++
	}
	return nil
}

func writeAdvice(f *excelize.File, raw map[string]interface{}) error {
	insights := section(raw, "comprehensive_insights")
	row := 1

	writeList := func(header string, items []string) error {
		if len(items) == 0 {
			return nil
		}
		if err := f.SetCellValue(sheetAdvice, fmt.Sprintf("A%d", row), header); err != nil {
			return fmt.Errorf("write advice header: %w", err)
		}
		row++
		for _, item := range items {
			if err := f.SetCellValue(sheetAdvice, fmt.Sprintf("A%d", row), item); err != nil {
				return fmt.Errorf("write advice row: %w", err)
			}
			row++
		}
		row++
		return nil
	}

	if err := writeList("توصیه‌ها", stringList(insights["recommendations_fa"])); err != nil {
		return err
	}
	if err := writeList("نقاط قوت", stringList(insights["top_strengths"])); err != nil {
		return err
	}

	var bottlenecks []string
	if list, ok := insights["top_bottlenecks"].([]interface{}); ok {
		for _, entry := range list {
			m, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			name, _ := m["bottleneck"].(string)
			if name == "" {
				continue
			}
			if pending, ok := m["pending_count"].(float64); ok {
				name = fmt.Sprintf("%s (%d مورد معطل)", name, int(pending))
			}
			bottlenecks = append(bottlenecks, name)
		}
	}
	return writeList("گلوگاه‌ها", bottlenecks)
}

func section(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	if sub, ok := m[key].(map[string]interface{}); ok {
		return sub
	}
	return map[string]interface{}{}
}

func stringList(v interface{}) []string {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
