package analysis

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return payload
}

// ========== Normalize ==========

func TestNormalize_FullPayload(t *testing.T) {
	payload := decode(t, `{
		"فیلدهای_عددی": {"امتیاز_کل": 7, "امتیاز_پیگیری": 8, "disc_d": 6, "کیفیت_لید_درصد": 70},
		"فیلدهای_متنی": {"نام_فروشنده": "پایان", "خلاصه": "گزارش شامل 150 تماس", "disc_شواهد": ["تعامل زیاد"]},
		"لیست_ها": {"نقاط_قوت": ["پیگیری منظم", "تنوع خدمات"], "ریسک_ها": ["از دست دادن مشتری"]},
		"آمار": {
			"تعداد_کل_تماس_ها": 150,
			"تماس_های_موفق": 90,
			"کاربران_فعال": [{"نام": "پایان", "تعداد_تماس": 40, "یادداشت_عملکرد": "برترین"}],
			"مشتریان_پرتماس": [{"نام": "دادگستری", "تعداد_تماس": 12, "کیفیت_تعامل": "عالی"}]
		},
		"بهترین_ها": {"بهترین_فروشنده": {"نام": "پایان", "دلیل": "40 تماس"}},
		"دلایل_کاهش_امتیازها": {"پیگیری": ["ختم زودهنگام"]},
		"دلایل_کسب_امتیازها": {"پیگیری": ["Reminder منظم"]}
	}`)

	r := Normalize(payload)

	if r.Scores.Total != 7 || r.Scores.Followup != 8 {
		t.Errorf("scores = %+v", r.Scores)
	}
	if r.DISC.D != 6 {
		t.Errorf("disc_d = %v, want 6", r.DISC.D)
	}
	if r.Metrics.LeadQualityPercent != 70 {
		t.Errorf("lead quality = %v, want 70", r.Metrics.LeadQualityPercent)
	}
	if r.Text.SellerName != "پایان" {
		t.Errorf("seller = %q", r.Text.SellerName)
	}
	if len(r.Text.DISCEvidence) != 1 {
		t.Errorf("disc evidence = %v", r.Text.DISCEvidence)
	}
	if len(r.Lists.Strengths) != 2 || len(r.Lists.Risks) != 1 {
		t.Errorf("lists = %+v", r.Lists)
	}
	if r.Stats.TotalCalls != 150 || r.Stats.SuccessfulCalls != 90 {
		t.Errorf("stats = %+v", r.Stats)
	}
	if len(r.Stats.ActiveUsers) != 1 || r.Stats.ActiveUsers[0].CallCount != 40 {
		t.Errorf("active users = %+v", r.Stats.ActiveUsers)
	}
	if r.Bests.Seller.Name != "پایان" || r.Bests.Seller.Reason != "40 تماس" {
		t.Errorf("best seller = %+v", r.Bests.Seller)
	}
	if len(r.DecreaseReasons.Followup) != 1 || len(r.IncreaseReasons.Followup) != 1 {
		t.Errorf("reasons = %+v / %+v", r.DecreaseReasons, r.IncreaseReasons)
	}
}

func TestNormalize_EmptyPayload(t *testing.T) {
	r := Normalize(map[string]interface{}{})

	if r.Scores.Total != 0 {
		t.Errorf("score total = %v, want 0 default", r.Scores.Total)
	}
	if r.Text.Summary != "" {
		t.Errorf("summary = %q, want empty default", r.Text.Summary)
	}
	if r.Lists.Strengths != nil {
		t.Errorf("strengths = %v, want nil", r.Lists.Strengths)
	}
	if r.Stats.ActiveUsers != nil {
		t.Errorf("active users = %v, want nil", r.Stats.ActiveUsers)
	}
}

func TestNormalize_NilPayload(t *testing.T) {
	r := Normalize(nil)
	if r == nil || r.Raw == nil {
		t.Fatal("Normalize(nil) must still build a report")
	}
}

func TestNormalize_WrongSectionShapes(t *testing.T) {
	payload := decode(t, `{
		"فیلدهای_عددی": ["not", "a", "map"],
		"فیلدهای_متنی": 42,
		"لیست_ها": "x",
		"آمار": {"کاربران_فعال": "not a list"}
	}`)

	r := Normalize(payload)
	if r.Scores.Total != 0 || r.Text.SellerName != "" || r.Stats.ActiveUsers != nil {
		t.Errorf("wrong-shaped sections must coerce to defaults: %+v", r)
	}
}

func TestNormalize_ReasonsAsListOfMaps(t *testing.T) {
	payload := decode(t, `{
		"دلایل_کاهش_امتیازها": [
			{"برقراری_ارتباط": ["تماس‌های بی‌پاسخ"]},
			{"پیگیری": ["ختم زودهنگام"]}
		]
	}`)

	r := Normalize(payload)
	if len(r.DecreaseReasons.Rapport) != 1 {
		t.Errorf("rapport reasons = %v, want flattened list", r.DecreaseReasons.Rapport)
	}
	if len(r.DecreaseReasons.Followup) != 1 {
		t.Errorf("followup reasons = %v, want flattened list", r.DecreaseReasons.Followup)
	}
}

func TestNormalize_BestAsBareString(t *testing.T) {
	payload := decode(t, `{"بهترین_ها": {"بهترین_فروشنده": "پایان"}}`)
	r := Normalize(payload)
	if r.Bests.Seller.Name != "پایان" || r.Bests.Seller.Reason != "" {
		t.Errorf("best seller = %+v", r.Bests.Seller)
	}
}

// ========== Validate ==========

func TestValidate_MissingSections(t *testing.T) {
	issues := Validate(map[string]interface{}{})
	if len(issues) != 5 {
		t.Errorf("got %d issues, want 5 (one per missing section): %v", len(issues), issues)
	}
}

func TestValidate_CleanPayload(t *testing.T) {
	payload := decode(t, `{
		"فیلدهای_عددی": {}, "فیلدهای_متنی": {}, "لیست_ها": {},
		"آمار": {}, "بهترین_ها": {},
		"دلایل_کاهش_امتیازها": {}, "دلایل_کسب_امتیازها": []
	}`)
	if issues := Validate(payload); len(issues) != 0 {
		t.Errorf("unexpected issues: %v", issues)
	}
}

// ========== SummarizeReferral ==========

func TestSummarizeReferral_BucketMath(t *testing.T) {
	payload := decode(t, `{
		"status_analysis": {
			"status_distribution": {
				"اتمام کار": 12,
				"بررسی نشده": 7,
				"درحال پیگیری": 2,
				"رویت شده": 3,
				"قبول ارجاع": 1
			}
		}
	}`)

	s := SummarizeReferral(payload)

	if s.Total != 25 {
		t.Errorf("total = %d, want 25", s.Total)
	}
	if s.Completed != 12 || s.Pending != 7 || s.InProgress != 2 || s.Seen != 3 || s.Accepted != 1 {
		t.Errorf("buckets = %+v", s)
	}
	if s.CompletionRate != 48.0 {
		t.Errorf("completion rate = %v, want 48.0", s.CompletionRate)
	}
	if s.PendingRate != 28.0 {
		t.Errorf("pending rate = %v, want 28.0", s.PendingRate)
	}
}

func TestSummarizeReferral_MissingDistribution(t *testing.T) {
	s := SummarizeReferral(map[string]interface{}{})
	if s.Total != 0 || s.CompletionRate != 0 || s.PendingRate != 0 {
		t.Errorf("empty distribution must produce zeroes, got %+v", s)
	}
}

func TestSummarizeReferral_UnknownBucketsCountTowardTotal(t *testing.T) {
	payload := decode(t, `{
		"status_analysis": {
			"status_distribution": {"اتمام کار": 2, "وضعیت عجیب": 3}
		}
	}`)
	s := SummarizeReferral(payload)
	if s.Total != 5 {
		t.Errorf("total = %d, want 5 (sum of whatever mapping is found)", s.Total)
	}
	if s.Completed != 2 {
		t.Errorf("completed = %d, want 2", s.Completed)
	}
}
