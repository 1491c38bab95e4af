package analysis

import "fmt"

// Section keys of the model's reply. These mirror the prompt template in
// internal/llm; the two files change together.
const (
	secNumeric   = "فیلدهای_عددی"
	secText      = "فیلدهای_متنی"
	secLists     = "لیست_ها"
	secStats     = "آمار"
	secBests     = "بهترین_ها"
	secDecrease  = "دلایل_کاهش_امتیازها"
	secIncrease  = "دلایل_کسب_امتیازها"
	statusSec    = "status_analysis"
	statusDist   = "status_distribution"
	bucketDone   = "اتمام کار"
	bucketNew    = "بررسی نشده"
	bucketActive = "درحال پیگیری"
	bucketSeen   = "رویت شده"
	bucketAccept = "قبول ارجاع"
)

// Validate checks each expected top-level section's shape and returns a
// warning per mismatch. It never fails: a malformed reply is still
// normalizable, the caller just gets to log what was off.
func Validate(payload map[string]interface{}) []string {
	var issues []string
	for _, key := range []string{secNumeric, secText, secLists, secStats, secBests} {
		raw, ok := payload[key]
		if !ok {
			issues = append(issues, fmt.Sprintf("بخش %s در پاسخ وجود ندارد", key))
			continue
		}
		if _, ok := raw.(map[string]interface{}); !ok {
			issues = append(issues, fmt.Sprintf("بخش %s ساختار نادرست دارد (%T)", key, raw))
		}
	}
	for _, key := range []string{secDecrease, secIncrease} {
		switch payload[key].(type) {
		case nil, map[string]interface{}, []interface{}:
			// list shape is legacy but accepted; see flattenReasons
		default:
			issues = append(issues, fmt.Sprintf("بخش %s ساختار نادرست دارد", key))
		}
	}
	return issues
}

// Normalize defaults every section and field of the reply, producing a
// Report that is always constructible, even from a partially-malformed
// payload. Missing numbers become 0, missing sections empty.
func Normalize(payload map[string]interface{}) *Report {
	if payload == nil {
		payload = map[string]interface{}{}
	}

	nums := asMap(payload[secNumeric])
	text := asMap(payload[secText])
	lists := asMap(payload[secLists])
	stats := asMap(payload[secStats])
	bests := asMap(payload[secBests])
	dec := flattenReasons(payload[secDecrease])
	inc := flattenReasons(payload[secIncrease])

	return &Report{
		Scores: Scores{
			Total:     num(nums, "امتیاز_کل"),
			Rapport:   num(nums, "امتیاز_برقراری_ارتباط"),
			Needs:     num(nums, "امتیاز_نیازسنجی"),
			Value:     num(nums, "امتیاز_ارزش_فروشی"),
			Objection: num(nums, "امتیاز_مدیریت_اعتراض"),
			Price:     num(nums, "امتیاز_شفافیت_قیمت"),
			Closing:   num(nums, "امتیاز_بستن_فروش"),
			Followup:  num(nums, "امتیاز_پیگیری"),
			Empathy:   num(nums, "امتیاز_همسویی_احساسی"),
			Listening: num(nums, "امتیاز_شنوندگی"),
		},
		Metrics: Metrics{
			LeadQualityPercent:      num(nums, "کیفیت_لید_درصد"),
			OpenQuestionCount:       num(nums, "تعداد_سوالات_باز"),
			ObjectionCount:          num(nums, "تعداد_اعتراض"),
			ObjectionSuccessPercent: num(nums, "درصد_پاسخ_موفق_به_اعتراض"),
			ClosingAttemptCount:     num(nums, "تعداد_تلاش_برای_بستن"),
			CustomerFeelingScore:    num(nums, "امتیاز_احساس_مشتری"),
			ClosingReadinessPercent: num(nums, "آمادگی_بستن_درصد"),
			SellerTechDensity:       num(nums, "چگالی_اطلاعات_فنی_فروشنده_درصد"),
			CustomerTechDensity:     num(nums, "چگالی_اطلاعات_فنی_مشتری_درصد"),
			PriceSensitivity:        num(nums, "حساسیت_قیمت_مشتری_درصد"),
			RiskSensitivity:         num(nums, "حساسیت_ریسک_مشتری_درصد"),
			TimeSensitivity:         num(nums, "حساسیت_زمان_مشتری_درصد"),
			YesLadderCount:          num(nums, "تعداد_بله_پله_ای"),
		},
		DISC: DISC{
			D: num(nums, "disc_d"),
			I: num(nums, "disc_i"),
			S: num(nums, "disc_s"),
			C: num(nums, "disc_c"),
		},
		Text: TextFields{
			SellerName:          str(text, "نام_فروشنده"),
			SellerCode:          str(text, "کد_فروشنده"),
			CustomerName:        str(text, "نام_مشتری"),
			CallDuration:        str(text, "مدت_تماس"),
			CallDirection:       str(text, "نوع_تماس_جهت"),
			CallStage:           str(text, "نوع_تماس_مرحله"),
			CallWarmth:          str(text, "نوع_تماس_گرمی"),
			CallNature:          str(text, "نوع_تماس_ماهیت"),
			Product:             str(text, "محصول"),
			SellerLevel:         str(text, "سطح_فروشنده"),
			DISCType:            str(text, "disc_تیپ"),
			DISCEvidence:        strList(text["disc_شواهد"]),
			DISCGuide:           str(text, "disc_راهنما"),
			PreferredChannel:    str(text, "ترجیح_کانال"),
			CustomerAwareness:   str(text, "سطح_آگاهی_مشتری"),
			CustomerTalkRatio:   str(text, "نسبت_زمان_صحبت_مشتری_به_فروشنده"),
			SellerTalkRatio:     str(text, "نسبت_زمان_صحبت_فروشنده_به_مشتری"),
			Summary:             str(text, "خلاصه"),
			CustomerPersonality: str(text, "تحلیل_شخصیت_مشتری"),
			SellerPerformance:   str(text, "ارزیابی_عملکرد_فردی_فروشنده"),
			ReadinessAssessment: str(text, "تشخیص_آمادگی"),
			NextAction:          str(text, "اقدام_بعدی"),
		},
		DecreaseReasons: reasonSet(dec),
		IncreaseReasons: reasonSet(inc),
		Lists: ListSections{
			PositiveKeywords: strList(lists["کلمات_مثبت"]),
			NegativeKeywords: strList(lists["کلمات_منفی"]),
			Risks:            strList(lists["ریسک_ها"]),
			Strengths:        strList(lists["نقاط_قوت"]),
			Weaknesses:       strList(lists["نقاط_ضعف"]),
			Objections:       strList(lists["اعتراضات"]),
			Techniques:       strList(lists["تکنیکها"]),
			MissedParameters: strList(lists["پارامترهای_رعایت_نشده"]),
			CommonMistakes:   strList(lists["اشتباهات_رایج"]),
		},
		Stats: Stats{
			TotalCalls:      int(num(stats, "تعداد_کل_تماس_ها")),
			SuccessfulCalls: int(num(stats, "تماس_های_موفق")),
			NoAnswerCalls:   int(num(stats, "تماس_های_بی_پاسخ")),
			ReferredCalls:   int(num(stats, "تماس_های_ارجاعی")),
			ActiveUsers:     activeUsers(stats["کاربران_فعال"]),
			TopCustomers:    topCustomers(stats["مشتریان_پرتماس"]),
		},
		Bests: Bests{
			Seller:   best(bests["بهترین_فروشنده"]),
			Customer: best(bests["بهترین_مشتری"]),
		},
		Raw: payload,
	}
}

func reasonSet(m map[string]interface{}) ReasonSet {
	return ReasonSet{
		Rapport:   strList(m["برقراری_ارتباط"]),
		Needs:     strList(m["نیازسنجی"]),
		Value:     strList(m["ارزش_فروشی"]),
		Objection: strList(m["مدیریت_اعتراض"]),
		Price:     strList(m["شفافیت_قیمت"]),
		Closing:   strList(m["بستن_فروش"]),
		Followup:  strList(m["پیگیری"]),
		Empathy:   strList(m["همسویی_احساسی"]),
		Listening: strList(m["شنوندگی"]),
	}
}

// flattenReasons accepts the expected mapping shape, plus the legacy shape
// where the section arrives as a list of single-key mappings, which is
// merged into one mapping. Anything else becomes empty.
func flattenReasons(raw interface{}) map[string]interface{} {
	switch v := raw.(type) {
	case map[string]interface{}:
		return v
	case []interface{}:
		merged := map[string]interface{}{}
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				for k, val := range m {
					merged[k] = val
				}
			}
		}
		return merged
	default:
		return map[string]interface{}{}
	}
}

func activeUsers(raw interface{}) []ActiveUser {
	var users []ActiveUser
	for _, item := range asList(raw) {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		users = append(users, ActiveUser{
			Name:            str(m, "نام"),
			CallCount:       intOr(m, "تعداد_تماس", 1),
			PerformanceNote: str(m, "یادداشت_عملکرد"),
		})
	}
	return users
}

func topCustomers(raw interface{}) []TopCustomer {
	var customers []TopCustomer
	for _, item := range asList(raw) {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		customers = append(customers, TopCustomer{
			Name:               str(m, "نام"),
			ContactCount:       intOr(m, "تعداد_تماس", 1),
			InteractionQuality: str(m, "کیفیت_تعامل"),
		})
	}
	return customers
}

// best accepts either the {"نام": ..., "دلیل": ...} mapping or a bare
// string naming the seller/customer.
func best(raw interface{}) Best {
	switch v := raw.(type) {
	case map[string]interface{}:
		return Best{Name: str(v, "نام"), Reason: str(v, "دلیل")}
	case string:
		return Best{Name: v}
	default:
		return Best{}
	}
}

// ----- shape coercion helpers -----

func asMap(raw interface{}) map[string]interface{} {
	if m, ok := raw.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func asList(raw interface{}) []interface{} {
	if l, ok := raw.([]interface{}); ok {
		return l
	}
	return nil
}

func num(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func intOr(m map[string]interface{}, key string, fallback int) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

func str(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func strList(raw interface{}) []string {
	var out []string
	for _, item := range asList(raw) {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
