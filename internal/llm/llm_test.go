package llm

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// ========== fence stripping ==========

func TestStripFence_NoFence(t *testing.T) {
	raw := `{"a": 1}`
	if got := StripFence(raw); got != raw {
		t.Errorf("StripFence = %q, want unchanged", got)
	}
}

func TestStripFence_JSONFence(t *testing.T) {
	raw := "```json\n{\"a\": 1}\n```"
	if got := StripFence(raw); got != `{"a": 1}` {
		t.Errorf("StripFence = %q", got)
	}
}

func TestStripFence_BareFence(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"
	if got := StripFence(raw); got != `{"a": 1}` {
		t.Errorf("StripFence = %q", got)
	}
}

func TestParseReply_FencedAndUnfencedMatch(t *testing.T) {
	body := `{"فیلدهای_عددی": {"امتیاز_کل": 7}, "لیست_ها": {"ریسک_ها": ["x"]}}`

	plain, err := ParseReply(body)
	if err != nil {
		t.Fatalf("unfenced parse failed: %v", err)
	}
	fenced, err := ParseReply("```json\n" + body + "\n```")
	if err != nil {
		t.Fatalf("fenced parse failed: %v", err)
	}

	if !reflect.DeepEqual(plain, fenced) {
		t.Errorf("fenced and unfenced replies parsed differently:\n%v\n%v", plain, fenced)
	}
}

func TestParseReply_MalformedJSON(t *testing.T) {
	_, err := ParseReply("this is not json at all")
	if err == nil {
		t.Fatal("expected error for malformed reply")
	}
	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) {
		t.Fatalf("error type = %T, want *AnalysisError", err)
	}
	if analysisErr.Message == "" {
		t.Error("expected a user-facing message")
	}
}

// ========== prompt templates ==========

func TestBuildCRMPrompt_EmbedsContentAndSchema(t *testing.T) {
	prompt := buildCRMPrompt("متن گزارش آزمایشی")

	if !strings.Contains(prompt, "متن گزارش آزمایشی") {
		t.Error("prompt missing embedded content")
	}
	// Keys the persistence layer depends on must appear verbatim.
	for _, key := range []string{
		"فیلدهای_عددی", "فیلدهای_متنی", "لیست_ها", "آمار",
		"بهترین_ها", "دلایل_کاهش_امتیازها", "دلایل_کسب_امتیازها",
		"امتیاز_کل", "کاربران_فعال", "مشتریان_پرتماس",
	} {
		if !strings.Contains(prompt, key) {
			t.Errorf("prompt missing schema key %q", key)
		}
	}
}

func TestBuildReferralPrompt_CapsContent(t *testing.T) {
	long := strings.Repeat("ب", 20000)
	prompt := buildReferralPrompt(long)

	if strings.Contains(prompt, strings.Repeat("ب", 15001)) {
		t.Error("referral content not capped at 15000 characters")
	}
	if !strings.Contains(prompt, "status_distribution") {
		t.Error("prompt missing status_distribution schema key")
	}
}

func TestBuildReferralPrompt_StatusBuckets(t *testing.T) {
	prompt := buildReferralPrompt("data")
	for _, bucket := range []string{"اتمام کار", "بررسی نشده", "درحال پیگیری", "رویت شده", "قبول ارجاع"} {
		if !strings.Contains(prompt, bucket) {
			t.Errorf("prompt missing status bucket %q", bucket)
		}
	}
}
