package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/amiralikarma0098/noortoos/internal/analysis"
	"github.com/amiralikarma0098/noortoos/internal/files"
	"github.com/amiralikarma0098/noortoos/internal/store/storetest"
)

func sampleInfo() *files.Info {
	return &files.Info{
		Name: "گزارش.txt",
		Path: "uploaded_files/20250101_120000_گزارش.txt",
		Size: 2048,
		Type: "txt",
	}
}

func sampleReport() *analysis.Report {
	return &analysis.Report{
		Scores: analysis.Scores{Total: 7.5, Rapport: 8, Followup: 6},
		DISC:   analysis.DISC{D: 6, I: 4, S: 7, C: 3},
		Text: analysis.TextFields{
			SellerName:   "پایان",
			CustomerName: "دادگستری مشهد",
			Product:      "یو پی اس 10KVA",
			Summary:      "گزارش شامل 150 تماس است",
			DISCEvidence: []string{"تعامل زیاد"},
		},
		Lists: analysis.ListSections{
			Strengths:  []string{"پیگیری منظم", "تنوع خدمات"},
			Weaknesses: []string{"تماس بی‌پاسخ"},
			Risks:      []string{"از دست دادن مشتری"},
		},
		Stats: analysis.Stats{
			TotalCalls:      150,
			SuccessfulCalls: 90,
			ActiveUsers: []analysis.ActiveUser{
				{Name: "پایان", CallCount: 40, PerformanceNote: "برترین"},
			},
			TopCustomers: []analysis.TopCustomer{
				{Name: "دادگستری", ContactCount: 12, InteractionQuality: "عالی"},
			},
		},
		Bests: analysis.Bests{
			Seller: analysis.Best{Name: "پایان", Reason: "40 تماس"},
		},
		Raw: map[string]interface{}{"خلاصه": "ok"},
	}
}

func TestSaveAnalysis_RoundTrip(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	id, err := s.SaveAnalysis(ctx, sampleInfo(), sampleReport())
	if err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}
	if id == 0 {
		t.Fatal("id = 0, want assigned id")
	}

	rec, err := s.GetAnalysis(ctx, id)
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if rec == nil {
		t.Fatal("record not found after save")
	}
	if rec.FileName != "گزارش.txt" || rec.ScoreTotal != 7.5 {
		t.Errorf("record = %+v", rec)
	}
	if rec.SellerName != "پایان" || rec.Product != "یو پی اس 10KVA" {
		t.Errorf("text fields = %q / %q", rec.SellerName, rec.Product)
	}
	if rec.TotalCalls != 150 || rec.SuccessfulCalls != 90 {
		t.Errorf("call counts = %d / %d", rec.TotalCalls, rec.SuccessfulCalls)
	}
	if !strings.Contains(rec.FullAnalysis, "خلاصه") {
		t.Errorf("full_analysis = %q, want raw payload JSON", rec.FullAnalysis)
	}
}

func TestSaveAnalysis_ChildRows(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	id, err := s.SaveAnalysis(ctx, sampleInfo(), sampleReport())
	if err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	wants := map[string]int{
		"strengths":     2,
		"weaknesses":    1,
		"risks":         1,
		"objections":    0,
		"active_users":  1,
		"top_customers": 1,
	}
	for table, want := range wants {
		n, err := s.CountChildren(ctx, table, id)
		if err != nil {
			t.Fatalf("CountChildren(%s): %v", table, err)
		}
		if n != want {
			t.Errorf("%s rows = %d, want %d", table, n, want)
		}
	}
}

func TestSaveAnalysis_EmptyListsNoChildRows(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	r := &analysis.Report{Raw: map[string]interface{}{}}
	id, err := s.SaveAnalysis(ctx, sampleInfo(), r)
	if err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	for _, table := range storetest.ListTables {
		n, err := s.CountChildren(ctx, table, id)
		if err != nil {
			t.Fatalf("CountChildren(%s): %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s rows = %d, want 0", table, n)
		}
	}
}

func TestSaveAnalysis_NoDeduplication(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	id1, err := s.SaveAnalysis(ctx, sampleInfo(), sampleReport())
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	id2, err := s.SaveAnalysis(ctx, sampleInfo(), sampleReport())
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if id1 == id2 {
		t.Errorf("repeated save must create a new record, both ids = %d", id1)
	}

	list, err := s.ListAnalyses(ctx)
	if err != nil {
		t.Fatalf("ListAnalyses: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("history rows = %d, want 2", len(list))
	}
}

func TestDeleteAnalysis_CascadesAndReturnsPath(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	id, err := s.SaveAnalysis(ctx, sampleInfo(), sampleReport())
	if err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	path, err := s.DeleteAnalysis(ctx, id)
	if err != nil {
		t.Fatalf("DeleteAnalysis: %v", err)
	}
	if path != sampleInfo().Path {
		t.Errorf("path = %q, want stored file path", path)
	}

	if rec, _ := s.GetAnalysis(ctx, id); rec != nil {
		t.Error("record still present after delete")
	}
	n, err := s.CountChildren(ctx, "strengths", id)
	if err != nil {
		t.Fatalf("CountChildren: %v", err)
	}
	if n != 0 {
		t.Errorf("child rows survived delete: %d", n)
	}
}

func TestDeleteAnalysis_Missing(t *testing.T) {
	s := storetest.Open(t)
	path, err := s.DeleteAnalysis(context.Background(), 999)
	if err != nil {
		t.Fatalf("DeleteAnalysis: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty for missing record", path)
	}
}

func TestLatestAnalysis(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	if rec, err := s.LatestAnalysis(ctx); err != nil || rec != nil {
		t.Fatalf("empty table: rec=%v err=%v, want nil/nil", rec, err)
	}

	if _, err := s.SaveAnalysis(ctx, sampleInfo(), sampleReport()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	second := sampleInfo()
	second.Name = "دوم.txt"
	id2, err := s.SaveAnalysis(ctx, second, sampleReport())
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	rec, err := s.LatestAnalysis(ctx)
	if err != nil {
		t.Fatalf("LatestAnalysis: %v", err)
	}
	if rec == nil || rec.ID != id2 {
		t.Errorf("latest = %+v, want id %d", rec, id2)
	}
}

func TestReferral_RoundTrip(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	sum := &analysis.ReferralSummary{
		Total: 25, Completed: 12, Pending: 7, InProgress: 2,
		Seen: 3, Accepted: 1,
		CompletionRate: 48, PendingRate: 28,
		Raw: map[string]interface{}{"status_analysis": "ok"},
	}
	info := &files.Info{Name: "ارجاعات.xlsx", Path: "uploaded_files/ارجاعات.xlsx", Size: 4096}

	id, err := s.SaveReferral(ctx, info, sum)
	if err != nil {
		t.Fatalf("SaveReferral: %v", err)
	}

	rec, err := s.GetReferral(ctx, id)
	if err != nil {
		t.Fatalf("GetReferral: %v", err)
	}
	if rec == nil {
		t.Fatal("referral record not found")
	}
	if rec.Total != 25 || rec.Completed != 12 || rec.CompletionRate != 48 {
		t.Errorf("record = %+v", rec)
	}

	latest, err := s.LatestReferral(ctx)
	if err != nil || latest == nil || latest.ID != id {
		t.Errorf("latest = %+v err=%v, want id %d", latest, err, id)
	}

	path, err := s.DeleteReferral(ctx, id)
	if err != nil {
		t.Fatalf("DeleteReferral: %v", err)
	}
	if path != info.Path {
		t.Errorf("path = %q, want %q", path, info.Path)
	}
	if rec, _ := s.GetReferral(ctx, id); rec != nil {
		t.Error("referral still present after delete")
	}
}

func TestChat_SessionAndMessages(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()

	sid, err := s.CreateChatSession(ctx, 1, "گفتگوی جدید")
	if err != nil {
		t.Fatalf("CreateChatSession: %v", err)
	}

	turns := []struct{ role, content string }{
		{"user", "یو پی اس برای سرور میخوام"},
		{"assistant", "مدل پلنک 1000 پیشنهاد می‌شود"},
		{"user", "قیمتش چنده؟"},
	}
	for _, turn := range turns {
		if err := s.AddChatMessage(ctx, sid, turn.role, turn.content); err != nil {
			t.Fatalf("AddChatMessage: %v", err)
		}
	}

	msgs, err := s.GetChatMessages(ctx, sid)
	if err != nil {
		t.Fatalf("GetChatMessages: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[1].Role != "assistant" {
		t.Errorf("order wrong: %+v", msgs)
	}

	recent, err := s.RecentMessages(ctx, sid, 2)
	if err != nil {
		t.Fatalf("RecentMessages: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent = %d, want 2", len(recent))
	}
	if recent[0].Content != "مدل پلنک 1000 پیشنهاد می‌شود" {
		t.Errorf("recent window must be chronological, got %q first", recent[0].Content)
	}

	sessions, err := s.ListChatSessions(ctx, 1)
	if err != nil {
		t.Fatalf("ListChatSessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Title != "گفتگوی جدید" {
		t.Errorf("sessions = %+v", sessions)
	}

	got, err := s.GetChatSession(ctx, sid)
	if err != nil || got == nil {
		t.Fatalf("GetChatSession: rec=%v err=%v", got, err)
	}
}
