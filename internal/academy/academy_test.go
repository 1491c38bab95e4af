package academy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amiralikarma0098/noortoos/internal/catalog"
	"github.com/amiralikarma0098/noortoos/internal/llm"
	"github.com/amiralikarma0098/noortoos/internal/store"
)

type memChatStore struct {
	msgs    []store.ChatMessage
	failAdd bool
}

func (m *memChatStore) AddChatMessage(_ context.Context, sessionID int64, role, content string) error {
	if m.failAdd {
		return errors.New("db down")
	}
	m.msgs = append(m.msgs, store.ChatMessage{
		ID: int64(len(m.msgs) + 1), SessionID: sessionID, Role: role, Content: content,
	})
	return nil
}

func (m *memChatStore) RecentMessages(_ context.Context, sessionID int64, n int) ([]store.ChatMessage, error) {
	start := len(m.msgs) - n
	if start < 0 {
		start = 0
	}
	return m.msgs[start:], nil
}

type stubModel struct {
	reply      string
	gotPrompt  string
	gotHistory []llm.Message
	gotDetail  bool
}

func (s *stubModel) AnalyzeCRM(context.Context, string) (map[string]interface{}, error) {
	return nil, errors.New("not used")
}

func (s *stubModel) AnalyzeReferral(context.Context, string) (map[string]interface{}, error) {
	return nil, errors.New("not used")
}

func (s *stubModel) Chat(_ context.Context, systemPrompt string, history []llm.Message, detailed bool) (string, error) {
	s.gotPrompt = systemPrompt
	s.gotHistory = history
	s.gotDetail = detailed
	return s.reply, nil
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Product{
		{ID: "p1", Name: "یو پی اس پلنک 1000", Brand: "ولتاماکس", PowerVA: 1000, Price: 50000000, Warranty: 24, Stock: 3},
		{ID: "p2", Name: "باتری 12 ولت", Brand: "فاراطل", PowerVA: 0, Price: 9000000, Warranty: 12, Stock: 10},
	})
}

func TestRespond_PersistsBothTurns(t *testing.T) {
	st := &memChatStore{}
	model := &stubModel{reply: "مدل پلنک 1000 مناسب است"}
	a := NewAssistant(model, testCatalog(), st)

	reply, err := a.Respond(context.Background(), 1, "یو پی اس 1000 ولت آمپر میخوام", false)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if reply != "مدل پلنک 1000 مناسب است" {
		t.Errorf("reply = %q", reply)
	}

	if len(st.msgs) != 2 {
		t.Fatalf("persisted turns = %d, want 2", len(st.msgs))
	}
	if st.msgs[0].Role != "user" || st.msgs[1].Role != "assistant" {
		t.Errorf("roles = %q, %q", st.msgs[0].Role, st.msgs[1].Role)
	}
}

func TestRespond_SystemPromptCarriesMatchingProducts(t *testing.T) {
	st := &memChatStore{}
	model := &stubModel{reply: "باشه"}
	a := NewAssistant(model, testCatalog(), st)

	if _, err := a.Respond(context.Background(), 1, "پلنک 1000", false); err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !strings.Contains(model.gotPrompt, "پلنک 1000") {
		t.Errorf("system prompt missing matched product:\n%s", model.gotPrompt)
	}
	if !strings.Contains(model.gotPrompt, "مشاور فروش") {
		t.Errorf("system prompt missing role framing:\n%s", model.gotPrompt)
	}
}

func TestRespond_HistoryEndsWithNewMessage(t *testing.T) {
	st := &memChatStore{}
	model := &stubModel{reply: "جواب"}
	a := NewAssistant(model, testCatalog(), st)
	ctx := context.Background()

	if _, err := a.Respond(ctx, 1, "سوال اول", false); err != nil {
		t.Fatalf("first turn: %v", err)
	}
	if _, err := a.Respond(ctx, 1, "سوال دوم", true); err != nil {
		t.Fatalf("second turn: %v", err)
	}

	if !model.gotDetail {
		t.Error("detailed flag not forwarded")
	}
	if n := len(model.gotHistory); n == 0 || model.gotHistory[n-1].Content != "سوال دوم" {
		t.Errorf("history = %+v, want new message last", model.gotHistory)
	}
}

func TestRespond_StoreFailure(t *testing.T) {
	st := &memChatStore{failAdd: true}
	a := NewAssistant(&stubModel{reply: "x"}, testCatalog(), st)

	if _, err := a.Respond(context.Background(), 1, "سلام", false); err == nil {
		t.Fatal("expected error when persistence fails")
	}
}

func TestPortalContent(t *testing.T) {
	if len(Masters()) == 0 || len(Workshops()) == 0 || len(Assessments()) == 0 {
		t.Fatal("portal lists must not be empty")
	}
	for _, w := range Workshops() {
		found := false
		for _, m := range Masters() {
			if m.ID == w.MasterID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("workshop %d references unknown master %d", w.ID, w.MasterID)
		}
	}
}
