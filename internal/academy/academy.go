// Package academy serves the training-portal content and the
// product-recommendation chat. Portal lists are static; the chat is backed
// by the catalog and the remote model, with turns persisted per session.
package academy

import (
	"context"
	"fmt"

	"github.com/amiralikarma0098/noortoos/internal/catalog"
	"github.com/amiralikarma0098/noortoos/internal/llm"
	"github.com/amiralikarma0098/noortoos/internal/store"
)

const (
	historyWindow = 10
	maxProducts   = 5
)

// ChatStore is the persistence surface the assistant needs. Production
// uses *store.Store; tests substitute a stub.
type ChatStore interface {
	AddChatMessage(ctx context.Context, sessionID int64, role, content string) error
	RecentMessages(ctx context.Context, sessionID int64, n int) ([]store.ChatMessage, error)
}

// Assistant answers chat turns with catalog-grounded recommendations.
type Assistant struct {
	model   llm.Analyzer
	catalog *catalog.Catalog
	store   ChatStore
}

func NewAssistant(model llm.Analyzer, cat *catalog.Catalog, st ChatStore) *Assistant {
	return &Assistant{model: model, catalog: cat, store: st}
}

// Respond persists the user turn, asks the model with the matching catalog
// products in the system prompt, and persists the reply. The history window
// sent to the model covers the last turns including the new message.
func (a *Assistant) Respond(ctx context.Context, sessionID int64, message string, detailed bool) (string, error) {
	if err := a.store.AddChatMessage(ctx, sessionID, "user", message); err != nil {
		return "", fmt.Errorf("persist user turn: %w", err)
	}

	recent, err := a.store.RecentMessages(ctx, sessionID, historyWindow)
	if err != nil {
		return "", fmt.Errorf("load chat history: %w", err)
	}
	history := make([]llm.Message, 0, len(recent))
	for _, m := range recent {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	products := a.catalog.Search(message, maxProducts)
	prompt := systemPrompt(catalog.ProductsText(products, detailed))

	reply, err := a.model.Chat(ctx, prompt, history, detailed)
	if err != nil {
		return "", fmt.Errorf("chat reply: %w", err)
	}

	if err := a.store.AddChatMessage(ctx, sessionID, "assistant", reply); err != nil {
		return "", fmt.Errorf("persist assistant turn: %w", err)
	}
	return reply, nil
}

func systemPrompt(productsBlock string) string {
	return `تو مشاور فروش شرکت نور توس هستی. محصولات برق اضطراری (یو پی اس، باتری، استابلایزر) می‌فروشی.

وظایف تو:
- به سوالات مشتری کوتاه و دقیق به فارسی جواب بده
- از بین محصولات زیر مناسب‌ترین را پیشنهاد بده
- اگر توان مورد نیاز مشتری مشخص نیست، بپرس
- قیمت و گارانتی را همان‌طور که در لیست آمده اعلام کن
- از خودت محصول یا قیمت نساز

` + productsBlock
}
