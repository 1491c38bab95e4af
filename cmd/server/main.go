package main

import (
	"log"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/amiralikarma0098/noortoos/internal/academy"
	"github.com/amiralikarma0098/noortoos/internal/catalog"
	"github.com/amiralikarma0098/noortoos/internal/config"
	"github.com/amiralikarma0098/noortoos/internal/files"
	"github.com/amiralikarma0098/noortoos/internal/llm"
	"github.com/amiralikarma0098/noortoos/internal/searchidx"
	"github.com/amiralikarma0098/noortoos/internal/store"
)

const (
	catalogPath     = "data/products.json"
	searchIndexPath = "data/search.bleve"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	for _, warning := range cfg.Validate() {
		log.Printf("هشدار پیکربندی: %s", warning)
	}

	st, err := store.Open(cfg.DSN())
	if err != nil {
		log.Fatalf("اتصال به دیتابیس برقرار نشد: %v", err)
	}
	defer st.Close()
	if err := st.Migrate(); err != nil {
		log.Fatalf("ساخت جداول شکست خورد: %v", err)
	}

	uploads, err := files.NewHandler(cfg.UploadDir)
	if err != nil {
		log.Fatalf("پوشه آپلود آماده نشد: %v", err)
	}

	cat := catalog.Load(catalogPath)
	log.Printf("کاتالوگ محصولات: %d مورد", cat.Len())

	search, err := searchidx.Open(searchIndexPath)
	if err != nil {
		log.Fatalf("ایندکس جستجو باز نشد: %v", err)
	}
	defer search.Close()

	model := llm.NewClient(cfg.OpenAIKey, cfg.OpenAIModel)

	srv := &Server{
		cfg:       cfg,
		store:     st,
		files:     uploads,
		catalog:   cat,
		model:     model,
		search:    search,
		assistant: academy.NewAssistant(model, cat, st),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()

	// Analysis endpoints
	mux.HandleFunc("POST /api/analyze", srv.handleAnalyze)
	mux.HandleFunc("GET /api/history", srv.handleHistory)
	mux.HandleFunc("GET /api/history/search", srv.handleHistorySearch)
	mux.HandleFunc("GET /api/analysis/latest", srv.handleLatestAnalysis)
	mux.HandleFunc("GET /api/analysis/{id}", srv.handleGetAnalysis)
	mux.HandleFunc("DELETE /api/analysis/{id}", srv.handleDeleteAnalysis)
	mux.HandleFunc("GET /api/file/{id}", srv.handleFileDownload)

	// Referral endpoints
	mux.HandleFunc("POST /api/analyze-referral", srv.handleAnalyzeReferral)
	mux.HandleFunc("GET /api/referral-history", srv.handleReferralHistory)
	mux.HandleFunc("GET /api/referral/latest", srv.handleLatestReferral)
	mux.HandleFunc("GET /api/referral-analysis/{id}", srv.handleGetReferral)
	mux.HandleFunc("DELETE /api/referral-analysis/{id}", srv.handleDeleteReferral)
	mux.HandleFunc("GET /api/referral-report/{id}", srv.handleReferralReport)

	// Academy endpoints
	mux.HandleFunc("GET /academy/api/master/list", srv.handleMasters)
	mux.HandleFunc("GET /academy/api/workshop/list", srv.handleWorkshops)
	mux.HandleFunc("GET /academy/api/assessment/list", srv.handleAssessments)
	mux.HandleFunc("POST /academy/api/chat/new", srv.handleChatNew)
	mux.HandleFunc("POST /academy/api/chat/send", srv.handleChatSend)
	mux.HandleFunc("GET /academy/api/chat/history", srv.handleChatHistory)
	mux.HandleFunc("GET /academy/api/chat/ws", srv.handleChatWS)
	mux.HandleFunc("GET /academy/api/chat/{id}", srv.handleChatGet)

	mux.HandleFunc("GET /api/health", srv.handleHealth)

	log.Printf("سرور تحلیل CRM نور توس روی پورت %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, corsMiddleware(recoverMiddleware(mux))); err != nil {
		log.Fatal(err)
	}
}
