// Package storetest opens throwaway in-memory databases for tests. The
// schema below mirrors the MySQL migration with the AUTO_INCREMENT and
// CHARACTER SET syntax translated for sqlite; store code itself only uses
// ? placeholders so it runs unchanged on both drivers.
package storetest

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/amiralikarma0098/noortoos/internal/store"
)

// ListTables are the nine list-style child tables of an analysis.
var ListTables = []string{
	"strengths", "weaknesses", "objections", "techniques",
	"positive_keywords", "negative_keywords", "risks",
	"missed_parameters", "common_mistakes",
}

var listColumns = map[string]string{
	"strengths":         "strength",
	"weaknesses":        "weakness",
	"objections":        "objection",
	"techniques":        "technique",
	"positive_keywords": "keyword",
	"negative_keywords": "keyword",
	"risks":             "risk",
	"missed_parameters": "parameter",
	"common_mistakes":   "mistake",
}

// Open returns a Store over a fresh in-memory database with the full
// schema applied and foreign keys enforced.
func Open(t *testing.T) *store.Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	for _, stmt := range schema() {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("create test schema: %v\n%s", err, stmt)
		}
	}
	return store.New(db)
}

func schema() []string {
	stmts := []string{
		`CREATE TABLE analyses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_name TEXT NOT NULL,
			file_path TEXT NOT NULL,
			file_size INTEGER NOT NULL DEFAULT 0,
			file_type TEXT NOT NULL DEFAULT '',
			analyzed_at DATETIME NOT NULL,
			score_total REAL NOT NULL DEFAULT 0,
			score_rapport REAL NOT NULL DEFAULT 0,
			score_needs REAL NOT NULL DEFAULT 0,
			score_value REAL NOT NULL DEFAULT 0,
			score_objection REAL NOT NULL DEFAULT 0,
			score_price REAL NOT NULL DEFAULT 0,
			score_closing REAL NOT NULL DEFAULT 0,
			score_followup REAL NOT NULL DEFAULT 0,
			score_empathy REAL NOT NULL DEFAULT 0,
			score_listening REAL NOT NULL DEFAULT 0,
			lead_quality_percent REAL NOT NULL DEFAULT 0,
			open_questions_count REAL NOT NULL DEFAULT 0,
			objections_count REAL NOT NULL DEFAULT 0,
			objection_success_percent REAL NOT NULL DEFAULT 0,
			closing_attempts_count REAL NOT NULL DEFAULT 0,
			customer_feeling_score REAL NOT NULL DEFAULT 0,
			closing_readiness_percent REAL NOT NULL DEFAULT 0,
			seller_technical_density_percent REAL NOT NULL DEFAULT 0,
			customer_technical_density_percent REAL NOT NULL DEFAULT 0,
			customer_price_sensitivity_percent REAL NOT NULL DEFAULT 0,
			customer_risk_sensitivity_percent REAL NOT NULL DEFAULT 0,
			customer_time_sensitivity_percent REAL NOT NULL DEFAULT 0,
			yes_ladder_count REAL NOT NULL DEFAULT 0,
			disc_d REAL NOT NULL DEFAULT 0,
			disc_i REAL NOT NULL DEFAULT 0,
			disc_s REAL NOT NULL DEFAULT 0,
			disc_c REAL NOT NULL DEFAULT 0,
			seller_name TEXT, seller_code TEXT, customer_name TEXT,
			call_duration TEXT, call_direction TEXT, call_stage TEXT,
			call_warmth TEXT, call_nature TEXT, product TEXT,
			seller_level TEXT, disc_type TEXT, disc_evidence TEXT,
			disc_interaction_guide TEXT, preferred_channel TEXT,
			customer_awareness_level TEXT, customer_talk_ratio TEXT,
			seller_talk_ratio TEXT, summary TEXT,
			customer_personality_analysis TEXT,
			seller_individual_performance TEXT,
			call_type_readiness TEXT, next_action TEXT,
			rapport_decrease_reasons TEXT, needs_decrease_reasons TEXT,
			value_decrease_reasons TEXT, objection_decrease_reasons TEXT,
			price_decrease_reasons TEXT, closing_decrease_reasons TEXT,
			followup_decrease_reasons TEXT, empathy_decrease_reasons TEXT,
			listening_decrease_reasons TEXT,
			rapport_increase_reasons TEXT, needs_increase_reasons TEXT,
			value_increase_reasons TEXT, objection_increase_reasons TEXT,
			price_increase_reasons TEXT, closing_increase_reasons TEXT,
			followup_increase_reasons TEXT, empathy_increase_reasons TEXT,
			listening_increase_reasons TEXT,
			total_calls INTEGER NOT NULL DEFAULT 0,
			successful_calls INTEGER NOT NULL DEFAULT 0,
			no_answer_calls INTEGER NOT NULL DEFAULT 0,
			referred_calls INTEGER NOT NULL DEFAULT 0,
			best_seller TEXT, best_seller_reason TEXT,
			best_customer TEXT, best_customer_reason TEXT,
			full_analysis TEXT
		)`,
		`CREATE TABLE active_users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id INTEGER NOT NULL,
			user_name TEXT,
			call_count INTEGER NOT NULL DEFAULT 1,
			performance_note TEXT,
			FOREIGN KEY (analysis_id) REFERENCES analyses(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE top_customers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id INTEGER NOT NULL,
			customer_name TEXT,
			contact_count INTEGER NOT NULL DEFAULT 1,
			interaction_quality TEXT,
			FOREIGN KEY (analysis_id) REFERENCES analyses(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE referral_analyses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_name TEXT NOT NULL,
			file_path TEXT NOT NULL,
			file_size INTEGER NOT NULL DEFAULT 0,
			analyzed_at DATETIME NOT NULL,
			total_referrals INTEGER NOT NULL DEFAULT 0,
			completed_count INTEGER NOT NULL DEFAULT 0,
			pending_count INTEGER NOT NULL DEFAULT 0,
			in_progress_count INTEGER NOT NULL DEFAULT 0,
			seen_count INTEGER NOT NULL DEFAULT 0,
			accepted_count INTEGER NOT NULL DEFAULT 0,
			completion_rate REAL NOT NULL DEFAULT 0,
			pending_rate REAL NOT NULL DEFAULT 0,
			full_analysis TEXT
		)`,
		`CREATE TABLE chat_sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL DEFAULT 0,
			title TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE chat_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL,
			role TEXT NOT NULL,
			content TEXT,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (session_id) REFERENCES chat_sessions(id) ON DELETE CASCADE
		)`,
	}
	for _, table := range ListTables {
		stmts = append(stmts, `CREATE TABLE `+table+` (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id INTEGER NOT NULL,
			`+listColumns[table]+` TEXT,
			FOREIGN KEY (analysis_id) REFERENCES analyses(id) ON DELETE CASCADE
		)`)
	}
	return stmts
}
