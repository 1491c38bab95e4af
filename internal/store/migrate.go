package store

import "fmt"

// listSpec names a child table and its single value column. Shared by
// migration and the insert path.
type listSpec struct {
	table  string
	column string
}

var listSpecs = []listSpec{
	{"strengths", "strength"},
	{"weaknesses", "weakness"},
	{"objections", "objection"},
	{"techniques", "technique"},
	{"positive_keywords", "keyword"},
	{"negative_keywords", "keyword"},
	{"risks", "risk"},
	{"missed_parameters", "parameter"},
	{"common_mistakes", "mistake"},
}

// Migrate creates the MySQL schema if it does not exist yet.
func (s *Store) Migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id INT AUTO_INCREMENT PRIMARY KEY,
			file_name VARCHAR(255) NOT NULL,
			file_path VARCHAR(512) NOT NULL,
			file_size BIGINT NOT NULL DEFAULT 0,
			file_type VARCHAR(16) NOT NULL DEFAULT '',
			analyzed_at DATETIME NOT NULL,
			score_total DOUBLE NOT NULL DEFAULT 0,
			score_rapport DOUBLE NOT NULL DEFAULT 0,
			score_needs DOUBLE NOT NULL DEFAULT 0,
			score_value DOUBLE NOT NULL DEFAULT 0,
			score_objection DOUBLE NOT NULL DEFAULT 0,
			score_price DOUBLE NOT NULL DEFAULT 0,
			score_closing DOUBLE NOT NULL DEFAULT 0,
			score_followup DOUBLE NOT NULL DEFAULT 0,
			score_empathy DOUBLE NOT NULL DEFAULT 0,
			score_listening DOUBLE NOT NULL DEFAULT 0,
			lead_quality_percent DOUBLE NOT NULL DEFAULT 0,
			open_questions_count DOUBLE NOT NULL DEFAULT 0,
			objections_count DOUBLE NOT NULL DEFAULT 0,
			objection_success_percent DOUBLE NOT NULL DEFAULT 0,
			closing_attempts_count DOUBLE NOT NULL DEFAULT 0,
			customer_feeling_score DOUBLE NOT NULL DEFAULT 0,
			closing_readiness_percent DOUBLE NOT NULL DEFAULT 0,
			seller_technical_density_percent DOUBLE NOT NULL DEFAULT 0,
			customer_technical_density_percent DOUBLE NOT NULL DEFAULT 0,
			customer_price_sensitivity_percent DOUBLE NOT NULL DEFAULT 0,
			customer_risk_sensitivity_percent DOUBLE NOT NULL DEFAULT 0,
			customer_time_sensitivity_percent DOUBLE NOT NULL DEFAULT 0,
			yes_ladder_count DOUBLE NOT NULL DEFAULT 0,
			disc_d DOUBLE NOT NULL DEFAULT 0,
			disc_i DOUBLE NOT NULL DEFAULT 0,
			disc_s DOUBLE NOT NULL DEFAULT 0,
			disc_c DOUBLE NOT NULL DEFAULT 0,
			seller_name TEXT,
			seller_code TEXT,
			customer_name TEXT,
			call_duration TEXT,
			call_direction TEXT,
			call_stage TEXT,
			call_warmth TEXT,
			call_nature TEXT,
			product TEXT,
			seller_level TEXT,
			disc_type TEXT,
			disc_evidence TEXT,
			disc_interaction_guide TEXT,
			preferred_channel TEXT,
			customer_awareness_level TEXT,
			customer_talk_ratio TEXT,
			seller_talk_ratio TEXT,
			summary TEXT,
			customer_personality_analysis TEXT,
			seller_individual_performance TEXT,
			call_type_readiness TEXT,
			next_action TEXT,
			rapport_decrease_reasons TEXT,
			needs_decrease_reasons TEXT,
			value_decrease_reasons TEXT,
			objection_decrease_reasons TEXT,
			price_decrease_reasons TEXT,
			closing_decrease_reasons TEXT,
			followup_decrease_reasons TEXT,
			empathy_decrease_reasons TEXT,
			listening_decrease_reasons TEXT,
			rapport_increase_reasons TEXT,
			needs_increase_reasons TEXT,
			value_increase_reasons TEXT,
			objection_increase_reasons TEXT,
			price_increase_reasons TEXT,
			closing_increase_reasons TEXT,
			followup_increase_reasons TEXT,
			empathy_increase_reasons TEXT,
			listening_increase_reasons TEXT,
			total_calls INT NOT NULL DEFAULT 0,
			successful_calls INT NOT NULL DEFAULT 0,
			no_answer_calls INT NOT NULL DEFAULT 0,
			referred_calls INT NOT NULL DEFAULT 0,
			best_seller TEXT,
			best_seller_reason TEXT,
			best_customer TEXT,
			best_customer_reason TEXT,
			full_analysis LONGTEXT
		) CHARACTER SET utf8mb4`,
		`CREATE TABLE IF NOT EXISTS active_users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			analysis_id INT NOT NULL,
			user_name TEXT,
			call_count INT NOT NULL DEFAULT 1,
			performance_note TEXT,
			FOREIGN KEY (analysis_id) REFERENCES analyses(id) ON DELETE CASCADE
		) CHARACTER SET utf8mb4`,
		`CREATE TABLE IF NOT EXISTS top_customers (
			id INT AUTO_INCREMENT PRIMARY KEY,
			analysis_id INT NOT NULL,
			customer_name TEXT,
			contact_count INT NOT NULL DEFAULT 1,
			interaction_quality TEXT,
			FOREIGN KEY (analysis_id) REFERENCES analyses(id) ON DELETE CASCADE
		) CHARACTER SET utf8mb4`,
		`CREATE TABLE IF NOT EXISTS referral_analyses (
			id INT AUTO_INCREMENT PRIMARY KEY,
			file_name VARCHAR(255) NOT NULL,
			file_path VARCHAR(512) NOT NULL,
			file_size BIGINT NOT NULL DEFAULT 0,
			analyzed_at DATETIME NOT NULL,
			total_referrals INT NOT NULL DEFAULT 0,
			completed_count INT NOT NULL DEFAULT 0,
			pending_count INT NOT NULL DEFAULT 0,
			in_progress_count INT NOT NULL DEFAULT 0,
			seen_count INT NOT NULL DEFAULT 0,
			accepted_count INT NOT NULL DEFAULT 0,
			completion_rate DOUBLE NOT NULL DEFAULT 0,
			pending_rate DOUBLE NOT NULL DEFAULT 0,
			full_analysis LONGTEXT
		) CHARACTER SET utf8mb4`,
		`CREATE TABLE IF NOT EXISTS chat_sessions (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL DEFAULT 0,
			title VARCHAR(255),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		) CHARACTER SET utf8mb4`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id INT AUTO_INCREMENT PRIMARY KEY,
			session_id INT NOT NULL,
			role VARCHAR(16) NOT NULL,
			content TEXT,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (session_id) REFERENCES chat_sessions(id) ON DELETE CASCADE
		) CHARACTER SET utf8mb4`,
	}

	for _, spec := range listSpecs {
		stmts = append(stmts, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INT AUTO_INCREMENT PRIMARY KEY,
			analysis_id INT NOT NULL,
			%s TEXT,
			FOREIGN KEY (analysis_id) REFERENCES analyses(id) ON DELETE CASCADE
		) CHARACTER SET utf8mb4`, spec.table, spec.column))
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
