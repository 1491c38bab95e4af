package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amiralikarma0098/noortoos/internal/analysis"
	"github.com/amiralikarma0098/noortoos/internal/files"
)

// AnalysisSummary is one history-list row.
type AnalysisSummary struct {
	ID              int64     `json:"id"`
	FileName        string    `json:"file_name"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
	ScoreTotal      float64   `json:"score_total"`
	SellerName      string    `json:"seller_name"`
	CustomerName    string    `json:"customer_name"`
	Product         string    `json:"product"`
	TotalCalls      int       `json:"total_calls"`
	SuccessfulCalls int       `json:"successful_calls"`
}

// AnalysisRecord is the detail view of one persisted analysis.
type AnalysisRecord struct {
	ID              int64     `json:"id"`
	FileName        string    `json:"file_name"`
	FilePath        string    `json:"file_path"`
	FileSize        int64     `json:"file_size"`
	FileType        string    `json:"file_type"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
	ScoreTotal      float64   `json:"score_total"`
	SellerName      string    `json:"seller_name"`
	CustomerName    string    `json:"customer_name"`
	Product         string    `json:"product"`
	Summary         string    `json:"summary"`
	TotalCalls      int       `json:"total_calls"`
	SuccessfulCalls int       `json:"successful_calls"`
	NoAnswerCalls   int       `json:"no_answer_calls"`
	ReferredCalls   int       `json:"referred_calls"`
	BestSeller      string    `json:"best_seller"`
	BestCustomer    string    `json:"best_customer"`
	FullAnalysis    string    `json:"-"`
}

// SaveAnalysis writes the wide parent row and every child list row inside
// one transaction. Any child failure rolls the whole record back.
func (s *Store) SaveAnalysis(ctx context.Context, info *files.Info, r *analysis.Report) (int64, error) {
	rawJSON, err := json.Marshal(r.Raw)
	if err != nil {
		return 0, fmt.Errorf("encode analysis blob: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertAnalysisSQL,
		info.Name, info.Path, info.Size, info.Type, time.Now(),
		r.Scores.Total, r.Scores.Rapport, r.Scores.Needs, r.Scores.Value,
		r.Scores.Objection, r.Scores.Price, r.Scores.Closing, r.Scores.Followup,
		r.Scores.Empathy, r.Scores.Listening,
		r.Metrics.LeadQualityPercent, r.Metrics.OpenQuestionCount,
		r.Metrics.ObjectionCount, r.Metrics.ObjectionSuccessPercent,
		r.Metrics.ClosingAttemptCount, r.Metrics.CustomerFeelingScore,
		r.Metrics.ClosingReadinessPercent, r.Metrics.SellerTechDensity,
		r.Metrics.CustomerTechDensity, r.Metrics.PriceSensitivity,
		r.Metrics.RiskSensitivity, r.Metrics.TimeSensitivity,
		r.Metrics.YesLadderCount,
		r.DISC.D, r.DISC.I, r.DISC.S, r.DISC.C,
		r.Text.SellerName, r.Text.SellerCode, r.Text.CustomerName,
		r.Text.CallDuration, r.Text.CallDirection, r.Text.CallStage,
		r.Text.CallWarmth, r.Text.CallNature, r.Text.Product,
		r.Text.SellerLevel, r.Text.DISCType, jsonList(r.Text.DISCEvidence),
		r.Text.DISCGuide, r.Text.PreferredChannel, r.Text.CustomerAwareness,
		r.Text.CustomerTalkRatio, r.Text.SellerTalkRatio,
		r.Text.Summary, r.Text.CustomerPersonality, r.Text.SellerPerformance,
		r.Text.ReadinessAssessment, r.Text.NextAction,
		jsonList(r.DecreaseReasons.Rapport), jsonList(r.DecreaseReasons.Needs),
		jsonList(r.DecreaseReasons.Value), jsonList(r.DecreaseReasons.Objection),
		jsonList(r.DecreaseReasons.Price), jsonList(r.DecreaseReasons.Closing),
		jsonList(r.DecreaseReasons.Followup), jsonList(r.DecreaseReasons.Empathy),
		jsonList(r.DecreaseReasons.Listening),
		jsonList(r.IncreaseReasons.Rapport), jsonList(r.IncreaseReasons.Needs),
		jsonList(r.IncreaseReasons.Value), jsonList(r.IncreaseReasons.Objection),
		jsonList(r.IncreaseReasons.Price), jsonList(r.IncreaseReasons.Closing),
		jsonList(r.IncreaseReasons.Followup), jsonList(r.IncreaseReasons.Empathy),
		jsonList(r.IncreaseReasons.Listening),
		r.Stats.TotalCalls, r.Stats.SuccessfulCalls, r.Stats.NoAnswerCalls,
		r.Stats.ReferredCalls,
		r.Bests.Seller.Name, r.Bests.Seller.Reason,
		r.Bests.Customer.Name, r.Bests.Customer.Reason,
		string(rawJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("analysis id: %w", err)
	}

	for _, u := range r.Stats.ActiveUsers {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO active_users (analysis_id, user_name, call_count, performance_note) VALUES (?, ?, ?, ?)",
			id, u.Name, u.CallCount, u.PerformanceNote); err != nil {
			return 0, fmt.Errorf("insert active user: %w", err)
		}
	}
	for _, c := range r.Stats.TopCustomers {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO top_customers (analysis_id, customer_name, contact_count, interaction_quality) VALUES (?, ?, ?, ?)",
			id, c.Name, c.ContactCount, c.InteractionQuality); err != nil {
			return 0, fmt.Errorf("insert top customer: %w", err)
		}
	}

	for _, spec := range listSpecs {
		for _, item := range listItems(r.Lists, spec.table) {
			if item == "" {
				continue
			}
			query := fmt.Sprintf("INSERT INTO %s (analysis_id, %s) VALUES (?, ?)", spec.table, spec.column)
			if _, err := tx.ExecContext(ctx, query, id, item); err != nil {
				return 0, fmt.Errorf("insert into %s: %w", spec.table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit analysis: %w", err)
	}
	return id, nil
}

func listItems(l analysis.ListSections, table string) []string {
	switch table {
	case "strengths":
		return l.Strengths
	case "weaknesses":
		return l.Weaknesses
	case "objections":
		return l.Objections
	case "techniques":
		return l.Techniques
	case "positive_keywords":
		return l.PositiveKeywords
	case "negative_keywords":
		return l.NegativeKeywords
	case "risks":
		return l.Risks
	case "missed_parameters":
		return l.MissedParameters
	case "common_mistakes":
		return l.CommonMistakes
	default:
		return nil
	}
}

// ListAnalyses returns history rows, newest first.
func (s *Store) ListAnalyses(ctx context.Context) ([]AnalysisSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_name, analyzed_at, score_total, seller_name,
		       customer_name, product, total_calls, successful_calls
		FROM analyses ORDER BY analyzed_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	summaries := []AnalysisSummary{}
	for rows.Next() {
		var a AnalysisSummary
		if err := rows.Scan(&a.ID, &a.FileName, &a.AnalyzedAt, &a.ScoreTotal,
			&a.SellerName, &a.CustomerName, &a.Product,
			&a.TotalCalls, &a.SuccessfulCalls); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		summaries = append(summaries, a)
	}
	return summaries, rows.Err()
}

// GetAnalysis returns one record or (nil, nil) when absent.
func (s *Store) GetAnalysis(ctx context.Context, id int64) (*AnalysisRecord, error) {
	var a AnalysisRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, file_name, file_path, file_size, file_type, analyzed_at,
		       score_total, seller_name, customer_name, product, summary,
		       total_calls, successful_calls, no_answer_calls, referred_calls,
		       best_seller, best_customer, full_analysis
		FROM analyses WHERE id = ?`, id).Scan(
		&a.ID, &a.FileName, &a.FilePath, &a.FileSize, &a.FileType, &a.AnalyzedAt,
		&a.ScoreTotal, &a.SellerName, &a.CustomerName, &a.Product, &a.Summary,
		&a.TotalCalls, &a.SuccessfulCalls, &a.NoAnswerCalls, &a.ReferredCalls,
		&a.BestSeller, &a.BestCustomer, &a.FullAnalysis)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis %d: %w", id, err)
	}
	return &a, nil
}

// LatestAnalysis returns the most recent record or (nil, nil) when none exist.
func (s *Store) LatestAnalysis(ctx context.Context) (*AnalysisRecord, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM analyses ORDER BY analyzed_at DESC, id DESC LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest analysis: %w", err)
	}
	return s.GetAnalysis(ctx, id)
}

// DeleteAnalysis removes the parent row (children cascade) and returns the
// stored file path so the caller can clean up the upload.
func (s *Store) DeleteAnalysis(ctx context.Context, id int64) (string, error) {
	var path string
	err := s.db.QueryRowContext(ctx,
		"SELECT file_path FROM analyses WHERE id = ?", id).Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup analysis %d: %w", id, err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = ?", id); err != nil {
		return "", fmt.Errorf("delete analysis %d: %w", id, err)
	}
	return path, nil
}

// CountChildren reports how many rows a child table holds for one parent.
func (s *Store) CountChildren(ctx context.Context, table string, analysisID int64) (int, error) {
	allowed := table == "active_users" || table == "top_customers"
	for _, spec := range listSpecs {
		if spec.table == table {
			allowed = true
		}
	}
	if !allowed {
		return 0, fmt.Errorf("unknown child table %q", table)
	}

	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE analysis_id = ?", table)
	if err := s.db.QueryRowContext(ctx, query, analysisID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func jsonList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, _ := json.Marshal(items)
	return string(data)
}

const insertAnalysisSQL = `
INSERT INTO analyses (
	file_name, file_path, file_size, file_type, analyzed_at,
	score_total, score_rapport, score_needs, score_value,
	score_objection, score_price, score_closing, score_followup,
	score_empathy, score_listening,
	lead_quality_percent, open_questions_count, objections_count,
	objection_success_percent, closing_attempts_count, customer_feeling_score,
	closing_readiness_percent, seller_technical_density_percent,
	customer_technical_density_percent, customer_price_sensitivity_percent,
	customer_risk_sensitivity_percent, customer_time_sensitivity_percent,
	yes_ladder_count,
	disc_d, disc_i, disc_s, disc_c,
	seller_name, seller_code, customer_name, call_duration,
	call_direction, call_stage, call_warmth, call_nature,
	product, seller_level, disc_type, disc_evidence, disc_interaction_guide,
	preferred_channel, customer_awareness_level,
	customer_talk_ratio, seller_talk_ratio,
	summary, customer_personality_analysis, seller_individual_performance,
	call_type_readiness, next_action,
	rapport_decrease_reasons, needs_decrease_reasons, value_decrease_reasons,
	objection_decrease_reasons, price_decrease_reasons, closing_decrease_reasons,
	followup_decrease_reasons, empathy_decrease_reasons, listening_decrease_reasons,
	rapport_increase_reasons, needs_increase_reasons, value_increase_reasons,
	objection_increase_reasons, price_increase_reasons, closing_increase_reasons,
	followup_increase_reasons, empathy_increase_reasons, listening_increase_reasons,
	total_calls, successful_calls, no_answer_calls, referred_calls,
	best_seller, best_seller_reason, best_customer, best_customer_reason,
	full_analysis
) VALUES (
	?, ?, ?, ?, ?,
	?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
	?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
	?, ?, ?, ?,
	?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
	?, ?, ?, ?, ?,
	?, ?, ?, ?, ?, ?, ?, ?, ?,
	?, ?, ?, ?, ?, ?, ?, ?, ?,
	?, ?, ?, ?,
	?, ?, ?, ?,
	?
)`
