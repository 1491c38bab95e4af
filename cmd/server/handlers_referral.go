package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"unicode/utf8"

	"github.com/amiralikarma0098/noortoos/internal/analysis"
	"github.com/amiralikarma0098/noortoos/internal/extractor"
	"github.com/amiralikarma0098/noortoos/internal/llm"
	"github.com/amiralikarma0098/noortoos/internal/report"
)

// ========== Upload & analyze ==========

func (s *Server) handleAnalyzeReferral(w http.ResponseWriter, r *http.Request) {
	info, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	content, err := extractor.Extract(data, info.Name)
	if err != nil {
		s.files.Delete(info.Path)
		jsonErr(w, err.Error(), http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(content) < minContentRunes {
		s.files.Delete(info.Path)
		jsonErr(w, "متن استخراج شده خیلی کوتاه است", http.StatusBadRequest)
		return
	}

	payload, err := s.model.AnalyzeReferral(r.Context(), content)
	if err != nil {
		s.files.Delete(info.Path)
		var aerr *llm.AnalysisError
		if errors.As(err, &aerr) {
			jsonErr(w, aerr.Message, http.StatusBadRequest)
		} else {
			jsonErr(w, "تحلیل انجام نشد", http.StatusInternalServerError)
		}
		return
	}

	summary := analysis.SummarizeReferral(payload)

	resp := map[string]interface{}{
		"success":  true,
		"analysis": summary.Raw,
		"summary": map[string]interface{}{
			"total_referrals": summary.Total,
			"completed":       summary.Completed,
			"pending":         summary.Pending,
			"completion_rate": summary.CompletionRate,
			"pending_rate":    summary.PendingRate,
		},
		"file": info,
	}

	id, err := s.store.SaveReferral(r.Context(), info, summary)
	if err != nil {
		log.Printf("ذخیره تحلیل ارجاعات شکست خورد: %v", err)
		jsonResp(w, resp)
		return
	}
	resp["id"] = id
	jsonResp(w, resp)
}

// ========== History & detail ==========

func (s *Server) handleReferralHistory(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListReferrals(r.Context())
	if err != nil {
		log.Printf("تاریخچه ارجاعات: %v", err)
		jsonErr(w, "خواندن تاریخچه ممکن نشد", http.StatusInternalServerError)
		return
	}
	jsonResp(w, map[string]interface{}{"history": list})
}

func (s *Server) handleGetReferral(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rec, err := s.store.GetReferral(r.Context(), id)
	if err != nil {
		log.Printf("خواندن تحلیل ارجاعات %d: %v", id, err)
		jsonErr(w, "خواندن تحلیل ممکن نشد", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonErr(w, "تحلیل پیدا نشد", http.StatusNotFound)
		return
	}
	writeAnalysisDetail(w, rec.FullAnalysis, rec)
}

func (s *Server) handleLatestReferral(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.LatestReferral(r.Context())
	if err != nil {
		log.Printf("آخرین تحلیل ارجاعات: %v", err)
		jsonErr(w, "خواندن تحلیل ممکن نشد", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonErr(w, "هنوز تحلیلی ثبت نشده است", http.StatusNotFound)
		return
	}
	writeAnalysisDetail(w, rec.FullAnalysis, rec)
}

func (s *Server) handleDeleteReferral(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	path, err := s.store.DeleteReferral(r.Context(), id)
	if err != nil {
		log.Printf("حذف تحلیل ارجاعات %d: %v", id, err)
		jsonErr(w, "حذف تحلیل ممکن نشد", http.StatusInternalServerError)
		return
	}
	if path == "" {
		jsonErr(w, "تحلیل پیدا نشد", http.StatusNotFound)
		return
	}
	s.files.Delete(path)
	jsonResp(w, map[string]interface{}{"success": true})
}

// ========== Report download ==========

func (s *Server) handleReferralReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rec, err := s.store.GetReferral(r.Context(), id)
	if err != nil {
		jsonErr(w, "خواندن تحلیل ممکن نشد", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonErr(w, "تحلیل پیدا نشد", http.StatusNotFound)
		return
	}

	wb, err := report.BuildReferralWorkbook(rec)
	if err != nil {
		log.Printf("ساخت گزارش %d: %v", id, err)
		jsonErr(w, "ساخت گزارش ممکن نشد", http.StatusInternalServerError)
		return
	}
	defer wb.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''referral_report_%d.xlsx", id))
	if err := wb.Write(w); err != nil {
		log.Printf("ارسال گزارش %d: %v", id, err)
	}
}
