package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/amiralikarma0098/noortoos/internal/analysis"
	"github.com/amiralikarma0098/noortoos/internal/extractor"
	"github.com/amiralikarma0098/noortoos/internal/files"
	"github.com/amiralikarma0098/noortoos/internal/llm"
	"github.com/amiralikarma0098/noortoos/internal/searchidx"
)

const minContentRunes = 50

// ========== Upload & analyze ==========

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
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

	payload, err := s.model.AnalyzeCRM(r.Context(), content)
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

	if issues := analysis.Validate(payload); len(issues) > 0 {
		log.Printf("پاسخ مدل ناقص است: %v", issues)
	}
	report := analysis.Normalize(payload)

	resp := map[string]interface{}{
		"success":  true,
		"analysis": report.Raw,
		"file":     info,
	}

	id, err := s.store.SaveAnalysis(r.Context(), info, report)
	if err != nil {
		// The analysis itself succeeded; return it without an id.
		log.Printf("ذخیره تحلیل شکست خورد: %v", err)
		jsonResp(w, resp)
		return
	}
	resp["id"] = id

	if err := s.search.Add(searchidx.Entry{
		ID:       id,
		FileName: info.Name,
		Seller:   report.Text.SellerName,
		Customer: report.Text.CustomerName,
		Product:  report.Text.Product,
		Summary:  report.Text.Summary,
	}); err != nil {
		log.Printf("ایندکس جستجو بروز نشد: %v", err)
	}

	jsonResp(w, resp)
}

// readUpload validates and stores the multipart upload, returning its bytes.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*files.Info, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonErr(w, "فایلی ارسال نشده است", http.StatusBadRequest)
		return nil, nil, false
	}
	defer file.Close()

	if header.Filename == "" {
		jsonErr(w, "نام فایل خالی است", http.StatusBadRequest)
		return nil, nil, false
	}
	if !files.Allowed(header.Filename) {
		jsonErr(w, "فرمت فایل پشتیبانی نمی‌شود", http.StatusBadRequest)
		return nil, nil, false
	}

	info, err := s.files.Save(file, header.Filename)
	if err != nil {
		jsonErr(w, "ذخیره فایل ممکن نشد", http.StatusInternalServerError)
		return nil, nil, false
	}

	data, err := os.ReadFile(info.Path)
	if err != nil {
		s.files.Delete(info.Path)
		jsonErr(w, "خواندن فایل ممکن نشد", http.StatusInternalServerError)
		return nil, nil, false
	}
	return info, data, true
}

// ========== History & detail ==========

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListAnalyses(r.Context())
	if err != nil {
		log.Printf("خواندن تاریخچه: %v", err)
		jsonErr(w, "خواندن تاریخچه ممکن نشد", http.StatusInternalServerError)
		return
	}
	jsonResp(w, map[string]interface{}{"history": list})
}

func (s *Server) handleHistorySearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonErr(w, "عبارت جستجو خالی است", http.StatusBadRequest)
		return
	}

	hits, err := s.search.Search(query, 20)
	if err != nil {
		log.Printf("جستجو: %v", err)
		jsonErr(w, "جستجو انجام نشد", http.StatusInternalServerError)
		return
	}

	results := []map[string]interface{}{}
	for _, hit := range hits {
		rec, err := s.store.GetAnalysis(r.Context(), hit.ID)
		if err != nil || rec == nil {
			continue
		}
		results = append(results, map[string]interface{}{
			"id":        rec.ID,
			"file_name": rec.FileName,
			"summary":   rec.Summary,
			"score":     hit.Score,
		})
	}
	jsonResp(w, map[string]interface{}{"results": results})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rec, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		log.Printf("خواندن تحلیل %d: %v", id, err)
		jsonErr(w, "خواندن تحلیل ممکن نشد", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonErr(w, "تحلیل پیدا نشد", http.StatusNotFound)
		return
	}
	writeAnalysisDetail(w, rec.FullAnalysis, rec)
}

func (s *Server) handleLatestAnalysis(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.LatestAnalysis(r.Context())
	if err != nil {
		log.Printf("آخرین تحلیل: %v", err)
		jsonErr(w, "خواندن تحلیل ممکن نشد", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonErr(w, "هنوز تحلیلی ثبت نشده است", http.StatusNotFound)
		return
	}
	writeAnalysisDetail(w, rec.FullAnalysis, rec)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	path, err := s.store.DeleteAnalysis(r.Context(), id)
	if err != nil {
		log.Printf("حذف تحلیل %d: %v", id, err)
		jsonErr(w, "حذف تحلیل ممکن نشد", http.StatusInternalServerError)
		return
	}
	if path == "" {
		jsonErr(w, "تحلیل پیدا نشد", http.StatusNotFound)
		return
	}
	s.files.Delete(path)
	if err := s.search.Remove(id); err != nil {
		log.Printf("حذف از ایندکس جستجو: %v", err)
	}
	jsonResp(w, map[string]interface{}{"success": true})
}

func (s *Server) handleFileDownload(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rec, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		jsonErr(w, "خواندن تحلیل ممکن نشد", http.StatusInternalServerError)
		return
	}
	if rec == nil {
		jsonErr(w, "تحلیل پیدا نشد", http.StatusNotFound)
		return
	}
	if _, err := os.Stat(rec.FilePath); err != nil {
		jsonErr(w, "فایل روی سرور موجود نیست", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", rec.FileName))
	http.ServeFile(w, r, rec.FilePath)
}

// ========== Health ==========

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbStatus := "connected"
	if err := s.store.Ping(r.Context()); err != nil {
		dbStatus = "disconnected"
	}
	jsonResp(w, map[string]interface{}{
		"status":            "ok",
		"openai_configured": s.cfg.OpenAIKey != "",
		"database":          dbStatus,
	})
}

// ========== Helpers ==========

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		jsonErr(w, "شناسه نامعتبر است", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeAnalysisDetail replays the stored raw payload next to the record row.
func writeAnalysisDetail(w http.ResponseWriter, rawJSON string, rec interface{}) {
	var raw map[string]interface{}
	if rawJSON != "" {
		if err := json.Unmarshal([]byte(rawJSON), &raw); err != nil {
			log.Printf("پاسخ ذخیره شده قابل خواندن نیست: %v", err)
		}
	}
	jsonResp(w, map[string]interface{}{"record": rec, "analysis": raw})
}
