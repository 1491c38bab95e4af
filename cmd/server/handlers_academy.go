package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/amiralikarma0098/noortoos/internal/academy"
)

// ========== Portal content ==========

func (s *Server) handleMasters(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, map[string]interface{}{"masters": academy.Masters()})
}

func (s *Server) handleWorkshops(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, map[string]interface{}{"workshops": academy.Workshops()})
}

func (s *Server) handleAssessments(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, map[string]interface{}{"assessments": academy.Assessments()})
}

// ========== Chat ==========

type chatNewRequest struct {
	UserID int64  `json:"user_id"`
	Title  string `json:"title"`
}

func (s *Server) handleChatNew(w http.ResponseWriter, r *http.Request) {
	var req chatNewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, "بدنه درخواست نامعتبر است", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		req.Title = "گفتگوی جدید"
	}

	id, err := s.store.CreateChatSession(r.Context(), req.UserID, req.Title)
	if err != nil {
		log.Printf("ساخت گفتگو: %v", err)
		jsonErr(w, "ساخت گفتگو ممکن نشد", http.StatusInternalServerError)
		return
	}
	jsonResp(w, map[string]interface{}{"session_id": id})
}

type chatSendRequest struct {
	SessionID int64  `json:"session_id"`
	Message   string `json:"message"`
	Detailed  bool   `json:"detailed"`
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req chatSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, "بدنه درخواست نامعتبر است", http.StatusBadRequest)
		return
	}
	if req.SessionID <= 0 || req.Message == "" {
		jsonErr(w, "شناسه گفتگو و پیام الزامی است", http.StatusBadRequest)
		return
	}

	reply, err := s.assistant.Respond(r.Context(), req.SessionID, req.Message, req.Detailed)
	if err != nil {
		log.Printf("پاسخ گفتگو %d: %v", req.SessionID, err)
		jsonErr(w, "پاسخ آماده نشد", http.StatusInternalServerError)
		return
	}
	jsonResp(w, map[string]interface{}{"reply": reply})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	sessions, err := s.store.ListChatSessions(r.Context(), userID)
	if err != nil {
		log.Printf("تاریخچه گفتگو: %v", err)
		jsonErr(w, "خواندن تاریخچه ممکن نشد", http.StatusInternalServerError)
		return
	}
	jsonResp(w, map[string]interface{}{"sessions": sessions})
}

func (s *Server) handleChatGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	session, err := s.store.GetChatSession(r.Context(), id)
	if err != nil {
		jsonErr(w, "خواندن گفتگو ممکن نشد", http.StatusInternalServerError)
		return
	}
	if session == nil {
		jsonErr(w, "گفتگو پیدا نشد", http.StatusNotFound)
		return
	}
	messages, err := s.store.GetChatMessages(r.Context(), id)
	if err != nil {
		jsonErr(w, "خواندن پیام‌ها ممکن نشد", http.StatusInternalServerError)
		return
	}
	jsonResp(w, map[string]interface{}{"session": session, "messages": messages})
}

// ========== WebSocket chat ==========

type wsChatFrame struct {
	SessionID int64  `json:"session_id"`
	Message   string `json:"message"`
	Detailed  bool   `json:"detailed"`
}

// handleChatWS runs the same send/reply loop over one socket. Each incoming
// frame is a full chat request; each outgoing frame carries the reply or a
// Persian error message.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ارتقای وب‌سوکت: %v", err)
		return
	}
	defer conn.Close()

	for {
		var frame wsChatFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		if frame.SessionID <= 0 || frame.Message == "" {
			if err := conn.WriteJSON(map[string]interface{}{
				"error": true, "message": "شناسه گفتگو و پیام الزامی است",
			}); err != nil {
				return
			}
			continue
		}

		reply, err := s.assistant.Respond(r.Context(), frame.SessionID, frame.Message, frame.Detailed)
		if err != nil {
			log.Printf("پاسخ وب‌سوکت %d: %v", frame.SessionID, err)
			if err := conn.WriteJSON(map[string]interface{}{
				"error": true, "message": "پاسخ آماده نشد",
			}); err != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(map[string]interface{}{
			"session_id": frame.SessionID, "reply": reply,
		}); err != nil {
			return
		}
	}
}
