package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/career-agent/internal/types"
)

// userIDRequest is the body shape for workflows that only need a user.
type userIDRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

// decodeBody decodes a JSON request body, writing an error response and
// returning false when the body is malformed.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pathUserID parses the {user_id} path value, writing an error response and
// returning false when it is not a UUID.
func (s *Server) pathUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(r.PathValue("user_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid user_id")
		return uuid.Nil, false
	}
	return userID, true
}

// workflowStatus maps a workflow result's status field to an HTTP code.
// Workflows report failures in-band rather than as errors.
func workflowStatus(result map[string]any) int {
	if result["status"] == "error" {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req userIDRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.UserID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	result := s.coach.RunFullAnalysis(r.Context(), req.UserID)
	s.jsonResponse(w, workflowStatus(result), result)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req userIDRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.UserID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	result := s.coach.AnalyzeAndPlan(r.Context(), req.UserID)
	s.jsonResponse(w, workflowStatus(result), result)
}

func (s *Server) handleSkillGaps(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     uuid.UUID `json:"user_id"`
		TargetRole string    `json:"target_role"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.UserID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	result := s.coach.SkillGaps(r.Context(), req.UserID, req.TargetRole)
	s.jsonResponse(w, workflowStatus(result), result)
}

func (s *Server) handlePrioritizeGaps(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID     uuid.UUID `json:"user_id"`
		CareerGoal string    `json:"career_goal"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.UserID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	result := s.coach.PrioritizeGaps(r.Context(), req.UserID, req.CareerGoal)
	s.jsonResponse(w, workflowStatus(result), result)
}

func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	var req userIDRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.UserID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	result := s.coach.WeeklyReport(r.Context(), req.UserID)
	s.jsonResponse(w, workflowStatus(result), result)
}

func (s *Server) handleProcessFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID uuid.UUID `json:"user_id"`
		types.FeedbackInput
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.UserID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if err := req.FeedbackInput.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "source and message are required")
		return
	}

	result := s.coach.ProcessFeedback(r.Context(), req.UserID, req.FeedbackInput)
	s.jsonResponse(w, workflowStatus(result), result)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}

	result := s.coach.DashboardData(r.Context(), userID)
	s.jsonResponse(w, workflowStatus(result), result)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, s.coach.State(r.Context(), userID))
}

func (s *Server) handleNextAction(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, s.coach.NextAction(r.Context(), userID))
}

func (s *Server) handleOpportunities(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}

	result := s.coach.OpportunityMatches(r.Context(), userID)
	s.jsonResponse(w, workflowStatus(result), result)
}

func (s *Server) handleMemories(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	memories, err := s.coach.Memories(r.Context(), userID, r.URL.Query().Get("type"), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load memories")
		return
	}
	if memories == nil {
		memories = []types.Memory{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "success",
		"memories": memories,
		"count":    len(memories),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "user_id and message are required")
		return
	}

	reply := s.coach.Chat(r.Context(), req.UserID, req.Message)
	s.jsonResponse(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}

	history, err := s.coach.ChatHistory(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load chat history")
		return
	}
	if history == nil {
		history = []types.ChatMessage{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"messages": history})
}

func (s *Server) handleChatClear(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathUserID(w, r)
	if !ok {
		return
	}

	if err := s.coach.ClearChat(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to clear chat history")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}
