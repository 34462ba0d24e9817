package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-agent/internal/agents"
	"github.com/jonathan/career-agent/internal/llm"
	"github.com/jonathan/career-agent/internal/types"
)

// stubObserver hands back a fixed snapshot.
type stubObserver struct {
	snapshot *types.Snapshot
}

func (s *stubObserver) Observe(_ context.Context, userID uuid.UUID) *types.Snapshot {
	snap := s.snapshot
	if snap == nil {
		snap = &types.Snapshot{Unavailable: map[string]string{}}
	}
	snap.UserID = userID
	if snap.Unavailable == nil {
		snap.Unavailable = map[string]string{}
	}
	return snap
}

// stubReasoning returns a fixed profile analysis.
type stubReasoning struct {
	score int
}

func (s *stubReasoning) AnalyzeProfile(_ context.Context, _ agents.ProfileInput) types.AgentResult {
	return types.AgentResult{
		Agent:  types.AgentReasoning,
		Status: types.StatusSuccess,
		Payload: map[string]any{
			"analysis": map[string]any{"readiness_score": float64(s.score)},
		},
	}
}

func (s *stubReasoning) CalculateReadiness(_ context.Context, _ []types.Skill, _ string) types.AgentResult {
	return types.AgentResult{
		Agent:  types.AgentReasoning,
		Status: types.StatusSuccess,
		Payload: map[string]any{
			"readiness": map[string]any{"score": s.score, "level": "getting_close"},
		},
	}
}

// stubGaps returns scripted gaps and records comparisons.
type stubGaps struct {
	gaps            []any
	comparedWith    [][]string
	lastTargetRole  string
	prioritizedGaps []types.SkillGap
	lastCareerGoal  string
}

func (s *stubGaps) AnalyzeGaps(_ context.Context, _ []types.Skill, targetRole string) types.AgentResult {
	s.lastTargetRole = targetRole
	return types.AgentResult{
		Agent:   types.AgentSkillGap,
		Status:  types.StatusSuccess,
		Payload: map[string]any{"skill_gaps": s.gaps},
	}
}

func (s *stubGaps) CompareWithJob(skills []types.Skill, requirements []string) types.AgentResult {
	s.comparedWith = append(s.comparedWith, requirements)
	matched := 0
	for _, req := range requirements {
		for _, skill := range skills {
			if skill.Name == req {
				matched++
				break
			}
		}
	}
	pct := 0
	if len(requirements) > 0 {
		pct = matched * 100 / len(requirements)
	}
	return types.AgentResult{
		Agent:  types.AgentSkillGap,
		Status: types.StatusSuccess,
		Payload: map[string]any{
			"match_percentage": pct,
			"matching_skills":  []any{},
			"missing_skills":   []any{},
		},
	}
}

func (s *stubGaps) PrioritizeGaps(_ context.Context, gaps []types.SkillGap, careerGoal string) types.AgentResult {
	s.prioritizedGaps = gaps
	s.lastCareerGoal = careerGoal
	return types.AgentResult{
		Agent:   types.AgentSkillGap,
		Status:  types.StatusSuccess,
		Payload: map[string]any{"prioritized_gaps": []any{}},
	}
}

// stubPlanner returns a one-week roadmap.
type stubPlanner struct {
	weeks []any
}

func (s *stubPlanner) CreateRoadmap(_ context.Context, _ []types.SkillGap, targetRole, timeline string) types.AgentResult {
	return types.AgentResult{
		Agent:  types.AgentPlanner,
		Status: types.StatusSuccess,
		Payload: map[string]any{
			"roadmap": map[string]any{
				"target_role":  targetRole,
				"timeline":     timeline,
				"weekly_plans": s.weeks,
			},
		},
	}
}

// stubFeedback records which branch ran.
type stubFeedback struct {
	rejections  int
	interviews  int
	patterns    int
	reportInput agents.ReportInput
}

func (s *stubFeedback) AnalyzeRejection(_ context.Context, _ types.FeedbackInput) types.AgentResult {
	s.rejections++
	return types.AgentResult{
		Agent:  types.AgentFeedback,
		Status: types.StatusSuccess,
		Payload: map[string]any{
			"rejection_analysis": map[string]any{"likely_reasons": []any{"timing"}},
			"action_items":       []any{map[string]any{"action": "Practice", "priority": "high"}},
			"roadmap_updates":    []any{},
		},
	}
}

func (s *stubFeedback) AnalyzeInterview(_ context.Context, _ types.FeedbackInput) types.AgentResult {
	s.interviews++
	return types.AgentResult{
		Agent:   types.AgentFeedback,
		Status:  types.StatusSuccess,
		Payload: map[string]any{"key_insights": []any{"prepare more"}},
	}
}

func (s *stubFeedback) DetectPatterns(_ context.Context, _ []types.Feedback) types.AgentResult {
	s.patterns++
	return types.AgentResult{
		Agent:   types.AgentFeedback,
		Status:  types.StatusSuccess,
		Payload: map[string]any{"recurring_themes": []any{}},
	}
}

func (s *stubFeedback) GenerateWeeklyReport(_ context.Context, in agents.ReportInput) types.AgentResult {
	s.reportInput = in
	return types.AgentResult{
		Agent:  types.AgentFeedback,
		Status: types.StatusSuccess,
		Payload: map[string]any{
			"report_title": "Week in review",
			"week_summary": "Good momentum.",
		},
	}
}

// stubChatter echoes a fixed reply.
type stubChatter struct {
	reply   string
	history []llm.Message
	system  string
}

func (s *stubChatter) Chat(_ context.Context, history []llm.Message, system string, _ llm.Options) string {
	s.history = history
	s.system = system
	return s.reply
}

// memStore is an in-memory Store recording every write.
type memStore struct {
	readinessScores map[uuid.UUID]int
	memories        []string
	sessions        map[uuid.UUID]string // session id -> status
	replacedGaps    []types.SkillGap
	savedPlans      []types.Plan
	savedFeedback   []types.Feedback
	feedbackHistory []types.Feedback
	opportunities   []types.Opportunity
	chatMessages    []types.ChatMessage
	cleared         bool
	memoryQuery     string
	memoryLimit     int

	failCreateSession bool
	failSaveMemory    bool
	failSavePlan      bool
	failListFeedback  bool
	failSaveChat      bool
}

func newMemStore() *memStore {
	return &memStore{
		readinessScores: map[uuid.UUID]int{},
		sessions:        map[uuid.UUID]string{},
	}
}

func (m *memStore) UpdateReadinessScore(_ context.Context, userID uuid.UUID, score int) error {
	m.readinessScores[userID] = score
	return nil
}

func (m *memStore) SaveMemory(_ context.Context, _ uuid.UUID, content, _ string, _ map[string]any) error {
	if m.failSaveMemory {
		return errors.New("memory write failed")
	}
	m.memories = append(m.memories, content)
	return nil
}

func (m *memStore) ListMemories(_ context.Context, _ uuid.UUID, memType string, limit int) ([]types.Memory, error) {
	m.memoryQuery = memType
	m.memoryLimit = limit
	return nil, nil
}

func (m *memStore) CreateAgentSession(_ context.Context, _ uuid.UUID, _ string, _ map[string]any) (uuid.UUID, error) {
	if m.failCreateSession {
		return uuid.Nil, errors.New("session insert failed")
	}
	id := uuid.New()
	m.sessions[id] = "processing"
	return id, nil
}

func (m *memStore) UpdateAgentSession(_ context.Context, sessionID uuid.UUID, _ map[string]any, _ string, status string) error {
	m.sessions[sessionID] = status
	return nil
}

func (m *memStore) ReplaceSkillGaps(_ context.Context, _, _ uuid.UUID, gaps []types.SkillGap) error {
	m.replacedGaps = gaps
	return nil
}

func (m *memStore) SavePlan(_ context.Context, _, _ uuid.UUID, plan types.Plan) error {
	if m.failSavePlan {
		return errors.New("plan insert failed")
	}
	m.savedPlans = append(m.savedPlans, plan)
	return nil
}

func (m *memStore) SaveFeedback(_ context.Context, _ uuid.UUID, fb types.Feedback) error {
	m.savedFeedback = append(m.savedFeedback, fb)
	return nil
}

func (m *memStore) ListFeedback(_ context.Context, _ uuid.UUID, _ int) ([]types.Feedback, error) {
	if m.failListFeedback {
		return nil, errors.New("feedback read failed")
	}
	return m.feedbackHistory, nil
}

func (m *memStore) ListOpportunities(_ context.Context) ([]types.Opportunity, error) {
	return m.opportunities, nil
}

func (m *memStore) SaveChatMessage(_ context.Context, userID uuid.UUID, role, content string) error {
	if m.failSaveChat {
		return errors.New("chat write failed")
	}
	m.chatMessages = append(m.chatMessages, types.ChatMessage{UserID: userID, Role: role, Content: content})
	return nil
}

func (m *memStore) ListChatMessages(_ context.Context, _ uuid.UUID, _ int) ([]types.ChatMessage, error) {
	return m.chatMessages, nil
}

func (m *memStore) ClearChatMessages(_ context.Context, _ uuid.UUID) error {
	m.cleared = true
	m.chatMessages = nil
	return nil
}

func readySnapshot() *types.Snapshot {
	goalID := uuid.New()
	return &types.Snapshot{
		Profile:     &types.Profile{Name: "Ada", CurrentLevel: "junior", CareerGoal: "Backend Developer"},
		Skills:      []types.Skill{{Name: "Go"}, {Name: "SQL"}, {Name: "Git"}},
		PrimaryGoal: &types.Goal{ID: goalID, TargetRole: "Backend Developer", Timeline: "2 months"},
		Unavailable: map[string]string{},
	}
}

func testOrchestrator(store *memStore, snapshot *types.Snapshot) (*Orchestrator, *stubGaps, *stubFeedback, *stubChatter) {
	gaps := &stubGaps{gaps: []any{map[string]any{"skill_name": "Docker", "priority": "high"}}}
	feedback := &stubFeedback{}
	chatter := &stubChatter{reply: "You're doing well."}
	orch := New(Deps{
		Observer:  &stubObserver{snapshot: snapshot},
		Reasoning: &stubReasoning{score: 60},
		SkillGap:  gaps,
		Planner: &stubPlanner{weeks: []any{
			map[string]any{"week_number": 1, "title": "Learn Docker"},
			map[string]any{"week_number": 2, "title": "Learn Kubernetes"},
		}},
		Feedback: feedback,
		Chatter:  chatter,
		Store:    store,
	})
	return orch, gaps, feedback, chatter
}

func TestRunFullAnalysis_HappyPath(t *testing.T) {
	store := newMemStore()
	orch, gaps, _, _ := testOrchestrator(store, readySnapshot())
	userID := uuid.New()

	result := orch.RunFullAnalysis(context.Background(), userID)

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, 60, result["readiness_score"])
	assert.Equal(t, "Backend Developer", gaps.lastTargetRole)

	decisionOut, ok := result["next_action"].(types.Decision)
	require.True(t, ok)
	assert.Equal(t, types.ActionAnalyzeGaps, decisionOut.Action)

	assert.Equal(t, 60, store.readinessScores[userID])
	require.Len(t, store.memories, 1)
	assert.Equal(t, "Full analysis completed. Readiness: 60%. Next action: analyze_gaps.", store.memories[0])

	require.Len(t, store.sessions, 1)
	for _, status := range store.sessions {
		assert.Equal(t, "completed", status)
	}
}

func TestRunFullAnalysis_SessionCreateFails(t *testing.T) {
	store := newMemStore()
	store.failCreateSession = true
	orch, _, _, _ := testOrchestrator(store, readySnapshot())

	result := orch.RunFullAnalysis(context.Background(), uuid.New())
	assert.Equal(t, "error", result["status"])
	assert.Contains(t, result["message"], "session insert failed")
}

func TestRunFullAnalysis_ProfileUnavailableWritesNothing(t *testing.T) {
	store := newMemStore()
	snapshot := &types.Snapshot{Unavailable: map[string]string{"profile": "connection refused"}}
	orch, _, _, _ := testOrchestrator(store, snapshot)

	result := orch.RunFullAnalysis(context.Background(), uuid.New())

	assert.Equal(t, "error", result["status"])
	assert.Contains(t, result["message"], "profile unavailable")
	assert.Empty(t, store.readinessScores)
	assert.Empty(t, store.memories)
	for _, status := range store.sessions {
		assert.Equal(t, "failed", status)
	}
}

func TestRunFullAnalysis_MemoryWriteFailsSession(t *testing.T) {
	store := newMemStore()
	store.failSaveMemory = true
	orch, _, _, _ := testOrchestrator(store, readySnapshot())

	result := orch.RunFullAnalysis(context.Background(), uuid.New())

	assert.Equal(t, "error", result["status"])
	for _, status := range store.sessions {
		assert.Equal(t, "failed", status)
	}
}

func TestAnalyzeAndPlan_PersistsGapsAndPlans(t *testing.T) {
	store := newMemStore()
	orch, _, _, _ := testOrchestrator(store, readySnapshot())

	result := orch.AnalyzeAndPlan(context.Background(), uuid.New())

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, 2, result["saved_plans"])
	require.Len(t, store.replacedGaps, 1)
	assert.Equal(t, "Docker", store.replacedGaps[0].SkillName)
	require.Len(t, store.savedPlans, 2)
	assert.Equal(t, "Learn Docker", store.savedPlans[0].Title)
}

func TestAnalyzeAndPlan_NoGoalSkipsGapPersistence(t *testing.T) {
	store := newMemStore()
	snapshot := readySnapshot()
	snapshot.PrimaryGoal = nil
	orch, gaps, _, _ := testOrchestrator(store, snapshot)

	result := orch.AnalyzeAndPlan(context.Background(), uuid.New())

	assert.Equal(t, "success", result["status"])
	assert.Empty(t, store.replacedGaps, "gaps are goal-scoped; no goal means nothing to replace")
	assert.Equal(t, defaultTargetRole, gaps.lastTargetRole)
	assert.Len(t, store.savedPlans, 2, "plans still save, unscoped")
}

func TestAnalyzeAndPlan_PlanWriteFailure(t *testing.T) {
	store := newMemStore()
	store.failSavePlan = true
	orch, _, _, _ := testOrchestrator(store, readySnapshot())

	result := orch.AnalyzeAndPlan(context.Background(), uuid.New())
	assert.Equal(t, "error", result["status"])
	assert.Contains(t, result["message"], "save plan week 1")
}

func TestSkillGaps_ExplicitRoleOverridesGoal(t *testing.T) {
	store := newMemStore()
	orch, gaps, _, _ := testOrchestrator(store, readySnapshot())

	result := orch.SkillGaps(context.Background(), uuid.New(), "Data Scientist")
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "Data Scientist", result["target_role"])
	assert.Equal(t, "Data Scientist", gaps.lastTargetRole)

	result = orch.SkillGaps(context.Background(), uuid.New(), "")
	assert.Equal(t, "Backend Developer", result["target_role"])
}

func TestPrioritizeGaps_UsesSnapshotGapsAndProfileGoal(t *testing.T) {
	store := newMemStore()
	snapshot := readySnapshot()
	snapshot.SkillGaps = []types.SkillGap{
		{SkillName: "Docker", Priority: "high"},
		{SkillName: "GraphQL", Priority: "low"},
	}
	orch, gaps, _, _ := testOrchestrator(store, snapshot)

	result := orch.PrioritizeGaps(context.Background(), uuid.New(), "")

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "Backend Developer", result["career_goal"], "profile career goal wins when no override is given")
	assert.Equal(t, "Backend Developer", gaps.lastCareerGoal)
	require.Len(t, gaps.prioritizedGaps, 2)
	assert.Equal(t, "Docker", gaps.prioritizedGaps[0].SkillName)
}

func TestPrioritizeGaps_ExplicitGoalOverrides(t *testing.T) {
	store := newMemStore()
	orch, gaps, _, _ := testOrchestrator(store, readySnapshot())

	result := orch.PrioritizeGaps(context.Background(), uuid.New(), "Data Scientist")
	assert.Equal(t, "Data Scientist", result["career_goal"])
	assert.Equal(t, "Data Scientist", gaps.lastCareerGoal)
}

func TestWeeklyReport_BuildsInputFromSnapshot(t *testing.T) {
	store := newMemStore()
	snapshot := readySnapshot()
	snapshot.Plans = []types.Plan{
		{WeekNumber: 1, Status: "completed", Tasks: []types.Task{
			{Title: "Finish Docker course", Completed: true},
			{Title: "Read up on Kubernetes", Completed: false},
		}},
		{WeekNumber: 2, Status: "in_progress", Tasks: []types.Task{
			{Title: "Ship side project", Completed: true},
		}},
	}
	snapshot.Stats.TotalApplications = 3
	snapshot.RecentFeedback = []types.Feedback{{Message: "struggled with system design"}}
	orch, _, feedback, _ := testOrchestrator(store, snapshot)

	result := orch.WeeklyReport(context.Background(), uuid.New())

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, 2, result["week"], "first plan not yet completed is the current week")

	in := feedback.reportInput
	assert.Equal(t, "Ada", in.Name)
	assert.Equal(t, "Backend Developer", in.TargetRole)
	assert.Equal(t, 2, in.CurrentWeek)
	assert.Equal(t, []string{"Finish Docker course", "Ship side project"}, in.TasksCompleted)
	assert.Equal(t, 3, in.Applications)
	assert.Equal(t, "struggled with system design", in.Challenges)

	require.Len(t, store.memories, 1)
	assert.Equal(t, "Week in review", store.memories[0], "the report title becomes the memory record")
}

func TestWeeklyReport_ProfileUnavailable(t *testing.T) {
	store := newMemStore()
	snapshot := &types.Snapshot{Unavailable: map[string]string{"profile": "connection refused"}}
	orch, _, _, _ := testOrchestrator(store, snapshot)

	result := orch.WeeklyReport(context.Background(), uuid.New())
	assert.Equal(t, "error", result["status"])
	assert.Empty(t, store.memories)
}

func TestWeeklyReport_MemoryWriteFailure(t *testing.T) {
	store := newMemStore()
	store.failSaveMemory = true
	orch, _, _, _ := testOrchestrator(store, readySnapshot())

	result := orch.WeeklyReport(context.Background(), uuid.New())
	assert.Equal(t, "error", result["status"])
	assert.Contains(t, result["message"], "save memory")
}

func TestCurrentWeek(t *testing.T) {
	assert.Equal(t, 1, currentWeek(nil))
	assert.Equal(t, 1, currentWeek([]types.Plan{{WeekNumber: 1, Status: "pending"}}))
	assert.Equal(t, 3, currentWeek([]types.Plan{
		{WeekNumber: 1, Status: "completed"},
		{WeekNumber: 2, Status: "completed"},
		{WeekNumber: 3, Status: "in_progress"},
	}))
	assert.Equal(t, 3, currentWeek([]types.Plan{
		{WeekNumber: 1, Status: "completed"},
		{WeekNumber: 2, Status: "completed"},
	}), "all weeks done moves to the next one")
}

func TestProcessFeedback_RejectionBranch(t *testing.T) {
	store := newMemStore()
	orch, _, feedback, _ := testOrchestrator(store, readySnapshot())

	result := orch.ProcessFeedback(context.Background(), uuid.New(), types.FeedbackInput{
		Source:  "rejection",
		Company: "Acme",
		Message: "went another way",
	})

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, 1, feedback.rejections)
	assert.Equal(t, 0, feedback.interviews)

	require.Len(t, store.savedFeedback, 1)
	record := store.savedFeedback[0]
	assert.Equal(t, "rejection", record.Source)
	assert.Contains(t, record.Analysis, "likely_reasons", "nested rejection_analysis is stored, not the envelope")
	require.Len(t, record.ActionItems, 1)
	assert.Equal(t, "Practice", record.ActionItems[0].Action)

	require.Len(t, store.memories, 1)
	assert.Equal(t, "Feedback from Acme: went another way", store.memories[0])
	assert.NotContains(t, result, "patterns", "two entries or fewer skip pattern detection")
}

func TestProcessFeedback_InterviewBranch(t *testing.T) {
	store := newMemStore()
	orch, _, feedback, _ := testOrchestrator(store, readySnapshot())

	orch.ProcessFeedback(context.Background(), uuid.New(), types.FeedbackInput{
		Source:  "interview",
		Message: "asked about system design",
	})

	assert.Equal(t, 0, feedback.rejections)
	assert.Equal(t, 1, feedback.interviews)
	require.Len(t, store.savedFeedback, 1)
	assert.Contains(t, store.savedFeedback[0].Analysis, "key_insights", "whole payload stored when no nested analysis exists")
}

func TestProcessFeedback_PatternsAfterThreeEntries(t *testing.T) {
	store := newMemStore()
	store.feedbackHistory = []types.Feedback{
		{Source: "rejection"}, {Source: "rejection"}, {Source: "interview"},
	}
	orch, _, feedback, _ := testOrchestrator(store, readySnapshot())

	result := orch.ProcessFeedback(context.Background(), uuid.New(), types.FeedbackInput{
		Source: "rejection", Message: "no",
	})

	assert.Equal(t, 1, feedback.patterns)
	assert.Contains(t, result, "patterns")
}

func TestProcessFeedback_HistoryReadFailureSkipsPatterns(t *testing.T) {
	store := newMemStore()
	store.failListFeedback = true
	orch, _, feedback, _ := testOrchestrator(store, readySnapshot())

	result := orch.ProcessFeedback(context.Background(), uuid.New(), types.FeedbackInput{
		Source: "rejection", Message: "no",
	})

	assert.Equal(t, "success", result["status"], "pattern detection is best-effort")
	assert.Equal(t, 0, feedback.patterns)
	assert.NotContains(t, result, "patterns")
}

func TestDashboardData(t *testing.T) {
	store := newMemStore()
	snapshot := readySnapshot()
	snapshot.Plans = []types.Plan{
		{WeekNumber: 1, Title: "Done week", Status: "completed"},
		{WeekNumber: 2, Title: "Current week", Status: "in_progress"},
	}
	snapshot.RecentFeedback = []types.Feedback{
		{Source: "rejection"}, {Source: "rejection"}, {Source: "interview"}, {Source: "interview"},
	}
	orch, _, _, _ := testOrchestrator(store, snapshot)

	result := orch.DashboardData(context.Background(), uuid.New())

	assert.Equal(t, "success", result["status"])
	user := result["user"].(Result)
	assert.Equal(t, "Ada", user["name"])
	assert.Equal(t, "Backend Developer", result["target_role"])
	assert.NotNil(t, result["readiness"])

	plan, ok := result["current_plan"].(types.Plan)
	require.True(t, ok)
	assert.Equal(t, "Current week", plan.Title, "first pending or in_progress plan wins")

	recent := result["recent_feedback"].([]types.Feedback)
	assert.Len(t, recent, 3)
}

func TestDashboardData_NoProfileRow(t *testing.T) {
	store := newMemStore()
	snapshot := &types.Snapshot{Unavailable: map[string]string{}}
	orch, _, _, _ := testOrchestrator(store, snapshot)

	result := orch.DashboardData(context.Background(), uuid.New())
	assert.Equal(t, "success", result["status"])
	user := result["user"].(Result)
	assert.Equal(t, "User", user["name"])
	assert.Nil(t, result["readiness"], "no goal means no readiness estimate")
}

func TestOpportunityMatches_SortedBestFirst(t *testing.T) {
	store := newMemStore()
	store.opportunities = []types.Opportunity{
		{Company: "NoReqs", Role: "Generalist"},
		{Company: "FullMatch", Role: "Go Dev", Requirements: []string{"Go", "SQL"}},
		{Company: "NoMatch", Role: "ML Eng", Requirements: []string{"PyTorch"}},
	}
	orch, _, _, _ := testOrchestrator(store, readySnapshot())

	result := orch.OpportunityMatches(context.Background(), uuid.New())

	assert.Equal(t, "success", result["status"])
	assert.Equal(t, 3, result["total"])

	matched := result["opportunities"].([]Result)
	require.Len(t, matched, 3)
	assert.Equal(t, "FullMatch", matched[0]["company"])
	assert.Equal(t, "NoReqs", matched[1]["company"], "no requirements scores a neutral 50")
	assert.Equal(t, "NoMatch", matched[2]["company"])
}

func TestChat_StoresBothTurns(t *testing.T) {
	store := newMemStore()
	store.chatMessages = []types.ChatMessage{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}
	orch, _, _, chatter := testOrchestrator(store, readySnapshot())
	userID := uuid.New()

	reply := orch.Chat(context.Background(), userID, "how am I doing?")

	assert.Equal(t, "You're doing well.", reply)
	require.Len(t, chatter.history, 3, "stored history plus the new turn")
	assert.Equal(t, "how am I doing?", chatter.history[2].Content)
	assert.Contains(t, chatter.system, "Ada")
	assert.Contains(t, chatter.system, "Backend Developer")

	require.Len(t, store.chatMessages, 4)
	assert.Equal(t, "user", store.chatMessages[2].Role)
	assert.Equal(t, "assistant", store.chatMessages[3].Role)
	assert.Equal(t, "You're doing well.", store.chatMessages[3].Content)
}

func TestChat_StillRepliesWhenStoreFails(t *testing.T) {
	store := newMemStore()
	store.failSaveChat = true
	orch, _, _, _ := testOrchestrator(store, readySnapshot())

	reply := orch.Chat(context.Background(), uuid.New(), "hello")
	assert.Equal(t, "You're doing well.", reply)
}

func TestClearChat(t *testing.T) {
	store := newMemStore()
	store.chatMessages = []types.ChatMessage{{Role: "user", Content: "hi"}}
	orch, _, _, _ := testOrchestrator(store, readySnapshot())

	require.NoError(t, orch.ClearChat(context.Background(), uuid.New()))
	assert.True(t, store.cleared)

	history, err := orch.ChatHistory(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMemories_DefaultLimit(t *testing.T) {
	store := newMemStore()
	orch, _, _, _ := testOrchestrator(store, readySnapshot())

	_, err := orch.Memories(context.Background(), uuid.New(), "reasoning", 0)
	require.NoError(t, err)
	assert.Equal(t, "reasoning", store.memoryQuery)
	assert.Equal(t, 20, store.memoryLimit)

	_, err = orch.Memories(context.Background(), uuid.New(), "", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, store.memoryLimit)
}

func TestBuildInsights(t *testing.T) {
	empty := &types.Snapshot{}
	assert.Equal(t, []string{"Keep learning and building your skills!"}, buildInsights(empty, 0))

	busy := &types.Snapshot{
		SkillGaps: []types.SkillGap{
			{Priority: "high"}, {Priority: "high"}, {Priority: "medium"},
		},
		Stats: types.Stats{CompletionRate: 85, ActiveApplications: 2},
	}
	insights := buildInsights(busy, 75)
	assert.Contains(t, insights, "Excellent progress! You're ahead of schedule.")
	assert.Contains(t, insights, "Focus on 2 high-priority skills for your target role.")
	assert.Contains(t, insights, "You're getting close to job-ready! Consider applying soon.")
	assert.Contains(t, insights, "You have 2 active application(s). Good luck!")
}

func TestBuildThoughts(t *testing.T) {
	snapshot := readySnapshot()
	snapshot.Stats.CompletionRate = 40

	got := buildThoughts(snapshot, 60, true)
	assert.Equal(t, "Analyzed profile for Ada. Target role: Backend Developer. Career readiness: 60%. Task completion: 40%.", got)

	got = buildThoughts(&types.Snapshot{}, 0, false)
	assert.Equal(t, "Analyzed profile for user.", got)
}
