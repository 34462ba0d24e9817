// Package orchestrator coordinates the observer, the decision engine, and the
// agent invokers into user-facing workflows, persisting results as it goes.
package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/career-agent/internal/agents"
	"github.com/jonathan/career-agent/internal/decision"
	"github.com/jonathan/career-agent/internal/llm"
	"github.com/jonathan/career-agent/internal/prompts"
	"github.com/jonathan/career-agent/internal/types"
)

const (
	// defaultTargetRole stands in when the user has no primary goal yet.
	defaultTargetRole = "Software Developer"
	defaultTimeline   = "3 months"

	patternMinHistory   = 3
	patternHistoryLimit = 10
	dashboardFeedback   = 3
	chatHistoryLimit    = 20
	defaultMemoryLimit  = 20
)

// Result is the JSON-shaped bundle every workflow returns.
type Result = map[string]any

// Snapshotter provides the aggregate user state workflows reason over.
type Snapshotter interface {
	Observe(ctx context.Context, userID uuid.UUID) *types.Snapshot
}

// ProfileAnalyzer is the reasoning agent surface workflows use.
type ProfileAnalyzer interface {
	AnalyzeProfile(ctx context.Context, in agents.ProfileInput) types.AgentResult
	CalculateReadiness(ctx context.Context, skills []types.Skill, targetRole string) types.AgentResult
}

// GapAnalyzer is the skill-gap agent surface workflows use.
type GapAnalyzer interface {
	AnalyzeGaps(ctx context.Context, skills []types.Skill, targetRole string) types.AgentResult
	CompareWithJob(skills []types.Skill, requirements []string) types.AgentResult
	PrioritizeGaps(ctx context.Context, gaps []types.SkillGap, careerGoal string) types.AgentResult
}

// RoadmapPlanner is the planner agent surface workflows use.
type RoadmapPlanner interface {
	CreateRoadmap(ctx context.Context, gaps []types.SkillGap, targetRole, timeline string) types.AgentResult
}

// FeedbackAnalyzer is the feedback agent surface workflows use.
type FeedbackAnalyzer interface {
	AnalyzeRejection(ctx context.Context, in types.FeedbackInput) types.AgentResult
	AnalyzeInterview(ctx context.Context, in types.FeedbackInput) types.AgentResult
	DetectPatterns(ctx context.Context, history []types.Feedback) types.AgentResult
	GenerateWeeklyReport(ctx context.Context, in agents.ReportInput) types.AgentResult
}

// Chatter is the conversational gateway surface. It never fails; exhaustion
// surfaces as an apology string.
type Chatter interface {
	Chat(ctx context.Context, history []llm.Message, system string, opts llm.Options) string
}

// Store is the persistence surface workflows write through, plus the few
// reads that fall outside the observer's snapshot.
type Store interface {
	UpdateReadinessScore(ctx context.Context, userID uuid.UUID, score int) error
	SaveMemory(ctx context.Context, userID uuid.UUID, content, memType string, metadata map[string]any) error
	ListMemories(ctx context.Context, userID uuid.UUID, memType string, limit int) ([]types.Memory, error)
	CreateAgentSession(ctx context.Context, userID uuid.UUID, sessionType string, input map[string]any) (uuid.UUID, error)
	UpdateAgentSession(ctx context.Context, sessionID uuid.UUID, result map[string]any, thoughts, status string) error
	ReplaceSkillGaps(ctx context.Context, userID, goalID uuid.UUID, gaps []types.SkillGap) error
	SavePlan(ctx context.Context, userID, goalID uuid.UUID, plan types.Plan) error
	SaveFeedback(ctx context.Context, userID uuid.UUID, fb types.Feedback) error
	ListFeedback(ctx context.Context, userID uuid.UUID, limit int) ([]types.Feedback, error)
	ListOpportunities(ctx context.Context) ([]types.Opportunity, error)
	SaveChatMessage(ctx context.Context, userID uuid.UUID, role, content string) error
	ListChatMessages(ctx context.Context, userID uuid.UUID, limit int) ([]types.ChatMessage, error)
	ClearChatMessages(ctx context.Context, userID uuid.UUID) error
}

// Orchestrator wires the observer, agents, gateway and store into workflows.
// All collaborators are injected; there is no package-level instance.
type Orchestrator struct {
	observer  Snapshotter
	reasoning ProfileAnalyzer
	skillGap  GapAnalyzer
	planner   RoadmapPlanner
	feedback  FeedbackAnalyzer
	chatter   Chatter
	store     Store
	log       *zap.Logger
}

// Deps bundles the orchestrator's injected collaborators.
type Deps struct {
	Observer  Snapshotter
	Reasoning ProfileAnalyzer
	SkillGap  GapAnalyzer
	Planner   RoadmapPlanner
	Feedback  FeedbackAnalyzer
	Chatter   Chatter
	Store     Store
	Logger    *zap.Logger
}

// New constructs an Orchestrator from its dependencies.
func New(deps Deps) *Orchestrator {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		observer:  deps.Observer,
		reasoning: deps.Reasoning,
		skillGap:  deps.SkillGap,
		planner:   deps.Planner,
		feedback:  deps.Feedback,
		chatter:   deps.Chatter,
		store:     deps.Store,
		log:       log,
	}
}

// errorResult is the uniform boundary shape for workflow failures. Workflows
// never propagate errors to callers; they report them in-band.
func errorResult(err error) Result {
	return Result{"status": "error", "message": err.Error()}
}

// snapshotUsable reports whether a snapshot can anchor a workflow. A missing
// profile read means we cannot tell a new user from a broken store, so
// workflows refuse to write anything on top of it.
func snapshotUsable(snapshot *types.Snapshot) error {
	if reason, ok := snapshot.Unavailable["profile"]; ok {
		return fmt.Errorf("profile unavailable: %s", reason)
	}
	return nil
}

// RunFullAnalysis runs the complete analysis pipeline for a user: observe,
// assess the profile, analyze gaps, decide the next action, and persist the
// readiness score, a summary memory record and a session record.
func (o *Orchestrator) RunFullAnalysis(ctx context.Context, userID uuid.UUID) Result {
	o.log.Info("running full analysis", zap.Stringer("user_id", userID))

	sessionID, err := o.store.CreateAgentSession(ctx, userID, "full_analysis", map[string]any{"user_id": userID.String()})
	if err != nil {
		return errorResult(fmt.Errorf("create session: %w", err))
	}

	snapshot := o.observer.Observe(ctx, userID)
	if err := snapshotUsable(snapshot); err != nil {
		o.failSession(ctx, sessionID, err)
		return errorResult(err)
	}

	input := agents.ProfileInput{
		TargetRole: defaultTargetRole,
		Skills:     snapshot.Skills,
	}
	if snapshot.Profile != nil {
		input.Name = snapshot.Profile.Name
		input.CurrentLevel = snapshot.Profile.CurrentLevel
		input.CareerGoal = snapshot.Profile.CareerGoal
	}
	if snapshot.PrimaryGoal != nil {
		input.TargetRole = snapshot.PrimaryGoal.TargetRole
	}

	reasoningResult := o.reasoning.AnalyzeProfile(ctx, input)
	gapResult := o.skillGap.AnalyzeGaps(ctx, snapshot.Skills, input.TargetRole)
	nextAction := decision.Decide(snapshot)

	score, hasScore := agents.ReadinessScore(reasoningResult.Payload)
	thoughts := buildThoughts(snapshot, score, hasScore)

	result := Result{
		"status":          "success",
		"user_id":         userID.String(),
		"readiness_score": score,
		"reasoning":       reasoningResult,
		"skill_gaps":      gapResult,
		"next_action":     nextAction,
		"insights":        buildInsights(snapshot, score),
		"stats":           snapshot.Stats,
		"agent_thoughts":  thoughts,
	}

	if hasScore {
		if err := o.store.UpdateReadinessScore(ctx, userID, score); err != nil {
			o.failSession(ctx, sessionID, err)
			return errorResult(fmt.Errorf("update readiness score: %w", err))
		}
	}

	memory := fmt.Sprintf("Full analysis completed. Readiness: %d%%. Next action: %s.", score, nextAction.Action)
	if err := o.store.SaveMemory(ctx, userID, memory, "reasoning", map[string]any{"result_summary": true}); err != nil {
		o.failSession(ctx, sessionID, err)
		return errorResult(fmt.Errorf("save memory: %w", err))
	}

	if err := o.store.UpdateAgentSession(ctx, sessionID, result, thoughts, "completed"); err != nil {
		return errorResult(fmt.Errorf("update session: %w", err))
	}

	return result
}

// AnalyzeAndPlan analyzes skill gaps for the primary goal and turns them
// into persisted weekly plans.
func (o *Orchestrator) AnalyzeAndPlan(ctx context.Context, userID uuid.UUID) Result {
	o.log.Info("analyzing and planning", zap.Stringer("user_id", userID))

	snapshot := o.observer.Observe(ctx, userID)
	if err := snapshotUsable(snapshot); err != nil {
		return errorResult(err)
	}

	targetRole := defaultTargetRole
	timeline := defaultTimeline
	goalID := uuid.Nil
	if snapshot.PrimaryGoal != nil {
		goalID = snapshot.PrimaryGoal.ID
		if snapshot.PrimaryGoal.TargetRole != "" {
			targetRole = snapshot.PrimaryGoal.TargetRole
		}
		if snapshot.PrimaryGoal.Timeline != "" {
			timeline = snapshot.PrimaryGoal.Timeline
		}
	}

	gapResult := o.skillGap.AnalyzeGaps(ctx, snapshot.Skills, targetRole)
	gaps := agents.DecodeGaps(gapResult.Payload)

	roadmapResult := o.planner.CreateRoadmap(ctx, gaps, targetRole, timeline)

	if goalID != uuid.Nil && len(gaps) > 0 {
		if err := o.store.ReplaceSkillGaps(ctx, userID, goalID, gaps); err != nil {
			return errorResult(fmt.Errorf("save skill gaps: %w", err))
		}
	}

	plans := agents.DecodeWeeklyPlans(roadmapResult.Payload)
	for _, plan := range plans {
		if err := o.store.SavePlan(ctx, userID, goalID, plan); err != nil {
			return errorResult(fmt.Errorf("save plan week %d: %w", plan.WeekNumber, err))
		}
	}

	return Result{
		"status":      "success",
		"skill_gaps":  gapResult,
		"roadmap":     roadmapResult,
		"saved_plans": len(plans),
	}
}

// SkillGaps runs a gap analysis for the user's target role without touching
// stored plans. An explicit targetRole overrides the primary goal's.
func (o *Orchestrator) SkillGaps(ctx context.Context, userID uuid.UUID, targetRole string) Result {
	snapshot := o.observer.Observe(ctx, userID)

	if targetRole == "" {
		targetRole = defaultTargetRole
		if snapshot.PrimaryGoal != nil && snapshot.PrimaryGoal.TargetRole != "" {
			targetRole = snapshot.PrimaryGoal.TargetRole
		}
	}

	gapResult := o.skillGap.AnalyzeGaps(ctx, snapshot.Skills, targetRole)
	return Result{
		"status":      "success",
		"target_role": targetRole,
		"skill_gaps":  gapResult,
	}
}

// PrioritizeGaps orders the user's recorded skill gaps into a learning
// sequence. Gaps come from the snapshot rather than the caller, so the
// ordering always reflects persisted state. An explicit careerGoal overrides
// the profile's.
func (o *Orchestrator) PrioritizeGaps(ctx context.Context, userID uuid.UUID, careerGoal string) Result {
	snapshot := o.observer.Observe(ctx, userID)

	if careerGoal == "" {
		careerGoal = defaultTargetRole
		switch {
		case snapshot.Profile != nil && snapshot.Profile.CareerGoal != "":
			careerGoal = snapshot.Profile.CareerGoal
		case snapshot.PrimaryGoal != nil && snapshot.PrimaryGoal.TargetRole != "":
			careerGoal = snapshot.PrimaryGoal.TargetRole
		}
	}

	return Result{
		"status":         "success",
		"career_goal":    careerGoal,
		"prioritization": o.skillGap.PrioritizeGaps(ctx, snapshot.SkillGaps, careerGoal),
	}
}

// WeeklyReport generates the weekly progress report from the snapshot's
// activity and records it as a feedback memory. The current week is the first
// plan not yet completed; completed task titles become the week's
// accomplishments.
func (o *Orchestrator) WeeklyReport(ctx context.Context, userID uuid.UUID) Result {
	snapshot := o.observer.Observe(ctx, userID)
	if err := snapshotUsable(snapshot); err != nil {
		return errorResult(err)
	}

	in := agents.ReportInput{
		CurrentWeek:  currentWeek(snapshot.Plans),
		Applications: snapshot.Stats.TotalApplications,
	}
	if snapshot.Profile != nil {
		in.Name = snapshot.Profile.Name
	}
	if snapshot.PrimaryGoal != nil {
		in.TargetRole = snapshot.PrimaryGoal.TargetRole
	}
	for _, plan := range snapshot.Plans {
		for _, task := range plan.Tasks {
			if task.Completed {
				in.TasksCompleted = append(in.TasksCompleted, task.Title)
			}
		}
	}
	if len(snapshot.RecentFeedback) > 0 {
		in.Challenges = snapshot.RecentFeedback[0].Message
	}

	report := o.feedback.GenerateWeeklyReport(ctx, in)

	summary := fmt.Sprintf("Weekly report generated for week %d.", in.CurrentWeek)
	if title, ok := report.Payload["report_title"].(string); ok && title != "" {
		summary = title
	}
	if err := o.store.SaveMemory(ctx, userID, summary, "feedback", map[string]any{"weekly_report": true, "week": in.CurrentWeek}); err != nil {
		return errorResult(fmt.Errorf("save memory: %w", err))
	}

	return Result{
		"status": "success",
		"week":   in.CurrentWeek,
		"report": report,
	}
}

// currentWeek is the first plan week not yet completed, or one past the last
// completed week when everything is done.
func currentWeek(plans []types.Plan) int {
	week := 1
	for _, plan := range plans {
		if plan.Status != "completed" && plan.WeekNumber > 0 {
			return plan.WeekNumber
		}
		if plan.WeekNumber >= week {
			week = plan.WeekNumber + 1
		}
	}
	return week
}

// ProcessFeedback analyzes one feedback record, persists it with the
// attached analysis, and reruns pattern detection once enough history exists.
func (o *Orchestrator) ProcessFeedback(ctx context.Context, userID uuid.UUID, in types.FeedbackInput) Result {
	o.log.Info("processing feedback",
		zap.Stringer("user_id", userID),
		zap.String("source", in.Source))

	var analysis types.AgentResult
	if in.Source == "rejection" {
		analysis = o.feedback.AnalyzeRejection(ctx, in)
	} else {
		analysis = o.feedback.AnalyzeInterview(ctx, in)
	}

	record := types.Feedback{
		UserID:      userID,
		Source:      in.Source,
		Company:     in.Company,
		Role:        in.Role,
		Message:     in.Message,
		ActionItems: agents.DecodeActionItems(analysis.Payload),
	}
	if nested, ok := analysis.Payload["rejection_analysis"].(map[string]any); ok {
		record.Analysis = nested
	} else {
		record.Analysis = analysis.Payload
	}

	if err := o.store.SaveFeedback(ctx, userID, record); err != nil {
		return errorResult(fmt.Errorf("save feedback: %w", err))
	}

	memory := fmt.Sprintf("Feedback from %s: %s", orUnknown(in.Company), in.Message)
	if err := o.store.SaveMemory(ctx, userID, memory, "feedback", map[string]any{"source": in.Source}); err != nil {
		return errorResult(fmt.Errorf("save memory: %w", err))
	}

	result := Result{
		"status":          "success",
		"analysis":        analysis,
		"roadmap_updates": analysis.Payload["roadmap_updates"],
	}

	history, err := o.store.ListFeedback(ctx, userID, patternHistoryLimit)
	if err != nil {
		o.log.Warn("feedback history unavailable, skipping pattern detection",
			zap.Stringer("user_id", userID), zap.Error(err))
		return result
	}
	if len(history) >= patternMinHistory {
		result["patterns"] = o.feedback.DetectPatterns(ctx, history)
	}

	return result
}

// DashboardData assembles the summary bundle the dashboard renders: profile
// header, readiness estimate, current plan, next action and insights.
func (o *Orchestrator) DashboardData(ctx context.Context, userID uuid.UUID) Result {
	snapshot := o.observer.Observe(ctx, userID)
	if err := snapshotUsable(snapshot); err != nil {
		return errorResult(err)
	}

	userInfo := Result{"name": "User", "readiness_score": 0}
	if snapshot.Profile != nil {
		userInfo = Result{
			"name":            snapshot.Profile.Name,
			"career_goal":     snapshot.Profile.CareerGoal,
			"current_level":   snapshot.Profile.CurrentLevel,
			"readiness_score": snapshot.Profile.ReadinessScore,
		}
	}

	var targetRole any
	var readiness any
	if snapshot.PrimaryGoal != nil {
		targetRole = snapshot.PrimaryGoal.TargetRole
		if len(snapshot.Skills) > 0 {
			result := o.reasoning.CalculateReadiness(ctx, snapshot.Skills, snapshot.PrimaryGoal.TargetRole)
			readiness = result.Payload["readiness"]
		}
	}

	var currentPlan any
	for i := range snapshot.Plans {
		if snapshot.Plans[i].Status == "pending" || snapshot.Plans[i].Status == "in_progress" {
			currentPlan = snapshot.Plans[i]
			break
		}
	}

	recent := snapshot.RecentFeedback
	if len(recent) > dashboardFeedback {
		recent = recent[:dashboardFeedback]
	}

	return Result{
		"status":           "success",
		"user":             userInfo,
		"target_role":      targetRole,
		"readiness":        readiness,
		"stats":            snapshot.Stats,
		"skill_gaps_count": len(snapshot.SkillGaps),
		"current_plan":     currentPlan,
		"next_action":      decision.Decide(snapshot),
		"insights":         buildInsights(snapshot, 0),
		"recent_feedback":  recent,
		"applications_summary": Result{
			"total":  snapshot.Stats.TotalApplications,
			"active": snapshot.Stats.ActiveApplications,
		},
	}
}

// NextAction exposes the decision ladder for the current state without
// running any agents.
func (o *Orchestrator) NextAction(ctx context.Context, userID uuid.UUID) types.Decision {
	return decision.Decide(o.observer.Observe(ctx, userID))
}

// State returns the raw observed snapshot.
func (o *Orchestrator) State(ctx context.Context, userID uuid.UUID) *types.Snapshot {
	return o.observer.Observe(ctx, userID)
}

// OpportunityMatches scores stored opportunities against the user's skills
// and returns them sorted by match percentage, best first. Opportunities
// with no listed requirements score a neutral 50.
func (o *Orchestrator) OpportunityMatches(ctx context.Context, userID uuid.UUID) Result {
	snapshot := o.observer.Observe(ctx, userID)

	opportunities, err := o.store.ListOpportunities(ctx)
	if err != nil {
		return errorResult(fmt.Errorf("list opportunities: %w", err))
	}

	matched := make([]Result, 0, len(opportunities))
	for _, opp := range opportunities {
		entry := Result{
			"id":           opp.ID,
			"company":      opp.Company,
			"role":         opp.Role,
			"requirements": opp.Requirements,
		}
		if len(opp.Requirements) == 0 {
			entry["match_percentage"] = 50
			matched = append(matched, entry)
			continue
		}
		comparison := o.skillGap.CompareWithJob(snapshot.Skills, opp.Requirements)
		entry["match_percentage"] = comparison.Payload["match_percentage"]
		entry["matching_skills"] = comparison.Payload["matching_skills"]
		entry["missing_skills"] = comparison.Payload["missing_skills"]
		matched = append(matched, entry)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matchPercent(matched[i]) > matchPercent(matched[j])
	})

	return Result{
		"status":        "success",
		"opportunities": matched,
		"total":         len(matched),
	}
}

func matchPercent(entry Result) int {
	switch v := entry["match_percentage"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Chat runs one coaching conversation turn: prior history plus the new
// message go to the gateway, and both sides of the exchange are stored
// verbatim. It always returns text.
func (o *Orchestrator) Chat(ctx context.Context, userID uuid.UUID, message string) string {
	snapshot := o.observer.Observe(ctx, userID)

	history := []llm.Message{}
	stored, err := o.store.ListChatMessages(ctx, userID, chatHistoryLimit)
	if err != nil {
		o.log.Warn("chat history unavailable", zap.Stringer("user_id", userID), zap.Error(err))
	} else {
		for _, msg := range stored {
			history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
		}
	}
	history = append(history, llm.Message{Role: "user", Content: message})

	reply := o.chatter.Chat(ctx, history, chatPersona(snapshot), llm.DefaultOptions())

	if err := o.store.SaveChatMessage(ctx, userID, "user", message); err != nil {
		o.log.Warn("failed to store chat turn", zap.Stringer("user_id", userID), zap.Error(err))
	}
	if err := o.store.SaveChatMessage(ctx, userID, "assistant", reply); err != nil {
		o.log.Warn("failed to store chat turn", zap.Stringer("user_id", userID), zap.Error(err))
	}

	return reply
}

// Memories returns stored memory records for a user, newest first,
// optionally filtered by type. A non-positive limit uses the default.
func (o *Orchestrator) Memories(ctx context.Context, userID uuid.UUID, memType string, limit int) ([]types.Memory, error) {
	if limit <= 0 {
		limit = defaultMemoryLimit
	}
	return o.store.ListMemories(ctx, userID, memType, limit)
}

// ChatHistory returns the stored conversation, oldest first.
func (o *Orchestrator) ChatHistory(ctx context.Context, userID uuid.UUID) ([]types.ChatMessage, error) {
	return o.store.ListChatMessages(ctx, userID, chatHistoryLimit)
}

// ClearChat deletes the stored conversation.
func (o *Orchestrator) ClearChat(ctx context.Context, userID uuid.UUID) error {
	return o.store.ClearChatMessages(ctx, userID)
}

func (o *Orchestrator) failSession(ctx context.Context, sessionID uuid.UUID, cause error) {
	result := Result{"status": "error", "message": cause.Error()}
	if err := o.store.UpdateAgentSession(ctx, sessionID, result, cause.Error(), "failed"); err != nil {
		o.log.Warn("failed to mark session failed", zap.Stringer("session_id", sessionID), zap.Error(err))
	}
}

// chatPersona builds the system prompt for a coaching turn, appending what
// is known about the user so the coach does not have to ask.
func chatPersona(snapshot *types.Snapshot) string {
	persona := prompts.MustGet("chat-system")

	context := []string{}
	if snapshot.Profile != nil && snapshot.Profile.Name != "" {
		context = append(context, fmt.Sprintf("The user's name is %s.", snapshot.Profile.Name))
	}
	if snapshot.PrimaryGoal != nil {
		context = append(context, fmt.Sprintf("Their target role is %s.", snapshot.PrimaryGoal.TargetRole))
	}
	if snapshot.Stats.TotalTasks > 0 {
		context = append(context, fmt.Sprintf("They have completed %d of %d learning tasks.",
			snapshot.Stats.CompletedTasks, snapshot.Stats.TotalTasks))
	}
	if len(context) == 0 {
		return persona
	}
	return persona + "\n\n" + strings.Join(context, " ")
}

// buildInsights turns snapshot signals into short human-readable insights.
// The thresholds mirror the decision ladder's progress bands.
func buildInsights(snapshot *types.Snapshot, readinessScore int) []string {
	insights := []string{}

	switch {
	case snapshot.Stats.CompletionRate >= 80:
		insights = append(insights, "Excellent progress! You're ahead of schedule.")
	case snapshot.Stats.CompletionRate >= 50:
		insights = append(insights, "Good progress! Keep up the momentum.")
	case snapshot.Stats.CompletionRate > 0:
		insights = append(insights, "You're making progress. Try to pick up the pace a bit.")
	}

	highPriority := 0
	for _, gap := range snapshot.SkillGaps {
		if gap.Priority == "high" {
			highPriority++
		}
	}
	if highPriority > 0 {
		insights = append(insights, fmt.Sprintf("Focus on %d high-priority skills for your target role.", highPriority))
	}

	if readinessScore >= 70 {
		insights = append(insights, "You're getting close to job-ready! Consider applying soon.")
	}

	if snapshot.Stats.ActiveApplications > 0 {
		insights = append(insights, fmt.Sprintf("You have %d active application(s). Good luck!", snapshot.Stats.ActiveApplications))
	}

	if len(insights) == 0 {
		insights = append(insights, "Keep learning and building your skills!")
	}
	return insights
}

// buildThoughts summarizes one analysis run in a sentence or two.
func buildThoughts(snapshot *types.Snapshot, readinessScore int, hasScore bool) string {
	name := "user"
	if snapshot.Profile != nil && snapshot.Profile.Name != "" {
		name = snapshot.Profile.Name
	}

	thoughts := []string{fmt.Sprintf("Analyzed profile for %s.", name)}
	if snapshot.PrimaryGoal != nil {
		thoughts = append(thoughts, fmt.Sprintf("Target role: %s.", snapshot.PrimaryGoal.TargetRole))
	}
	if hasScore {
		thoughts = append(thoughts, fmt.Sprintf("Career readiness: %d%%.", readinessScore))
	}
	if snapshot.Stats.CompletionRate > 0 {
		thoughts = append(thoughts, fmt.Sprintf("Task completion: %d%%.", snapshot.Stats.CompletionRate))
	}
	return strings.Join(thoughts, " ")
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
