// Package schemas provides JSON Schema shape checks for agent payloads.
// A model response that parses as JSON may still be missing the fields the
// orchestrator reads; payloads failing their schema are treated the same as
// an unusable gateway result and replaced by the agent's static fallback.
package schemas

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Schema names, one per structured agent operation.
const (
	ProfileAnalysis   = "profile_analysis"
	Readiness         = "readiness"
	GapAnalysis       = "gap_analysis"
	RoleRequirements  = "role_requirements"
	GapPriorities     = "gap_priorities"
	Roadmap           = "roadmap"
	Projects          = "projects"
	RejectionAnalysis = "rejection_analysis"
	InterviewAnalysis = "interview_analysis"
	FeedbackPatterns  = "feedback_patterns"
	ProgressAnalysis  = "progress_analysis"
	WeeklyReport      = "weekly_report"
)

// schemaSources holds the minimal shape each payload must satisfy. Only the
// fields downstream code reads are constrained; agents may return more.
var schemaSources = map[string]string{
	ProfileAnalysis: `{
		"type": "object",
		"required": ["analysis"],
		"properties": {
			"analysis": {
				"type": "object",
				"required": ["readiness_score"],
				"properties": {"readiness_score": {"type": "number"}}
			}
		}
	}`,
	Readiness: `{
		"type": "object",
		"required": ["readiness"],
		"properties": {
			"readiness": {
				"type": "object",
				"required": ["score"],
				"properties": {"score": {"type": "number"}}
			}
		}
	}`,
	GapAnalysis: `{
		"type": "object",
		"required": ["skill_gaps"],
		"properties": {
			"skill_gaps": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["skill_name"],
					"properties": {"skill_name": {"type": "string"}}
				}
			}
		}
	}`,
	RoleRequirements: `{
		"type": "object",
		"required": ["role", "required"],
		"properties": {
			"role": {"type": "string"},
			"required": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	GapPriorities: `{
		"type": "object",
		"required": ["prioritized_gaps"],
		"properties": {
			"prioritized_gaps": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["skill_name"],
					"properties": {"skill_name": {"type": "string"}}
				}
			}
		}
	}`,
	Roadmap: `{
		"type": "object",
		"required": ["roadmap"],
		"properties": {
			"roadmap": {
				"type": "object",
				"required": ["weekly_plans"],
				"properties": {"weekly_plans": {"type": "array"}}
			}
		}
	}`,
	Projects: `{
		"type": "object",
		"required": ["projects"],
		"properties": {"projects": {"type": "array"}}
	}`,
	RejectionAnalysis: `{
		"type": "object",
		"required": ["rejection_analysis", "action_items"],
		"properties": {
			"rejection_analysis": {"type": "object"},
			"action_items": {"type": "array"}
		}
	}`,
	InterviewAnalysis: `{
		"type": "object",
		"required": ["key_insights"],
		"properties": {"key_insights": {"type": "array"}}
	}`,
	FeedbackPatterns: `{
		"type": "object",
		"required": ["recurring_themes"],
		"properties": {"recurring_themes": {"type": "array"}}
	}`,
	ProgressAnalysis: `{
		"type": "object",
		"required": ["progress_assessment"],
		"properties": {"progress_assessment": {"type": "object"}}
	}`,
	WeeklyReport: `{
		"type": "object",
		"required": ["report_title", "week_summary"],
		"properties": {
			"report_title": {"type": "string"},
			"week_summary": {"type": "string"}
		}
	}`,
}

// compiled caches compiled schemas by name.
var (
	compiled   = map[string]*gojsonschema.Schema{}
	compiledMu sync.RWMutex
)

// Validate checks a payload against the named schema. A nil error means the
// payload carries the fields downstream code reads.
func Validate(name string, payload map[string]any) error {
	schema, err := load(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return fmt.Errorf("schema validation failed for %s: %w", name, err)
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return fmt.Errorf("payload does not match %s schema: %s: %s", name, first.Field(), first.Description())
	}
	return nil
}

func load(name string) (*gojsonschema.Schema, error) {
	compiledMu.RLock()
	if schema, ok := compiled[name]; ok {
		compiledMu.RUnlock()
		return schema, nil
	}
	compiledMu.RUnlock()

	source, ok := schemaSources[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema: %s", name)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	compiledMu.Lock()
	compiled[name] = schema
	compiledMu.Unlock()
	return schema, nil
}
