// Package scoring is the client for the external AI scoring service that
// ranks a job's applications.
package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hiring-pipeline/internal/common/config"
	apperrors "hiring-pipeline/internal/common/errors"
	httpclient "hiring-pipeline/internal/common/http"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/common/metrics"
	"hiring-pipeline/internal/common/validation"
	"hiring-pipeline/internal/models"
)

// Result is one scored application.
type Result struct {
	ApplicationID           string
	Score                   float64
	ComponentScores         models.ComponentScores
	MatchedSkills           []string
	MissingSkills           []string
	MatchPercentage         float64
	LLMDecision             string
	LLMReasoning            string
	InterviewRecommendation string
	KeyStrengths            string
	DevelopmentAreas        string
}

// Scorer scores every application of a job. Results come back in the
// service's ranking order.
type Scorer interface {
	ScoreJob(ctx context.Context, jobID, description string) ([]Result, error)
}

type request struct {
	JobID          string `json:"job_id"`
	JobDescription string `json:"job_description"`
}

type response struct {
	Shortlist []entry `json:"shortlist"`
}

type entry struct {
	ApplicationID   string   `json:"application_id"`
	FinalScore      *float64 `json:"final_score"`
	ATSScore        *float64 `json:"ats_score"`
	ComponentScores struct {
		SemanticSimilarity float64 `json:"semantic_similarity"`
		SkillMatch         float64 `json:"skill_match"`
		ExperienceMatch    float64 `json:"experience_match"`
		EducationMatch     float64 `json:"education_match"`
		LLMScore           float64 `json:"llm_score"`
	} `json:"component_scores"`
	SkillAnalysis struct {
		MatchingSkills  []string `json:"matching_skills"`
		MissingSkills   []string `json:"missing_skills"`
		MatchPercentage float64  `json:"match_percentage"`
	} `json:"skill_analysis"`
	LLMEvaluation struct {
		Decision                string `json:"decision"`
		Reasoning               string `json:"reasoning"`
		InterviewRecommendation string `json:"interview_recommendation"`
		KeyStrengths            string `json:"key_strengths"`
		DevelopmentAreas        string `json:"development_areas"`
	} `json:"llm_evaluation"`
}

type Client struct {
	endpoint string
	http     *httpclient.Client
	schema   *validation.Schema
	logger   logger.Logger
}

var _ Scorer = (*Client)(nil)

func NewClient(cfg config.ScoringConfig, log logger.Logger, opts ...httpclient.Option) (*Client, error) {
	schema, err := validation.Compile(responseSchema)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/shortlist",
		http:     httpclient.NewClient(config.GetDuration(cfg.Timeout), cfg.MaxRetries, opts...),
		schema:   schema,
		logger:   logger.ForComponent(log, "scoring-client"),
	}, nil
}

// ScoreJob returns a CollaboratorUnavailable error for every failure mode:
// transport, non-2xx after retries, timeout and malformed payloads.
func (c *Client) ScoreJob(ctx context.Context, jobID, description string) ([]Result, error) {
	start := time.Now()
	results, err := c.scoreJob(ctx, jobID, description)
	metrics.RecordCollaboratorCall("scoring", err, time.Since(start))
	if err != nil {
		c.logger.Error("scoring request failed", map[string]interface{}{
			"jobId": jobID,
			"error": err.Error(),
		})
		return nil, apperrors.NewScoringUnavailableError(err)
	}

	c.logger.Info("scoring completed", map[string]interface{}{
		"jobId":      jobID,
		"candidates": len(results),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return results, nil
}

func (c *Client) scoreJob(ctx context.Context, jobID, description string) ([]Result, error) {
	body, err := c.http.PostJSON(ctx, c.endpoint, request{JobID: jobID, JobDescription: description}, nil)
	if err != nil {
		return nil, err
	}

	check, err := c.schema.ValidateJSON(body)
	if err != nil {
		return nil, fmt.Errorf("malformed scoring response: %w", err)
	}
	if !check.Valid {
		return nil, fmt.Errorf("scoring response failed validation: %s", check.Summary())
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode scoring response: %w", err)
	}

	results := make([]Result, 0, len(resp.Shortlist))
	for _, e := range resp.Shortlist {
		results = append(results, e.toResult())
	}
	return results, nil
}

func (e entry) toResult() Result {
	score := 0.0
	switch {
	case e.FinalScore != nil:
		score = *e.FinalScore
	case e.ATSScore != nil:
		score = *e.ATSScore
	}
	return Result{
		ApplicationID: e.ApplicationID,
		Score:         score,
		ComponentScores: models.ComponentScores{
			SemanticSimilarity: e.ComponentScores.SemanticSimilarity,
			SkillMatch:         e.ComponentScores.SkillMatch,
			ExperienceMatch:    e.ComponentScores.ExperienceMatch,
			EducationMatch:     e.ComponentScores.EducationMatch,
			LLMScore:           e.ComponentScores.LLMScore,
		},
		MatchedSkills:           e.SkillAnalysis.MatchingSkills,
		MissingSkills:           e.SkillAnalysis.MissingSkills,
		MatchPercentage:         e.SkillAnalysis.MatchPercentage,
		LLMDecision:             e.LLMEvaluation.Decision,
		LLMReasoning:            e.LLMEvaluation.Reasoning,
		InterviewRecommendation: e.LLMEvaluation.InterviewRecommendation,
		KeyStrengths:            e.LLMEvaluation.KeyStrengths,
		DevelopmentAreas:        e.LLMEvaluation.DevelopmentAreas,
	}
}
