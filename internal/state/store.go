// Package state persists resolved topology plans so the external
// reconciliation engine can pick them up.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hemantobora/vmapp/internal/models"
)

// PlanMetadata contains versioning and tracking information for a stored
// plan.
type PlanMetadata struct {
	App       string    `json:"app"`
	Region    string    `json:"region"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size,omitempty"`
}

// Plan wraps the desired-state aggregate with storage metadata.
type Plan struct {
	Metadata PlanMetadata  `json:"metadata"`
	Topology *models.VMApp `json:"topology"`
}

// Store defines the interface for plan storage.
type Store interface {
	// SavePlan saves the current plan for an app and a versioned copy.
	SavePlan(ctx context.Context, app string, plan *Plan) error

	// GetPlan retrieves the current plan for an app.
	GetPlan(ctx context.Context, app string) (*Plan, error)

	// GetPlanVersion retrieves a specific version of a plan.
	GetPlanVersion(ctx context.Context, app, version string) (*Plan, error)

	// DeletePlan removes the current plan for an app.
	DeletePlan(ctx context.Context, app string) error
}

// NewPlan wraps an assembled aggregate into a versioned plan.
func NewPlan(app *models.VMApp) *Plan {
	now := time.Now().UTC()
	return &Plan{
		Metadata: PlanMetadata{
			App:       app.Name,
			Region:    app.Region,
			Version:   fmt.Sprintf("v%d", now.Unix()),
			CreatedAt: now,
		},
		Topology: app,
	}
}

// ValidatePlan checks a plan before it is stored.
func ValidatePlan(plan *Plan) error {
	if plan == nil {
		return models.ValidationError{Field: "plan", Message: "plan cannot be nil"}
	}
	if plan.Topology == nil {
		return models.ValidationError{Field: "topology", Message: "topology is required"}
	}
	if plan.Metadata.App == "" {
		return models.ValidationError{Field: "metadata.app", Message: "app name is required"}
	}
	if plan.Metadata.App != plan.Topology.Name {
		return models.ValidationError{
			Field:   "metadata.app",
			Message: fmt.Sprintf("metadata app %q does not match topology name %q", plan.Metadata.App, plan.Topology.Name),
		}
	}
	return nil
}

func marshalPlan(plan *Plan) ([]byte, error) {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}
	plan.Metadata.Size = int64(len(data))
	return data, nil
}

func unmarshalPlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &plan, nil
}

func currentKey(app string) string {
	return fmt.Sprintf("plans/%s/current.json", app)
}

func versionKey(app, version string) string {
	return fmt.Sprintf("plans/%s/versions/%s.json", app, version)
}
