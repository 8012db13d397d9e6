package state

import (
	"context"
	"testing"

	"github.com/hemantobora/vmapp/internal/models"
	"github.com/hemantobora/vmapp/internal/topology"
)

func demoPlan(t *testing.T) *Plan {
	t.Helper()
	app, err := topology.Assembler{}.Build(models.Configuration{
		Name: "demo",
		Subnets: []models.Subnet{
			{ID: "subnet-1a", VPC: models.VPC{ID: "vpc-1", Region: "us-east-1"}},
		},
	})
	if err != nil {
		t.Fatalf("build aggregate: %v", err)
	}
	return NewPlan(app)
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())
	plan := demoPlan(t)

	if err := store.SavePlan(ctx, "demo", plan); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	got, err := store.GetPlan(ctx, "demo")
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if got.Metadata.App != "demo" || got.Metadata.Version != plan.Metadata.Version {
		t.Errorf("metadata mismatch: %+v", got.Metadata)
	}
	if got.Topology == nil || got.Topology.ELB.Name != "demo-elb" {
		t.Errorf("topology did not survive the round trip: %+v", got.Topology)
	}

	versioned, err := store.GetPlanVersion(ctx, "demo", plan.Metadata.Version)
	if err != nil {
		t.Fatalf("GetPlanVersion: %v", err)
	}
	if versioned.Metadata.Version != plan.Metadata.Version {
		t.Errorf("versioned copy mismatch: %+v", versioned.Metadata)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())
	plan := demoPlan(t)

	if err := store.SavePlan(ctx, "demo", plan); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}
	if err := store.DeletePlan(ctx, "demo"); err != nil {
		t.Fatalf("DeletePlan: %v", err)
	}
	if _, err := store.GetPlan(ctx, "demo"); err == nil {
		t.Error("expected error after delete")
	}
	// Deleting again is not an error.
	if err := store.DeletePlan(ctx, "demo"); err != nil {
		t.Errorf("DeletePlan (again): %v", err)
	}
}

func TestValidatePlan(t *testing.T) {
	if err := ValidatePlan(nil); err == nil {
		t.Error("nil plan should be rejected")
	}
	if err := ValidatePlan(&Plan{Metadata: PlanMetadata{App: "demo"}}); err == nil {
		t.Error("plan without topology should be rejected")
	}
	plan := demoPlan(t)
	plan.Metadata.App = "other"
	if err := ValidatePlan(plan); err == nil {
		t.Error("app/topology name mismatch should be rejected")
	}
}
