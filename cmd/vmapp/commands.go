package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hemantobora/vmapp/internal/builders"
	"github.com/hemantobora/vmapp/internal/models"
	"github.com/hemantobora/vmapp/internal/state"
	"github.com/hemantobora/vmapp/internal/topology"
)

// runPlan resolves a configuration file and prints (or writes) the plan.
func runPlan(configPath, outPath string) error {
	cfg, err := models.LoadConfiguration(configPath)
	if err != nil {
		return err
	}
	app, err := topology.Assembler{}.Build(*cfg)
	if err != nil {
		return err
	}
	plan := state.NewPlan(app)
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if outPath != "" {
		if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write plan to '%s': %w", outPath, err)
		}
		fmt.Printf("✅ Plan written: %s (app %s, region %s)\n", outPath, app.Name, app.Region)
		return nil
	}
	fmt.Println(string(data))
	return nil
}

// runInit interactively builds a configuration file.
func runInit(outPath string) error {
	cfg, err := builders.BuildConfigurationInteractive()
	if err != nil {
		return err
	}
	if err := models.WriteConfiguration(outPath, cfg); err != nil {
		return err
	}
	fmt.Printf("✅ Configuration written: %s\n", outPath)
	fmt.Println("💡 Next: vmapp plan --config " + outPath)
	return nil
}

// runPublish resolves a configuration and uploads the plan to the artifact
// bucket for the reconciliation engine.
func runPublish(ctx context.Context, configPath, profile string) error {
	cfg, err := models.LoadConfiguration(configPath)
	if err != nil {
		return err
	}
	app, err := topology.Assembler{}.Build(*cfg)
	if err != nil {
		return err
	}

	fmt.Println("🔍 Validating AWS credentials...")
	if _, err := state.ValidateCredentials(ctx, profile); err != nil {
		return fmt.Errorf("AWS credentials are not usable: %w", err)
	}

	store, err := state.NewS3Store(ctx, app.Name, profile)
	if err != nil {
		return err
	}
	plan := state.NewPlan(app)
	if err := store.SavePlan(ctx, app.Name, plan); err != nil {
		return err
	}
	fmt.Printf("✅ Plan %s published to s3://%s for app '%s'\n",
		plan.Metadata.Version, store.BucketName(), app.Name)
	fmt.Println("📋 The reconciliation engine will pick it up from there.")
	return nil
}

// runStatus shows the currently published plan for an app.
func runStatus(ctx context.Context, appName, profile string) error {
	store, err := state.NewS3Store(ctx, appName, profile)
	if err != nil {
		return err
	}
	plan, err := store.GetPlan(ctx, appName)
	if err != nil {
		return fmt.Errorf("no published plan for '%s': %w", appName, err)
	}

	fmt.Printf("📊 Published plan for %s\n", appName)
	fmt.Printf("   Version: %s (created %s)\n",
		plan.Metadata.Version, plan.Metadata.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("   Region:  %s\n", plan.Metadata.Region)
	top := plan.Topology
	fmt.Printf("   ELB:     %s (%d listeners)\n", top.ELB.Name, len(top.ELB.Listeners))
	fmt.Printf("   Pool:    %s (min %d / max %d)\n", top.ASG.Name, top.ASG.MinSize, top.ASG.MaxSize)
	if top.DB != nil {
		fmt.Printf("   DB:      %s (%s, %s)\n", top.DB.Identifier, top.DB.Engine, top.DB.InstanceClass)
	} else {
		fmt.Println("   DB:      (disabled)")
	}
	if top.Table != nil {
		fmt.Printf("   Table:   %s\n", top.Table.Name)
	} else {
		fmt.Println("   Table:   (disabled)")
	}
	return nil
}
