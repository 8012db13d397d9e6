// Package builders provides the interactive Configuration builder used by
// `vmapp init`.
package builders

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/hemantobora/vmapp/internal/models"
	"github.com/hemantobora/vmapp/internal/naming"
	"github.com/hemantobora/vmapp/internal/resolve"
)

// BuildConfigurationInteractive walks the operator through the minimal set
// of questions needed to produce a Configuration record. Everything left
// blank is filled by the resolver later.
func BuildConfigurationInteractive() (*models.Configuration, error) {
	cfg := &models.Configuration{}

	if err := survey.AskOne(&survey.Input{
		Message: "Application name:",
		Help:    "Used as the prefix for every resource name",
	}, &cfg.Name, survey.WithValidator(appNameValidator)); err != nil {
		return nil, err
	}

	var vpcID, region string
	if err := survey.AskOne(&survey.Input{
		Message: "VPC id:",
	}, &vpcID, survey.WithValidator(survey.Required)); err != nil {
		return nil, err
	}
	if err := survey.AskOne(&survey.Select{
		Message: "VPC region:",
		Options: resolve.SupportedRegions(),
		Default: "us-east-1",
	}, &region); err != nil {
		return nil, err
	}

	var subnetIDs string
	if err := survey.AskOne(&survey.Input{
		Message: "Subnet ids (comma-separated):",
		Help:    "At least one subnet; all must belong to the VPC above",
	}, &subnetIDs, survey.WithValidator(survey.Required)); err != nil {
		return nil, err
	}
	for _, id := range strings.Split(subnetIDs, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		cfg.Subnets = append(cfg.Subnets, models.Subnet{
			ID:  id,
			VPC: models.VPC{ID: vpcID, Region: region},
		})
	}
	if len(cfg.Subnets) == 0 {
		return nil, &models.MissingDependencyError{
			Field:  "vpc",
			Needs:  "subnets",
			Reason: "subnet list is empty, no vpc is derivable",
		}
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Instance type (blank for default):",
	}, &cfg.InstanceType); err != nil {
		return nil, err
	}
	if err := survey.AskOne(&survey.Input{
		Message: "Key pair name (blank to reuse the app name):",
	}, &cfg.KeyName); err != nil {
		return nil, err
	}

	if err := survey.AskOne(&survey.Confirm{
		Message: "Enable the relational database?",
	}, &cfg.Database.Enabled); err != nil {
		return nil, err
	}
	if cfg.Database.Enabled {
		if err := askDatabaseOptions(&cfg.Database); err != nil {
			return nil, err
		}
	}

	if err := survey.AskOne(&survey.Confirm{
		Message: "Enable the key-value table?",
	}, &cfg.Table.Enabled); err != nil {
		return nil, err
	}
	if cfg.Table.Enabled {
		if err := askTableOptions(&cfg.Table); err != nil {
			return nil, err
		}
	}

	fmt.Printf("\n📋 Configuration Summary:\n")
	fmt.Printf("   App: %s (%d subnet(s) in %s)\n", cfg.Name, len(cfg.Subnets), region)
	fmt.Printf("   Database: %v, Table: %v\n", cfg.Database.Enabled, cfg.Table.Enabled)

	var confirm bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Save this configuration?",
		Default: true,
	}, &confirm); err != nil {
		return nil, err
	}
	if !confirm {
		return nil, fmt.Errorf("configuration cancelled by user")
	}
	return cfg, nil
}

func askDatabaseOptions(db *models.DatabaseOptions) error {
	if err := survey.AskOne(&survey.Input{
		Message: "Database engine (blank for mysql):",
	}, &db.Engine); err != nil {
		return err
	}
	if err := survey.AskOne(&survey.Input{
		Message: "Database name (blank to reuse the app name):",
	}, &db.Name); err != nil {
		return err
	}
	var multiAZ bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Deploy the database across multiple availability zones?",
	}, &multiAZ); err != nil {
		return err
	}
	if multiAZ {
		db.MultiAZ = &multiAZ
	}
	return nil
}

func askTableOptions(table *models.TableOptions) error {
	var throughput string
	if err := survey.AskOne(&survey.Input{
		Message: "Table throughput as read/write units (blank for 10/10):",
	}, &throughput, survey.WithValidator(throughputValidator)); err != nil {
		return err
	}
	read, write, ok := parseThroughput(throughput)
	if ok {
		table.ReadCapacity = read
		table.WriteCapacity = write
	}
	return nil
}

func appNameValidator(ans interface{}) error {
	name, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected a string")
	}
	return naming.ValidateAppName(name)
}

func throughputValidator(ans interface{}) error {
	value, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected a string")
	}
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, _, ok := parseThroughput(value); !ok {
		return fmt.Errorf("expected read/write units, e.g. 25/5")
	}
	return nil
}

// parseThroughput parses "read/write" unit pairs like "25/5".
func parseThroughput(value string) (read, write int64, ok bool) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	read, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil || read <= 0 {
		return 0, 0, false
	}
	write, err = strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil || write <= 0 {
		return 0, 0, false
	}
	return read, write, true
}
