// Package resolve turns a partially-specified Configuration into a
// ResolvedConfiguration with every field concrete. Resolution is an ordered
// cascade: some defaults read fields resolved earlier in the same pass
// (subnet → vpc → region → image), so the order here is load-bearing.
package resolve

import (
	"github.com/hemantobora/vmapp/internal/models"
)

// Secrets resolves a secret key to the reference string embedded in the
// resolved configuration. The secret value itself is never read here; the
// reconciliation engine dereferences it at apply time.
type Secrets interface {
	RefFor(key string) string
}

// SSMRefs is the default Secrets implementation, producing SSM-style
// dynamic references.
type SSMRefs struct{}

func (SSMRefs) RefFor(key string) string { return "{{resolve:ssm-secure:" + key + "}}" }

const (
	defaultInstanceType     = "t2.micro"
	defaultDatabaseEngine   = "mysql"
	defaultDatabaseClass    = "db.t2.micro"
	defaultStorageType      = "gp2"
	defaultAllocatedStorage = int32(10)
	defaultMasterUsername   = "root"
	defaultReadCapacity     = int64(10)
	defaultWriteCapacity    = int64(10)

	masterPasswordKey = "/rds/password"
)

// Defaults fills every unset optional field of cfg. It is purely functional:
// it reads cfg, derives the rest and returns a new record, never touching
// shared state. A nil secrets falls back to SSMRefs.
func Defaults(cfg models.Configuration, secrets Secrets) (models.ResolvedConfiguration, error) {
	if secrets == nil {
		secrets = SSMRefs{}
	}
	if err := cfg.Validate(); err != nil {
		return models.ResolvedConfiguration{}, err
	}
	if len(cfg.Subnets) == 0 {
		return models.ResolvedConfiguration{}, &models.MissingDependencyError{
			Field:  "vpc",
			Needs:  "subnets",
			Reason: "subnet list is empty, no vpc is derivable",
		}
	}

	// Network cascade: subnet → vpc → region → image.
	vpc := cfg.Subnets[0].VPC
	if cfg.VPC != nil {
		vpc = *cfg.VPC
	}
	region := vpc.Region
	if cfg.Region != "" {
		region = cfg.Region
	}
	image := cfg.Image
	if image == "" {
		derived, err := ImageFor(region)
		if err != nil {
			return models.ResolvedConfiguration{}, err
		}
		image = derived
	}

	// Name cascade: name → key name / database name.
	keyName := cfg.KeyName
	if keyName == "" {
		keyName = cfg.Name
	}

	instanceType := cfg.InstanceType
	if instanceType == "" {
		instanceType = defaultInstanceType
	}

	db := models.ResolvedDatabase{
		Engine:           orDefault(cfg.Database.Engine, defaultDatabaseEngine),
		InstanceClass:    orDefault(cfg.Database.InstanceClass, defaultDatabaseClass),
		StorageType:      orDefault(cfg.Database.StorageType, defaultStorageType),
		AllocatedStorage: cfg.Database.AllocatedStorage,
		Name:             orDefault(cfg.Database.Name, cfg.Name),
		MasterUsername:   orDefault(cfg.Database.MasterUsername, defaultMasterUsername),
		MasterPassword:   cfg.Database.MasterPassword,
	}
	if db.AllocatedStorage == 0 {
		db.AllocatedStorage = defaultAllocatedStorage
	}
	if cfg.Database.MultiAZ != nil {
		db.MultiAZ = *cfg.Database.MultiAZ
	}
	if db.MasterPassword == "" {
		db.MasterPassword = secrets.RefFor(masterPasswordKey)
	}

	table := models.ResolvedTable{
		ReadCapacity:  cfg.Table.ReadCapacity,
		WriteCapacity: cfg.Table.WriteCapacity,
	}
	if table.ReadCapacity == 0 {
		table.ReadCapacity = defaultReadCapacity
	}
	if table.WriteCapacity == 0 {
		table.WriteCapacity = defaultWriteCapacity
	}

	resolved := models.ResolvedConfiguration{
		Name:                     cfg.Name,
		Subnets:                  append([]models.Subnet(nil), cfg.Subnets...),
		VPC:                      vpc,
		Region:                   region,
		KeyName:                  keyName,
		Image:                    image,
		UserData:                 cfg.UserData,
		InstanceType:             instanceType,
		ManagementSecurityGroups: append([]string(nil), cfg.ManagementSecurityGroups...),
		DatabaseEnabled:          cfg.Database.Enabled,
		Database:                 db,
		TableEnabled:             cfg.Table.Enabled,
		Table:                    table,
		Tags:                     copyTags(cfg.Tags),
	}
	return resolved, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func copyTags(tags map[string]string) map[string]string {
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}
