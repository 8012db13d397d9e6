// Package models provides the shared records passed between the resolver,
// the topology builders and the publishing layer.
package models

import "fmt"

// VPC identifies a virtual network and the region it lives in. The region is
// carried on the record so the resolver can derive it without any API call.
type VPC struct {
	ID     string `json:"id"`
	Region string `json:"region"`
}

// Subnet identifies a subnet and the VPC it belongs to.
type Subnet struct {
	ID  string `json:"id"`
	VPC VPC    `json:"vpc"`
}

// DatabaseOptions are the caller-supplied relational database settings.
// Everything except Enabled is optional and defaulted by the resolver.
type DatabaseOptions struct {
	Enabled          bool   `json:"enabled"`
	Engine           string `json:"engine,omitempty"`
	InstanceClass    string `json:"instance_class,omitempty"`
	StorageType      string `json:"storage_type,omitempty"`
	AllocatedStorage int32  `json:"allocated_storage,omitempty"`
	MultiAZ          *bool  `json:"multi_az,omitempty"`
	Name             string `json:"name,omitempty"`
	MasterUsername   string `json:"master_username,omitempty"`
	MasterPassword   string `json:"master_password,omitempty"`
}

// TableOptions are the caller-supplied key-value table settings.
type TableOptions struct {
	Enabled       bool  `json:"enabled"`
	ReadCapacity  int64 `json:"read_capacity,omitempty"`
	WriteCapacity int64 `json:"write_capacity,omitempty"`
}

// Configuration is the input record for one topology. Only Name and Subnets
// are required; every other field is filled by the resolver. The record is
// treated as immutable once supplied.
type Configuration struct {
	Name                     string            `json:"name"`
	Subnets                  []Subnet          `json:"subnets"`
	VPC                      *VPC              `json:"vpc,omitempty"`
	Region                   string            `json:"region,omitempty"`
	KeyName                  string            `json:"key_name,omitempty"`
	Image                    string            `json:"image,omitempty"`
	UserData                 string            `json:"user_data,omitempty"`
	InstanceType             string            `json:"instance_type,omitempty"`
	ManagementSecurityGroups []string          `json:"management_security_groups,omitempty"`
	Database                 DatabaseOptions   `json:"database,omitempty"`
	Table                    TableOptions      `json:"table,omitempty"`
	Tags                     map[string]string `json:"tags,omitempty"`
}

// Validate checks the fields that must be present before resolution starts.
// Subnet-list emptiness is deliberately not checked here: the resolver
// reports it as a MissingDependencyError because it is what makes the vpc
// underivable.
func (c *Configuration) Validate() error {
	if c.Name == "" {
		return ValidationError{Field: "name", Message: "application name is required"}
	}
	for i, sn := range c.Subnets {
		if sn.ID == "" {
			return ValidationError{
				Field:   fmt.Sprintf("subnets[%d].id", i),
				Message: "subnet id is required",
			}
		}
		if sn.VPC.ID == "" {
			return ValidationError{
				Field:   fmt.Sprintf("subnets[%d].vpc.id", i),
				Message: "subnet vpc id is required",
			}
		}
	}
	if c.VPC != nil && c.VPC.ID == "" {
		return ValidationError{Field: "vpc.id", Message: "vpc id is required when vpc is supplied"}
	}
	return nil
}
