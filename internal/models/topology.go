package models

import (
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	rdstypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
)

// SecurityGroup is one node of the security topology. Rules reference other
// groups by name through UserIdGroupPairs, which is what lets the set form a
// graph instead of a linear initialization chain.
type SecurityGroup struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	VpcID       string                  `json:"vpc_id"`
	Ingress     []ec2types.IpPermission `json:"ingress"`
	Tags        map[string]string       `json:"tags,omitempty"`
}

// SecurityGroupSet holds the three or four groups of one topology.
// RDS is nil unless the database feature is enabled.
type SecurityGroupSet struct {
	ELB    *SecurityGroup `json:"elb"`
	ASG    *SecurityGroup `json:"asg"`
	RDS    *SecurityGroup `json:"rds,omitempty"`
	Client *SecurityGroup `json:"client"`
}

// LoadBalancer is the classic load balancer fronting the pool.
type LoadBalancer struct {
	Name           string               `json:"name"`
	Listeners      []elbtypes.Listener  `json:"listeners"`
	HealthCheck    elbtypes.HealthCheck `json:"health_check"`
	Subnets        []string             `json:"subnets"`
	SecurityGroups []string             `json:"security_groups"`
	Tags           []elbtypes.Tag       `json:"tags,omitempty"`
}

// LaunchTemplate is the instance specification for the pool.
type LaunchTemplate struct {
	Name            string                `json:"name"`
	Image           string                `json:"image"`
	InstanceType    ec2types.InstanceType `json:"instance_type"`
	KeyName         string                `json:"key_name"`
	SecurityGroups  []string              `json:"security_groups"`
	InstanceProfile string                `json:"instance_profile"`
	UserData        string                `json:"user_data"`
	AssignPublicIP  bool                  `json:"assign_public_ip"`
}

// AutoScalingPool is the managed compute pool behind the load balancer.
type AutoScalingPool struct {
	Name                string                    `json:"name"`
	LaunchTemplate      LaunchTemplate            `json:"launch_template"`
	MinSize             int32                     `json:"min_size"`
	MaxSize             int32                     `json:"max_size"`
	DefaultCooldown     int32                     `json:"default_cooldown"`
	HealthCheckType     string                    `json:"health_check_type"`
	TerminationPolicies []string                  `json:"termination_policies"`
	EnabledMetrics      []asgtypes.EnabledMetric  `json:"enabled_metrics"`
	Subnets             []string                  `json:"subnets"`
	LoadBalancerNames   []string                  `json:"load_balancer_names"`
	Tags                map[string]string         `json:"tags,omitempty"`
}

// DBSubnetGroup spans the subnets the database instance may live in.
type DBSubnetGroup struct {
	Name    string   `json:"name"`
	Subnets []string `json:"subnets"`
}

// DatabaseInstance is the optional relational database.
type DatabaseInstance struct {
	Identifier         string         `json:"identifier"`
	Engine             string         `json:"engine"`
	InstanceClass      string         `json:"instance_class"`
	StorageType        string         `json:"storage_type"`
	AllocatedStorage   int32          `json:"allocated_storage"`
	MultiAZ            bool           `json:"multi_az"`
	Name               string         `json:"name"`
	MasterUsername     string         `json:"master_username"`
	MasterPassword     string         `json:"master_password"` // secret reference
	SubnetGroup        DBSubnetGroup  `json:"subnet_group"`
	SecurityGroups     []string       `json:"security_groups"`
	PubliclyAccessible bool           `json:"publicly_accessible"`
	Tags               []rdstypes.Tag `json:"tags,omitempty"`
}

// Table is the optional key-value table.
type Table struct {
	Name                 string                         `json:"name"`
	AttributeDefinitions []ddbtypes.AttributeDefinition `json:"attribute_definitions"`
	KeySchema            []ddbtypes.KeySchemaElement    `json:"key_schema"`
	Throughput           ddbtypes.ProvisionedThroughput `json:"throughput"`
	Tags                 []ddbtypes.Tag                 `json:"tags,omitempty"`
}

// Policy is one named policy document attached to the role.
type Policy struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

// PolicySet is the role, its policies and the instance profile that wraps
// the role. The compute-management policy is always present; table and
// database policies appear iff their features are enabled.
type PolicySet struct {
	RoleName         string         `json:"role_name"`
	AssumeRolePolicy string         `json:"assume_role_policy"`
	Policies         []Policy       `json:"policies"`
	InstanceProfile  string         `json:"instance_profile"`
	Tags             []iamtypes.Tag `json:"tags,omitempty"`
}

// Has reports whether a policy with the given name is in the set.
func (ps *PolicySet) Has(name string) bool {
	for _, p := range ps.Policies {
		if p.Name == name {
			return true
		}
	}
	return false
}

// VMApp is the fully resolved description of one application topology. It is
// the desired-state payload handed to the external reconciliation engine;
// nothing in this module mutates it after assembly.
type VMApp struct {
	Name           string            `json:"name"`
	Region         string            `json:"region"`
	ELB            LoadBalancer      `json:"elb"`
	ASG            AutoScalingPool   `json:"asg"`
	SecurityGroups SecurityGroupSet  `json:"security_groups"`
	Policies       PolicySet         `json:"policies"`
	DB             *DatabaseInstance `json:"db,omitempty"`
	Table          *Table            `json:"table,omitempty"`
}
