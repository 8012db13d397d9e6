// Package topology assembles the VMApp aggregate from a resolved
// configuration. Assembly is atomic: a failure in any stage returns before
// any partial aggregate escapes.
package topology

import (
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	elbtypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing/types"

	"github.com/hemantobora/vmapp/internal/models"
	"github.com/hemantobora/vmapp/internal/naming"
	"github.com/hemantobora/vmapp/internal/netsec"
	"github.com/hemantobora/vmapp/internal/policy"
	"github.com/hemantobora/vmapp/internal/resolve"
)

// Assembler runs the whole composition pipeline. The zero value uses the
// default Secrets and Renderer collaborators.
type Assembler struct {
	Secrets  resolve.Secrets
	Renderer policy.Renderer
}

// Build resolves a raw configuration and assembles the aggregate.
func (a Assembler) Build(cfg models.Configuration) (*models.VMApp, error) {
	rc, err := resolve.Defaults(cfg, a.Secrets)
	if err != nil {
		return nil, err
	}
	return a.BuildResolved(rc)
}

// BuildResolved assembles the aggregate from an already-resolved
// configuration. The feature flags were read exactly once by the resolver;
// the security-group set, the policy set and the resources below all branch
// on those resolved values.
func (a Assembler) BuildResolved(rc models.ResolvedConfiguration) (*models.VMApp, error) {
	groups := netsec.Build(rc.Name, rc.VPC.ID, rc.DatabaseEnabled, rc.Tags)
	policies := policy.Compose(rc.Name, rc.Region, rc.DatabaseEnabled, rc.TableEnabled, a.Renderer)
	return Assemble(rc, groups, policies)
}

// Assemble builds the aggregate from pre-built parts. It guards against
// feature drift between the parts and the resolved flags, which matters for
// callers that construct the security groups or policies themselves.
func Assemble(rc models.ResolvedConfiguration, groups models.SecurityGroupSet, policies models.PolicySet) (*models.VMApp, error) {
	if err := checkCombination(rc, groups, policies); err != nil {
		return nil, err
	}

	app := &models.VMApp{
		Name:           rc.Name,
		Region:         rc.Region,
		ELB:            buildLoadBalancer(rc, groups),
		ASG:            buildPool(rc, groups, policies),
		SecurityGroups: groups,
		Policies:       policies,
	}
	if rc.DatabaseEnabled {
		app.DB = buildDatabase(rc, groups)
	}
	if rc.TableEnabled {
		app.Table = buildTable(rc)
	}
	return app, nil
}

// checkCombination verifies that group and policy presence agree with the
// resolved feature flags before anything is built.
func checkCombination(rc models.ResolvedConfiguration, groups models.SecurityGroupSet, policies models.PolicySet) error {
	if hasRDS := groups.RDS != nil; hasRDS != rc.DatabaseEnabled {
		return &models.InvalidCombinationError{
			Feature: "database",
			Detail: fmt.Sprintf("database security group present=%v but the resolved database flag is %v",
				hasRDS, rc.DatabaseEnabled),
		}
	}
	if hasPolicy := policies.Has(naming.DatabasePolicy(rc.Name)); hasPolicy != rc.DatabaseEnabled {
		return &models.InvalidCombinationError{
			Feature: "database",
			Detail: fmt.Sprintf("database-connect policy present=%v but the resolved database flag is %v",
				hasPolicy, rc.DatabaseEnabled),
		}
	}
	if hasPolicy := policies.Has(naming.TablePolicy(rc.Name)); hasPolicy != rc.TableEnabled {
		return &models.InvalidCombinationError{
			Feature: "table",
			Detail: fmt.Sprintf("table-access policy present=%v but the resolved table flag is %v",
				hasPolicy, rc.TableEnabled),
		}
	}
	return nil
}

func buildLoadBalancer(rc models.ResolvedConfiguration, groups models.SecurityGroupSet) models.LoadBalancer {
	return models.LoadBalancer{
		Name: naming.LoadBalancer(rc.Name),
		Listeners: []elbtypes.Listener{
			tcpListener(80),
			tcpListener(443),
		},
		HealthCheck: elbtypes.HealthCheck{
			Target:             aws.String("TCP:80"),
			Interval:           aws.Int32(5),
			Timeout:            aws.Int32(2),
			UnhealthyThreshold: aws.Int32(2),
			HealthyThreshold:   aws.Int32(2),
		},
		Subnets:        rc.SubnetIDs(),
		SecurityGroups: []string{groups.ELB.Name},
		Tags:           elbTags(rc.Tags),
	}
}

func tcpListener(port int32) elbtypes.Listener {
	return elbtypes.Listener{
		Protocol:         aws.String("TCP"),
		LoadBalancerPort: port,
		InstanceProtocol: aws.String("TCP"),
		InstancePort:     aws.Int32(port),
	}
}

func elbTags(tags map[string]string) []elbtypes.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]elbtypes.Tag, 0, len(tags))
	for _, k := range sortedKeys(tags) {
		out = append(out, elbtypes.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}

func buildPool(rc models.ResolvedConfiguration, groups models.SecurityGroupSet, policies models.PolicySet) models.AutoScalingPool {
	template := models.LaunchTemplate{
		Name:            naming.LaunchTemplate(rc.Name),
		Image:           rc.Image,
		InstanceType:    ec2types.InstanceType(rc.InstanceType),
		KeyName:         rc.KeyName,
		SecurityGroups:  append([]string{groups.ASG.Name}, rc.ManagementSecurityGroups...),
		InstanceProfile: policies.InstanceProfile,
		UserData:        rc.UserData,
		AssignPublicIP:  true,
	}
	return models.AutoScalingPool{
		Name:                naming.AutoScalingPool(rc.Name),
		LaunchTemplate:      template,
		MinSize:             1,
		MaxSize:             2,
		DefaultCooldown:     300,
		HealthCheckType:     "EC2",
		TerminationPolicies: []string{"ClosestToNextInstanceHour"},
		EnabledMetrics: []asgtypes.EnabledMetric{
			{Metric: aws.String("GroupInServiceInstances"), Granularity: aws.String("1Minute")},
			{Metric: aws.String("GroupTotalInstances"), Granularity: aws.String("1Minute")},
		},
		Subnets:           rc.SubnetIDs(),
		LoadBalancerNames: []string{naming.LoadBalancer(rc.Name)},
		Tags:              rc.Tags,
	}
}

func buildDatabase(rc models.ResolvedConfiguration, groups models.SecurityGroupSet) *models.DatabaseInstance {
	return &models.DatabaseInstance{
		Identifier:       naming.DatabaseInstance(rc.Name),
		Engine:           rc.Database.Engine,
		InstanceClass:    rc.Database.InstanceClass,
		StorageType:      rc.Database.StorageType,
		AllocatedStorage: rc.Database.AllocatedStorage,
		MultiAZ:          rc.Database.MultiAZ,
		Name:             rc.Database.Name,
		MasterUsername:   rc.Database.MasterUsername,
		MasterPassword:   rc.Database.MasterPassword,
		SubnetGroup: models.DBSubnetGroup{
			Name:    naming.DBSubnetGroup(rc.Name),
			Subnets: rc.SubnetIDs(),
		},
		SecurityGroups:     []string{groups.RDS.Name},
		PubliclyAccessible: true,
	}
}

func buildTable(rc models.ResolvedConfiguration) *models.Table {
	return &models.Table{
		Name: naming.Table(rc.Name),
		AttributeDefinitions: []ddbtypes.AttributeDefinition{
			{AttributeName: aws.String("PropertyName"), AttributeType: ddbtypes.ScalarAttributeTypeS},
		},
		KeySchema: []ddbtypes.KeySchemaElement{
			{AttributeName: aws.String("PropertyName"), KeyType: ddbtypes.KeyTypeHash},
		},
		Throughput: ddbtypes.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(rc.Table.ReadCapacity),
			WriteCapacityUnits: aws.Int64(rc.Table.WriteCapacity),
		},
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
