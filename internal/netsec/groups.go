// Package netsec builds the security-group topology for one application.
//
// The groups form a small reference graph, not a linear chain: the pool
// group trusts the load balancer and client groups, and the database group
// trusts the pool and client groups. Build therefore allocates every group
// node first and attaches rules in a second pass, so a rule can name a group
// that is declared after the one holding it.
package netsec

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/hemantobora/vmapp/internal/models"
	"github.com/hemantobora/vmapp/internal/naming"
)

// Build constructs the security-group set for an application. The database
// group exists iff databaseEnabled; callers must pass the single resolved
// flag, not re-read the configuration.
func Build(app, vpcID string, databaseEnabled bool, tags map[string]string) models.SecurityGroupSet {
	// First pass: allocate every group identity.
	elb := newGroup(naming.ELBSecurityGroup(app), "public ingress for the load balancer", vpcID, tags)
	asg := newGroup(naming.ASGSecurityGroup(app), "compute pool, reachable from the load balancer", vpcID, tags)
	client := newGroup(naming.ClientSecurityGroup(app), "operator-managed access boundary", vpcID, tags)
	var rds *models.SecurityGroup
	if databaseEnabled {
		rds = newGroup(naming.RDSSecurityGroup(app), "database, reachable from the compute pool", vpcID, tags)
	}

	// Second pass: attach the rule edges.
	elb.Ingress = []ec2types.IpPermission{
		fromAnywhere(80),
		fromAnywhere(443),
	}
	asg.Ingress = []ec2types.IpPermission{
		fromGroup(80, elb),
		fromGroup(443, elb),
		fromGroup(22, client),
	}
	if rds != nil {
		rds.Ingress = []ec2types.IpPermission{
			fromGroup(3306, asg),
			fromGroup(3306, client),
		}
	}
	// The client group keeps no ingress rules: operators attach their own.

	return models.SecurityGroupSet{ELB: elb, ASG: asg, RDS: rds, Client: client}
}

func newGroup(name, description, vpcID string, extra map[string]string) *models.SecurityGroup {
	tags := make(map[string]string, len(extra)+1)
	for k, v := range extra {
		tags[k] = v
	}
	tags["Name"] = name
	return &models.SecurityGroup{
		Name:        name,
		Description: description,
		VpcID:       vpcID,
		Tags:        tags,
	}
}

func fromAnywhere(port int32) ec2types.IpPermission {
	return ec2types.IpPermission{
		IpProtocol: aws.String("tcp"),
		FromPort:   aws.Int32(port),
		ToPort:     aws.Int32(port),
		IpRanges:   []ec2types.IpRange{{CidrIp: aws.String("0.0.0.0/0")}},
	}
}

func fromGroup(port int32, source *models.SecurityGroup) ec2types.IpPermission {
	return ec2types.IpPermission{
		IpProtocol: aws.String("tcp"),
		FromPort:   aws.Int32(port),
		ToPort:     aws.Int32(port),
		UserIdGroupPairs: []ec2types.UserIdGroupPair{
			{GroupName: aws.String(source.Name)},
		},
	}
}
