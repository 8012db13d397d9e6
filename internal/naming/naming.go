// Package naming centralizes the resource-name rules shared by the topology
// builders and the publishing layer. Every resource of one application hangs
// off the application name, so the rules live in one place.
package naming

import (
	"fmt"
	"regexp"
	"strings"
)

const bucketPrefix = "vmapp-plans-"

var appNameRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateAppName validates an application name against cloud naming
// constraints (the name ends up in bucket names and DNS labels).
func ValidateAppName(name string) error {
	if name == "" {
		return fmt.Errorf("application name cannot be empty")
	}
	if len(name) > 32 {
		return fmt.Errorf("application name too long (max 32 characters): %s", name)
	}
	if !appNameRe.MatchString(name) {
		return fmt.Errorf("application name must start with a letter and contain only lowercase letters, digits and hyphens: %s", name)
	}
	if strings.HasSuffix(name, "-") {
		return fmt.Errorf("application name cannot end with a hyphen: %s", name)
	}
	return nil
}

func LoadBalancer(app string) string    { return app + "-elb" }
func LaunchTemplate(app string) string  { return app + "-lt" }
func AutoScalingPool(app string) string { return app + "-asg" }

func ELBSecurityGroup(app string) string    { return app + "-elbSg" }
func ASGSecurityGroup(app string) string    { return app + "-asgSg" }
func RDSSecurityGroup(app string) string    { return app + "-rdsSg" }
func ClientSecurityGroup(app string) string { return app + "-clientSg" }

func DatabaseInstance(app string) string { return app + "-dbInstance" }
func DBSubnetGroup(app string) string    { return app + "-dbSubnetGroup" }
func Table(app string) string            { return app + "-table" }

func Role(app string) string            { return app + "-role" }
func InstanceProfile(app string) string { return app + "-instanceProfile" }
func ComputePolicy(app string) string   { return app + "-ec2Policy" }
func TablePolicy(app string) string     { return app + "-tablePolicy" }
func DatabasePolicy(app string) string  { return app + "-dbPolicy" }

// Bucket returns the artifact bucket holding published plans for an app.
// The name is deterministic so the reconciliation engine can find it.
func Bucket(app string) string { return bucketPrefix + app }

// AppFromBucket extracts the application name from an artifact bucket name.
func AppFromBucket(bucket string) string {
	return strings.TrimPrefix(bucket, bucketPrefix)
}
