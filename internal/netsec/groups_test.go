package netsec

import (
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/hemantobora/vmapp/internal/models"
)

// ruleKey flattens one ingress permission into a comparable summary:
// port plus either the source group name or the source CIDR.
type ruleKey struct {
	port   int32
	source string
}

func ruleKeys(t *testing.T, group *models.SecurityGroup) []ruleKey {
	t.Helper()
	keys := make([]ruleKey, 0, len(group.Ingress))
	for _, perm := range group.Ingress {
		if aws.ToString(perm.IpProtocol) != "tcp" {
			t.Errorf("%s: expected tcp, got %q", group.Name, aws.ToString(perm.IpProtocol))
		}
		if aws.ToInt32(perm.FromPort) != aws.ToInt32(perm.ToPort) {
			t.Errorf("%s: expected single-port rule, got %d-%d",
				group.Name, aws.ToInt32(perm.FromPort), aws.ToInt32(perm.ToPort))
		}
		key := ruleKey{port: aws.ToInt32(perm.FromPort)}
		switch {
		case len(perm.UserIdGroupPairs) == 1:
			key.source = aws.ToString(perm.UserIdGroupPairs[0].GroupName)
		case len(perm.IpRanges) == 1:
			key.source = aws.ToString(perm.IpRanges[0].CidrIp)
		default:
			t.Errorf("%s: rule has no single source: %+v", group.Name, perm)
		}
		keys = append(keys, key)
	}
	return keys
}

func TestBuildGroupRules(t *testing.T) {
	set := Build("demo", "vpc-1", true, nil)

	elbRules := ruleKeys(t, set.ELB)
	wantELB := []ruleKey{{80, "0.0.0.0/0"}, {443, "0.0.0.0/0"}}
	if !reflect.DeepEqual(elbRules, wantELB) {
		t.Errorf("elbSg rules: got %v, want %v", elbRules, wantELB)
	}

	asgRules := ruleKeys(t, set.ASG)
	wantASG := []ruleKey{{80, "demo-elbSg"}, {443, "demo-elbSg"}, {22, "demo-clientSg"}}
	if !reflect.DeepEqual(asgRules, wantASG) {
		t.Errorf("asgSg rules: got %v, want %v", asgRules, wantASG)
	}

	rdsRules := ruleKeys(t, set.RDS)
	wantRDS := []ruleKey{{3306, "demo-asgSg"}, {3306, "demo-clientSg"}}
	if !reflect.DeepEqual(rdsRules, wantRDS) {
		t.Errorf("rdsSg rules: got %v, want %v", rdsRules, wantRDS)
	}

	if len(set.Client.Ingress) != 0 {
		t.Errorf("clientSg must have no ingress rules, got %v", set.Client.Ingress)
	}
}

func TestBuildWithoutDatabase(t *testing.T) {
	set := Build("demo", "vpc-1", false, nil)
	if set.RDS != nil {
		t.Error("rdsSg must not exist when the database feature is disabled")
	}
	if set.ELB == nil || set.ASG == nil || set.Client == nil {
		t.Fatal("elb/asg/client groups must always exist")
	}
}

func TestBuildGroupIdentity(t *testing.T) {
	set := Build("demo", "vpc-42", true, map[string]string{"env": "test"})
	for _, group := range []*models.SecurityGroup{set.ELB, set.ASG, set.RDS, set.Client} {
		if group.VpcID != "vpc-42" {
			t.Errorf("%s: expected vpc-42, got %q", group.Name, group.VpcID)
		}
		if group.Tags["env"] != "test" {
			t.Errorf("%s: extra tags should be carried, got %v", group.Name, group.Tags)
		}
		if group.Tags["Name"] != group.Name {
			t.Errorf("%s: Name tag should match the group name, got %v", group.Name, group.Tags)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	first := Build("demo", "vpc-1", true, map[string]string{"env": "test"})
	second := Build("demo", "vpc-1", true, map[string]string{"env": "test"})
	if !reflect.DeepEqual(first, second) {
		t.Error("building the same topology twice should be identical")
	}
}
