package policy

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestComposeAlwaysIncludesComputePolicy(t *testing.T) {
	set := Compose("demo", "us-east-1", false, false, nil)
	if len(set.Policies) != 1 {
		t.Fatalf("expected only the compute policy, got %d policies", len(set.Policies))
	}
	if !set.Has("demo-ec2Policy") {
		t.Error("compute policy missing")
	}
	if !strings.Contains(set.Policies[0].Document, `"ec2:*"`) {
		t.Errorf("compute policy should allow all compute management:\n%s", set.Policies[0].Document)
	}
}

func TestComposeFeatureGating(t *testing.T) {
	cases := []struct {
		db, table bool
		wantNames []string
	}{
		{false, false, []string{"demo-ec2Policy"}},
		{true, false, []string{"demo-ec2Policy", "demo-dbPolicy"}},
		{false, true, []string{"demo-ec2Policy", "demo-tablePolicy"}},
		{true, true, []string{"demo-ec2Policy", "demo-tablePolicy", "demo-dbPolicy"}},
	}
	for _, tc := range cases {
		set := Compose("demo", "us-east-1", tc.db, tc.table, nil)
		var names []string
		for _, p := range set.Policies {
			names = append(names, p.Name)
		}
		if !reflect.DeepEqual(names, tc.wantNames) {
			t.Errorf("db=%v table=%v: got %v, want %v", tc.db, tc.table, names, tc.wantNames)
		}
	}
}

func TestComposeRendersScopes(t *testing.T) {
	set := Compose("demo", "eu-west-1", true, true, nil)
	for _, p := range set.Policies {
		if strings.Contains(p.Document, "{{") {
			t.Errorf("%s: unrendered placeholder in document:\n%s", p.Name, p.Document)
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(p.Document), &doc); err != nil {
			t.Errorf("%s: document is not valid JSON: %v", p.Name, err)
		}
	}
	find := func(name string) string {
		t.Helper()
		for _, p := range set.Policies {
			if p.Name == name {
				return p.Document
			}
		}
		t.Fatalf("policy %s not found", name)
		return ""
	}
	if doc := find("demo-tablePolicy"); !strings.Contains(doc, "arn:aws:dynamodb:eu-west-1:*:table/demo-table") {
		t.Errorf("table policy should be scoped to demo-table in eu-west-1:\n%s", doc)
	}
	if doc := find("demo-dbPolicy"); !strings.Contains(doc, "arn:aws:rds:eu-west-1:*:db:demo-dbInstance") {
		t.Errorf("db policy should be scoped to demo-dbInstance in eu-west-1:\n%s", doc)
	}
}

func TestComposeRoleAndProfile(t *testing.T) {
	set := Compose("demo", "us-east-1", false, false, nil)
	if set.RoleName != "demo-role" {
		t.Errorf("role name: got %q", set.RoleName)
	}
	if set.InstanceProfile != "demo-instanceProfile" {
		t.Errorf("instance profile: got %q", set.InstanceProfile)
	}
	if !strings.Contains(set.AssumeRolePolicy, "ec2.amazonaws.com") {
		t.Errorf("trust policy must fix the principal to the compute service:\n%s", set.AssumeRolePolicy)
	}
}

type upperRenderer struct{}

func (upperRenderer) Render(template string, fields map[string]string) string {
	out := template
	for k, v := range fields {
		out = strings.ReplaceAll(out, "{{"+k+"}}", strings.ToUpper(v))
	}
	return out
}

func TestComposeCustomRenderer(t *testing.T) {
	set := Compose("demo", "us-east-1", true, false, upperRenderer{})
	for _, p := range set.Policies {
		if p.Name == "demo-dbPolicy" && !strings.Contains(p.Document, "DEMO-dbInstance") {
			t.Errorf("custom renderer should be used:\n%s", p.Document)
		}
	}
}
