// Package policy composes the minimal permission set for the compute pool:
// one role, one instance profile, and one policy per enabled feature.
package policy

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"

	"github.com/hemantobora/vmapp/internal/models"
	"github.com/hemantobora/vmapp/internal/naming"
)

// Renderer substitutes named fields into a policy-document template.
// Templating is a collaborator so the documents can be produced by whatever
// engine the embedding system already uses.
type Renderer interface {
	Render(template string, fields map[string]string) string
}

// ReplacerRenderer is the default Renderer: plain {{field}} substitution.
type ReplacerRenderer struct{}

func (ReplacerRenderer) Render(template string, fields map[string]string) string {
	pairs := make([]string, 0, len(fields)*2)
	for k, v := range fields {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Compose builds the policy set for an application. The compute-management
// policy is always attached; the table and database policies are attached
// iff their resolved feature flags are set. A nil renderer falls back to
// ReplacerRenderer.
func Compose(app, region string, databaseEnabled, tableEnabled bool, r Renderer) models.PolicySet {
	if r == nil {
		r = ReplacerRenderer{}
	}
	fields := map[string]string{"name": app, "region": region}

	roleName := naming.Role(app)
	set := models.PolicySet{
		RoleName:         roleName,
		AssumeRolePolicy: assumeRoleTemplate,
		InstanceProfile:  naming.InstanceProfile(app),
		Tags: []iamtypes.Tag{
			{Key: aws.String("Name"), Value: aws.String(roleName)},
		},
	}

	set.Policies = append(set.Policies, models.Policy{
		Name:     naming.ComputePolicy(app),
		Document: r.Render(computeManagementTemplate, fields),
	})
	if tableEnabled {
		set.Policies = append(set.Policies, models.Policy{
			Name:     naming.TablePolicy(app),
			Document: r.Render(tableAccessTemplate, fields),
		})
	}
	if databaseEnabled {
		set.Policies = append(set.Policies, models.Policy{
			Name:     naming.DatabasePolicy(app),
			Document: r.Render(databaseConnectTemplate, fields),
		})
	}
	return set
}
