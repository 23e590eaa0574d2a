package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/utils/ptr"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

func TestCICDWithoutWorkflows(t *testing.T) {
	got := byID(newCICD().Evaluate(&model.RepoEvidence{}))
	assert.Equal(t, model.StatusFailed, got["CICD-001"].Status)
	assert.Equal(t, "No workflows exist; cannot evaluate deployment automation.", got["CICD-006"].Detail)
	assert.Equal(t, model.StatusFailed, got["CICD-014"].Status)
	assert.Equal(t, model.StatusWarning, got["CICD-007"].Status)
}

func TestCICDStageDetection(t *testing.T) {
	ev := &model.RepoEvidence{Workflows: []model.Workflow{
		{Name: "build", TriggerEvents: []string{"push"}, HasTests: true},
		{Name: "release", TriggerEvents: []string{"workflow_dispatch"}, HasDeploy: true},
	}}
	got := byID(newCICD().Evaluate(ev))

	assert.Equal(t, model.Evidence{"workflow_count": 2, "names": []string{"build", "release"}}, got["CICD-001"].Evidence)
	assert.Equal(t, model.StatusFailed, got["CICD-002"].Status)
	assert.Equal(t, "No workflow triggers on pull_request events.", got["CICD-002"].Detail)
	assert.Equal(t, model.Evidence{"test_workflow_names": []string{"build"}}, got["CICD-003"].Evidence)
	assert.Equal(t, model.StatusFailed, got["CICD-004"].Status)
	assert.Equal(t, model.StatusPassed, got["CICD-006"].Status)
	assert.Equal(t, model.StatusWarning, got["CICD-014"].Status)
}

func TestContainerChecksNeedDockerfile(t *testing.T) {
	got := newContainerSecurity().Evaluate(&model.RepoEvidence{})
	assert.Equal(t, model.StatusFailed, got[0].Status)
	for _, v := range got[1:] {
		assert.Equal(t, model.StatusNotApplicable, v.Status, v.Check.ID)
		assert.Equal(t, "Not applicable: no Dockerfile detected in this repository.", v.Detail)
	}
}

func TestContainerBaseImages(t *testing.T) {
	ev := &model.RepoEvidence{HasDockerfile: true}
	got := byID(newContainerSecurity().Evaluate(ev))
	assert.Equal(t, model.StatusWarning, got["CNTR-002"].Status)
	assert.Equal(t, model.StatusWarning, got["CNTR-003"].Status)
	assert.Equal(t, model.StatusFailed, got["CNTR-006"].Status)

	ev.ContainerBaseImages = []string{
		"golang:1.25",
		"gcr.io/distroless/static@sha256:abc123",
	}
	got = byID(newContainerSecurity().Evaluate(ev))
	assert.Equal(t, model.StatusPassed, got["CNTR-002"].Status)
	assert.Equal(t, model.StatusFailed, got["CNTR-003"].Status)
	assert.Equal(t, model.Evidence{"unpinned_images": []string{"golang:1.25"}}, got["CNTR-003"].Evidence)

	ev.ContainerBaseImages = []string{"registry.internal.example:5000/base@sha256:def"}
	got = byID(newContainerSecurity().Evaluate(ev))
	assert.Equal(t, model.StatusFailed, got["CNTR-002"].Status)
	assert.Equal(t, model.StatusPassed, got["CNTR-003"].Status)
}

func TestImageRegistry(t *testing.T) {
	cases := map[string]string{
		"alpine":                         "docker.io",
		"library/alpine:3.20":            "docker.io",
		"ghcr.io/acme/app:1":             "ghcr.io",
		"localhost/app":                  "localhost",
		"Registry.Example.com:443/x/y:z": "registry.example.com:443",
	}
	for in, want := range cases {
		if got := imageRegistry(in); got != want {
			t.Errorf("imageRegistry(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestComposeChangesResourceLimitWording(t *testing.T) {
	got := byID(newContainerSecurity().Evaluate(&model.RepoEvidence{HasDockerfile: true, HasDockerCompose: true}))
	assert.Equal(t, model.StatusWarning, got["CNTR-010"].Status)
	assert.Contains(t, got["CNTR-010"].Detail, "docker-compose")
}

func TestSASTScanWorkflows(t *testing.T) {
	got := byID(newSAST().Evaluate(&model.RepoEvidence{}))
	assert.Equal(t, model.StatusNotApplicable, got["SAST-002"].Status)
	assert.Equal(t, model.StatusNotApplicable, got["SAST-003"].Status)

	got = byID(newSAST().Evaluate(&model.RepoEvidence{Workflows: []model.Workflow{{Name: "ci"}}}))
	assert.Equal(t, model.StatusFailed, got["SAST-002"].Status)
	assert.Equal(t, model.Evidence{"workflow_count": 1}, got["SAST-002"].Evidence)
}

func TestDependencyAutomation(t *testing.T) {
	got := byID(newDependencies().Evaluate(hardenedRepo()))
	assert.Equal(t, model.StatusPassed, got["DEP-001"].Status)
	assert.Equal(t, model.StatusPassed, got["DEP-007"].Status)
	assert.Equal(t, model.StatusPassed, got["DEP-009"].Status)
	assert.Nil(t, got["DEP-009"].Evidence)
	assert.Equal(t, model.StatusWarning, got["DEP-004"].Status)

	got = byID(newDependencies().Evaluate(nil))
	assert.Equal(t, model.StatusNotApplicable, got["DEP-002"].Status)
	assert.Equal(t, model.StatusFailed, got["DEP-009"].Status)
}

func TestDisasterRecoveryIaCEvidence(t *testing.T) {
	got := byID(newDisasterRecovery().Evaluate(hardenedRepo()))
	assert.Equal(t, model.StatusPassed, got["DR-007"].Status)
	assert.Equal(t, model.Evidence{"iac_tool": "terraform"}, got["DR-007"].Evidence)

	got = byID(newDisasterRecovery().Evaluate(&model.RepoEvidence{HasSLADocument: true}))
	assert.Equal(t, model.StatusPassed, got["DR-004"].Status)
	assert.Equal(t, model.StatusPassed, got["DR-005"].Status)
	assert.Equal(t, model.StatusFailed, got["DR-007"].Status)
}

func TestCollaborationSignals(t *testing.T) {
	got := byID(newCollaboration().Evaluate(&model.RepoEvidence{HasDiscussionsEnabled: true}))
	assert.Equal(t, model.StatusPassed, got["COLLAB-002"].Status)
	assert.Equal(t, model.StatusWarning, got["COLLAB-004"].Status)
	assert.Equal(t, model.StatusFailed, got["COLLAB-001"].Status)
}

func TestIdentityAccessFullOrg(t *testing.T) {
	got := byID(newIdentityAccess().EvaluateOrg(fullOrg()))
	for _, id := range []string{"IAM-001", "IAM-002", "IAM-003", "IAM-011"} {
		assert.Equal(t, model.StatusPassed, got[id].Status, id)
	}
	assert.Equal(t, model.StatusWarning, got["IAM-012"].Status)

	org := fullOrg()
	org.SecuritySettings.DefaultRepoPermission = ptr.To("Write")
	got = byID(newIdentityAccess().EvaluateOrg(org))
	assert.Equal(t, model.StatusFailed, got["IAM-011"].Status)
	assert.Equal(t, model.Evidence{"default_repo_permission": "write"}, got["IAM-011"].Evidence)
}

func TestPlatformArchitecture(t *testing.T) {
	got := byID(newPlatformArch().EvaluateOrg(fullOrg()))
	for _, id := range []string{"PLAT-001", "PLAT-002", "PLAT-003", "PLAT-004", "PLAT-005", "PLAT-006"} {
		assert.Equal(t, model.StatusPassed, got[id].Status, id)
	}
	assert.Equal(t, model.Evidence{"org_name": "acme"}, got["PLAT-001"].Evidence)

	got = byID(newPlatformArch().EvaluateOrg(&model.OrgEvidence{OrgName: "acme"}))
	assert.Equal(t, model.StatusFailed, got["PLAT-003"].Status)
	assert.Equal(t, model.StatusNotApplicable, got["PLAT-004"].Status)
	assert.Equal(t, model.StatusNotApplicable, got["PLAT-005"].Status)
}

func TestDefaultVisibilityReasons(t *testing.T) {
	org := &model.OrgEvidence{OrgName: "acme", SecuritySettings: &model.OrgSecuritySettings{
		DefaultRepoPermission: ptr.To("none"),
	}}
	got := byID(newPlatformArch().EvaluateOrg(org))["PLAT-004"]
	assert.Equal(t, model.StatusFailed, got.Status)
	assert.Equal(t, "Default repository visibility is not restricted: "+
		"members are allowed to create public repositories; "+
		"default repository permission is set to 'none'.", got.Detail)
	assert.Equal(t, true, got.Evidence["members_can_create_public_repos"])
}
