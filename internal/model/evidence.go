package model

import "time"

// Repository is the normalized identity of a scanned repository.
type Repository struct {
	ExternalID    string     `json:"externalId" yaml:"externalId"`
	Name          string     `json:"name" yaml:"name" validate:"required"`
	URL           string     `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	DefaultBranch string     `json:"defaultBranch,omitempty" yaml:"defaultBranch,omitempty"`
	IsPrivate     bool       `json:"isPrivate" yaml:"isPrivate"`
	Description   *string    `json:"description,omitempty" yaml:"description,omitempty"`
	Language      *string    `json:"language,omitempty" yaml:"language,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	Topics        []string   `json:"topics,omitempty" yaml:"topics,omitempty"`
}

// BranchProtection describes the rules on the default branch.
type BranchProtection struct {
	IsProtected             bool `json:"isProtected" yaml:"isProtected"`
	RequiredReviews         int  `json:"requiredReviews" yaml:"requiredReviews" validate:"gte=0"`
	DismissStaleReviews     bool `json:"dismissStaleReviews" yaml:"dismissStaleReviews"`
	RequireCodeOwnerReviews bool `json:"requireCodeOwnerReviews" yaml:"requireCodeOwnerReviews"`
	EnforceAdmins           bool `json:"enforceAdmins" yaml:"enforceAdmins"`
	AllowForcePushes        bool `json:"allowForcePushes" yaml:"allowForcePushes"`
	RequireSignedCommits    bool `json:"requireSignedCommits" yaml:"requireSignedCommits"`
}

// WorkflowRun is one recent execution of a CI workflow.
type WorkflowRun struct {
	Status          string     `json:"status" yaml:"status"`
	Conclusion      *string    `json:"conclusion,omitempty" yaml:"conclusion,omitempty"`
	DurationSeconds *float64   `json:"durationSeconds,omitempty" yaml:"durationSeconds,omitempty" validate:"omitempty,gte=0"`
	CreatedAt       *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Workflow is a CI workflow definition with the intents detected in it.
type Workflow struct {
	Name            string        `json:"name" yaml:"name"`
	Path            string        `json:"path,omitempty" yaml:"path,omitempty"`
	TriggerEvents   []string      `json:"triggerEvents,omitempty" yaml:"triggerEvents,omitempty"`
	HasTests        bool          `json:"hasTests" yaml:"hasTests"`
	HasLint         bool          `json:"hasLint" yaml:"hasLint"`
	HasSecurityScan bool          `json:"hasSecurityScan" yaml:"hasSecurityScan"`
	HasDeploy       bool          `json:"hasDeploy" yaml:"hasDeploy"`
	RecentRuns      []WorkflowRun `json:"recentRuns,omitempty" yaml:"recentRuns,omitempty" validate:"dive"`
}

// VulnerabilityAlert is one dependency vulnerability alert.
type VulnerabilityAlert struct {
	Severity string `json:"severity" yaml:"severity"`
	Package  string `json:"package" yaml:"package"`
	Title    string `json:"title" yaml:"title"`
	State    string `json:"state" yaml:"state"`
}

// SecurityFeatures is the security tooling state of a repository.
type SecurityFeatures struct {
	DependabotEnabled     bool                 `json:"dependabotEnabled" yaml:"dependabotEnabled"`
	SecretScanningEnabled bool                 `json:"secretScanningEnabled" yaml:"secretScanningEnabled"`
	CodeScanningEnabled   bool                 `json:"codeScanningEnabled" yaml:"codeScanningEnabled"`
	VulnerabilityAlerts   []VulnerabilityAlert `json:"vulnerabilityAlerts,omitempty" yaml:"vulnerabilityAlerts,omitempty" validate:"dive"`
	HasSecurityPolicy     bool                 `json:"hasSecurityPolicy" yaml:"hasSecurityPolicy"`
}

// PullRequest is a recent pull request sample.
type PullRequest struct {
	Number      int        `json:"number" yaml:"number"`
	Title       string     `json:"title,omitempty" yaml:"title,omitempty"`
	Additions   int        `json:"additions" yaml:"additions" validate:"gte=0"`
	Deletions   int        `json:"deletions" yaml:"deletions" validate:"gte=0"`
	ReviewCount int        `json:"reviewCount" yaml:"reviewCount" validate:"gte=0"`
	Merged      bool       `json:"merged" yaml:"merged"`
	CreatedAt   *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// RepoEvidence is everything collected about one repository before evaluation.
// Any optional part may be absent; evaluators degrade instead of erroring.
type RepoEvidence struct {
	Repo             Repository        `json:"repo" yaml:"repo"`
	BranchProtection *BranchProtection `json:"branchProtection,omitempty" yaml:"branchProtection,omitempty"`
	Workflows        []Workflow        `json:"workflows,omitempty" yaml:"workflows,omitempty" validate:"dive"`
	Security         *SecurityFeatures `json:"security,omitempty" yaml:"security,omitempty"`
	RecentPRs        []PullRequest     `json:"recentPullRequests,omitempty" yaml:"recentPullRequests,omitempty" validate:"dive"`

	HasCodeowners               bool `json:"hasCodeowners" yaml:"hasCodeowners"`
	HasPRTemplate               bool `json:"hasPrTemplate" yaml:"hasPrTemplate"`
	HasContributingGuide        bool `json:"hasContributingGuide" yaml:"hasContributingGuide"`
	HasLicense                  bool `json:"hasLicense" yaml:"hasLicense"`
	HasReadme                   bool `json:"hasReadme" yaml:"hasReadme"`
	HasSBOM                     bool `json:"hasSbom" yaml:"hasSbom"`
	HasDockerfile               bool `json:"hasDockerfile" yaml:"hasDockerfile"`
	HasDockerCompose            bool `json:"hasDockerCompose" yaml:"hasDockerCompose"`
	HasContainerScanning        bool `json:"hasContainerScanning" yaml:"hasContainerScanning"`
	HasIaCFiles                 bool `json:"hasIacFiles" yaml:"hasIacFiles"`
	HasMonitoringConfig         bool `json:"hasMonitoringConfig" yaml:"hasMonitoringConfig"`
	HasBackupConfig             bool `json:"hasBackupConfig" yaml:"hasBackupConfig"`
	HasChangelog                bool `json:"hasChangelog" yaml:"hasChangelog"`
	HasADRDirectory             bool `json:"hasAdrDirectory" yaml:"hasAdrDirectory"`
	HasSASTConfig               bool `json:"hasSastConfig" yaml:"hasSastConfig"`
	HasDASTConfig               bool `json:"hasDastConfig" yaml:"hasDastConfig"`
	HasAPIDocs                  bool `json:"hasApiDocs" yaml:"hasApiDocs"`
	HasRunbook                  bool `json:"hasRunbook" yaml:"hasRunbook"`
	HasSLADocument              bool `json:"hasSlaDocument" yaml:"hasSlaDocument"`
	HasMigrationGuide           bool `json:"hasMigrationGuide" yaml:"hasMigrationGuide"`
	HasDeprecationPolicy        bool `json:"hasDeprecationPolicy" yaml:"hasDeprecationPolicy"`
	HasIssueTemplates           bool `json:"hasIssueTemplates" yaml:"hasIssueTemplates"`
	HasDiscussionsEnabled       bool `json:"hasDiscussionsEnabled" yaml:"hasDiscussionsEnabled"`
	HasProjectBoards            bool `json:"hasProjectBoards" yaml:"hasProjectBoards"`
	HasWiki                     bool `json:"hasWiki" yaml:"hasWiki"`
	HasBranchingStrategyDoc     bool `json:"hasBranchingStrategyDoc" yaml:"hasBranchingStrategyDoc"`
	HasReleaseProcessDoc        bool `json:"hasReleaseProcessDoc" yaml:"hasReleaseProcessDoc"`
	HasHotfixProcessDoc         bool `json:"hasHotfixProcessDoc" yaml:"hasHotfixProcessDoc"`
	HasDefinitionOfDone         bool `json:"hasDefinitionOfDone" yaml:"hasDefinitionOfDone"`
	HasFeatureFlags             bool `json:"hasFeatureFlags" yaml:"hasFeatureFlags"`
	HasEditorconfig             bool `json:"hasEditorconfig" yaml:"hasEditorconfig"`
	HasTypeChecking             bool `json:"hasTypeChecking" yaml:"hasTypeChecking"`
	HasDRRunbook                bool `json:"hasDrRunbook" yaml:"hasDrRunbook"`
	HasIncidentResponsePlaybook bool `json:"hasIncidentResponsePlaybook" yaml:"hasIncidentResponsePlaybook"`
	HasOnCallDoc                bool `json:"hasOnCallDoc" yaml:"hasOnCallDoc"`
	HasDashboardsAsCode         bool `json:"hasDashboardsAsCode" yaml:"hasDashboardsAsCode"`

	ContainerBaseImages []string `json:"containerBaseImages,omitempty" yaml:"containerBaseImages,omitempty"`
	IaCTool             string   `json:"iacTool,omitempty" yaml:"iacTool,omitempty"`
	TestCoveragePercent *float64 `json:"testCoveragePercent,omitempty" yaml:"testCoveragePercent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// OrgMembers summarizes organization membership.
type OrgMembers struct {
	TotalMembers int  `json:"totalMembers" yaml:"totalMembers" validate:"gte=0"`
	AdminCount   int  `json:"adminCount" yaml:"adminCount" validate:"gte=0,ltefield=TotalMembers"`
	MFAEnforced  bool `json:"mfaEnforced" yaml:"mfaEnforced"`
	SSOEnabled   bool `json:"ssoEnabled" yaml:"ssoEnabled"`
}

// OrgSecuritySettings are the organization-wide security defaults.
type OrgSecuritySettings struct {
	DefaultRepoPermission *string `json:"defaultRepoPermission,omitempty" yaml:"defaultRepoPermission,omitempty"`

	// MembersCanCreatePublicRepos is treated as true when absent.
	MembersCanCreatePublicRepos *bool `json:"membersCanCreatePublicRepos,omitempty" yaml:"membersCanCreatePublicRepos,omitempty"`

	TwoFactorRequirementEnabled bool `json:"twoFactorRequirementEnabled" yaml:"twoFactorRequirementEnabled"`
	IPAllowListEnabled          bool `json:"ipAllowListEnabled" yaml:"ipAllowListEnabled"`
}

// OrgEvidence is everything collected about the organization itself.
type OrgEvidence struct {
	OrgName                   string               `json:"orgName" yaml:"orgName" validate:"required"`
	Members                   *OrgMembers          `json:"members,omitempty" yaml:"members,omitempty"`
	SecuritySettings          *OrgSecuritySettings `json:"securitySettings,omitempty" yaml:"securitySettings,omitempty"`
	HasOrgLevelSecurityPolicy bool                 `json:"hasOrgLevelSecurityPolicy" yaml:"hasOrgLevelSecurityPolicy"`
	BillingPlan               *string              `json:"billingPlan,omitempty" yaml:"billingPlan,omitempty"`
}
