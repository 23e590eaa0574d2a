package scanner

import (
	"fmt"
	"slices"
	"strings"

	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/catalog"
	"github.com/olafkfreund/github-discovery-repporting-sub000/internal/model"
)

var containerSecurityCatalog = catalog.NewBuilder(model.CategoryContainerSecurity).
	Add("CNTR-001", "Dockerfile present", model.SeverityMedium, 1,
		"A Dockerfile must be present to containerise the application.").
	Add("CNTR-002", "Base image from trusted registry", model.SeverityHigh, 1.5,
		"Container base images must be sourced from a trusted, official registry.").
	Add("CNTR-003", "Base image pinned by digest", model.SeverityHigh, 1.5,
		"Base images must be pinned to an immutable SHA256 digest rather than a mutable tag.").
	Add("CNTR-004", "Multi-stage build used", model.SeverityMedium, 1,
		"Multi-stage Docker builds should be used to minimise the final image attack surface.").
	Add("CNTR-005", "Container does not run as root", model.SeverityCritical, 2,
		"The container entrypoint must run as a non-root user to limit privilege escalation risk.").
	Add("CNTR-006", "Container image scanning in pipeline", model.SeverityHigh, 1.5,
		"Container images must be scanned for known CVEs as part of the CI/CD pipeline.").
	Add("CNTR-007", "No secrets embedded in Dockerfile", model.SeverityCritical, 2,
		"Secrets, API keys, or credentials must not be baked into the Dockerfile or image layers.").
	Add("CNTR-008", "Container health check defined", model.SeverityMedium, 1,
		"A HEALTHCHECK instruction must be defined to enable runtime health monitoring.").
	Add("CNTR-009", "Read-only root filesystem", model.SeverityMedium, 1,
		"Containers should be configured to run with a read-only root filesystem where possible.").
	Add("CNTR-010", "Resource limits defined", model.SeverityMedium, 1,
		"CPU and memory resource limits must be defined for container deployments.").
	Add("CNTR-011", "Container image signing enabled", model.SeverityMedium, 1,
		"Container images must be signed (e.g. with Cosign or Notary) to ensure integrity.").
	Add("CNTR-012", "Runtime security policy defined", model.SeverityLow, 0.5,
		"A runtime security policy (e.g. seccomp, AppArmor, Pod Security Standards) must be defined.").
	Build()

const noDockerfile = "Not applicable: no Dockerfile detected in this repository."

// trustedRegistries are the registry hosts accepted for base images. Images
// without a registry host resolve to Docker Hub.
var trustedRegistries = []string{
	"docker.io",
	"registry-1.docker.io",
	"gcr.io",
	"ghcr.io",
	"mcr.microsoft.com",
	"public.ecr.aws",
	"quay.io",
	"registry.k8s.io",
	"cgr.dev",
}

type containerSecurityScanner struct{ domain }

func newContainerSecurity() *containerSecurityScanner {
	return &containerSecurityScanner{domain{name: "container_security", reg: containerSecurityCatalog}}
}

func (s *containerSecurityScanner) Evaluate(ev *model.RepoEvidence) []model.Verdict {
	ev = repoOrEmpty(ev)
	r := newResults(s.reg)

	if !ev.HasDockerfile {
		r.fail("CNTR-001", "No Dockerfile was detected. Container security checks are not applicable.")
		for _, id := range s.reg.IDs()[1:] {
			r.notApplicable(id, noDockerfile)
		}
		return r.verdicts()
	}
	r.pass("CNTR-001", "A Dockerfile is present in the repository.")

	evalBaseImages(r, ev.ContainerBaseImages)
	r.warn("CNTR-004", "Multi-stage build usage could not be verified automatically. "+
		"Review the Dockerfile for separate build and runtime stages.")
	r.warn("CNTR-005", "The container runtime user could not be verified automatically. "+
		"Confirm that the Dockerfile sets a non-root USER.")
	r.boolCheck("CNTR-006", ev.HasContainerScanning,
		"Container image scanning is configured in the CI/CD pipeline.",
		"No container image scanning was detected in the CI/CD pipeline.", nil)
	r.warn("CNTR-007", "Embedded secrets in the Dockerfile could not be verified automatically. "+
		"Review ENV and ARG instructions for credentials.")
	r.warn("CNTR-008", "HEALTHCHECK usage could not be verified automatically. Manual review recommended.")
	r.warn("CNTR-009", "Read-only root filesystem configuration could not be verified automatically. "+
		"Manual review recommended.")
	if ev.HasDockerCompose {
		r.warn("CNTR-010", "A docker-compose file is present. "+
			"Confirm that CPU and memory resource limits are explicitly defined within it.")
	} else {
		r.warn("CNTR-010", "Resource limit definitions could not be verified automatically. "+
			"Confirm that CPU and memory limits are set in the deployment manifests or compose files.")
	}
	r.warn("CNTR-011", "Container image signing could not be verified automatically. "+
		"Confirm that images are signed with Cosign or Notary.")
	r.warn("CNTR-012", "Runtime security policies could not be verified automatically. "+
		"Confirm that seccomp, AppArmor or Pod Security Standards are applied.")

	return r.verdicts()
}

// evalBaseImages records CNTR-002 and CNTR-003. Without parsed FROM lines
// both checks fall back to a manual-review warning.
func evalBaseImages(r *results, images []string) {
	if len(images) == 0 {
		r.warn("CNTR-002", "Base image registries could not be verified automatically. "+
			"Confirm that FROM instructions reference trusted registries.")
		r.warn("CNTR-003", "Base image digest pinning could not be verified automatically. "+
			"Confirm that FROM instructions use @sha256 digests.")
		return
	}

	var untrusted, unpinned []string
	for _, img := range images {
		if !slices.Contains(trustedRegistries, imageRegistry(img)) {
			untrusted = append(untrusted, img)
		}
		if !strings.Contains(img, "@sha256:") {
			unpinned = append(unpinned, img)
		}
	}

	if len(untrusted) == 0 {
		r.add("CNTR-002", model.StatusPassed,
			fmt.Sprintf("All %d base image(s) come from trusted registries.", len(images)),
			model.Evidence{"base_images": images})
	} else {
		r.add("CNTR-002", model.StatusFailed,
			fmt.Sprintf("%d base image(s) come from registries outside the trusted list.", len(untrusted)),
			model.Evidence{"untrusted_images": untrusted})
	}
	if len(unpinned) == 0 {
		r.add("CNTR-003", model.StatusPassed,
			fmt.Sprintf("All %d base image(s) are pinned by digest.", len(images)),
			model.Evidence{"base_images": images})
	} else {
		r.add("CNTR-003", model.StatusFailed,
			fmt.Sprintf("%d base image(s) use a mutable tag instead of a digest.", len(unpinned)),
			model.Evidence{"unpinned_images": unpinned})
	}
}

// imageRegistry returns the registry host of an image reference, following
// the docker rule that the first path component is a host only when it
// contains a dot or a colon or is "localhost".
func imageRegistry(ref string) string {
	first, _, found := strings.Cut(ref, "/")
	if !found {
		return "docker.io"
	}
	if first == "localhost" || strings.ContainsAny(first, ".:") {
		return strings.ToLower(first)
	}
	return "docker.io"
}
