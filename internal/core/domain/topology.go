package domain

import "time"

// ResourceKind names a custom resource type by its API coordinates.
type ResourceKind struct {
	Group    string
	Version  string
	Resource string
}

// CleanupTopology is the fixed, ordered set of resources and namespaces the
// uninstaller sweeps. The dependent-namespace layout is a deployment fact,
// so it is spelled out here as data instead of being discovered at runtime.
type CleanupTopology struct {
	// OperatorResources have their finalizers stripped before the helm
	// uninstall so the operator's own custom resources cannot block it.
	OperatorResources []ResourceKind
	// RuntimeResource plus RuntimeResourceName is the one named custom
	// resource that is deleted outright before uninstalling.
	RuntimeResource     ResourceKind
	RuntimeResourceName string
	// VaultRoleResource finalizers are stripped after the uninstall.
	VaultRoleResource ResourceKind
	// HelmManagedResource is stripped in each infra namespace after the
	// uninstall, unblocking namespace termination.
	HelmManagedResource ResourceKind
	// InfraNamespaces hold helm-controller managed resources the operator
	// created outside its own namespace.
	InfraNamespaces []string
	// PodSweepNamespaces get a forced pod deletion pass at the end.
	PodSweepNamespaces []string
	// OperatorNamespaces are deleted last, without waiting for termination.
	OperatorNamespaces []string
	// SettleDelay is waited after the uninstall and again after the infra
	// sweep, giving controllers time to react before the next step.
	SettleDelay time.Duration
}

// DefaultCleanupTopology returns the canonical uninstall sweep for a release
// installed into the given namespace.
func DefaultCleanupTopology(namespace string) CleanupTopology {
	return CleanupTopology{
		OperatorResources: []ResourceKind{
			{Group: "selfhosted.outsystems.com", Version: "v1", Resource: "selfhostedruntimes"},
			{Group: "selfhosted.outsystems.com", Version: "v1", Resource: "selfhostedvaultoperators"},
		},
		RuntimeResource:     ResourceKind{Group: "selfhosted.outsystems.com", Version: "v1", Resource: "selfhostedruntimes"},
		RuntimeResourceName: "self-hosted-runtime",
		VaultRoleResource:   ResourceKind{Group: "selfhosted.outsystems.com", Version: "v1", Resource: "vaultroles"},
		HelmManagedResource: ResourceKind{Group: "helm.toolkit.fluxcd.io", Version: "v2", Resource: "helmreleases"},
		InfraNamespaces: []string{
			"selfhosted-vault",
			"selfhosted-ingress",
			"selfhosted-monitoring",
		},
		PodSweepNamespaces: []string{
			"selfhosted-runtime",
			"selfhosted-vault",
		},
		OperatorNamespaces: []string{
			namespace,
			"selfhosted-runtime",
		},
		SettleDelay: 30 * time.Second,
	}
}
