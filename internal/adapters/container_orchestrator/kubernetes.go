package container_orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	"shoctl/internal/core/domain"
	"shoctl/internal/ports"
)

var _ ports.Cluster = (*Kubernetes)(nil)

// releaseLabel is the label helm stamps on chart resources, used to match
// the pods and services belonging to the operator release.
const releaseLabel = "app.kubernetes.io/instance"

// Kubernetes implements ports.Cluster on top of client-go, covering every
// read and patch the install and cleanup flows perform.
type Kubernetes struct {
	clientSet kubernetes.Interface
	dynamic   dynamic.Interface
}

func ProvideKubernetes() (*Kubernetes, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	kubeConfigPath := filepath.Join(home, ".kube", "config")

	kubeConfig, err := clientcmd.BuildConfigFromFlags("", kubeConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes config: %w", err)
	}

	clientSet, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic kubernetes client: %w", err)
	}

	return NewKubernetes(clientSet, dynamicClient), nil
}

// NewKubernetes wraps pre-built clients, letting tests pass fakes.
func NewKubernetes(clientSet kubernetes.Interface, dynamicClient dynamic.Interface) *Kubernetes {
	return &Kubernetes{clientSet: clientSet, dynamic: dynamicClient}
}

// DetectPlatform reports OpenShift when any openshift.io API group is served.
func (k *Kubernetes) DetectPlatform(ctx context.Context) (domain.ClusterType, error) {
	groups, err := k.clientSet.Discovery().ServerGroups()
	if err != nil {
		return "", fmt.Errorf("failed to list API groups: %w", err)
	}
	for _, group := range groups.Groups {
		if strings.HasSuffix(group.Name, ".openshift.io") {
			return domain.ClusterOpenShift, nil
		}
	}
	return domain.ClusterKubernetes, nil
}

// EnsureNamespace creates the namespace, treating "already exists" as success.
func (k *Kubernetes) EnsureNamespace(ctx context.Context, name string) error {
	namespace := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: name},
	}
	_, err := k.clientSet.CoreV1().Namespaces().Create(ctx, namespace, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		log.Debug().Str("namespace", name).Msg("namespace already exists")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create namespace %s: %w", name, err)
	}
	return nil
}

// ReleasePods returns the status of every pod labeled with the release.
func (k *Kubernetes) ReleasePods(ctx context.Context, namespace, release string) ([]domain.PodStatus, error) {
	podList, err := k.clientSet.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: fmt.Sprintf("%s=%s", releaseLabel, release),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods for release %s: %w", release, err)
	}

	statuses := make([]domain.PodStatus, 0, len(podList.Items))
	for _, pod := range podList.Items {
		statuses = append(statuses, podToStatus(pod))
	}
	return statuses, nil
}

func podToStatus(pod corev1.Pod) domain.PodStatus {
	status := domain.PodStatus{
		Name:  pod.Name,
		Phase: string(pod.Status.Phase),
	}

	ready := len(pod.Status.ContainerStatuses) > 0
	for _, cs := range pod.Status.ContainerStatuses {
		if !cs.Ready {
			ready = false
		}
		if cs.State.Waiting != nil && cs.State.Waiting.Reason != "" {
			status.Reason = cs.State.Waiting.Reason
		}
		if cs.State.Terminated != nil && cs.State.Terminated.Reason != "" && status.Reason == "" {
			status.Reason = cs.State.Terminated.Reason
		}
	}
	status.Ready = ready

	if status.Reason == "" && pod.Status.Reason != "" {
		status.Reason = pod.Status.Reason
	}
	return status
}

// PodDiagnostics returns a readable dump of pod statuses and namespace
// events, printed when readiness polling ends in an error state.
func (k *Kubernetes) PodDiagnostics(ctx context.Context, namespace, release string) (string, error) {
	var b strings.Builder

	pods, err := k.ReleasePods(ctx, namespace, release)
	if err != nil {
		return "", err
	}
	b.WriteString("Pods:\n")
	for _, pod := range pods {
		readiness := "not ready"
		if pod.Ready {
			readiness = "ready"
		}
		fmt.Fprintf(&b, "  %s  phase=%s  %s", pod.Name, pod.Phase, readiness)
		if pod.Reason != "" {
			fmt.Fprintf(&b, "  reason=%s", pod.Reason)
		}
		b.WriteString("\n")
	}

	events, err := k.clientSet.CoreV1().Events(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return b.String(), nil
	}
	b.WriteString("Recent events:\n")
	for _, event := range events.Items {
		if !strings.HasPrefix(event.InvolvedObject.Name, release) {
			continue
		}
		fmt.Fprintf(&b, "  %s  %s/%s: %s\n", event.Type, event.InvolvedObject.Kind, event.InvolvedObject.Name, event.Message)
	}
	return b.String(), nil
}

// ServiceExists reports whether a service is present in the namespace.
func (k *Kubernetes) ServiceExists(ctx context.Context, namespace, name string) (bool, error) {
	_, err := k.clientSet.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get service %s: %w", name, err)
	}
	return true, nil
}

// EnsureLoadBalancer creates a LoadBalancer service fronting the release,
// treating "already exists" as success.
func (k *Kubernetes) EnsureLoadBalancer(ctx context.Context, namespace, name, release string, port int) error {
	service := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:   name,
			Labels: map[string]string{"app.kubernetes.io/managed-by": "shoctl"},
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeLoadBalancer,
			Selector: map[string]string{releaseLabel: release},
			Ports: []corev1.ServicePort{
				{
					Name:       "console",
					Port:       int32(port),
					TargetPort: intstr.FromInt(port),
				},
			},
		},
	}
	_, err := k.clientSet.CoreV1().Services(namespace).Create(ctx, service, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		log.Debug().Str("service", name).Msg("console service already exists")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create service %s: %w", name, err)
	}
	return nil
}

// LoadBalancerAddress returns the external hostname or IP of the service,
// hostname preferred, or empty while the cloud controller is still working.
func (k *Kubernetes) LoadBalancerAddress(ctx context.Context, namespace, name string) (string, error) {
	service, err := k.clientSet.CoreV1().Services(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get service %s: %w", name, err)
	}
	for _, ingress := range service.Status.LoadBalancer.Ingress {
		if ingress.Hostname != "" {
			return ingress.Hostname, nil
		}
	}
	for _, ingress := range service.Status.LoadBalancer.Ingress {
		if ingress.IP != "" {
			return ingress.IP, nil
		}
	}
	return "", nil
}

// DeleteService removes a service, tolerating absence.
func (k *Kubernetes) DeleteService(ctx context.Context, namespace, name string) error {
	err := k.clientSet.CoreV1().Services(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to delete service %s: %w", name, err)
	}
	return nil
}

// StripFinalizers clears metadata.finalizers on every object of the kind in
// the namespace. A kind that is not installed on the cluster is skipped.
func (k *Kubernetes) StripFinalizers(ctx context.Context, kind domain.ResourceKind, namespace string) error {
	gvr := schema.GroupVersionResource{Group: kind.Group, Version: kind.Version, Resource: kind.Resource}
	list, err := k.dynamic.Resource(gvr).Namespace(namespace).List(ctx, metav1.ListOptions{})
	if apierrors.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to list %s in %s: %w", kind.Resource, namespace, err)
	}

	patch := []byte(`{"metadata":{"finalizers":[]}}`)
	for _, item := range list.Items {
		_, err := k.dynamic.Resource(gvr).Namespace(namespace).Patch(ctx, item.GetName(), types.MergePatchType, patch, metav1.PatchOptions{})
		if err != nil && !apierrors.IsNotFound(err) {
			return fmt.Errorf("failed to clear finalizers on %s/%s: %w", kind.Resource, item.GetName(), err)
		}
		log.Debug().Str("resource", kind.Resource).Str("name", item.GetName()).Msg("cleared finalizers")
	}
	return nil
}

// DeleteResource deletes one named custom resource, tolerating absence.
func (k *Kubernetes) DeleteResource(ctx context.Context, kind domain.ResourceKind, namespace, name string) error {
	gvr := schema.GroupVersionResource{Group: kind.Group, Version: kind.Version, Resource: kind.Resource}
	err := k.dynamic.Resource(gvr).Namespace(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to delete %s/%s: %w", kind.Resource, name, err)
	}
	return nil
}

// ForceDeletePods deletes every pod in the namespace with no grace period.
func (k *Kubernetes) ForceDeletePods(ctx context.Context, namespace string) error {
	gracePeriod := int64(0)
	err := k.clientSet.CoreV1().Pods(namespace).DeleteCollection(ctx,
		metav1.DeleteOptions{GracePeriodSeconds: &gracePeriod},
		metav1.ListOptions{},
	)
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to force delete pods in %s: %w", namespace, err)
	}
	return nil
}

// DeleteNamespace initiates deletion without waiting for termination.
func (k *Kubernetes) DeleteNamespace(ctx context.Context, name string) error {
	err := k.clientSet.CoreV1().Namespaces().Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to delete namespace %s: %w", name, err)
	}
	return nil
}
