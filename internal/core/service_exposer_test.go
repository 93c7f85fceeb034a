package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"shoctl/internal/core/domain"
	"shoctl/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func exposeRequest() ExposeRequest {
	return ExposeRequest{
		Namespace:   "self-hosted-operator",
		ReleaseName: "self-hosted-operator",
		Port:        5050,
		Timeouts:    DefaultTimeouts(),
	}
}

func TestServiceExposer_FailsFastWhenBackingServiceMissing(t *testing.T) {
	cluster := testutil.MockCluster{}
	cluster.On("ServiceExists", mock.Anything, "self-hosted-operator", "self-hosted-operator").Return(false, nil)
	runner := testutil.MockCommandRunner{}
	prober := testutil.MockEndpointProber{}
	platform := testutil.MockPlatform{}
	clock := testutil.NewFakeClock(time.Now())
	sut := ProvideServiceExposer(&cluster, &runner, &prober, &platform, clock)

	_, _, err := sut.Expose(context.Background(), exposeRequest())

	assert.True(t, errors.Is(err, domain.ErrServiceMissing))
	cluster.AssertNotCalled(t, "EnsureLoadBalancer")
}

func TestServiceExposer_LoadBalancerHappyPath(t *testing.T) {
	cluster := testutil.MockCluster{}
	cluster.On("ServiceExists", mock.Anything, "self-hosted-operator", "self-hosted-operator").Return(true, nil)
	cluster.On("EnsureLoadBalancer", mock.Anything, "self-hosted-operator", "self-hosted-operator-lb", "self-hosted-operator", 5050).Return(nil)
	cluster.On("LoadBalancerAddress", mock.Anything, "self-hosted-operator", "self-hosted-operator-lb").Return("lb.example.com", nil)
	runner := testutil.MockCommandRunner{}
	prober := testutil.MockEndpointProber{}
	prober.On("Probe", mock.Anything, "http://lb.example.com:5050").Return(nil)
	platform := testutil.MockPlatform{}
	platform.On("OpenBrowser", mock.Anything, "http://lb.example.com:5050").Return(nil)
	clock := testutil.NewFakeClock(time.Now())
	sut := ProvideServiceExposer(&cluster, &runner, &prober, &platform, clock)

	endpoint, tunnel, err := sut.Expose(context.Background(), exposeRequest())

	assert.Nil(t, err)
	assert.Nil(t, tunnel)
	assert.Equal(t, "lb.example.com", endpoint.Host)
	assert.Equal(t, 5050, endpoint.Port)
	assert.True(t, endpoint.Reachable)
	platform.AssertExpectations(t)
}

func TestServiceExposer_SecondInvocationReusesExistingFrontend(t *testing.T) {
	// EnsureLoadBalancer tolerates "already exists", so running the flow
	// twice converges on the same endpoint.
	cluster := testutil.MockCluster{}
	cluster.On("ServiceExists", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	cluster.On("EnsureLoadBalancer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cluster.On("LoadBalancerAddress", mock.Anything, mock.Anything, mock.Anything).Return("lb.example.com", nil)
	runner := testutil.MockCommandRunner{}
	prober := testutil.MockEndpointProber{}
	prober.On("Probe", mock.Anything, mock.Anything).Return(nil)
	platform := testutil.MockPlatform{}
	platform.On("OpenBrowser", mock.Anything, mock.Anything).Return(nil)
	clock := testutil.NewFakeClock(time.Now())
	sut := ProvideServiceExposer(&cluster, &runner, &prober, &platform, clock)

	first, _, err1 := sut.Expose(context.Background(), exposeRequest())
	second, _, err2 := sut.Expose(context.Background(), exposeRequest())

	assert.Nil(t, err1)
	assert.Nil(t, err2)
	assert.Equal(t, first, second)
}

func TestServiceExposer_PendingAddressTimesOut(t *testing.T) {
	cluster := testutil.MockCluster{}
	cluster.On("ServiceExists", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	cluster.On("EnsureLoadBalancer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cluster.On("LoadBalancerAddress", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	runner := testutil.MockCommandRunner{}
	prober := testutil.MockEndpointProber{}
	platform := testutil.MockPlatform{}
	clock := testutil.NewFakeClock(time.Now())
	sut := ProvideServiceExposer(&cluster, &runner, &prober, &platform, clock)

	_, _, err := sut.Expose(context.Background(), exposeRequest())

	assert.True(t, errors.Is(err, domain.ErrExposeTimeout))
	prober.AssertNotCalled(t, "Probe")
}

func TestServiceExposer_UnreachableEndpointIsSoftFailure(t *testing.T) {
	cluster := testutil.MockCluster{}
	cluster.On("ServiceExists", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	cluster.On("EnsureLoadBalancer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cluster.On("LoadBalancerAddress", mock.Anything, mock.Anything, mock.Anything).Return("lb.example.com", nil)
	runner := testutil.MockCommandRunner{}
	prober := testutil.MockEndpointProber{}
	prober.On("Probe", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	platform := testutil.MockPlatform{}
	platform.On("OpenBrowser", mock.Anything, mock.Anything).Return(nil)
	clock := testutil.NewFakeClock(time.Now())
	sut := ProvideServiceExposer(&cluster, &runner, &prober, &platform, clock)

	endpoint, _, err := sut.Expose(context.Background(), exposeRequest())

	assert.Nil(t, err)
	assert.False(t, endpoint.Reachable)
	prober.AssertNumberOfCalls(t, "Probe", DefaultTimeouts().ProbeTries)
}

func TestServiceExposer_SkipBrowserSuppressesOpen(t *testing.T) {
	cluster := testutil.MockCluster{}
	cluster.On("ServiceExists", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	cluster.On("EnsureLoadBalancer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cluster.On("LoadBalancerAddress", mock.Anything, mock.Anything, mock.Anything).Return("lb.example.com", nil)
	runner := testutil.MockCommandRunner{}
	prober := testutil.MockEndpointProber{}
	prober.On("Probe", mock.Anything, mock.Anything).Return(nil)
	platform := testutil.MockPlatform{}
	clock := testutil.NewFakeClock(time.Now())
	sut := ProvideServiceExposer(&cluster, &runner, &prober, &platform, clock)
	req := exposeRequest()
	req.SkipBrowser = true

	_, _, err := sut.Expose(context.Background(), req)

	assert.Nil(t, err)
	platform.AssertNotCalled(t, "OpenBrowser")
}

func TestServiceExposer_PortForwardStartsTunnel(t *testing.T) {
	cluster := testutil.MockCluster{}
	cluster.On("ServiceExists", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	runner := testutil.MockCommandRunner{}
	process := testutil.MockProcess{}
	runner.On("Start", mock.Anything, "kubectl",
		[]string{"port-forward", "svc/self-hosted-operator", "5050:5050", "--namespace", "self-hosted-operator"}).
		Return(&process, nil)
	prober := testutil.MockEndpointProber{}
	prober.On("Probe", mock.Anything, "http://localhost:5050").Return(nil)
	platform := testutil.MockPlatform{}
	platform.On("OpenBrowser", mock.Anything, "http://localhost:5050").Return(nil)
	clock := testutil.NewFakeClock(time.Now())
	sut := ProvideServiceExposer(&cluster, &runner, &prober, &platform, clock)
	req := exposeRequest()
	req.PortForward = true

	endpoint, tunnel, err := sut.Expose(context.Background(), req)

	assert.Nil(t, err)
	assert.Equal(t, &process, tunnel)
	assert.Equal(t, "localhost", endpoint.Host)
	cluster.AssertNotCalled(t, "EnsureLoadBalancer")
}
