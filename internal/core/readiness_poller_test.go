package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"shoctl/internal/core/domain"
	"shoctl/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func readyPods(n int) []domain.PodStatus {
	pods := make([]domain.PodStatus, n)
	for i := range pods {
		pods[i] = domain.PodStatus{Name: fmt.Sprintf("operator-%d", i), Phase: "Running", Ready: true}
	}
	return pods
}

func TestReadinessPoller_AllReadyOnFirstPoll(t *testing.T) {
	for _, n := range []int{1, 3, 5} {
		t.Run(fmt.Sprintf("%d pods", n), func(t *testing.T) {
			cluster := testutil.MockCluster{}
			cluster.On("ReleasePods", mock.Anything, "ns", "rel").Return(readyPods(n), nil)
			clock := testutil.NewFakeClock(time.Now())
			sut := ProvideReadinessPoller(&cluster, clock)

			result, err := sut.Wait(context.Background(), "ns", "rel", 10*time.Second, 300*time.Second)

			assert.Nil(t, err)
			assert.Equal(t, AllReady, result.State)
			assert.Equal(t, n, result.Ready)
			assert.Equal(t, n, result.Total)
		})
	}
}

func TestReadinessPoller_KeepsPollingUntilReady(t *testing.T) {
	cluster := testutil.MockCluster{}
	notReady := []domain.PodStatus{{Name: "operator-0", Phase: "Pending"}}
	cluster.On("ReleasePods", mock.Anything, "ns", "rel").Return(notReady, nil).Twice()
	cluster.On("ReleasePods", mock.Anything, "ns", "rel").Return(readyPods(1), nil).Once()
	clock := testutil.NewFakeClock(time.Now())
	sut := ProvideReadinessPoller(&cluster, clock)

	result, err := sut.Wait(context.Background(), "ns", "rel", 10*time.Second, 300*time.Second)

	assert.Nil(t, err)
	assert.Equal(t, AllReady, result.State)
	assert.Len(t, clock.Sleeps, 2)
	assert.Equal(t, 10*time.Second, clock.Sleeps[0])
}

func TestReadinessPoller_ErrorStateEndsImmediatelyWithDiagnostics(t *testing.T) {
	cluster := testutil.MockCluster{}
	pods := []domain.PodStatus{
		{Name: "operator-0", Phase: "Running", Ready: true},
		{Name: "operator-1", Phase: "Pending", Reason: "CrashLoopBackOff"},
	}
	cluster.On("ReleasePods", mock.Anything, "ns", "rel").Return(pods, nil)
	cluster.On("PodDiagnostics", mock.Anything, "ns", "rel").Return("operator-1 CrashLoopBackOff", nil)
	clock := testutil.NewFakeClock(time.Now())
	sut := ProvideReadinessPoller(&cluster, clock)

	result, err := sut.Wait(context.Background(), "ns", "rel", 10*time.Second, 300*time.Second)

	assert.Nil(t, err)
	assert.Equal(t, ErrorDetected, result.State)
	assert.Equal(t, "operator-1 CrashLoopBackOff", result.Diagnostics)
	assert.Empty(t, clock.Sleeps)
}

func TestReadinessPoller_ImagePullBackOffIsTerminal(t *testing.T) {
	cluster := testutil.MockCluster{}
	pods := []domain.PodStatus{{Name: "operator-0", Phase: "Pending", Reason: "ImagePullBackOff"}}
	cluster.On("ReleasePods", mock.Anything, "ns", "rel").Return(pods, nil)
	cluster.On("PodDiagnostics", mock.Anything, "ns", "rel").Return("", errors.New("events unavailable"))
	clock := testutil.NewFakeClock(time.Now())
	sut := ProvideReadinessPoller(&cluster, clock)

	result, err := sut.Wait(context.Background(), "ns", "rel", 10*time.Second, 300*time.Second)

	assert.Nil(t, err)
	assert.Equal(t, ErrorDetected, result.State)
	assert.Empty(t, result.Diagnostics)
}

func TestReadinessPoller_TimesOutAtCeiling(t *testing.T) {
	cluster := testutil.MockCluster{}
	cluster.On("ReleasePods", mock.Anything, "ns", "rel").Return([]domain.PodStatus{}, nil)
	cluster.On("PodDiagnostics", mock.Anything, "ns", "rel").Return("no pods scheduled", nil)
	clock := testutil.NewFakeClock(time.Now())
	sut := ProvideReadinessPoller(&cluster, clock)

	result, err := sut.Wait(context.Background(), "ns", "rel", 10*time.Second, 300*time.Second)

	assert.Nil(t, err)
	assert.Equal(t, TimedOut, result.State)
	assert.Equal(t, "no pods scheduled", result.Diagnostics)
	// 300s ceiling at 10s intervals
	assert.Len(t, clock.Sleeps, 30)
}

func TestReadinessPoller_PodListFailureIsAnError(t *testing.T) {
	cluster := testutil.MockCluster{}
	cluster.On("ReleasePods", mock.Anything, "ns", "rel").Return(nil, errors.New("connection reset"))
	clock := testutil.NewFakeClock(time.Now())
	sut := ProvideReadinessPoller(&cluster, clock)

	_, err := sut.Wait(context.Background(), "ns", "rel", 10*time.Second, 300*time.Second)

	assert.NotNil(t, err)
}
