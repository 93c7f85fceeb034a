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

func uninstallFixture() (*Uninstaller, *testutil.MockHelmClient, *testutil.MockCluster, *testutil.MockTerminalInput) {
	helmClient := &testutil.MockHelmClient{}
	cluster := &testutil.MockCluster{}
	terminalInput := &testutil.MockTerminalInput{}
	clock := testutil.NewFakeClock(time.Now())
	return ProvideUninstaller(helmClient, cluster, terminalInput, clock), helmClient, cluster, terminalInput
}

func TestUninstaller_ConfirmAcceptsExactYes(t *testing.T) {
	sut, _, _, terminalInput := uninstallFixture()
	terminalInput.On("ReadLine", mock.Anything).Return("yes", nil)

	confirmed, err := sut.Confirm("self-hosted-operator")

	assert.Nil(t, err)
	assert.True(t, confirmed)
}

func TestUninstaller_ConfirmRejectsEverythingElse(t *testing.T) {
	for _, answer := range []string{"", "y", "Yes", "YES", "yes ", "no"} {
		sut, _, _, terminalInput := uninstallFixture()
		terminalInput.On("ReadLine", mock.Anything).Return(answer, nil)

		confirmed, err := sut.Confirm("self-hosted-operator")

		assert.Nil(t, err)
		assert.False(t, confirmed, "answer %q must not confirm", answer)
	}
}

func TestUninstaller_RunFailsWhenReleaseMissing(t *testing.T) {
	sut, helmClient, cluster, _ := uninstallFixture()
	helmClient.On("ReleaseExists", mock.Anything, "self-hosted-operator", "self-hosted-operator").Return(false, nil)
	req := domain.InstallRequest{ReleaseName: domain.DefaultReleaseName, Namespace: domain.DefaultNamespace}

	err := sut.Run(context.Background(), req, domain.DefaultCleanupTopology(req.Namespace))

	assert.True(t, errors.Is(err, domain.ErrReleaseNotFound))
	helmClient.AssertNotCalled(t, "Uninstall")
	cluster.AssertNotCalled(t, "DeleteService")
	cluster.AssertNotCalled(t, "DeleteNamespace")
}

func TestUninstaller_RunExecutesOrderedTeardown(t *testing.T) {
	sut, helmClient, cluster, _ := uninstallFixture()
	req := domain.InstallRequest{ReleaseName: domain.DefaultReleaseName, Namespace: domain.DefaultNamespace}
	topology := domain.DefaultCleanupTopology(req.Namespace)

	helmClient.On("ReleaseExists", mock.Anything, req.ReleaseName, req.Namespace).Return(true, nil)
	cluster.On("DeleteService", mock.Anything, req.Namespace, "self-hosted-operator-lb").Return(nil)
	cluster.On("StripFinalizers", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cluster.On("DeleteResource", mock.Anything, topology.RuntimeResource, req.Namespace, topology.RuntimeResourceName).Return(nil)
	helmClient.On("Uninstall", mock.Anything, req.ReleaseName, req.Namespace).Return([]byte("release uninstalled"), nil)
	cluster.On("ForceDeletePods", mock.Anything, mock.Anything).Return(nil)
	cluster.On("DeleteNamespace", mock.Anything, mock.Anything).Return(nil)

	err := sut.Run(context.Background(), req, topology)

	assert.Nil(t, err)
	helmClient.AssertCalled(t, "Uninstall", mock.Anything, req.ReleaseName, req.Namespace)
	for _, namespace := range topology.PodSweepNamespaces {
		cluster.AssertCalled(t, "ForceDeletePods", mock.Anything, namespace)
	}
	for _, namespace := range topology.OperatorNamespaces {
		cluster.AssertCalled(t, "DeleteNamespace", mock.Anything, namespace)
	}
}

func TestUninstaller_RunStopsWhenHelmUninstallFails(t *testing.T) {
	sut, helmClient, cluster, _ := uninstallFixture()
	req := domain.InstallRequest{ReleaseName: domain.DefaultReleaseName, Namespace: domain.DefaultNamespace}
	topology := domain.DefaultCleanupTopology(req.Namespace)

	helmClient.On("ReleaseExists", mock.Anything, req.ReleaseName, req.Namespace).Return(true, nil)
	cluster.On("DeleteService", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cluster.On("StripFinalizers", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cluster.On("DeleteResource", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	helmClient.On("Uninstall", mock.Anything, req.ReleaseName, req.Namespace).
		Return([]byte("Error: uninstall in progress"), errors.New("exit status 1"))

	err := sut.Run(context.Background(), req, topology)

	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "uninstall in progress")
	cluster.AssertNotCalled(t, "ForceDeletePods")
	cluster.AssertNotCalled(t, "DeleteNamespace")
}

func TestUninstaller_RunContinuesPastBestEffortFailures(t *testing.T) {
	sut, helmClient, cluster, _ := uninstallFixture()
	req := domain.InstallRequest{ReleaseName: domain.DefaultReleaseName, Namespace: domain.DefaultNamespace}
	topology := domain.DefaultCleanupTopology(req.Namespace)

	helmClient.On("ReleaseExists", mock.Anything, req.ReleaseName, req.Namespace).Return(true, nil)
	cluster.On("DeleteService", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("service not found"))
	cluster.On("StripFinalizers", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("no resources"))
	cluster.On("DeleteResource", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("gone already"))
	helmClient.On("Uninstall", mock.Anything, req.ReleaseName, req.Namespace).Return([]byte(""), nil)
	cluster.On("ForceDeletePods", mock.Anything, mock.Anything).Return(errors.New("nothing to delete"))
	cluster.On("DeleteNamespace", mock.Anything, mock.Anything).Return(errors.New("terminating"))

	err := sut.Run(context.Background(), req, topology)

	assert.Nil(t, err)
}
