package core

import (
	"context"
	"errors"
	"testing"

	"shoctl/internal/core/domain"
	"shoctl/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestLatestVersion_PicksHighestSemanticVersion(t *testing.T) {
	tags := []string{"0.9.0", "1.2.3", "1.10.0", "latest", "abc"}

	result, err := LatestVersion(tags)

	assert.Nil(t, err)
	assert.Equal(t, "1.10.0", result)
}

func TestLatestVersion_OrdersNumericallyNotLexically(t *testing.T) {
	tags := []string{"0.2.0", "0.10.0", "0.9.9"}

	result, err := LatestVersion(tags)

	assert.Nil(t, err)
	assert.Equal(t, "0.10.0", result)
}

func TestLatestVersion_FailsWhenNoTagMatches(t *testing.T) {
	tags := []string{"latest", "main", "v1.2"}

	_, err := LatestVersion(tags)

	var noValid *domain.NoValidVersionError
	assert.True(t, errors.As(err, &noValid))
	assert.Equal(t, tags, noValid.Tags)
}

func TestVersionResolver_ExplicitVersionSkipsRegistry(t *testing.T) {
	registry := testutil.MockRegistryClient{}
	sut := ProvideVersionResolver(&registry)
	req := domain.InstallRequest{Version: "1.2.3", Environment: domain.EnvGA}

	result, err := sut.Resolve(context.Background(), req, domain.ResolvedConfig{})

	assert.Nil(t, err)
	assert.Equal(t, "1.2.3", result)
	registry.AssertNotCalled(t, "PullToken")
}

func TestVersionResolver_ResolvesLatestFromRegistry(t *testing.T) {
	registry := testutil.MockRegistryClient{}
	registry.On("PullToken", context.Background(), "public.ecr.aws", "outsystems/self-hosted-operator").
		Return("token-abc", nil)
	registry.On("ListTags", context.Background(), "public.ecr.aws", "outsystems/self-hosted-operator", "token-abc").
		Return([]string{"0.1.0", "0.2.0", "latest"}, nil)
	sut := ProvideVersionResolver(&registry)
	req := domain.InstallRequest{Environment: domain.EnvGA}
	cfg := domain.ResolvedConfig{ChartRepository: "oci://public.ecr.aws/outsystems/self-hosted-operator"}

	result, err := sut.Resolve(context.Background(), req, cfg)

	assert.Nil(t, err)
	assert.Equal(t, "0.2.0", result)
}

func TestVersionResolver_ListsTagsFromOverriddenRepository(t *testing.T) {
	registry := testutil.MockRegistryClient{}
	registry.On("PullToken", context.Background(), "mirror.example.com", "charts/operator").
		Return("token-abc", nil)
	registry.On("ListTags", context.Background(), "mirror.example.com", "charts/operator", "token-abc").
		Return([]string{"0.3.0"}, nil)
	sut := ProvideVersionResolver(&registry)
	req := domain.InstallRequest{Environment: domain.EnvGA}
	cfg := domain.ResolvedConfig{ChartRepository: "oci://mirror.example.com/charts/operator"}

	result, err := sut.Resolve(context.Background(), req, cfg)

	assert.Nil(t, err)
	assert.Equal(t, "0.3.0", result)
	registry.AssertCalled(t, "PullToken", context.Background(), "mirror.example.com", "charts/operator")
}

func TestVersionResolver_RejectsNonOCIRepositoryWithoutExplicitVersion(t *testing.T) {
	registry := testutil.MockRegistryClient{}
	sut := ProvideVersionResolver(&registry)
	req := domain.InstallRequest{Environment: domain.EnvGA}
	cfg := domain.ResolvedConfig{ChartRepository: "https://charts.example.com/operator"}

	_, err := sut.Resolve(context.Background(), req, cfg)

	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "--version")
	registry.AssertNotCalled(t, "PullToken")
}

func TestVersionResolver_PropagatesTokenFailure(t *testing.T) {
	registry := testutil.MockRegistryClient{}
	registry.On("PullToken", context.Background(), "public.ecr.aws", "outsystems/self-hosted-operator").
		Return("", domain.ErrTokenUnavailable)
	sut := ProvideVersionResolver(&registry)
	req := domain.InstallRequest{Environment: domain.EnvGA}
	cfg := domain.ResolvedConfig{ChartRepository: "oci://public.ecr.aws/outsystems/self-hosted-operator"}

	_, err := sut.Resolve(context.Background(), req, cfg)

	assert.True(t, errors.Is(err, domain.ErrTokenUnavailable))
	registry.AssertNotCalled(t, "ListTags")
}
