package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ShabuddinKhan/jenkins-mcp-server/internal/model"
)

// fakeProvider 注册表测试用的空实现
type fakeProvider struct {
	name string
}

func (p *fakeProvider) GetName() string                     { return p.name }
func (p *fakeProvider) Initialize(config map[string]any) error { return nil }
func (p *fakeProvider) ListJobs(ctx context.Context, opts *QueryOptions) ([]*model.Job, error) {
	return nil, nil
}
func (p *fakeProvider) GetJob(ctx context.Context, jobName string) (*model.Job, error) {
	return nil, nil
}
func (p *fakeProvider) SearchJobs(ctx context.Context, keyword string) ([]*model.Job, error) {
	return nil, nil
}
func (p *fakeProvider) GetJobBuilds(ctx context.Context, jobName string, limit int) ([]*model.Build, error) {
	return nil, nil
}
func (p *fakeProvider) HealthCheck(ctx context.Context) error { return nil }

func TestRegisterAndGetCICDProvider(t *testing.T) {
	UnregisterAll()
	t.Cleanup(UnregisterAll)

	RegisterCICD("fake", &fakeProvider{name: "fake"})

	p, err := GetCICDProvider("fake")
	require.NoError(t, err)
	require.Equal(t, "fake", p.GetName())

	_, err = GetCICDProvider("missing")
	require.Error(t, err)
}

func TestRegisterCICDDuplicatePanics(t *testing.T) {
	UnregisterAll()
	t.Cleanup(UnregisterAll)

	RegisterCICD("fake", &fakeProvider{name: "fake"})
	require.Panics(t, func() {
		RegisterCICD("fake", &fakeProvider{name: "fake"})
	})
}

func TestRegisterCICDNilPanics(t *testing.T) {
	UnregisterAll()
	t.Cleanup(UnregisterAll)

	require.Panics(t, func() {
		RegisterCICD("nil", nil)
	})
}

func TestListCICDProviders(t *testing.T) {
	UnregisterAll()
	t.Cleanup(UnregisterAll)

	require.Empty(t, ListCICDProviders())

	RegisterCICD("a", &fakeProvider{name: "a"})
	RegisterCICD("b", &fakeProvider{name: "b"})

	names := ListCICDProviders()
	require.Len(t, names, 2)
	require.Contains(t, names, "a")
	require.Contains(t, names, "b")
}
