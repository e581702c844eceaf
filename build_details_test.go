package oasguard

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setBuildVars overrides the ldflags variables for the duration of a test.
func setBuildVars(t *testing.T, v, c, bt string) {
	t.Helper()
	oldV, oldC, oldBT := version, commit, buildTime
	version, commit, buildTime = v, c, bt
	t.Cleanup(func() { version, commit, buildTime = oldV, oldC, oldBT })
}

func TestDevelopmentDefaults(t *testing.T) {
	assert.Equal(t, "dev", Version())
	assert.Equal(t, "unknown", Commit())
	assert.Equal(t, "unknown", BuildTime())
	assert.Equal(t, runtime.Version(), GoVersion())
	assert.True(t, strings.HasPrefix(GoVersion(), "go"))
}

func TestReleaseBuild(t *testing.T) {
	setBuildVars(t, "v1.4.0", "3f9a2c1", "2026-10-19T08:30:00Z")

	assert.Equal(t, "v1.4.0", Version())
	assert.Equal(t, "3f9a2c1", Commit())
	assert.Equal(t, "2026-10-19T08:30:00Z", BuildTime())
	assert.Equal(t, "oasguard/v1.4.0", UserAgent())
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	assert.Equal(t, "oasguard/"+Version(), ua)
	assert.NotContains(t, ua, " ", "User-Agent product tokens cannot contain spaces")
	assert.NotContains(t, ua, "\n")
}

func TestBuildInfo(t *testing.T) {
	setBuildVars(t, "v1.4.0", "3f9a2c1", "2026-10-19T08:30:00Z")

	lines := strings.Split(BuildInfo(), "\n")
	assert.Equal(t, []string{
		"Version: v1.4.0",
		"Commit: 3f9a2c1",
		"Build Time: 2026-10-19T08:30:00Z",
		"Go Version: " + runtime.Version(),
	}, lines)
}
