package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tags := Detect("A Django REST API with PostgreSQL and Docker deployment")
	assert.Contains(t, tags, "django")
	assert.Contains(t, tags, "postgres")
	assert.Contains(t, tags, "docker")
	assert.Contains(t, tags, "api")

	assert.Empty(t, Detect(""))
	assert.Empty(t, Detect("a plain diary of my holidays"))
}

func TestDetectIsSortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	tags := Detect("docker docker kubernetes aws")
	assert.Equal(t, []string{"aws", "docker", "kubernetes"}, tags)
}

func TestDetectForRepoLanguageImplied(t *testing.T) {
	t.Parallel()

	tags := DetectForRepo("Go", "cache-proxy", "", "", nil)
	assert.Contains(t, tags, "go")
	assert.Contains(t, tags, "backend")
	assert.Contains(t, tags, "microservices")

	tags = DetectForRepo("TypeScript", "dash", "admin dashboard", "built with React", []string{"vite"})
	assert.Contains(t, tags, "typescript")
	assert.Contains(t, tags, "react")
	assert.Contains(t, tags, "vite")
}
