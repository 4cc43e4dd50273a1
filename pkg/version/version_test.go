package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFull(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "v1.2.0"

	full := Full()
	assert.Contains(t, full, "v1.2.0")
	assert.Contains(t, full, runtime.GOOS+"/"+runtime.GOARCH)
}
