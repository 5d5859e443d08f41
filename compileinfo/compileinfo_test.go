package compileinfo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	c := CompileInfo{Program: Program, Version: Version}
	assert.Equal(t, "smartchip_analyzer version: 1.0.2", c.String())

	c.GoVersion = "go1.24.0"
	c.Package = "github.com/carbocation/smartchip/cmd/smartchipqc"
	c.Commit = "abc123"
	c.CommitTime = "2024-01-01T00:00:00Z"
	c.Modified = true
	s := c.String()
	assert.True(t, strings.HasPrefix(s, "smartchip_analyzer version: 1.0.2 (github.com/carbocation/smartchip/cmd/smartchipqc built with go1.24.0"))
	assert.Contains(t, s, "at commit abc123")
	assert.Contains(t, s, "modified")
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf)

	assert.True(t, strings.HasPrefix(buf.String(), "smartchip_analyzer version: 1.0.2"))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}
