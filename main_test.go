package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewerURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", viewerURL(":8080"))
	assert.Equal(t, "http://localhost:8080", viewerURL("0.0.0.0:8080"))
	assert.Equal(t, "http://localhost:9000", viewerURL("127.0.0.1:9000"))
}
