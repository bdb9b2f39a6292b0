package main

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	os.Setenv("GO_ENV", "test")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
