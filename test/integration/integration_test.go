//go:build integration

// Package integration runs the finplan API feature files against an
// in-process server backed by sqlite, miniredis and a stubbed Resend API.
package integration

import (
	"os"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/finplan/backend/test/integration/steps"
)

func TestFeatures(t *testing.T) {
	paths := []string{"features"}
	if only := os.Getenv("FINPLAN_FEATURES"); only != "" {
		paths = strings.Split(only, ",")
	}

	opts := godog.Options{
		Format: "pretty",
		Paths:  paths,
		Output: colors.Colored(os.Stdout),
		// Scenarios share one database and one Resend stub.
		Concurrency: 1,
		Strict:      true,
		TestingT:    t,
		Tags:        os.Getenv("GODOG_TAGS"),
	}

	suite := godog.TestSuite{
		Name:                 "finplan-api",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options:              &opts,
	}

	if status := suite.Run(); status != 0 {
		t.Fatalf("feature suite failed with status %d", status)
	}
}
