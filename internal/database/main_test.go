package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testDBConnString is empty when docker could not start a container.
var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	stop := func() {}
	if !testing.Short() {
		testDBConnString, stop = startPostgres(context.Background())
	}
	code := m.Run()
	stop()
	os.Exit(code)
}

func startPostgres(ctx context.Context) (connStr string, stop func()) {
	stop = func() {}
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("postgres container unavailable: %v\n", r)
			connStr = ""
		}
	}()

	c, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("mathcatch"),
		postgres.WithUsername("catcher"),
		postgres.WithPassword("catcher"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(15*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: postgres container did not start: %v\n", err)
		return "", stop
	}
	stop = func() { _ = c.Terminate(ctx) }

	connStr, err = c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: no connection string: %v\n", err)
		stop()
		return "", func() {}
	}
	return connStr, stop
}

// requirePostgres returns the container DSN or skips the test.
func requirePostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
	return testDBConnString
}
