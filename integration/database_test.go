//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRepopulseWithMySQL tests the repopulse CLI with a MySQL history backend.
func TestRepopulseWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "repopulse",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/repopulse?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("REPOPULSE_HISTORY_BACKEND", "mysql")
	_ = os.Setenv("REPOPULSE_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("REPOPULSE_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("REPOPULSE_HISTORY_DB_CONNECT") }()

	// Run repopulse history clear
	err = runRepopulseCommand(t, "history", "clear")
	require.NoError(t, err)

	// Run repopulse score (on current dir)
	err = runRepopulseCommand(t, "score", "--output", "json")
	require.NoError(t, err)

	// Run repopulse history show
	err = runRepopulseCommand(t, "history", "show", "--limit", "5")
	require.NoError(t, err)

	// Run repopulse history status
	err = runRepopulseCommand(t, "history", "status")
	require.NoError(t, err)
}

// TestRepopulseWithPostgres tests the repopulse CLI with a PostgreSQL history backend.
func TestRepopulseWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("REPOPULSE_HISTORY_BACKEND", "postgresql")
	_ = os.Setenv("REPOPULSE_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("REPOPULSE_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("REPOPULSE_HISTORY_DB_CONNECT") }()

	// Run repopulse history clear
	err = runRepopulseCommand(t, "history", "clear")
	require.NoError(t, err)

	// Run repopulse score (on current dir)
	err = runRepopulseCommand(t, "score", "--output", "json")
	require.NoError(t, err)

	// Run repopulse history show
	err = runRepopulseCommand(t, "history", "show", "--limit", "5")
	require.NoError(t, err)

	// Run repopulse history status
	err = runRepopulseCommand(t, "history", "status")
	require.NoError(t, err)
}

func runRepopulseCommand(t *testing.T, args ...string) error {
	binaryPath := getRepopulseBinary()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
