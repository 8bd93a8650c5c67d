package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benchkit/benchkit/internal/server"
	"github.com/benchkit/benchkit/internal/style"
)

var (
	// Serve command flags
	servePort    int
	serveHost    string
	serveDataDir string
	serveMetrics bool
	serveCORS    bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve fetched datasets over HTTP",
	Long: `Start a read-only HTTP server over a fetched data directory.

The server provides:
- GET /api/v1/datasets           index of available dataset files
- GET /api/v1/datasets/{name}    the normalized JSON array for one dataset
- GET /health                    health check
- GET /metrics                   Prometheus metrics

Examples:
  benchkit serve                       # Serve ./data on localhost:8080
  benchkit serve --data-dir ./bench    # Serve another directory
  benchkit serve --port 9090           # Custom port`,
	Run: func(cmd *cobra.Command, args []string) {
		config := server.DefaultConfig()
		config.Host = serveHost
		config.Port = servePort
		config.DataDir = serveDataDir
		config.EnableMetrics = serveMetrics
		config.EnableCORS = serveCORS

		srv, err := server.New(config)
		if err != nil {
			style.Error(cmd.ErrOrStderr(), fmt.Sprintf("Failed to create server: %v", err))
			os.Exit(1)
		}

		style.Info(cmd.OutOrStdout(), fmt.Sprintf("Serving %s on http://%s", serveDataDir, srv.Addr()))

		if err := srv.Start(cmd.Context()); err != nil {
			style.Error(cmd.ErrOrStderr(), fmt.Sprintf("Server error: %v", err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "server port")
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "server host")
	serveCmd.Flags().StringVarP(&serveDataDir, "data-dir", "d", "data", "directory of fetched dataset files")
	serveCmd.Flags().BoolVar(&serveMetrics, "metrics", true, "enable Prometheus metrics endpoint")
	serveCmd.Flags().BoolVar(&serveCORS, "cors", true, "enable CORS headers")
}
