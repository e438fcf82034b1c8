package cli

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/example/todo/internal/config"
	"github.com/example/todo/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the JSON API over HTTP. Clients identify themselves with the
X-Todo-Owner header. Endpoints live under /api/todos; reordering is
PATCH /api/todos/{id}/position for one item and PUT /api/todos/positions
for a batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				dir, err := config.DefaultDir()
				if err != nil {
					return err
				}
				cfg, _ := config.LoadConfig(dir) // nil cfg falls back to default addr
				addr = cfg.Addr()
			}

			handler := wire.APIServer().Handler()
			log.Printf("todo API listening on %s", addr)
			if err := http.ListenAndServe(addr, handler); err != nil {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides config, default "+config.DefaultServerAddr+")")
	return cmd
}
