package cli

import (
	"errors"
	"fmt"
	"net"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"kanban-cli/internal/web"

	"github.com/spf13/cobra"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string
	var open bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the board to a browser",
		Long: strings.TrimSpace(`
Serve the board from a local HTTP server.

The page uses native HTML5 drag and drop. Every change is pushed to all open
tabs over a server-sent event stream, so the browser always shows a full
re-render of the server's board.
`),
		Example: strings.TrimSpace(`
# Serve on the configured address (web.addr, default 127.0.0.1:3340)
kanban web

# Serve on all interfaces with the sqlite backend
kanban --backend sqlite web --addr :3340 --open=false
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = strings.TrimSpace(app.cfg.Web.Addr)
			}
			if listenAddr == "" {
				return writeErr(cmd, errors.New("web: missing --addr"))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			st, b, err := openBoard(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			ctrl, err := newController(app, st, b)
			if err != nil {
				return writeErr(cmd, err)
			}

			srv, err := web.NewServer(web.ServerConfig{
				Addr:       listenAddr,
				Controller: ctrl,
				Log:        app.log,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			opened := false
			openErr := ""
			if open {
				if err := openBrowser(ctx, url); err != nil {
					openErr = err.Error()
				} else {
					opened = true
				}
			}

			hints := []string{}
			if !opened {
				hints = append(hints, "open "+url)
			}

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      actualAddr,
					"url":       url,
					"backend":   app.cfg.Backend,
					"opened":    opened,
					"openError": openErr,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": hints,
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "Kanban web running at %s (backend=%s)\n", url, app.cfg.Backend)
			if openErr != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to open browser: %s\n", openErr)
			}

			app.log.Info().Str("addr", actualAddr).Msg("web server started")
			if err := srv.ListenAndServe(ctx, ln); err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info().Msg("web server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (host:port or :port; default: web.addr)")
	cmd.Flags().BoolVar(&open, "open", true, "Open the UI in your default browser")
	return cmd
}
