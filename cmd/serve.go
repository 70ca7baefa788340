package cmd

import (
	"context"
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fridayfun/internal/api"
	"github.com/abhisek/fridayfun/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve questions as a JSON API",
	Long: "Runs a single shared question session behind an HTTP API.\n\n" +
		"  GET  /v1/state                      current snapshot\n" +
		"  GET  /v1/categories                 category metadata\n" +
		"  POST /v1/categories/{name}/select   switch category and generate\n" +
		"  POST /v1/regenerate                 another question, same category",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
}

func runServe(cmd *cobra.Command) error {
	rt, err := bootstrap(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	cat, err := rt.cfg.StartCategory()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())

	loop := session.NewLoop(session.NewStore(rt.gen, rt.logger))
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = loop.Run(ctx)
	}()
	defer func() {
		cancel()
		<-loopDone
	}()

	if _, err := loop.SelectCategory(ctx, cat); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}

	ln, err := net.Listen("tcp", rt.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", rt.cfg.Server.Addr, err)
	}

	handler := api.NewRouter(&api.Container{
		Session:        loop,
		Logger:         rt.logger,
		AllowedOrigins: rt.cfg.Server.AllowedOrigins,
	})

	rt.logger.Info("serving questions", zap.String("category", string(cat)))
	return api.Serve(ctx, ln, handler, rt.logger)
}
