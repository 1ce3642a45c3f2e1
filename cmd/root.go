/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phux/urlsentry/app"

	"github.com/spf13/cobra"
)

var (
	port          int
	distDir       string
	allowedOrigin string
)

// rootCmd serves the scan API and the built frontend
var rootCmd = &cobra.Command{
	Use:   "urlsentry",
	Short: "flag suspicious URLs and serve the web frontend",
	Long: `flag suspicious URLs via POST /api/scan and serve the web frontend.

Configuration is read from PORT, DIST_DIR and ALLOWED_ORIGIN (a .env file
in the working directory is loaded first). Flags override the environment.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := app.LoadConfig()
		if err != nil {
			log.Fatalf("Error: %s\n", err)
		}

		applyFlags(cmd, &cfg)

		err = cfg.Validate()
		if err != nil {
			log.Fatalf("Error: %s\n", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := app.NewServer(cfg, app.NewScanner(app.DefaultChecks()))
		err = server.ListenAndServe(ctx, os.Stdout)
		if err != nil {
			log.Fatalf("Error: %s\n", err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}

func init() {
	rootCmd.Flags().IntVar(&port, "port", app.DefaultPort, "[optional] port to listen on (env: PORT)")
	rootCmd.Flags().StringVar(&distDir, "dist", app.DefaultDistDir, "[optional] directory holding the built frontend (env: DIST_DIR)")
	rootCmd.Flags().StringVar(&allowedOrigin, "allowedOrigin", app.DefaultAllowedOrigin, "[optional] origin allowed to call the API cross-origin (env: ALLOWED_ORIGIN)")

	rootCmd.AddCommand(scanCmd)
}

func applyFlags(cmd *cobra.Command, cfg *app.Config) {
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}
	if cmd.Flags().Changed("dist") {
		cfg.DistDir = distDir
	}
	if cmd.Flags().Changed("allowedOrigin") {
		cfg.AllowedOrigin = allowedOrigin
	}
}
