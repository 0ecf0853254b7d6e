package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/king120kw/research-weaver-sub001/internal/profile"
	apiv1 "github.com/king120kw/research-weaver-sub001/server/router/api/v1"
	"github.com/king120kw/research-weaver-sub001/store"
	"github.com/king120kw/research-weaver-sub001/store/db"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "researchweaver",
	Short: "A research-assistant conversation service",
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile := &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Driver:  viper.GetString("driver"),
			DSN:     viper.GetString("dsn"),
			Version: version,
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return fmt.Errorf("invalid profile: %w", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			return fmt.Errorf("failed to create db driver: %w", err)
		}

		storeInstance := store.New(dbDriver, instanceProfile)
		defer storeInstance.Close()
		if err := storeInstance.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		echoServer := echo.New()
		echoServer.HideBanner = true
		echoServer.HidePort = true
		echoServer.Use(echomw.Recover())

		apiService := apiv1.NewAPIV1Service(instanceProfile, storeInstance)
		apiService.Register(echoServer)

		address := fmt.Sprintf("%s:%d", instanceProfile.Addr, instanceProfile.Port)
		go func() {
			slog.Info("server started",
				slog.String("address", address),
				slog.String("mode", instanceProfile.Mode),
				slog.String("version", version),
			)
			if err := echoServer.Start(address); err != nil && err != http.ErrServerClosed {
				slog.Error("failed to start server", slog.String("error", err.Error()))
				cancel()
			}
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sig:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := echoServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", slog.String("error", err.Error()))
		}
		return nil
	},
}

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("weaver")

	rootCmd.PersistentFlags().String("mode", "dev", `mode of the server, can be "dev" or "prod"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of the server")
	rootCmd.PersistentFlags().String("data", ".", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
