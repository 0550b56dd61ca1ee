package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"engined/internal/config"
	"engined/internal/httpapi"
	"engined/internal/logging"
	"engined/internal/registry"
	"engined/pkg/types"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "engined",
		Short:         "Local LLM engine daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newBuildCmd(), newModelsCmd())
	return root
}

// loadConfig merges the config file with flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return cfg, err
		}
	}
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Addr = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.ModelID = v
	}
	if v, _ := cmd.Flags().GetString("models-dir"); v != "" {
		cfg.ModelsDir = v
	}
	if cfg.Addr == "" {
		cfg.Addr = envOr("ENGINED_ADDR", ":8080")
	}
	if cfg.ModelsDir == "" {
		cfg.ModelsDir = "~/models/llm"
	}
	return cfg, nil
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (.toml/.yaml/.json)")
	cmd.Flags().String("model", "", "Model id or artifact path (overrides config)")
	cmd.Flags().String("models-dir", "", "Directory to scan for *.gguf/*.uqff artifacts")
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Assemble the engine and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logging.Initialize()
			log := logging.Logger()
			httpapi.SetLogger(log)

			arts, err := registry.LoadDir(cfg.ModelsDir)
			if err != nil {
				log.Warn().Err(err).Str("dir", cfg.ModelsDir).Msg("artifact scan failed")
				arts = []types.Artifact{}
			}
			svc := newEngineService(arts)

			// Assemble in the background so health/status respond while the
			// model materializes.
			go func() {
				builder, err := cfg.Builder()
				if err != nil {
					svc.setError(err)
					log.Error().Err(err).Msg("engine configuration failed")
					return
				}
				model, err := builder.WithLogging().Build(context.Background())
				if err != nil {
					svc.setError(err)
					log.Error().Err(err).Msg("engine assembly failed")
					return
				}
				svc.setModel(model)
				log.Info().Str("model", model.ModelID()).Msg("engine ready")
			}()

			srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(svc)}
			go func() {
				log.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Msg("engined listening")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("server error")
				}
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			<-stop
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Error().Err(err).Msg("graceful shutdown error")
			}
			return nil
		},
	}
	addCommonFlags(cmd)
	cmd.Flags().String("addr", "", "HTTP listen address, e.g. :8080")
	return cmd
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Assemble the engine once and exit (useful with write_uqff)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			builder, err := cfg.Builder()
			if err != nil {
				return err
			}
			model, err := builder.Build(cmd.Context())
			if err != nil {
				return err
			}
			defer model.Close()
			fmt.Printf("built %s scheduler=%s\n", model.ModelID(), model.Runtime().SchedulerConfig())
			return nil
		},
	}
	addCommonFlags(cmd)
	return cmd
}

func newModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List local model artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			arts, err := registry.LoadDir(cfg.ModelsDir)
			if err != nil {
				return err
			}
			for _, a := range arts {
				fmt.Printf("%-50s %6d MB  %s\n", a.ID, a.SizeMB, a.Format)
			}
			return nil
		},
	}
	addCommonFlags(cmd)
	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
